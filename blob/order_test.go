package blob

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/wippyai/fieldblob/errors"
)

func TestNew_Defaults(t *testing.T) {
	c := New(Options{})
	if c.Order() != binary.NativeEndian {
		t.Errorf("Order() = %v, want native", c.Order())
	}
	if c.maxDepth != 64 {
		t.Errorf("maxDepth = %d, want 64", c.maxDepth)
	}

	d := DefaultOptions()
	if d.Order != binary.NativeEndian || d.MaxDepth != 64 {
		t.Errorf("DefaultOptions() = %+v", d)
	}
}

func TestAccessors_ByteOrder(t *testing.T) {
	tests := []struct {
		name  string
		codec *Codec
		want  []byte
	}{
		{"little", LittleEndian, []byte{0x04, 0x03, 0x02, 0x01}},
		{"big", BigEndian, []byte{0x01, 0x02, 0x03, 0x04}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := make([]byte, 4)
			if err := tc.codec.PutUint32(buf, 0, 0x01020304); err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(buf, tc.want) {
				t.Errorf("PutUint32 bytes = %x, want %x", buf, tc.want)
			}
			v, err := tc.codec.Uint32(buf, 0)
			if err != nil {
				t.Fatal(err)
			}
			if v != 0x01020304 {
				t.Errorf("Uint32 = %#x", v)
			}
		})
	}
}

func TestAccessors_RoundTrip(t *testing.T) {
	for _, c := range []*Codec{Native, LittleEndian, BigEndian} {
		buf := make([]byte, 64)

		if err := c.PutInt8(buf, 0, -5); err != nil {
			t.Fatal(err)
		}
		if err := c.PutInt16(buf, 1, -300); err != nil {
			t.Fatal(err)
		}
		if err := c.PutInt32(buf, 3, math.MinInt32); err != nil {
			t.Fatal(err)
		}
		if err := c.PutInt64(buf, 7, math.MinInt64); err != nil {
			t.Fatal(err)
		}
		if err := c.PutFloat32(buf, 15, 1.5); err != nil {
			t.Fatal(err)
		}
		if err := c.PutFloat64(buf, 19, -2.25); err != nil {
			t.Fatal(err)
		}
		if err := c.PutUint64(buf, 27, math.MaxUint64); err != nil {
			t.Fatal(err)
		}

		if v, _ := c.Int8(buf, 0); v != -5 {
			t.Errorf("Int8 = %d", v)
		}
		if v, _ := c.Int16(buf, 1); v != -300 {
			t.Errorf("Int16 = %d", v)
		}
		if v, _ := c.Int32(buf, 3); v != math.MinInt32 {
			t.Errorf("Int32 = %d", v)
		}
		if v, _ := c.Int64(buf, 7); v != math.MinInt64 {
			t.Errorf("Int64 = %d", v)
		}
		if v, _ := c.Float32(buf, 15); v != 1.5 {
			t.Errorf("Float32 = %v", v)
		}
		if v, _ := c.Float64(buf, 19); v != -2.25 {
			t.Errorf("Float64 = %v", v)
		}
		if v, _ := c.Uint64(buf, 27); v != math.MaxUint64 {
			t.Errorf("Uint64 = %d", v)
		}
	}
}

func TestAccessors_NaNBitsPreserved(t *testing.T) {
	bits := uint32(0x7fc00001)
	buf := make([]byte, 4)
	if err := LittleEndian.PutUint32(buf, 0, bits); err != nil {
		t.Fatal(err)
	}
	f, err := LittleEndian.Float32(buf, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := math.Float32bits(f); got != bits {
		t.Errorf("bits = %#x, want %#x", got, bits)
	}
}

func TestAccessors_OutOfBounds(t *testing.T) {
	buf := make([]byte, 6)

	tests := []struct {
		name string
		fn   func() error
	}{
		{"uint32 past end", func() error { _, err := Native.Uint32(buf, 3); return err }},
		{"uint64 too long", func() error { _, err := Native.Uint64(buf, 0); return err }},
		{"offset wraps", func() error { _, err := Native.Uint16(buf, math.MaxUint32); return err }},
		{"put past end", func() error { return Native.PutUint16(buf, 5, 1) }},
		{"float32s", func() error { _, err := Native.Float32s(buf, 0, 2); return err }},
		{"bytes", func() error { _, err := Native.Bytes(buf, 2, 5); return err }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			requireKind(t, tc.fn(), errors.KindOutOfBounds)
		})
	}
}

func TestFloat32s_NegativeCount(t *testing.T) {
	_, err := Native.Float32s(make([]byte, 8), 0, -1)
	requireKind(t, err, errors.KindOverflow)
}

func TestCopy(t *testing.T) {
	src := []byte{1, 2, 3, 4, 5}
	dst := make([]byte, 5)
	if err := Native.Copy(dst, 1, src, 2, 3); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(dst, []byte{0, 3, 4, 5, 0}) {
		t.Errorf("dst = %v", dst)
	}

	buf := make([]byte, 8)
	err := Native.Copy(buf, 0, buf, 2, 4)
	requireKind(t, err, errors.KindOverlap)

	if err := Native.Copy(buf, 0, buf, 4, 4); err != nil {
		t.Errorf("disjoint halves of one buffer: %v", err)
	}
}
