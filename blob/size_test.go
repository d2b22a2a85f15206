package blob

import (
	"math"
	"testing"

	"github.com/wippyai/fieldblob/errors"
)

func TestFieldSize_Registry(t *testing.T) {
	for typ := TypeNone; typ <= TypeRuntimeObject; typ++ {
		size := FieldSize(typ)
		switch typ {
		case TypeArray, TypePrototype, TypeGenericObject, TypeRuntimeObject:
			if size != Variable || TotalSize(typ) != Variable {
				t.Errorf("%s: size %d, want Variable", typ, size)
			}
		case TypeNone, TypeNull:
			if size != 0 {
				t.Errorf("%s: size %d, want 0", typ, size)
			}
		default:
			if size == 0 || size == Variable {
				t.Errorf("%s: size %d, want fixed positive", typ, size)
			}
			if TotalSize(typ) != size+TagSize {
				t.Errorf("%s: total %d", typ, TotalSize(typ))
			}
		}
	}
	if FieldSize(TypeVector3F) != 12 || FieldSize(TypeMatrix3x4F) != 48 {
		t.Error("unexpected vector/matrix size")
	}
}

func TestArraySizes(t *testing.T) {
	c := LittleEndian
	inner := genericData(t, c, rec{1, TypeUint8, []byte{1}})

	tests := []struct {
		name  string
		data  []byte
		items uint32
	}{
		{"empty fixed", arrayData(t, c, TypeUint64, 0), 0},
		{"fixed", arrayData(t, c, TypeUint16, 3, make([]byte, 6)), 6},
		{"objects", arrayData(t, c, TypeGenericObject, 2, inner, inner), uint32(2 * len(inner))},
		{"strings", arrayData(t, c, TypeArray, 2,
			arrayData(t, c, TypeChar, 2, []byte("a\x00")),
			arrayData(t, c, TypeChar, 1, []byte{0})), 8 + 2 + 8 + 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			items, err := c.ArrayDataSize(tc.data, 0)
			if err != nil {
				t.Fatal(err)
			}
			if items != tc.items {
				t.Errorf("ArrayDataSize = %d, want %d", items, tc.items)
			}
			total, err := c.ArrayTotalSize(tc.data, 0)
			if err != nil {
				t.Fatal(err)
			}
			if total != uint32(len(tc.data)) {
				t.Errorf("ArrayTotalSize = %d, want %d", total, len(tc.data))
			}
		})
	}
}

func TestArraySizes_Errors(t *testing.T) {
	c := LittleEndian

	t.Run("item count overflows", func(t *testing.T) {
		data := arrayData(t, c, TypeUint64, math.MaxUint32)
		_, err := c.ArrayDataSize(data, 0)
		requireKind(t, err, errors.KindOverflow)
	})

	t.Run("items past buffer", func(t *testing.T) {
		data := arrayData(t, c, TypeUint32, 4, make([]byte, 8))
		_, err := c.ArrayDataSize(data, 0)
		requireKind(t, err, errors.KindOutOfBounds)
	})

	t.Run("none item type", func(t *testing.T) {
		data := concat(u32(c, 1), u32(c, 0))
		_, err := c.ArrayDataSize(data, 0)
		requireKind(t, err, errors.KindInvalidData)
	})

	t.Run("nested item past buffer", func(t *testing.T) {
		data := arrayData(t, c, TypeArray, 2, arrayData(t, c, TypeUint8, 1, []byte{1}))
		_, err := c.ArrayDataSize(data, 0)
		e := requireKind(t, err, errors.KindOutOfBounds)
		if len(e.Path) == 0 || e.Path[0] != "[1]" {
			t.Errorf("path = %v", e.Path)
		}
	})
}

func TestFieldSizes_Tagged(t *testing.T) {
	c := BigEndian
	obj := tagged(t, c, TypeGenericObject, genericData(t, c,
		rec{1, TypeFloat64, make([]byte, 8)},
		rec{2, TypeArray, arrayData(t, c, TypeFloat32, 3, floats(c, 1, 2, 3))},
	))
	buf := concat(obj, tagged(t, c, TypeUint8, []byte{9}))

	size, err := c.FieldDataSize(buf, 0)
	if err != nil {
		t.Fatal(err)
	}
	if size != uint32(len(obj))-TagSize {
		t.Errorf("FieldDataSize = %d", size)
	}
	data, err := c.GenericObjectDataSize(buf, TagSize)
	if err != nil {
		t.Fatal(err)
	}
	if data != size-GenericHeaderSize {
		t.Errorf("GenericObjectDataSize = %d", data)
	}

	fields, err := c.Fields(buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(fields) != 2 || fields[1].Type != TypeUint8 || fields[1].Offset != uint32(len(obj))+TagSize {
		t.Errorf("Fields = %+v", fields)
	}
}

func TestFieldSizes_Errors(t *testing.T) {
	c := LittleEndian
	tests := []struct {
		name string
		buf  []byte
		kind errors.Kind
	}{
		{"empty", nil, errors.KindOutOfBounds},
		{"short tag", []byte{1, 0}, errors.KindOutOfBounds},
		{"none tag", u32(c, 0), errors.KindInvalidData},
		{"unknown tag", u32(c, 25), errors.KindInvalidData},
		{"negative tag", u32(c, math.MaxUint32), errors.KindInvalidData},
		{"truncated payload", concat(u32(c, uint32(TypeUint64)), make([]byte, 7)), errors.KindOutOfBounds},
		{"prototype tables overflow", concat(u32(c, uint32(TypePrototype)), u32(c, math.MaxUint32)), errors.KindOverflow},
		{"runtime tables past buffer", concat(u32(c, uint32(TypeRuntimeObject)), u32(c, 3), u32(c, 0)), errors.KindOutOfBounds},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.FieldTotalSize(tc.buf, 0)
			requireKind(t, err, tc.kind)
		})
	}
}

func TestFields_Trailing(t *testing.T) {
	c := Native
	buf := make([]byte, 8)
	if _, err := c.WriteUint16(buf, 0, 1); err != nil {
		t.Fatal(err)
	}
	_, err := c.Fields(buf)
	e := requireKind(t, err, errors.KindOutOfBounds)
	if len(e.Path) == 0 || e.Path[0] != "[1]" {
		t.Errorf("path = %v", e.Path)
	}
}

func TestMaxDepth(t *testing.T) {
	c := LittleEndian
	data := arrayData(t, c, TypeUint8, 0)
	for i := 0; i < 5; i++ {
		data = arrayData(t, c, TypeArray, 1, data)
	}

	if _, err := c.ArrayTotalSize(data, 0); err != nil {
		t.Fatalf("default depth: %v", err)
	}

	shallow := New(Options{Order: c.Order(), MaxDepth: 2})
	_, err := shallow.ArrayTotalSize(data, 0)
	requireKind(t, err, errors.KindInvalidData)
}

func TestNarrowest(t *testing.T) {
	tests := []struct {
		lo, hi int64
		want   Type
	}{
		{0, 255, TypeUint8},
		{0, 256, TypeUint16},
		{-1, 127, TypeInt8},
		{-129, 0, TypeInt16},
		{0, math.MaxInt64, TypeUint64},
		{math.MinInt64, 0, TypeInt64},
		{-40000, 10, TypeInt32},
	}
	for _, tc := range tests {
		if got := NarrowestInteger(tc.lo, tc.hi); got != tc.want {
			t.Errorf("NarrowestInteger(%d, %d) = %s, want %s", tc.lo, tc.hi, got, tc.want)
		}
	}
}
