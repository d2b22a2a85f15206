package blob

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/fieldblob/errors"
)

// scenarioA is a generic object {1: uint32 42, 2: [1.0, 2.0, 3.0]}.
func scenarioA(t *testing.T, c *Codec) []byte {
	t.Helper()
	return tagged(t, c, TypeGenericObject, genericData(t, c,
		rec{1, TypeUint32, u32(c, 42)},
		rec{2, TypeArray, arrayData(t, c, TypeFloat32, 3, floats(c, 1, 2, 3))},
	))
}

func TestOptimize_ScenarioA(t *testing.T) {
	c := LittleEndian
	src := scenarioA(t, c)

	f, ok, err := c.GenericObjectSearch(src, TagSize, 1)
	if err != nil || !ok {
		t.Fatalf("generic search 1: %v %v", ok, err)
	}
	if v, _ := c.Value(src, f); f.Type != TypeUint32 || v != uint32(42) {
		t.Errorf("generic 1 = %s %v", f.Type, v)
	}
	f, ok, err = c.GenericObjectSearch(src, TagSize, 2)
	if err != nil || !ok {
		t.Fatalf("generic search 2: %v %v", ok, err)
	}
	a, err := c.ArrayAt(src, f.Offset)
	if err != nil {
		t.Fatal(err)
	}
	if f.Type != TypeArray || a.Count != 3 {
		t.Errorf("generic 2 = %s count %d", f.Type, a.Count)
	}

	dst := make([]byte, len(src))
	n, err := c.Optimize(dst, src)
	if err != nil {
		t.Fatal(err)
	}
	if n != uint32(len(src)) {
		t.Fatalf("Optimize wrote %d, want %d", n, len(src))
	}

	want := concat(
		u32(c, uint32(TypeRuntimeObject)),
		u32(c, 2), u32(c, 0), // count, reserved
		u32(c, 1), u32(c, 2), // names
		u32(c, 0), u32(c, 8), // offsets into the value blob
		u32(c, uint32(TypeUint32)), u32(c, 42),
		u32(c, uint32(TypeArray)), u32(c, 3), u32(c, uint32(TypeFloat32)), floats(c, 1, 2, 3),
	)
	if !bytes.Equal(dst, want) {
		t.Errorf("runtime bytes:\n got %x\nwant %x", dst, want)
	}

	f, ok, err = c.RuntimeObjectSearch(dst, TagSize, 1)
	if err != nil || !ok {
		t.Fatalf("runtime search 1: %v %v", ok, err)
	}
	if v, _ := c.Value(dst, f); f.Type != TypeUint32 || v != uint32(42) {
		t.Errorf("runtime 1 = %s %v", f.Type, v)
	}
	f, ok, err = c.RuntimeObjectSearch(dst, TagSize, 2)
	if err != nil || !ok {
		t.Fatalf("runtime search 2: %v %v", ok, err)
	}
	a, err = c.ArrayAt(dst, f.Offset)
	if err != nil {
		t.Fatal(err)
	}
	vs, _ := a.Float32s()
	if diff := cmp.Diff([]float32{1, 2, 3}, vs); diff != "" {
		t.Errorf("runtime 2 (-want +got):\n%s", diff)
	}
}

// nestedBlob exercises every conversion path: nested objects, arrays of
// objects, arrays of arrays of objects, strings, prototypes and values
// that are already runtime objects.
func nestedBlob(t *testing.T, c *Codec) []byte {
	t.Helper()
	leaf := genericData(t, c,
		rec{Name("x"), TypeFloat32, floats(c, 0.5)},
		rec{Name("tag"), TypeArray, arrayData(t, c, TypeChar, 3, []byte("ok\x00"))},
	)
	empty := genericData(t, c)

	proto := make([]byte, 64)
	pn, err := c.WritePrototypeData(proto, 0, []uint32{Name("x")}, []Type{TypeFloat32})
	if err != nil {
		t.Fatal(err)
	}

	runtime := make([]byte, 64)
	rn, err := c.WriteRuntimeObjectData(runtime, 0, []uint32{Name("r")}, []uint32{0}, concat(u32(c, uint32(TypeUint16)), []byte{1, 0}))
	if err != nil {
		t.Fatal(err)
	}

	root := genericData(t, c,
		rec{Name("leaf"), TypeGenericObject, leaf},
		rec{Name("empty"), TypeGenericObject, empty},
		rec{Name("list"), TypeArray, arrayData(t, c, TypeGenericObject, 3, leaf, empty, leaf)},
		rec{Name("grid"), TypeArray, arrayData(t, c, TypeArray, 2,
			arrayData(t, c, TypeGenericObject, 1, leaf),
			arrayData(t, c, TypeGenericObject, 0))},
		rec{Name("schema"), TypePrototype, proto[:pn]},
		rec{Name("done"), TypeRuntimeObject, runtime[:rn]},
		rec{Name("pos"), TypeVector3F, floats(c, 1, 2, 3)},
		rec{Name("nothing"), TypeNull, nil},
	)

	out := tagged(t, c, TypeUint8, []byte{7})
	out = append(out, tagged(t, c, TypeGenericObject, root)...)
	out = append(out, tagged(t, c, TypeArray, arrayData(t, c, TypeGenericObject, 2, leaf, leaf))...)
	out = append(out, tagged(t, c, TypePrototype, proto[:pn])...)
	return out
}

func TestOptimize_RoundTrip(t *testing.T) {
	for _, c := range []*Codec{Native, LittleEndian, BigEndian} {
		src := nestedBlob(t, c)
		before := leaves(t, c, src)

		dst, err := c.Optimized(src)
		if err != nil {
			t.Fatal(err)
		}
		if len(dst) != len(src) {
			t.Fatalf("size %d, want %d", len(dst), len(src))
		}
		after := leaves(t, c, dst)
		if diff := cmp.Diff(before, after); diff != "" {
			t.Errorf("leaves differ (-generic +runtime):\n%s", diff)
		}

		fields, err := c.Fields(dst)
		if err != nil {
			t.Fatal(err)
		}
		wantTypes := []Type{TypeUint8, TypeRuntimeObject, TypeArray, TypePrototype}
		for i, f := range fields {
			if f.Type != wantTypes[i] {
				t.Errorf("field %d type %s, want %s", i, f.Type, wantTypes[i])
			}
		}
		a, err := c.ArrayAt(dst, fields[2].Offset)
		if err != nil {
			t.Fatal(err)
		}
		if a.ItemType != TypeRuntimeObject {
			t.Errorf("array item type %s", a.ItemType)
		}

		// a second pass has nothing left to convert
		again, err := c.Optimized(dst)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(again, dst) {
			t.Error("optimizing an optimized blob changed it")
		}
	}
}

func TestOptimize_Search(t *testing.T) {
	c := Native
	dst, err := c.Optimized(nestedBlob(t, c))
	if err != nil {
		t.Fatal(err)
	}
	fields, _ := c.Fields(dst)
	root, err := c.ObjectAt(dst, fields[1])
	if err != nil {
		t.Fatal(err)
	}

	grid, ok, err := root.Search(Name("grid"))
	if err != nil || !ok || grid.Type != TypeArray {
		t.Fatalf("grid: %+v %v %v", grid, ok, err)
	}
	row, err := c.ArrayFieldAt(dst, grid.Offset, 0)
	if err != nil {
		t.Fatal(err)
	}
	cell, err := c.ArrayFieldAt(dst, row.Offset, 0)
	if err != nil {
		t.Fatal(err)
	}
	if cell.Type != TypeRuntimeObject {
		t.Fatalf("cell type %s", cell.Type)
	}
	tag, ok, err := c.RuntimeObjectSearch(dst, cell.Offset, Name("tag"))
	if err != nil || !ok {
		t.Fatalf("tag: %v %v", ok, err)
	}
	a, _ := c.ArrayAt(dst, tag.Offset)
	if s, _ := a.Text(); s != "ok" {
		t.Errorf("tag = %q", s)
	}

	_, ok, err = root.Search(Name("missing"))
	if err != nil || ok {
		t.Errorf("missing: %v %v", ok, err)
	}
}

func TestOptimize_Errors(t *testing.T) {
	c := LittleEndian

	t.Run("overlap", func(t *testing.T) {
		src := scenarioA(t, c)
		buf := append(src, make([]byte, len(src))...)
		_, err := c.Optimize(buf[4:], buf[:len(src)])
		requireKind(t, err, errors.KindOverlap)
	})

	t.Run("same buffer", func(t *testing.T) {
		src := scenarioA(t, c)
		_, err := c.Optimize(src, src)
		requireKind(t, err, errors.KindOverlap)
	})

	t.Run("destination too small", func(t *testing.T) {
		src := scenarioA(t, c)
		_, err := c.Optimize(make([]byte, len(src)-1), src)
		e := requireKind(t, err, errors.KindOutOfBounds)
		if e.Phase != errors.PhaseOptimize {
			t.Errorf("phase %s", e.Phase)
		}
	})

	t.Run("stored size mismatch", func(t *testing.T) {
		src := scenarioA(t, c)
		// first record's size word
		_ = c.PutUint32(src, TagSize+GenericHeaderSize+8, 8)
		_, err := c.Optimize(make([]byte, len(src)), src)
		e := requireKind(t, err, errors.KindInvalidData)
		want := []string{"[0]", "name:0x00000001"}
		if diff := cmp.Diff(want, e.Path); diff != "" {
			t.Errorf("path (-want +got):\n%s", diff)
		}
	})

	t.Run("unknown nested type", func(t *testing.T) {
		src := scenarioA(t, c)
		_ = c.PutInt32(src, TagSize+GenericHeaderSize+4, 200)
		_, err := c.Optimize(make([]byte, len(src)), src)
		requireKind(t, err, errors.KindInvalidData)
	})

	t.Run("truncated", func(t *testing.T) {
		src := scenarioA(t, c)
		src = src[:len(src)-3]
		_, err := c.Optimize(make([]byte, len(src)), src)
		requireKind(t, err, errors.KindOutOfBounds)
	})

	t.Run("field header cut short", func(t *testing.T) {
		// one field declared, only its name word present
		src := concat(u32(c, uint32(TypeGenericObject)), u32(c, 1), u32(c, GenericFieldHeaderSize), u32(c, 1))
		_, err := c.Optimize(make([]byte, len(src)), src)
		requireKind(t, err, errors.KindOutOfBounds)
	})

	t.Run("empty", func(t *testing.T) {
		n, err := c.Optimize(nil, nil)
		if err != nil || n != 0 {
			t.Errorf("Optimize(nil, nil) = %d, %v", n, err)
		}
	})
}

func TestOptimize_Logging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	c := New(Options{Order: LittleEndian.Order(), Logger: zap.New(core)})

	src := concat(scenarioA(t, c), tagged(t, c, TypeUint8, []byte{1}))
	if _, err := c.Optimized(src); err != nil {
		t.Fatal(err)
	}

	entries := logs.FilterMessage("optimized field").All()
	if len(entries) != 2 {
		t.Fatalf("got %d log entries, want 2", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["type"] != "generic_object" || ctx["bytes"] != uint32(len(src)-5) {
		t.Errorf("first entry context = %v", ctx)
	}
}
