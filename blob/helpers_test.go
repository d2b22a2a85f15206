package blob

import (
	"fmt"
	"testing"

	"github.com/wippyai/fieldblob/errors"
)

type rec struct {
	name uint32
	typ  Type
	data []byte
}

// genericData builds an untagged generic object from records.
func genericData(t testing.TB, c *Codec, recs ...rec) []byte {
	t.Helper()
	size := uint32(0)
	for _, r := range recs {
		size += GenericFieldHeaderSize + uint32(len(r.data))
	}
	buf := make([]byte, GenericHeaderSize+size)
	off, err := c.WriteGenericObjectInfo(buf, 0, uint32(len(recs)), size)
	if err != nil {
		t.Fatalf("WriteGenericObjectInfo: %v", err)
	}
	for _, r := range recs {
		n, err := c.WriteGenericObjectField(buf, off, r.name, r.typ, r.data)
		if err != nil {
			t.Fatalf("WriteGenericObjectField(%d): %v", r.name, err)
		}
		off += n
	}
	return buf
}

// arrayData builds an untagged array from pre-encoded items.
func arrayData(t testing.TB, c *Codec, itemType Type, count uint32, items ...[]byte) []byte {
	t.Helper()
	buf := make([]byte, ArrayHeaderSize)
	if _, err := c.WriteArrayInfo(buf, 0, count, itemType); err != nil {
		t.Fatalf("WriteArrayInfo: %v", err)
	}
	for _, item := range items {
		buf = append(buf, item...)
	}
	return buf
}

func tagged(t testing.TB, c *Codec, typ Type, data []byte) []byte {
	t.Helper()
	buf := make([]byte, TagSize+len(data))
	if err := c.PutInt32(buf, 0, int32(typ)); err != nil {
		t.Fatalf("PutInt32: %v", err)
	}
	copy(buf[TagSize:], data)
	return buf
}

func u32(c *Codec, v uint32) []byte {
	b := make([]byte, 4)
	_ = c.PutUint32(b, 0, v)
	return b
}

func floats(c *Codec, vs ...float32) []byte {
	b := make([]byte, 4*len(vs))
	_ = c.PutFloat32s(b, 0, vs)
	return b
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func requireKind(t *testing.T, err error, kind errors.Kind) *errors.Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	e, ok := err.(*errors.Error)
	if !ok {
		t.Fatalf("expected *errors.Error, got %T: %v", err, err)
	}
	if e.Kind != kind {
		t.Fatalf("expected kind %s, got %s: %v", kind, e.Kind, e)
	}
	return e
}

// flatten lists every leaf under f as "path type value". Object kinds are
// folded together so generic and runtime forms compare equal.
func flatten(t *testing.T, c *Codec, buf []byte, f Field, path string, out *[]string) {
	t.Helper()
	switch f.Type {
	case TypeGenericObject, TypeRuntimeObject:
		o, err := c.ObjectAt(buf, f)
		if err != nil {
			t.Fatalf("%s: ObjectAt: %v", path, err)
		}
		members, err := o.Members()
		if err != nil {
			t.Fatalf("%s: Members: %v", path, err)
		}
		*out = append(*out, fmt.Sprintf("%s object %d", path, len(members)))
		for _, m := range members {
			flatten(t, c, buf, m.Field, fmt.Sprintf("%s/%x", path, m.Name), out)
		}
	case TypeArray:
		a, err := c.ArrayAt(buf, f.Offset)
		if err != nil {
			t.Fatalf("%s: ArrayAt: %v", path, err)
		}
		items, err := a.Items()
		if err != nil {
			t.Fatalf("%s: Items: %v", path, err)
		}
		*out = append(*out, fmt.Sprintf("%s array %d", path, a.Count))
		for i, item := range items {
			flatten(t, c, buf, item, fmt.Sprintf("%s[%d]", path, i), out)
		}
	case TypePrototype:
		p, err := c.PrototypeAt(buf, f.Offset)
		if err != nil {
			t.Fatalf("%s: PrototypeAt: %v", path, err)
		}
		fields, err := p.Fields()
		if err != nil {
			t.Fatalf("%s: Fields: %v", path, err)
		}
		*out = append(*out, fmt.Sprintf("%s prototype %v", path, fields))
	default:
		v, err := c.Value(buf, f)
		if err != nil {
			t.Fatalf("%s: Value: %v", path, err)
		}
		*out = append(*out, fmt.Sprintf("%s %s %v", path, f.Type, v))
	}
}

func leaves(t *testing.T, c *Codec, buf []byte) []string {
	t.Helper()
	fields, err := c.Fields(buf)
	if err != nil {
		t.Fatalf("Fields: %v", err)
	}
	var out []string
	for i, f := range fields {
		flatten(t, c, buf, f, fmt.Sprintf("#%d", i), &out)
	}
	return out
}
