package blob

import (
	"fmt"

	"github.com/wippyai/fieldblob/errors"
)

// Field describes a value inside a buffer without copying it. Offset is
// the position of the value's data (past any type tag) and Size is the
// byte length of that data, including composite headers.
type Field struct {
	Type   Type
	Offset uint32
	Size   uint32
}

// TotalSize returns the size the value occupies as a tagged field.
func (f Field) TotalSize() uint32 { return f.Size + TagSize }

// End returns the offset just past the value's data.
func (f Field) End() uint32 { return f.Offset + f.Size }

// IsZero reports whether f is the not-found descriptor.
func (f Field) IsZero() bool { return f.Type == TypeNone }

// Member is an object field together with its name.
type Member struct {
	Name uint32
	Field
}

// FieldAt decodes the tagged field at off.
func (c *Codec) FieldAt(buf []byte, off uint32) (Field, error) {
	t, err := c.typeAt(buf, off)
	if err != nil {
		return Field{}, err
	}
	return c.valueAt(buf, t, off+TagSize, 0)
}

// ValueAt decodes an untagged value of type t at off, as found in array
// items and inline object fields.
func (c *Codec) ValueAt(buf []byte, t Type, off uint32) (Field, error) {
	return c.valueAt(buf, t, off, 0)
}

func (c *Codec) valueAt(buf []byte, t Type, off uint32, depth int) (Field, error) {
	size, err := c.dataSize(buf, t, off, depth)
	if err != nil {
		return Field{}, err
	}
	return Field{Type: t, Offset: off, Size: size}, nil
}

// Fields decodes the sequence of top-level fields that fills buf.
func (c *Codec) Fields(buf []byte) ([]Field, error) {
	end, err := lenU32(errors.PhaseRead, buf)
	if err != nil {
		return nil, err
	}
	var out []Field
	for off := uint32(0); off < end; {
		f, err := c.FieldAt(buf, off)
		if err != nil {
			return nil, errors.PrependPath(err, indexSegment(uint32(len(out))))
		}
		out = append(out, f)
		off = f.End()
	}
	return out, nil
}

// Array is a decoded array header bound to its buffer.
type Array struct {
	c   *Codec
	buf []byte

	Offset      uint32 // start of the header
	Count       uint32
	ItemType    Type
	ItemsOffset uint32
	ItemsSize   uint32
}

// ArrayAt decodes the untagged array whose header starts at off.
func (c *Codec) ArrayAt(buf []byte, off uint32) (*Array, error) {
	return c.arrayAt(buf, off, 0)
}

func (c *Codec) arrayAt(buf []byte, off uint32, depth int) (*Array, error) {
	count, itemType, err := c.arrayHeader(buf, off)
	if err != nil {
		return nil, err
	}
	size, err := c.arrayItemsSize(buf, off, depth)
	if err != nil {
		return nil, err
	}
	return &Array{
		c:           c,
		buf:         buf,
		Offset:      off,
		Count:       count,
		ItemType:    itemType,
		ItemsOffset: off + ArrayHeaderSize,
		ItemsSize:   size,
	}, nil
}

// ArrayFieldAt decodes item i of the untagged array at off.
func (c *Codec) ArrayFieldAt(buf []byte, off, i uint32) (Field, error) {
	a, err := c.ArrayAt(buf, off)
	if err != nil {
		return Field{}, err
	}
	return a.Item(i)
}

// Item returns the descriptor of item i. Fixed-size items are addressed
// directly; composite items require walking the preceding ones.
func (a *Array) Item(i uint32) (Field, error) {
	if i >= a.Count {
		return Field{}, errors.IndexOutOfRange(errors.PhaseRead, nil, i, a.Count)
	}
	if a.ItemType.IsFixed() {
		size := a.ItemType.Size()
		return Field{Type: a.ItemType, Offset: a.ItemsOffset + i*size, Size: size}, nil
	}
	cursor := a.ItemsOffset
	for j := uint32(0); ; j++ {
		f, err := a.c.ValueAt(a.buf, a.ItemType, cursor)
		if err != nil {
			return Field{}, errors.PrependPath(err, indexSegment(j))
		}
		if j == i {
			return f, nil
		}
		cursor = f.End()
	}
}

// Items returns the descriptors of all items in order.
func (a *Array) Items() ([]Field, error) {
	out := make([]Field, 0, a.Count)
	cursor := a.ItemsOffset
	for i := uint32(0); i < a.Count; i++ {
		f, err := a.c.ValueAt(a.buf, a.ItemType, cursor)
		if err != nil {
			return nil, errors.PrependPath(err, indexSegment(i))
		}
		out = append(out, f)
		cursor = f.End()
	}
	return out, nil
}

// Bytes returns the raw item payload as a view into the buffer.
func (a *Array) Bytes() []byte {
	return a.buf[a.ItemsOffset : a.ItemsOffset+a.ItemsSize : a.ItemsOffset+a.ItemsSize]
}

// Float32s decodes an array of FLOAT32.
func (a *Array) Float32s() ([]float32, error) {
	if a.ItemType != TypeFloat32 {
		return nil, errors.TypeMismatch(errors.PhaseRead, nil, a.ItemType.String(), TypeFloat32.String())
	}
	return a.c.Float32s(a.buf, a.ItemsOffset, int(a.Count))
}

// Text returns the string held by a NUL-terminated CHAR array, without
// the terminator.
func (a *Array) Text() (string, error) {
	if a.ItemType != TypeChar {
		return "", errors.TypeMismatch(errors.PhaseRead, nil, a.ItemType.String(), TypeChar.String())
	}
	b := a.Bytes()
	if len(b) == 0 || b[len(b)-1] != 0 {
		return "", errors.InvalidData(errors.PhaseRead, nil, "string is not NUL-terminated")
	}
	return string(b[:len(b)-1]), nil
}

func nameSegment(name uint32) string {
	return fmt.Sprintf("name:0x%08x", name)
}

func indexSegment(i uint32) string {
	return fmt.Sprintf("[%d]", i)
}
