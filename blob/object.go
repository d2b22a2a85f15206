package blob

import (
	"github.com/wippyai/fieldblob/blob/internal/abi"
	"github.com/wippyai/fieldblob/errors"
)

// Object is the read capability shared by both object encodings.
type Object interface {
	// Len returns the number of fields.
	Len() uint32
	// FieldAt returns field i in declaration order.
	FieldAt(i uint32) (Member, error)
	// Members returns every field in declaration order.
	Members() ([]Member, error)
	// Search returns the first field named name. A missing name is not
	// an error.
	Search(name uint32) (Field, bool, error)
}

var (
	_ Object = (*GenericObject)(nil)
	_ Object = (*RuntimeObject)(nil)
)

// GenericObject is a decoded construction-time object: inline
// {name, type, size, data} records behind a header that stores their
// combined size.
type GenericObject struct {
	c   *Codec
	buf []byte

	Offset       uint32 // start of the header
	Count        uint32
	DataSize     uint32
	FieldsOffset uint32
}

// GenericObjectAt decodes the header of the untagged generic object at
// off.
func (c *Codec) GenericObjectAt(buf []byte, off uint32) (*GenericObject, error) {
	count, err := c.Uint32(buf, off)
	if err != nil {
		return nil, err
	}
	size, err := c.GenericObjectDataSize(buf, off)
	if err != nil {
		return nil, err
	}
	return &GenericObject{
		c:            c,
		buf:          buf,
		Offset:       off,
		Count:        count,
		DataSize:     size,
		FieldsOffset: off + GenericHeaderSize,
	}, nil
}

// GenericObjectFieldAt decodes field i of the generic object at off.
func (c *Codec) GenericObjectFieldAt(buf []byte, off, i uint32) (Member, error) {
	o, err := c.GenericObjectAt(buf, off)
	if err != nil {
		return Member{}, err
	}
	return o.FieldAt(i)
}

// GenericObjectSearch finds the first field named name in the generic
// object at off.
func (c *Codec) GenericObjectSearch(buf []byte, off, name uint32) (Field, bool, error) {
	o, err := c.GenericObjectAt(buf, off)
	if err != nil {
		return Field{}, false, err
	}
	return o.Search(name)
}

func (o *GenericObject) Len() uint32 { return o.Count }

// TotalSize returns the header plus inline fields size.
func (o *GenericObject) TotalSize() uint32 { return GenericHeaderSize + o.DataSize }

// record decodes the inline field at cursor and checks it against the
// object's bounds and the stored size.
func (o *GenericObject) record(cursor uint32, depth int) (Member, uint32, error) {
	end := o.FieldsOffset + o.DataSize
	if !fitsWithin(cursor, GenericFieldHeaderSize, end) {
		return Member{}, 0, errors.InvalidData(errors.PhaseRead, nil, "field header past end of object")
	}
	name, t, stored, err := o.c.fieldHeader(o.buf, cursor)
	if err != nil {
		return Member{}, 0, err
	}
	f, err := o.c.valueAt(o.buf, t, cursor+GenericFieldHeaderSize, depth+1)
	if err != nil {
		return Member{}, 0, errors.PrependPath(err, nameSegment(name))
	}
	if f.Size != stored {
		e := errors.SizeMismatch(errors.PhaseRead, t.String(), stored, f.Size)
		e.Path = []string{nameSegment(name)}
		return Member{}, 0, e
	}
	if f.End() > end {
		return Member{}, 0, errors.New(errors.PhaseRead, errors.KindInvalidData).
			Path(nameSegment(name)).
			Detail("field data past end of object").
			Build()
	}
	return Member{Name: name, Field: f}, f.End(), nil
}

// fieldHeader reads the name, type and stored size of the inline field
// record at cursor.
func (c *Codec) fieldHeader(buf []byte, cursor uint32) (name uint32, t Type, stored uint32, err error) {
	if name, err = c.Uint32(buf, cursor); err != nil {
		return 0, 0, 0, err
	}
	if t, err = c.typeAt(buf, cursor+4); err != nil {
		return 0, 0, 0, err
	}
	if stored, err = c.Uint32(buf, cursor+8); err != nil {
		return 0, 0, 0, err
	}
	return name, t, stored, nil
}

// walk visits fields in order until fn returns false. A complete walk
// must consume exactly the stored data size.
func (o *GenericObject) walk(depth int, fn func(i uint32, m Member) bool) error {
	if err := o.c.enter(depth); err != nil {
		return err
	}
	cursor := o.FieldsOffset
	for i := uint32(0); i < o.Count; i++ {
		m, next, err := o.record(cursor, depth)
		if err != nil {
			return errors.PrependPath(err, indexSegment(i))
		}
		if !fn(i, m) {
			return nil
		}
		cursor = next
	}
	if cursor != o.FieldsOffset+o.DataSize {
		return errors.SizeMismatch(errors.PhaseRead, TypeGenericObject.String(), o.DataSize, cursor-o.FieldsOffset)
	}
	return nil
}

func (o *GenericObject) FieldAt(i uint32) (Member, error) {
	if i >= o.Count {
		return Member{}, errors.IndexOutOfRange(errors.PhaseRead, nil, i, o.Count)
	}
	var out Member
	err := o.walk(0, func(j uint32, m Member) bool {
		if j == i {
			out = m
			return false
		}
		return true
	})
	return out, err
}

func (o *GenericObject) Members() ([]Member, error) {
	out := make([]Member, 0, o.Count)
	err := o.walk(0, func(_ uint32, m Member) bool {
		out = append(out, m)
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Search scans the inline fields in order. Each step resolves the size
// of the current value to find the next record.
func (o *GenericObject) Search(name uint32) (Field, bool, error) {
	var (
		out   Field
		found bool
	)
	err := o.walk(0, func(_ uint32, m Member) bool {
		if m.Name == name {
			out, found = m.Field, true
			return false
		}
		return true
	})
	if err != nil {
		return Field{}, false, err
	}
	return out, found, nil
}

// RuntimeObject is a decoded access-time object: parallel name and
// offset tables followed by a blob of {type, data} values.
type RuntimeObject struct {
	c   *Codec
	buf []byte

	Offset        uint32 // start of the header
	Count         uint32
	NamesOffset   uint32
	OffsetsOffset uint32
	BlobOffset    uint32
}

// RuntimeObjectAt decodes the header and tables of the untagged runtime
// object at off.
func (c *Codec) RuntimeObjectAt(buf []byte, off uint32) (*RuntimeObject, error) {
	count, err := c.Uint32(buf, off)
	if err != nil {
		return nil, err
	}
	names, offsets, values, err := runtimeLayout(off, count)
	if err != nil {
		return nil, err
	}
	if err := c.check(errors.PhaseRead, buf, off, values-off); err != nil {
		return nil, err
	}
	return &RuntimeObject{
		c:             c,
		buf:           buf,
		Offset:        off,
		Count:         count,
		NamesOffset:   names,
		OffsetsOffset: offsets,
		BlobOffset:    values,
	}, nil
}

// RuntimeObjectFieldAt decodes field i of the runtime object at off.
func (c *Codec) RuntimeObjectFieldAt(buf []byte, off, i uint32) (Member, error) {
	o, err := c.RuntimeObjectAt(buf, off)
	if err != nil {
		return Member{}, err
	}
	return o.FieldAt(i)
}

// RuntimeObjectSearch finds the first field named name in the runtime
// object at off.
func (c *Codec) RuntimeObjectSearch(buf []byte, off, name uint32) (Field, bool, error) {
	o, err := c.RuntimeObjectAt(buf, off)
	if err != nil {
		return Field{}, false, err
	}
	return o.Search(name)
}

func (o *RuntimeObject) Len() uint32 { return o.Count }

// TotalSize returns the header, tables and blob size. The blob size is
// not stored, so every value is measured.
func (o *RuntimeObject) TotalSize() (uint32, error) {
	return o.c.RuntimeObjectTotalSize(o.buf, o.Offset)
}

// Name returns the name of field i.
func (o *RuntimeObject) Name(i uint32) (uint32, error) {
	if i >= o.Count {
		return 0, errors.IndexOutOfRange(errors.PhaseRead, nil, i, o.Count)
	}
	return o.c.Uint32(o.buf, o.NamesOffset+i*4)
}

// ValueOffset returns the blob-relative offset of field i.
func (o *RuntimeObject) ValueOffset(i uint32) (uint32, error) {
	if i >= o.Count {
		return 0, errors.IndexOutOfRange(errors.PhaseRead, nil, i, o.Count)
	}
	return o.c.Uint32(o.buf, o.OffsetsOffset+i*4)
}

func (o *RuntimeObject) value(i uint32) (Field, error) {
	rel, err := o.ValueOffset(i)
	if err != nil {
		return Field{}, err
	}
	at, err := addSize(o.BlobOffset, rel)
	if err != nil {
		return Field{}, err
	}
	t, err := o.c.typeAt(o.buf, at)
	if err != nil {
		return Field{}, err
	}
	return o.c.valueAt(o.buf, t, at+RuntimeValueHeaderSize, 1)
}

func (o *RuntimeObject) FieldAt(i uint32) (Member, error) {
	name, err := o.Name(i)
	if err != nil {
		return Member{}, err
	}
	f, err := o.value(i)
	if err != nil {
		return Member{}, errors.PrependPath(err, nameSegment(name))
	}
	return Member{Name: name, Field: f}, nil
}

func (o *RuntimeObject) Members() ([]Member, error) {
	out := make([]Member, 0, o.Count)
	for i := uint32(0); i < o.Count; i++ {
		m, err := o.FieldAt(i)
		if err != nil {
			return nil, errors.PrependPath(err, indexSegment(i))
		}
		out = append(out, m)
	}
	return out, nil
}

// Search compares names only and decodes just the matched value.
func (o *RuntimeObject) Search(name uint32) (Field, bool, error) {
	for i := uint32(0); i < o.Count; i++ {
		n, err := o.c.Uint32(o.buf, o.NamesOffset+i*4)
		if err != nil {
			return Field{}, false, err
		}
		if n != name {
			continue
		}
		f, err := o.value(i)
		if err != nil {
			return Field{}, false, errors.PrependPath(err, nameSegment(name))
		}
		return f, true, nil
	}
	return Field{}, false, nil
}

// PrototypeField is one declared field of a prototype.
type PrototypeField struct {
	Name uint32
	Type Type
}

// Prototype is a decoded schema record: names and types, no values.
type Prototype struct {
	c   *Codec
	buf []byte

	Offset      uint32 // start of the header
	Count       uint32
	NamesOffset uint32
	TypesOffset uint32
}

// PrototypeAt decodes the untagged prototype at off.
func (c *Codec) PrototypeAt(buf []byte, off uint32) (*Prototype, error) {
	count, err := c.Uint32(buf, off)
	if err != nil {
		return nil, err
	}
	if _, err := c.PrototypeDataSize(buf, off); err != nil {
		return nil, err
	}
	names := off + PrototypeHeaderSize
	return &Prototype{
		c:           c,
		buf:         buf,
		Offset:      off,
		Count:       count,
		NamesOffset: names,
		TypesOffset: names + count*4,
	}, nil
}

// PrototypeSearch returns the declared type of the first field named
// name in the prototype at off.
func (c *Codec) PrototypeSearch(buf []byte, off, name uint32) (Type, bool, error) {
	p, err := c.PrototypeAt(buf, off)
	if err != nil {
		return TypeNone, false, err
	}
	return p.Search(name)
}

func (p *Prototype) Len() uint32 { return p.Count }

// TotalSize returns the header plus tables size.
func (p *Prototype) TotalSize() uint32 { return PrototypeHeaderSize + p.Count*prototypeEntrySize }

func (p *Prototype) typeOf(i uint32) (Type, error) {
	at := p.TypesOffset + i*4
	t, err := p.c.typeAt(p.buf, at)
	if err != nil {
		return TypeNone, err
	}
	if t == TypeNone || !t.Valid() {
		return TypeNone, errors.UnknownType(errors.PhaseRead, at, int32(t))
	}
	return t, nil
}

func (p *Prototype) FieldAt(i uint32) (PrototypeField, error) {
	if i >= p.Count {
		return PrototypeField{}, errors.IndexOutOfRange(errors.PhaseRead, nil, i, p.Count)
	}
	name, err := p.c.Uint32(p.buf, p.NamesOffset+i*4)
	if err != nil {
		return PrototypeField{}, err
	}
	t, err := p.typeOf(i)
	if err != nil {
		return PrototypeField{}, errors.PrependPath(err, nameSegment(name))
	}
	return PrototypeField{Name: name, Type: t}, nil
}

func (p *Prototype) Fields() ([]PrototypeField, error) {
	out := make([]PrototypeField, 0, p.Count)
	for i := uint32(0); i < p.Count; i++ {
		f, err := p.FieldAt(i)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func (p *Prototype) Search(name uint32) (Type, bool, error) {
	for i := uint32(0); i < p.Count; i++ {
		n, err := p.c.Uint32(p.buf, p.NamesOffset+i*4)
		if err != nil {
			return TypeNone, false, err
		}
		if n != name {
			continue
		}
		t, err := p.typeOf(i)
		if err != nil {
			return TypeNone, false, errors.PrependPath(err, nameSegment(name))
		}
		return t, true, nil
	}
	return TypeNone, false, nil
}

// ObjectAt returns the object view for a GENERIC_OBJECT or
// RUNTIME_OBJECT descriptor.
func (c *Codec) ObjectAt(buf []byte, f Field) (Object, error) {
	switch f.Type {
	case TypeGenericObject:
		return c.GenericObjectAt(buf, f.Offset)
	case TypeRuntimeObject:
		return c.RuntimeObjectAt(buf, f.Offset)
	}
	return nil, errors.TypeMismatch(errors.PhaseRead, nil, f.Type.String(), "object")
}

// Value returns the Go value of the field f describes. Integers map to
// the Go type of the same width, BOOLEAN to bool, CHAR to byte, vectors
// and matrices to Vec2..Mat4, NULL to nil, and composites to their views
// (*Array, *GenericObject, *RuntimeObject, *Prototype).
func (c *Codec) Value(buf []byte, f Field) (any, error) {
	off := f.Offset
	switch f.Type {
	case TypeNull:
		return nil, nil
	case TypeBool:
		v, err := c.Uint8(buf, off)
		return v != 0, err
	case TypeChar, TypeUint8:
		return c.Uint8(buf, off)
	case TypeInt8:
		return c.Int8(buf, off)
	case TypeInt16:
		return c.Int16(buf, off)
	case TypeUint16:
		return c.Uint16(buf, off)
	case TypeInt32:
		return c.Int32(buf, off)
	case TypeUint32:
		return c.Uint32(buf, off)
	case TypeInt64:
		return c.Int64(buf, off)
	case TypeUint64:
		return c.Uint64(buf, off)
	case TypeFloat32:
		return c.Float32(buf, off)
	case TypeFloat64:
		return c.Float64(buf, off)
	case TypeVector2F:
		var v Vec2
		err := c.readFloats(buf, off, v[:])
		return v, err
	case TypeVector3F:
		var v Vec3
		err := c.readFloats(buf, off, v[:])
		return v, err
	case TypeVector4F:
		var v Vec4
		err := c.readFloats(buf, off, v[:])
		return v, err
	case TypeMatrix2x2F:
		var m Mat2
		err := c.readFloats(buf, off, m[:])
		return m, err
	case TypeMatrix3x3F:
		var m Mat3
		err := c.readFloats(buf, off, m[:])
		return m, err
	case TypeMatrix3x4F:
		var m Mat3x4
		err := c.readFloats(buf, off, m[:])
		return m, err
	case TypeMatrix4x4F:
		var m Mat4
		err := c.readFloats(buf, off, m[:])
		return m, err
	case TypeArray:
		return c.ArrayAt(buf, off)
	case TypeGenericObject:
		return c.GenericObjectAt(buf, off)
	case TypeRuntimeObject:
		return c.RuntimeObjectAt(buf, off)
	case TypePrototype:
		return c.PrototypeAt(buf, off)
	}
	return nil, errors.UnknownType(errors.PhaseRead, off, int32(f.Type))
}

func (c *Codec) readFloats(buf []byte, off uint32, dst []float32) error {
	vs, err := c.Float32s(buf, off, len(dst))
	if err != nil {
		return err
	}
	copy(dst, vs)
	return nil
}

func fitsWithin(off, size, end uint32) bool {
	e, ok := abi.SafeAddU32(off, size)
	return ok && e <= end
}
