package blob

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/wippyai/fieldblob/blob/internal/abi"
	"github.com/wippyai/fieldblob/errors"
)

// Field writers. Each writer validates that everything it is about to
// write fits in buf before touching it, then returns the number of bytes
// written so the caller can advance its cursor.

func (c *Codec) reserve(buf []byte, off, size uint32) error {
	return c.check(errors.PhaseWrite, buf, off, size)
}

func (c *Codec) writeFixed(buf []byte, off uint32, t Type, put func(at uint32) error) (uint32, error) {
	total := t.TotalSize()
	if err := c.reserve(buf, off, total); err != nil {
		return 0, err
	}
	if err := c.putType(buf, off, t); err != nil {
		return 0, err
	}
	if err := put(off + TagSize); err != nil {
		return 0, err
	}
	return total, nil
}

func (c *Codec) WriteNull(buf []byte, off uint32) (uint32, error) {
	return c.writeFixed(buf, off, TypeNull, func(uint32) error { return nil })
}

func (c *Codec) WriteBool(buf []byte, off uint32, v bool) (uint32, error) {
	return c.writeFixed(buf, off, TypeBool, func(at uint32) error {
		return c.PutUint8(buf, at, boolByte(v))
	})
}

func (c *Codec) WriteChar(buf []byte, off uint32, v byte) (uint32, error) {
	return c.writeFixed(buf, off, TypeChar, func(at uint32) error { return c.PutUint8(buf, at, v) })
}

func (c *Codec) WriteInt8(buf []byte, off uint32, v int8) (uint32, error) {
	return c.writeFixed(buf, off, TypeInt8, func(at uint32) error { return c.PutInt8(buf, at, v) })
}

func (c *Codec) WriteUint8(buf []byte, off uint32, v uint8) (uint32, error) {
	return c.writeFixed(buf, off, TypeUint8, func(at uint32) error { return c.PutUint8(buf, at, v) })
}

func (c *Codec) WriteInt16(buf []byte, off uint32, v int16) (uint32, error) {
	return c.writeFixed(buf, off, TypeInt16, func(at uint32) error { return c.PutInt16(buf, at, v) })
}

func (c *Codec) WriteUint16(buf []byte, off uint32, v uint16) (uint32, error) {
	return c.writeFixed(buf, off, TypeUint16, func(at uint32) error { return c.PutUint16(buf, at, v) })
}

func (c *Codec) WriteInt32(buf []byte, off uint32, v int32) (uint32, error) {
	return c.writeFixed(buf, off, TypeInt32, func(at uint32) error { return c.PutInt32(buf, at, v) })
}

func (c *Codec) WriteUint32(buf []byte, off uint32, v uint32) (uint32, error) {
	return c.writeFixed(buf, off, TypeUint32, func(at uint32) error { return c.PutUint32(buf, at, v) })
}

func (c *Codec) WriteInt64(buf []byte, off uint32, v int64) (uint32, error) {
	return c.writeFixed(buf, off, TypeInt64, func(at uint32) error { return c.PutInt64(buf, at, v) })
}

func (c *Codec) WriteUint64(buf []byte, off uint32, v uint64) (uint32, error) {
	return c.writeFixed(buf, off, TypeUint64, func(at uint32) error { return c.PutUint64(buf, at, v) })
}

func (c *Codec) WriteFloat32(buf []byte, off uint32, v float32) (uint32, error) {
	return c.writeFixed(buf, off, TypeFloat32, func(at uint32) error { return c.PutFloat32(buf, at, v) })
}

func (c *Codec) WriteFloat64(buf []byte, off uint32, v float64) (uint32, error) {
	return c.writeFixed(buf, off, TypeFloat64, func(at uint32) error { return c.PutFloat64(buf, at, v) })
}

func (c *Codec) WriteVector2(buf []byte, off uint32, v Vec2) (uint32, error) {
	return c.writeFixed(buf, off, TypeVector2F, func(at uint32) error { return c.PutFloat32s(buf, at, v[:]) })
}

func (c *Codec) WriteVector3(buf []byte, off uint32, v Vec3) (uint32, error) {
	return c.writeFixed(buf, off, TypeVector3F, func(at uint32) error { return c.PutFloat32s(buf, at, v[:]) })
}

func (c *Codec) WriteVector4(buf []byte, off uint32, v Vec4) (uint32, error) {
	return c.writeFixed(buf, off, TypeVector4F, func(at uint32) error { return c.PutFloat32s(buf, at, v[:]) })
}

func (c *Codec) WriteMatrix2x2(buf []byte, off uint32, m Mat2) (uint32, error) {
	return c.writeFixed(buf, off, TypeMatrix2x2F, func(at uint32) error { return c.PutFloat32s(buf, at, m[:]) })
}

func (c *Codec) WriteMatrix3x3(buf []byte, off uint32, m Mat3) (uint32, error) {
	return c.writeFixed(buf, off, TypeMatrix3x3F, func(at uint32) error { return c.PutFloat32s(buf, at, m[:]) })
}

func (c *Codec) WriteMatrix3x4(buf []byte, off uint32, m Mat3x4) (uint32, error) {
	return c.writeFixed(buf, off, TypeMatrix3x4F, func(at uint32) error { return c.PutFloat32s(buf, at, m[:]) })
}

func (c *Codec) WriteMatrix4x4(buf []byte, off uint32, m Mat4) (uint32, error) {
	return c.writeFixed(buf, off, TypeMatrix4x4F, func(at uint32) error { return c.PutFloat32s(buf, at, m[:]) })
}

// WriteValue writes the tag of t followed by the fixed payload v. See
// PutValue for the accepted Go types.
func (c *Codec) WriteValue(buf []byte, off uint32, t Type, v any) (uint32, error) {
	if !t.IsFixed() || t == TypeNone {
		return 0, errors.New(errors.PhaseWrite, errors.KindInvalidInput).
			FieldType(t.String()).
			Detail("not a fixed-size type").
			Build()
	}
	return c.writeFixed(buf, off, t, func(at uint32) error {
		_, err := c.PutValue(buf, at, t, v)
		return err
	})
}

// PutValue writes the untagged payload of fixed type t. Integers accept
// any Go integer that fits the width, floats accept float32 or float64,
// BOOLEAN takes bool, vectors and matrices take the matching Vec/Mat
// array or a []float32 of the right length, NULL takes nil.
func (c *Codec) PutValue(buf []byte, off uint32, t Type, v any) (uint32, error) {
	if !t.IsFixed() || t == TypeNone {
		return 0, errors.New(errors.PhaseWrite, errors.KindInvalidInput).
			FieldType(t.String()).
			Detail("not a fixed-size type").
			Build()
	}
	size := t.Size()
	if err := c.reserve(buf, off, size); err != nil {
		return 0, err
	}

	mismatch := func() error {
		return errors.New(errors.PhaseWrite, errors.KindTypeMismatch).
			FieldType(t.String()).
			Detail("cannot store %T", v).
			Value(v).
			Build()
	}

	switch {
	case t == TypeNull:
		if v != nil {
			return 0, mismatch()
		}
	case t == TypeBool:
		b, ok := v.(bool)
		if !ok {
			return 0, mismatch()
		}
		buf[off] = boolByte(b)
	case t.IsInteger() || t == TypeChar:
		if err := c.putInteger(buf, off, t, v); err != nil {
			return 0, err
		}
	case t == TypeFloat32:
		f, ok := toFloat(v)
		if !ok {
			return 0, mismatch()
		}
		if err := c.PutFloat32(buf, off, float32(f)); err != nil {
			return 0, err
		}
	case t == TypeFloat64:
		f, ok := toFloat(v)
		if !ok {
			return 0, mismatch()
		}
		if err := c.PutFloat64(buf, off, f); err != nil {
			return 0, err
		}
	default:
		vs, ok := components(v)
		if !ok || len(vs) != t.Components() {
			return 0, mismatch()
		}
		if err := c.PutFloat32s(buf, off, vs); err != nil {
			return 0, err
		}
	}
	return size, nil
}

func (c *Codec) putInteger(buf []byte, off uint32, t Type, v any) error {
	var (
		u   uint64
		neg bool
	)
	switch n := v.(type) {
	case int:
		u, neg = uint64(n), n < 0
	case int8:
		u, neg = uint64(n), n < 0
	case int16:
		u, neg = uint64(n), n < 0
	case int32:
		u, neg = uint64(n), n < 0
	case int64:
		u, neg = uint64(n), n < 0
	case uint:
		u = uint64(n)
	case uint8:
		u = uint64(n)
	case uint16:
		u = uint64(n)
	case uint32:
		u = uint64(n)
	case uint64:
		u = n
	default:
		return errors.New(errors.PhaseWrite, errors.KindTypeMismatch).
			FieldType(t.String()).
			Detail("cannot store %T", v).
			Value(v).
			Build()
	}

	if !integerFits(t, u, neg) {
		return errors.New(errors.PhaseWrite, errors.KindInvalidInput).
			FieldType(t.String()).
			Detail("value %v out of range", v).
			Value(v).
			Build()
	}

	switch t.Size() {
	case 1:
		return c.PutUint8(buf, off, uint8(u))
	case 2:
		return c.PutUint16(buf, off, uint16(u))
	case 4:
		return c.PutUint32(buf, off, uint32(u))
	default:
		return c.PutUint64(buf, off, u)
	}
}

func integerFits(t Type, u uint64, neg bool) bool {
	bits := t.Size() * 8
	if t.IsSigned() {
		s := int64(u)
		if neg != (s < 0) {
			return false
		}
		if bits == 64 {
			return true
		}
		lo, hi := int64(-1)<<(bits-1), int64(1)<<(bits-1)-1
		return s >= lo && s <= hi
	}
	if neg {
		return false
	}
	return bits == 64 || u <= uint64(1)<<bits-1
}

func toFloat(v any) (float64, bool) {
	switch f := v.(type) {
	case float32:
		return float64(f), true
	case float64:
		return f, true
	}
	return 0, false
}

func components(v any) ([]float32, bool) {
	switch m := v.(type) {
	case Vec2:
		return m[:], true
	case Vec3:
		return m[:], true
	case Vec4:
		return m[:], true
	case Mat2:
		return m[:], true
	case Mat3:
		return m[:], true
	case Mat3x4:
		return m[:], true
	case Mat4:
		return m[:], true
	case []float32:
		return m, true
	}
	return nil, false
}

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}

// WriteArrayTag writes only the ARRAY tag. Header and items follow via
// WriteArrayInfo and WriteArrayData, which lets arrays of arrays be
// assembled item by item.
func (c *Codec) WriteArrayTag(buf []byte, off uint32) (uint32, error) {
	if err := c.putTypeChecked(buf, off, TypeArray); err != nil {
		return 0, err
	}
	return TagSize, nil
}

// WriteArrayInfo writes the untagged array header.
func (c *Codec) WriteArrayInfo(buf []byte, off uint32, count uint32, itemType Type) (uint32, error) {
	if itemType == TypeNone || !itemType.Valid() {
		return 0, errors.New(errors.PhaseWrite, errors.KindInvalidInput).
			Detail("invalid array item type %d", int32(itemType)).
			Value(int32(itemType)).
			Build()
	}
	if err := c.reserve(buf, off, ArrayHeaderSize); err != nil {
		return 0, err
	}
	if err := c.PutUint32(buf, off, count); err != nil {
		return 0, err
	}
	if err := c.putType(buf, off+4, itemType); err != nil {
		return 0, err
	}
	return ArrayHeaderSize, nil
}

// WriteArrayData copies pre-formatted item bytes.
func (c *Codec) WriteArrayData(buf []byte, off uint32, data []byte) (uint32, error) {
	n, err := lenU32(errors.PhaseWrite, data)
	if err != nil {
		return 0, err
	}
	if err := c.Copy(buf, off, data, 0, n); err != nil {
		return 0, err
	}
	return n, nil
}

// WriteArray writes a complete array of fixed-size items. data must hold
// exactly count items already in the codec's byte order.
func (c *Codec) WriteArray(buf []byte, off uint32, itemType Type, count uint32, data []byte) (uint32, error) {
	if itemType == TypeNone || !itemType.IsFixed() {
		return 0, errors.New(errors.PhaseWrite, errors.KindInvalidInput).
			FieldType(itemType.String()).
			Detail("array writer requires a fixed-size item type").
			Build()
	}
	want, ok := abi.SafeMulU32(count, itemType.Size())
	if !ok {
		return 0, errors.Overflow(errors.PhaseWrite, nil, "array items size")
	}
	if uint64(len(data)) != uint64(want) {
		return 0, errors.New(errors.PhaseWrite, errors.KindInvalidInput).
			FieldType(itemType.String()).
			Detail("%d items need %d bytes, got %d", count, want, len(data)).
			Build()
	}
	total, ok := abi.SafeAddU32(want, TagSize+ArrayHeaderSize)
	if !ok {
		return 0, errors.Overflow(errors.PhaseWrite, nil, "array size")
	}
	if err := c.reserve(buf, off, total); err != nil {
		return 0, err
	}

	n, err := c.WriteArrayTag(buf, off)
	if err != nil {
		return 0, err
	}
	m, err := c.WriteArrayInfo(buf, off+n, count, itemType)
	if err != nil {
		return 0, err
	}
	if _, err := c.WriteArrayData(buf, off+n+m, data); err != nil {
		return 0, err
	}
	return total, nil
}

// WriteFloat32Array writes an ARRAY of FLOAT32 from vs.
func (c *Codec) WriteFloat32Array(buf []byte, off uint32, vs []float32) (uint32, error) {
	if uint64(len(vs)) > math.MaxUint32/4 {
		return 0, errors.Overflow(errors.PhaseWrite, nil, "float32 array")
	}
	data := make([]byte, len(vs)*4)
	if err := c.PutFloat32s(data, 0, vs); err != nil {
		return 0, err
	}
	return c.WriteArray(buf, off, TypeFloat32, uint32(len(vs)), data)
}

// StringSize returns the bytes WriteString needs for s.
func StringSize(s string) uint32 {
	return TagSize + ArrayHeaderSize + uint32(len(s)) + 1
}

// WriteString writes s as a NUL-terminated ARRAY of CHAR. The stored
// count includes the terminator.
func (c *Codec) WriteString(buf []byte, off uint32, s string) (uint32, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return 0, errors.InvalidInput(errors.PhaseWrite, "string contains NUL")
	}
	if uint64(len(s)) >= math.MaxUint32-TagSize-ArrayHeaderSize {
		return 0, errors.Overflow(errors.PhaseWrite, nil, "string length")
	}
	data := make([]byte, len(s)+1)
	copy(data, s)
	return c.WriteArray(buf, off, TypeChar, uint32(len(data)), data)
}

// WriteGenericObjectTag writes only the GENERIC_OBJECT tag.
func (c *Codec) WriteGenericObjectTag(buf []byte, off uint32) (uint32, error) {
	if err := c.putTypeChecked(buf, off, TypeGenericObject); err != nil {
		return 0, err
	}
	return TagSize, nil
}

// WriteGenericObjectInfo writes the untagged generic object header.
// fieldDataSize is the byte length of all inline field records that
// follow.
func (c *Codec) WriteGenericObjectInfo(buf []byte, off uint32, fieldCount, fieldDataSize uint32) (uint32, error) {
	if err := c.reserve(buf, off, GenericHeaderSize); err != nil {
		return 0, err
	}
	if err := c.PutUint32(buf, off, fieldCount); err != nil {
		return 0, err
	}
	if err := c.PutUint32(buf, off+4, fieldDataSize); err != nil {
		return 0, err
	}
	return GenericHeaderSize, nil
}

// WriteGenericObjectFieldHeader writes the {name, type, size} prefix of
// an inline field. The caller writes size bytes of untagged data after
// it.
func (c *Codec) WriteGenericObjectFieldHeader(buf []byte, off uint32, name uint32, t Type, size uint32) (uint32, error) {
	if t == TypeNone || !t.Valid() {
		return 0, errors.New(errors.PhaseWrite, errors.KindInvalidInput).
			Path(nameSegment(name)).
			Detail("invalid field type %d", int32(t)).
			Value(int32(t)).
			Build()
	}
	if t.IsFixed() && size != t.Size() {
		return 0, errors.New(errors.PhaseWrite, errors.KindInvalidInput).
			Path(nameSegment(name)).
			FieldType(t.String()).
			Detail("size %d, want %d", size, t.Size()).
			Build()
	}
	if err := c.reserve(buf, off, GenericFieldHeaderSize); err != nil {
		return 0, err
	}
	if err := c.PutUint32(buf, off, name); err != nil {
		return 0, err
	}
	if err := c.putType(buf, off+4, t); err != nil {
		return 0, err
	}
	if err := c.PutUint32(buf, off+8, size); err != nil {
		return 0, err
	}
	return GenericFieldHeaderSize, nil
}

// WriteGenericObjectField appends one inline field record. data is the
// untagged value of type t; its length must equal the size the value
// resolves to.
func (c *Codec) WriteGenericObjectField(buf []byte, off uint32, name uint32, t Type, data []byte) (uint32, error) {
	size, err := lenU32(errors.PhaseWrite, data)
	if err != nil {
		return 0, err
	}
	if t.IsVariable() {
		resolved, err := c.DataSize(data, t, 0)
		if err != nil {
			return 0, errors.PrependPath(err, nameSegment(name))
		}
		if resolved != size {
			e := errors.SizeMismatch(errors.PhaseWrite, t.String(), size, resolved)
			e.Kind = errors.KindInvalidInput
			e.Path = []string{nameSegment(name)}
			return 0, e
		}
	}
	total, ok := abi.SafeAddU32(size, GenericFieldHeaderSize)
	if !ok {
		return 0, errors.Overflow(errors.PhaseWrite, nil, "field size")
	}
	if err := c.reserve(buf, off, total); err != nil {
		return 0, err
	}
	n, err := c.WriteGenericObjectFieldHeader(buf, off, name, t, size)
	if err != nil {
		return 0, err
	}
	if err := c.Copy(buf, off+n, data, 0, size); err != nil {
		return 0, err
	}
	return total, nil
}

// RuntimeObjectSize returns the untagged size of a runtime object with
// k fields and a value blob of blobSize bytes.
func RuntimeObjectSize(k, blobSize uint32) (uint32, bool) {
	tables, ok := abi.SafeMulU32(k, runtimeEntrySize)
	if !ok {
		return 0, false
	}
	size, ok := abi.SafeAddU32(tables, RuntimeHeaderSize)
	if !ok {
		return 0, false
	}
	return abi.SafeAddU32(size, blobSize)
}

// WriteRuntimeObject writes a tagged runtime object in one call.
func (c *Codec) WriteRuntimeObject(buf []byte, off uint32, names, offsets []uint32, values []byte) (uint32, error) {
	if err := c.reserve(buf, off, TagSize); err != nil {
		return 0, err
	}
	n, err := c.WriteRuntimeObjectData(buf, off+TagSize, names, offsets, values)
	if err != nil {
		return 0, err
	}
	if err := c.putType(buf, off, TypeRuntimeObject); err != nil {
		return 0, err
	}
	return n + TagSize, nil
}

// WriteRuntimeObjectData writes an untagged runtime object. offsets are
// relative to the start of values, and every offset must address a
// {type, data} record inside values.
func (c *Codec) WriteRuntimeObjectData(buf []byte, off uint32, names, offsets []uint32, values []byte) (uint32, error) {
	if len(names) != len(offsets) {
		return 0, errors.InvalidInput(errors.PhaseWrite,
			fmt.Sprintf("%d names but %d offsets", len(names), len(offsets)))
	}
	k, err := lenU32(errors.PhaseWrite, names)
	if err != nil {
		return 0, err
	}
	blobSize, err := lenU32(errors.PhaseWrite, values)
	if err != nil {
		return 0, err
	}
	if err := c.checkRuntimeValues(names, offsets, values); err != nil {
		return 0, err
	}
	total, ok := RuntimeObjectSize(k, blobSize)
	if !ok {
		return 0, errors.Overflow(errors.PhaseWrite, nil, "runtime object size")
	}
	if err := c.reserve(buf, off, total); err != nil {
		return 0, err
	}

	namesOff, offsetsOff, valuesOff, err := runtimeLayout(off, k)
	if err != nil {
		return 0, err
	}
	if err := c.PutUint32(buf, off, k); err != nil {
		return 0, err
	}
	if err := c.PutUint32(buf, off+4, 0); err != nil {
		return 0, err
	}
	for i := uint32(0); i < k; i++ {
		if err := c.PutUint32(buf, namesOff+i*4, names[i]); err != nil {
			return 0, err
		}
		if err := c.PutUint32(buf, offsetsOff+i*4, offsets[i]); err != nil {
			return 0, err
		}
	}
	if err := c.Copy(buf, valuesOff, values, 0, blobSize); err != nil {
		return 0, err
	}
	return total, nil
}

// checkRuntimeValues verifies that the records addressed by offsets sit
// back to back, in offset order, and cover values exactly.
func (c *Codec) checkRuntimeValues(names, offsets []uint32, values []byte) error {
	order := make([]int, len(offsets))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(offsets[a], offsets[b])
	})

	blobSize := uint32(len(values))
	cursor := uint32(0)
	for _, i := range order {
		if offsets[i] != cursor {
			return errors.New(errors.PhaseWrite, errors.KindInvalidInput).
				Path(nameSegment(names[i])).
				Detail("value offset %d, want %d", offsets[i], cursor).
				Build()
		}
		size, err := c.FieldTotalSize(values, cursor)
		if err != nil {
			return errors.New(errors.PhaseWrite, errors.KindInvalidInput).
				Path(nameSegment(names[i])).
				Detail("invalid value record at offset %d", cursor).
				Cause(err).
				Build()
		}
		next, ok := abi.SafeAddU32(cursor, size)
		if !ok || next > blobSize {
			return errors.New(errors.PhaseWrite, errors.KindInvalidInput).
				Path(nameSegment(names[i])).
				Detail("value record at offset %d runs past blob of %d bytes", cursor, blobSize).
				Build()
		}
		cursor = next
	}
	if cursor != blobSize {
		return errors.New(errors.PhaseWrite, errors.KindInvalidInput).
			Detail("records cover %d of %d value bytes", cursor, blobSize).
			Build()
	}
	return nil
}

// PrototypeSize returns the untagged size of a prototype with k fields.
func PrototypeSize(k uint32) (uint32, bool) {
	tables, ok := abi.SafeMulU32(k, prototypeEntrySize)
	if !ok {
		return 0, false
	}
	return abi.SafeAddU32(tables, PrototypeHeaderSize)
}

// WritePrototype writes a tagged prototype in one call.
func (c *Codec) WritePrototype(buf []byte, off uint32, names []uint32, types []Type) (uint32, error) {
	if err := c.reserve(buf, off, TagSize); err != nil {
		return 0, err
	}
	n, err := c.WritePrototypeData(buf, off+TagSize, names, types)
	if err != nil {
		return 0, err
	}
	if err := c.putType(buf, off, TypePrototype); err != nil {
		return 0, err
	}
	return n + TagSize, nil
}

// WritePrototypeData writes an untagged prototype.
func (c *Codec) WritePrototypeData(buf []byte, off uint32, names []uint32, types []Type) (uint32, error) {
	if len(names) != len(types) {
		return 0, errors.InvalidInput(errors.PhaseWrite,
			fmt.Sprintf("%d names but %d types", len(names), len(types)))
	}
	for i, t := range types {
		if t == TypeNone || !t.Valid() {
			return 0, errors.New(errors.PhaseWrite, errors.KindInvalidInput).
				Path(nameSegment(names[i])).
				Detail("invalid field type %d", int32(t)).
				Value(int32(t)).
				Build()
		}
	}
	k, err := lenU32(errors.PhaseWrite, names)
	if err != nil {
		return 0, err
	}
	total, ok := PrototypeSize(k)
	if !ok {
		return 0, errors.Overflow(errors.PhaseWrite, nil, "prototype size")
	}
	if err := c.reserve(buf, off, total); err != nil {
		return 0, err
	}

	if err := c.PutUint32(buf, off, k); err != nil {
		return 0, err
	}
	namesOff := off + PrototypeHeaderSize
	typesOff := namesOff + k*4
	for i := uint32(0); i < k; i++ {
		if err := c.PutUint32(buf, namesOff+i*4, names[i]); err != nil {
			return 0, err
		}
		if err := c.putType(buf, typesOff+i*4, types[i]); err != nil {
			return 0, err
		}
	}
	return total, nil
}

func (c *Codec) putTypeChecked(buf []byte, off uint32, t Type) error {
	if err := c.reserve(buf, off, TagSize); err != nil {
		return err
	}
	return c.putType(buf, off, t)
}

func lenU32[T any](phase errors.Phase, s []T) (uint32, error) {
	if uint64(len(s)) > math.MaxUint32 {
		return 0, errors.Overflow(phase, nil, "length")
	}
	return uint32(len(s)), nil
}
