package blob

import (
	"github.com/wippyai/fieldblob/blob/internal/abi"
	"github.com/wippyai/fieldblob/errors"
)

// Size functions. Offsets passed to the *DataSize and *TotalSize
// functions point just past the type tag, at the first header word of
// the composite. "Data" sizes exclude the composite's own header,
// "total" sizes include it; neither includes the tag.

// FieldDataSize returns the size of the value that follows the tag of the
// field at off.
func (c *Codec) FieldDataSize(buf []byte, off uint32) (uint32, error) {
	t, err := c.typeAt(buf, off)
	if err != nil {
		return 0, err
	}
	return c.dataSize(buf, t, off+TagSize, 0)
}

// FieldTotalSize returns the size of the field at off including its tag.
func (c *Codec) FieldTotalSize(buf []byte, off uint32) (uint32, error) {
	size, err := c.FieldDataSize(buf, off)
	if err != nil {
		return 0, err
	}
	return addSize(size, TagSize)
}

// DataSize returns the size of an untagged value of type t at off. This
// is the unit every composite is measured in: array items, inline object
// fields and runtime values all carry their type out of line.
func (c *Codec) DataSize(buf []byte, t Type, off uint32) (uint32, error) {
	return c.dataSize(buf, t, off, 0)
}

func (c *Codec) dataSize(buf []byte, t Type, off uint32, depth int) (uint32, error) {
	switch t {
	case TypeArray:
		return c.arrayTotalSize(buf, off, depth)
	case TypeGenericObject:
		return c.GenericObjectTotalSize(buf, off)
	case TypeRuntimeObject:
		return c.runtimeObjectTotalSize(buf, off, depth)
	case TypePrototype:
		return c.PrototypeTotalSize(buf, off)
	case TypeNone:
		return 0, errors.New(errors.PhaseRead, errors.KindInvalidData).
			FieldType(t.String()).
			Detail("field type none at offset %d", off).
			Build()
	}
	if !t.Valid() {
		return 0, errors.UnknownType(errors.PhaseRead, off, int32(t))
	}
	size := t.Size()
	if err := c.check(errors.PhaseRead, buf, off, size); err != nil {
		return 0, err
	}
	return size, nil
}

// ArrayDataSize returns the size of the items of the array at off. Fixed
// item types cost O(1); composite item types are summed item by item.
func (c *Codec) ArrayDataSize(buf []byte, off uint32) (uint32, error) {
	return c.arrayItemsSize(buf, off, 0)
}

// ArrayTotalSize returns the header plus items size of the array at off.
func (c *Codec) ArrayTotalSize(buf []byte, off uint32) (uint32, error) {
	return c.arrayTotalSize(buf, off, 0)
}

func (c *Codec) arrayTotalSize(buf []byte, off uint32, depth int) (uint32, error) {
	items, err := c.arrayItemsSize(buf, off, depth)
	if err != nil {
		return 0, err
	}
	return addSize(items, ArrayHeaderSize)
}

func (c *Codec) arrayHeader(buf []byte, off uint32) (uint32, Type, error) {
	count, err := c.Uint32(buf, off)
	if err != nil {
		return 0, TypeNone, err
	}
	itemType, err := c.typeAt(buf, off+4)
	if err != nil {
		return 0, TypeNone, err
	}
	if itemType == TypeNone || !itemType.Valid() {
		return 0, TypeNone, errors.New(errors.PhaseRead, errors.KindInvalidData).
			Detail("array at offset %d has item type %d", off, int32(itemType)).
			Value(int32(itemType)).
			Build()
	}
	return count, itemType, nil
}

func (c *Codec) arrayItemsSize(buf []byte, off uint32, depth int) (uint32, error) {
	if err := c.enter(depth); err != nil {
		return 0, err
	}
	count, itemType, err := c.arrayHeader(buf, off)
	if err != nil {
		return 0, err
	}
	itemsOff, err := addSize(off, ArrayHeaderSize)
	if err != nil {
		return 0, err
	}

	if itemType.IsFixed() {
		size, ok := abi.SafeMulU32(count, itemType.Size())
		if !ok {
			return 0, errors.Overflow(errors.PhaseRead, nil, "array items size")
		}
		if err := c.check(errors.PhaseRead, buf, itemsOff, size); err != nil {
			return 0, err
		}
		return size, nil
	}

	cursor := itemsOff
	for i := uint32(0); i < count; i++ {
		size, err := c.dataSize(buf, itemType, cursor, depth+1)
		if err != nil {
			return 0, errors.PrependPath(err, indexSegment(i))
		}
		if cursor, err = addSize(cursor, size); err != nil {
			return 0, err
		}
	}
	return cursor - itemsOff, nil
}

// GenericObjectDataSize returns the stored size of the inline fields of
// the generic object at off. O(1).
func (c *Codec) GenericObjectDataSize(buf []byte, off uint32) (uint32, error) {
	size, err := c.Uint32(buf, off+4)
	if err != nil {
		return 0, err
	}
	if err := c.check(errors.PhaseRead, buf, off+GenericHeaderSize, size); err != nil {
		return 0, err
	}
	return size, nil
}

// GenericObjectTotalSize returns the header plus inline fields size of the
// generic object at off. O(1).
func (c *Codec) GenericObjectTotalSize(buf []byte, off uint32) (uint32, error) {
	size, err := c.GenericObjectDataSize(buf, off)
	if err != nil {
		return 0, err
	}
	return addSize(size, GenericHeaderSize)
}

// RuntimeObjectDataSize returns the size of the name table, offset table
// and value blob of the runtime object at off. No aggregate size is
// stored, so every immediate value is measured: O(k) in the field count.
func (c *Codec) RuntimeObjectDataSize(buf []byte, off uint32) (uint32, error) {
	total, err := c.runtimeObjectTotalSize(buf, off, 0)
	if err != nil {
		return 0, err
	}
	return total - RuntimeHeaderSize, nil
}

// RuntimeObjectTotalSize returns the header plus data size of the runtime
// object at off.
func (c *Codec) RuntimeObjectTotalSize(buf []byte, off uint32) (uint32, error) {
	return c.runtimeObjectTotalSize(buf, off, 0)
}

// runtimeLayout returns the offsets of the name table, offset table and
// value blob of a runtime object with count fields at off.
func runtimeLayout(off, count uint32) (names, offsets, values uint32, err error) {
	table, ok := abi.SafeMulU32(count, 4)
	if !ok {
		return 0, 0, 0, errors.Overflow(errors.PhaseRead, nil, "runtime object table")
	}
	if names, err = addSize(off, RuntimeHeaderSize); err != nil {
		return 0, 0, 0, err
	}
	if offsets, err = addSize(names, table); err != nil {
		return 0, 0, 0, err
	}
	if values, err = addSize(offsets, table); err != nil {
		return 0, 0, 0, err
	}
	return names, offsets, values, nil
}

func (c *Codec) runtimeObjectTotalSize(buf []byte, off uint32, depth int) (uint32, error) {
	if err := c.enter(depth); err != nil {
		return 0, err
	}
	count, err := c.Uint32(buf, off)
	if err != nil {
		return 0, err
	}
	_, offsets, values, err := runtimeLayout(off, count)
	if err != nil {
		return 0, err
	}
	if err := c.check(errors.PhaseRead, buf, off, values-off); err != nil {
		return 0, err
	}

	blob := uint32(0)
	for i := uint32(0); i < count; i++ {
		size, err := c.runtimeValueSize(buf, offsets, values, i, depth)
		if err != nil {
			return 0, errors.PrependPath(err, indexSegment(i))
		}
		if blob, err = addSize(blob, size); err != nil {
			return 0, err
		}
	}
	return addSize(values-off, blob)
}

// runtimeValueSize returns the type word plus data size of the i-th value.
func (c *Codec) runtimeValueSize(buf []byte, offsets, values, i uint32, depth int) (uint32, error) {
	rel, err := c.Uint32(buf, offsets+i*4)
	if err != nil {
		return 0, err
	}
	at, err := addSize(values, rel)
	if err != nil {
		return 0, err
	}
	t, err := c.typeAt(buf, at)
	if err != nil {
		return 0, err
	}
	size, err := c.dataSize(buf, t, at+RuntimeValueHeaderSize, depth+1)
	if err != nil {
		return 0, err
	}
	return addSize(size, RuntimeValueHeaderSize)
}

// PrototypeDataSize returns the size of the name and type tables of the
// prototype at off. O(1).
func (c *Codec) PrototypeDataSize(buf []byte, off uint32) (uint32, error) {
	count, err := c.Uint32(buf, off)
	if err != nil {
		return 0, err
	}
	size, ok := abi.SafeMulU32(count, prototypeEntrySize)
	if !ok {
		return 0, errors.Overflow(errors.PhaseRead, nil, "prototype tables")
	}
	if err := c.check(errors.PhaseRead, buf, off+PrototypeHeaderSize, size); err != nil {
		return 0, err
	}
	return size, nil
}

// PrototypeTotalSize returns the header plus tables size of the prototype
// at off.
func (c *Codec) PrototypeTotalSize(buf []byte, off uint32) (uint32, error) {
	size, err := c.PrototypeDataSize(buf, off)
	if err != nil {
		return 0, err
	}
	return addSize(size, PrototypeHeaderSize)
}

func addSize(a, b uint32) (uint32, error) {
	sum, ok := abi.SafeAddU32(a, b)
	if !ok {
		return 0, errors.Overflow(errors.PhaseRead, nil, "size")
	}
	return sum, nil
}
