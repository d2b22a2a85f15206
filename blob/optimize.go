package blob

import (
	"go.uber.org/zap"

	"github.com/wippyai/fieldblob/blob/internal/abi"
	"github.com/wippyai/fieldblob/errors"
)

// Optimize rewrites the top-level field sequence in src into dst,
// converting every generic object, including those nested in arrays and
// other objects, into a runtime object. Other values are copied verbatim.
//
// Both encodings of an object have the same size, so dst receives exactly
// len(src) bytes and every top-level field keeps its offset. dst must be
// at least len(src) bytes and must not share memory with src.
func (c *Codec) Optimize(dst, src []byte) (uint32, error) {
	n, err := lenU32(errors.PhaseOptimize, src)
	if err != nil {
		return 0, err
	}
	if len(dst) < len(src) {
		return 0, errors.New(errors.PhaseOptimize, errors.KindOutOfBounds).
			Detail("destination holds %d bytes, need %d", len(dst), len(src)).
			Build()
	}
	if abi.Overlaps(dst[:n], src) {
		return 0, errors.Overlap(errors.PhaseOptimize, "source and destination overlap")
	}

	log := c.log()
	for off, i := uint32(0), uint32(0); off < n; i++ {
		t, err := c.typeAt(src, off)
		if err != nil {
			return 0, err
		}
		if err := c.putTypeChecked(dst, off, optimizedType(t)); err != nil {
			return 0, err
		}
		size, err := c.convertValue(dst, off+TagSize, src, off+TagSize, t, 0)
		if err != nil {
			return 0, errors.PrependPath(err, indexSegment(i))
		}
		total := size + TagSize
		log.Debug("optimized field",
			zap.Uint32("offset", off),
			zap.Stringer("type", t),
			zap.Uint32("bytes", total))
		off += total
	}
	return n, nil
}

// Optimized returns a newly allocated optimized copy of src.
func (c *Codec) Optimized(src []byte) ([]byte, error) {
	dst := make([]byte, len(src))
	if _, err := c.Optimize(dst, src); err != nil {
		return nil, err
	}
	return dst, nil
}

func optimizedType(t Type) Type {
	if t == TypeGenericObject {
		return TypeRuntimeObject
	}
	return t
}

// convertValue rewrites the untagged value of type t at sOff into dst at
// dOff and returns the bytes consumed, which equal the bytes written.
func (c *Codec) convertValue(dst []byte, dOff uint32, src []byte, sOff uint32, t Type, depth int) (uint32, error) {
	switch t {
	case TypeGenericObject:
		return c.convertObject(dst, dOff, src, sOff, depth)
	case TypeArray:
		return c.convertArray(dst, dOff, src, sOff, depth)
	}
	size, err := c.dataSize(src, t, sOff, depth)
	if err != nil {
		return 0, err
	}
	if err := c.Copy(dst, dOff, src, sOff, size); err != nil {
		return 0, err
	}
	return size, nil
}

// convertObject turns the generic object at sOff into a runtime object
// at dOff. Names and value offsets are filled in field order while the
// values are appended to the blob.
func (c *Codec) convertObject(dst []byte, dOff uint32, src []byte, sOff uint32, depth int) (uint32, error) {
	if err := c.enter(depth); err != nil {
		return 0, err
	}
	o, err := c.GenericObjectAt(src, sOff)
	if err != nil {
		return 0, err
	}
	namesOff, offsetsOff, valuesOff, err := runtimeLayout(dOff, o.Count)
	if err != nil {
		return 0, err
	}
	if err := c.check(errors.PhaseOptimize, dst, dOff, valuesOff-dOff); err != nil {
		return 0, err
	}
	if err := c.PutUint32(dst, dOff, o.Count); err != nil {
		return 0, err
	}
	if err := c.PutUint32(dst, dOff+4, 0); err != nil {
		return 0, err
	}

	end := o.FieldsOffset + o.DataSize
	cursor := o.FieldsOffset
	rel := uint32(0)
	for i := uint32(0); i < o.Count; i++ {
		if !fitsWithin(cursor, GenericFieldHeaderSize, end) {
			return 0, errors.New(errors.PhaseOptimize, errors.KindInvalidData).
				Path(indexSegment(i)).
				Detail("field header past end of object").
				Build()
		}
		name, t, stored, err := c.fieldHeader(src, cursor)
		if err != nil {
			return 0, errors.PrependPath(err, indexSegment(i))
		}

		if err := c.PutUint32(dst, namesOff+i*4, name); err != nil {
			return 0, err
		}
		if err := c.PutUint32(dst, offsetsOff+i*4, rel); err != nil {
			return 0, err
		}
		at := valuesOff + rel
		if err := c.putTypeChecked(dst, at, optimizedType(t)); err != nil {
			return 0, err
		}
		size, err := c.convertValue(dst, at+RuntimeValueHeaderSize, src, cursor+GenericFieldHeaderSize, t, depth+1)
		if err != nil {
			return 0, errors.PrependPath(err, nameSegment(name))
		}
		if size != stored {
			e := errors.SizeMismatch(errors.PhaseOptimize, t.String(), stored, size)
			e.Path = []string{nameSegment(name)}
			return 0, e
		}

		cursor += GenericFieldHeaderSize + size
		if cursor > end {
			return 0, errors.New(errors.PhaseOptimize, errors.KindInvalidData).
				Path(nameSegment(name)).
				Detail("field data past end of object").
				Build()
		}
		rel += RuntimeValueHeaderSize + size
	}
	if cursor != end {
		return 0, errors.SizeMismatch(errors.PhaseOptimize, TypeGenericObject.String(), o.DataSize, cursor-o.FieldsOffset)
	}
	return valuesOff - dOff + rel, nil
}

// convertArray rewrites the array at sOff. Arrays of generic objects
// become arrays of runtime objects and arrays of arrays are converted item
// by item; anything else is copied as is.
func (c *Codec) convertArray(dst []byte, dOff uint32, src []byte, sOff uint32, depth int) (uint32, error) {
	if err := c.enter(depth); err != nil {
		return 0, err
	}
	count, itemType, err := c.arrayHeader(src, sOff)
	if err != nil {
		return 0, err
	}
	if itemType != TypeGenericObject && itemType != TypeArray {
		size, err := c.arrayTotalSize(src, sOff, depth)
		if err != nil {
			return 0, err
		}
		if err := c.Copy(dst, dOff, src, sOff, size); err != nil {
			return 0, err
		}
		return size, nil
	}

	if _, err := c.WriteArrayInfo(dst, dOff, count, optimizedType(itemType)); err != nil {
		return 0, err
	}
	consumed := uint32(ArrayHeaderSize)
	for i := uint32(0); i < count; i++ {
		size, err := c.convertValue(dst, dOff+consumed, src, sOff+consumed, itemType, depth+1)
		if err != nil {
			return 0, errors.PrependPath(err, indexSegment(i))
		}
		if consumed, err = addSize(consumed, size); err != nil {
			return 0, err
		}
	}
	return consumed, nil
}
