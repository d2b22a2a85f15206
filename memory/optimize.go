package memory

import (
	"github.com/wippyai/fieldblob"
	"github.com/wippyai/fieldblob/blob"
	"github.com/wippyai/fieldblob/errors"
)

// Align is the alignment requested for blob allocations.
const Align = 4

// Store allocates a region for data and copies data into it.
func Store(mem *Wrapper, alloc fieldblob.Allocator, data []byte) (Region, error) {
	if len(data) == 0 {
		return Region{}, nil
	}
	if uint64(len(data)) > uint64(^uint32(0)) {
		return Region{}, errors.Overflow(errors.PhaseLoad, nil, "blob size")
	}
	r := Region{Size: uint32(len(data))}
	ptr, err := alloc.Alloc(r.Size, Align)
	if err != nil {
		return Region{}, err
	}
	r.Ptr = ptr
	if err := mem.Write(r.Ptr, data); err != nil {
		alloc.Free(r.Ptr, r.Size, Align)
		return Region{}, err
	}
	return r, nil
}

// Optimize converts the blob in src into a new region allocated with
// alloc. The source region is left untouched. On failure the new region
// is freed.
func Optimize(c *blob.Codec, mem *Wrapper, alloc fieldblob.Allocator, src Region) (Region, error) {
	if src.Size == 0 {
		return Region{}, nil
	}
	if _, ok := src.End(); !ok {
		return Region{}, errors.Overflow(errors.PhaseLoad, nil, "source region")
	}

	ptr, err := alloc.Alloc(src.Size, Align)
	if err != nil {
		return Region{}, err
	}
	dst := Region{Ptr: ptr, Size: src.Size}

	// The allocation may have grown memory, so views are taken after it.
	n, err := optimizeViews(c, mem, dst, src)
	if err != nil {
		alloc.Free(dst.Ptr, dst.Size, Align)
		return Region{}, err
	}
	dst.Size = n
	return dst, nil
}

func optimizeViews(c *blob.Codec, mem *Wrapper, dst, src Region) (uint32, error) {
	in, err := mem.View(src)
	if err != nil {
		return 0, err
	}
	out, err := mem.View(dst)
	if err != nil {
		return 0, err
	}
	return c.Optimize(out, in)
}
