package memory

import (
	"context"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/fieldblob"
	"github.com/wippyai/fieldblob/errors"
)

// Region is a block of guest memory.
type Region struct {
	Ptr  uint32
	Size uint32
}

// End returns the offset one past the region, or false on overflow.
func (r Region) End() (uint32, bool) {
	end := uint64(r.Ptr) + uint64(r.Size)
	return uint32(end), end <= uint64(^uint32(0))
}

// WrapMemory wraps a wazero api.Memory.
func WrapMemory(mem api.Memory) *Wrapper {
	if mem == nil {
		return nil
	}
	return &Wrapper{Mem: mem}
}

// WrapAllocator wraps a cabi_realloc style wazero function.
func WrapAllocator(ctx context.Context, fn api.Function) fieldblob.Allocator {
	if fn == nil {
		return nil
	}
	return &AllocatorWrapper{Ctx: ctx, Fn: fn}
}

// Wrapper adapts wazero api.Memory to fieldblob.Memory.
type Wrapper struct {
	Mem api.Memory
}

var (
	_ fieldblob.Memory      = (*Wrapper)(nil)
	_ fieldblob.MemorySizer = (*Wrapper)(nil)
)

// Size returns the current memory size in bytes.
func (m *Wrapper) Size() uint32 {
	return m.Mem.Size()
}

// View returns a slice aliasing r. Writes to the slice reach guest memory.
func (m *Wrapper) View(r Region) ([]byte, error) {
	data, ok := m.Mem.Read(r.Ptr, r.Size)
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseLoad, r.Ptr, r.Size, int(m.Mem.Size()))
	}
	return data, nil
}

// Read returns a copy of length bytes at offset.
func (m *Wrapper) Read(offset uint32, length uint32) ([]byte, error) {
	data, err := m.View(Region{Ptr: offset, Size: length})
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), data...), nil
}

// Write copies data to offset.
func (m *Wrapper) Write(offset uint32, data []byte) error {
	if !m.Mem.Write(offset, data) {
		return errors.OutOfBounds(errors.PhaseLoad, offset, uint32(len(data)), int(m.Mem.Size()))
	}
	return nil
}

// AllocatorWrapper adapts wazero api.Function (cabi_realloc) to
// fieldblob.Allocator.
type AllocatorWrapper struct {
	Ctx context.Context
	Fn  api.Function
}

// Alloc allocates memory using cabi_realloc.
func (a *AllocatorWrapper) Alloc(size, align uint32) (uint32, error) {
	results, err := a.Fn.Call(a.Ctx, 0, 0, uint64(align), uint64(size))
	if err != nil {
		return 0, errors.AllocationFailed(errors.PhaseLoad, size, align, err)
	}
	if len(results) == 0 {
		return 0, errors.AllocationFailed(errors.PhaseLoad, size, align, nil)
	}
	ptr := uint32(results[0])
	Logger().Debug("allocated guest memory",
		zap.Uint32("ptr", ptr),
		zap.Uint32("size", size),
		zap.Uint32("align", align))
	return ptr, nil
}

// Free deallocates memory using cabi_realloc.
func (a *AllocatorWrapper) Free(ptr, size, align uint32) {
	if _, err := a.Fn.Call(a.Ctx, uint64(ptr), uint64(size), uint64(align), 0); err != nil {
		Logger().Warn("free guest memory",
			zap.Uint32("ptr", ptr),
			zap.Uint32("size", size),
			zap.Error(err))
	}
}
