// Package memory runs the blob codec directly on wazero linear memory.
//
// # Memory Wrapper
//
// Wraps wazero api.Memory as a fieldblob.Memory and hands out views:
//
//	mem := memory.WrapMemory(mod.ExportedMemory("memory"))
//	buf, err := mem.View(memory.Region{Ptr: ptr, Size: size})
//	fields, err := blob.LittleEndian.Fields(buf)
//
// A view aliases guest memory. It stays valid only until the guest grows
// its memory, which any guest call may do.
//
// # Allocator Wrapper
//
// Wraps a cabi_realloc style export:
//
//	alloc := memory.WrapAllocator(ctx, mod.ExportedFunction("cabi_realloc"))
//
// # Optimizing in Place
//
// Optimize allocates the destination in guest memory and only then takes
// views of both regions, so the conversion never writes through a stale
// slice.
package memory
