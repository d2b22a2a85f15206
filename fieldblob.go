package fieldblob

// Memory is a byte-addressed buffer the codec can operate on in place,
// such as a WebAssembly linear memory.
type Memory interface {
	Read(offset uint32, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
}

// MemorySizer provides the current size of a Memory in bytes.
type MemorySizer interface {
	Size() uint32
}

// Allocator reserves space in a Memory. Free releases a block returned
// by Alloc.
type Allocator interface {
	Alloc(size, align uint32) (uint32, error)
	Free(ptr, size, align uint32)
}
