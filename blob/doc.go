// Package blob provides a self-describing binary field codec.
//
// A blob is a contiguous byte buffer holding zero or more fields written
// back to back with no padding. Every field starts with a 4-byte type tag
// followed by its data. The codec never allocates the buffer and holds no
// state between calls: every operation takes (buffer, offset).
//
// # Wire Layout
//
//	Type             Data
//	──────────────────────────────────────────────────────────────────
//	scalar           fixed N bytes (bool/char 1, intN N/8, float 4/8)
//	vector2f..4f     2/3/4 × float32
//	matrixNxMf       4/9/12/16 × float32
//	array            u32 count, i32 item type, count untagged items
//	generic_object   u32 count, u32 data size, count × {u32 name,
//	                 i32 type, u32 size, data}
//	runtime_object   u32 count, u32 reserved, u32 names[count],
//	                 u32 offsets[count], blob of {i32 type, data}
//	prototype        u32 count, u32 names[count], i32 types[count]
//
// Runtime object offsets are relative to the start of the value blob.
//
// # Two Object Encodings
//
// Generic objects are built sequentially and can be skipped in O(1) since
// their data size is stored. Finding a field by name walks the inline
// records, resolving nested sizes along the way.
//
// Runtime objects keep names and offsets in parallel tables, so a lookup
// compares integers and jumps straight to the value. Their aggregate size
// is not stored and costs O(k) to compute.
//
// Optimize rewrites generic objects into runtime objects. Both encodings
// of the same content occupy the same number of bytes:
//
//	generic: 8 + Σ(12 + dᵢ)
//	runtime: 8 + 8k + Σ(4 + dᵢ)
//
// # Byte Order
//
// A Codec is bound to one byte order. Native uses the host order and is
// only meaningful on the host that wrote the buffer; LittleEndian and
// BigEndian produce portable buffers.
//
// # Errors
//
// Bounds violations, unknown tags, overflowing sizes, stored sizes that
// disagree with the data and excessive nesting are returned as
// *errors.Error. A search for a missing name is not an error.
package blob
