// Package fieldblob is a self-describing binary field codec.
//
// A blob holds typed fields back to back in a caller-owned buffer. Every
// field carries a 4-byte type tag, so the buffer can be walked, sized and
// searched without a schema. Objects come in two encodings that hold the
// same number of bytes: a generic form that is easy to build field by field,
// and a runtime form with name and offset tables for direct lookup. The
// optimizer rewrites one into the other.
//
// # Architecture Overview
//
//	fieldblob/           Root package with the Memory and Allocator interfaces
//	├── blob/            Type registry, accessors, writers, sizes, lookup, optimizer
//	├── tree/            In-memory node tree, encode/decode, export and rendering
//	├── manifest/        YAML and JSONC descriptions of blob contents
//	├── memory/          wazero linear memory as a blob buffer
//	├── witschema/       Prototypes as WIT records with Canonical ABI layout
//	├── textenc/         Base64 and byte-order-mark detection, text transcoding
//	├── errors/          Structured error types for debugging
//	└── cmd/blobtool/    Command line front end
//
// # Quick Start
//
// Build an object and optimize it:
//
//	nodes := []tree.Node{
//	    tree.Object(0,
//	        tree.Scalar(blob.Name("id"), blob.TypeUint32, uint32(7)),
//	        tree.String(blob.Name("label"), "crate"),
//	    ),
//	}
//	buf, err := tree.Encode(blob.Native, nodes)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	opt, err := blob.Native.Optimized(buf)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fields, _ := blob.Native.Fields(opt)
//	obj, _ := blob.Native.ObjectAt(opt, fields[0])
//	f, found, err := obj.Search(blob.Name("label"))
//
// # Byte Order
//
// blob.Native, blob.LittleEndian and blob.BigEndian are ready-made codecs.
// A buffer must be read with the codec that wrote it; nothing in the
// wire format records the byte order.
//
// # Thread Safety
//
// Codecs hold no mutable state and are safe for concurrent use. Buffers
// are owned by the caller: concurrent operations on disjoint buffers are
// safe, concurrent writes to one buffer are not.
//
// # Guest Memory
//
// WebAssembly linear memory can grow during any guest call, which
// invalidates host slices into it. The memory package allocates first
// and takes views afterwards for that reason.
package fieldblob
