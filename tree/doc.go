// Package tree converts between blobs and an in-memory node tree.
//
// Encode sizes the whole tree first and then drives the blob writers at
// explicit offsets, so the output buffer is allocated exactly once.
// Decode accepts both object encodings. Leaves flattens a tree into
// (path, type, value) triples that do not depend on the object encoding,
// which makes a buffer and its optimized form directly comparable.
//
// Export, ExportJSON and ExportCBOR turn a tree into plain Go values for
// serialization; Render and Lines print it as an indented listing.
package tree
