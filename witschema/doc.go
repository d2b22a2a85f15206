// Package witschema describes blob prototypes as WIT records.
//
// Fixed-size field types map to their WIT primitives; vectors and
// matrices become tuples of f32. Composite fields (arrays, objects and
// nested prototypes) have no fixed shape and map to list<u8> holding the
// nested blob. NULL maps to the empty tuple.
//
// Calculator computes the Canonical ABI size, alignment and field
// offsets of the resulting types, so a host can lay a prototype out in
// guest memory.
package witschema
