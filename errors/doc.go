// Package errors provides structured error types for the fieldblob module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: field path, field type name, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseRead, errors.KindTypeMismatch).
//		Path("name:0x0000002a", "[3]").
//		FieldType("float32").
//		Detail("expected uint32").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OutOfBounds(errors.PhaseRead, offset, 4, len(buf))
//	err := errors.UnknownType(errors.PhaseRead, offset, tag)
//
// Every bounds, overflow and aliasing precondition of the codec is reported
// through these types instead of being left to undefined behavior.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
