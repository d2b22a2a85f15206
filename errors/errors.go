package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseWrite    Phase = "write"    // field writers
	PhaseRead     Phase = "read"     // accessors, sizes, decode-at, search
	PhaseOptimize Phase = "optimize" // generic to runtime rewrite
	PhaseEncode   Phase = "encode"   // base64/text encoding, tree encoding
	PhaseDecode   Phase = "decode"   // base64/text decoding, tree decoding
	PhaseParse    Phase = "parse"    // manifest parsing
	PhaseLoad     Phase = "load"     // files and guest memory
)

// Kind categorizes the error
type Kind string

const (
	KindTypeMismatch Kind = "type_mismatch"
	KindOutOfBounds  Kind = "out_of_bounds"
	KindInvalidData  Kind = "invalid_data"
	KindUnsupported  Kind = "unsupported"
	KindAllocation   Kind = "allocation"
	KindOverflow     Kind = "overflow"
	KindOverlap      Kind = "overlap"
	KindNotFound     Kind = "not_found"
	KindInvalidInput Kind = "invalid_input"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value     any
	Cause     error
	Phase     Phase
	Kind      Kind
	FieldType string
	Detail    string
	Path      []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.FieldType != "" {
		b.WriteString(": field type ")
		b.WriteString(e.FieldType)
	}

	if e.Detail != "" {
		if e.FieldType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// FieldType sets the field type name
func (b *Builder) FieldType(t string) *Builder {
	b.err.FieldType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// PrependPath adds segment in front of the path of a structured error.
// Other errors are returned unchanged. Used while unwinding recursion so
// the outermost caller sees the full path.
func PrependPath(err error, segment string) error {
	e, ok := err.(*Error)
	if !ok {
		return err
	}
	path := make([]string, 0, len(e.Path)+1)
	path = append(path, segment)
	e.Path = append(path, e.Path...)
	return e
}

// Convenience constructors for common error patterns

// OutOfBounds creates an error for an access of size bytes at offset
// that does not fit in a buffer of the given length
func OutOfBounds(phase Phase, offset, size uint32, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("%d bytes at offset %d exceed buffer length %d", size, offset, length),
		Value:  offset,
	}
}

// IndexOutOfRange creates an error for an item or field index past count
func IndexOutOfRange(phase Phase, path []string, index, count uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of range (count %d)", index, count),
		Value:  index,
	}
}

// Overflow creates an arithmetic overflow error
func Overflow(phase Phase, path []string, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Path:   path,
		Detail: what + " overflows uint32",
	}
}

// UnknownType creates an error for a type tag outside the registry
func UnknownType(phase Phase, offset uint32, tag int32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("unknown type tag %d at offset %d", tag, offset),
		Value:  tag,
	}
}

// SizeMismatch creates an error for a stored size that disagrees with the
// size resolved from the data
func SizeMismatch(phase Phase, fieldType string, stored, actual uint32) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindInvalidData,
		FieldType: fieldType,
		Detail:    fmt.Sprintf("stored size %d, resolved size %d", stored, actual),
		Value:     stored,
	}
}

// TypeMismatch creates an error for a field read as the wrong type
func TypeMismatch(phase Phase, path []string, got, want string) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindTypeMismatch,
		Path:      path,
		FieldType: got,
		Detail:    "expected " + want,
	}
}

// Overlap creates an error for source and destination regions that alias
func Overlap(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverlap,
		Detail: detail,
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(phase Phase, size, align uint32, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d bytes (align %d)", size, align),
		Cause:  cause,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// Load creates a loading error for files or guest memory
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}

// ParseFailed creates a parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}
