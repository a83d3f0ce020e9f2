package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseEncode   Phase = "encode"   // value/template to wire
	PhaseDecode   Phase = "decode"   // wire to value/template
	PhaseTemplate Phase = "template" // template configuration and matching
	PhaseConfig   Phase = "config"   // error behavior configuration
	PhaseInternal Phase = "internal" // runtime self-consistency
)

// Kind categorizes the error
type Kind string

const (
	KindUsage               Kind = "usage"
	KindInvalidInterval     Kind = "invalid_interval"
	KindOverlap             Kind = "overlapping_permutation"
	KindLengthRestriction   Kind = "length_restriction"
	KindIncomplete          Kind = "incomplete"
	KindInvalidData         Kind = "invalid_data"
	KindUnknownSelection    Kind = "unknown_selection"
	KindUnsupported         Kind = "unsupported"
	KindInternal            Kind = "internal_consistency"
	KindInvalidInput        Kind = "invalid_input"
	KindNotFound            Kind = "not_found"
	KindRestrictionViolated Kind = "restriction_violated"
	KindCodec               Kind = "codec"
)

// Error is the structured error type used throughout the runtime
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	TypeName string
	// Category names the encode/decode error type for registry-routed errors.
	Category string
	Detail   string
	Path     []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))
	if e.Category != "" {
		b.WriteByte('(')
		b.WriteString(e.Category)
		b.WriteByte(')')
	}

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.TypeName != "" {
		b.WriteString(": type ")
		b.WriteString(e.TypeName)
	}

	if e.Detail != "" {
		if e.TypeName != "" {
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

// TypeName sets the name of the value or template type involved
func (b *Builder) TypeName(t string) *Builder {
	b.err.TypeName = t
	return b
}

// Category sets the encode/decode error type name
func (b *Builder) Category(c string) *Builder {
	b.err.Category = c
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

// Convenience constructors for common error patterns

// Usage creates an error for an operation invoked on a template or value
// in a state that does not support it.
func Usage(typeName, format string, args ...any) *Error {
	return &Error{
		Phase:    PhaseTemplate,
		Kind:     KindUsage,
		TypeName: typeName,
		Detail:   fmt.Sprintf(format, args...),
	}
}

// Internal creates an internal consistency error.
func Internal(format string, args ...any) *Error {
	return &Error{
		Phase:  PhaseInternal,
		Kind:   KindInternal,
		Detail: fmt.Sprintf(format, args...),
	}
}

// InvalidInterval creates an error for a permutation with start after end.
func InvalidInterval(start, end int) *Error {
	return &Error{
		Phase:  PhaseTemplate,
		Kind:   KindInvalidInterval,
		Detail: fmt.Sprintf("invalid permutation interval: start index (%d) is greater than end index (%d)", start, end),
		Value:  [2]int{start, end},
	}
}

// Overlap creates an error for a permutation that starts inside or before
// the previous one. ordinal is 1-based.
func Overlap(ordinal int) *Error {
	return &Error{
		Phase:  PhaseTemplate,
		Kind:   KindOverlap,
		Detail: fmt.Sprintf("the %s permutation overlaps the previous one", Ordinal(ordinal)),
		Value:  ordinal,
	}
}

// LengthRestriction creates an error for an invalid or contradicted
// length restriction.
func LengthRestriction(typeName, format string, args ...any) *Error {
	return &Error{
		Phase:    PhaseTemplate,
		Kind:     KindLengthRestriction,
		TypeName: typeName,
		Detail:   fmt.Sprintf(format, args...),
	}
}

// UnknownSelection creates an error for a template selection tag received
// from a peer that this runtime does not know.
func UnknownSelection(typeName string, tag int64) *Error {
	return &Error{
		Phase:    PhaseDecode,
		Kind:     KindUnknownSelection,
		TypeName: typeName,
		Detail:   fmt.Sprintf("unrecognized selection (%d) received for a template", tag),
		Value:    tag,
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

// Codec creates an encode/decode error classified by category.
func Codec(phase Phase, category, detail string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindCodec,
		Category: category,
		Detail:   detail,
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

// Ordinal renders n as an English ordinal ("1st", "2nd", "11th").
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
