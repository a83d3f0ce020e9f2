// Package errors provides structured error types for the ttcn-runtime library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the template or value type name, a field path, the
// encode/decode category for registry-routed errors, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindIncomplete).
//		TypeName("integer").
//		Detail("no terminal byte after %d bytes", n).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Usage("charstring", "matching with an uninitialized template")
//	err := errors.Overlap(2)
//
// Usage and internal errors signal defects in the caller or version skew
// with a peer; they are never downgraded by the encode/decode error
// behavior registry. All errors implement the standard error interface and
// support errors.Is/As.
package errors
