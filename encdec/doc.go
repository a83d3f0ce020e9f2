// Package encdec classifies encode/decode failures and composes their
// diagnostics.
//
// A Registry maps each ErrorType to a Behavior. Fail turns a report into an
// error, Warn logs it through the package zap logger and lets the codec
// continue with best-effort output, Ignore drops it. Behaviors are usually
// configured once at startup, from an error behavior attribute string or a
// YAML file:
//
//	settings, err := encdec.ParseSettings("ALL:WARNING, TAG:ERROR")
//	if err != nil { ... }
//	encdec.DefaultRegistry().Apply(settings)
//
// A Context is a stack of diagnostic frames owned by one test component.
// Codecs push a frame per nesting level and report through the Context, so
// a failure deep inside a structure reads
//
//	while decoding field "hdr": while decoding field "id": invalid tag
//
// Frames must be released in LIFO order; Within guarantees this even when
// the wrapped function panics.
package encdec
