package ttcnruntime

import "github.com/wippyai/ttcn-runtime/wire"

// TextEncoder appends a value or template to a wire buffer.
type TextEncoder interface {
	EncodeText(b *wire.Buffer) error
}

// TextDecoder replaces its receiver with a value or template read from a
// wire buffer.
type TextDecoder interface {
	DecodeText(b *wire.Buffer) error
}

// TextCodec moves templates between test components.
type TextCodec interface {
	TextEncoder
	TextDecoder
}

// Matcher is implemented by every template of values of type V. Record
// and union templates match their fields through it; MatchOmit decides
// optional fields that are absent.
type Matcher[V any] interface {
	Match(v V, legacy bool) bool
	MatchOmit(legacy bool) bool
	IsPresent(legacy bool) bool
}
