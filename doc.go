// Package ttcnruntime is the value and template runtime of a test
// executor for conformance tests written in the TTCN-3 language.
//
// Test values are matched against templates: exact values, wildcards,
// value lists, ranges, patterns, length restrictions and permutations
// over sequences. Templates and values are moved between test components
// with a portable, self-delimiting binary encoding.
//
// # Architecture Overview
//
//	ttcnruntime/       Root package with the TextCodec and Matcher interfaces
//	├── template/      Selections, length restrictions, permutations, matching
//	├── wire/          Portable value buffer, signed varints, message framing
//	├── encdec/        Error behavior registry and diagnostic context stack
//	├── errors/        Structured error types
//	└── cmd/ttcnwire/  Command line encoder, decoder and template playground
//
// # Quick Start
//
// Build a template and match values against it:
//
//	t := template.NewRecordOf(template.Integer)
//	t.SetValues(1, 2, 3)
//	_ = t.AddPermutation(0, 1)
//	t.Match([]int64{2, 1, 3}, false) // true
//
// Send it to another component:
//
//	b := wire.Get()
//	defer wire.Put(b)
//	if err := t.EncodeText(b); err != nil { ... }
//	if err := b.CalculateLength(); err != nil { ... }
//	conn.Write(b.Bytes())
//
// # Error Handling
//
// Decode failures are classified by encdec.ErrorType and handled according
// to the configured behavior. Attach a diagnostic context to a buffer so
// failures are routed through the registry and prefixed with the frames
// pushed while decoding:
//
//	ctx := encdec.NewContext(nil)
//	b.SetReporter(ctx)
//	err := ctx.Within(func() error { return t.DecodeText(b) }, "while decoding %s: ", name)
//
// Behaviors are configured from an attribute string or a YAML file:
//
//	settings, err := encdec.ParseSettings("ALL:WARNING, TAG:IGNORE")
//	err = encdec.DefaultRegistry().Apply(settings)
//
// Misusing a template (matching an unbound one) is a programming error
// and panics; all other failures are returned as *errors.Error values.
package ttcnruntime
