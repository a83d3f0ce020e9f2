package template

import (
	"bytes"
	"cmp"
	"fmt"
	"strconv"
	"strings"

	"github.com/wippyai/ttcn-runtime/wire"
)

// Traits describe a value type to the generic templates: how values
// compare, render and travel on the wire. Optional functions left nil
// disable the template features that need them.
type Traits[T any] struct {
	// Name is the type name used in diagnostics.
	Name string

	Equal func(a, b T) bool
	// Compare orders values for ValueRange; nil disables ranges.
	Compare func(a, b T) int
	// InRange overrides the Compare based range check.
	InRange func(v T, r Range[T]) bool
	// Text exposes the value to StringPattern; nil disables patterns.
	Text func(v T) string
	// Len measures the value for length restrictions; nil means the type
	// has no length and restrictions are ignored.
	Len func(v T) int

	Format func(v T) string
	Encode func(b *wire.Buffer, v T) error
	Decode func(b *wire.Buffer) (T, error)
}

func (tr *Traits[T]) inRange(v T, r Range[T]) bool {
	if tr.InRange != nil {
		return tr.InRange(v, r)
	}
	if r.Min != nil {
		c := tr.Compare(v, *r.Min)
		if c < 0 || (c == 0 && r.MinExclusive) {
			return false
		}
	}
	if r.Max != nil {
		c := tr.Compare(v, *r.Max)
		if c > 0 || (c == 0 && r.MaxExclusive) {
			return false
		}
	}
	return true
}

var Integer = &Traits[int64]{
	Name:    "integer",
	Equal:   func(a, b int64) bool { return a == b },
	Compare: cmp.Compare[int64],
	Format:  func(v int64) string { return strconv.FormatInt(v, 10) },
	Encode: func(b *wire.Buffer, v int64) error {
		b.PushInt(v)
		return nil
	},
	Decode: (*wire.Buffer).PullInt64,
}

var Float = &Traits[float64]{
	Name:    "float",
	Equal:   func(a, b float64) bool { return a == b },
	Compare: cmp.Compare[float64],
	Format:  formatFloat,
	Encode: func(b *wire.Buffer, v float64) error {
		b.PushDouble(v)
		return nil
	},
	Decode: (*wire.Buffer).PullDouble,
}

var Boolean = &Traits[bool]{
	Name:   "boolean",
	Equal:  func(a, b bool) bool { return a == b },
	Format: strconv.FormatBool,
	Encode: func(b *wire.Buffer, v bool) error {
		b.PushBool(v)
		return nil
	},
	Decode: (*wire.Buffer).PullBool,
}

// Charstring ranges bound every character of the value, so ("a" .. "z")
// matches any string of lower case letters.
var Charstring = &Traits[string]{
	Name:    "charstring",
	Equal:   func(a, b string) bool { return a == b },
	Compare: strings.Compare,
	InRange: charsInRange,
	Text:    func(v string) string { return v },
	Len:     func(v string) int { return len(v) },
	Format:  strconv.Quote,
	Encode: func(b *wire.Buffer, v string) error {
		b.PushString(v)
		return nil
	},
	Decode: (*wire.Buffer).PullString,
}

var Octetstring = &Traits[[]byte]{
	Name:   "octetstring",
	Equal:  bytes.Equal,
	Len:    func(v []byte) int { return len(v) },
	Format: func(v []byte) string { return fmt.Sprintf("'%X'O", v) },
	Encode: func(b *wire.Buffer, v []byte) error {
		b.PushInt(int64(len(v)))
		return b.PushRaw(len(v), v)
	},
	Decode: func(b *wire.Buffer) ([]byte, error) {
		n, err := b.PullInt64()
		if err != nil {
			return nil, err
		}
		return b.PullRaw(int(n))
	},
}

func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eENI") {
		s += ".0"
	}
	return s
}

func charsInRange(v string, r Range[string]) bool {
	for i := 0; i < len(v); i++ {
		c := v[i]
		if r.Min != nil && *r.Min != "" {
			lo := (*r.Min)[0]
			if c < lo || (c == lo && r.MinExclusive) {
				return false
			}
		}
		if r.Max != nil && *r.Max != "" {
			hi := (*r.Max)[0]
			if c > hi || (c == hi && r.MaxExclusive) {
				return false
			}
		}
	}
	return true
}
