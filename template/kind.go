package template

import (
	"fmt"
	"regexp"
)

// Kind identifies the matching rule a template currently uses.
type Kind uint8

const (
	Uninitialized Kind = iota
	SpecificValue
	Omit
	Any
	AnyOrOmit
	ValueList
	ComplementedList
	ValueRange
	StringPattern
	SupersetMatch
	SubsetMatch
	DecodeMatch

	numKinds
)

var kindNames = [numKinds]string{
	Uninitialized:    "uninitialized",
	SpecificValue:    "specific value",
	Omit:             "omit",
	Any:              "any",
	AnyOrOmit:        "any or omit",
	ValueList:        "value list",
	ComplementedList: "complemented list",
	ValueRange:       "value range",
	StringPattern:    "pattern",
	SupersetMatch:    "superset",
	SubsetMatch:      "subset",
	DecodeMatch:      "decoded content match",
}

func (k Kind) String() string {
	if k >= numKinds {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// IsSingle reports whether k carries no payload. Only these kinds are
// accepted by NewWildcard and SetKind.
func (k Kind) IsSingle() bool {
	return k == Omit || k == Any || k == AnyOrOmit
}

// IsList reports whether k owns child templates of the same shape.
func (k Kind) IsList() bool {
	return k == ValueList || k == ComplementedList
}

// selection is the closed set of template payloads. A template holds
// exactly one; replacing it drops the previous payload.
type selection interface {
	kind() Kind
}

type wildcard struct{ k Kind }

func (w wildcard) kind() Kind { return w.k }

type specific[V any] struct{ value V }

func (specific[V]) kind() Kind { return SpecificValue }

type list[X any] struct {
	items      []X
	complement bool
}

func (l list[X]) kind() Kind {
	if l.complement {
		return ComplementedList
	}
	return ValueList
}

type valueRange[V any] struct{ r Range[V] }

func (valueRange[V]) kind() Kind { return ValueRange }

type pattern struct {
	re     *regexp.Regexp
	source string
	nocase bool
}

func (pattern) kind() Kind { return StringPattern }

type setMatch[X any] struct {
	items    []X
	superset bool
}

func (s setMatch[X]) kind() Kind {
	if s.superset {
		return SupersetMatch
	}
	return SubsetMatch
}

type decodeMatch[V any] struct {
	match func(V) bool
	name  string
}

func (decodeMatch[V]) kind() Kind { return DecodeMatch }

// Range bounds a value range template. A nil bound is infinite.
type Range[V any] struct {
	Min          *V
	Max          *V
	MinExclusive bool
	MaxExclusive bool
}
