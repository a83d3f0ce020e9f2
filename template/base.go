package template

import (
	"github.com/wippyai/ttcn-runtime/errors"
)

// Restriction is a template restriction as declared on a template
// definition or formal parameter.
type Restriction uint8

const (
	RestrictionNone Restriction = iota
	RestrictionOmit
	RestrictionValue
	RestrictionPresent
)

func (r Restriction) String() string {
	switch r {
	case RestrictionOmit:
		return "omit"
	case RestrictionValue:
		return "value"
	case RestrictionPresent:
		return "present"
	default:
		return "none"
	}
}

// Base holds the selection and the ifpresent modifier shared by every
// template shape. The zero value is an uninitialized template.
type Base struct {
	sel       selection
	ifPresent bool
}

// Kind returns the active selection kind.
func (b *Base) Kind() Kind {
	if b.sel == nil {
		return Uninitialized
	}
	return b.sel.kind()
}

// IsBound reports whether a selection has been set.
func (b *Base) IsBound() bool {
	return b.sel != nil
}

func (b *Base) IsIfPresent() bool { return b.ifPresent }

// SetIfPresent sets the modifier without touching the selection.
func (b *Base) SetIfPresent() { b.ifPresent = true }

func (b *Base) ClearIfPresent() { b.ifPresent = false }

// SetKind switches to a payload-free kind, releasing any payload of the
// previous one. Kinds carrying data have dedicated setters.
func (b *Base) SetKind(k Kind) error {
	switch {
	case k == Uninitialized:
		b.sel = nil
	case k.IsSingle():
		b.sel = wildcard{k}
	default:
		return errors.Usage("", "selection %q requires a payload and cannot be set directly", k)
	}
	return nil
}

func (b *Base) set(sel selection) {
	b.sel = sel
}

// Clean releases the selection and clears the ifpresent modifier.
func (b *Base) Clean() {
	b.sel = nil
	b.ifPresent = false
}

// omitMatcher is implemented by every template shape.
type omitMatcher interface {
	MatchOmit(legacy bool) bool
}

// matchOmit decides whether an absent field matches the selection. In
// legacy mode a value list matches omit when one of its items does.
func matchOmit[X omitMatcher](b *Base, legacy bool) bool {
	if b.ifPresent {
		return true
	}
	switch s := b.sel.(type) {
	case wildcard:
		return s.k == Omit || s.k == AnyOrOmit
	case list[X]:
		if !legacy {
			return false
		}
		for _, it := range s.items {
			if it.MatchOmit(legacy) {
				return !s.complement
			}
		}
		return s.complement
	}
	return false
}

// isPresent implements the present() predicate.
func isPresent[X omitMatcher](b *Base, legacy bool) bool {
	if b.sel == nil {
		return false
	}
	return !matchOmit[X](b, legacy)
}

func listOf[X any](b *Base, typeName string) (list[X], error) {
	l, ok := b.sel.(list[X])
	if !ok {
		return list[X]{}, errors.Usage(typeName,
			"accessing a list element of a non-list template (selection is %s)", b.Kind())
	}
	return l, nil
}

func listItem[X any](b *Base, typeName string, i int) (X, error) {
	var zero X
	l, err := listOf[X](b, typeName)
	if err != nil {
		return zero, err
	}
	if i < 0 || i >= len(l.items) {
		return zero, errors.Usage(typeName, "index %d overflow in a value list template of %d items", i, len(l.items))
	}
	return l.items[i], nil
}

func checkListKind(typeName string, k Kind) error {
	if !k.IsList() {
		return errors.Usage(typeName, "setting an invalid list kind (%s) for a template", k)
	}
	return nil
}

// checkRestriction validates a template against a declared restriction.
// isValue reports whether the selection is a complete specific value.
func checkRestriction(b *Base, typeName string, r Restriction, isValue, matchesOmit bool) error {
	ok := true
	switch r {
	case RestrictionOmit:
		ok = !b.ifPresent && (b.Kind() == Omit || isValue)
	case RestrictionValue:
		ok = !b.ifPresent && isValue
	case RestrictionPresent:
		ok = !matchesOmit
	}
	if ok {
		return nil
	}
	return errors.New(errors.PhaseTemplate, errors.KindRestrictionViolated).
		TypeName(typeName).
		Detail("restriction '%s' on template of type %s violated", r, typeName).
		Build()
}
