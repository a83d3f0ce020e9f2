package template

import (
	"strings"

	"github.com/wippyai/ttcn-runtime/errors"
)

// seqValue is the SpecificValue payload of record of and set of
// templates. The permutations live in the payload, so they are released
// together with it when the selection changes.
type seqValue[T any] struct {
	elems []*Scalar[T]
	perms Permutations
}

func (*seqValue[T]) kind() Kind { return SpecificValue }

func newSeq[T any](tr *Traits[T], n int) *seqValue[T] {
	s := &seqValue[T]{elems: make([]*Scalar[T], n)}
	for i := range s.elems {
		s.elems[i] = New(tr)
	}
	return s
}

// resize keeps existing elements, adds uninitialized ones and drops
// intervals that no longer fit.
func (s *seqValue[T]) resize(tr *Traits[T], n int) {
	if n < len(s.elems) {
		s.elems = s.elems[:n]
	}
	for len(s.elems) < n {
		s.elems = append(s.elems, New(tr))
	}
	kept := s.perms.intervals[:0]
	for _, iv := range s.perms.intervals {
		if iv.End < n {
			kept = append(kept, iv)
		}
	}
	s.perms.intervals = kept
}

func (s *seqValue[T]) elem(typeName string, i int) (*Scalar[T], error) {
	if i < 0 || i >= len(s.elems) {
		return nil, errors.Usage(typeName, "index overflow in a template of type %s: the index is %d, but the template has only %d elements",
			typeName, i, len(s.elems))
	}
	return s.elems[i], nil
}

func (s *seqValue[T]) isValue() bool {
	if s.perms.Count() > 0 {
		return false
	}
	for _, e := range s.elems {
		if !e.IsValue() {
			return false
		}
	}
	return true
}

func (s *seqValue[T]) values(typeName string) ([]T, error) {
	out := make([]T, len(s.elems))
	for i, e := range s.elems {
		v, err := e.Value()
		if err != nil {
			return nil, errors.Usage(typeName, "element %d is not a specific value", i)
		}
		out[i] = v
	}
	return out, nil
}

// size counts the elements that need a value of their own.
func (s *seqValue[T]) size() (n int, open bool) {
	fixed, open := splitOpen(s.elems)
	return len(fixed), open
}

func (s *seqValue[T]) writeTo(sb *strings.Builder) {
	sb.WriteString("{ ")
	for i, e := range s.elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		if s.perms.StartsAt(i) {
			sb.WriteString("permutation(")
		}
		e.writeTo(sb)
		if s.perms.EndsAt(i) {
			sb.WriteByte(')')
		}
	}
	sb.WriteString(" }")
}

func setSize[T any](r *Restricted, tr *Traits[T], typeName string, n int) error {
	if n < 0 {
		return errors.Usage(typeName, "setting a negative size (%d) for a template of type %s", n, typeName)
	}
	if s, ok := r.sel.(*seqValue[T]); ok {
		s.resize(tr, n)
		return nil
	}
	r.set(newSeq(tr, n))
	return nil
}

func setValues[T any](r *Restricted, tr *Traits[T], vals []T) {
	s := &seqValue[T]{elems: make([]*Scalar[T], len(vals))}
	for i, v := range vals {
		s.elems[i] = NewValue(tr, v)
	}
	r.set(s)
}

func seqOf[T any](b *Base, typeName string) (*seqValue[T], error) {
	s, ok := b.sel.(*seqValue[T])
	if !ok {
		return nil, errors.Usage(typeName, "accessing an element of a non-specific template of type %s (selection is %s)", typeName, b.Kind())
	}
	return s, nil
}
