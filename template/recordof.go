package template

import (
	"strings"

	"github.com/wippyai/ttcn-runtime/errors"
)

// RecordOf is a template for ordered sequences of T. Its specific value
// is a list of element templates, optionally with permutation intervals.
type RecordOf[T any] struct {
	Restricted
	elem *Traits[T]
}

func NewRecordOf[T any](elem *Traits[T]) *RecordOf[T] {
	return &RecordOf[T]{elem: elem}
}

// TypeName returns the diagnostic name of the template type.
func (r *RecordOf[T]) TypeName() string {
	return "record of " + r.elem.Name
}

// SetSize switches to SpecificValue with n elements. Elements and
// intervals of an existing specific value are kept where they still fit.
func (r *RecordOf[T]) SetSize(n int) error {
	return setSize(&r.Restricted, r.elem, r.TypeName(), n)
}

// SetValues switches to SpecificValue matching exactly vals.
func (r *RecordOf[T]) SetValues(vals ...T) {
	setValues(&r.Restricted, r.elem, vals)
}

// Len returns the number of element templates.
func (r *RecordOf[T]) Len() (int, error) {
	s, err := seqOf[T](&r.Base, r.TypeName())
	if err != nil {
		return 0, err
	}
	return len(s.elems), nil
}

// Elem returns element template i for configuration.
func (r *RecordOf[T]) Elem(i int) (*Scalar[T], error) {
	s, err := seqOf[T](&r.Base, r.TypeName())
	if err != nil {
		return nil, err
	}
	return s.elem(r.TypeName(), i)
}

// AddPermutation marks elements start..end as matching in any order.
// Intervals are added left to right.
func (r *RecordOf[T]) AddPermutation(start, end int) error {
	s, err := seqOf[T](&r.Base, r.TypeName())
	if err != nil {
		return err
	}
	if end >= len(s.elems) {
		return errors.Usage(r.TypeName(), "permutation interval %d..%d is outside the %d elements of the template",
			start, end, len(s.elems))
	}
	return s.perms.Add(start, end)
}

// Permutations returns a copy of the intervals of a specific value
// template, or nil for any other selection. Changes to the copy do not
// reach the template; use AddPermutation and ClearPermutations.
func (r *RecordOf[T]) Permutations() *Permutations {
	if s, ok := r.sel.(*seqValue[T]); ok {
		return &Permutations{intervals: s.perms.Intervals()}
	}
	return nil
}

func (r *RecordOf[T]) ClearPermutations() {
	if s, ok := r.sel.(*seqValue[T]); ok {
		s.perms.Clear()
	}
}

func (r *RecordOf[T]) SetList(k Kind, n int) error {
	if err := checkListKind(r.TypeName(), k); err != nil {
		return err
	}
	if n < 0 {
		return errors.Usage(r.TypeName(), "creating a value list of negative size (%d)", n)
	}
	items := make([]*RecordOf[T], n)
	for i := range items {
		items[i] = NewRecordOf(r.elem)
	}
	r.set(list[*RecordOf[T]]{items: items, complement: k == ComplementedList})
	return nil
}

func (r *RecordOf[T]) ListLen() (int, error) {
	l, err := listOf[*RecordOf[T]](&r.Base, r.TypeName())
	return len(l.items), err
}

func (r *RecordOf[T]) ListItem(i int) (*RecordOf[T], error) {
	return listItem[*RecordOf[T]](&r.Base, r.TypeName(), i)
}

// Match reports whether the sequence v matches. Matching an uninitialized
// template panics.
func (r *RecordOf[T]) Match(v []T, legacy bool) bool {
	if r.sel == nil {
		panic(errors.Usage(r.TypeName(), "matching with an uninitialized/unsupported template"))
	}
	if !r.MatchLength(len(v)) {
		return false
	}
	switch s := r.sel.(type) {
	case wildcard:
		return s.k != Omit
	case *seqValue[T]:
		return matchSequence(s.elems, &s.perms, v, legacy)
	case list[*RecordOf[T]]:
		for _, it := range s.items {
			if it.Match(v, legacy) {
				return !s.complement
			}
		}
		return s.complement
	}
	panic(errors.Internal("template of type %s holds an unexpected selection %T", r.TypeName(), r.sel))
}

func (r *RecordOf[T]) MatchOptional(v *[]T, legacy bool) bool {
	if v == nil {
		return r.MatchOmit(legacy)
	}
	return r.Match(*v, legacy)
}

func (r *RecordOf[T]) MatchOmit(legacy bool) bool {
	return matchOmit[*RecordOf[T]](&r.Base, legacy)
}

func (r *RecordOf[T]) IsPresent(legacy bool) bool {
	return isPresent[*RecordOf[T]](&r.Base, legacy)
}

// IsValue reports whether every element is a specific value and no
// permutation is present.
func (r *RecordOf[T]) IsValue() bool {
	s, ok := r.sel.(*seqValue[T])
	return ok && !r.ifPresent && s.isValue()
}

func (r *RecordOf[T]) Value() ([]T, error) {
	s, err := seqOf[T](&r.Base, r.TypeName())
	if err != nil {
		return nil, err
	}
	if s.perms.Count() > 0 {
		return nil, errors.Usage(r.TypeName(), "performing a valueof or send operation on a template with permutation")
	}
	return s.values(r.TypeName())
}

func (r *RecordOf[T]) CheckRestriction(rs Restriction, legacy bool) error {
	return checkRestriction(&r.Base, r.TypeName(), rs, r.IsValue(), r.MatchOmit(legacy))
}

// SizeOf returns the single number of elements every matching value must
// have, taking "*" elements and the length restriction into account.
func (r *RecordOf[T]) SizeOf() (int, error) {
	name := r.TypeName()
	if r.ifPresent {
		return 0, sizeOpError("size", name, "which has an ifpresent attribute")
	}
	n, open := 0, false
	switch s := r.sel.(type) {
	case *seqValue[T]:
		n, open = s.size()
	case wildcard:
		if s.k == Omit {
			return 0, sizeOpError("size", name, "containing omit value")
		}
		open = true
	case list[*RecordOf[T]]:
		var err error
		if n, err = listSize(s, name, "size", (*RecordOf[T]).SizeOf); err != nil {
			return 0, err
		}
	default:
		return 0, sizeOpError("size", name, "containing an uninitialized or unsupported template")
	}
	return r.ResolveExactSize("size", n, open, name)
}

func (r *RecordOf[T]) String() string {
	var sb strings.Builder
	r.writeTo(&sb)
	return sb.String()
}

func (r *RecordOf[T]) writeTo(sb *strings.Builder) {
	switch s := r.sel.(type) {
	case nil:
		sb.WriteString("<uninitialized template>")
		return
	case wildcard:
		writeWildcard(sb, s.k)
	case *seqValue[T]:
		s.writeTo(sb)
	case list[*RecordOf[T]]:
		if s.complement {
			sb.WriteString("complement")
		}
		writeItems(sb, s.items, (*RecordOf[T]).writeTo)
	}
	r.writeSuffix(sb)
}
