package template

import (
	"strings"

	"github.com/wippyai/ttcn-runtime/errors"
)

// SetOf is a template for unordered collections of T. Besides the shared
// kinds it supports SupersetMatch and SubsetMatch.
type SetOf[T any] struct {
	Restricted
	elem *Traits[T]
}

func NewSetOf[T any](elem *Traits[T]) *SetOf[T] {
	return &SetOf[T]{elem: elem}
}

func (s *SetOf[T]) TypeName() string {
	return "set of " + s.elem.Name
}

func (s *SetOf[T]) SetSize(n int) error {
	return setSize(&s.Restricted, s.elem, s.TypeName(), n)
}

func (s *SetOf[T]) SetValues(vals ...T) {
	setValues(&s.Restricted, s.elem, vals)
}

func (s *SetOf[T]) Len() (int, error) {
	v, err := seqOf[T](&s.Base, s.TypeName())
	if err != nil {
		return 0, err
	}
	return len(v.elems), nil
}

func (s *SetOf[T]) Elem(i int) (*Scalar[T], error) {
	v, err := seqOf[T](&s.Base, s.TypeName())
	if err != nil {
		return nil, err
	}
	return v.elem(s.TypeName(), i)
}

// SetSetMatch switches to SupersetMatch or SubsetMatch with n
// uninitialized items.
func (s *SetOf[T]) SetSetMatch(k Kind, n int) error {
	if k != SupersetMatch && k != SubsetMatch {
		return errors.Usage(s.TypeName(), "setting an invalid set match kind (%s)", k)
	}
	if n < 0 {
		return errors.Usage(s.TypeName(), "creating a %s template of negative size (%d)", k, n)
	}
	items := make([]*Scalar[T], n)
	for i := range items {
		items[i] = New(s.elem)
	}
	s.set(setMatch[*Scalar[T]]{items: items, superset: k == SupersetMatch})
	return nil
}

func (s *SetOf[T]) matchItems() (setMatch[*Scalar[T]], error) {
	m, ok := s.sel.(setMatch[*Scalar[T]])
	if !ok {
		return m, errors.Usage(s.TypeName(), "accessing a set element of a non-superset/subset template (selection is %s)", s.Kind())
	}
	return m, nil
}

func (s *SetOf[T]) SetMatchLen() (int, error) {
	m, err := s.matchItems()
	return len(m.items), err
}

func (s *SetOf[T]) SetMatchItem(i int) (*Scalar[T], error) {
	m, err := s.matchItems()
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= len(m.items) {
		return nil, errors.Usage(s.TypeName(), "index %d overflow in a %s template of %d items", i, s.Kind(), len(m.items))
	}
	return m.items[i], nil
}

func (s *SetOf[T]) SetList(k Kind, n int) error {
	if err := checkListKind(s.TypeName(), k); err != nil {
		return err
	}
	if n < 0 {
		return errors.Usage(s.TypeName(), "creating a value list of negative size (%d)", n)
	}
	items := make([]*SetOf[T], n)
	for i := range items {
		items[i] = NewSetOf(s.elem)
	}
	s.set(list[*SetOf[T]]{items: items, complement: k == ComplementedList})
	return nil
}

func (s *SetOf[T]) ListLen() (int, error) {
	l, err := listOf[*SetOf[T]](&s.Base, s.TypeName())
	return len(l.items), err
}

func (s *SetOf[T]) ListItem(i int) (*SetOf[T], error) {
	return listItem[*SetOf[T]](&s.Base, s.TypeName(), i)
}

// Match reports whether the collection v matches regardless of order.
func (s *SetOf[T]) Match(v []T, legacy bool) bool {
	if s.sel == nil {
		panic(errors.Usage(s.TypeName(), "matching with an uninitialized/unsupported template"))
	}
	if !s.MatchLength(len(v)) {
		return false
	}
	switch sel := s.sel.(type) {
	case wildcard:
		return sel.k != Omit
	case *seqValue[T]:
		return matchUnordered(sel.elems, v, legacy, setExact)
	case setMatch[*Scalar[T]]:
		if sel.superset {
			return matchUnordered(sel.items, v, legacy, setSuperset)
		}
		return matchUnordered(sel.items, v, legacy, setSubset)
	case list[*SetOf[T]]:
		for _, it := range sel.items {
			if it.Match(v, legacy) {
				return !sel.complement
			}
		}
		return sel.complement
	}
	panic(errors.Internal("template of type %s holds an unexpected selection %T", s.TypeName(), s.sel))
}

func (s *SetOf[T]) MatchOmit(legacy bool) bool {
	return matchOmit[*SetOf[T]](&s.Base, legacy)
}

func (s *SetOf[T]) IsPresent(legacy bool) bool {
	return isPresent[*SetOf[T]](&s.Base, legacy)
}

func (s *SetOf[T]) IsValue() bool {
	v, ok := s.sel.(*seqValue[T])
	return ok && !s.ifPresent && v.isValue()
}

func (s *SetOf[T]) Value() ([]T, error) {
	v, err := seqOf[T](&s.Base, s.TypeName())
	if err != nil {
		return nil, err
	}
	return v.values(s.TypeName())
}

func (s *SetOf[T]) CheckRestriction(r Restriction, legacy bool) error {
	return checkRestriction(&s.Base, s.TypeName(), r, s.IsValue(), s.MatchOmit(legacy))
}

// SizeOf returns the single number of elements every matching value must
// have. A superset demands at least its items; a subset at most.
func (s *SetOf[T]) SizeOf() (int, error) {
	name := s.TypeName()
	if s.ifPresent {
		return 0, sizeOpError("size", name, "which has an ifpresent attribute")
	}
	n, open := 0, false
	switch sel := s.sel.(type) {
	case *seqValue[T]:
		n, open = sel.size()
	case wildcard:
		if sel.k == Omit {
			return 0, sizeOpError("size", name, "containing omit value")
		}
		open = true
	case setMatch[*Scalar[T]]:
		if sel.superset {
			fixed, _ := splitOpen(sel.items)
			n = len(fixed)
		}
		open = true
	case list[*SetOf[T]]:
		var err error
		if n, err = listSize(sel, name, "size", (*SetOf[T]).SizeOf); err != nil {
			return 0, err
		}
	default:
		return 0, sizeOpError("size", name, "containing an uninitialized or unsupported template")
	}
	return s.ResolveExactSize("size", n, open, name)
}

func (s *SetOf[T]) String() string {
	var sb strings.Builder
	s.writeTo(&sb)
	return sb.String()
}

func (s *SetOf[T]) writeTo(sb *strings.Builder) {
	switch sel := s.sel.(type) {
	case nil:
		sb.WriteString("<uninitialized template>")
		return
	case wildcard:
		writeWildcard(sb, sel.k)
	case *seqValue[T]:
		sel.writeTo(sb)
	case setMatch[*Scalar[T]]:
		if sel.superset {
			sb.WriteString("superset")
		} else {
			sb.WriteString("subset")
		}
		writeItems(sb, sel.items, (*Scalar[T]).writeTo)
	case list[*SetOf[T]]:
		if sel.complement {
			sb.WriteString("complement")
		}
		writeItems(sb, sel.items, (*SetOf[T]).writeTo)
	}
	s.writeSuffix(sb)
}
