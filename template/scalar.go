package template

import (
	"strings"

	"github.com/wippyai/ttcn-runtime/errors"
)

// Restricted is a selection with an attached length restriction.
// Changing the selection drops the restriction, so restrictions are set
// after the selection.
type Restricted struct {
	Base
	LengthRestriction
}

// SetKind switches to a payload-free kind and clears the length restriction.
func (r *Restricted) SetKind(k Kind) error {
	if err := r.Base.SetKind(k); err != nil {
		return err
	}
	r.ClearLength()
	return nil
}

func (r *Restricted) set(sel selection) {
	r.Base.set(sel)
	r.ClearLength()
}

// Clean releases the selection and clears every modifier.
func (r *Restricted) Clean() {
	r.Base.Clean()
	r.ClearLength()
}

func (r *Restricted) writeSuffix(sb *strings.Builder) {
	if l := r.LengthString(); l != "" {
		sb.WriteByte(' ')
		sb.WriteString(l)
	}
	if r.ifPresent {
		sb.WriteString(" ifpresent")
	}
}

// Scalar is a template for single values of type T: integers, floats,
// booleans and strings.
type Scalar[T any] struct {
	Restricted
	traits *Traits[T]
}

// New creates an uninitialized template.
func New[T any](tr *Traits[T]) *Scalar[T] {
	return &Scalar[T]{traits: tr}
}

// NewValue creates a specific value template.
func NewValue[T any](tr *Traits[T], v T) *Scalar[T] {
	t := New(tr)
	t.SetValue(v)
	return t
}

// NewWildcard creates an Omit, Any or AnyOrOmit template. Any other kind
// is rejected.
func NewWildcard[T any](tr *Traits[T], k Kind) (*Scalar[T], error) {
	if !k.IsSingle() {
		return nil, errors.Usage(tr.Name, "setting an invalid single selection (%s) for a template", k)
	}
	t := New(tr)
	t.set(wildcard{k})
	return t, nil
}

func (t *Scalar[T]) Traits() *Traits[T] { return t.traits }

func (t *Scalar[T]) SetValue(v T) {
	t.set(specific[T]{v})
}

// SetList switches to ValueList or ComplementedList with n uninitialized
// items.
func (t *Scalar[T]) SetList(k Kind, n int) error {
	if err := checkListKind(t.traits.Name, k); err != nil {
		return err
	}
	if n < 0 {
		return errors.Usage(t.traits.Name, "creating a value list of negative size (%d)", n)
	}
	items := make([]*Scalar[T], n)
	for i := range items {
		items[i] = New(t.traits)
	}
	t.set(list[*Scalar[T]]{items: items, complement: k == ComplementedList})
	return nil
}

func (t *Scalar[T]) ListLen() (int, error) {
	l, err := listOf[*Scalar[T]](&t.Base, t.traits.Name)
	return len(l.items), err
}

func (t *Scalar[T]) ListItem(i int) (*Scalar[T], error) {
	return listItem[*Scalar[T]](&t.Base, t.traits.Name, i)
}

// SetRange switches to ValueRange. The type must be ordered.
func (t *Scalar[T]) SetRange(r Range[T]) error {
	if t.traits.Compare == nil {
		return errors.Unsupported(errors.PhaseTemplate, "value range templates of type "+t.traits.Name)
	}
	if r.Min != nil && r.Max != nil && t.traits.Compare(*r.Min, *r.Max) > 0 {
		return errors.Usage(t.traits.Name, "the lower bound %s of a value range is greater than the upper bound %s",
			t.traits.Format(*r.Min), t.traits.Format(*r.Max))
	}
	t.set(valueRange[T]{r})
	return nil
}

// SetPattern switches to StringPattern. The type must expose its text.
func (t *Scalar[T]) SetPattern(source string, nocase bool) error {
	if t.traits.Text == nil {
		return errors.Unsupported(errors.PhaseTemplate, "pattern templates of type "+t.traits.Name)
	}
	re, err := compilePattern(source, nocase)
	if err != nil {
		return err
	}
	t.set(pattern{re: re, source: source, nocase: nocase})
	return nil
}

// SetDecodeMatch switches to DecodeMatch. match decides whether a value
// decodes to content acceptable to the named target template.
func (t *Scalar[T]) SetDecodeMatch(name string, match func(T) bool) error {
	if match == nil {
		return errors.Usage(t.traits.Name, "setting a decoded content match without a matcher")
	}
	t.set(decodeMatch[T]{match: match, name: name})
	return nil
}

// Match reports whether the present value v matches. Matching an
// uninitialized template panics.
func (t *Scalar[T]) Match(v T, legacy bool) bool {
	if t.sel == nil {
		panic(errors.Usage(t.traits.Name, "matching with an uninitialized/unsupported template"))
	}
	if t.traits.Len != nil && !t.MatchLength(t.traits.Len(v)) {
		return false
	}
	switch s := t.sel.(type) {
	case wildcard:
		return s.k != Omit
	case specific[T]:
		return t.traits.Equal(s.value, v)
	case list[*Scalar[T]]:
		for _, it := range s.items {
			if it.Match(v, legacy) {
				return !s.complement
			}
		}
		return s.complement
	case valueRange[T]:
		return t.traits.inRange(v, s.r)
	case pattern:
		return s.re.MatchString(t.traits.Text(v))
	case decodeMatch[T]:
		return s.match(v)
	}
	panic(errors.Internal("template of type %s holds an unexpected selection %T", t.traits.Name, t.sel))
}

// MatchOptional matches an optional field: nil means the field is absent.
func (t *Scalar[T]) MatchOptional(v *T, legacy bool) bool {
	if v == nil {
		return t.MatchOmit(legacy)
	}
	return t.Match(*v, legacy)
}

// MatchOmit reports whether an absent field matches.
func (t *Scalar[T]) MatchOmit(legacy bool) bool {
	return matchOmit[*Scalar[T]](&t.Base, legacy)
}

func (t *Scalar[T]) IsPresent(legacy bool) bool {
	return isPresent[*Scalar[T]](&t.Base, legacy)
}

// IsValue reports whether the template denotes exactly one value.
func (t *Scalar[T]) IsValue() bool {
	_, ok := t.sel.(specific[T])
	return ok && !t.ifPresent
}

// Value returns the value of a specific value template.
func (t *Scalar[T]) Value() (T, error) {
	s, ok := t.sel.(specific[T])
	if !ok {
		var zero T
		return zero, errors.Usage(t.traits.Name, "performing a valueof or send operation on a non-specific template")
	}
	return s.value, nil
}

// CheckRestriction validates the template against a declared restriction.
func (t *Scalar[T]) CheckRestriction(r Restriction, legacy bool) error {
	return checkRestriction(&t.Base, t.traits.Name, r, t.IsValue(), t.MatchOmit(legacy))
}

// LengthOf returns the single length every matching value must have.
func (t *Scalar[T]) LengthOf() (int, error) {
	name := t.traits.Name
	if t.traits.Len == nil {
		return 0, errors.Unsupported(errors.PhaseTemplate, "lengthof() on templates of type "+name)
	}
	if t.ifPresent {
		return 0, sizeOpError("length", name, "which has an ifpresent attribute")
	}
	n, open := 0, false
	switch s := t.sel.(type) {
	case specific[T]:
		n = t.traits.Len(s.value)
	case wildcard:
		if s.k == Omit {
			return 0, sizeOpError("length", name, "containing omit value")
		}
		open = true
	case list[*Scalar[T]]:
		var err error
		if n, err = listSize(s, name, "length", (*Scalar[T]).LengthOf); err != nil {
			return 0, err
		}
	default:
		return 0, sizeOpError("length", name, "containing an uninitialized or unsupported template")
	}
	return t.ResolveExactSize("length", n, open, name)
}

// listSize requires every item of a value list to have the same size.
func listSize[X any](l list[X], typeName, op string, size func(X) (int, error)) (int, error) {
	if l.complement {
		return 0, sizeOpError(op, typeName, "containing complemented list")
	}
	if len(l.items) == 0 {
		return 0, sizeOpError(op, typeName, "containing an empty list")
	}
	n := 0
	for i, it := range l.items {
		m, err := size(it)
		if err != nil {
			return 0, err
		}
		if i > 0 && m != n {
			return 0, sizeOpError(op, typeName, "containing a value list with different "+op+"s")
		}
		n = m
	}
	return n, nil
}

func sizeOpError(op, typeName, what string) error {
	return errors.Usage(typeName, "performing %sof() operation on a template of type %s %s", op, typeName, what)
}

func (t *Scalar[T]) String() string {
	var sb strings.Builder
	t.writeTo(&sb)
	return sb.String()
}

func (t *Scalar[T]) writeTo(sb *strings.Builder) {
	switch s := t.sel.(type) {
	case nil:
		sb.WriteString("<uninitialized template>")
		return
	case wildcard:
		writeWildcard(sb, s.k)
	case specific[T]:
		sb.WriteString(t.traits.Format(s.value))
	case list[*Scalar[T]]:
		if s.complement {
			sb.WriteString("complement")
		}
		writeItems(sb, s.items, (*Scalar[T]).writeTo)
	case valueRange[T]:
		t.writeRange(sb, s.r)
	case pattern:
		sb.WriteString("pattern ")
		if s.nocase {
			sb.WriteString("@nocase ")
		}
		sb.WriteByte('"')
		sb.WriteString(s.source)
		sb.WriteByte('"')
	case decodeMatch[T]:
		sb.WriteString("decmatch ")
		sb.WriteString(s.name)
	}
	t.writeSuffix(sb)
}

func (t *Scalar[T]) writeRange(sb *strings.Builder, r Range[T]) {
	sb.WriteByte('(')
	if r.MinExclusive {
		sb.WriteByte('!')
	}
	if r.Min != nil {
		sb.WriteString(t.traits.Format(*r.Min))
	} else {
		sb.WriteString("-infinity")
	}
	sb.WriteString(" .. ")
	if r.MaxExclusive {
		sb.WriteByte('!')
	}
	if r.Max != nil {
		sb.WriteString(t.traits.Format(*r.Max))
	} else {
		sb.WriteString("infinity")
	}
	sb.WriteByte(')')
}

func writeWildcard(sb *strings.Builder, k Kind) {
	switch k {
	case Omit:
		sb.WriteString("omit")
	case Any:
		sb.WriteByte('?')
	case AnyOrOmit:
		sb.WriteByte('*')
	}
}

func writeItems[X any](sb *strings.Builder, items []X, write func(X, *strings.Builder)) {
	sb.WriteByte('(')
	for i, it := range items {
		if i > 0 {
			sb.WriteString(", ")
		}
		write(it, sb)
	}
	sb.WriteByte(')')
}
