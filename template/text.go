package template

import (
	"github.com/wippyai/ttcn-runtime/encdec"
	"github.com/wippyai/ttcn-runtime/errors"
	"github.com/wippyai/ttcn-runtime/wire"
)

// Every template travels as varint(kind) varint(ifpresent), a payload that
// depends on the kind, and finally the length restriction.

func encodeHeader(b *wire.Buffer, base *Base, typeName string) error {
	if base.sel == nil {
		if err := b.Report(encdec.Unbound, "text encoder: encoding an unbound template of type %s", typeName); err != nil {
			return err
		}
	}
	b.PushInt(int64(base.Kind()))
	b.PushBool(base.ifPresent)
	return nil
}

func decodeHeader(b *wire.Buffer, typeName string) (Kind, bool, error) {
	k, err := b.PullInt64()
	if err != nil {
		return Uninitialized, false, err
	}
	if k < 0 || k >= int64(numKinds) {
		return Uninitialized, false, errors.UnknownSelection(typeName, k)
	}
	ifPresent, err := b.PullBool()
	if err != nil {
		return Uninitialized, false, err
	}
	return Kind(k), ifPresent, nil
}

func pullCount(b *wire.Buffer, what string) (int, error) {
	n, err := b.PullInt64()
	if err != nil {
		return 0, err
	}
	if n < 0 || n > int64(b.Remaining()) {
		// Every item takes at least one byte.
		return 0, b.Report(encdec.InvalidMessage, "text decoder: invalid %s count (%d)", what, n)
	}
	return int(n), nil
}

// EncodeText appends the template to b.
func (t *Scalar[T]) EncodeText(b *wire.Buffer) error {
	if _, ok := t.sel.(decodeMatch[T]); ok {
		return errors.Unsupported(errors.PhaseEncode, "text encoding of a decoded content match template of type "+t.traits.Name)
	}
	if err := encodeHeader(b, &t.Base, t.traits.Name); err != nil {
		return err
	}
	switch s := t.sel.(type) {
	case specific[T]:
		if err := t.traits.Encode(b, s.value); err != nil {
			return err
		}
	case list[*Scalar[T]]:
		b.PushInt(int64(len(s.items)))
		for _, it := range s.items {
			if err := it.EncodeText(b); err != nil {
				return err
			}
		}
	case valueRange[T]:
		if err := t.encodeBound(b, s.r.Min, s.r.MinExclusive); err != nil {
			return err
		}
		if err := t.encodeBound(b, s.r.Max, s.r.MaxExclusive); err != nil {
			return err
		}
	case pattern:
		b.PushString(s.source)
		b.PushBool(s.nocase)
	}
	t.encodeLength(b)
	return nil
}

func (t *Scalar[T]) encodeBound(b *wire.Buffer, v *T, exclusive bool) error {
	b.PushBool(v != nil)
	if v != nil {
		if err := t.traits.Encode(b, *v); err != nil {
			return err
		}
	}
	b.PushBool(exclusive)
	return nil
}

func (t *Scalar[T]) decodeBound(b *wire.Buffer) (*T, bool, error) {
	set, err := b.PullBool()
	if err != nil {
		return nil, false, err
	}
	var v *T
	if set {
		x, err := t.traits.Decode(b)
		if err != nil {
			return nil, false, err
		}
		v = &x
	}
	exclusive, err := b.PullBool()
	return v, exclusive, err
}

// DecodeText replaces the template with one read from b.
func (t *Scalar[T]) DecodeText(b *wire.Buffer) error {
	name := t.traits.Name
	k, ifPresent, err := decodeHeader(b, name)
	if err != nil {
		return err
	}
	switch k {
	case Uninitialized:
		t.Clean()
	case Omit, Any, AnyOrOmit:
		t.set(wildcard{k})
	case SpecificValue:
		v, err := t.traits.Decode(b)
		if err != nil {
			return err
		}
		t.SetValue(v)
	case ValueList, ComplementedList:
		n, err := pullCount(b, "value list")
		if err != nil {
			return err
		}
		items := make([]*Scalar[T], n)
		for i := range items {
			items[i] = New(t.traits)
			if err := items[i].DecodeText(b); err != nil {
				return err
			}
		}
		t.set(list[*Scalar[T]]{items: items, complement: k == ComplementedList})
	case ValueRange:
		var r Range[T]
		if r.Min, r.MinExclusive, err = t.decodeBound(b); err != nil {
			return err
		}
		if r.Max, r.MaxExclusive, err = t.decodeBound(b); err != nil {
			return err
		}
		if err := t.SetRange(r); err != nil {
			return err
		}
	case StringPattern:
		src, err := b.PullString()
		if err != nil {
			return err
		}
		nocase, err := b.PullBool()
		if err != nil {
			return err
		}
		if err := t.SetPattern(src, nocase); err != nil {
			return err
		}
	default:
		return errors.UnknownSelection(name, int64(k))
	}
	t.ifPresent = ifPresent
	return t.decodeLength(b, name)
}

func (r *RecordOf[T]) EncodeText(b *wire.Buffer) error {
	if err := encodeHeader(b, &r.Base, r.TypeName()); err != nil {
		return err
	}
	switch s := r.sel.(type) {
	case *seqValue[T]:
		if err := encodeElems(b, s.elems); err != nil {
			return err
		}
		b.PushInt(int64(s.perms.Count()))
		for _, iv := range s.perms.intervals {
			b.PushInt(int64(iv.Start))
			b.PushInt(int64(iv.End))
		}
	case list[*RecordOf[T]]:
		b.PushInt(int64(len(s.items)))
		for _, it := range s.items {
			if err := it.EncodeText(b); err != nil {
				return err
			}
		}
	}
	r.encodeLength(b)
	return nil
}

func (r *RecordOf[T]) DecodeText(b *wire.Buffer) error {
	name := r.TypeName()
	k, ifPresent, err := decodeHeader(b, name)
	if err != nil {
		return err
	}
	switch k {
	case Uninitialized:
		r.Clean()
	case Omit, Any, AnyOrOmit:
		r.set(wildcard{k})
	case SpecificValue:
		s, err := decodeElems(b, r.elem)
		if err != nil {
			return err
		}
		n, err := pullCount(b, "permutation")
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			start, err := b.PullInt64()
			if err != nil {
				return err
			}
			end, err := b.PullInt64()
			if err != nil {
				return err
			}
			if end >= int64(len(s.elems)) {
				return b.Report(encdec.InvalidMessage,
					"text decoder: permutation interval %d..%d is outside the %d elements of the template", start, end, len(s.elems))
			}
			if err := s.perms.Add(int(start), int(end)); err != nil {
				return err
			}
		}
		r.set(s)
	case ValueList, ComplementedList:
		n, err := pullCount(b, "value list")
		if err != nil {
			return err
		}
		items := make([]*RecordOf[T], n)
		for i := range items {
			items[i] = NewRecordOf(r.elem)
			if err := items[i].DecodeText(b); err != nil {
				return err
			}
		}
		r.set(list[*RecordOf[T]]{items: items, complement: k == ComplementedList})
	default:
		return errors.UnknownSelection(name, int64(k))
	}
	r.ifPresent = ifPresent
	return r.decodeLength(b, name)
}

func (s *SetOf[T]) EncodeText(b *wire.Buffer) error {
	if err := encodeHeader(b, &s.Base, s.TypeName()); err != nil {
		return err
	}
	switch sel := s.sel.(type) {
	case *seqValue[T]:
		if err := encodeElems(b, sel.elems); err != nil {
			return err
		}
	case setMatch[*Scalar[T]]:
		if err := encodeElems(b, sel.items); err != nil {
			return err
		}
	case list[*SetOf[T]]:
		b.PushInt(int64(len(sel.items)))
		for _, it := range sel.items {
			if err := it.EncodeText(b); err != nil {
				return err
			}
		}
	}
	s.encodeLength(b)
	return nil
}

func (s *SetOf[T]) DecodeText(b *wire.Buffer) error {
	name := s.TypeName()
	k, ifPresent, err := decodeHeader(b, name)
	if err != nil {
		return err
	}
	switch k {
	case Uninitialized:
		s.Clean()
	case Omit, Any, AnyOrOmit:
		s.set(wildcard{k})
	case SpecificValue:
		v, err := decodeElems(b, s.elem)
		if err != nil {
			return err
		}
		s.set(v)
	case SupersetMatch, SubsetMatch:
		v, err := decodeElems(b, s.elem)
		if err != nil {
			return err
		}
		s.set(setMatch[*Scalar[T]]{items: v.elems, superset: k == SupersetMatch})
	case ValueList, ComplementedList:
		n, err := pullCount(b, "value list")
		if err != nil {
			return err
		}
		items := make([]*SetOf[T], n)
		for i := range items {
			items[i] = NewSetOf(s.elem)
			if err := items[i].DecodeText(b); err != nil {
				return err
			}
		}
		s.set(list[*SetOf[T]]{items: items, complement: k == ComplementedList})
	default:
		return errors.UnknownSelection(name, int64(k))
	}
	s.ifPresent = ifPresent
	return s.decodeLength(b, name)
}

func encodeElems[T any](b *wire.Buffer, elems []*Scalar[T]) error {
	b.PushInt(int64(len(elems)))
	for _, e := range elems {
		if err := e.EncodeText(b); err != nil {
			return err
		}
	}
	return nil
}

func decodeElems[T any](b *wire.Buffer, tr *Traits[T]) (*seqValue[T], error) {
	n, err := pullCount(b, "element")
	if err != nil {
		return nil, err
	}
	s := newSeq(tr, n)
	for _, e := range s.elems {
		if err := e.DecodeText(b); err != nil {
			return nil, err
		}
	}
	return s, nil
}
