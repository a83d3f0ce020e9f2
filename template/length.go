package template

import (
	"fmt"

	"github.com/wippyai/ttcn-runtime/errors"
	"github.com/wippyai/ttcn-runtime/wire"
)

// LengthMode is the form of a length restriction.
type LengthMode uint8

const (
	NoLength LengthMode = iota
	SingleLength
	RangeLength

	numLengthModes
)

// LengthRestriction constrains the number of elements (or characters) of
// a matched value. It is a pure predicate and never references the value.
// The zero value is unrestricted.
type LengthRestriction struct {
	mode   LengthMode
	single int
	min    int
	max    int
	maxSet bool
}

func (l *LengthRestriction) LengthMode() LengthMode { return l.mode }

// SetSingleLength restricts the length to exactly n.
func (l *LengthRestriction) SetSingleLength(n int) error {
	if n < 0 {
		return errors.LengthRestriction("", "setting a negative length restriction (%d)", n)
	}
	*l = LengthRestriction{mode: SingleLength, single: n}
	return nil
}

// SetMinLength enters range mode with lower bound n and no upper bound.
func (l *LengthRestriction) SetMinLength(n int) error {
	if n < 0 {
		return errors.LengthRestriction("", "setting a negative lower limit for the length restriction (%d)", n)
	}
	*l = LengthRestriction{mode: RangeLength, min: n}
	return nil
}

// SetMaxLength sets the upper bound of a range restriction.
func (l *LengthRestriction) SetMaxLength(n int) error {
	if l.mode != RangeLength {
		return errors.Usage("", "setting the upper limit of a length restriction that is not a range")
	}
	if n < 0 {
		return errors.LengthRestriction("", "setting a negative upper limit for the length restriction (%d)", n)
	}
	if n < l.min {
		return errors.LengthRestriction("",
			"the upper limit of the length restriction (%d) is smaller than the lower limit (%d)", n, l.min)
	}
	l.max = n
	l.maxSet = true
	return nil
}

func (l *LengthRestriction) ClearLength() {
	*l = LengthRestriction{}
}

// MatchLength reports whether n satisfies the restriction.
func (l *LengthRestriction) MatchLength(n int) bool {
	switch l.mode {
	case SingleLength:
		return n == l.single
	case RangeLength:
		return n >= l.min && (!l.maxSet || n <= l.max)
	}
	return true
}

// bounds renders the restriction as n, min..max or min..infinity.
func (l *LengthRestriction) bounds() string {
	switch l.mode {
	case SingleLength:
		return fmt.Sprint(l.single)
	case RangeLength:
		if l.maxSet {
			return fmt.Sprintf("%d..%d", l.min, l.max)
		}
		return fmt.Sprintf("%d..infinity", l.min)
	}
	return ""
}

// LengthString renders the restriction in template notation, or "" when
// there is none.
func (l *LengthRestriction) LengthString() string {
	switch l.mode {
	case SingleLength:
		return fmt.Sprintf("length (%d)", l.single)
	case RangeLength:
		if l.maxSet {
			return fmt.Sprintf("length (%d .. %d)", l.min, l.max)
		}
		return fmt.Sprintf("length (%d .. infinity)", l.min)
	}
	return ""
}

// ResolveExactSize reconciles the restriction with a size computed from a
// template's content. minRequired is the number of elements the content
// demands; openWildcard tells whether the content also contains an
// any-or-none element that could absorb more. op names the calling
// operation ("size" or "length").
func (l *LengthRestriction) ResolveExactSize(op string, minRequired int, openWildcard bool, typeName string) (int, error) {
	if openWildcard {
		switch l.mode {
		case SingleLength:
			if l.single >= minRequired {
				return l.single, nil
			}
			return 0, l.contradiction(op, minRequired, typeName)
		case RangeLength:
			if l.MatchLength(minRequired) {
				if l.maxSet && l.max == minRequired {
					return minRequired, nil
				}
			} else if minRequired > l.min {
				return 0, l.contradiction(op, minRequired, typeName)
			}
		}
		return 0, errors.LengthRestriction(typeName,
			"performing %sof() operation on a template of type %s with no exact %s", op, typeName, op)
	}

	if l.MatchLength(minRequired) {
		return minRequired, nil
	}
	return 0, errors.LengthRestriction(typeName,
		"performing %sof() operation on an invalid template of type %s: the calculated %s (%d) does not match the length restriction (%s)",
		op, typeName, op, minRequired, l.bounds())
}

func (l *LengthRestriction) contradiction(op string, minRequired int, typeName string) error {
	return errors.LengthRestriction(typeName,
		"performing %sof() operation on an invalid template of type %s: the minimum %s (%d) contradicts the length restriction (%s)",
		op, typeName, op, minRequired, l.bounds())
}

func (l *LengthRestriction) encodeLength(b *wire.Buffer) {
	b.PushInt(int64(l.mode))
	switch l.mode {
	case SingleLength:
		b.PushInt(int64(l.single))
	case RangeLength:
		b.PushInt(int64(l.min))
		b.PushBool(l.maxSet)
		if l.maxSet {
			b.PushInt(int64(l.max))
		}
	}
}

func (l *LengthRestriction) decodeLength(b *wire.Buffer, typeName string) error {
	mode, err := b.PullInt64()
	if err != nil {
		return err
	}
	if mode < 0 || mode >= int64(numLengthModes) {
		return errors.New(errors.PhaseDecode, errors.KindUnknownSelection).
			TypeName(typeName).
			Detail("text decoder: unrecognized length restriction type (%d) received for a template", mode).
			Build()
	}
	switch LengthMode(mode) {
	case NoLength:
		l.ClearLength()
	case SingleLength:
		n, err := b.PullInt64()
		if err != nil {
			return err
		}
		return l.SetSingleLength(int(n))
	case RangeLength:
		n, err := b.PullInt64()
		if err != nil {
			return err
		}
		if err := l.SetMinLength(int(n)); err != nil {
			return err
		}
		hasMax, err := b.PullBool()
		if err != nil || !hasMax {
			return err
		}
		m, err := b.PullInt64()
		if err != nil {
			return err
		}
		return l.SetMaxLength(int(m))
	}
	return nil
}
