package main

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/wippyai/ttcn-runtime/encdec"
	"github.com/wippyai/ttcn-runtime/errors"
	"github.com/wippyai/ttcn-runtime/wire"
)

// Field tags understood by -encode and -layout:
//
//	i  integer (any size)
//	d  float, 8 bytes
//	s  charstring
//	b  boolean
//	o  octetstring given as hex
//	q  qualified name module.identifier
const fieldTags = "idsboq"

type field struct {
	tag   byte
	value string
}

func parseFields(list string) ([]field, error) {
	var out []field
	for _, item := range strings.Split(list, ",") {
		tag, value, ok := strings.Cut(strings.TrimSpace(item), ":")
		if !ok || len(tag) != 1 || !strings.Contains(fieldTags, tag) {
			return nil, errors.InvalidInput(errors.PhaseEncode,
				fmt.Sprintf("field %q: expected <tag>:<value> with tag one of %s", item, fieldTags))
		}
		out = append(out, field{tag: tag[0], value: value})
	}
	return out, nil
}

func encodeField(b *wire.Buffer, f field) error {
	switch f.tag {
	case 'i':
		v, ok := new(big.Int).SetString(f.value, 10)
		if !ok {
			return badField(f, "not an integer")
		}
		if v.IsInt64() {
			b.PushInt(v.Int64())
		} else {
			b.PushBigInt(v)
		}
	case 'd':
		v, err := strconv.ParseFloat(f.value, 64)
		if err != nil {
			return badField(f, "not a float")
		}
		b.PushDouble(v)
	case 's':
		b.PushString(f.value)
	case 'b':
		v, err := strconv.ParseBool(f.value)
		if err != nil {
			return badField(f, "not a boolean")
		}
		b.PushBool(v)
	case 'o':
		raw, err := hex.DecodeString(f.value)
		if err != nil {
			return badField(f, "not hex")
		}
		b.PushInt(int64(len(raw)))
		return b.PushRaw(len(raw), raw)
	case 'q':
		i := strings.LastIndexByte(f.value, '.')
		if i < 0 {
			return badField(f, "expected module.identifier")
		}
		b.PushQualifiedName(f.value[:i], f.value[i+1:])
	}
	return nil
}

func badField(f field, why string) error {
	return errors.InvalidInput(errors.PhaseEncode, fmt.Sprintf("%c:%s: %s", f.tag, f.value, why))
}

// encodeFields pushes every field of list into b. With frame set the
// message is prefixed with its length.
func encodeFields(b *wire.Buffer, list string, frame bool) error {
	fields, err := parseFields(list)
	if err != nil {
		return err
	}
	for _, f := range fields {
		if err := encodeField(b, f); err != nil {
			return err
		}
	}
	if frame {
		return b.CalculateLength()
	}
	return nil
}

// decodeFields pulls one value per layout tag. Failures are reported
// through ctx, so their text names the field being decoded.
func decodeFields(ctx *encdec.Context, b *wire.Buffer, layout string) ([]string, error) {
	b.SetReporter(ctx)
	var out []string
	for i, tag := range strings.Split(layout, ",") {
		tag = strings.TrimSpace(tag)
		if len(tag) != 1 || !strings.Contains(fieldTags, tag) {
			return out, errors.InvalidInput(errors.PhaseDecode, fmt.Sprintf("layout entry %q is not a field tag", tag))
		}
		var text string
		err := ctx.Within(func() error {
			var err error
			text, err = decodeField(b, tag[0])
			return err
		}, "field %d (%s): ", i+1, tag)
		if err != nil {
			return out, err
		}
		out = append(out, tag+": "+text)
	}
	if b.Remaining() > 0 {
		if err := ctx.Error(encdec.Superfluous, "%d bytes left after the last field", b.Remaining()); err != nil {
			return out, err
		}
	}
	return out, nil
}

func decodeField(b *wire.Buffer, tag byte) (string, error) {
	switch tag {
	case 'i':
		v, err := b.PullInt()
		return v.String(), err
	case 'd':
		v, err := b.PullDouble()
		return strconv.FormatFloat(v, 'g', -1, 64), err
	case 's':
		v, err := b.PullString()
		return strconv.Quote(v), err
	case 'b':
		v, err := b.PullBool()
		return strconv.FormatBool(v), err
	case 'o':
		n, err := b.PullInt64()
		if err != nil {
			return "", err
		}
		raw, err := b.PullRaw(int(n))
		return fmt.Sprintf("'%X'O", raw), err
	case 'q':
		m, id, err := b.PullQualifiedName()
		return m + "." + id, err
	}
	return "", errors.Internal("unhandled field tag %c", tag)
}

// unframe strips the length header of a framed message and positions the
// read cursor at its payload.
func unframe(b *wire.Buffer) error {
	if !b.IsMessage() {
		return errors.New(errors.PhaseDecode, errors.KindIncomplete).
			Category(encdec.IncompleteMessage.String()).
			Detail("input does not hold a complete length-prefixed message").
			Build()
	}
	header, _, _ := b.MessageLength()
	return b.SetPos(header)
}
