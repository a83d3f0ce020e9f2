package wire

import (
	"math/bits"

	"github.com/wippyai/ttcn-runtime/errors"
)

// CalculateLength writes the current payload length into the reserved
// header region, directly in front of the payload, and makes it part of
// the data. It lets a sender frame a message after all of its fields have
// been pushed.
func (b *Buffer) CalculateLength() error {
	payload := uint64(b.length)
	n := encodedLen(bits.Len64(payload))
	if n > b.begin {
		return errors.New(errors.PhaseEncode, errors.KindUsage).
			Detail("text encoder: not enough header space to encode message length %d (%d bytes needed, %d reserved)",
				b.length, n, b.begin).
			Build()
	}
	var scratch [maxWordBytes + 1]byte
	start := b.begin - n
	copy(b.data[start:], appendMagnitude(scratch[:0], false, payload))
	b.begin = start
	b.length += n
	return nil
}

// MessageLength inspects the start of the data for a length-prefixed
// message. It returns the header size and the payload size; ok is false
// while the header itself is incomplete.
func (b *Buffer) MessageLength() (header, payload int, ok bool) {
	v, n, ok := DecodeInt(b.Bytes())
	if !ok {
		return 0, 0, false
	}
	l, fits := v.Int64()
	if !fits || l < 0 || l > int64(^uint(0)>>1)-int64(n) {
		return n, -1, true
	}
	return n, int(l), true
}

// IsMessage reports whether the data starts with a complete
// length-prefixed message.
func (b *Buffer) IsMessage() bool {
	header, payload, ok := b.MessageLength()
	if !ok || payload < 0 {
		return false
	}
	return b.length >= header+payload
}

// CutMessage removes the first message and rewinds the read cursor to the
// data that follows it. It is a no-op when no complete message is
// buffered.
func (b *Buffer) CutMessage() {
	if !b.IsMessage() {
		return
	}
	header, payload, _ := b.MessageLength()
	consumed := header + payload
	copy(b.data[b.begin:], b.data[b.begin+consumed:b.begin+b.length])
	b.length -= consumed
	b.pos = b.begin
}
