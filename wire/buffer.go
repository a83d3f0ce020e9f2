package wire

import (
	"encoding/binary"
	"math"
	"math/big"

	"github.com/wippyai/ttcn-runtime/encdec"
	"github.com/wippyai/ttcn-runtime/errors"
)

const (
	// DefaultHeaderSize is the space reserved in front of the payload for
	// CalculateLength. Eight bytes hold any length up to 2^55-1.
	DefaultHeaderSize = 8

	initialCapacity = 256
)

// Reporter receives decode failures. *encdec.Context implements it; a nil
// return means the configured behavior let the operation continue.
type Reporter interface {
	Error(t encdec.ErrorType, format string, args ...any) error
}

// Buffer is a growable byte buffer with an independent read cursor.
// Values are appended with Push* and consumed with Pull* in the same order.
// A Buffer is not safe for concurrent use; use one per in-flight message.
type Buffer struct {
	rep    Reporter
	data   []byte
	begin  int
	length int
	pos    int
}

// New creates an empty buffer with DefaultHeaderSize reserved bytes.
func New() *Buffer {
	return NewWithHeader(DefaultHeaderSize)
}

// NewWithHeader creates an empty buffer reserving header bytes in front of
// the payload.
func NewWithHeader(header int) *Buffer {
	if header < 0 {
		header = 0
	}
	c := initialCapacity
	for c < header {
		c *= 2
	}
	return &Buffer{
		data:  make([]byte, c),
		begin: header,
		pos:   header,
	}
}

// FromBytes creates a buffer holding a copy of p, ready to be pulled from.
func FromBytes(p []byte) *Buffer {
	b := NewWithHeader(0)
	b.append(p)
	return b
}

// SetReporter routes decode failures through r. With no reporter every
// failure is returned as an *errors.Error.
func (b *Buffer) SetReporter(r Reporter) {
	b.rep = r
}

// Reset empties the buffer and restores the default header reserve,
// keeping allocated storage.
func (b *Buffer) Reset() {
	b.resetHeader(DefaultHeaderSize)
}

func (b *Buffer) resetHeader(header int) {
	b.begin = header
	b.length = 0
	b.pos = header
	b.grow(0)
}

// Len returns the number of bytes written.
func (b *Buffer) Len() int {
	return b.length
}

// Cap returns the size of the underlying storage.
func (b *Buffer) Cap() int {
	return len(b.data)
}

// Pos returns the read cursor relative to the start of the data.
func (b *Buffer) Pos() int {
	return b.pos - b.begin
}

// SetPos moves the read cursor.
func (b *Buffer) SetPos(p int) error {
	if p < 0 || p > b.length {
		return errors.New(errors.PhaseDecode, errors.KindUsage).
			Detail("read position %d is outside the buffer (length %d)", p, b.length).
			Build()
	}
	b.pos = b.begin + p
	return nil
}

// Rewind moves the read cursor to the start of the data.
func (b *Buffer) Rewind() {
	b.pos = b.begin
}

// Remaining returns the number of unread bytes.
func (b *Buffer) Remaining() int {
	return b.begin + b.length - b.pos
}

// Bytes returns the written data. The slice aliases the buffer and is valid
// until the next mutation.
func (b *Buffer) Bytes() []byte {
	return b.data[b.begin : b.begin+b.length]
}

// Write appends p, so received stream data can be accumulated with io.Copy.
func (b *Buffer) Write(p []byte) (int, error) {
	b.append(p)
	return len(p), nil
}

// grow makes room for n more bytes after the written data. Capacity
// doubles until the request fits.
func (b *Buffer) grow(n int) {
	need := b.begin + b.length + n
	if need <= len(b.data) {
		return
	}
	c := len(b.data)
	if c == 0 {
		c = initialCapacity
	}
	for c < need {
		c *= 2
	}
	data := make([]byte, c)
	copy(data, b.data[:b.begin+b.length])
	b.data = data
}

func (b *Buffer) append(p []byte) {
	b.grow(len(p))
	copy(b.data[b.begin+b.length:], p)
	b.length += len(p)
}

func (b *Buffer) unread() []byte {
	return b.data[b.pos : b.begin+b.length]
}

func (b *Buffer) fail(t encdec.ErrorType, kind errors.Kind, format string, args ...any) error {
	if b.rep != nil {
		return b.rep.Error(t, format, args...)
	}
	return errors.New(errors.PhaseDecode, kind).
		Category(t.String()).
		Detail(format, args...).
		Build()
}

// Report classifies a failure detected by a caller that is encoding into
// or decoding from b, routing it like the buffer's own failures.
func (b *Buffer) Report(t encdec.ErrorType, format string, args ...any) error {
	if b.rep != nil {
		return b.rep.Error(t, format, args...)
	}
	return errors.New(t.Phase(), errors.KindCodec).
		Category(t.String()).
		Detail(format, args...).
		Build()
}

// PushInt appends a signed variable-length integer.
func (b *Buffer) PushInt(v int64) {
	var scratch [maxWordBytes + 1]byte
	b.append(AppendInt(scratch[:0], v))
}

// PushBigInt appends an arbitrary precision integer.
func (b *Buffer) PushBigInt(v *big.Int) {
	b.append(AppendBigInt(nil, v))
}

// PushIntValue appends a decoded Int, preserving its value.
func (b *Buffer) PushIntValue(v Int) {
	if v.IsNative() {
		b.PushInt(int64(v.Int32()))
		return
	}
	b.PushBigInt(v.big)
}

// PullInt consumes a signed variable-length integer. If the data ends
// before the terminal byte the cursor does not move.
func (b *Buffer) PullInt() (Int, error) {
	v, n, ok := DecodeInt(b.unread())
	if !ok {
		return Int{}, b.fail(encdec.IncompleteMessage, errors.KindIncomplete,
			"text decoder: incomplete integer, no terminal byte in the remaining %d bytes", b.Remaining())
	}
	b.pos += n
	return v, nil
}

// PullInt64 consumes an integer that must fit in an int64.
func (b *Buffer) PullInt64() (int64, error) {
	v, err := b.PullInt()
	if err != nil {
		return 0, err
	}
	i, ok := v.Int64()
	if !ok {
		return 0, b.fail(encdec.Representation, errors.KindInvalidData,
			"text decoder: integer %s does not fit in 64 bits", v)
	}
	return i, nil
}

// PullInt32 consumes an integer that must fit in an int32.
func (b *Buffer) PullInt32() (int32, error) {
	v, err := b.PullInt()
	if err != nil {
		return 0, err
	}
	if i, ok := v.Int64(); ok && i >= math.MinInt32 && i <= math.MaxInt32 {
		return int32(i), nil
	}
	return 0, b.fail(encdec.Representation, errors.KindInvalidData,
		"text decoder: integer %s does not fit in 32 bits", v)
}

// PushBool appends a boolean as the integer 0 or 1.
func (b *Buffer) PushBool(v bool) {
	if v {
		b.PushInt(1)
	} else {
		b.PushInt(0)
	}
}

// PullBool consumes a boolean written by PushBool.
func (b *Buffer) PullBool() (bool, error) {
	v, err := b.PullInt64()
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, b.fail(encdec.InvalidMessage, errors.KindInvalidData,
		"text decoder: invalid boolean value (%d)", v)
}

// PushDouble appends v as 8 big-endian IEEE-754 bytes.
func (b *Buffer) PushDouble(v float64) {
	var scratch [8]byte
	binary.BigEndian.PutUint64(scratch[:], math.Float64bits(v))
	b.append(scratch[:])
}

// PullDouble consumes 8 big-endian IEEE-754 bytes.
func (b *Buffer) PullDouble() (float64, error) {
	if b.Remaining() < 8 {
		return 0, b.fail(encdec.IncompleteMessage, errors.KindIncomplete,
			"text decoder: end of buffer reached while decoding a float (%d of 8 bytes available)", b.Remaining())
	}
	v := math.Float64frombits(binary.BigEndian.Uint64(b.unread()))
	b.pos += 8
	return v, nil
}

// PushRaw appends the first n bytes of p verbatim.
func (b *Buffer) PushRaw(n int, p []byte) error {
	if n < 0 {
		return errors.New(errors.PhaseEncode, errors.KindInvalidInput).
			Category(encdec.Length.String()).
			Detail("text encoder: encoding raw data with negative length (%d)", n).
			Build()
	}
	if n > len(p) {
		return errors.New(errors.PhaseEncode, errors.KindInvalidInput).
			Category(encdec.Length.String()).
			Detail("text encoder: raw length %d exceeds the %d bytes supplied", n, len(p)).
			Build()
	}
	b.append(p[:n])
	return nil
}

// PullRaw consumes exactly n bytes and returns a copy of them.
func (b *Buffer) PullRaw(n int) ([]byte, error) {
	if n < 0 {
		return nil, b.fail(encdec.Length, errors.KindInvalidData,
			"text decoder: decoding raw data with negative length (%d)", n)
	}
	if n > b.Remaining() {
		return nil, b.fail(encdec.IncompleteMessage, errors.KindIncomplete,
			"text decoder: end of buffer reached, %d bytes requested but %d available", n, b.Remaining())
	}
	out := make([]byte, n)
	copy(out, b.unread())
	b.pos += n
	return out, nil
}

// PushString appends len(s) followed by the bytes of s. An empty string
// encodes as a zero length.
func (b *Buffer) PushString(s string) {
	b.PushInt(int64(len(s)))
	b.grow(len(s))
	copy(b.data[b.begin+b.length:], s)
	b.length += len(s)
}

// PullString consumes a string written by PushString.
func (b *Buffer) PullString() (string, error) {
	start := b.pos
	n, err := b.PullInt64()
	if err != nil {
		return "", err
	}
	if n < 0 {
		b.pos = start
		return "", b.fail(encdec.Length, errors.KindInvalidData,
			"text decoder: negative string length (%d)", n)
	}
	if n > int64(b.Remaining()) {
		b.pos = start
		return "", b.fail(encdec.IncompleteMessage, errors.KindIncomplete,
			"text decoder: string of %d bytes exceeds the %d bytes available", n, b.Remaining())
	}
	s := string(b.data[b.pos : b.pos+int(n)])
	b.pos += int(n)
	return s, nil
}

// PushQualifiedName appends a module name and an identifier.
func (b *Buffer) PushQualifiedName(module, id string) {
	b.PushString(module)
	b.PushString(id)
}

// PullQualifiedName consumes a pair written by PushQualifiedName.
func (b *Buffer) PullQualifiedName() (module, id string, err error) {
	if module, err = b.PullString(); err != nil {
		return "", "", err
	}
	if id, err = b.PullString(); err != nil {
		return "", "", err
	}
	return module, id, nil
}
