package wire

import (
	"math"
	"math/big"
	"math/bits"
	"strconv"
)

// Signed variable-length integers.
//
// The magnitude is split into groups, most significant first: 6 bits in
// the first byte and 7 bits in every following byte. Every byte except the
// last has 0x80 set. Bit 0x40 of the first byte is the sign.
//
//	     0  -> 00
//	    -1  -> 41
//	    64  -> 80 40
//	  -130  -> c1 02

const (
	contBit   = 0x80
	signBit   = 0x40
	firstMask = 0x3f
	groupMask = 0x7f

	// maxNativeBits is the widest magnitude held without big.Int.
	maxNativeBits = 31
	// maxWordBytes is the longest encoding whose magnitude fits 64 bits.
	maxWordBytes = 9
)

// Int is a decoded integer. Magnitudes up to 31 bits are held natively,
// wider ones as *big.Int.
type Int struct {
	big   *big.Int
	small int32
}

// IntFrom64 wraps v, choosing the native form when it fits.
func IntFrom64(v int64) Int {
	if v > -(1<<maxNativeBits) && v < 1<<maxNativeBits {
		return Int{small: int32(v)}
	}
	return Int{big: big.NewInt(v)}
}

// IntFromBig wraps a copy of v, choosing the native form when it fits.
func IntFromBig(v *big.Int) Int {
	if v.IsInt64() {
		return IntFrom64(v.Int64())
	}
	return Int{big: new(big.Int).Set(v)}
}

func intFromMagnitude(neg bool, mag uint64) Int {
	if mag < 1<<maxNativeBits {
		v := int32(mag)
		if neg {
			v = -v
		}
		return Int{small: v}
	}
	b := new(big.Int).SetUint64(mag)
	if neg {
		b.Neg(b)
	}
	return Int{big: b}
}

// IsNative reports whether the value is held without big.Int.
func (i Int) IsNative() bool {
	return i.big == nil
}

// Int32 returns the native value; it is meaningful only when IsNative.
func (i Int) Int32() int32 {
	return i.small
}

// Int64 returns the value if it fits in an int64.
func (i Int) Int64() (int64, bool) {
	if i.big == nil {
		return int64(i.small), true
	}
	if !i.big.IsInt64() {
		return 0, false
	}
	return i.big.Int64(), true
}

// Big returns the value as a new big.Int.
func (i Int) Big() *big.Int {
	if i.big == nil {
		return big.NewInt(int64(i.small))
	}
	return new(big.Int).Set(i.big)
}

// Sign returns -1, 0 or +1.
func (i Int) Sign() int {
	if i.big != nil {
		return i.big.Sign()
	}
	switch {
	case i.small < 0:
		return -1
	case i.small > 0:
		return 1
	}
	return 0
}

// Equal compares by value regardless of representation.
func (i Int) Equal(o Int) bool {
	if i.big == nil && o.big == nil {
		return i.small == o.small
	}
	return i.Big().Cmp(o.Big()) == 0
}

func (i Int) String() string {
	if i.big == nil {
		return strconv.FormatInt(int64(i.small), 10)
	}
	return i.big.String()
}

// encodedLen returns the encoded size of a magnitude of bitLen bits.
func encodedLen(bitLen int) int {
	if bitLen <= 6 {
		return 1
	}
	return 1 + bitLen/7
}

// AppendInt appends the encoding of v to dst.
func AppendInt(dst []byte, v int64) []byte {
	neg := v < 0
	mag := uint64(v)
	if neg {
		mag = -mag
	}
	return appendMagnitude(dst, neg, mag)
}

func appendMagnitude(dst []byte, neg bool, mag uint64) []byte {
	n := encodedLen(bits.Len64(mag))
	start := len(dst)
	dst = append(dst, make([]byte, n)...)
	out := dst[start:]
	for i := n - 1; i > 0; i-- {
		out[i] = byte(mag & groupMask)
		if i < n-1 {
			out[i] |= contBit
		}
		mag >>= 7
	}
	out[0] = byte(mag & firstMask)
	if n > 1 {
		out[0] |= contBit
	}
	if neg {
		out[0] |= signBit
	}
	return dst
}

// AppendBigInt appends the encoding of v to dst.
func AppendBigInt(dst []byte, v *big.Int) []byte {
	if v.IsInt64() {
		return AppendInt(dst, v.Int64())
	}
	mag := new(big.Int).Abs(v)
	n := encodedLen(mag.BitLen())
	start := len(dst)
	dst = append(dst, make([]byte, n)...)
	out := dst[start:]
	for i := n - 1; i > 0; i-- {
		out[i] = lowBits(mag, groupMask)
		if i < n-1 {
			out[i] |= contBit
		}
		mag.Rsh(mag, 7)
	}
	out[0] = lowBits(mag, firstMask) | contBit
	if v.Sign() < 0 {
		out[0] |= signBit
	}
	return dst
}

func lowBits(v *big.Int, mask big.Word) byte {
	words := v.Bits()
	if len(words) == 0 {
		return 0
	}
	return byte(words[0] & mask)
}

// EncodeInt returns the encoding of v.
func EncodeInt(v int64) []byte {
	return AppendInt(nil, v)
}

// DecodeInt decodes one integer from the start of p and returns it with
// the number of bytes consumed. ok is false when p ends before the
// terminal byte.
func DecodeInt(p []byte) (v Int, n int, ok bool) {
	for n < len(p) && p[n]&contBit != 0 {
		n++
	}
	if n == len(p) {
		return Int{}, 0, false
	}
	n++

	neg := p[0]&signBit != 0
	if n <= maxWordBytes {
		mag := uint64(p[0] & firstMask)
		for _, c := range p[1:n] {
			mag = mag<<7 | uint64(c&groupMask)
		}
		return intFromMagnitude(neg, mag), n, true
	}

	mag := big.NewInt(int64(p[0] & firstMask))
	group := new(big.Int)
	for _, c := range p[1:n] {
		mag.Lsh(mag, 7)
		mag.Or(mag, group.SetUint64(uint64(c&groupMask)))
	}
	if neg {
		mag.Neg(mag)
	}
	if mag.IsInt64() && mag.Int64() > math.MinInt32 && mag.Int64() <= math.MaxInt32 {
		return Int{small: int32(mag.Int64())}, n, true
	}
	return Int{big: mag}, n, true
}
