package wire_test

import (
	"bytes"
	"errors"
	"math"
	"math/big"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/ttcn-runtime/encdec"
	rterrors "github.com/wippyai/ttcn-runtime/errors"
	"github.com/wippyai/ttcn-runtime/wire"
)

var errIncomplete = &rterrors.Error{Phase: rterrors.PhaseDecode, Kind: rterrors.KindIncomplete}

func TestBuffer_EndToEnd(t *testing.T) {
	b := wire.New()
	b.PushString("abc")
	b.PushInt(-130)
	b.PushDouble(1.5)

	s, err := b.PullString()
	if err != nil || s != "abc" {
		t.Fatalf("string: %q, %v", s, err)
	}
	i, err := b.PullInt()
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := i.Int64(); v != -130 {
		t.Fatalf("int: %s", i)
	}
	d, err := b.PullDouble()
	if err != nil || d != 1.5 {
		t.Fatalf("double: %v, %v", d, err)
	}
	if b.Pos() != b.Len() || b.Remaining() != 0 {
		t.Errorf("cursor %d, length %d", b.Pos(), b.Len())
	}
}

func TestBuffer_DoubleBitExact(t *testing.T) {
	values := []float64{0, math.Copysign(0, -1), 1.5, -2.25, math.Pi, math.Inf(1), math.Inf(-1),
		math.NaN(), math.SmallestNonzeroFloat64, math.MaxFloat64}
	b := wire.New()
	for _, v := range values {
		b.PushDouble(v)
	}
	if b.Len() != 8*len(values) {
		t.Fatalf("length %d", b.Len())
	}
	for _, want := range values {
		got, err := b.PullDouble()
		if err != nil {
			t.Fatal(err)
		}
		if math.Float64bits(got) != math.Float64bits(want) {
			t.Errorf("got %x, want %x", math.Float64bits(got), math.Float64bits(want))
		}
	}
}

func TestBuffer_DoubleByteOrder(t *testing.T) {
	b := wire.NewWithHeader(0)
	b.PushDouble(1.5)
	want := []byte{0x3f, 0xf8, 0, 0, 0, 0, 0, 0}
	if !bytes.Equal(b.Bytes(), want) {
		t.Errorf("got % x", b.Bytes())
	}
}

func TestBuffer_Strings(t *testing.T) {
	values := []string{"", "a", "héllo", strings.Repeat("x", 200), "\x00\xff"}
	b := wire.New()
	for _, s := range values {
		b.PushString(s)
	}
	for _, want := range values {
		got, err := b.PullString()
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}

	empty := wire.NewWithHeader(0)
	empty.PushString("")
	if !bytes.Equal(empty.Bytes(), []byte{0x00}) {
		t.Errorf("empty string encodes as % x", empty.Bytes())
	}
}

func TestBuffer_Ints(t *testing.T) {
	huge, _ := new(big.Int).SetString("-98765432109876543210987654321", 10)
	b := wire.New()
	b.PushInt(0)
	b.PushInt(math.MinInt64)
	b.PushBigInt(huge)
	b.PushIntValue(wire.IntFrom64(7))
	b.PushIntValue(wire.IntFromBig(huge))

	for _, want := range []*big.Int{big.NewInt(0), big.NewInt(math.MinInt64), huge, big.NewInt(7), huge} {
		got, err := b.PullInt()
		if err != nil {
			t.Fatal(err)
		}
		if got.Big().Cmp(want) != 0 {
			t.Errorf("got %s, want %s", got, want)
		}
	}
}

func TestBuffer_PullInt64(t *testing.T) {
	b := wire.New()
	b.PushBigInt(new(big.Int).Lsh(big.NewInt(1), 70))
	if _, err := b.PullInt64(); err == nil {
		t.Fatal("expected representation error")
	}
}

func TestBuffer_PullInt32(t *testing.T) {
	b := wire.New()
	b.PushInt(math.MinInt32)
	b.PushInt(math.MaxInt32)
	b.PushInt(math.MaxInt32 + 1)
	b.PushInt(-3)

	for _, want := range []int32{math.MinInt32, math.MaxInt32} {
		got, err := b.PullInt32()
		if err != nil || got != want {
			t.Fatalf("got %d, %v; want %d", got, err, want)
		}
	}
	_, err := b.PullInt32()
	var rerr *rterrors.Error
	if !errors.As(err, &rerr) || rerr.Category != "REPR" || rerr.Kind != rterrors.KindInvalidData {
		t.Fatalf("want REPR error, got %v", err)
	}
	if got, err := b.PullInt32(); err != nil || got != -3 {
		t.Fatalf("after an oversized value: %d, %v", got, err)
	}

	lenient := encdec.NewRegistry()
	if err := lenient.SetBehavior(encdec.Representation, encdec.Ignore); err != nil {
		t.Fatal(err)
	}
	b = wire.New()
	b.PushInt(1 << 40)
	b.SetReporter(encdec.NewContext(lenient))
	if got, err := b.PullInt32(); err != nil || got != 0 {
		t.Fatalf("ignored representation error: %d, %v", got, err)
	}
}

func TestBuffer_Bool(t *testing.T) {
	b := wire.New()
	b.PushBool(true)
	b.PushBool(false)
	b.PushInt(2)
	for _, want := range []bool{true, false} {
		got, err := b.PullBool()
		if err != nil || got != want {
			t.Fatalf("got %v, %v", got, err)
		}
	}
	if _, err := b.PullBool(); err == nil {
		t.Error("2 is not a boolean")
	}
}

func TestBuffer_QualifiedName(t *testing.T) {
	b := wire.New()
	b.PushQualifiedName("MyModule", "tc_basic")
	mod, id, err := b.PullQualifiedName()
	if err != nil || mod != "MyModule" || id != "tc_basic" {
		t.Fatalf("got %q %q %v", mod, id, err)
	}
	if _, _, err := b.PullQualifiedName(); err == nil {
		t.Error("expected error on empty buffer")
	}
}

func TestBuffer_IncompleteInt(t *testing.T) {
	b := wire.FromBytes([]byte{0x01, 0x81, 0x82})
	if _, err := b.PullInt(); err != nil {
		t.Fatal(err)
	}
	pos := b.Pos()
	_, err := b.PullInt()
	if !errors.Is(err, errIncomplete) {
		t.Fatalf("got %v", err)
	}
	if !strings.Contains(err.Error(), "incomplete integer") {
		t.Errorf("message: %v", err)
	}
	if b.Pos() != pos {
		t.Errorf("cursor moved from %d to %d", pos, b.Pos())
	}
}

func TestBuffer_Raw(t *testing.T) {
	b := wire.New()
	if err := b.PushRaw(3, []byte{1, 2, 3, 4}); err != nil {
		t.Fatal(err)
	}
	if err := b.PushRaw(-1, nil); err == nil {
		t.Error("negative length must fail")
	}
	if err := b.PushRaw(5, []byte{1}); err == nil {
		t.Error("length beyond input must fail")
	}
	if b.Len() != 3 {
		t.Fatalf("failed pushes changed length to %d", b.Len())
	}

	got, err := b.PullRaw(2)
	if err != nil || !bytes.Equal(got, []byte{1, 2}) {
		t.Fatalf("got % x, %v", got, err)
	}
	if _, err := b.PullRaw(2); !errors.Is(err, errIncomplete) {
		t.Errorf("read past end: %v", err)
	}
	if _, err := b.PullRaw(-1); err == nil {
		t.Error("negative pull must fail")
	}
	got, err = b.PullRaw(1)
	if err != nil || !bytes.Equal(got, []byte{3}) {
		t.Fatalf("got % x, %v", got, err)
	}
}

func TestBuffer_StringErrors(t *testing.T) {
	short := wire.NewWithHeader(0)
	short.PushInt(10)
	_ = short.PushRaw(2, []byte("ab"))
	if _, err := short.PullString(); !errors.Is(err, errIncomplete) {
		t.Errorf("truncated string: %v", err)
	}
	if short.Pos() != 0 {
		t.Errorf("cursor moved to %d", short.Pos())
	}

	neg := wire.NewWithHeader(0)
	neg.PushInt(-4)
	if _, err := neg.PullString(); err == nil || !strings.Contains(err.Error(), "negative string length") {
		t.Errorf("negative length: %v", err)
	}
}

func TestBuffer_DoubleIncomplete(t *testing.T) {
	b := wire.FromBytes([]byte{1, 2, 3})
	if _, err := b.PullDouble(); !errors.Is(err, errIncomplete) {
		t.Errorf("got %v", err)
	}
}

func TestBuffer_Growth(t *testing.T) {
	b := wire.New()
	c0 := b.Cap()
	payload := bytes.Repeat([]byte{0xab}, 3*c0)
	for i := 0; i < 10; i++ {
		b.PushInt(int64(i))
	}
	prefix := append([]byte(nil), b.Bytes()...)
	if err := b.PushRaw(len(payload), payload); err != nil {
		t.Fatal(err)
	}
	if b.Cap() < wire.DefaultHeaderSize+b.Len() {
		t.Fatalf("capacity %d too small", b.Cap())
	}
	if b.Cap()&(b.Cap()-1) != 0 {
		t.Errorf("capacity %d did not grow by doubling", b.Cap())
	}
	if !bytes.Equal(b.Bytes()[:len(prefix)], prefix) {
		t.Error("growth lost previously written bytes")
	}
	if !bytes.Equal(b.Bytes()[len(prefix):], payload) {
		t.Error("payload corrupted")
	}
}

func TestBuffer_Positioning(t *testing.T) {
	b := wire.New()
	b.PushInt(1)
	b.PushInt(2)
	_, _ = b.PullInt()
	_, _ = b.PullInt()
	b.Rewind()
	if v, _ := b.PullInt(); v.Int32() != 1 {
		t.Errorf("after rewind: %s", v)
	}
	if err := b.SetPos(1); err != nil {
		t.Fatal(err)
	}
	if v, _ := b.PullInt(); v.Int32() != 2 {
		t.Errorf("after SetPos: %s", v)
	}
	if err := b.SetPos(3); err == nil {
		t.Error("SetPos past end must fail")
	}
	if err := b.SetPos(-1); err == nil {
		t.Error("negative SetPos must fail")
	}

	b.Reset()
	if b.Len() != 0 || b.Pos() != 0 {
		t.Errorf("reset: len %d pos %d", b.Len(), b.Pos())
	}
}

func TestBuffer_ReporterWarn(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	prev := encdec.Logger()
	encdec.SetLogger(zap.New(core))
	defer encdec.SetLogger(prev)

	reg := encdec.NewRegistry()
	if err := reg.SetBehavior(encdec.IncompleteMessage, encdec.Warn); err != nil {
		t.Fatal(err)
	}
	ctx := encdec.NewContext(reg)
	frame := ctx.Push("while decoding message %d: ", 4)
	defer frame.Close()

	b := wire.FromBytes([]byte{0x80})
	b.SetReporter(ctx)
	v, err := b.PullInt()
	if err != nil {
		t.Fatalf("Warn behavior must not fail: %v", err)
	}
	if v.Sign() != 0 {
		t.Errorf("best-effort value: %s", v)
	}
	if logs.Len() != 1 {
		t.Fatalf("expected one warning, got %d", logs.Len())
	}
	msg, _ := logs.All()[0].ContextMap()["message"].(string)
	if !strings.HasPrefix(msg, "while decoding message 4: text decoder: incomplete integer") {
		t.Errorf("message %q", msg)
	}
	if et, _, _ := reg.LastError(); et != encdec.IncompleteMessage {
		t.Errorf("last error type %s", et)
	}
}

func TestBuffer_ReporterFail(t *testing.T) {
	ctx := encdec.NewContext(encdec.NewRegistry())
	b := wire.FromBytes(nil)
	b.SetReporter(ctx)
	_, err := b.PullRaw(1)
	if !errors.Is(err, &rterrors.Error{Phase: rterrors.PhaseDecode, Kind: rterrors.KindCodec}) {
		t.Fatalf("got %v", err)
	}
}

func TestBuffer_Write(t *testing.T) {
	b := wire.NewWithHeader(0)
	n, err := b.Write([]byte{0x41, 0x05})
	if err != nil || n != 2 {
		t.Fatalf("write: %d, %v", n, err)
	}
	v, _ := b.PullInt()
	if v.Int32() != -1 {
		t.Errorf("got %s", v)
	}
}
