package main

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/ttcn-runtime/encdec"
	"github.com/wippyai/ttcn-runtime/wire"
)

func TestRunEncode(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runEncode(&out, "i:-130,s:ab,b:true", false))
	assert.Equal(t, "c10202616201\n", out.String())

	out.Reset()
	require.NoError(t, runEncode(&out, "i:-130,s:ab,b:true", true))
	assert.Equal(t, "06c10202616201\n", out.String())
}

func TestEncodeFields_Errors(t *testing.T) {
	for _, list := range []string{"x:1", "i", "i:abc", "d:one", "b:maybe", "o:zz", "q:noqualifier"} {
		err := encodeFields(wire.New(), list, false)
		assert.Error(t, err, list)
	}
}

func TestFields_RoundTrip(t *testing.T) {
	b := wire.New()
	require.NoError(t, encodeFields(b,
		"i:-130,i:123456789012345678901234567890,d:1.5,s:a b,b:true,o:CAFE,q:Mod.id", false))

	r := wire.FromBytes(b.Bytes())
	lines, err := decodeFields(encdec.NewContext(encdec.NewRegistry()), r, "i,i,d,s,b,o,q")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"i: -130",
		"i: 123456789012345678901234567890",
		"d: 1.5",
		`s: "a b"`,
		"b: true",
		"o: 'CAFE'O",
		"q: Mod.id",
	}, lines)
}

func TestRunDecode(t *testing.T) {
	reg := encdec.NewRegistry()

	t.Run("framed", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, runDecode(&out, reg, "06c10202616201", "i,s,b", true))
		assert.Equal(t, "i: -130\ns: \"ab\"\nb: true\n", out.String())
	})

	t.Run("truncated field names its position", func(t *testing.T) {
		var out bytes.Buffer
		err := runDecode(&out, reg, "c1020561", "i,s", false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "field 2 (s): ")
		assert.Contains(t, err.Error(), "INCOMPL_MSG")
		assert.Equal(t, "i: -130\n", out.String())
	})

	t.Run("incomplete frame", func(t *testing.T) {
		err := runDecode(&bytes.Buffer{}, reg, "09c102", "i", true)
		assert.Error(t, err)
	})

	t.Run("bad layout", func(t *testing.T) {
		assert.Error(t, runDecode(&bytes.Buffer{}, reg, "01", "", false))
		assert.Error(t, runDecode(&bytes.Buffer{}, reg, "01", "z", false))
		assert.Error(t, runDecode(&bytes.Buffer{}, reg, "0g", "i", false))
	})
}

func TestDecodeFields_Superfluous(t *testing.T) {
	data, err := hex.DecodeString("0102")
	require.NoError(t, err)

	strict := encdec.NewRegistry()
	_, err = decodeFields(encdec.NewContext(strict), wire.FromBytes(data), "i")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUPERFL")

	lenient := encdec.NewRegistry()
	require.NoError(t, lenient.SetBehavior(encdec.Superfluous, encdec.Ignore))
	lines, err := decodeFields(encdec.NewContext(lenient), wire.FromBytes(data), "i")
	require.NoError(t, err)
	assert.Equal(t, []string{"i: 1"}, lines)
}
