package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinylib/msgp/msgp"
)

func TestByMIME(t *testing.T) {
	for mime, want := range map[string]string{
		`application/json`:                MIMEJSON,
		`application/json; charset=utf-8`: MIMEJSON,
		``:                                MIMEJSON,
		`json`:                            MIMEJSON,
		`Application/MsgPack`:             MIMEMsgPack,
		`application/x-msgpack`:           MIMEMsgPack,
		`msgpack`:                         MIMEMsgPack,
	} {
		enc, ok := ByMIME(mime)
		require.True(t, ok, mime)
		assert.Equal(t, want, enc.MIME(), mime)
	}
	_, ok := ByMIME(`text/plain`)
	assert.False(t, ok)
}

type point struct {
	X int    `json:"x"`
	Y int    `json:"y"`
	N string `json:"n,omitempty"`
}

func TestEncodersAgree(t *testing.T) {
	for _, enc := range []Encoder{JSON{}, MsgPack{}} {
		t.Run(enc.MIME(), func(t *testing.T) {
			bin, err := enc.Encode(map[string]any{`x`: 3, `y`: -4, `n`: `p`})
			require.NoError(t, err)
			var p point
			require.NoError(t, enc.Decode(bin, &p))
			assert.Equal(t, point{X: 3, Y: -4, N: `p`}, p)

			bin, err = enc.Encode([]any{1, `two`, true, nil})
			require.NoError(t, err)
			var seq []any
			require.NoError(t, enc.Decode(bin, &seq))
			assert.Equal(t, []any{float64(1), `two`, true, nil}, seq)
		})
	}
}

func TestMsgPackRejectsPlainStructs(t *testing.T) {
	bin, err := MsgPack{}.Encode(point{X: 1})
	require.Error(t, err)
	assert.Nil(t, bin)
	var unsupported *msgp.ErrUnsupportedType
	assert.ErrorAs(t, err, &unsupported)
}

func TestMsgPackIsCompact(t *testing.T) {
	v := map[string]any{`values`: []any{1, 2, 3, 4, 5, 6, 7, 8}}
	js, err := JSON{}.Encode(v)
	require.NoError(t, err)
	bin, err := MsgPack{}.Encode(v)
	require.NoError(t, err)
	assert.Less(t, len(bin), len(js))
}

func TestMalformedInput(t *testing.T) {
	inputs := [][]byte{
		nil,
		{},
		{0xc1},             // never used
		{0x82, 0xa1, 'x'},  // truncated map
		{0xdb, 0xff, 0xff}, // truncated str32
		[]byte(`{"x":`),
		[]byte("\x00\xff\xfe garbage"),
	}
	for _, enc := range []Encoder{JSON{}, MsgPack{}} {
		for _, in := range inputs {
			var p point
			assert.NotPanics(t, func() {
				assert.Error(t, enc.Decode(in, &p), "%s %x", enc.MIME(), in)
			})
		}
	}
}

func TestMsgToJSON(t *testing.T) {
	bin := msgp.AppendMapHeader(nil, 1)
	bin = msgp.AppendString(bin, `a`)
	bin = msgp.AppendInt(bin, 42)
	js, err := MsgToJSON(bin)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":42}`, string(js))

	_, err = MsgToJSON(nil)
	assert.Error(t, err)

	_, err = MsgToJSON(append(bin, 0xc0))
	assert.ErrorIs(t, err, ErrTrailingData)
}

func TestTrailingData(t *testing.T) {
	for _, enc := range []Encoder{JSON{}, MsgPack{}} {
		t.Run(enc.MIME(), func(t *testing.T) {
			bin, err := enc.Encode(map[string]any{`x`: 1, `y`: 2})
			require.NoError(t, err)
			var p point
			require.NoError(t, enc.Decode(bin, &p))
			assert.Error(t, enc.Decode(append(bin, bin...), &p), `two values`)
			assert.Error(t, enc.Decode(append(bin, 'j', 'u', 'n', 'k'), &p), `junk`)
		})
	}

	// values with their own UnmarshalMsg are held to the same rule
	bin, err := msgp.Raw{0x01}.MarshalMsg(nil)
	require.NoError(t, err)
	var raw msgp.Raw
	require.NoError(t, MsgPack{}.Decode(bin, &raw))
	assert.ErrorIs(t, MsgPack{}.Decode(append(bin, 0x02), &raw), ErrTrailingData)
}
