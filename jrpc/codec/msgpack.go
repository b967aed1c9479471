package codec

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/tinylib/msgp/msgp"
)

// MsgPack is the compact binary encoding.  Values with msgp generated methods are encoded with them; maps, slices,
// scalars and pointers to them are encoded by reflection.  Structs without generated methods cannot be encoded.
type MsgPack struct{}

// Encode implements Encoder.
func (MsgPack) Encode(v any) ([]byte, error) {
	bin, err := AppendMsg(nil, v)
	if err != nil {
		return nil, err
	}
	return bin, nil
}

// Decode implements Encoder.
func (MsgPack) Decode(data []byte, v any) error {
	return UnmarshalMsg(data, v)
}

// MIME implements Encoder.
func (MsgPack) MIME() string { return MIMEMsgPack }

// AppendMsg appends the MessagePack form of v to b.
func AppendMsg(b []byte, v any) ([]byte, error) {
	o, err := msgp.AppendIntf(b, v)
	if err != nil {
		return b, errors.WithStack(err)
	}
	return o, nil
}

// ErrTrailingData is returned when bytes follow the single value being decoded.
var ErrTrailingData = errors.New(`trailing data after MessagePack value`)

// UnmarshalMsg decodes a single MessagePack value from msg into v.  If v has an UnmarshalMsg method it is used,
// otherwise the value is rendered as JSON and decoded with encoding/json.  Like encoding/json, anything after the
// value is an error.
func UnmarshalMsg(msg []byte, v any) error {
	if u, ok := v.(msgp.Unmarshaler); ok {
		rest, err := u.UnmarshalMsg(msg)
		if err != nil {
			return errors.WithStack(err)
		}
		if len(rest) > 0 {
			return errors.WithStack(ErrTrailingData)
		}
		return nil
	}
	js, err := MsgToJSON(msg)
	if err != nil {
		return err
	}
	return errors.WithStack(json.Unmarshal(js, v))
}

// MsgToJSON renders a single MessagePack value as JSON.
func MsgToJSON(msg []byte) ([]byte, error) {
	if len(msg) == 0 {
		return nil, errors.WithStack(msgp.ErrShortBytes)
	}
	var buf bytes.Buffer
	rest, err := msgp.UnmarshalAsJSON(&buf, msg)
	if err != nil {
		return nil, errors.Wrap(err, `malformed MessagePack`)
	}
	if len(rest) > 0 {
		return nil, errors.WithStack(ErrTrailingData)
	}
	return buf.Bytes(), nil
}
