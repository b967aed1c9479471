// Package codec defines the wire encodings a jrpc client can be bound to.  An encoder is chosen once, when the
// client is constructed, and every request and response of that client uses it.
package codec

import "strings"

// MIME types advertised in the Content-Type header of outgoing requests.
const (
	MIMEJSON    = `application/json`
	MIMEMsgPack = `application/msgpack`
)

// An Encoder converts between Go values and wire bytes.  Implementations must be usable as zero values and
// must not keep state between calls.
type Encoder interface {
	// Encode returns the wire form of v.  No partial output is returned on failure.
	Encode(v any) ([]byte, error)

	// Decode stores the value encoded in data into v, which must be a pointer.  Malformed input is an error,
	// never a panic.
	Decode(data []byte, v any) error

	// MIME returns the content type of the encoding.
	MIME() string
}

var (
	_ Encoder = JSON{}
	_ Encoder = MsgPack{}
)

// ByMIME returns the encoder for a content type such as "application/msgpack" or the short names "json" and
// "msgpack".  Parameters after a ';' are ignored.
func ByMIME(mime string) (Encoder, bool) {
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	switch strings.ToLower(strings.TrimSpace(mime)) {
	case MIMEJSON, `json`, ``:
		return JSON{}, true
	case MIMEMsgPack, `application/x-msgpack`, `msgpack`:
		return MsgPack{}, true
	}
	return nil, false
}
