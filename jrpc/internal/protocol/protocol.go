// Package protocol defines the JSON-RPC 2.0 envelopes exchanged by the client and the service.  Identifiers are
// always unsigned integers and batches are not supported.  The same types are used for JSON and MessagePack; the
// MessagePack form is a map with the JSON field names as keys.
package protocol

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Version is the only protocol version sent and accepted.
const Version = `2.0`

// A Request is a message sent from a client to a service.
type Request struct {
	Version string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`

	// Params is encoded as is.  When decoding, a non-nil pointer stored in Params receives the decoded params,
	// otherwise Params is replaced with a generic value.
	Params any `json:"params"`
}

// A Response is a message sent from a service to a client.
type Response struct {
	Version string `json:"jsonrpc"`
	ID      uint64 `json:"id"`

	// Result is still in the encoding of the envelope; it is empty when the result is absent or null.
	Result Raw `json:"result,omitempty"`

	Error *Error `json:"error,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler, jsonrpc and id must be present and not null.
func (r *Response) UnmarshalJSON(js []byte) error {
	var env struct {
		Version *string `json:"jsonrpc"`
		ID      *uint64 `json:"id"`
		Result  Raw     `json:"result"`
		Error   *Error  `json:"error"`
	}
	err := json.Unmarshal(js, &env)
	switch {
	case err != nil:
		return err
	case env.Version == nil:
		return MissingField(`jsonrpc`)
	case env.ID == nil:
		return MissingField(`id`)
	}
	r.Version, r.ID, r.Result, r.Error = *env.Version, *env.ID, env.Result, env.Error
	return nil
}

// MissingField is the error for a required envelope field that is absent or null.
type MissingField string

func (f MissingField) Error() string { return `missing field ` + strconv.Quote(string(f)) }

// An Error is reported by a service when a request fails.
type Error struct {
	Code    int16  `json:"code"`
	Message string `json:"message,omitempty"`
}

// Raw holds an encoded value that has not been interpreted yet.
type Raw []byte

var jsonNull = []byte(`null`)

// MarshalJSON implements json.Marshaler.
func (r Raw) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return jsonNull, nil
	}
	return r, nil
}

// UnmarshalJSON implements json.Unmarshaler, treating null as absent.
func (r *Raw) UnmarshalJSON(js []byte) error {
	if bytes.Equal(bytes.TrimSpace(js), jsonNull) {
		*r = nil
		return nil
	}
	*r = append((*r)[:0], js...)
	return nil
}
