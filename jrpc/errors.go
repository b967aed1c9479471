package jrpc

import (
	"errors"
	"fmt"
)

// A Kind identifies which of the error types below an error returned by a call belongs to.
type Kind int

const (
	KindNone      Kind = iota // not an error, or an error not produced by this package
	KindProtocol              // ProtocolError
	KindRPC                   // *RPCError
	KindTransport             // *TransportError
	KindHTTP                  // *HTTPError
	KindOther                 // *OtherError
)

var kindNames = [...]string{`none`, `protocol`, `rpc`, `transport`, `http`, `other`}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf(`kind(%d)`, int(k))
	}
	return kindNames[k]
}

// KindOf returns the kind of a call error.
func KindOf(err error) Kind {
	var (
		protocolErr  ProtocolError
		rpcErr       *RPCError
		transportErr *TransportError
		httpErr      *HTTPError
		otherErr     *OtherError
	)
	switch {
	case err == nil:
		return KindNone
	case errors.As(err, &protocolErr):
		return KindProtocol
	case errors.As(err, &rpcErr):
		return KindRPC
	case errors.As(err, &transportErr):
		return KindTransport
	case errors.As(err, &httpErr):
		return KindHTTP
	case errors.As(err, &otherErr):
		return KindOther
	}
	return KindNone
}

// A ProtocolError means the service answered with an envelope that breaks JSON-RPC 2.0.
type ProtocolError string

// Reasons for a ProtocolError, these can be matched with errors.Is.
const (
	ErrVersion    ProtocolError = `invalid JSON RPC version`
	ErrResponseID ProtocolError = `invalid response ID`
	ErrNoResult   ProtocolError = `no result/error fields`
)

func (e ProtocolError) Error() string { return `invalid server response: ` + string(e) }

// An RPCError was reported by the service.  The meaning of Code is up to the service.
type RPCError struct {
	Code    int16
	Message string // may be empty
}

func (e *RPCError) Error() string {
	if e.Message == `` {
		return fmt.Sprint(e.Code)
	}
	return fmt.Sprintf(`%d %s`, e.Code, e.Message)
}

// A TransportError means the request could not be built, sent or answered, including timeouts.
type TransportError struct{ Err error }

func (e *TransportError) Error() string { return e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// An HTTPError means the service answered with a status other than 200.  Body is the raw response text.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string { return fmt.Sprintf(`%d %s`, e.Status, e.Body) }

// An OtherError wraps encoding and decoding failures and responses that could not be buffered.
type OtherError struct{ Err error }

func (e *OtherError) Error() string { return e.Err.Error() }
func (e *OtherError) Unwrap() error { return e.Err }

// ErrTooLarge is wrapped by an OtherError when a response exceeds the client's read limit.
var ErrTooLarge = errors.New(`response exceeds read limit`)
