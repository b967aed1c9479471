package jrpc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/alttch/bma-jrpc/jrpc/codec"
	"github.com/alttch/bma-jrpc/jrpc/internal/protocol"
	"github.com/swdunlop/html-go/hog"
)

// Call invokes method with params and waits for the response, decoding its result into result unless result is
// nil.  The returned error is one of ProtocolError, *RPCError, *TransportError, *HTTPError or *OtherError.
func (c *Client) Call(method string, params, result any) error {
	return c.CallContext(context.Background(), method, params, result)
}

// CallContext is Call with a context, cancelling ctx abandons the call.
func (c *Client) CallContext(ctx context.Context, method string, params, result any) error {
	return c.call(ctx, c.nextID.Add(1)-1, method, params, result)
}

// Invoke calls method and returns its result as an R.
func Invoke[R any](ctx context.Context, c *Client, method string, params any) (R, error) {
	var ret R
	err := c.CallContext(ctx, method, params, &ret)
	return ret, err
}

// A Call is an RPC started by Go.
type Call struct {
	ID     uint64
	Method string
	Params any
	Result any
	Error  error      // set when the call is complete
	Done   chan *Call // receives the call when it is complete
}

// Go starts a call without waiting for it and returns a Call that is sent on done once it completes.  If done is
// nil a new channel is allocated, otherwise it must be buffered.  The id is assigned before Go returns, so calls
// started one after another have increasing ids.
func (c *Client) Go(ctx context.Context, method string, params, result any, done chan *Call) *Call {
	if done == nil {
		done = make(chan *Call, 1)
	} else if cap(done) == 0 {
		panic(`jrpc: done channel is unbuffered`)
	}
	call := &Call{
		ID:     c.nextID.Add(1) - 1,
		Method: method,
		Params: params,
		Result: result,
		Done:   done,
	}
	go func() {
		call.Error = c.call(ctx, call.ID, method, params, result)
		call.done(ctx)
	}()
	return call
}

func (call *Call) done(ctx context.Context) {
	select {
	case call.Done <- call:
	default:
		hog.From(ctx).Debug().Uint64(`id`, call.ID).Str(`method`, call.Method).Msg(`discarding call reply, done channel is full`)
	}
}

// call performs one exchange with the already assigned id.
func (c *Client) call(ctx context.Context, id uint64, method string, params, result any) error {
	body, err := c.encoder.Encode(&protocol.Request{
		Version: protocol.Version,
		ID:      id,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return &OtherError{fmt.Errorf(`%w while encoding request`, err)}
	}

	if timeout := time.Duration(c.timeout.Load()); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return &TransportError{err}
	}
	req.Header.Set(`Content-Type`, c.encoder.MIME())
	c.trace(ctx, id, method, body)

	rsp, err := c.transport.Do(req)
	if err != nil {
		return &TransportError{err}
	}
	defer func() { _ = rsp.Body.Close() }()
	if rsp.StatusCode != http.StatusOK {
		text, err := io.ReadAll(rsp.Body)
		if err != nil {
			return &TransportError{err}
		}
		return &HTTPError{Status: rsp.StatusCode, Body: string(text)}
	}
	data, err := c.readBody(rsp)
	if err != nil {
		return err
	}
	hog.From(ctx).Trace().Uint64(`id`, id).Int(`size`, len(data)).Msg(`jrpc response`)
	return c.parse(data, id, result)
}

// presizeLimit caps the buffer allocated up front from a reported content length.
const presizeLimit = 1 << 20

// readBody reads the whole response body.  The content length reported by the service only sizes the buffer, and
// never by more than presizeLimit.
func (c *Client) readBody(rsp *http.Response) ([]byte, error) {
	var buf bytes.Buffer
	if n := rsp.ContentLength; n > 0 {
		if n > math.MaxInt {
			return nil, &OtherError{fmt.Errorf(`content length %d does not fit in memory`, n)}
		}
		if c.readLimit >= 0 && n > c.readLimit {
			return nil, &OtherError{ErrTooLarge}
		}
		buf.Grow(int(min(n, presizeLimit)))
	}
	var r io.Reader = rsp.Body
	if c.readLimit >= 0 && c.readLimit < math.MaxInt64 {
		r = io.LimitReader(r, c.readLimit+1)
	}
	_, err := buf.ReadFrom(r)
	if err != nil {
		return nil, &TransportError{err}
	}
	if c.readLimit >= 0 && int64(buf.Len()) > c.readLimit {
		return nil, &OtherError{ErrTooLarge}
	}
	return buf.Bytes(), nil
}

// parse checks the response envelope in order: decoding, version, id, error, result.
func (c *Client) parse(data []byte, id uint64, result any) error {
	var rsp protocol.Response
	err := c.encoder.Decode(data, &rsp)
	if err != nil {
		return &OtherError{fmt.Errorf(`%w while decoding response`, err)}
	}
	switch {
	case rsp.Version != protocol.Version:
		return ErrVersion
	case rsp.ID != id:
		return ErrResponseID
	case rsp.Error != nil:
		return &RPCError{Code: rsp.Error.Code, Message: rsp.Error.Message}
	case len(rsp.Result) == 0:
		return ErrNoResult
	case result == nil:
		return nil
	}
	err = c.encoder.Decode(rsp.Result, result)
	if err != nil {
		return &OtherError{fmt.Errorf(`%w while decoding result`, err)}
	}
	return nil
}

func (c *Client) trace(ctx context.Context, id uint64, method string, body []byte) {
	evt := hog.From(ctx).Trace()
	if !evt.Enabled() {
		return
	}
	js := body
	if c.encoder.MIME() == codec.MIMEMsgPack {
		var err error
		js, err = codec.MsgToJSON(body)
		if err != nil {
			evt.Err(err).Uint64(`id`, id).Str(`method`, method).Msg(`jrpc request`)
			return
		}
	}
	evt.Uint64(`id`, id).Str(`method`, method).RawJSON(`request`, js).Msg(`jrpc request`)
}
