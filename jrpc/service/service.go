// Package service answers JSON-RPC 2.0 calls posted over HTTP, in whichever encoding of the codec package the
// request was sent with.  It is the peer the jrpc client is tested against and what "jrpc serve" runs.
package service

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/alttch/bma-jrpc/jrpc/codec"
	"github.com/alttch/bma-jrpc/jrpc/internal/protocol"
	"github.com/rs/zerolog"
	"github.com/swdunlop/html-go/hog"
)

// Standard JSON-RPC 2.0 error codes used by the service.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
	CodeServerError    = -32000
)

// Handle returns a http.Handler that answers RPC requests posted to it.
func Handle(options ...Option) http.Handler {
	var cfg config
	cfg.init(options...)
	return &cfg
}

// Use specifies middleware that is applied to all requests.
func Use(fn func(Handler) Handler) Option {
	return func(cfg *config) {
		cfg.handler = fn(cfg.handler)
	}
}

// ReadLimit specifies the maximum size of a request body.  Defaults to -1 which imposes no limit.
func ReadLimit(limit int64) Option {
	return func(cfg *config) { cfg.readLimit = limit }
}

// For creates a new scope for the given request, its raw params, the encoding it arrived in and the function
// that sends the encoded response.  Generally this is not necessary but it can be useful for testing.
func For(
	ctx context.Context, req protocol.Request, input protocol.Raw, enc codec.Encoder, send func(bin []byte) error,
) *Scope {
	self := &Scope{Context: ctx, Request: req, Input: input, Encoder: enc, send: send}
	self.Context = context.WithValue(ctx, ctxKey{}, self)
	return self
}

// From returns the scope of the request from a Go context.  May return nil if there is no RPC
// scope in the Go context.
func From(ctx context.Context) *Scope {
	rcx, _ := ctx.Value(ctxKey{}).(*Scope)
	return rcx
}

type ctxKey struct{}

// A Scope describes the scope of an RPC request.
type Scope struct {
	context.Context
	protocol.Request

	// Input holds the params as they arrived, still encoded.
	Input protocol.Raw

	// Encoder is the encoding of the request, the response uses the same one.
	Encoder codec.Encoder

	send func(bin []byte) error
}

// Succ sends a success response to the client.
func (ctx *Scope) Succ(result any) error {
	bin, err := ctx.Encoder.Encode(result)
	if err != nil {
		return fmt.Errorf(`%w while encoding result`, err)
	}
	return ctx.respond(protocol.Response{Result: bin})
}

// Fail sends an error response to the client.
func (ctx *Scope) Fail(code int16, msg string) error {
	return ctx.respond(protocol.Response{Error: &protocol.Error{Code: code, Message: msg}})
}

// Responded is true once a response has been sent.
func (ctx *Scope) Responded() bool { return ctx.send == nil }

func (ctx *Scope) respond(ret protocol.Response) error {
	if ctx.send == nil {
		// This happens if a response was already sent or when the scope was created with a
		// nil send function.  This is a programming error.
		return fmt.Errorf(`response not supported`)
	}
	ret.Version = protocol.Version
	ret.ID = ctx.ID
	msg, err := ctx.Encoder.Encode(&ret)
	if err != nil {
		return fmt.Errorf(`%w while encoding response`, err)
	}
	send := ctx.send
	ctx.send = nil
	return send(msg)
}

// An Option affects the rigging of an RPC service.
type Option func(*config)

type config struct {
	handler   Handler
	readLimit int64
	handlers  map[string]Handler
}

func (cfg *config) init(options ...Option) {
	cfg.readLimit = -1
	cfg.handler = cfg.handleRequest
	cfg.handlers = make(map[string]Handler, len(options))
	for _, opt := range options {
		opt(cfg)
	}
}

// ServeHTTP implements http.Handler.
func (cfg *config) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	err := cfg.serveHTTP(w, r)
	if err != nil {
		hog.For(r).Error().Err(err).Msg(`JRPC error`)
	}
}

func (cfg *config) serveHTTP(w http.ResponseWriter, r *http.Request) error {
	if r.Method != http.MethodPost {
		w.Header().Set(`Allow`, http.MethodPost)
		http.Error(w, `only POST is supported`, http.StatusMethodNotAllowed)
		return nil
	}
	enc, ok := codec.ByMIME(r.Header.Get(`Content-Type`))
	if !ok {
		http.Error(w, `unsupported content type`, http.StatusUnsupportedMediaType)
		return nil
	}
	var body io.Reader = r.Body
	if cfg.readLimit >= 0 {
		body = http.MaxBytesReader(w, r.Body, cfg.readLimit)
	}
	msg, err := io.ReadAll(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
		return err
	}

	send := func(bin []byte) error {
		w.Header().Set(`Content-Type`, enc.MIME())
		w.WriteHeader(http.StatusOK)
		_, err := w.Write(bin)
		return err
	}

	var input protocol.Raw
	req := protocol.Request{Params: &input}
	err = enc.Decode(msg, &req)
	if err != nil {
		scope := For(r.Context(), protocol.Request{}, nil, enc, send)
		return scope.Fail(CodeParseError, fmt.Sprintf(`%v while decoding request`, err))
	}
	scope := For(r.Context(), req, input, enc, send)
	if req.Version != protocol.Version {
		return scope.Fail(CodeInvalidRequest, fmt.Sprintf(`unsupported version %q`, req.Version))
	}
	cfg.handler(scope)
	if !scope.Responded() {
		return scope.Fail(CodeInternalError, fmt.Sprintf(`method %q did not respond`, req.Method))
	}
	return nil
}

func (cfg *config) handleRequest(ctx *Scope) {
	handler := cfg.handlers[ctx.Method]
	if handler == nil {
		_ = ctx.Fail(CodeMethodNotFound, `method not found`)
		return
	}
	handler(ctx)
}

// A Fn is a function that handles a request.
func Fn[I, O any](
	method string, fn func(*Scope, I) (O, error),
) Option {
	return func(cfg *config) {
		cfg.handlers[method] = func(ctx *Scope) {
			in := new(I)
			if len(ctx.Input) > 0 {
				err := ctx.Encoder.Decode(ctx.Input, in)
				if err != nil {
					_ = ctx.Fail(CodeInvalidParams, fmt.Sprintf(`%v while decoding params`, err))
					return
				}
			}
			out, err := fn(ctx, *in)
			if err != nil {
				_ = ctx.Fail(CodeServerError, err.Error())
				return
			}
			err = ctx.Succ(out)
			if err != nil {
				_ = ctx.Fail(CodeInternalError, err.Error())
			}
		}
	}
}

// Method registers a handler that answers for itself, like the middleware of Use it must call Succ or Fail.
func Method(method string, handler Handler) Option {
	return func(cfg *config) { cfg.handlers[method] = handler }
}

// Echo registers a method that answers with its own params, in the encoding they arrived in.
func Echo(method string) Option {
	return Method(method, func(ctx *Scope) {
		err := ctx.Succ(ctx.Input)
		if err != nil {
			_ = ctx.Fail(CodeInternalError, err.Error())
		}
	})
}

// Logging returns middleware that adds the request id and method to the context logger and traces the params.
func Logging() func(Handler) Handler {
	return func(next Handler) Handler {
		return func(ctx *Scope) {
			// derive from the inner context, deriving from ctx itself would make Value recurse
			ctx.Context = hog.With(ctx.Context, func(z zerolog.Context) zerolog.Context {
				return z.Uint64(`id`, ctx.ID).Str(`method`, ctx.Method)
			})
			evt := hog.From(ctx).Trace()
			if evt.Enabled() {
				js := []byte(ctx.Input)
				if ctx.Encoder.MIME() == codec.MIMEMsgPack && len(js) > 0 {
					js, _ = codec.MsgToJSON(ctx.Input)
				}
				if len(js) == 0 {
					js = []byte(`null`)
				}
				evt.RawJSON(`params`, js).Msg(``)
			}
			next(ctx)
		}
	}
}

// A Handler is a function that handles an RPC request.
type Handler func(*Scope)
