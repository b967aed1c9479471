// Package printf is a small service with a typed client stub, its payloads carry generated MessagePack methods so
// they can travel over either encoding.
package printf

//go:generate go run github.com/tinylib/msgp -io=false -tests=false
//msgp:ignore Client

import (
	"context"
	"fmt"

	"github.com/alttch/bma-jrpc/jrpc"
	"github.com/alttch/bma-jrpc/jrpc/service"
)

// Method is the name the service is registered under.
const Method = `sprintf`

// Rig returns the service option that registers Call.
func Rig() service.Option { return service.Fn(Method, Call) }

// Call formats the request.
func Call(_ *service.Scope, req Request) (ret Response, err error) {
	if req.Format == `` {
		return ret, fmt.Errorf(`empty format`)
	}
	ret.String = fmt.Sprintf(req.Format, req.Args...)
	return
}

// A Client calls the printf service.
type Client struct{ *jrpc.Client }

// Sprintf formats args remotely.
func (c Client) Sprintf(ctx context.Context, format string, args ...any) (string, error) {
	ret, err := jrpc.Invoke[Response](ctx, c.Client, Method, &Request{Format: format, Args: args})
	return ret.String, err
}

type Request struct {
	Format string `json:"msg" msg:"msg"`
	Args   []any  `json:"info" msg:"info"`
}

type Response struct {
	String string `json:"str" msg:"str"`
}
