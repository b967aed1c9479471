package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/alttch/bma-jrpc/jrpc"
	"github.com/alttch/bma-jrpc/jrpc/codec"
	"github.com/swdunlop/html-go/hog"
	"github.com/swdunlop/zugzug-go"
	"github.com/swdunlop/zugzug-go/zug/parser"
)

func init() {
	tasks = append(tasks, zugzug.Tasks{
		{Name: "call", Use: "Calls a method on a JSON-RPC service and prints its result", Fn: runCall, Parser: parser.New(
			parser.String(&callParams, "params", "p", "Params of the call as JSON (default: null)"),
		), Settings: zugzug.Settings{
			{Var: &callURL, Name: `JRPC_URL`,
				Use: "Endpoint of the service (default: http://localhost:8080/)"},
			{Var: &callTimeout, Name: `JRPC_TIMEOUT`,
				Use: "Timeout of the call as a Go duration (default: 5s)"},
			{Var: &callEncoding, Name: `JRPC_ENCODING`,
				Use: "Encoding of the call, \"json\" or \"msgpack\" (default: json)"},
		}},
	}...)
}

func runCall(ctx context.Context) error {
	args := parser.Args(ctx)
	if len(args) != 1 {
		return errors.New("expected exactly one method name")
	}
	method := args[0]

	options, err := callOptions()
	if err != nil {
		return err
	}
	var params any
	if callParams != `` {
		err = json.Unmarshal([]byte(callParams), &params)
		if err != nil {
			return fmt.Errorf(`%w while parsing params`, err)
		}
	}

	if callURL == `` {
		callURL = `http://localhost:8080/`
	}
	var result any
	client := jrpc.New(callURL, options...)
	err = client.CallContext(ctx, method, params, &result)
	if err != nil {
		hog.From(ctx).Debug().Str(`kind`, jrpc.KindOf(err).String()).Err(err).Msg(`call failed`)
		return err
	}
	js, err := json.MarshalIndent(result, ``, `  `)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(os.Stdout, "%s\n", js)
	return err
}

func callOptions() ([]jrpc.Option, error) {
	var options []jrpc.Option
	if callTimeout != `` {
		timeout, err := time.ParseDuration(callTimeout)
		if err != nil {
			return nil, fmt.Errorf(`%w in JRPC_TIMEOUT`, err)
		}
		options = append(options, jrpc.Timeout(timeout))
	}
	enc, ok := codec.ByMIME(callEncoding)
	if !ok {
		return nil, fmt.Errorf(`unsupported JRPC_ENCODING %q`, callEncoding)
	}
	options = append(options, jrpc.Encoding(enc))
	return options, nil
}

var (
	callURL      string
	callParams   string
	callTimeout  string
	callEncoding string
)
