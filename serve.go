package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/alttch/bma-jrpc/example/printf"
	"github.com/alttch/bma-jrpc/jrpc/service"
	"github.com/swdunlop/zugzug-go"
)

func init() {
	tasks = append(tasks, zugzug.Tasks{
		{Name: "serve", Use: "Runs the example service, answering \"echo\" and \"sprintf\"", Fn: runServe, Settings: zugzug.Settings{
			{Var: &listenAddress, Name: `LISTEN_ADDRESS`,
				Use: "Listening address for the service, a path for a Unix socket (default: localhost:8080)"},
		}},
	}...)
}

func runServe(ctx context.Context) error {
	if listenAddress == `` {
		listenAddress = `localhost:8080`
	}
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()
	handler := service.Handle(
		service.Use(service.Logging()),
		service.Echo(`echo`),
		printf.Rig(),
	)
	return service.Serve(ctx, listenAddress, handler)
}

var listenAddress string
