package service

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/swdunlop/html-go/hog"
)

// Serve runs handler as an HTTP server listening to the provided address until the context is cancelled.  If the
// address starts with "." or "/", it will be interpreted as a Unix domain socket.  Otherwise, it will be interpreted
// as a TCP address.
func Serve(ctx context.Context, address string, handler http.Handler) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	network := `tcp`
	if strings.HasPrefix(address, `.`) || strings.HasPrefix(address, `/`) {
		network = `unix`
	}
	var lcf net.ListenConfig
	lr, err := lcf.Listen(ctx, network, address)
	if err != nil {
		return err
	}
	// no need to defer lr.Close, svr.Shutdown will close it

	svr := http.Server{
		Handler:     handler,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}
	go func() {
		<-ctx.Done()
		_ = svr.Shutdown(context.Background())
	}()

	hog.From(ctx).Info().Str(`address`, address).Msg(`starting JSON-RPC service`)
	err = svr.Serve(lr)
	hog.From(ctx).Info().Err(err).Msg(`JSON-RPC service stopped`)
	if err == http.ErrServerClosed {
		return nil
	}
	_ = lr.Close() // just in case, since we did not have a shutdown or server close.
	return err
}
