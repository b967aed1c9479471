// Package jrpc implements a JSON-RPC 2.0 client that sends each call as an HTTP POST and checks that the response
// belongs to it.  A client is bound to one encoding when it is created, JSON unless the Encoding option says
// otherwise, and may be shared by any number of goroutines.
package jrpc

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/alttch/bma-jrpc/jrpc/codec"
)

// DefaultTimeout limits each call unless the Timeout option is used.
const DefaultTimeout = 5 * time.Second

// New returns a client for the service at endpoint.
func New(endpoint string, options ...Option) *Client {
	c := &Client{
		endpoint:  endpoint,
		encoder:   codec.JSON{},
		transport: http.DefaultClient,
		readLimit: -1,
	}
	c.timeout.Store(int64(DefaultTimeout))
	for _, opt := range options {
		opt(c)
	}
	return c
}

// A Client issues calls to one endpoint.  Only the id counter and the timeout change once the client is in use.
type Client struct {
	nextID    atomic.Uint64
	timeout   atomic.Int64 // time.Duration
	endpoint  string
	encoder   codec.Encoder
	transport Doer
	readLimit int64
}

// A Doer sends an HTTP request and returns its response, *http.Client is the usual implementation.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// An Option affects the construction of a client.
type Option func(*Client)

// Timeout limits each call to the given duration, zero or less disables the limit.
func Timeout(timeout time.Duration) Option {
	return func(c *Client) { c.timeout.Store(int64(timeout)) }
}

// Encoding binds the client to an encoder other than codec.JSON.
func Encoding(enc codec.Encoder) Option {
	return func(c *Client) {
		if enc != nil {
			c.encoder = enc
		}
	}
}

// Transport replaces the HTTP client used to send requests.
func Transport(transport Doer) Option {
	return func(c *Client) {
		if transport != nil {
			c.transport = transport
		}
	}
}

// ReadLimit specifies the maximum size of a response body.  Defaults to -1 which imposes no limit.
func ReadLimit(limit int64) Option {
	return func(c *Client) { c.readLimit = limit }
}

// WithTimeout changes the timeout and returns the client, it is safe while other goroutines are making calls.  Calls
// already in flight keep their old timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.timeout.Store(int64(timeout))
	return c
}

// Timeout returns the current limit on each call.
func (c *Client) Timeout() time.Duration { return time.Duration(c.timeout.Load()) }

// Endpoint returns the URL the client posts to.
func (c *Client) Endpoint() string { return c.endpoint }

// Encoder returns the encoder the client is bound to.
func (c *Client) Encoder() codec.Encoder { return c.encoder }
