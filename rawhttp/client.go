// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

// Package rawhttp is a minimal HTTP/1.1 GET client written directly against TCP/TLS sockets.
//
// Every request asks the server to close the connection, bodies are framed by EOF,
// and redirects are followed up to MaxRedirects times.
package rawhttp

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// MaxRedirects is the number of redirects followed before giving up
const MaxRedirects = 10

// DefaultDialTimeout bounds the TCP connect of every hop
const DefaultDialTimeout = 30 * time.Second

// DialContextFunc opens a network connection, net.Dialer.DialContext satisfies it
type DialContextFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// Client fetches URLs, one fresh connection per hop
type Client struct {
	dial         DialContextFunc
	maxRedirects int
}

// ClientOption is a function that configures a Client
type ClientOption func(*Client)

// WithDialer sets the function used to open TCP connections
func WithDialer(dial DialContextFunc) ClientOption {
	return func(c *Client) {
		c.dial = dial
	}
}

// WithMaxRedirects overrides MaxRedirects
func WithMaxRedirects(n int) ClientOption {
	return func(c *Client) {
		c.maxRedirects = n
	}
}

// NewClient creates a new Client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		maxRedirects: MaxRedirects,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.dial == nil {
		d := &net.Dialer{Timeout: DefaultDialTimeout}
		c.dial = d.DialContext
	}

	return c
}

// Result is the outcome of a successful fetch
type Result struct {
	// URL the final response was served from
	URL      string
	Response *Response
	Kind     Kind
	// Hops is the number of connections made, redirects included
	Hops int
}

// Get fetches raw, following redirects, and returns the final 2xx response
//
// 4xx and 5xx responses fail with a *StatusError, nothing is retried.
func (c *Client) Get(ctx context.Context, raw string) (*Result, error) {
	logger := log.FromContext(ctx)

	target, err := ParseTarget(raw)
	if err != nil {
		return nil, err
	}

	redirects := 0
	for hop := 1; ; hop++ {
		logger.Debug("connecting", "url", target, "hop", hop)

		resp, err := c.roundTrip(ctx, target)
		if err != nil {
			return nil, err
		}

		if resp.Headers.Truncated() {
			logger.Debug("dropped response headers", "url", target, "kept", MaxHeaders)
		}

		switch code := resp.StatusCode; {
		case code >= 200 && code < 300:
			return &Result{
				URL:      target.String(),
				Response: resp,
				Kind:     Classify(resp.Headers),
				Hops:     hop,
			}, nil
		case code >= 300 && code < 400:
			location, ok := resp.Headers.Get("Location")
			if !ok {
				return nil, &RedirectError{Err: ErrMissingLocation}
			}

			redirects++
			if redirects > c.maxRedirects {
				return nil, &RedirectError{Location: location, Err: ErrTooManyRedirects}
			}

			next, err := target.Resolve(location)
			if err != nil {
				return nil, &RedirectError{Location: location, Err: err}
			}

			logger.Debug("following redirect", "status", code, "from", target, "to", next)
			target = next
		case code >= 100 && code < 600:
			return nil, &StatusError{Code: code, Reason: resp.Reason}
		default:
			return nil, parseErrorf("status code %d out of range", code)
		}
	}
}

func (c *Client) roundTrip(ctx context.Context, t *Target) (*Response, error) {
	conn, err := c.open(ctx, t)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	// unblock pending reads and writes once ctx is done
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})
	defer stop()

	if _, err := conn.Write(EncodeRequest(t.Authority(), t.Path)); err != nil {
		return nil, fmt.Errorf("failed to send request to %s: %w", t, contextErr(ctx, err))
	}

	resp, err := DecodeResponse(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", t, contextErr(ctx, err))
	}
	return resp, nil
}

// contextErr reports ctx's error in place of the deadline error it caused
func contextErr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	// the connection deadline can fire just before ctx notices its own
	if deadline, ok := ctx.Deadline(); ok && errors.Is(err, os.ErrDeadlineExceeded) && !time.Now().Before(deadline) {
		return context.DeadlineExceeded
	}
	return err
}

// open dials the target, wrapping the stream in TLS for https
//
// Certificates are not verified: self-signed and expired certificates are accepted.
func (c *Client) open(ctx context.Context, t *Target) (net.Conn, error) {
	addr := t.Addr()

	conn, err := c.dial(ctx, "tcp", addr)
	if err != nil {
		return nil, &ConnectionError{Addr: addr, Err: err}
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	if t.Scheme != "https" {
		return conn, nil
	}

	tlsConn := tls.Client(conn, &tls.Config{
		ServerName:         t.Host,
		InsecureSkipVerify: true, //nolint:gosec
	})
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, &TLSError{Host: t.Host, Err: err}
	}
	return tlsConn, nil
}
