// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

package rawhttp

import (
	"errors"
	"fmt"
)

var (
	// ErrTooManyRedirects is returned once a fetch follows more than MaxRedirects redirects
	ErrTooManyRedirects = errors.New("too many redirects")
	// ErrMissingLocation is returned when a 3xx response has no Location header
	ErrMissingLocation = errors.New("redirect response has no Location header")
	// ErrClientError is the kind of every 4xx StatusError
	ErrClientError = errors.New("client error")
	// ErrServerError is the kind of every 5xx StatusError
	ErrServerError = errors.New("server error")
	// ErrUnsupportedResponse is the kind of every 1xx StatusError
	ErrUnsupportedResponse = errors.New("unsupported response")
)

// ConnectionError is returned when the TCP connection cannot be established.
type ConnectionError struct {
	Addr string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to %s: %v", e.Addr, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// TLSError is returned when the TLS handshake fails.
type TLSError struct {
	Host string
	Err  error
}

func (e *TLSError) Error() string {
	return fmt.Sprintf("tls handshake with %s failed: %v", e.Host, e.Err)
}

func (e *TLSError) Unwrap() error {
	return e.Err
}

// ParseError is returned for malformed responses.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "invalid HTTP response: " + e.Reason
}

func parseErrorf(format string, a ...any) *ParseError {
	return &ParseError{Reason: fmt.Sprintf(format, a...)}
}

// RedirectError is returned when a redirect cannot be followed.
type RedirectError struct {
	Location string
	Err      error
}

func (e *RedirectError) Error() string {
	if e.Location == "" {
		return fmt.Sprintf("redirect failed: %v", e.Err)
	}
	return fmt.Sprintf("redirect to %q failed: %v", e.Location, e.Err)
}

func (e *RedirectError) Unwrap() error {
	return e.Err
}

// StatusError carries a non-success, non-redirect status.
//
// errors.Is matches it against ErrClientError, ErrServerError or ErrUnsupportedResponse.
type StatusError struct {
	Code   int
	Reason string
}

func (e *StatusError) Error() string {
	status := fmt.Sprintf("%d", e.Code)
	if e.Reason != "" {
		status += " " + e.Reason
	}
	return fmt.Sprintf("%v: %s", e.Unwrap(), status)
}

// Unwrap returns the error kind for the status family
func (e *StatusError) Unwrap() error {
	switch {
	case e.Code >= 100 && e.Code < 200:
		return ErrUnsupportedResponse
	case e.Code >= 400 && e.Code < 500:
		return ErrClientError
	default:
		return ErrServerError
	}
}
