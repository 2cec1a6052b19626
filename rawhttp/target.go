// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

package rawhttp

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

// Target is a normalized absolute http(s) URL for a single hop
type Target struct {
	Scheme string
	Host   string
	Port   int
	// Path includes the raw query, if any
	Path string
}

// DefaultPort returns the well known port for a scheme, or 0 if the scheme is not supported
func DefaultPort(scheme string) int {
	switch scheme {
	case "http":
		return 80
	case "https":
		return 443
	default:
		return 0
	}
}

// ParseTarget derives a Target from an absolute URL string
func ParseTarget(raw string) (*Target, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}

	def := DefaultPort(u.Scheme)
	if def == 0 {
		return nil, fmt.Errorf("unsupported scheme: %q", u.Scheme)
	}

	host := u.Hostname()
	if host == "" {
		return nil, fmt.Errorf("missing host in %q", raw)
	}

	port := def
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil || port < 1 || port > 65535 {
			return nil, fmt.Errorf("invalid port %q in %q", p, raw)
		}
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}

	return &Target{
		Scheme: u.Scheme,
		Host:   host,
		Port:   port,
		Path:   path,
	}, nil
}

// Authority is the host, plus the port when it is not the scheme's default
//
// This is the value sent in the Host header.
func (t *Target) Authority() string {
	host := t.Host
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	if t.Port == DefaultPort(t.Scheme) {
		return host
	}
	return host + ":" + strconv.Itoa(t.Port)
}

// Addr is the host:port pair to dial
func (t *Target) Addr() string {
	return net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
}

// String implements fmt.Stringer
func (t *Target) String() string {
	return t.Scheme + "://" + t.Authority() + t.Path
}

// Resolve derives the next hop's Target from a Location header value
//
// Values starting with "//" keep the current scheme, other values starting with
// "/" keep the current scheme and authority, anything else must be an absolute URL.
func (t *Target) Resolve(location string) (*Target, error) {
	if strings.HasPrefix(location, "//") {
		return ParseTarget(t.Scheme + ":" + location)
	}
	if strings.HasPrefix(location, "/") {
		return ParseTarget(t.Scheme + "://" + t.Authority() + location)
	}
	return ParseTarget(location)
}
