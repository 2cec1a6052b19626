// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

package rawhttp

import (
	"bytes"
)

const (
	// AcceptHeader is the fixed Accept value sent with every request
	AcceptHeader = "text/html,application/xhtml+xml,application/json;q=0.9,*/*;q=0.8"
	// CacheControlHeader is the fixed Cache-Control value sent with every request
	CacheControlHeader = "no-cache"
)

// EncodeRequest serializes a GET request for path on host
//
// The peer is asked to close the connection after responding, the response
// body is framed by EOF.
func EncodeRequest(host, path string) []byte {
	var buf bytes.Buffer
	buf.WriteString("GET " + path + " HTTP/1.1\r\n")
	buf.WriteString("Host: " + host + "\r\n")
	buf.WriteString("Connection: close\r\n")
	buf.WriteString("Accept: " + AcceptHeader + "\r\n")
	buf.WriteString("Cache-Control: " + CacheControlHeader + "\r\n")
	buf.WriteString("\r\n")
	return buf.Bytes()
}
