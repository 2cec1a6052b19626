// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

package rawhttp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeRequest(t *testing.T) {
	req := string(EncodeRequest("example.com", "/foo"))

	expected := "GET /foo HTTP/1.1\r\n" +
		"Host: example.com\r\n" +
		"Connection: close\r\n" +
		"Accept: " + AcceptHeader + "\r\n" +
		"Cache-Control: no-cache\r\n" +
		"\r\n"
	assert.Equal(t, expected, req)

	lines := strings.Split(req, "\r\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "GET /foo HTTP/1.1", lines[0])
	assert.Contains(t, lines, "Host: example.com")
	assert.True(t, strings.HasSuffix(req, "\r\n\r\n"))
}
