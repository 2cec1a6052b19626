// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

package rawhttp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTarget(t *testing.T) {
	testCases := []struct {
		name        string
		raw         string
		expected    *Target
		expectedErr string
	}{
		{
			name:     "http default port",
			raw:      "http://example.com/path",
			expected: &Target{Scheme: "http", Host: "example.com", Port: 80, Path: "/path"},
		},
		{
			name:     "https default port and path",
			raw:      "https://example.com",
			expected: &Target{Scheme: "https", Host: "example.com", Port: 443, Path: "/"},
		},
		{
			name:     "explicit port",
			raw:      "http://localhost:8080/index",
			expected: &Target{Scheme: "http", Host: "localhost", Port: 8080, Path: "/index"},
		},
		{
			name:     "query is kept, fragment is dropped",
			raw:      "https://www.google.com/search?q=go+lang#top",
			expected: &Target{Scheme: "https", Host: "www.google.com", Port: 443, Path: "/search?q=go+lang"},
		},
		{
			name:        "unsupported scheme",
			raw:         "ftp://example.com/path",
			expectedErr: `unsupported scheme: "ftp"`,
		},
		{
			name:        "no scheme",
			raw:         "invalid-url",
			expectedErr: `unsupported scheme: ""`,
		},
		{
			name:        "missing host",
			raw:         "https:///path",
			expectedErr: `missing host in "https:///path"`,
		},
		{
			name:        "port out of range",
			raw:         "http://example.com:70000/",
			expectedErr: `invalid port "70000" in "http://example.com:70000/"`,
		},
		{
			name:        "syntax error",
			raw:         "http://example.com/%zz",
			expectedErr: `parse "http://example.com/%zz": invalid URL escape "%zz"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			target, err := ParseTarget(tc.raw)
			if tc.expectedErr != "" {
				require.EqualError(t, err, tc.expectedErr)
				assert.Nil(t, target)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, target)
		})
	}
}

func TestTargetAuthority(t *testing.T) {
	target, err := ParseTarget("https://example.com/")
	require.NoError(t, err)
	assert.Equal(t, "example.com", target.Authority())
	assert.Equal(t, "example.com:443", target.Addr())
	assert.Equal(t, "https://example.com/", target.String())

	target, err = ParseTarget("http://example.com:8080/a?b=c")
	require.NoError(t, err)
	assert.Equal(t, "example.com:8080", target.Authority())
	assert.Equal(t, "http://example.com:8080/a?b=c", target.String())

	target, err = ParseTarget("http://[::1]:8080/")
	require.NoError(t, err)
	assert.Equal(t, "[::1]:8080", target.Authority())
	assert.Equal(t, "[::1]:8080", target.Addr())
}

func TestTargetResolve(t *testing.T) {
	base, err := ParseTarget("https://example.com/start")
	require.NoError(t, err)

	next, err := base.Resolve("/a/b")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a/b", next.String())

	next, err = base.Resolve("http://other.example.org:8080/x")
	require.NoError(t, err)
	assert.Equal(t, &Target{Scheme: "http", Host: "other.example.org", Port: 8080, Path: "/x"}, next)

	withPort, err := ParseTarget("http://localhost:9000/")
	require.NoError(t, err)
	next, err = withPort.Resolve("/moved")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/moved", next.String())

	// scheme-relative locations change host, not scheme
	next, err = base.Resolve("//cdn.example.com/x?v=1")
	require.NoError(t, err)
	assert.Equal(t, &Target{Scheme: "https", Host: "cdn.example.com", Port: 443, Path: "/x?v=1"}, next)

	next, err = withPort.Resolve("//cdn.example.com:8080/x")
	require.NoError(t, err)
	assert.Equal(t, "http://cdn.example.com:8080/x", next.String())

	_, err = base.Resolve("relative/path")
	require.EqualError(t, err, `unsupported scheme: ""`)
}
