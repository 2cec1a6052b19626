// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

package search

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngines(t *testing.T) {
	assert.Equal(t, []string{"duckduckgo", "google"}, Names())

	e, err := Get("google")
	require.NoError(t, err)
	assert.Equal(t, "https://www.google.com/search?q=go+net%2Fhttp+%26+tls", e.URL("go net/http & tls"))

	e, err = Get("duckduckgo")
	require.NoError(t, err)
	assert.Equal(t, "https://html.duckduckgo.com/html/?q=golang", e.URL("golang"))

	_, err = Get("altavista")
	require.EqualError(t, err, `unknown search engine "altavista", available: duckduckgo, google`)
}

func TestParseGoogle(t *testing.T) {
	markup := `<html><body>
<a href="/search?q=golang&tbm=isch">Images</a>
<a href="https://accounts.google.com/ServiceLogin">Sign in</a>
<a href="/url?q=https://go.dev/&amp;sa=U&amp;ved=abc"><h3>The Go  Programming
 Language</h3></a>
<a href="/url?q=https://maps.google.com/&amp;sa=U">Maps</a>
<a href="/url?q=https://en.wikipedia.org/wiki/Go_(programming_language)&amp;sa=U"><h3>Go (programming language) - Wikipedia</h3></a>
<a href="/url?q=https://go.dev/&amp;sa=U&amp;ved=def">duplicate</a>
<a href="/url?q=/relative&amp;sa=U">relative</a>
</body></html>`

	e, err := Get("google")
	require.NoError(t, err)

	results, err := e.Parse(markup)
	require.NoError(t, err)
	assert.Equal(t, []Result{
		{Title: "The Go Programming Language", URL: "https://go.dev/"},
		{Title: "Go (programming language) - Wikipedia", URL: "https://en.wikipedia.org/wiki/Go_(programming_language)"},
	}, results)
}

func TestParseDuckDuckGo(t *testing.T) {
	markup := `<html><body>
<div class="result"><a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fgo.dev%2Fdoc%2F&amp;rut=123">Documentation - The Go Programming Language</a></div>
<div class="result"><a class="result__a" href="https://pkg.go.dev/">Go Packages</a></div>
<div class="result"><a class="result__a" href="javascript:void(0)">broken</a></div>
<a href="https://duckduckgo.com/settings">Settings</a>
</body></html>`

	e, err := Get("duckduckgo")
	require.NoError(t, err)

	results, err := e.Parse(markup)
	require.NoError(t, err)
	assert.Equal(t, []Result{
		{Title: "Documentation - The Go Programming Language", URL: "https://go.dev/doc/"},
		{Title: "Go Packages", URL: "https://pkg.go.dev/"},
	}, results)
}

func TestParseLimit(t *testing.T) {
	var markup strings.Builder
	for i := range MaxResults + 5 {
		fmt.Fprintf(&markup, `<a href="/url?q=https://example.com/%d&amp;sa=U">result %d</a>`, i, i)
	}

	e, err := Get("google")
	require.NoError(t, err)

	results, err := e.Parse(markup.String())
	require.NoError(t, err)
	require.Len(t, results, MaxResults)
	assert.Equal(t, Result{Title: "result 0", URL: "https://example.com/0"}, results[0])
	assert.Equal(t, Result{Title: "result 9", URL: "https://example.com/9"}, results[MaxResults-1])

	results, err = e.Parse("<html><body>nothing here</body></html>")
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.NotNil(t, results)
}
