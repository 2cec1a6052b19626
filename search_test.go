// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

package go2web

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/defenseunicorns/go2web/rawhttp"
	"github.com/defenseunicorns/go2web/search"
)

const googleMarkup = `<html><body>
<a href="/url?q=https://go.dev/&amp;sa=U">The Go Programming Language</a>
<a href="/url?q=https://maps.google.com/&amp;sa=U">Maps</a>
<a href="/url?q=https://gobyexample.com/&amp;sa=U">Go by Example</a>
</body></html>`

func TestSearch(t *testing.T) {
	ctx := log.WithContext(t.Context(), log.New(io.Discard))

	fsys := afero.NewMemMapFs()
	searchURL := "https://www.google.com/search?q=golang+tutorial"
	fetcher := &fakeFetcher{results: map[string]*rawhttp.Result{
		searchURL:                  markupResult(searchURL, googleMarkup),
		"https://go.dev/":          markupResult("https://go.dev/", "<h1>Build simple, secure, scalable systems with Go</h1>"),
		"https://gobyexample.com/": markupResult("https://gobyexample.com/", "<p>Go by Example is a hands-on introduction</p>"),
	}}
	svc, err := NewService(WithClient(fetcher), WithFS(fsys), WithCache(newTestCache(t)))
	require.NoError(t, err)

	_, err = svc.Previous(ctx, "1")
	require.ErrorIs(t, err, search.ErrNoResults)

	_, err = svc.Search(ctx, "   ")
	require.EqualError(t, err, "search term cannot be empty")

	results, err := svc.Search(ctx, "golang tutorial")
	require.NoError(t, err)
	assert.Equal(t, []search.Result{
		{Title: "The Go Programming Language", URL: "https://go.dev/"},
		{Title: "Go by Example", URL: "https://gobyexample.com/"},
	}, results)

	saved, err := search.LoadResults(fsys)
	require.NoError(t, err)
	assert.Equal(t, results, saved)

	page, err := svc.Previous(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "Go by Example is a hands-on introduction\n", page.Content)

	page, err = svc.Previous(ctx, " 1 ")
	require.NoError(t, err)
	assert.Equal(t, "https://go.dev/", page.URL)

	// leading zeros are decimal, not octal
	page, err = svc.Previous(ctx, "02")
	require.NoError(t, err)
	assert.Equal(t, "https://gobyexample.com/", page.URL)

	_, err = svc.Previous(ctx, "3")
	require.EqualError(t, err, "no search result with index 3, 2 available")

	_, err = svc.Previous(ctx, "first")
	require.EqualError(t, err, `number expected, found "first"`)
}

func TestSearchFailure(t *testing.T) {
	ctx := log.WithContext(t.Context(), log.New(io.Discard))

	fsys := afero.NewMemMapFs()
	fetcher := &fakeFetcher{err: &rawhttp.StatusError{Code: 429, Reason: "Too Many Requests"}}

	engine, err := search.Get("duckduckgo")
	require.NoError(t, err)

	svc, err := NewService(WithClient(fetcher), WithFS(fsys), WithSearchEngine(engine))
	require.NoError(t, err)

	_, err = svc.Search(ctx, "go")
	require.EqualError(t, err, `failed to search duckduckgo for "go": client error: 429 Too Many Requests`)
	assert.Equal(t, []string{"https://html.duckduckgo.com/html/?q=go"}, fetcher.calls)

	exists, err := afero.Exists(fsys, search.ResultsFileName)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestParseIndex(t *testing.T) {
	testCases := []struct {
		index       string
		expected    int
		expectedErr string
	}{
		{index: "1", expected: 1},
		{index: " 7 ", expected: 7},
		{index: "010", expected: 10},
		{index: "08", expected: 8},
		{index: "0", expected: 0},
		{index: "000", expected: 0},
		{index: "", expectedErr: `number expected, found ""`},
		{index: "0x10", expectedErr: `number expected, found "0x10"`},
		{index: "-1", expectedErr: `number expected, found "-1"`},
		{index: "1_000", expectedErr: `number expected, found "1_000"`},
		{index: "99999999999999999999999", expectedErr: `number expected, found "99999999999999999999999"`},
	}

	for _, tc := range testCases {
		t.Run(tc.index, func(t *testing.T) {
			i, err := parseIndex(tc.index)
			if tc.expectedErr != "" {
				require.EqualError(t, err, tc.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, i)
		})
	}
}
