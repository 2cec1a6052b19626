// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

package search

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResults(t *testing.T) {
	fsys := afero.NewMemMapFs()

	_, err := LoadResults(fsys)
	require.ErrorIs(t, err, ErrNoResults)

	_, err = Lookup(fsys, 1)
	require.ErrorIs(t, err, ErrNoResults)

	results := []Result{
		{Title: "Go", URL: "https://go.dev/"},
		{Title: "Packages", URL: "https://pkg.go.dev/"},
	}
	require.NoError(t, SaveResults(fsys, results))

	b, err := afero.ReadFile(fsys, ResultsFileName)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"title":"Go","url":"https://go.dev/"},{"title":"Packages","url":"https://pkg.go.dev/"}]`, string(b))

	loaded, err := LoadResults(fsys)
	require.NoError(t, err)
	assert.Equal(t, results, loaded)

	r, err := Lookup(fsys, 2)
	require.NoError(t, err)
	assert.Equal(t, "https://pkg.go.dev/", r.URL)

	_, err = Lookup(fsys, 0)
	require.EqualError(t, err, "no search result with index 0, 2 available")

	_, err = Lookup(fsys, 3)
	require.EqualError(t, err, "no search result with index 3, 2 available")

	require.NoError(t, afero.WriteFile(fsys, ResultsFileName, []byte("{not json"), 0644))
	_, err = LoadResults(fsys)
	require.ErrorContains(t, err, "search results file corrupted")

	require.NoError(t, SaveResults(fsys, []Result{}))
	_, err = Lookup(fsys, 1)
	require.EqualError(t, err, "no search result with index 1, 0 available")
}
