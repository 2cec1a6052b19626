// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

package search

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// ResultsFileName is the file holding the results of the last search
const ResultsFileName = "search_results.json"

// ErrNoResults is returned when no search has been saved yet
var ErrNoResults = errors.New("no previous search results found")

// SaveResults replaces the saved results
func SaveResults(fsys afero.Fs, results []Result) error {
	b, err := json.Marshal(results)
	if err != nil {
		return err
	}
	return afero.WriteFile(fsys, ResultsFileName, b, 0644)
}

// LoadResults reads the saved results
func LoadResults(fsys afero.Fs) ([]Result, error) {
	b, err := afero.ReadFile(fsys, ResultsFileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoResults
		}
		return nil, err
	}

	var results []Result
	if err := json.Unmarshal(b, &results); err != nil {
		return nil, fmt.Errorf("search results file corrupted: %w", err)
	}
	return results, nil
}

// Lookup returns the saved result at index, counting from 1 as results are printed
func Lookup(fsys afero.Fs, index int) (Result, error) {
	results, err := LoadResults(fsys)
	if err != nil {
		return Result{}, err
	}
	if index < 1 || index > len(results) {
		return Result{}, fmt.Errorf("no search result with index %d, %d available", index, len(results))
	}
	return results[index-1], nil
}
