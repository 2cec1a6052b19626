// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

package go2web

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cast"

	"github.com/defenseunicorns/go2web/search"
)

// Search queries the configured engine and saves the results for Previous
func (s *Service) Search(ctx context.Context, term string) ([]search.Result, error) {
	logger := log.FromContext(ctx)

	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("search term cannot be empty")
	}

	u := s.engine.URL(term)
	logger.Debug("searching", "engine", s.engine.Name, "url", u)

	res, err := s.client.Get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("failed to search %s for %q: %w", s.engine.Name, term, err)
	}

	results, err := s.engine.Parse(res.Response.Body)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		logger.Warn("no results found", "engine", s.engine.Name, "term", term)
	}

	if err := search.SaveResults(s.fsys, results); err != nil {
		return nil, fmt.Errorf("failed to save search results: %w", err)
	}

	return results, nil
}

// Previous displays the result at index (counting from 1) of the last search
func (s *Service) Previous(ctx context.Context, index string) (*Page, error) {
	i, err := parseIndex(index)
	if err != nil {
		return nil, err
	}

	result, err := search.Lookup(s.fsys, i)
	if err != nil {
		return nil, err
	}

	log.FromContext(ctx).Debug("opening search result", "index", i, "title", result.Title)

	return s.Display(ctx, result.URL)
}

// parseIndex reads a plain decimal result number, "010" is 10
func parseIndex(index string) (int, error) {
	digits := strings.TrimSpace(index)
	if digits == "" || strings.IndexFunc(digits, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return 0, fmt.Errorf("number expected, found %q", index)
	}

	// cast reads a leading zero as an octal prefix
	if trimmed := strings.TrimLeft(digits, "0"); trimmed != "" {
		digits = trimmed
	} else {
		digits = "0"
	}

	i, err := cast.ToE[int](digits)
	if err != nil {
		return 0, fmt.Errorf("number expected, found %q", index)
	}
	return i, nil
}
