// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

// Package search scrapes search engine result pages and remembers the last results.
package search

import (
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultEngine is the engine used when none is configured
const DefaultEngine = "google"

// MaxResults is the number of results kept per search
const MaxResults = 10

// Result is a single search hit
type Result struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Engine describes how to query and scrape one search engine
type Engine struct {
	Name string
	// QueryURL is the results page URL, the escaped search term is appended to it
	QueryURL string
	// Selector matches the result anchors on the results page
	Selector string
	// target extracts the destination from a result anchor's href
	target func(href string) (string, bool)
}

var engines = map[string]*Engine{
	"google": {
		Name:     "google",
		QueryURL: "https://www.google.com/search?q=",
		Selector: "a[href]",
		target:   googleTarget,
	},
	"duckduckgo": {
		Name:     "duckduckgo",
		QueryURL: "https://html.duckduckgo.com/html/?q=",
		Selector: "a.result__a",
		target:   duckDuckGoTarget,
	},
}

// Names returns the names of all engines, sorted
func Names() []string {
	return slices.Sorted(maps.Keys(engines))
}

// Get returns the named engine
func Get(name string) (*Engine, error) {
	e, ok := engines[name]
	if !ok {
		return nil, fmt.Errorf("unknown search engine %q, available: %s", name, strings.Join(Names(), ", "))
	}
	return e, nil
}

// URL returns the results page URL for term
func (e *Engine) URL(term string) string {
	return e.QueryURL + url.QueryEscape(term)
}

// Parse scrapes up to MaxResults results from a results page
func (e *Engine) Parse(markup string) ([]Result, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s results: %w", e.Name, err)
	}

	results := []Result{}
	seen := map[string]bool{}
	doc.Find(e.Selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok {
			return true
		}
		target, ok := e.target(href)
		if !ok || seen[target] {
			return true
		}
		seen[target] = true

		results = append(results, Result{
			Title: strings.Join(strings.Fields(s.Text()), " "),
			URL:   target,
		})
		return len(results) < MaxResults
	})

	return results, nil
}

// googleTarget unwraps "/url?q=<target>&..." redirect links, skipping links back into google
func googleTarget(href string) (string, bool) {
	if !strings.HasPrefix(href, "/url?q=") || strings.Contains(href, "google.com") {
		return "", false
	}
	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	target := u.Query().Get("q")
	return target, strings.HasPrefix(target, "http")
}

// duckDuckGoTarget unwraps "//duckduckgo.com/l/?uddg=<target>&..." redirect links
func duckDuckGoTarget(href string) (string, bool) {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target, true
	}
	if u.Scheme == "http" || u.Scheme == "https" {
		return href, true
	}
	return "", false
}
