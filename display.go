// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

package go2web

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/defenseunicorns/go2web/extract"
	"github.com/defenseunicorns/go2web/rawhttp"
)

// Page is the displayable content of a URL
type Page struct {
	// URL the content was requested as, or served from when fetched
	URL     string
	Kind    rawhttp.Kind
	Format  extract.Format
	Content string
	Cached  bool
}

// cacheKey keys text pages by URL alone, other formats and JSON documents are kept apart
func cacheKey(u string, kind rawhttp.Kind, format extract.Format) string {
	switch {
	case kind == rawhttp.KindJSON:
		return "json:" + u
	case format == extract.FormatText:
		return u
	default:
		return string(format) + ":" + u
	}
}

// Display returns the readable content of raw, from the cache or the network
//
// JSON responses are returned verbatim, anything else is treated as HTML and
// rendered in the service's format. The cache is keyed by the normalized URL.
func (s *Service) Display(ctx context.Context, raw string) (*Page, error) {
	logger := log.FromContext(ctx)

	u := NormalizeURL(raw)
	logger.Info("accessing", "url", u)

	if s.cache != nil && s.policy.UsesCache() {
		page, err := s.cached(u)
		if err != nil {
			return nil, err
		}
		if page != nil {
			logger.Debug("serving from cache", "url", u, "kind", page.Kind)
			return page, nil
		}
		if !s.policy.Fetches() {
			return nil, fmt.Errorf("%s is not cached and fetch policy is %q", u, s.policy)
		}
	}

	res, err := s.client.Get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", u, err)
	}

	if res.Response.Lossy {
		logger.Debug("response is not valid UTF-8, decoded byte-wise", "url", res.URL)
	}
	logger.Debug("fetched", "url", res.URL, "status", res.Response.StatusCode, "kind", res.Kind, "hops", res.Hops)

	page := &Page{URL: res.URL, Kind: res.Kind, Format: s.format}
	switch res.Kind {
	case rawhttp.KindJSON:
		page.Content = res.Response.Body
	default:
		page.Content, err = extract.Extract(s.format, res.URL, res.Response.Body)
		if err != nil {
			return nil, err
		}
	}

	if s.cache != nil {
		if err := s.cache.Put(cacheKey(u, page.Kind, s.format), page.Content); err != nil {
			return nil, fmt.Errorf("failed to cache %s: %w", u, err)
		}
		logger.Debug("cached", "url", u)
	}

	return page, nil
}

// cached returns the cached page for u, or nil on a miss
//
// JSON documents do not depend on the format, so they are looked up first.
func (s *Service) cached(u string) (*Page, error) {
	for _, kind := range []rawhttp.Kind{rawhttp.KindJSON, rawhttp.KindMarkup} {
		content, ok, err := s.cache.Get(cacheKey(u, kind, s.format))
		if err != nil {
			return nil, fmt.Errorf("failed to read cache for %s: %w", u, err)
		}
		if ok {
			return &Page{URL: u, Kind: kind, Format: s.format, Content: content, Cached: true}, nil
		}
	}
	return nil, nil
}
