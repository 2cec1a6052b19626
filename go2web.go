// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

// Package go2web fetches web pages and search results and turns them into terminal friendly text.
package go2web

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/spf13/afero"

	"github.com/defenseunicorns/go2web/config"
	"github.com/defenseunicorns/go2web/extract"
	"github.com/defenseunicorns/go2web/rawhttp"
	"github.com/defenseunicorns/go2web/search"
	"github.com/defenseunicorns/go2web/store"
)

// Fetcher retrieves a URL, following redirects
type Fetcher interface {
	Get(ctx context.Context, raw string) (*rawhttp.Result, error)
}

var _ Fetcher = (*rawhttp.Client)(nil)

// Service ties the HTTP client, the page cache and the search engine together
type Service struct {
	client Fetcher
	cache  store.Cache
	fsys   afero.Fs
	policy config.FetchPolicy
	engine *search.Engine
	format extract.Format
}

// ServiceOption is a function that configures a Service
type ServiceOption func(*Service)

// WithClient sets the client used for every request
func WithClient(client Fetcher) ServiceOption {
	return func(s *Service) {
		s.client = client
	}
}

// WithCache sets the page cache, without one every page is fetched
func WithCache(cache store.Cache) ServiceOption {
	return func(s *Service) {
		s.cache = cache
	}
}

// WithFS sets the filesystem the last search results are saved to
func WithFS(fsys afero.Fs) ServiceOption {
	return func(s *Service) {
		s.fsys = fsys
	}
}

// WithFetchPolicy sets when the cache is consulted
func WithFetchPolicy(policy config.FetchPolicy) ServiceOption {
	return func(s *Service) {
		s.policy = policy
	}
}

// WithSearchEngine sets the engine used by Search
func WithSearchEngine(engine *search.Engine) ServiceOption {
	return func(s *Service) {
		s.engine = engine
	}
}

// WithFormat sets how HTML pages are turned into text
func WithFormat(format extract.Format) ServiceOption {
	return func(s *Service) {
		s.format = format
	}
}

// NewService creates a new Service
func NewService(opts ...ServiceOption) (*Service, error) {
	svc := &Service{
		policy: config.DefaultFetchPolicy,
		format: extract.DefaultFormat,
	}

	for _, opt := range opts {
		opt(svc)
	}

	if svc.client == nil {
		svc.client = rawhttp.NewClient()
	}

	if svc.fsys == nil {
		svc.fsys = afero.NewOsFs()
	}

	if svc.engine == nil {
		engine, err := search.Get(search.DefaultEngine)
		if err != nil {
			return nil, err
		}
		svc.engine = engine
	}

	if svc.policy == config.FetchPolicyNever && svc.cache == nil {
		return nil, fmt.Errorf("cache is not initialized")
	}

	// check the policy is valid
	if err := svc.policy.Set(svc.policy.String()); err != nil {
		return nil, err
	}

	if err := svc.format.Set(svc.format.String()); err != nil {
		return nil, err
	}

	return svc, nil
}

// NormalizeURL turns user input into an absolute URL
//
// Input without a scheme is given https, and a bare domain such as
// "example.com" is given a "www." prefix. Input with a scheme is returned as is.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.Contains(raw, "://") {
		return raw
	}

	hostport, rest := raw, ""
	if i := strings.IndexAny(raw, "/?#"); i >= 0 {
		hostport, rest = raw[:i], raw[i:]
	}

	host, _, _ := strings.Cut(hostport, ":")
	if strings.Count(host, ".") == 1 && net.ParseIP(host) == nil && !strings.HasPrefix(host, "www.") {
		hostport = "www." + hostport
	}

	return "https://" + hostport + rest
}
