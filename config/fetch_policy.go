// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

package config

import (
	"fmt"
	"slices"

	"github.com/invopop/jsonschema"
	"github.com/spf13/pflag"
)

// FetchPolicy decides whether a page comes from the page cache or the network
type FetchPolicy string

var _ pflag.Value = (*FetchPolicy)(nil)

const (
	// FetchPolicyAlways skips the page cache on read and refreshes it after every fetch
	FetchPolicyAlways FetchPolicy = "always"
	// FetchPolicyIfNotPresent serves cached pages and fetches the rest
	FetchPolicyIfNotPresent FetchPolicy = "if-not-present"
	// FetchPolicyNever works offline, only cached pages can be displayed
	FetchPolicyNever FetchPolicy = "never"
	// DefaultFetchPolicy matches the cache-first behavior of plain go2web -u
	DefaultFetchPolicy FetchPolicy = FetchPolicyIfNotPresent
)

// policyDescriptions are rendered into the config schema
var policyDescriptions = map[FetchPolicy]string{
	FetchPolicyAlways:       "fetch every page and overwrite its page cache entry",
	FetchPolicyIfNotPresent: "serve pages from the page cache, fetch and cache on a miss",
	FetchPolicyNever:        "serve pages from the page cache only, a miss is an error",
}

// AvailablePolicies returns the policy names, sorted
func AvailablePolicies() []string {
	names := make([]string, 0, len(policyDescriptions))
	for p := range policyDescriptions {
		names = append(names, string(p))
	}
	slices.Sort(names)
	return names
}

// UsesCache reports whether the page cache is read before fetching
func (f FetchPolicy) UsesCache() bool {
	return f != FetchPolicyAlways
}

// Fetches reports whether a cache miss may go to the network
func (f FetchPolicy) Fetches() bool {
	return f != FetchPolicyNever
}

// String implements the pflag.Value and fmt.Stringer interfaces
func (f *FetchPolicy) String() string {
	return string(*f)
}

// Set implements the pflag.Value interface, rejecting unknown policies
func (f *FetchPolicy) Set(value string) error {
	if _, ok := policyDescriptions[FetchPolicy(value)]; !ok {
		return fmt.Errorf("invalid fetch policy: %s", value)
	}
	*f = FetchPolicy(value)
	return nil
}

// Type implements the pflag.Value interface
func (f *FetchPolicy) Type() string {
	return "string"
}

// JSONSchemaExtend lists the policies and what each does to the page cache
func (FetchPolicy) JSONSchemaExtend(schema *jsonschema.Schema) {
	schema.Type = "string"
	schema.Description = "When pages are served from the page cache instead of the network"
	for _, name := range AvailablePolicies() {
		schema.Enum = append(schema.Enum, name)
		schema.OneOf = append(schema.OneOf, &jsonschema.Schema{
			Const:       name,
			Description: policyDescriptions[FetchPolicy(name)],
		})
	}
}
