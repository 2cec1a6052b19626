// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

// Package config provides the user configuration file for go2web
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/invopop/jsonschema"
	"github.com/xeipuuv/gojsonschema"

	"github.com/defenseunicorns/go2web/extract"
	"github.com/defenseunicorns/go2web/search"
)

// SchemaVersion is the current schema version for configs
const SchemaVersion = "v0"

// Config is the user configuration file for go2web
type Config struct {
	SchemaVersion string         `json:"schema-version"`
	FetchPolicy   FetchPolicy    `json:"fetch-policy,omitempty"`
	SearchEngine  string         `json:"search-engine,omitempty"`
	Format        extract.Format `json:"format,omitempty"`
	CacheDir      string         `json:"cache-dir,omitempty"`
}

// JSONSchemaExtend extends the JSON schema for a config
func (Config) JSONSchemaExtend(schema *jsonschema.Schema) {
	if schemaVersion, ok := schema.Properties.Get("schema-version"); ok && schemaVersion != nil {
		schemaVersion.Description = "Config schema version"
		schemaVersion.Enum = []any{SchemaVersion}
	}

	if engine, ok := schema.Properties.Get("search-engine"); ok && engine != nil {
		engine.Description = "Search engine used by go2web -s"
		all := []any{}
		for _, name := range search.Names() {
			all = append(all, name)
		}
		engine.Enum = all
	}

	if cacheDir, ok := schema.Properties.Get("cache-dir"); ok && cacheDir != nil {
		cacheDir.Description = "Directory holding cached pages and the last search results, environment variables are expanded"
	}
}

// versioned is used to peek at the schema version before decoding the rest
type versioned struct {
	SchemaVersion string `json:"schema-version"`
}

// Default returns a valid config with every field at its default
func Default() *Config {
	return &Config{
		SchemaVersion: SchemaVersion,
		FetchPolicy:   DefaultFetchPolicy,
		SearchEngine:  search.DefaultEngine,
		Format:        extract.DefaultFormat,
	}
}

// LoadConfig reads and validates a config
func LoadConfig(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var v versioned
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}

	switch version := v.SchemaVersion; version {
	case SchemaVersion:
		cfg := Default()
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		return cfg, Validate(cfg)
	default:
		return nil, fmt.Errorf("unsupported config schema version: expected %q, got %q", SchemaVersion, version)
	}
}

// LoadDefaultConfig loads $HOME/.go2web/config.yaml
//
// If the file does not exist, the default config is returned
func LoadDefaultConfig() (*Config, error) {
	dir, err := DefaultDirectory()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(dir, DefaultFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	cfg, err := LoadConfig(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	return cfg, nil
}

var schemaOnce = sync.OnceValues(func() (string, error) {
	s := Schema()
	b, err := json.Marshal(s)
	return string(b), err
})

// Validate checks if a config adheres to the JSON schema
func Validate(config *Config) error {
	schema, err := schemaOnce()
	if err != nil {
		return err
	}

	result, err := gojsonschema.Validate(gojsonschema.NewStringLoader(schema), gojsonschema.NewGoLoader(config))
	if err != nil {
		return err
	}

	if result.Valid() {
		return nil
	}

	var resErr error
	for _, err := range result.Errors() {
		resErr = errors.Join(resErr, errors.New(err.String()))
	}

	return resErr
}

// Schema returns the JSON schema for the Config type
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{DoNotReference: true}
	return reflector.Reflect(&Config{})
}
