// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

// Package store provides a URL keyed cache for extracted page content.
package store

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

// Extension is the file extension of every cache entry
const Extension = ".txt"

// Cache stores text by key, entries never expire
type Cache interface {
	// Get returns the stored value and whether it was present
	Get(key string) (string, bool, error)
	Put(key, value string) error
}

var _ Cache = (*LocalStore)(nil)

// LocalStore keeps one flat file per key at the root of a filesystem
type LocalStore struct {
	fs afero.Fs
	mu sync.RWMutex
}

// NewLocalStore creates a new store rooted at fs
//
// Use afero.NewBasePathFs to root it at a directory.
func NewLocalStore(fs afero.Fs) (*LocalStore, error) {
	if fs == nil {
		return nil, errors.New("filesystem cannot be nil")
	}
	return &LocalStore{fs: fs}, nil
}

// FileName is the name of the file holding key's value
func FileName(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:]) + Extension
}

// Get implements Cache
func (s *LocalStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, err := afero.ReadFile(s.fs, FileName(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(b), true, nil
}

// Put implements Cache, overwriting any existing value
func (s *LocalStore) Put(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return afero.WriteFile(s.fs, FileName(key), []byte(value), 0644)
}

// Clean removes every cache entry, returning how many were removed
//
// Other files (such as saved search results) are left alone.
func (s *LocalStore) Clean() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := afero.ReadDir(s.fs, ".")
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, fi := range entries {
		if fi.IsDir() || filepath.Ext(fi.Name()) != Extension {
			continue
		}
		if err := s.fs.Remove(fi.Name()); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
