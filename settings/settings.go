// Package settings provides the persisted configuration store behind the
// "config" JSON-RPC group. Values are grouped by subsystem and snapshotted
// to disk as CBOR.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// Store is a thread-safe, grouped key/value store with an on-disk CBOR
// snapshot. A Store with an empty path keeps everything in memory.
type Store struct {
	mu     sync.RWMutex
	path   string
	groups map[string]map[string]any
}

// NewStore creates a store persisting to path. The file is not touched
// until the first Load or Save.
func NewStore(path string) *Store {
	return &Store{
		path:   path,
		groups: make(map[string]map[string]any),
	}
}

// Load replaces the store content with the on-disk snapshot. A missing
// file leaves the store empty and is not an error.
func (s *Store) Load() error {
	if s.path == "" {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("settings: read %s: %w", s.path, err)
	}

	groups := make(map[string]map[string]any)
	if err := cbor.Unmarshal(data, &groups); err != nil {
		return fmt.Errorf("settings: decode %s: %w", s.path, err)
	}

	s.mu.Lock()
	s.groups = groups
	s.mu.Unlock()
	return nil
}

// Save writes the current content to disk. The snapshot is written to a
// temporary file first and moved into place, so a crash never leaves a
// half-written snapshot behind.
func (s *Store) Save() error {
	if s.path == "" {
		return nil
	}

	s.mu.RLock()
	data, err := cbor.Marshal(s.groups)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("settings: encode: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("settings: create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".settings-*")
	if err != nil {
		return fmt.Errorf("settings: write %s: %w", s.path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("settings: write %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("settings: write %s: %w", s.path, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("settings: write %s: %w", s.path, err)
	}
	return nil
}

// Get returns a copy of the named group. The second return is false when
// the group does not exist.
func (s *Store) Get(group string) (map[string]any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.groups[group]
	if !ok {
		return nil, false
	}
	out := make(map[string]any, len(g))
	for k, v := range g {
		out[k] = v
	}
	return out, true
}

// Set merges values into the named group, creating it as needed.
func (s *Store) Set(group string, values map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.groups[group]
	if !ok {
		g = make(map[string]any, len(values))
		s.groups[group] = g
	}
	for k, v := range values {
		g[k] = v
	}
}

// Reset removes the named group. Unknown groups are ignored.
func (s *Store) Reset(group string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.groups, group)
}

// Groups returns the existing group names.
func (s *Store) Groups() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.groups))
	for name := range s.groups {
		names = append(names, name)
	}
	return names
}
