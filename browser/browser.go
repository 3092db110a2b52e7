// Package browser defines the media navigation boundary: the Browser
// interface implemented by media sources, a manager and the JSON-RPC
// methods exposed under the "browser" group.
package browser

import (
	"fmt"
	"sync"
)

// Item types returned by a listing.
const (
	ItemTypeFile      = "file"
	ItemTypeDirectory = "directory"
	ItemTypeCategory  = "category"
)

// Item is one entry of a browser listing.
type Item struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Type     string `json:"type"`
}

// Info describes a browser.
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Browser is implemented by media sources (local files, radio catalogs,
// UPnP servers).
type Browser interface {
	// ID returns the unique browser id used in JSON-RPC calls.
	ID() string
	// Info returns the browser description.
	Info() Info
	// List returns up to count items under path, starting at offset.
	// A count of 0 means no limit.
	List(path string, offset, count int) ([]Item, error)
}

// Manager is a thread-safe table of registered browsers.
type Manager struct {
	mu       sync.RWMutex
	browsers map[string]Browser
	order    []string
}

// NewManager creates an empty browser manager.
func NewManager() *Manager {
	return &Manager{browsers: make(map[string]Browser)}
}

// Register adds a browser. It fails if the id is already taken.
func (m *Manager) Register(b Browser) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := b.ID()
	if _, exists := m.browsers[id]; exists {
		return fmt.Errorf("browser: id %q already registered", id)
	}
	m.browsers[id] = b
	m.order = append(m.order, id)
	return nil
}

// Unregister removes a browser by id. Unknown ids are ignored.
func (m *Manager) Unregister(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.browsers[id]; !exists {
		return
	}
	delete(m.browsers, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Get returns the browser registered under id.
func (m *Manager) Get(id string) (Browser, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.browsers[id]
	return b, ok
}

// IDs returns all registered browser ids in registration order.
func (m *Manager) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]string(nil), m.order...)
}
