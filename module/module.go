// Package module defines the module boundary: a Module bundles the
// browsers, players and playlists one media source contributes, and the
// "module" JSON-RPC group lets clients discover what is loaded.
//
// The plugin loader that instantiates modules at runtime is out of scope;
// modules are registered programmatically.
package module

import (
	"fmt"
	"sync"
)

// Info describes a module and the component ids it contributes.
type Info struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Browsers    []string `json:"browsers,omitempty"`
	Players     []string `json:"players,omitempty"`
	Playlists   []string `json:"playlists,omitempty"`
}

// Module is implemented by media source modules (file, radio, upnp...).
type Module interface {
	// ID returns the unique module id used in JSON-RPC calls.
	ID() string
	// Info returns the module description.
	Info() Info
}

// Manager is a thread-safe table of registered modules.
type Manager struct {
	mu      sync.RWMutex
	modules map[string]Module
	order   []string
}

// NewManager creates an empty module manager.
func NewManager() *Manager {
	return &Manager{modules: make(map[string]Module)}
}

// Register adds a module. It fails if the id is already taken.
func (m *Manager) Register(mod Module) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := mod.ID()
	if _, exists := m.modules[id]; exists {
		return fmt.Errorf("module: id %q already registered", id)
	}
	m.modules[id] = mod
	m.order = append(m.order, id)
	return nil
}

// Unregister removes a module by id. Unknown ids are ignored.
func (m *Manager) Unregister(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.modules[id]; !exists {
		return
	}
	delete(m.modules, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Get returns the module registered under id.
func (m *Manager) Get(id string) (Module, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	mod, ok := m.modules[id]
	return mod, ok
}

// IDs returns all registered module ids in registration order.
func (m *Manager) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]string(nil), m.order...)
}
