// Package playlist defines the playlist boundary: the Playlist interface,
// a manager and the JSON-RPC methods exposed under the "playlist" group.
package playlist

import (
	"fmt"
	"sync"
)

// Entry is one media of a playlist.
type Entry struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	// Current marks the entry being played.
	Current bool `json:"current"`
}

// Playlist is implemented by playlist backends.
type Playlist interface {
	// ID returns the unique playlist id used in JSON-RPC calls.
	ID() string
	// List returns the playlist entries in play order.
	List() []Entry
	// Play starts playback of the named entry.
	Play(name string) error
	// Remove removes the named entry.
	Remove(name string) error
}

// Manager is a thread-safe table of registered playlists.
type Manager struct {
	mu        sync.RWMutex
	playlists map[string]Playlist
	order     []string
}

// NewManager creates an empty playlist manager.
func NewManager() *Manager {
	return &Manager{playlists: make(map[string]Playlist)}
}

// Register adds a playlist. It fails if the id is already taken.
func (m *Manager) Register(p Playlist) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := p.ID()
	if _, exists := m.playlists[id]; exists {
		return fmt.Errorf("playlist: id %q already registered", id)
	}
	m.playlists[id] = p
	m.order = append(m.order, id)
	return nil
}

// Unregister removes a playlist by id. Unknown ids are ignored.
func (m *Manager) Unregister(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.playlists[id]; !exists {
		return
	}
	delete(m.playlists, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Get returns the playlist registered under id.
func (m *Manager) Get(id string) (Playlist, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.playlists[id]
	return p, ok
}

// IDs returns all registered playlist ids in registration order.
func (m *Manager) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]string(nil), m.order...)
}
