// Package player defines the playback control boundary: the Player
// interface implemented by playback backends, a process-wide manager and
// the JSON-RPC methods exposed under the "player" group.
//
// The playback engine itself (codec pipeline, output sinks) lives behind
// the Player interface and is out of scope here.
package player

import (
	"fmt"
	"sync"
)

// State is the playback state of a player.
type State int

const (
	StateNone State = iota
	StateStopped
	StatePaused
	StatePlaying
	StateError
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StatePaused:
		return "paused"
	case StatePlaying:
		return "playing"
	case StateError:
		return "error"
	}
	return "none"
}

// ParseState converts a state name to a State.
func ParseState(s string) (State, bool) {
	switch s {
	case "none":
		return StateNone, true
	case "stopped":
		return StateStopped, true
	case "paused":
		return StatePaused, true
	case "playing":
		return StatePlaying, true
	case "error":
		return StateError, true
	}
	return StateNone, false
}

// Status is a snapshot of a player's playback state.
type Status struct {
	State    State
	Name     string
	Pos      int
	Duration int
	// Error holds the failure description when State is StateError.
	Error string
}

// Player is implemented by playback backends.
type Player interface {
	// ID returns the unique player id used in JSON-RPC calls.
	ID() string
	// Name returns the display name.
	Name() string
	// Status returns a snapshot of the current playback state.
	Status() Status
	// SetState requests a state change and returns the state actually
	// reached.
	SetState(state State) (State, error)
	// SetPos seeks to pos (seconds) and returns the position actually
	// reached.
	SetPos(pos int) (int, error)
}

// Manager is a thread-safe table of registered players.
type Manager struct {
	mu      sync.RWMutex
	players map[string]Player
	order   []string
}

// NewManager creates an empty player manager.
func NewManager() *Manager {
	return &Manager{players: make(map[string]Player)}
}

// Register adds a player. It fails if the id is already taken.
func (m *Manager) Register(p Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := p.ID()
	if _, exists := m.players[id]; exists {
		return fmt.Errorf("player: id %q already registered", id)
	}
	m.players[id] = p
	m.order = append(m.order, id)
	return nil
}

// Unregister removes a player by id. Unknown ids are ignored.
func (m *Manager) Unregister(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.players[id]; !exists {
		return
	}
	delete(m.players, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Get returns the player registered under id.
func (m *Manager) Get(id string) (Player, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.players[id]
	return p, ok
}

// IDs returns all registered player ids in registration order.
func (m *Manager) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]string(nil), m.order...)
}
