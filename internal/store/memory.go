// internal/store/memory.go
//
// Game storage. Neither backend is durable: every game is lost when the
// process restarts.
//
// Backends:
//   - memory (this file): map keyed by game id behind one RWMutex.
//   - sqlite (sqlite.go): SQLite in shared-cache in-memory mode by default.
//
// Concurrency:
//   - Single coarse lock; readers share, writers (Save, AddScore) exclude.
//   - Get returns a copy so callers never observe a concurrent AddScore.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/geoguess/internal/game"
)

// ErrNotFound is returned for unknown game ids.
var ErrNotFound = errors.New("game not found")

// Store defines the persistence interface for games.
type Store interface {
	// Save persists or replaces a game.
	Save(ctx context.Context, g *game.Game) error

	// Get retrieves a game by id, or ErrNotFound.
	Get(ctx context.Context, id string) (*game.Game, error)

	// AddScore appends a score to a game's list, or returns ErrNotFound.
	AddScore(ctx context.Context, id string, s game.Score) error

	// Close releases backend resources.
	Close() error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex          // guards games
	games map[string]*game.Game // keyed by Game.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]*game.Game)}
}

func (m *memory) Save(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = clone(g)
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.games[id]; ok {
		return clone(g), nil
	}
	return nil, ErrNotFound
}

func (m *memory) AddScore(ctx context.Context, id string, s game.Score) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[id]
	if !ok {
		return ErrNotFound
	}
	g.Scores = append(g.Scores, s)
	return nil
}

func (m *memory) Close() error { return nil }

func clone(g *game.Game) *game.Game {
	c := *g
	c.Rounds = append([]game.Challenge(nil), g.Rounds...)
	c.Scores = append([]game.Score{}, g.Scores...)
	return &c
}
