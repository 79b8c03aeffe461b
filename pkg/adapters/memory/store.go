package memory

import (
	"context"
	"sync"

	"github.com/aretw0/goban/pkg/domain"
	"github.com/aretw0/goban/pkg/gametree"
	"github.com/aretw0/goban/pkg/sgf"
)

// Store implements ports.GameStore in memory.
// Trees are kept as SGF text, so callers never share a tree with the store.
// Safe for concurrent use.
type Store struct {
	data map[string]string
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]string),
	}
}

// Save serializes the tree and keeps it in memory.
func (s *Store) Save(ctx context.Context, gameID string, tree *gametree.Tree) error {
	text := sgf.Serialize(tree)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[gameID] = text
	return nil
}

// Load parses a fresh tree from the stored record.
func (s *Store) Load(ctx context.Context, gameID string) (*gametree.Tree, error) {
	s.mu.RLock()
	text, ok := s.data[gameID]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrGameNotFound
	}
	return sgf.ParseOne(text)
}

// Delete removes the game.
func (s *Store) Delete(ctx context.Context, gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, gameID)
	return nil
}

// List returns the stored game IDs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	games := make([]string, 0, len(s.data))
	for id := range s.data {
		games = append(games, id)
	}
	return games, nil
}
