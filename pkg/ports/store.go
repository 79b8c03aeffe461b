package ports

import (
	"context"

	"github.com/aretw0/goban/pkg/gametree"
)

// GameStore persists whole game records. Implementations keep the record as
// SGF, so anything a tree can express survives a Save/Load cycle.
type GameStore interface {
	// Save persists the tree under the given game ID, replacing any earlier record.
	Save(ctx context.Context, gameID string, tree *gametree.Tree) error

	// Load retrieves the tree for a game ID.
	// Returns domain.ErrGameNotFound if the game does not exist.
	Load(ctx context.Context, gameID string) (*gametree.Tree, error)

	// Delete removes the game. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, gameID string) error

	// List returns the IDs of all stored games.
	List(ctx context.Context) ([]string, error)
}
