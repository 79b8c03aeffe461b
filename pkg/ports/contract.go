package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/goban/pkg/domain"
	"github.com/aretw0/goban/pkg/gametree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunGameStoreContract runs a suite of tests to verify that a GameStore
// implementation adheres to the interface contract.
func RunGameStoreContract(t *testing.T, store GameStore) {
	ctx := context.Background()
	gameID := "contract-game-" + time.Now().Format("20060102150405")

	sample := func(t *testing.T) *gametree.Tree {
		t.Helper()
		tree, err := gametree.New(9, domain.Japanese())
		require.NoError(t, err)
		first, _, err := tree.AppendMove(tree.Root().ID(), domain.PlayAt(domain.Black, domain.C(2, 2)))
		require.NoError(t, err)
		_, _, err = tree.AppendMove(first.ID(), domain.PlayAt(domain.White, domain.C(6, 6)))
		require.NoError(t, err)
		_, _, err = tree.AppendMove(first.ID(), domain.PlayAt(domain.White, domain.C(2, 6)))
		require.NoError(t, err)
		require.NoError(t, tree.SetComment(first.ID(), "opening"))
		return tree
	}

	t.Run("Save and Load", func(t *testing.T) {
		tree := sample(t)
		require.NoError(t, store.Save(ctx, gameID, tree), "Save should not return error")

		loaded, err := store.Load(ctx, gameID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, tree.Size(), loaded.Size())
		assert.Equal(t, tree.Ruleset(), loaded.Ruleset())
		assert.Equal(t, tree.Len(), loaded.Len())

		line := loaded.MainLine()
		require.Len(t, line, 3)
		assert.Equal(t, "opening", line[1].Comment())
		assert.True(t, tree.MainLine()[2].Board().Equal(line[2].Board()))
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+gameID)
		assert.ErrorIs(t, err, domain.ErrGameNotFound)
	})

	t.Run("Overwrite", func(t *testing.T) {
		tree := sample(t)
		line := tree.MainLine()
		require.NoError(t, tree.SetResult(line[len(line)-1].ID(), "W+R"))
		require.NoError(t, store.Save(ctx, gameID, tree))

		loaded, err := store.Load(ctx, gameID)
		require.NoError(t, err)
		assert.Equal(t, "W+R", loaded.Result())
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, gameID, sample(t)))

		require.NoError(t, store.Delete(ctx, gameID), "Delete should not return error")

		_, err := store.Load(ctx, gameID)
		assert.ErrorIs(t, err, domain.ErrGameNotFound, "Load after Delete should return ErrGameNotFound")
		assert.NoError(t, store.Delete(ctx, gameID), "Delete of a missing game is a no-op")
	})

	t.Run("List", func(t *testing.T) {
		id1 := gameID + "-1"
		id2 := gameID + "-2"
		require.NoError(t, store.Save(ctx, id1, sample(t)))
		require.NoError(t, store.Save(ctx, id2, sample(t)))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		games, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, games, id1)
		assert.Contains(t, games, id2)
	})
}
