package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/goban/pkg/adapters/memory"
	"github.com/aretw0/goban/pkg/domain"
	"github.com/aretw0/goban/pkg/gametree"
	"github.com/aretw0/goban/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunGameStoreContract(t, store)
}

func TestMemoryStore_Isolation(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	tree, err := gametree.New(9, domain.DefaultRuleset())
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "g1", tree))

	// Mutating the caller's tree after Save must not leak into the store.
	_, _, err = tree.AppendMove(tree.Root().ID(), domain.PlayAt(domain.Black, domain.C(4, 4)))
	require.NoError(t, err)

	loaded, err := store.Load(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Len())
}
