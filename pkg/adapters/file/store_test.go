package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/goban/pkg/adapters/file"
	"github.com/aretw0/goban/pkg/domain"
	"github.com/aretw0/goban/pkg/gametree"
	"github.com/aretw0/goban/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.GameStore = (*file.Store)(nil)

func TestFileStore_Contract(t *testing.T) {
	store := file.New(t.TempDir())
	ports.RunGameStoreContract(t, store)
}

func TestFileStore_WritesPlainSGF(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	tree, err := gametree.New(9, domain.DefaultRuleset())
	require.NoError(t, err)
	_, _, err = tree.AppendMove(tree.Root().ID(), domain.PlayAt(domain.Black, domain.C(2, 2)))
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), "g1", tree))

	data, err := os.ReadFile(filepath.Join(dir, "g1.sgf"))
	require.NoError(t, err)
	assert.Equal(t, "(;FF[4]GM[1]CA[UTF-8]SZ[9]RU[Chinese]KM[7.5];B[cc])\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files are left behind")
}

func TestFileStore_DecodesCharset(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "latin.sgf"), []byte("(;CA[ISO-8859-1]SZ[9]C[caf\xe9])"), 0644))

	tree, err := file.New(dir).Load(context.Background(), "latin")
	require.NoError(t, err)
	assert.Equal(t, "café", tree.Root().Comment())
}

func TestFileStore_ListSkipsForeignFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tmp-g1-123.sgf"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.sgf"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "game.sgf"), []byte("(;SZ[9])"), 0644))

	games, err := file.New(dir).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"game"}, games)
}

func TestFileStore_ListMissingDir(t *testing.T) {
	games, err := file.New(filepath.Join(t.TempDir(), "missing")).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestFileStore_RejectsPathIDs(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()
	tree, err := gametree.New(9, domain.DefaultRuleset())
	require.NoError(t, err)

	assert.Error(t, store.Save(ctx, "", tree))
	assert.Error(t, store.Save(ctx, "../escape", tree))
	_, err = store.Load(ctx, "a/b")
	assert.Error(t, err)
}

func TestFileStore_CorruptRecord(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.sgf"), []byte("(;B[aa"), 0644))

	_, err := file.New(dir).Load(context.Background(), "bad")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrGameNotFound)
}
