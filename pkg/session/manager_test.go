package session_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/goban/pkg/adapters/memory"
	"github.com/aretw0/goban/pkg/domain"
	"github.com/aretw0/goban/pkg/gametree"
	"github.com/aretw0/goban/pkg/ports"
	"github.com/aretw0/goban/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slowStore adds latency so that unserialized read-modify-write cycles lose updates.
type slowStore struct {
	*memory.Store
}

func (s slowStore) Load(ctx context.Context, id string) (*gametree.Tree, error) {
	time.Sleep(5 * time.Millisecond)
	return s.Store.Load(ctx, id)
}

func newTree() (*gametree.Tree, error) {
	return gametree.New(9, domain.DefaultRuleset())
}

func TestManager_UpdateSerializesWriters(t *testing.T) {
	mgr := session.NewManager(slowStore{memory.NewStore()})
	ctx := context.Background()
	_, err := mgr.LoadOrCreate(ctx, "race", newTree)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 9; i++ {
		wg.Add(1)
		go func(col int) {
			defer wg.Done()
			_, err := mgr.Update(ctx, "race", func(tree *gametree.Tree) error {
				line := tree.MainLine()
				last := line[len(line)-1]
				player := domain.Black
				if len(line)%2 == 0 {
					player = domain.White
				}
				_, _, err := tree.AppendMove(last.ID(), domain.PlayAt(player, domain.C(0, col)))
				return err
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	tree, err := mgr.Load(ctx, "race")
	require.NoError(t, err)
	assert.Len(t, tree.MainLine(), 10, "every update must be kept")
}

func TestManager_UpdateErrorDoesNotSave(t *testing.T) {
	mgr := session.NewManager(memory.NewStore())
	ctx := context.Background()
	_, err := mgr.LoadOrCreate(ctx, "g", newTree)
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = mgr.Update(ctx, "g", func(tree *gametree.Tree) error {
		_, _, _ = tree.AppendMove(tree.Root().ID(), domain.PlayAt(domain.Black, domain.C(0, 0)))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	tree, err := mgr.Load(ctx, "g")
	require.NoError(t, err)
	assert.Equal(t, 1, tree.Len())

	_, err = mgr.Update(ctx, "missing", func(*gametree.Tree) error { return nil })
	assert.ErrorIs(t, err, domain.ErrGameNotFound)
}

func TestManager_LoadOrCreateOnce(t *testing.T) {
	mgr := session.NewManager(slowStore{memory.NewStore()})
	ctx := context.Background()
	var created atomic.Int32

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tree, err := mgr.LoadOrCreate(ctx, "once", func() (*gametree.Tree, error) {
				created.Add(1)
				return newTree()
			})
			assert.NoError(t, err)
			assert.NotNil(t, tree)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), created.Load())

	ids, err := mgr.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"once"}, ids)

	require.NoError(t, mgr.Delete(ctx, "once"))
	_, err = mgr.Load(ctx, "once")
	assert.ErrorIs(t, err, domain.ErrGameNotFound)
}

type recordingLocker struct {
	mu    sync.Mutex
	keys  []string
	ttls  []time.Duration
	fails bool
}

func (l *recordingLocker) Lock(_ context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	if l.fails {
		return nil, errors.New("unavailable")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.keys = append(l.keys, key)
	l.ttls = append(l.ttls, ttl)
	return func(context.Context) error { return nil }, nil
}

func TestManager_DistributedLocker(t *testing.T) {
	locker := &recordingLocker{}
	mgr := session.NewManager(memory.NewStore(), session.WithLocker(locker), session.WithLockTTL(time.Minute))
	ctx := context.Background()

	_, err := mgr.LoadOrCreate(ctx, "dist", newTree)
	require.NoError(t, err)
	assert.Equal(t, []string{"dist"}, locker.keys)
	assert.Equal(t, []time.Duration{time.Minute}, locker.ttls)

	locker.fails = true
	_, err = mgr.Load(ctx, "dist")
	assert.ErrorContains(t, err, "distributed lock")
}
