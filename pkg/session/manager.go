package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/goban/internal/logging"
	"github.com/aretw0/goban/pkg/domain"
	"github.com/aretw0/goban/pkg/gametree"
	"github.com/aretw0/goban/pkg/ports"
)

// DefaultLockTTL bounds how long a crashed holder can block a game.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates access to stored games.
// It uses reference counting to garbage collect unused locks.
type Manager struct {
	store ports.GameStore

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker  ports.DistributedLocker
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the expiry of distributed locks.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a new Manager over the given store.
func NewManager(store ports.GameStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller must lock entry.mu, and call release(gameID) after unlocking.
func (m *Manager) acquire(gameID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[gameID]
	if !exists {
		entry = &lockEntry{}
		m.locks[gameID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry at zero.
func (m *Manager) release(gameID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[gameID]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, gameID)
	}
}

// Load retrieves a stored game.
func (m *Manager) Load(ctx context.Context, gameID string) (*gametree.Tree, error) {
	var tree *gametree.Tree
	err := m.WithLock(ctx, gameID, func(ctx context.Context) error {
		var err error
		tree, err = m.store.Load(ctx, gameID)
		return err
	})
	return tree, err
}

// LoadOrCreate loads a game, or builds it with create and stores it when the
// ID is unknown. Concurrent callers for the same ID see a single creation.
func (m *Manager) LoadOrCreate(ctx context.Context, gameID string, create func() (*gametree.Tree, error)) (*gametree.Tree, error) {
	var tree *gametree.Tree
	err := m.WithLock(ctx, gameID, func(ctx context.Context) error {
		var err error
		tree, err = m.store.Load(ctx, gameID)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrGameNotFound) {
			return fmt.Errorf("failed to check game existence: %w", err)
		}

		tree, err = create()
		if err != nil {
			return err
		}
		if err := m.store.Save(ctx, gameID, tree); err != nil {
			return fmt.Errorf("failed to initialize game: %w", err)
		}
		m.logger.Debug("Game created", "game_id", gameID)
		return nil
	})
	return tree, err
}

// Update loads a game, applies fn and saves the result, all under the game's
// lock. Nothing is saved when fn returns an error.
func (m *Manager) Update(ctx context.Context, gameID string, fn func(*gametree.Tree) error) (*gametree.Tree, error) {
	var tree *gametree.Tree
	err := m.WithLock(ctx, gameID, func(ctx context.Context) error {
		var err error
		tree, err = m.store.Load(ctx, gameID)
		if err != nil {
			return err
		}
		if err := fn(tree); err != nil {
			return err
		}
		return m.store.Save(ctx, gameID, tree)
	})
	return tree, err
}

// Save persists a game.
func (m *Manager) Save(ctx context.Context, gameID string, tree *gametree.Tree) error {
	return m.WithLock(ctx, gameID, func(ctx context.Context) error {
		return m.store.Save(ctx, gameID, tree)
	})
}

// Delete removes a game from the store.
func (m *Manager) Delete(ctx context.Context, gameID string) error {
	return m.WithLock(ctx, gameID, func(ctx context.Context) error {
		return m.store.Delete(ctx, gameID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying game store.
func (m *Manager) Store() ports.GameStore {
	return m.store
}

// WithLock executes fn while holding the lock for the game.
func (m *Manager) WithLock(ctx context.Context, gameID string, fn func(context.Context) error) error {
	entry := m.acquire(gameID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(gameID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, gameID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"game_id", gameID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
