package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/goban/pkg/domain"
	"github.com/aretw0/goban/pkg/gametree"
	"github.com/aretw0/goban/pkg/sgf"
)

const ext = ".sgf"

// Store implements ports.GameStore on the local filesystem.
// Each game is one SGF file named after its ID, so the directory can be
// opened directly by any SGF editor.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".goban/games".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".goban", "games")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(gameID string) (string, error) {
	if gameID == "" {
		return "", errors.New("gameID cannot be empty")
	}
	if strings.ContainsAny(gameID, `/\`) || gameID == "." || gameID == ".." {
		return "", fmt.Errorf("invalid gameID %q", gameID)
	}
	return filepath.Join(s.BasePath, gameID+ext), nil
}

// Save writes the game record atomically: temp file, fsync, rename.
func (s *Store) Save(ctx context.Context, gameID string, tree *gametree.Tree) error {
	destPath, err := s.path(gameID)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure game directory: %w", err)
	}

	// Same directory as the destination, so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+gameID+"-*"+ext)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if err := sgf.Write(tmpFile, tree); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// os.Rename does not replace an existing file on Windows.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing game file for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to game file: %w", err)
	}
	return nil
}

// Load reads and parses the game file. Records declaring a CA charset other
// than UTF-8 are transcoded.
func (s *Store) Load(ctx context.Context, gameID string) (*gametree.Tree, error) {
	filePath, err := s.path(gameID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to read game file: %w", err)
	}

	trees, err := sgf.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("game %s: %w", gameID, err)
	}
	return trees[0], nil
}

// Delete removes the game file.
func (s *Store) Delete(ctx context.Context, gameID string) error {
	filePath, err := s.path(gameID)
	if err != nil {
		return err
	}
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete game file: %w", err)
	}
	return nil
}

// List returns the IDs of all .sgf files in the directory.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	var games []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ext || strings.HasPrefix(name, "tmp-") {
			continue
		}
		games = append(games, strings.TrimSuffix(name, ext))
	}
	return games, nil
}
