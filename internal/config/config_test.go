package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/goban/internal/config"
	"github.com/aretw0/goban/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "goban.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	rs, err := cfg.GameRuleset()
	require.NoError(t, err)
	assert.Equal(t, domain.Chinese(), rs)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "goban.yaml", `
board_size: 13
ruleset: Japanese
komi: 0.5
store:
  dir: /tmp/games
lock:
  redis_addr: localhost:6379
  ttl: 45s
log:
  level: debug
server:
  port: "9090"
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 13, cfg.BoardSize)
	assert.Equal(t, "/tmp/games", cfg.Store.Dir)
	assert.Equal(t, "localhost:6379", cfg.Lock.RedisAddr)
	assert.Equal(t, "goban:", cfg.Lock.Prefix, "unset keys keep their defaults")
	assert.Equal(t, 45*time.Second, cfg.Lock.TTL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 9090, cfg.Server.Port)

	rs, err := cfg.GameRuleset()
	require.NoError(t, err)
	assert.Equal(t, "Japanese", rs.Name)
	assert.Equal(t, domain.ScoringTerritory, rs.Scoring)
	assert.Equal(t, 0.5, rs.Komi)
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "goban.json", `{"board_size": 9, "rules": {"ko": "superko", "suicide": true, "passes_to_end": 3}}`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.BoardSize)

	rs, err := cfg.GameRuleset()
	require.NoError(t, err)
	assert.Empty(t, rs.Name, "overrides drop the preset name")
	assert.Equal(t, domain.KoPositionalSuperko, rs.Ko)
	assert.True(t, rs.SuicideAllowed)
	assert.Equal(t, 3, rs.PassesToEnd)
	assert.Equal(t, domain.ScoringArea, rs.Scoring)
	assert.Equal(t, "area,superko,suicide,passes=3", rs.String())

	opts, err := cfg.GameOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 1)
}

func TestLoad_BareTTLIsSeconds(t *testing.T) {
	cfg, err := config.Load(writeFile(t, "goban.yaml", "lock:\n  ttl: 30\n"))
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Lock.TTL)

	cfg, err = config.Load(writeFile(t, "goban.json", `{"lock": {"ttl": 1.5}}`))
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, cfg.Lock.TTL)

	_, err = config.Load(writeFile(t, "goban.yaml", "lock:\n  ttl: -5\n"))
	assert.Error(t, err)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "bord_size: 9\n"},
		{"bad size", "board_size: 60\n"},
		{"bad ko", "rules:\n  ko: sometimes\n"},
		{"bad ttl", "lock:\n  ttl: soon\n"},
		{"bad yaml", "board_size: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeFile(t, "goban.yaml", tt.content))
			assert.Error(t, err)
		})
	}

	_, err := config.Load(writeFile(t, "goban.yaml", "board_size: 0\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidBoardSize)
}
