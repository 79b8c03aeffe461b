// Package config reads the goban configuration file.
//
// The file is YAML (goban.yaml) or JSON (goban.json). Keys the file omits keep
// their defaults, and unknown keys are rejected so typos surface early.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/aretw0/goban"
	"github.com/aretw0/goban/pkg/board"
	"github.com/aretw0/goban/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for a configuration file.
const DefaultPath = "goban.yaml"

// Config is the resolved configuration.
type Config struct {
	BoardSize int          `mapstructure:"board_size" json:"board_size"`
	Ruleset   string       `mapstructure:"ruleset" json:"ruleset"`
	Komi      *float64     `mapstructure:"komi" json:"komi,omitempty"`
	Rules     RulesConfig  `mapstructure:"rules" json:"rules"`
	Store     StoreConfig  `mapstructure:"store" json:"store"`
	Lock      LockConfig   `mapstructure:"lock" json:"lock"`
	Log       LogConfig    `mapstructure:"log" json:"log"`
	Server    ServerConfig `mapstructure:"server" json:"server"`
}

// RulesConfig overrides individual fields of the named ruleset.
type RulesConfig struct {
	Suicide     *bool  `mapstructure:"suicide" json:"suicide,omitempty"`
	Ko          string `mapstructure:"ko" json:"ko,omitempty"`
	Scoring     string `mapstructure:"scoring" json:"scoring,omitempty"`
	PassesToEnd int    `mapstructure:"passes_to_end" json:"passes_to_end,omitempty"`
}

type StoreConfig struct {
	Dir string `mapstructure:"dir" json:"dir"`
}

// LockConfig enables the Redis session lock when RedisAddr is set.
type LockConfig struct {
	RedisAddr string        `mapstructure:"redis_addr" json:"redis_addr,omitempty"`
	Prefix    string        `mapstructure:"prefix" json:"prefix"`
	TTL       time.Duration `mapstructure:"ttl" json:"ttl"`
}

type LogConfig struct {
	Level string `mapstructure:"level" json:"level"`
}

type ServerConfig struct {
	Port int `mapstructure:"port" json:"port"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		BoardSize: 19,
		Ruleset:   domain.DefaultRuleset().Name,
		Store:     StoreConfig{Dir: filepath.Join(".goban", "games")},
		Lock:      LockConfig{Prefix: "goban:", TTL: 30 * time.Second},
		Log:       LogConfig{Level: "info"},
		Server:    ServerConfig{Port: 8080},
	}
}

// Load reads the file at path over the defaults.
// A missing file is not an error: the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	raw := map[string]any{}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	if err := Decode(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", filepath.Base(path), err)
	}
	return cfg, cfg.Validate()
}

// Decode applies a generic map onto cfg. Scalars are weakly typed, so
// "19" and 19 are both a valid board_size, and ttl accepts "45s" or a bare
// number of seconds.
func Decode(raw map[string]any, cfg *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			secondsToDurationHook,
			mapstructure.StringToTimeDurationHookFunc(),
		),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

var durationType = reflect.TypeOf(time.Duration(0))

// secondsToDurationHook reads a bare number as seconds. Without it a YAML
// "ttl: 30" would decode as 30ns.
func secondsToDurationHook(from, to reflect.Type, data any) (any, error) {
	if to != durationType || from == durationType {
		return data, nil
	}
	v := reflect.ValueOf(data)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return time.Duration(v.Int()) * time.Second, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return time.Duration(v.Uint()) * time.Second, nil
	case reflect.Float32, reflect.Float64:
		return time.Duration(v.Float() * float64(time.Second)), nil
	}
	return data, nil
}

// Validate checks the values that cannot be caught while decoding.
func (c Config) Validate() error {
	if c.BoardSize < 1 || c.BoardSize > board.MaxSize {
		return fmt.Errorf("%w: board_size %d", domain.ErrInvalidBoardSize, c.BoardSize)
	}
	if _, err := c.GameRuleset(); err != nil {
		return err
	}
	if c.Lock.TTL < 0 {
		return errors.New("lock.ttl must not be negative")
	}
	return nil
}

// GameRuleset resolves the named ruleset, then applies the rules and komi
// overrides. An overridden ruleset loses its name so that SGF RU records the
// actual rules.
func (c Config) GameRuleset() (domain.Ruleset, error) {
	rs, err := domain.ParseRuleset(c.Ruleset)
	if err != nil {
		return domain.Ruleset{}, err
	}

	overridden := false
	if c.Rules.Suicide != nil {
		rs.SuicideAllowed = *c.Rules.Suicide
		overridden = true
	}
	if c.Rules.Ko != "" {
		if rs.Ko, err = domain.ParseKoRule(c.Rules.Ko); err != nil {
			return domain.Ruleset{}, err
		}
		overridden = true
	}
	if c.Rules.Scoring != "" {
		if rs.Scoring, err = domain.ParseScoringRule(c.Rules.Scoring); err != nil {
			return domain.Ruleset{}, err
		}
		overridden = true
	}
	if c.Rules.PassesToEnd > 0 {
		rs.PassesToEnd = c.Rules.PassesToEnd
		overridden = true
	}
	if overridden {
		rs.Name = ""
	}
	if c.Komi != nil {
		rs.Komi = *c.Komi
	}
	return rs, nil
}

// GameOptions returns the options every new or loaded game should use.
func (c Config) GameOptions() ([]goban.Option, error) {
	rs, err := c.GameRuleset()
	if err != nil {
		return nil, err
	}
	return []goban.Option{goban.WithRuleset(rs)}, nil
}
