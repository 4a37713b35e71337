package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

type Backend string

const (
	BackendJSON   Backend = "json"
	BackendSQLite Backend = "sqlite"
)

type Config struct {
	Store   StoreConfig   `toml:"store"`
	Search  SearchConfig  `toml:"search"`
	Keys    KeyConfig     `toml:"keys"`
	Logging LoggingConfig `toml:"logging"`
}

type StoreConfig struct {
	Backend  Backend `toml:"backend"`
	Path     string  `toml:"path"`
	Autosave bool    `toml:"autosave"`
}

type SearchConfig struct {
	ShortQueryLen    int `toml:"short_query_len"`
	ShortMaxDistance int `toml:"short_max_distance"`
	LongMaxDistance  int `toml:"long_max_distance"`
}

type KeyConfig struct {
	Undo string `toml:"undo"`
	Redo string `toml:"redo"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

func Default(storePath string) Config {
	return Config{
		Store: StoreConfig{
			Backend:  BackendJSON,
			Path:     storePath,
			Autosave: false,
		},
		Search: SearchConfig{
			ShortQueryLen:    3,
			ShortMaxDistance: 1,
			LongMaxDistance:  2,
		},
		Keys: KeyConfig{
			Undo: "u",
			Redo: "ctrl+r",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("invalid store.backend: %q", c.Store.Backend)
	}

	if strings.TrimSpace(c.Store.Path) == "" {
		return errors.New("store path is required")
	}

	if c.Search.ShortQueryLen < 1 {
		return errors.New("search.short_query_len must be >= 1")
	}
	if c.Search.ShortMaxDistance < 0 {
		return errors.New("search.short_max_distance must be >= 0")
	}
	if c.Search.LongMaxDistance < 0 {
		return errors.New("search.long_max_distance must be >= 0")
	}

	if strings.TrimSpace(c.Keys.Undo) == "" {
		return errors.New("keys.undo is required")
	}
	if strings.TrimSpace(c.Keys.Redo) == "" {
		return errors.New("keys.redo is required")
	}
	if c.Keys.Undo == c.Keys.Redo {
		return fmt.Errorf("keys.undo and keys.redo are both %q", c.Keys.Undo)
	}

	switch strings.TrimSpace(strings.ToLower(c.Logging.Level)) {
	case "debug", "info", "warn", "error", "fatal":
	default:
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}

	return nil
}

func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
