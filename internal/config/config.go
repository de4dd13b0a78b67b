package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"

	"github.com/five82/vocab/internal/ready"
)

// Store backends.
const (
	BackendSQLite = "sqlite"
	BackendTOML   = "toml"
	BackendMemory = "memory"
)

// Log formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

const (
	defaultConfigPath          = "~/.config/vocab/config.toml"
	defaultDataDir             = "~/.local/share/vocab"
	defaultMinInteractionDelay = 2 * time.Second
	defaultDebounceWindow      = 250 * time.Millisecond
	defaultLogLevel            = "info"
)

// Config is the resolved vocab configuration.
type Config struct {
	SettleDelay         time.Duration
	MinInteractionDelay time.Duration
	DebounceWindow      time.Duration
	Store               StoreConfig
	Log                 LogConfig
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	Backend string
	Path    string // empty for the memory backend
}

// LogConfig controls the zerolog sink.
type LogConfig struct {
	Level  string
	Format string
	File   string
}

type rawConfig struct {
	SettleDelay         string `toml:"settle_delay"`
	MinInteractionDelay string `toml:"min_interaction_delay"`
	DebounceWindow      string `toml:"debounce_window"`
	Store               struct {
		Backend string `toml:"backend"`
		Path    string `toml:"path"`
	} `toml:"store"`
	Log struct {
		Level  string `toml:"level"`
		Format string `toml:"format"`
		File   string `toml:"file"`
	} `toml:"log"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	cfg := Config{
		SettleDelay:         ready.DefaultSettleDelay(runtime.GOOS),
		MinInteractionDelay: defaultMinInteractionDelay,
		DebounceWindow:      defaultDebounceWindow,
		Store:               StoreConfig{Backend: BackendSQLite},
		Log: LogConfig{
			Level:  defaultLogLevel,
			Format: FormatJSON,
			File:   mustExpand(defaultDataDir + "/vocab.log"),
		},
	}
	cfg.Store.Path = DefaultStorePath(cfg.Store.Backend)
	return cfg
}

// Load locates and parses the vocab config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := applyDuration(&cfg.SettleDelay, "settle_delay", raw.SettleDelay); err != nil {
		return Config{}, err
	}
	if err := applyDuration(&cfg.MinInteractionDelay, "min_interaction_delay", raw.MinInteractionDelay); err != nil {
		return Config{}, err
	}
	if err := applyDuration(&cfg.DebounceWindow, "debounce_window", raw.DebounceWindow); err != nil {
		return Config{}, err
	}

	if backend := strings.ToLower(strings.TrimSpace(raw.Store.Backend)); backend != "" {
		cfg.Store.Backend = backend
	}
	cfg.Store.Path = DefaultStorePath(cfg.Store.Backend)
	if p := strings.TrimSpace(raw.Store.Path); p != "" {
		cfg.Store.Path = mustExpand(p)
	}

	if level := strings.ToLower(strings.TrimSpace(raw.Log.Level)); level != "" {
		cfg.Log.Level = level
	}
	if format := strings.ToLower(strings.TrimSpace(raw.Log.Format)); format != "" {
		cfg.Log.Format = format
	}
	if f := strings.TrimSpace(raw.Log.File); f != "" {
		cfg.Log.File = mustExpand(f)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.SettleDelay < 0:
		return fmt.Errorf("settle_delay must not be negative: %s", c.SettleDelay)
	case c.MinInteractionDelay < 0:
		return fmt.Errorf("min_interaction_delay must not be negative: %s", c.MinInteractionDelay)
	case c.DebounceWindow < 0:
		return fmt.Errorf("debounce_window must not be negative: %s", c.DebounceWindow)
	}

	switch c.Store.Backend {
	case BackendSQLite, BackendTOML:
		if strings.TrimSpace(c.Store.Path) == "" {
			return fmt.Errorf("store.path is required for backend %q", c.Store.Backend)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown store.backend %q", c.Store.Backend)
	}

	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil || c.Log.Level == "" {
		return fmt.Errorf("unknown log.level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case FormatJSON, FormatText:
	default:
		return fmt.Errorf("unknown log.format %q", c.Log.Format)
	}
	return nil
}

func applyDuration(dst *time.Duration, field, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", field, err)
	}
	*dst = d
	return nil
}

// DefaultStorePath returns the store file for backend, or "" for memory.
func DefaultStorePath(backend string) string {
	switch backend {
	case BackendSQLite:
		return mustExpand(defaultDataDir + "/vocab.db")
	case BackendTOML:
		return mustExpand(defaultDataDir + "/store.toml")
	default:
		return ""
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
