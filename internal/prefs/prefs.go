// Package prefs implements a key/value store persisted as a TOML file.
// Values live in a single [values] table, e.g. ~/.local/share/vocab/store.toml.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/vocab/internal/coalesce"
)

const defaultPrefsPath = "~/.local/share/vocab/store.toml"

// document is the on-disk layout.
type document struct {
	Values map[string]string `toml:"values"`
}

// Store is a TOML-file key/value store. Each mutation rewrites the file
// through a temporary file and rename, so a MultiSet lands all-or-nothing.
type Store struct {
	path string
	mu   sync.Mutex
}

var _ coalesce.Store = (*Store)(nil)

// DefaultPath returns the default store file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Open returns a Store for path. The file is created on first write.
func Open(path string) (*Store, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}
	return &Store{path: resolved}, nil
}

// Path returns the resolved file path.
func (s *Store) Path() string {
	return s.path
}

// Get returns the value stored under key. An unreadable or malformed file
// reads as empty.
func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return "", false, nil // Graceful degradation
	}
	v, ok := values[key]
	return v, ok, nil
}

// Set stores value under key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.MultiSet(ctx, []coalesce.Entry{{Key: key, Value: value}})
}

// MultiSet stores all entries in one file rewrite.
func (s *Store) MultiSet(_ context.Context, entries []coalesce.Entry) error {
	return s.mutate(func(values map[string]string) {
		for _, e := range entries {
			values[e.Key] = e.Value
		}
	})
}

// Remove deletes key.
func (s *Store) Remove(_ context.Context, key string) error {
	return s.mutate(func(values map[string]string) {
		delete(values, key)
	})
}

// Clear deletes every key.
func (s *Store) Clear(context.Context) error {
	return s.mutate(func(values map[string]string) {
		clear(values)
	})
}

func (s *Store) mutate(apply func(map[string]string)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		// Refuse to overwrite a file we could not parse.
		return err
	}
	apply(values)
	return s.save(values)
}

// load reads the file. A missing file is an empty store.
func (s *Store) load() (map[string]string, error) {
	values := make(map[string]string)

	file, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return values, nil
		}
		return nil, fmt.Errorf("open prefs: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read prefs: %w", err)
	}

	var doc document
	if err := toml.Unmarshal(bytes, &doc); err != nil {
		return nil, fmt.Errorf("parse prefs: %w", err)
	}
	for k, v := range doc.Values {
		values[k] = v
	}
	return values, nil
}

func (s *Store) save(values map[string]string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(document{Values: values})
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".prefs-*.toml")
	if err != nil {
		return fmt.Errorf("create temp prefs: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(bytes); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close prefs: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
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
