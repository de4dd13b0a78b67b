package state

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/five82/vocab/internal/coalesce"
)

// Snapshot is a point-in-time copy of the store.
type Snapshot struct {
	Values      map[string]string
	LastUpdated time.Time
	Writes      int // number of mutating calls, MultiSet counts once
}

// Store is an in-memory key/value store. The zero value is ready to use.
type Store struct {
	mu      sync.RWMutex
	values  map[string]string
	updated time.Time
	writes  int
}

var _ coalesce.Store = (*Store)(nil)

// Get returns the value stored under key.
func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

// Set stores value under key.
func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLocked()
	s.values[key] = value
	s.touchLocked()
	return nil
}

// MultiSet stores all entries under one lock.
func (s *Store) MultiSet(_ context.Context, entries []coalesce.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLocked()
	for _, e := range entries {
		s.values[e.Key] = e.Value
	}
	s.touchLocked()
	return nil
}

// Remove deletes key.
func (s *Store) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	s.touchLocked()
	return nil
}

// Clear deletes every key.
func (s *Store) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = nil
	s.touchLocked()
	return nil
}

// Snapshot returns a copy of the current contents.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Values:      cloneValues(s.values),
		LastUpdated: s.updated,
		Writes:      s.writes,
	}
}

func (s *Store) ensureLocked() {
	if s.values == nil {
		s.values = make(map[string]string)
	}
}

func (s *Store) touchLocked() {
	s.updated = time.Now()
	s.writes++
}

func cloneValues(values map[string]string) map[string]string {
	if len(values) == 0 {
		return nil
	}
	return maps.Clone(values)
}
