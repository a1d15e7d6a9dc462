// Package memory provides an in-process key-value backend for tests and
// throwaway runs.
package memory

import (
	"context"
	"sync"

	"github.com/driveway/rental-system/internal/core/ports"
)

var _ ports.KeyValueStore = (*Store)(nil)

// Store keeps values in a map guarded by a single mutex.
type Store struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewStore() *Store {
	return &Store{data: make(map[string][]byte)}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return clone(v), true, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = clone(value)
	return nil
}

func (s *Store) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}

// Update holds the lock for the whole read-modify-write, so fn runs exactly once.
func (s *Store) Update(_ context.Context, key string, fn ports.UpdateFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, found := s.data[key]
	next, err := fn(clone(current), found)
	if err != nil {
		return err
	}
	s.data[key] = clone(next)
	return nil
}

func (s *Store) Ping(context.Context) error { return nil }

// Len reports how many keys are stored.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
