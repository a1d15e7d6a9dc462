// Package viewmodel holds presentation-facing state over the core services:
// a loading flag, the last error message and, for listings, the active
// filter and sort criteria. Every operation clears the error, runs, captures
// the failure message and returns the same error to the caller.
package viewmodel

import (
	"sync"

	"github.com/driveway/rental-system/internal/core/domain"
)

type state struct {
	mu      sync.RWMutex
	loading bool
	message string
}

func (s *state) begin() {
	s.mu.Lock()
	s.loading = true
	s.message = ""
	s.mu.Unlock()
}

// end clears loading and records err's message, then hands err back.
func (s *state) end(err error) error {
	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.message = err.Error()
	}
	s.mu.Unlock()
	return err
}

// fail records err without touching the loading flag.
func (s *state) fail(err error) error {
	s.mu.Lock()
	s.message = err.Error()
	s.mu.Unlock()
	return err
}

func (s *state) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// ErrorMessage is the last failure, or "" after a successful operation.
func (s *state) ErrorMessage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.message
}

// SessionProvider exposes the caller identity to view-models that act on its behalf.
type SessionProvider interface {
	Session() *domain.AuthSession
}
