// Package kv adapts any ports.KeyValueStore backend into typed collections of
// JSON records addressed by the five fixed storage keys.
package kv

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/driveway/rental-system/internal/core/ports"
)

// Fixed storage keys.
const (
	KeyUsers     = "carbooking_users"
	KeyCars      = "carbooking_cars"
	KeyBookings  = "carbooking_bookings"
	KeyAuthUser  = "carbooking_auth_user"
	KeyAuthToken = "carbooking_auth_token"
)

var allKeys = []string{KeyUsers, KeyCars, KeyBookings, KeyAuthUser, KeyAuthToken}

// Adapter serializes records to and from a raw key-value backend.
type Adapter struct {
	store     ports.KeyValueStore
	namespace string
	fixture   *Fixture
}

// NewAdapter wraps store. Keys are prefixed with namespace when it is non-empty.
// A nil fixture seeds every collection empty.
func NewAdapter(store ports.KeyValueStore, namespace string, fixture *Fixture) *Adapter {
	if fixture == nil {
		fixture = &Fixture{}
	}
	return &Adapter{store: store, namespace: namespace, fixture: fixture}
}

func (a *Adapter) key(name string) string {
	if a.namespace == "" {
		return name
	}
	return a.namespace + ":" + name
}

// Get decodes the value at key into dst and reports whether the key existed.
func (a *Adapter) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, found, err := a.store.Get(ctx, a.key(key))
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// Set encodes value and stores it at key.
func (a *Adapter) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := a.store.Set(ctx, a.key(key), raw); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (a *Adapter) Remove(ctx context.Context, key string) error {
	if err := a.store.Remove(ctx, a.key(key)); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// Clear removes every key owned by the adapter. The next access reseeds.
func (a *Adapter) Clear(ctx context.Context) error {
	for _, k := range allKeys {
		if err := a.Remove(ctx, k); err != nil {
			return err
		}
	}
	return nil
}

func (a *Adapter) Ping(ctx context.Context) error {
	return a.store.Ping(ctx)
}

// collection is an ordered list of records stored under a single key and
// initialized from the fixture on first access.
type collection[T any] struct {
	adapter *Adapter
	name    string
	seed    func() ([]T, error)
}

func (c collection[T]) load(ctx context.Context) ([]T, error) {
	var items []T
	found, err := c.adapter.Get(ctx, c.name, &items)
	if err != nil {
		return nil, err
	}
	if found {
		return items, nil
	}
	// First access: persist the seed so every later reader sees the same records.
	err = c.mutate(ctx, func(current []T) ([]T, error) {
		items = current
		return current, nil
	})
	return items, err
}

// mutate runs fn over the decoded collection inside a single atomic update.
// Errors from fn are returned unwrapped; storage errors are wrapped.
func (c collection[T]) mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	var fnErr error
	err := c.adapter.store.Update(ctx, c.adapter.key(c.name), func(current []byte, found bool) ([]byte, error) {
		var items []T
		if found {
			if err := json.Unmarshal(current, &items); err != nil {
				return nil, fmt.Errorf("decode %s: %w", c.name, err)
			}
		} else {
			seeded, err := c.seed()
			if err != nil {
				return nil, err
			}
			items = seeded
		}

		next, err := fn(items)
		if err != nil {
			fnErr = err
			return nil, err
		}
		fnErr = nil
		if next == nil {
			next = []T{}
		}
		return json.Marshal(next)
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return fmt.Errorf("update %s: %w", c.name, err)
	}
	return nil
}
