package ports

import "context"

// UpdateFunc computes the next value of a key from its current one. It may be
// invoked more than once when a backend retries an optimistic write, so it must
// not have side effects. Returning an error aborts the update without writing.
type UpdateFunc func(current []byte, found bool) ([]byte, error)

// KeyValueStore is the persistence boundary: a string-keyed store of serialized values.
type KeyValueStore interface {
	// Get returns the raw value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	// Remove deletes the key; removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
	// Update atomically replaces the value of key with the result of fn, so that
	// concurrent writers of the same key never lose each other's changes.
	Update(ctx context.Context, key string, fn UpdateFunc) error
	Ping(ctx context.Context) error
}
