package kv

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/driveway/rental-system/internal/core/domain"
)

//go:embed fixtures/seed.json
var defaultSeed []byte

// Fixture is the bundled dataset each collection starts from when its key is absent.
type Fixture struct {
	users    json.RawMessage
	cars     json.RawMessage
	bookings json.RawMessage
}

type fixtureFile struct {
	Users    []domain.User   `json:"users"`
	Cars     json.RawMessage `json:"cars"`
	Bookings json.RawMessage `json:"bookings"`
}

// PasswordHasher turns a fixture credential into its stored form.
type PasswordHasher func(plain string) (string, error)

// DefaultFixture parses the embedded dataset.
func DefaultFixture(hash PasswordHasher) (*Fixture, error) {
	return ParseFixture(defaultSeed, hash)
}

// LoadFixture reads a dataset from path, falling back to the embedded one when
// path is empty.
func LoadFixture(path string, hash PasswordHasher) (*Fixture, error) {
	if path == "" {
		return DefaultFixture(hash)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return ParseFixture(raw, hash)
}

// ParseFixture decodes raw and hashes plaintext user credentials once, so that
// seeding later is a cheap decode.
func ParseFixture(raw []byte, hash PasswordHasher) (*Fixture, error) {
	var f fixtureFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}

	if hash != nil {
		for i := range f.Users {
			if strings.HasPrefix(f.Users[i].PasswordHash, "$2") {
				continue
			}
			hashed, err := hash(f.Users[i].PasswordHash)
			if err != nil {
				return nil, fmt.Errorf("hash fixture user %s: %w", f.Users[i].Email, err)
			}
			f.Users[i].PasswordHash = hashed
		}
	}

	users, err := json.Marshal(f.Users)
	if err != nil {
		return nil, fmt.Errorf("encode fixture users: %w", err)
	}
	return &Fixture{users: users, cars: f.Cars, bookings: f.Bookings}, nil
}

func decodeSeed[T any](raw json.RawMessage) ([]T, error) {
	items := []T{}
	if len(raw) == 0 || string(raw) == "null" {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return items, nil
}
