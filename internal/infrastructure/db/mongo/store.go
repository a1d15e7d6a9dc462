package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/driveway/rental-system/internal/core/ports"
)

const (
	collectionKV      = "kv_store"
	maxUpdateAttempts = 10
)

var _ ports.KeyValueStore = (*Store)(nil)

// ErrContention is returned when Update keeps losing the version race.
var ErrContention = errors.New("mongo: too much contention on key")

// kvDocument holds one serialized value. Version increases on every write made
// through Update and guards the compare-and-swap.
type kvDocument struct {
	Key     string `bson:"_id"`
	Value   string `bson:"value"`
	Version int64  `bson:"version"`
}

// Store is a key-value backend over a single MongoDB collection.
type Store struct {
	col *mongo.Collection
}

func NewStore(db *mongo.Database) *Store {
	return &Store{col: db.Collection(collectionKV)}
}

func (s *Store) find(ctx context.Context, key string) (*kvDocument, error) {
	var doc kvDocument
	err := s.col.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find %s: %w", key, err)
	}
	return &doc, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := s.find(ctx, key)
	if err != nil || doc == nil {
		return nil, false, err
	}
	return []byte(doc.Value), true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := s.col.UpdateOne(ctx,
		bson.M{"_id": key},
		bson.M{"$set": bson.M{"value": string(value)}, "$inc": bson.M{"version": 1}},
		upsert(),
	)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := s.col.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Update is an optimistic compare-and-swap on the document version. An absent
// key is claimed with an insert; losing either race retries with fresh data.
func (s *Store) Update(ctx context.Context, key string, fn ports.UpdateFunc) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		doc, err := s.find(ctx, key)
		if err != nil {
			return err
		}

		if doc == nil {
			next, err := fn(nil, false)
			if err != nil {
				return err
			}
			_, err = s.col.InsertOne(ctx, kvDocument{Key: key, Value: string(next), Version: 1})
			if mongo.IsDuplicateKeyError(err) {
				continue
			}
			if err != nil {
				return fmt.Errorf("insert %s: %w", key, err)
			}
			return nil
		}

		next, err := fn([]byte(doc.Value), true)
		if err != nil {
			return err
		}
		res, err := s.col.UpdateOne(ctx,
			bson.M{"_id": key, "version": doc.Version},
			bson.M{"$set": bson.M{"value": string(next), "version": doc.Version + 1}},
		)
		if err != nil {
			return fmt.Errorf("update %s: %w", key, err)
		}
		if res.MatchedCount == 1 {
			return nil
		}
	}
	return ErrContention
}

func (s *Store) Ping(ctx context.Context) error {
	return s.col.Database().Client().Ping(ctx, nil)
}
