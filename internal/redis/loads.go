package redis

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"loadtrack/internal/domain"
	"loadtrack/internal/repository"
)

// loadsKey is the single document key holding the full load collection.
const loadsKey = "loadtrack:loads"

// LoadStore is a Redis implementation of repository.LoadStore. The full
// ordered collection is serialized as one JSON array under a single key,
// matching the mobile client's key-value document contract.
type LoadStore struct {
	client *redis.Client
}

// NewLoadStore creates a new Redis load store.
func NewLoadStore(client *redis.Client) *LoadStore {
	return &LoadStore{client: client}
}

// ReadAll retrieves the full ordered load collection.
func (s *LoadStore) ReadAll(ctx context.Context) ([]domain.Load, error) {
	data, err := s.client.Get(ctx, loadsKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	var loads []domain.Load
	if err := json.Unmarshal(data, &loads); err != nil {
		return nil, err
	}

	return loads, nil
}

// WriteAll replaces the stored collection with the given loads.
func (s *LoadStore) WriteAll(ctx context.Context, loads []domain.Load) error {
	data, err := json.Marshal(loads)
	if err != nil {
		return err
	}

	// No TTL: the collection document is the system of record.
	return s.client.Set(ctx, loadsKey, data, 0).Err()
}

// Ensure LoadStore implements repository.LoadStore.
var _ repository.LoadStore = (*LoadStore)(nil)
