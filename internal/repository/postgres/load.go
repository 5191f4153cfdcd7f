package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"loadtrack/internal/domain"
	"loadtrack/internal/repository"
)

// collectionName is the document key the load collection is stored under.
const collectionName = "loads"

// LoadStore is a PostgreSQL implementation of repository.LoadStore.
// The full load collection is serialized as one JSON document in a
// single row, mirroring the key-value document contract.
type LoadStore struct {
	q Querier
}

// NewLoadStore creates a new PostgreSQL load store.
func NewLoadStore(db *sql.DB) *LoadStore {
	return &LoadStore{q: db}
}

// ReadAll retrieves the full ordered load collection.
func (s *LoadStore) ReadAll(ctx context.Context) ([]domain.Load, error) {
	query := `SELECT doc FROM load_collections WHERE name = $1`

	var doc []byte
	err := s.q.QueryRowContext(ctx, query, collectionName).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	var loads []domain.Load
	if err := json.Unmarshal(doc, &loads); err != nil {
		return nil, err
	}

	return loads, nil
}

// WriteAll replaces the stored collection with the given loads.
func (s *LoadStore) WriteAll(ctx context.Context, loads []domain.Load) error {
	doc, err := json.Marshal(loads)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO load_collections (name, doc, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO UPDATE SET doc = EXCLUDED.doc, updated_at = NOW()
	`

	_, err = s.q.ExecContext(ctx, query, collectionName, doc)
	return err
}

// Ensure LoadStore implements repository.LoadStore.
var _ repository.LoadStore = (*LoadStore)(nil)
