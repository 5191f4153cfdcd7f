package repository

import (
	"context"

	"loadtrack/internal/domain"
)

// LoadStore defines the persistence contract for the load collection.
// The collection is stored as a single named document; every write
// replaces the whole ordered collection, there are no partial updates.
type LoadStore interface {
	// ReadAll retrieves the full ordered load collection.
	// Returns ErrNotFound if no collection document exists yet.
	ReadAll(ctx context.Context) ([]domain.Load, error)

	// WriteAll replaces the stored collection with the given loads.
	WriteAll(ctx context.Context, loads []domain.Load) error
}
