package ports

import (
	"context"

	"github.com/aretw0/labyrinth/pkg/domain"
)

// RouteStore defines the interface for persisting discovered routes.
type RouteStore interface {
	// Save persists the record under its ID, replacing any previous one.
	Save(ctx context.Context, record *domain.RouteRecord) error

	// Load retrieves a record by ID.
	// Returns domain.ErrRouteNotFound if the record does not exist.
	Load(ctx context.Context, id string) (*domain.RouteRecord, error)

	// Delete removes the record. Deleting a missing record is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored records.
	List(ctx context.Context) ([]string, error)
}
