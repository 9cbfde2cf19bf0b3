package ports

import (
	"context"

	"orders/internal/core/domain/model/order"
)

// StatusRecord is a row of the fixed order-status catalog.
type StatusRecord struct {
	ID   order.Status
	Name string
}

// StatusCatalog exposes the seeded order-status rows. The catalog is fixed
// at seven entries; the service only reads it.
type StatusCatalog interface {
	// Exists reports whether a status id is present in the catalog.
	Exists(ctx context.Context, id order.Status) (bool, error)

	// Get fetches a catalog row by id.
	// Returns errs.ObjectNotFoundError for ids outside the catalog.
	Get(ctx context.Context, id order.Status) (StatusRecord, error)
}
