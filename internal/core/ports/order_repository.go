package ports

import (
	"context"

	"orders/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Listing and statistics read models go through dedicated query handlers;
// the repository deals in whole aggregates only.
type OrderRepository interface {
	// Add persists a new order together with its items as one atomic unit.
	// The aggregate's id fields are populated from the generated keys.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists lifecycle changes (status, deliverer) of an existing
	// order. Items are immutable after creation and are not rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its items by id.
	// Returns errs.ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// ListAwaitingPickup retrieves every unassigned order waiting for a
	// deliverer (status AwaitingDeliverer, no deliverer attached), newest
	// first. The delivery search applies geo filtering and pagination on
	// top of this candidate set.
	ListAwaitingPickup(ctx context.Context) ([]*order.Order, error)
}
