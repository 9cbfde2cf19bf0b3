package queries

import (
	"context"
	"errors"

	"orders/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderInterserviceQueryHandler serves the trimmed order view peers
// read over authenticated RPC.
type GetOrderInterserviceQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderInterserviceQueryHandler creates a handler for interservice
// order lookups.
func NewGetOrderInterserviceQueryHandler(db *gorm.DB) GetOrderInterserviceQueryHandler {
	return GetOrderInterserviceQueryHandler{db: db}
}

// Handle returns the order's id, status and subtotal.
// Returns errs.ObjectNotFoundError when the order does not exist.
func (h GetOrderInterserviceQueryHandler) Handle(
	ctx context.Context,
	query GetOrderInterserviceQuery,
) (GetOrderInterserviceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderInterserviceQueryResponse{}, err
	}

	var row GetOrderInterserviceQueryResponse
	err := h.db.WithContext(ctx).Raw(`
		SELECT id, status_id, subtotal
		FROM orders
		WHERE id = ?
	`, query.OrderID()).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GetOrderInterserviceQueryResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID())
		}
		return GetOrderInterserviceQueryResponse{}, err
	}

	return row, nil
}
