package queries

import (
	"errors"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderInterserviceQueryIsNotConstructed = errors.New(
	"GetOrderInterserviceQuery must be created via NewGetOrderInterserviceQuery constructor",
)

// GetOrderInterserviceQuery is the minimal order lookup peer services use
// to confirm an order exists and read its status and subtotal. It carries
// none of the client-facing detail.
type GetOrderInterserviceQuery struct {
	orderID int64

	guard guard.ConstructorGuard
}

// NewGetOrderInterserviceQuery creates an interservice lookup query.
func NewGetOrderInterserviceQuery(orderID int64) (GetOrderInterserviceQuery, error) {
	if orderID <= 0 {
		return GetOrderInterserviceQuery{}, errs.NewValueIsRequiredError("orderId")
	}

	return GetOrderInterserviceQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderInterserviceQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderInterserviceQueryIsNotConstructed)
}

// OrderID returns the order to look up.
func (q GetOrderInterserviceQuery) OrderID() int64 {
	return q.orderID
}

// GetOrderInterserviceQueryResponse is the trimmed order view served to
// peer services.
type GetOrderInterserviceQueryResponse struct {
	ID       int64
	StatusID int64
	Subtotal decimal.Decimal
}
