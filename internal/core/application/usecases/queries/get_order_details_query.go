package queries

import (
	"errors"
	"time"

	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderDetailsQueryIsNotConstructed = errors.New(
	"GetOrderDetailsQuery must be created via NewGetOrderDetailsQuery constructor",
)

// GetOrderDetailsQuery retrieves one order enriched with the records its
// foreign ids point at: the client, the restaurant, the deliverer when
// assigned, the delivery record and per-line menu item data.
type GetOrderDetailsQuery struct {
	orderID int64

	guard guard.ConstructorGuard
}

// NewGetOrderDetailsQuery creates a detail query for one order.
func NewGetOrderDetailsQuery(orderID int64) (GetOrderDetailsQuery, error) {
	if orderID <= 0 {
		return GetOrderDetailsQuery{}, errs.NewValueIsRequiredError("orderId")
	}

	return GetOrderDetailsQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderDetailsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderDetailsQueryIsNotConstructed)
}

// OrderID returns the order to enrich.
func (q GetOrderDetailsQuery) OrderID() int64 {
	return q.orderID
}

// EnrichedOrderItem is one order line with its menu item data resolved.
// MenuItem is nil when the owning service could not serve the lookup;
// OptionValues holds only the values that resolved.
type EnrichedOrderItem struct {
	ID           int64
	MenuItemID   int64
	Quantity     int
	UnitPrice    decimal.Decimal
	Notes        *string
	MenuItem     *ports.PeerMenuItem
	OptionValues []ports.PeerMenuItemOptionValue

	optionValueIDs []int64
}

// GetOrderDetailsQueryResponse is the enriched order view. Every Peer*
// pointer is nil when the owning service was unreachable; the order's own
// fields are always present.
type GetOrderDetailsQueryResponse struct {
	ID             int64
	ClientID       int64
	RestaurantID   int64
	DelivererID    *int64
	StatusID       int64
	Description    *string
	Subtotal       decimal.Decimal
	DeliveryCosts  decimal.Decimal
	ServiceCharge  decimal.Decimal
	GlobalDiscount decimal.Decimal
	StreetNumber   string
	Street         string
	City           string
	PostalCode     string
	Country        string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Client     *ports.PeerClient
	Restaurant *ports.PeerRestaurant
	Deliverer  *ports.PeerDeliverer
	Delivery   *ports.PeerDelivery
	Items      []EnrichedOrderItem
}
