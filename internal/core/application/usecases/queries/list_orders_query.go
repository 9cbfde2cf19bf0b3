package queries

import (
	"errors"
	"time"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// ListOrdersQuery retrieves a page of orders, optionally narrowed to one
// client, restaurant, deliverer or status. Filters combine with AND.
//
// Example:
//
//	clientID := int64(12)
//	query, err := queries.NewListOrdersQuery(queries.ListOrdersFilter{ClientID: &clientID}, 1, 20)
//	if err != nil {
//	    return err
//	}
//	page, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	filter ListOrdersFilter
	page   int
	limit  int

	guard guard.ConstructorGuard
}

// ListOrdersFilter narrows the order listing. Nil fields are ignored.
type ListOrdersFilter struct {
	ClientID     *int64
	RestaurantID *int64
	DelivererID  *int64
	StatusID     *int64
}

// NewListOrdersQuery creates a listing query. Page and limit below one fall
// back to defaults; the limit is capped so a single request cannot drain
// the table.
func NewListOrdersQuery(filter ListOrdersFilter, page, limit int) (ListOrdersQuery, error) {
	if err := validateFilterIDs(filter); err != nil {
		return ListOrdersQuery{}, err
	}

	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return ListOrdersQuery{
		filter: filter,
		page:   page,
		limit:  limit,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Filter returns the active filter fields.
func (q ListOrdersQuery) Filter() ListOrdersFilter {
	return q.filter
}

// Page returns the one-based page number.
func (q ListOrdersQuery) Page() int {
	return q.page
}

// Limit returns the page size.
func (q ListOrdersQuery) Limit() int {
	return q.limit
}

func validateFilterIDs(filter ListOrdersFilter) error {
	if filter.ClientID != nil && *filter.ClientID <= 0 {
		return errs.NewValueIsInvalidError("clientId")
	}
	if filter.RestaurantID != nil && *filter.RestaurantID <= 0 {
		return errs.NewValueIsInvalidError("restaurantId")
	}
	if filter.DelivererID != nil && *filter.DelivererID <= 0 {
		return errs.NewValueIsInvalidError("delivererId")
	}
	if filter.StatusID != nil && *filter.StatusID <= 0 {
		return errs.NewValueIsInvalidError("statusId")
	}
	return nil
}

// OrderSummary is one row of an order listing.
type OrderSummary struct {
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
	Items          []OrderItemSummary
}

// OrderItemSummary is one order line of a listed order.
type OrderItemSummary struct {
	ID                     int64
	MenuItemID             int64
	Quantity               int
	UnitPrice              decimal.Decimal
	SelectedOptionValueIDs []int64
	Notes                  *string
}

// ListOrdersQueryResponse is one page of orders plus the unpaged total,
// so clients can render pagination controls.
type ListOrdersQueryResponse struct {
	Orders []OrderSummary
	Total  int64
}
