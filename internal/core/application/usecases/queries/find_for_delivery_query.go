package queries

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrFindForDeliveryQueryIsNotConstructed = errors.New(
	"FindForDeliveryQuery must be created via NewFindForDeliveryQuery constructor",
)

// FindForDeliveryQuery retrieves unassigned orders awaiting pickup. With a
// center the result shrinks to orders within the radius; without one every
// awaiting order qualifies. Orders without delivery coordinates never match
// a geo-filtered search.
//
// Example:
//
//	center, _ := kernel.NewGeoPoint(50.6292, 3.0573)
//	query, err := queries.NewFindForDeliveryQuery(&center, 5000, 1, 20)
//	if err != nil {
//	    return err
//	}
//	page, err := handler.Handle(ctx, query)
type FindForDeliveryQuery struct {
	center       *kernel.GeoPoint
	radiusMeters float64
	page         int
	limit        int

	guard guard.ConstructorGuard
}

// NewFindForDeliveryQuery creates a pickup search query. A nil center skips
// geo filtering entirely; with a center the radius must be strictly
// positive. Page and limit fall back to defaults when below one.
func NewFindForDeliveryQuery(
	center *kernel.GeoPoint,
	radiusMeters float64,
	page, limit int,
) (FindForDeliveryQuery, error) {
	if center != nil {
		if err := center.Validate(); err != nil {
			return FindForDeliveryQuery{}, err
		}
		if radiusMeters <= 0 {
			return FindForDeliveryQuery{}, errs.NewValueIsOutOfRangeError("radiusMeters", radiusMeters, 0, "+inf")
		}
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

	return FindForDeliveryQuery{
		center:       center,
		radiusMeters: radiusMeters,
		page:         page,
		limit:        limit,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q FindForDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrFindForDeliveryQueryIsNotConstructed)
}

// Center returns the deliverer's position, or nil for an unfiltered search.
func (q FindForDeliveryQuery) Center() *kernel.GeoPoint {
	return q.center
}

// RadiusMeters returns the search radius. Meaningless without a center.
func (q FindForDeliveryQuery) RadiusMeters() float64 {
	return q.radiusMeters
}

// Page returns the one-based page number.
func (q FindForDeliveryQuery) Page() int {
	return q.page
}

// Limit returns the page size.
func (q FindForDeliveryQuery) Limit() int {
	return q.limit
}

// PickupCandidate is one order a deliverer may accept. Location is nil when
// the order has no delivery coordinates; DistanceMeters is filled only on
// geo-filtered searches.
type PickupCandidate struct {
	ID             int64
	RestaurantID   int64
	Subtotal       decimal.Decimal
	DeliveryCosts  decimal.Decimal
	StreetNumber   string
	Street         string
	City           string
	PostalCode     string
	Country        string
	Location       *kernel.GeoPoint
	DistanceMeters float64
}

// FindForDeliveryQueryResponse is one page of pickup candidates; Total
// counts every candidate that passed the filter, not just the returned
// page.
type FindForDeliveryQueryResponse struct {
	Orders []PickupCandidate
	Total  int64
}
