package queries

import (
	"errors"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetRestaurantStatsQueryIsNotConstructed = errors.New(
	"GetRestaurantStatsQuery must be created via NewGetRestaurantStatsQuery constructor",
)

// StatsPeriod names the time window of a restaurant statistics request.
type StatsPeriod string

const (
	// PeriodAll is the zero value: no time filter, all-time statistics.
	PeriodAll   StatsPeriod = ""
	PeriodToday StatsPeriod = "today"
	PeriodWeek  StatsPeriod = "week"
	PeriodMonth StatsPeriod = "month"
	PeriodYear  StatsPeriod = "year"
)

// GetRestaurantStatsQuery computes order volume, revenue and the
// best-selling menu item for one restaurant over a period.
//
// Example:
//
//	query, err := queries.NewGetRestaurantStatsQuery(3, queries.PeriodWeek)
//	if err != nil {
//	    return err
//	}
//	stats, err := handler.Handle(ctx, query)
type GetRestaurantStatsQuery struct {
	restaurantID int64
	period       StatsPeriod

	guard guard.ConstructorGuard
}

// NewGetRestaurantStatsQuery creates a statistics query. The period must be
// one of today, week, month or year, or empty for all-time statistics.
func NewGetRestaurantStatsQuery(restaurantID int64, period StatsPeriod) (GetRestaurantStatsQuery, error) {
	if restaurantID <= 0 {
		return GetRestaurantStatsQuery{}, errs.NewValueIsRequiredError("restaurantId")
	}

	switch period {
	case PeriodAll, PeriodToday, PeriodWeek, PeriodMonth, PeriodYear:
	default:
		return GetRestaurantStatsQuery{}, errs.NewValueIsInvalidError("period")
	}

	return GetRestaurantStatsQuery{
		restaurantID: restaurantID,
		period:       period,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRestaurantStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetRestaurantStatsQueryIsNotConstructed)
}

// RestaurantID returns the restaurant to report on.
func (q GetRestaurantStatsQuery) RestaurantID() int64 {
	return q.restaurantID
}

// Period returns the requested time window.
func (q GetRestaurantStatsQuery) Period() StatsPeriod {
	return q.period
}

// MostOrderedItem is the best-selling menu item of the period.
type MostOrderedItem struct {
	MenuItemID int64
	ItemCount  int64
}

// GetRestaurantStatsQueryResponse aggregates a restaurant's activity over
// the period. Revenue sums subtotal minus the global discount per order.
// MostOrdered is nil when the period has no order lines.
type GetRestaurantStatsQueryResponse struct {
	RestaurantID int64
	Period       StatsPeriod
	OrderCount   int64
	Revenue      decimal.Decimal
	MostOrdered  *MostOrderedItem
}
