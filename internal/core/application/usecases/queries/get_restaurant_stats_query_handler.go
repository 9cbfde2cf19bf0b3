package queries

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetRestaurantStatsQueryHandler aggregates a restaurant's orders in the
// database. Period boundaries are computed in local time; the week starts
// on Sunday.
type GetRestaurantStatsQueryHandler struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGetRestaurantStatsQueryHandler creates a handler for restaurant
// statistics.
func NewGetRestaurantStatsQueryHandler(db *gorm.DB) GetRestaurantStatsQueryHandler {
	return GetRestaurantStatsQueryHandler{db: db, now: time.Now}
}

// Handle computes the order count, the revenue and the best-selling menu
// item for the restaurant since the start of the period. An all-time query
// carries no time filter.
func (h GetRestaurantStatsQueryHandler) Handle(
	ctx context.Context,
	query GetRestaurantStatsQuery,
) (GetRestaurantStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRestaurantStatsQueryResponse{}, err
	}

	sinceClause := ""
	topSinceClause := ""
	totalsArgs := []any{query.RestaurantID()}
	topArgs := []any{query.RestaurantID()}
	if query.Period() != PeriodAll {
		since := periodStart(h.now(), query.Period())
		sinceClause = " AND created_at >= ?"
		topSinceClause = " AND o.created_at >= ?"
		totalsArgs = append(totalsArgs, since)
		topArgs = append(topArgs, since)
	}

	response := GetRestaurantStatsQueryResponse{
		RestaurantID: query.RestaurantID(),
		Period:       query.Period(),
		Revenue:      decimal.Zero,
	}

	var totals struct {
		OrderCount int64
		Revenue    decimal.NullDecimal
	}
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS order_count,
			SUM(subtotal - COALESCE(global_discount, 0)) AS revenue
		FROM orders
		WHERE restaurant_id = ?`+sinceClause,
		totalsArgs...).Scan(&totals).Error
	if err != nil {
		return GetRestaurantStatsQueryResponse{}, err
	}

	response.OrderCount = totals.OrderCount
	if totals.Revenue.Valid {
		response.Revenue = totals.Revenue.Decimal
	}

	var top struct {
		MenuItemID int64
		ItemCount  int64
	}
	err = h.db.WithContext(ctx).Raw(`
		SELECT
			oi.menu_item_id AS menu_item_id,
			SUM(oi.quantity) AS item_count
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.restaurant_id = ?`+topSinceClause+`
		GROUP BY oi.menu_item_id
		ORDER BY item_count DESC, oi.menu_item_id
		LIMIT 1
	`, topArgs...).First(&top).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response, nil
		}
		return GetRestaurantStatsQueryResponse{}, err
	}

	response.MostOrdered = &MostOrderedItem{
		MenuItemID: top.MenuItemID,
		ItemCount:  top.ItemCount,
	}
	return response, nil
}

// periodStart returns midnight at the beginning of the window containing
// now: today, the current Sunday-based week, the current month or the
// current year.
func periodStart(now time.Time, period StatsPeriod) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch period {
	case PeriodToday:
		return midnight
	case PeriodWeek:
		return midnight.AddDate(0, 0, -int(midnight.Weekday()))
	case PeriodMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case PeriodYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	}

	return midnight
}
