package queries

import (
	"context"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads order pages straight from the database.
// Listing is a reporting concern, so it bypasses the aggregate and maps
// rows into flat summaries.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listings.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle returns the requested page, newest orders first, together with the
// total row count under the same filter. Order lines are loaded with one
// extra query over the whole page.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) (ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	scope := h.db.WithContext(ctx).Table("orders")
	filter := query.Filter()
	if filter.ClientID != nil {
		scope = scope.Where("client_id = ?", *filter.ClientID)
	}
	if filter.RestaurantID != nil {
		scope = scope.Where("restaurant_id = ?", *filter.RestaurantID)
	}
	if filter.DelivererID != nil {
		scope = scope.Where("deliverer_id = ?", *filter.DelivererID)
	}
	if filter.StatusID != nil {
		scope = scope.Where("status_id = ?", *filter.StatusID)
	}

	var total int64
	if err := scope.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return ListOrdersQueryResponse{}, err
	}

	offset := (query.Page() - 1) * query.Limit()

	var rows []listedOrderRow
	err := scope.
		Select(
			"id", "client_id", "restaurant_id", "deliverer_id", "status_id",
			"description", "subtotal", "delivery_costs", "service_charge",
			"global_discount", "street_number", "street", "city",
			"postal_code", "country", "created_at", "updated_at",
		).
		Order("created_at DESC").
		Order("id DESC").
		Limit(query.Limit()).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}

	summaries := make([]OrderSummary, 0, len(rows))
	orderIDs := make([]int64, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, row.toSummary())
		orderIDs = append(orderIDs, row.ID)
	}

	if err = h.attachItems(ctx, orderIDs, summaries); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	return ListOrdersQueryResponse{Orders: summaries, Total: total}, nil
}

func (h ListOrdersQueryHandler) attachItems(
	ctx context.Context,
	orderIDs []int64,
	summaries []OrderSummary,
) error {
	if len(orderIDs) == 0 {
		return nil
	}

	var items []listedItemRow
	err := h.db.WithContext(ctx).
		Table("order_items").
		Select("id", "order_id", "menu_item_id", "quantity", "unit_price", "selected_option_value_ids", "notes").
		Where("order_id IN ?", orderIDs).
		Order("id").
		Scan(&items).Error
	if err != nil {
		return err
	}

	byOrder := make(map[int64][]OrderItemSummary, len(orderIDs))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item.toSummary())
	}

	for i := range summaries {
		summaries[i].Items = byOrder[summaries[i].ID]
	}
	return nil
}
