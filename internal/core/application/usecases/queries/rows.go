package queries

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Scan targets for raw order reads. Gorm matches the columns by the
// snake_case form of the field names.

type listedOrderRow struct {
	ID             int64
	ClientID       int64
	RestaurantID   int64
	DelivererID    *int64
	StatusID       int64
	Description    *string
	Subtotal       decimal.Decimal
	DeliveryCosts  decimal.Decimal
	ServiceCharge  decimal.Decimal
	GlobalDiscount decimal.NullDecimal
	StreetNumber   string
	Street         string
	City           string
	PostalCode     string
	Country        string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (r listedOrderRow) toSummary() OrderSummary {
	discount := decimal.Zero
	if r.GlobalDiscount.Valid {
		discount = r.GlobalDiscount.Decimal
	}

	return OrderSummary{
		ID:             r.ID,
		ClientID:       r.ClientID,
		RestaurantID:   r.RestaurantID,
		DelivererID:    r.DelivererID,
		StatusID:       r.StatusID,
		Description:    r.Description,
		Subtotal:       r.Subtotal,
		DeliveryCosts:  r.DeliveryCosts,
		ServiceCharge:  r.ServiceCharge,
		GlobalDiscount: discount,
		StreetNumber:   r.StreetNumber,
		Street:         r.Street,
		City:           r.City,
		PostalCode:     r.PostalCode,
		Country:        r.Country,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

type listedItemRow struct {
	ID                     int64
	OrderID                int64
	MenuItemID             int64
	Quantity               int
	UnitPrice              decimal.Decimal
	SelectedOptionValueIDs pq.Int64Array `gorm:"type:bigint[]"`
	Notes                  *string
}

func (r listedItemRow) toSummary() OrderItemSummary {
	return OrderItemSummary{
		ID:                     r.ID,
		MenuItemID:             r.MenuItemID,
		Quantity:               r.Quantity,
		UnitPrice:              r.UnitPrice,
		SelectedOptionValueIDs: []int64(r.SelectedOptionValueIDs),
		Notes:                  r.Notes,
	}
}
