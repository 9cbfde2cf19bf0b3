// Package orderrepo persists order aggregates with GORM. It owns the
// mapping between the domain model and the orders / order_items tables;
// nothing outside this package sees the DTO shapes.
package orderrepo

import (
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// OrderDTO is the database row behind an order aggregate. Delivery
// coordinates are nullable as a pair: legacy rows created before
// geolocation have neither.
type OrderDTO struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	ClientID       int64  `gorm:"index;not null"`
	RestaurantID   int64  `gorm:"index;not null"`
	DelivererID    *int64 `gorm:"index"`
	StatusID       int64  `gorm:"index;not null"`
	Description    *string
	Subtotal       decimal.Decimal     `gorm:"type:numeric(10,2);not null"`
	DeliveryCosts  decimal.Decimal     `gorm:"type:numeric(10,2);not null"`
	ServiceCharge  decimal.Decimal     `gorm:"type:numeric(10,2);not null"`
	GlobalDiscount decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	StreetNumber   string              `gorm:"not null"`
	Street         string              `gorm:"not null"`
	City           string              `gorm:"not null"`
	PostalCode     string              `gorm:"not null"`
	Country        string              `gorm:"not null"`
	Lat            *float64            `gorm:"type:double precision"`
	Long           *float64            `gorm:"type:double precision"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Items          []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName pins the table name to "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one order line. Selected option value ids are stored as
// a Postgres bigint array.
type OrderItemDTO struct {
	ID                     int64           `gorm:"primaryKey;autoIncrement"`
	OrderID                int64           `gorm:"index;not null"`
	MenuItemID             int64           `gorm:"not null"`
	Quantity               int             `gorm:"not null"`
	UnitPrice              decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	SelectedOptionValueIDs pq.Int64Array   `gorm:"type:bigint[]"`
	Notes                  *string
}

// TableName pins the table name to "order_items".
func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	charges := aggregate.Charges()
	address := aggregate.Address()

	var lat, long *float64
	if address.Location != nil {
		latV := address.Location.Lat()
		longV := address.Location.Long()
		lat, long = &latV, &longV
	}

	discount := decimal.NullDecimal{}
	if !charges.GlobalDiscount.IsZero() {
		discount = decimal.NewNullDecimal(charges.GlobalDiscount)
	}

	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, line := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			ID:                     line.ID(),
			OrderID:                aggregate.ID(),
			MenuItemID:             line.MenuItemID(),
			Quantity:               line.Quantity(),
			UnitPrice:              line.UnitPrice(),
			SelectedOptionValueIDs: pq.Int64Array(line.SelectedOptionValueIDs()),
			Notes:                  line.Notes(),
		})
	}

	return OrderDTO{
		ID:             aggregate.ID(),
		ClientID:       aggregate.ClientID(),
		RestaurantID:   aggregate.RestaurantID(),
		DelivererID:    aggregate.DelivererID(),
		StatusID:       int64(aggregate.Status()),
		Description:    aggregate.Description(),
		Subtotal:       charges.Subtotal,
		DeliveryCosts:  charges.DeliveryCosts,
		ServiceCharge:  charges.ServiceCharge,
		GlobalDiscount: discount,
		StreetNumber:   address.StreetNumber,
		Street:         address.Street,
		City:           address.City,
		PostalCode:     address.PostalCode,
		Country:        address.Country,
		Lat:            lat,
		Long:           long,
		CreatedAt:      aggregate.CreatedAt(),
		UpdatedAt:      aggregate.UpdatedAt(),
		Items:          items,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	var location *kernel.GeoPoint
	if dto.Lat != nil && dto.Long != nil {
		point, err := kernel.NewGeoPoint(*dto.Lat, *dto.Long)
		if err != nil {
			return nil, err
		}
		location = &point
	}

	discount := decimal.Zero
	if dto.GlobalDiscount.Valid {
		discount = dto.GlobalDiscount.Decimal
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, line := range dto.Items {
		items = append(items, order.RestoreItem(
			line.ID,
			line.MenuItemID,
			line.Quantity,
			line.UnitPrice,
			[]int64(line.SelectedOptionValueIDs),
			line.Notes,
		))
	}

	return order.RestoreOrder(
		dto.ID,
		dto.ClientID,
		dto.RestaurantID,
		dto.DelivererID,
		order.Status(dto.StatusID),
		dto.Description,
		order.Charges{
			Subtotal:       dto.Subtotal,
			DeliveryCosts:  dto.DeliveryCosts,
			ServiceCharge:  dto.ServiceCharge,
			GlobalDiscount: discount,
		},
		order.Address{
			StreetNumber: dto.StreetNumber,
			Street:       dto.Street,
			City:         dto.City,
			PostalCode:   dto.PostalCode,
			Country:      dto.Country,
			Location:     location,
		},
		items,
		dto.CreatedAt,
		dto.UpdatedAt,
	), nil
}
