package http

import (
	"time"

	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"

	"github.com/shopspring/decimal"
)

// Wire shapes. Field names follow the snake_case contract the surrounding
// services already speak; money travels as strings to keep cents exact.

type createOrderItemRequest struct {
	MenuItemID             int64   `json:"menu_item_id"`
	Quantity               int     `json:"quantity"`
	UnitPrice              float64 `json:"unit_price"`
	SelectedOptionValueIDs []int64 `json:"selected_option_value_ids"`
	Notes                  *string `json:"notes"`
}

type createOrderRequest struct {
	RestaurantID   int64                    `json:"restaurant_id"`
	StatusID       int64                    `json:"status_id"`
	Description    *string                  `json:"description"`
	Subtotal       float64                  `json:"subtotal"`
	DeliveryCosts  float64                  `json:"delivery_costs"`
	ServiceCharge  float64                  `json:"service_charge"`
	GlobalDiscount *float64                 `json:"global_discount"`
	StreetNumber   string                   `json:"street_number"`
	Street         string                   `json:"street"`
	City           string                   `json:"city"`
	PostalCode     string                   `json:"postal_code"`
	Country        string                   `json:"country"`
	Long           *float64                 `json:"long"`
	Lat            *float64                 `json:"lat"`
	Items          []createOrderItemRequest `json:"items"`
}

func (r createOrderRequest) toCharges() order.Charges {
	discount := decimal.Zero
	if r.GlobalDiscount != nil {
		discount = decimal.NewFromFloat(*r.GlobalDiscount)
	}

	return order.Charges{
		Subtotal:       decimal.NewFromFloat(r.Subtotal),
		DeliveryCosts:  decimal.NewFromFloat(r.DeliveryCosts),
		ServiceCharge:  decimal.NewFromFloat(r.ServiceCharge),
		GlobalDiscount: discount,
	}
}

func (r createOrderRequest) toAddress() (order.Address, error) {
	var location *kernel.GeoPoint
	if r.Lat != nil && r.Long != nil {
		point, err := kernel.NewGeoPoint(*r.Lat, *r.Long)
		if err != nil {
			return order.Address{}, err
		}
		location = &point
	}

	return order.Address{
		StreetNumber: r.StreetNumber,
		Street:       r.Street,
		City:         r.City,
		PostalCode:   r.PostalCode,
		Country:      r.Country,
		Location:     location,
	}, nil
}

func (r createOrderRequest) toItems() ([]order.Item, error) {
	items := make([]order.Item, 0, len(r.Items))
	for _, line := range r.Items {
		item, err := order.NewItem(
			line.MenuItemID,
			line.Quantity,
			decimal.NewFromFloat(line.UnitPrice),
			line.SelectedOptionValueIDs,
			line.Notes,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

type acceptOrderRequest struct {
	OrderID     int64 `json:"orderId"`
	DelivererID int64 `json:"delivererId"`
}

type updateOrderStatusRequest struct {
	StatusID int64 `json:"status_id"`
}

type orderItemResponse struct {
	ID                     int64   `json:"id"`
	MenuItemID             int64   `json:"menu_item_id"`
	Quantity               int     `json:"quantity"`
	UnitPrice              string  `json:"unit_price"`
	SelectedOptionValueIDs []int64 `json:"selected_option_value_ids"`
	Notes                  *string `json:"notes"`
}

type orderResponse struct {
	ID             int64               `json:"id"`
	ClientID       int64               `json:"client_id"`
	RestaurantID   int64               `json:"restaurant_id"`
	DelivererID    *int64              `json:"deliverer_id"`
	StatusID       int64               `json:"status_id"`
	Description    *string             `json:"description"`
	Subtotal       string              `json:"subtotal"`
	DeliveryCosts  string              `json:"delivery_costs"`
	ServiceCharge  string              `json:"service_charge"`
	GlobalDiscount string              `json:"global_discount"`
	StreetNumber   string              `json:"street_number"`
	Street         string              `json:"street"`
	City           string              `json:"city"`
	PostalCode     string              `json:"postal_code"`
	Country        string              `json:"country"`
	Lat            *float64            `json:"lat"`
	Long           *float64            `json:"long"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	Items          []orderItemResponse `json:"items"`
}

func toOrderResponse(aggregate *order.Order) orderResponse {
	charges := aggregate.Charges()
	address := aggregate.Address()

	var lat, long *float64
	if address.Location != nil {
		latV, longV := address.Location.Lat(), address.Location.Long()
		lat, long = &latV, &longV
	}

	items := make([]orderItemResponse, 0, len(aggregate.Items()))
	for _, line := range aggregate.Items() {
		items = append(items, orderItemResponse{
			ID:                     line.ID(),
			MenuItemID:             line.MenuItemID(),
			Quantity:               line.Quantity(),
			UnitPrice:              line.UnitPrice().StringFixed(2),
			SelectedOptionValueIDs: line.SelectedOptionValueIDs(),
			Notes:                  line.Notes(),
		})
	}

	return orderResponse{
		ID:             aggregate.ID(),
		ClientID:       aggregate.ClientID(),
		RestaurantID:   aggregate.RestaurantID(),
		DelivererID:    aggregate.DelivererID(),
		StatusID:       int64(aggregate.Status()),
		Description:    aggregate.Description(),
		Subtotal:       charges.Subtotal.StringFixed(2),
		DeliveryCosts:  charges.DeliveryCosts.StringFixed(2),
		ServiceCharge:  charges.ServiceCharge.StringFixed(2),
		GlobalDiscount: charges.GlobalDiscount.StringFixed(2),
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

type orderSummaryResponse struct {
	ID             int64              `json:"id"`
	ClientID       int64              `json:"client_id"`
	RestaurantID   int64              `json:"restaurant_id"`
	DelivererID    *int64             `json:"deliverer_id"`
	StatusID       int64              `json:"status_id"`
	Description    *string            `json:"description"`
	Subtotal       string             `json:"subtotal"`
	DeliveryCosts  string             `json:"delivery_costs"`
	ServiceCharge  string             `json:"service_charge"`
	GlobalDiscount string             `json:"global_discount"`
	StreetNumber   string             `json:"street_number"`
	Street         string             `json:"street"`
	City           string             `json:"city"`
	PostalCode     string             `json:"postal_code"`
	Country        string             `json:"country"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	Items          []listItemResponse `json:"items"`
}

type listItemResponse struct {
	ID                     int64   `json:"id"`
	MenuItemID             int64   `json:"menu_item_id"`
	Quantity               int     `json:"quantity"`
	UnitPrice              string  `json:"unit_price"`
	SelectedOptionValueIDs []int64 `json:"selected_option_value_ids"`
	Notes                  *string `json:"notes"`
}

type orderPageResponse struct {
	Orders []orderSummaryResponse `json:"orders"`
	Total  int64                  `json:"total"`
}

func toOrderPageResponse(page queries.ListOrdersQueryResponse) orderPageResponse {
	summaries := make([]orderSummaryResponse, 0, len(page.Orders))
	for _, summary := range page.Orders {
		items := make([]listItemResponse, 0, len(summary.Items))
		for _, item := range summary.Items {
			items = append(items, listItemResponse{
				ID:                     item.ID,
				MenuItemID:             item.MenuItemID,
				Quantity:               item.Quantity,
				UnitPrice:              item.UnitPrice.StringFixed(2),
				SelectedOptionValueIDs: item.SelectedOptionValueIDs,
				Notes:                  item.Notes,
			})
		}

		summaries = append(summaries, orderSummaryResponse{
			ID:             summary.ID,
			ClientID:       summary.ClientID,
			RestaurantID:   summary.RestaurantID,
			DelivererID:    summary.DelivererID,
			StatusID:       summary.StatusID,
			Description:    summary.Description,
			Subtotal:       summary.Subtotal.StringFixed(2),
			DeliveryCosts:  summary.DeliveryCosts.StringFixed(2),
			ServiceCharge:  summary.ServiceCharge.StringFixed(2),
			GlobalDiscount: summary.GlobalDiscount.StringFixed(2),
			StreetNumber:   summary.StreetNumber,
			Street:         summary.Street,
			City:           summary.City,
			PostalCode:     summary.PostalCode,
			Country:        summary.Country,
			CreatedAt:      summary.CreatedAt,
			UpdatedAt:      summary.UpdatedAt,
			Items:          items,
		})
	}

	return orderPageResponse{Orders: summaries, Total: page.Total}
}

type pickupCandidateResponse struct {
	ID             int64    `json:"id"`
	RestaurantID   int64    `json:"restaurant_id"`
	Subtotal       string   `json:"subtotal"`
	DeliveryCosts  string   `json:"delivery_costs"`
	StreetNumber   string   `json:"street_number"`
	Street         string   `json:"street"`
	City           string   `json:"city"`
	PostalCode     string   `json:"postal_code"`
	Country        string   `json:"country"`
	Lat            *float64 `json:"lat"`
	Long           *float64 `json:"long"`
	DistanceMeters float64  `json:"distance_meters"`
}

type pickupPageResponse struct {
	Orders []pickupCandidateResponse `json:"orders"`
	Total  int64                     `json:"total"`
}

func toPickupPageResponse(page queries.FindForDeliveryQueryResponse) pickupPageResponse {
	candidates := make([]pickupCandidateResponse, 0, len(page.Orders))
	for _, candidate := range page.Orders {
		var lat, long *float64
		if candidate.Location != nil {
			latV, longV := candidate.Location.Lat(), candidate.Location.Long()
			lat, long = &latV, &longV
		}

		candidates = append(candidates, pickupCandidateResponse{
			ID:             candidate.ID,
			RestaurantID:   candidate.RestaurantID,
			Subtotal:       candidate.Subtotal.StringFixed(2),
			DeliveryCosts:  candidate.DeliveryCosts.StringFixed(2),
			StreetNumber:   candidate.StreetNumber,
			Street:         candidate.Street,
			City:           candidate.City,
			PostalCode:     candidate.PostalCode,
			Country:        candidate.Country,
			Lat:            lat,
			Long:           long,
			DistanceMeters: candidate.DistanceMeters,
		})
	}

	return pickupPageResponse{Orders: candidates, Total: page.Total}
}

type enrichedItemResponse struct {
	ID           int64                           `json:"id"`
	MenuItemID   int64                           `json:"menu_item_id"`
	Quantity     int                             `json:"quantity"`
	UnitPrice    string                          `json:"unit_price"`
	Notes        *string                         `json:"notes"`
	MenuItem     *ports.PeerMenuItem             `json:"menu_item"`
	OptionValues []ports.PeerMenuItemOptionValue `json:"option_values"`
}

type orderDetailsResponse struct {
	ID             int64                  `json:"id"`
	ClientID       int64                  `json:"client_id"`
	RestaurantID   int64                  `json:"restaurant_id"`
	DelivererID    *int64                 `json:"deliverer_id"`
	StatusID       int64                  `json:"status_id"`
	Description    *string                `json:"description"`
	Subtotal       string                 `json:"subtotal"`
	DeliveryCosts  string                 `json:"delivery_costs"`
	ServiceCharge  string                 `json:"service_charge"`
	GlobalDiscount string                 `json:"global_discount"`
	StreetNumber   string                 `json:"street_number"`
	Street         string                 `json:"street"`
	City           string                 `json:"city"`
	PostalCode     string                 `json:"postal_code"`
	Country        string                 `json:"country"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
	Client         *ports.PeerClient      `json:"client"`
	Restaurant     *ports.PeerRestaurant  `json:"restaurant"`
	Deliverer      *ports.PeerDeliverer   `json:"deliverer"`
	Delivery       *ports.PeerDelivery    `json:"delivery"`
	Items          []enrichedItemResponse `json:"items"`
}

func toOrderDetailsResponse(details *queries.GetOrderDetailsQueryResponse) orderDetailsResponse {
	items := make([]enrichedItemResponse, 0, len(details.Items))
	for _, item := range details.Items {
		items = append(items, enrichedItemResponse{
			ID:           item.ID,
			MenuItemID:   item.MenuItemID,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice.StringFixed(2),
			Notes:        item.Notes,
			MenuItem:     item.MenuItem,
			OptionValues: item.OptionValues,
		})
	}

	return orderDetailsResponse{
		ID:             details.ID,
		ClientID:       details.ClientID,
		RestaurantID:   details.RestaurantID,
		DelivererID:    details.DelivererID,
		StatusID:       details.StatusID,
		Description:    details.Description,
		Subtotal:       details.Subtotal.StringFixed(2),
		DeliveryCosts:  details.DeliveryCosts.StringFixed(2),
		ServiceCharge:  details.ServiceCharge.StringFixed(2),
		GlobalDiscount: details.GlobalDiscount.StringFixed(2),
		StreetNumber:   details.StreetNumber,
		Street:         details.Street,
		City:           details.City,
		PostalCode:     details.PostalCode,
		Country:        details.Country,
		CreatedAt:      details.CreatedAt,
		UpdatedAt:      details.UpdatedAt,
		Client:         details.Client,
		Restaurant:     details.Restaurant,
		Deliverer:      details.Deliverer,
		Delivery:       details.Delivery,
		Items:          items,
	}
}

type statsResponse struct {
	RestaurantID int64            `json:"restaurant_id"`
	Period       string           `json:"period"`
	OrderCount   int64            `json:"order_count"`
	Revenue      string           `json:"revenue"`
	MostOrdered  *mostOrderedItem `json:"most_ordered"`
}

type mostOrderedItem struct {
	MenuItemID int64 `json:"menu_item_id"`
	ItemCount  int64 `json:"item_count"`
}

type interserviceOrderResponse struct {
	ID       int64  `json:"id"`
	StatusID int64  `json:"status_id"`
	Subtotal string `json:"subtotal"`
}
