package kafkabus

import (
	"context"
	"encoding/json"
	"time"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const correlationHeader = "correlationId"

type deliveryCreatedEvent struct {
	OrderID     int64 `json:"orderId"`
	DelivererID int64 `json:"delivererId"`
}

type clientOrderItem struct {
	MenuItemID             int64   `json:"menu_item_id"`
	Quantity               int     `json:"quantity"`
	UnitPrice              float64 `json:"unit_price"`
	SelectedOptionValueIDs []int64 `json:"selected_option_value_ids"`
	Notes                  *string `json:"notes"`
}

type clientOrderEvent struct {
	ClientID       int64             `json:"client_id"`
	RestaurantID   int64             `json:"restaurant_id"`
	StatusID       int64             `json:"status_id"`
	Description    *string           `json:"description"`
	Subtotal       float64           `json:"subtotal"`
	DeliveryCosts  float64           `json:"delivery_costs"`
	ServiceCharge  float64           `json:"service_charge"`
	GlobalDiscount *float64          `json:"global_discount"`
	StreetNumber   string            `json:"street_number"`
	Street         string            `json:"street"`
	City           string            `json:"city"`
	PostalCode     string            `json:"postal_code"`
	Country        string            `json:"country"`
	Long           *float64          `json:"long"`
	Lat            *float64          `json:"lat"`
	Items          []clientOrderItem `json:"items"`
}

type detailsRequestEvent struct {
	ID int64 `json:"id"`
}

type detailsReplyItem struct {
	ID           int64                           `json:"id"`
	MenuItemID   int64                           `json:"menu_item_id"`
	Quantity     int                             `json:"quantity"`
	UnitPrice    string                          `json:"unit_price"`
	Notes        *string                         `json:"notes"`
	MenuItem     *ports.PeerMenuItem             `json:"menu_item"`
	OptionValues []ports.PeerMenuItemOptionValue `json:"option_values"`
}

type detailsReply struct {
	ID             int64                 `json:"id"`
	ClientID       int64                 `json:"client_id"`
	RestaurantID   int64                 `json:"restaurant_id"`
	DelivererID    *int64                `json:"deliverer_id"`
	StatusID       int64                 `json:"status_id"`
	Description    *string               `json:"description"`
	Subtotal       string                `json:"subtotal"`
	DeliveryCosts  string                `json:"delivery_costs"`
	ServiceCharge  string                `json:"service_charge"`
	GlobalDiscount string                `json:"global_discount"`
	StreetNumber   string                `json:"street_number"`
	Street         string                `json:"street"`
	City           string                `json:"city"`
	PostalCode     string                `json:"postal_code"`
	Country        string                `json:"country"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
	Client         *ports.PeerClient     `json:"client"`
	Restaurant     *ports.PeerRestaurant `json:"restaurant"`
	Deliverer      *ports.PeerDeliverer  `json:"deliverer"`
	Delivery       *ports.PeerDelivery   `json:"delivery"`
	Items          []detailsReplyItem    `json:"items"`
}

// handleDeliveryCreated assigns the deliverer announced by the delivery
// service. Replays are absorbed by the acceptance idempotency, so the
// message is safe to deliver more than once.
func (c *Consumer) handleDeliveryCreated(ctx context.Context, msg kafka.Message) {
	var event deliveryCreatedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.logger.Error("malformed delivery-created message", zap.Error(err))
		return
	}
	if event.OrderID == 0 || event.DelivererID == 0 {
		c.logger.Error("delivery-created message missing orderId or delivererId",
			zap.ByteString("payload", msg.Value))
		return
	}

	cmd, err := commands.NewAcceptOrderCommand(event.OrderID, event.DelivererID)
	if err != nil {
		c.logger.Error("invalid delivery-created message",
			zap.Int64("orderId", event.OrderID), zap.Error(err))
		return
	}

	if _, err = c.accept.Handle(ctx, cmd); err != nil {
		c.logger.Error("accept order failed",
			zap.Int64("orderId", event.OrderID),
			zap.Int64("delivererId", event.DelivererID),
			zap.Error(err))
		return
	}

	c.logger.Info("order accepted from bus",
		zap.Int64("orderId", event.OrderID),
		zap.Int64("delivererId", event.DelivererID))
}

// handleClientOrder creates an order from a bus-published draft, running
// the same validation as the HTTP path.
func (c *Consumer) handleClientOrder(ctx context.Context, msg kafka.Message) {
	var event clientOrderEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.logger.Error("malformed client order message", zap.Error(err))
		return
	}

	cmd, err := buildCreateCommand(event)
	if err != nil {
		c.logger.Error("invalid client order message", zap.Error(err))
		return
	}

	created, err := c.creator.Handle(ctx, cmd)
	if err != nil {
		c.logger.Error("create order failed",
			zap.Int64("clientId", event.ClientID), zap.Error(err))
		return
	}

	c.logger.Info("order created from bus", zap.Int64("orderId", created.ID()))
}

// handleDetailsRequest answers an order detail request on the reply topic,
// echoing the request's correlation id header. Requests without a
// correlation id cannot be routed back and are dropped.
func (c *Consumer) handleDetailsRequest(ctx context.Context, msg kafka.Message) {
	var event detailsRequestEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.logger.Error("malformed details request", zap.Error(err))
		return
	}

	correlationID := headerValue(msg, correlationHeader)
	if correlationID == "" {
		c.logger.Error("details request without correlation id",
			zap.Int64("orderId", event.ID))
		return
	}

	query, err := queries.NewGetOrderDetailsQuery(event.ID)
	if err != nil {
		c.logger.Error("invalid details request",
			zap.Int64("orderId", event.ID), zap.Error(err))
		return
	}

	details, err := c.details.Handle(ctx, query)
	if err != nil {
		c.logger.Error("details lookup failed",
			zap.Int64("orderId", event.ID), zap.Error(err))
		return
	}

	payload, err := json.Marshal(toDetailsReply(details))
	if err != nil {
		c.logger.Error("details reply encoding failed",
			zap.Int64("orderId", event.ID), zap.Error(err))
		return
	}

	reply := kafka.Message{
		Key:   []byte(uuid.NewString()),
		Value: payload,
		Headers: []kafka.Header{
			{Key: correlationHeader, Value: []byte(correlationID)},
		},
	}
	if err = c.replies.WriteMessages(ctx, reply); err != nil {
		c.logger.Error("details reply publish failed",
			zap.Int64("orderId", event.ID), zap.Error(err))
		return
	}

	c.logger.Info("details reply sent",
		zap.Int64("orderId", event.ID),
		zap.String("correlationId", correlationID))
}

func buildCreateCommand(event clientOrderEvent) (commands.CreateOrderCommand, error) {
	statusID := event.StatusID
	if statusID == 0 {
		statusID = int64(order.AwaitingRestaurant)
	}

	var location *kernel.GeoPoint
	if event.Lat != nil && event.Long != nil {
		point, err := kernel.NewGeoPoint(*event.Lat, *event.Long)
		if err != nil {
			return commands.CreateOrderCommand{}, err
		}
		location = &point
	}

	items := make([]order.Item, 0, len(event.Items))
	for _, line := range event.Items {
		item, err := order.NewItem(
			line.MenuItemID,
			line.Quantity,
			decimal.NewFromFloat(line.UnitPrice),
			line.SelectedOptionValueIDs,
			line.Notes,
		)
		if err != nil {
			return commands.CreateOrderCommand{}, err
		}
		items = append(items, item)
	}

	discount := decimal.Zero
	if event.GlobalDiscount != nil {
		discount = decimal.NewFromFloat(*event.GlobalDiscount)
	}

	return commands.NewCreateOrderCommand(
		event.ClientID,
		event.RestaurantID,
		order.Status(statusID),
		event.Description,
		order.Charges{
			Subtotal:       decimal.NewFromFloat(event.Subtotal),
			DeliveryCosts:  decimal.NewFromFloat(event.DeliveryCosts),
			ServiceCharge:  decimal.NewFromFloat(event.ServiceCharge),
			GlobalDiscount: discount,
		},
		order.Address{
			StreetNumber: event.StreetNumber,
			Street:       event.Street,
			City:         event.City,
			PostalCode:   event.PostalCode,
			Country:      event.Country,
			Location:     location,
		},
		items,
	)
}

func toDetailsReply(details *queries.GetOrderDetailsQueryResponse) detailsReply {
	items := make([]detailsReplyItem, 0, len(details.Items))
	for _, item := range details.Items {
		items = append(items, detailsReplyItem{
			ID:           item.ID,
			MenuItemID:   item.MenuItemID,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice.StringFixed(2),
			Notes:        item.Notes,
			MenuItem:     item.MenuItem,
			OptionValues: item.OptionValues,
		})
	}

	return detailsReply{
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

func headerValue(msg kafka.Message, key string) string {
	for _, header := range msg.Headers {
		if header.Key == key {
			return string(header.Value)
		}
	}
	return ""
}
