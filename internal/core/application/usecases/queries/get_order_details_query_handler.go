package queries

import (
	"context"
	"sync"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"

	"go.uber.org/zap"
)

// GetOrderDetailsQueryHandler assembles the enriched order view. Peer
// lookups fan out concurrently and every branch soft-fails: an unreachable
// peer degrades its field to nil and logs a warning, it never fails the
// whole read.
type GetOrderDetailsQueryHandler struct {
	reader  ports.OrderRepository
	gateway ports.PeerGateway
	logger  *zap.Logger
}

// NewGetOrderDetailsQueryHandler creates a handler for enriched order reads.
func NewGetOrderDetailsQueryHandler(
	reader ports.OrderRepository,
	gateway ports.PeerGateway,
	logger *zap.Logger,
) GetOrderDetailsQueryHandler {
	return GetOrderDetailsQueryHandler{
		reader:  reader,
		gateway: gateway,
		logger:  logger.With(zap.String("component", "order_details")),
	}
}

// Handle loads the order and resolves its foreign ids against the owning
// services. The deliverer branch only runs for assigned orders. Returns
// errs.ObjectNotFoundError when the order itself does not exist.
func (h GetOrderDetailsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderDetailsQuery,
) (*GetOrderDetailsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := h.reader.Get(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	response := baseResponse(aggregate)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		client, fetchErr := h.gateway.FetchClient(ctx, aggregate.ClientID())
		if fetchErr != nil {
			h.warn("client lookup failed", aggregate.ID(), fetchErr)
			return
		}
		response.Client = client
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		restaurant, fetchErr := h.gateway.FetchRestaurant(ctx, aggregate.RestaurantID())
		if fetchErr != nil {
			h.warn("restaurant lookup failed", aggregate.ID(), fetchErr)
			return
		}
		response.Restaurant = restaurant
	}()

	if delivererID := aggregate.DelivererID(); delivererID != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			deliverer, fetchErr := h.gateway.FetchDeliverer(ctx, *delivererID)
			if fetchErr != nil {
				h.warn("deliverer lookup failed", aggregate.ID(), fetchErr)
				return
			}
			response.Deliverer = deliverer
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		delivery, fetchErr := h.gateway.FetchDeliveryByOrderID(ctx, aggregate.ID())
		if fetchErr != nil {
			h.warn("delivery lookup failed", aggregate.ID(), fetchErr)
			return
		}
		response.Delivery = delivery
	}()

	for i := range response.Items {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.enrichItem(ctx, aggregate.ID(), &response.Items[i])
		}()
	}

	wg.Wait()

	return response, nil
}

func (h GetOrderDetailsQueryHandler) enrichItem(ctx context.Context, orderID int64, item *EnrichedOrderItem) {
	menuItem, err := h.gateway.FetchMenuItem(ctx, item.MenuItemID)
	if err != nil {
		h.warn("menu item lookup failed", orderID, err)
	} else {
		item.MenuItem = menuItem
	}

	if len(item.optionValueIDs) > 0 {
		item.OptionValues = h.gateway.FetchMenuItemOptionValues(ctx, item.optionValueIDs)
	}
}

func (h GetOrderDetailsQueryHandler) warn(msg string, orderID int64, err error) {
	h.logger.Warn(msg, zap.Int64("order_id", orderID), zap.Error(err))
}

func baseResponse(aggregate *order.Order) *GetOrderDetailsQueryResponse {
	charges := aggregate.Charges()
	address := aggregate.Address()

	items := make([]EnrichedOrderItem, 0, len(aggregate.Items()))
	for _, line := range aggregate.Items() {
		items = append(items, EnrichedOrderItem{
			ID:             line.ID(),
			MenuItemID:     line.MenuItemID(),
			Quantity:       line.Quantity(),
			UnitPrice:      line.UnitPrice(),
			Notes:          line.Notes(),
			optionValueIDs: line.SelectedOptionValueIDs(),
		})
	}

	return &GetOrderDetailsQueryResponse{
		ID:             aggregate.ID(),
		ClientID:       aggregate.ClientID(),
		RestaurantID:   aggregate.RestaurantID(),
		DelivererID:    aggregate.DelivererID(),
		StatusID:       int64(aggregate.Status()),
		Description:    aggregate.Description(),
		Subtotal:       charges.Subtotal,
		DeliveryCosts:  charges.DeliveryCosts,
		ServiceCharge:  charges.ServiceCharge,
		GlobalDiscount: charges.GlobalDiscount,
		StreetNumber:   address.StreetNumber,
		Street:         address.Street,
		City:           address.City,
		PostalCode:     address.PostalCode,
		Country:        address.Country,
		CreatedAt:      aggregate.CreatedAt(),
		UpdatedAt:      aggregate.UpdatedAt(),
		Items:          items,
	}
}
