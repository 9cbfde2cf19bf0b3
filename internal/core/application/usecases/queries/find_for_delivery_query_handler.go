package queries

import (
	"context"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/services"
	"orders/internal/core/ports"
)

// FindForDeliveryQueryHandler serves the deliverer-facing pickup search.
// Candidates come from the repository (orders awaiting a deliverer), the
// geo matcher trims them to the radius and pagination slices the result.
type FindForDeliveryQueryHandler struct {
	reader  ports.OrderRepository
	matcher services.GeoMatcher
}

// NewFindForDeliveryQueryHandler creates a handler for pickup searches.
func NewFindForDeliveryQueryHandler(
	reader ports.OrderRepository,
	matcher services.GeoMatcher,
) FindForDeliveryQueryHandler {
	return FindForDeliveryQueryHandler{
		reader:  reader,
		matcher: matcher,
	}
}

// Handle returns the requested page of candidates, keeping the
// repository's newest-first ordering. Without a center every awaiting
// order is a candidate; with one the geo matcher trims the set first.
// Total counts every match after the filter, so page boundaries stay
// consistent with it.
func (h FindForDeliveryQueryHandler) Handle(
	ctx context.Context,
	query FindForDeliveryQuery,
) (FindForDeliveryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return FindForDeliveryQueryResponse{}, err
	}

	matched, err := h.reader.ListAwaitingPickup(ctx)
	if err != nil {
		return FindForDeliveryQueryResponse{}, err
	}

	if query.Center() != nil {
		matched, err = h.matcher.Match(*query.Center(), query.RadiusMeters(), matched)
		if err != nil {
			return FindForDeliveryQueryResponse{}, err
		}
	}

	total := int64(len(matched))

	start := (query.Page() - 1) * query.Limit()
	if start >= len(matched) {
		return FindForDeliveryQueryResponse{Orders: []PickupCandidate{}, Total: total}, nil
	}
	end := start + query.Limit()
	if end > len(matched) {
		end = len(matched)
	}

	page := make([]PickupCandidate, 0, end-start)
	for _, aggregate := range matched[start:end] {
		candidate, err := h.toCandidate(query, aggregate)
		if err != nil {
			return FindForDeliveryQueryResponse{}, err
		}
		page = append(page, candidate)
	}

	return FindForDeliveryQueryResponse{Orders: page, Total: total}, nil
}

func (h FindForDeliveryQueryHandler) toCandidate(
	query FindForDeliveryQuery,
	aggregate *order.Order,
) (PickupCandidate, error) {
	address := aggregate.Address()

	var distance float64
	if query.Center() != nil {
		// Geo-matched orders always carry coordinates.
		var err error
		distance, err = query.Center().DistanceMeters(*address.Location)
		if err != nil {
			return PickupCandidate{}, err
		}
	}

	return PickupCandidate{
		ID:             aggregate.ID(),
		RestaurantID:   aggregate.RestaurantID(),
		Subtotal:       aggregate.Charges().Subtotal,
		DeliveryCosts:  aggregate.Charges().DeliveryCosts,
		StreetNumber:   address.StreetNumber,
		Street:         address.Street,
		City:           address.City,
		PostalCode:     address.PostalCode,
		Country:        address.Country,
		Location:       address.Location,
		DistanceMeters: distance,
	}, nil
}
