package services

import (
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
)

// GeoMatcher filters candidate orders by great-circle distance from a
// deliverer's position. It is a stateless domain service; distance
// semantics live on kernel.GeoPoint.
type GeoMatcher struct{}

// NewGeoMatcher creates a GeoMatcher.
func NewGeoMatcher() GeoMatcher {
	return GeoMatcher{}
}

// Match returns the subset of candidates whose delivery address lies within
// radiusMeters of center. Candidate order and input order preserve their
// relative ordering. Orders without coordinates are excluded, never matched.
func (GeoMatcher) Match(
	center kernel.GeoPoint,
	radiusMeters float64,
	candidates []*order.Order,
) ([]*order.Order, error) {
	if err := center.Validate(); err != nil {
		return nil, err
	}
	if radiusMeters <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("perimeter", radiusMeters, 0, "unbounded")
	}

	matched := make([]*order.Order, 0, len(candidates))
	for _, candidate := range candidates {
		location := candidate.Address().Location
		if location == nil {
			continue
		}

		distance, err := center.DistanceMeters(*location)
		if err != nil {
			return nil, err
		}

		if distance <= radiusMeters {
			matched = append(matched, candidate)
		}
	}

	return matched, nil
}
