package kernel

import (
	"errors"
	"fmt"
	"math"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

const (
	// MinLatitude and MaxLatitude bound valid latitude values in degrees.
	MinLatitude float64 = -90
	MaxLatitude float64 = 90

	// MinLongitude and MaxLongitude bound valid longitude values in degrees.
	MinLongitude float64 = -180
	MaxLongitude float64 = 180

	earthRadiusMeters = 6371000.0
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly
// initialized GeoPoint. Points must be created via NewGeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint is an immutable value object holding a validated WGS84 coordinate
// pair. The zero value is invalid and fails Validate; use NewGeoPoint.
//
// Example:
//
//	center, err := kernel.NewGeoPoint(50.6292, 3.0573)
//	if err != nil {
//	    // out-of-range coordinates
//	}
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat   float64
	long  float64
	guard guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint from latitude and longitude in degrees.
// Latitude must be within [-90, 90] and longitude within [-180, 180].
func NewGeoPoint(lat, long float64) (GeoPoint, error) {
	p := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLat(lat), p.setLong(long)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Validate checks that the point was created via NewGeoPoint.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Lat returns the latitude in degrees.
func (p GeoPoint) Lat() float64 {
	return p.lat
}

// Long returns the longitude in degrees.
func (p GeoPoint) Long() float64 {
	return p.long
}

// String implements fmt.Stringer.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%f,%f)", p.lat, p.long)
}

// DistanceMeters returns the great-circle distance to another point in
// meters, computed with the haversine formula. The distance is symmetric
// and monotonic in the angular separation of the two points.
func (p GeoPoint) DistanceMeters(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := p.lat * math.Pi / 180
	lat2 := other.lat * math.Pi / 180
	dLat := (other.lat - p.lat) * math.Pi / 180
	dLong := (other.long - p.long) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLong/2)*math.Sin(dLong/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c, nil
}

// setLat validates and assigns the latitude. Pointer receiver is intentional:
// private setters mutate during construction only.
func (p *GeoPoint) setLat(lat float64) error {
	if lat < MinLatitude || lat > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("lat", lat, MinLatitude, MaxLatitude)
	}

	p.lat = lat
	return nil
}

func (p *GeoPoint) setLong(long float64) error {
	if long < MinLongitude || long > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("long", long, MinLongitude, MaxLongitude)
	}

	p.long = long
	return nil
}
