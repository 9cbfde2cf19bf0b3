// Package kernel contains shared value objects used across the order
// domain model. Currently this is the GeoPoint coordinate pair, which
// carries its own validation and great-circle distance calculation.
package kernel
