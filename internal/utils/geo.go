package utils

import (
	"fmt"
	"math"

	"github.com/mmcloughlin/geohash"
	"github.com/piresc/carpool/internal/pkg/models"
)

const (
	// earthRadiusMeters is the mean Earth radius used by the haversine formula
	earthRadiusMeters = 6371000.0

	// DefaultThresholdMeters is the checkpoint arrival radius
	DefaultThresholdMeters = 50.0

	// DefaultCellPrecision is the geohash length stored with ride history (~1.2m x 0.6m)
	DefaultCellPrecision uint = 9
)

// ErrCoordinateOutOfRange is returned by ValidateCoordinate
var ErrCoordinateOutOfRange = fmt.Errorf("coordinate out of range")

// DistanceMeters calculates the great-circle distance between two points in meters
// using the Haversine formula. Inputs are not range checked.
func DistanceMeters(a, b models.Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180.0
	lat2 := b.Lat * math.Pi / 180.0
	dLat := lat2 - lat1
	dLng := (b.Lng - a.Lng) * math.Pi / 180.0

	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	// rounding can push h slightly outside [0,1] near identical or antipodal points
	h = math.Min(1, math.Max(0, h))

	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// IsWithinThreshold reports whether loc is at most thresholdMeters from checkpoint.
// The boundary is inclusive.
func IsWithinThreshold(loc, checkpoint models.Coordinate, thresholdMeters float64) bool {
	return DistanceMeters(loc, checkpoint) <= thresholdMeters
}

// EncodeCell converts a coordinate to a geohash string
func EncodeCell(c models.Coordinate, precision uint) string {
	return geohash.EncodeWithPrecision(c.Lat, c.Lng, precision)
}

// ValidateCoordinate checks that latitude and longitude are finite and in range
func ValidateCoordinate(c models.Coordinate) error {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lng, 0) {
		return fmt.Errorf("%w: non-finite value", ErrCoordinateOutOfRange)
	}
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: latitude %v", ErrCoordinateOutOfRange, c.Lat)
	}
	if c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("%w: longitude %v", ErrCoordinateOutOfRange, c.Lng)
	}
	return nil
}
