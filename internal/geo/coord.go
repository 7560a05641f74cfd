// Package geo holds the observer's position and the ways the CLI obtains it.
package geo

import (
	"errors"
	"fmt"
	"math"
)

// ErrOutOfRange is returned for latitudes outside [-90, 90] or longitudes
// outside [-180, 180].
var ErrOutOfRange = errors.New("coordinate out of range")

// RangeError reports which coordinate was rejected.
type RangeError struct {
	Field string // "latitude" or "longitude"
	Value float64
	Min   float64
	Max   float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %g out of range [%g, %g]", e.Field, e.Value, e.Min, e.Max)
}

// Unwrap lets errors.Is match ErrOutOfRange.
func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}

// Coordinate is a point on Earth in degrees, north and east positive.
type Coordinate struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// Validate checks both components. NaN is never in range.
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Latitude) || c.Latitude < -90 || c.Latitude > 90 {
		return &RangeError{Field: "latitude", Value: c.Latitude, Min: -90, Max: 90}
	}
	if math.IsNaN(c.Longitude) || c.Longitude < -180 || c.Longitude > 180 {
		return &RangeError{Field: "longitude", Value: c.Longitude, Min: -180, Max: 180}
	}
	return nil
}

// IsZero reports whether c is the zero value, which the CLI treats as "not set".
func (c Coordinate) IsZero() bool {
	return c.Latitude == 0 && c.Longitude == 0
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.4f, %.4f", c.Latitude, c.Longitude)
}

// Jakarta is used when no location is configured and detection fails.
var Jakarta = Location{
	Coordinate: Coordinate{Latitude: -6.2088, Longitude: 106.8456},
	City:       "Jakarta",
	Country:    "Indonesia",
	Timezone:   "Asia/Jakarta",
}
