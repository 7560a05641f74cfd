// Package qibla computes the direction and distance to the Kaaba.
package qibla

import (
	"fmt"
	"math"

	"github.com/smokyabdulrahman/salat/internal/astro"
	"github.com/smokyabdulrahman/salat/internal/geo"
)

// Kaaba is the position of the Kaaba in Makkah.
var Kaaba = geo.Coordinate{Latitude: 21.4225, Longitude: 39.8262}

// EarthRadiusKm is the mean Earth radius used for distances.
const EarthRadiusKm = 6371.0

// Bearing is a direction in degrees clockwise from true north, in [0, 360).
type Bearing float64

var compassPoints = [...]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// Compass returns the nearest of the 16 compass points.
func (b Bearing) Compass() string {
	i := int(math.Round(float64(b)/22.5)) % len(compassPoints)
	return compassPoints[i]
}

func (b Bearing) String() string {
	return fmt.Sprintf("%.2f° %s", float64(b), b.Compass())
}

// Direction returns the initial great-circle bearing from c to the Kaaba.
// Longitudes are taken modulo 360, so c need not be normalized.
func Direction(c geo.Coordinate) Bearing {
	dLon := Kaaba.Longitude - c.Longitude
	y := astro.SinD(dLon) * astro.CosD(Kaaba.Latitude)
	x := astro.CosD(c.Latitude)*astro.SinD(Kaaba.Latitude) -
		astro.SinD(c.Latitude)*astro.CosD(Kaaba.Latitude)*astro.CosD(dLon)

	b := astro.Normalize360(astro.Rad2Deg(math.Atan2(y, x)))
	if b >= 360 {
		b = 0
	}
	return Bearing(b)
}

// Distance returns the great-circle distance from c to the Kaaba in
// kilometres (haversine).
func Distance(c geo.Coordinate) float64 {
	dLat := astro.Deg2Rad(Kaaba.Latitude - c.Latitude)
	dLon := astro.Deg2Rad(Kaaba.Longitude - c.Longitude)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		astro.CosD(c.Latitude)*astro.CosD(Kaaba.Latitude)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
