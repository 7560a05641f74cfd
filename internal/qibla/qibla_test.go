package qibla

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smokyabdulrahman/salat/internal/geo"
)

var cities = []struct {
	name    string
	c       geo.Coordinate
	bearing float64
	km      float64
	compass string
}{
	{"Jakarta", geo.Coordinate{Latitude: -6.2088, Longitude: 106.8456}, 295.1517, 7920.1, "WNW"},
	{"New York", geo.Coordinate{Latitude: 40.7128, Longitude: -74.006}, 58.4817, 10306, "ENE"},
	{"London", geo.Coordinate{Latitude: 51.5074, Longitude: -0.1278}, 118.9872, 4793.8, "ESE"},
	{"Sydney", geo.Coordinate{Latitude: -33.8688, Longitude: 151.2093}, 277.4996, 13236, "W"},
}

func TestDirection_KnownCities(t *testing.T) {
	for _, tt := range cities {
		t.Run(tt.name, func(t *testing.T) {
			b := Direction(tt.c)
			assert.InDelta(t, tt.bearing, float64(b), 0.01)
			assert.Equal(t, tt.compass, b.Compass())
		})
	}
}

func TestDirection_InRange(t *testing.T) {
	for lat := -89.0; lat <= 89; lat += 7 {
		for lon := -180.0; lon <= 180; lon += 11 {
			b := float64(Direction(geo.Coordinate{Latitude: lat, Longitude: lon}))
			assert.GreaterOrEqual(t, b, 0.0)
			assert.Less(t, b, 360.0)
		}
	}
}

func TestDirection_LongitudeWrap(t *testing.T) {
	for _, tt := range cities {
		shifted := tt.c
		shifted.Longitude += 360
		assert.InDelta(t, float64(Direction(tt.c)), float64(Direction(shifted)), 1e-9, tt.name)
	}
}

func TestDirection_AtKaaba(t *testing.T) {
	assert.Equal(t, Bearing(0), Direction(Kaaba))
}

func TestDistance(t *testing.T) {
	for _, tt := range cities {
		assert.InDelta(t, tt.km, Distance(tt.c), 1.0, tt.name)
	}
	assert.InDelta(t, 0, Distance(Kaaba), 1e-9)
}

func TestBearing_Compass(t *testing.T) {
	tests := []struct {
		b    Bearing
		want string
	}{
		{0, "N"},
		{11.2, "N"},
		{11.3, "NNE"},
		{45, "NE"},
		{90, "E"},
		{180, "S"},
		{270, "W"},
		{348.7, "NNW"},
		{359.9, "N"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.b.Compass(), "bearing %v", tt.b)
	}
}

func TestBearing_String(t *testing.T) {
	assert.Equal(t, "295.15° WNW", Bearing(295.1517).String())
}
