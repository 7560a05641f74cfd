package geo

import (
	"errors"
	"math"
	"testing"
)

func TestCoordinate_Validate(t *testing.T) {
	tests := []struct {
		name      string
		c         Coordinate
		wantField string // empty means valid
	}{
		{"jakarta", Coordinate{-6.2088, 106.8456}, ""},
		{"north pole", Coordinate{90, 0}, ""},
		{"south pole", Coordinate{-90, 0}, ""},
		{"antimeridian east", Coordinate{0, 180}, ""},
		{"antimeridian west", Coordinate{0, -180}, ""},
		{"latitude too high", Coordinate{90.0001, 0}, "latitude"},
		{"latitude too low", Coordinate{-91, 0}, "latitude"},
		{"longitude too high", Coordinate{0, 180.5}, "longitude"},
		{"longitude too low", Coordinate{0, -200}, "longitude"},
		{"NaN latitude", Coordinate{math.NaN(), 0}, "latitude"},
		{"NaN longitude", Coordinate{0, math.NaN()}, "longitude"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrOutOfRange) {
				t.Fatalf("Validate() = %v, want ErrOutOfRange", err)
			}
			var re *RangeError
			if !errors.As(err, &re) {
				t.Fatalf("Validate() error is %T, want *RangeError", err)
			}
			if re.Field != tt.wantField {
				t.Errorf("RangeError.Field = %q, want %q", re.Field, tt.wantField)
			}
		})
	}
}

func TestCoordinate_String(t *testing.T) {
	got := Coordinate{-6.2088, 106.8456}.String()
	if got != "-6.2088, 106.8456" {
		t.Errorf("String() = %q", got)
	}
}

func TestJakartaFallback_IsValid(t *testing.T) {
	if err := Jakarta.Validate(); err != nil {
		t.Fatalf("fallback location invalid: %v", err)
	}
	if Jakarta.IsZero() {
		t.Error("fallback location should not be the zero coordinate")
	}
}
