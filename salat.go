// Package salat computes Islamic prayer times, the Qibla direction and an
// approximate Hijri date for any place on Earth, entirely offline.
//
// The functions here are thin wrappers over the internal packages and are
// safe for concurrent use: every call takes its inputs as values and
// returns freshly allocated results.
package salat

import (
	"time"

	"github.com/smokyabdulrahman/salat/internal/astro"
	"github.com/smokyabdulrahman/salat/internal/geo"
	"github.com/smokyabdulrahman/salat/internal/hijri"
	"github.com/smokyabdulrahman/salat/internal/method"
	"github.com/smokyabdulrahman/salat/internal/prayer"
	"github.com/smokyabdulrahman/salat/internal/qibla"
	"github.com/smokyabdulrahman/salat/internal/zone"
)

// Errors returned by this package. Match them with errors.Is.
var (
	ErrNoSolutionAtLatitude = astro.ErrNoSolutionAtLatitude
	ErrUnknownMethod        = method.ErrUnknownMethod
	ErrOutOfRange           = geo.ErrOutOfRange
)

type (
	Schedule  = prayer.Schedule
	Event     = prayer.Event
	NextState = prayer.NextState
	Params    = method.Params
	HijriDate = hijri.Date
	Zone      = zone.Label
)

// The six daily times, in order.
const (
	Fajr    = prayer.Fajr
	Sunrise = prayer.Sunrise
	Dhuhr   = prayer.Dhuhr
	Asr     = prayer.Asr
	Maghrib = prayer.Maghrib
	Isha    = prayer.Isha
)

// ComputeSchedule returns the six times for the calendar date of date at
// (lat, lon) using the named method. An empty name selects the default
// (Kemenag).
func ComputeSchedule(lat, lon float64, date time.Time, methodName string) (*Schedule, error) {
	params, err := Method(methodName)
	if err != nil {
		return nil, err
	}
	return prayer.Compute(geo.Coordinate{Latitude: lat, Longitude: lon}, date, params)
}

// NextPrayer returns the first prayer strictly after now, rolling over to
// tomorrow's Fajr once today's Isha has passed.
func NextPrayer(s *Schedule, now time.Time) (NextState, error) {
	return prayer.NextPrayer(s, now)
}

// QiblaBearing returns the initial great-circle bearing from (lat, lon) to
// the Kaaba in degrees clockwise from true north, in [0, 360).
func QiblaBearing(lat, lon float64) float64 {
	return float64(qibla.Direction(geo.Coordinate{Latitude: lat, Longitude: lon}))
}

// ToHijri converts the calendar date of date to an approximate Hijri date.
func ToHijri(date time.Time) HijriDate {
	return hijri.FromGregorian(date)
}

// LabelTimezone returns WIB, WITA or WIT for a longitude.
func LabelTimezone(lon float64) Zone {
	return zone.LabelFor(lon)
}

// Methods lists the registered calculation methods, default first.
func Methods() []string {
	return method.Names()
}

// Method looks up a calculation method by name. An empty name returns the
// default.
func Method(name string) (Params, error) {
	if name == "" {
		return method.Default(), nil
	}
	return method.Lookup(name)
}
