// Package astro computes the solar quantities prayer times are derived from:
// declination, equation of time and the hour angle at which the Sun reaches
// a given depression below the horizon.
//
// The model is the usual low-precision one (mean anomaly, mean longitude,
// equation of center, obliquity) and is good to roughly a minute of time,
// which matches the accuracy of published prayer timetables.
package astro

import (
	"errors"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// SunriseDepression is the depression of the Sun's center at apparent
// sunrise and sunset: 16' semi-diameter plus 34' of refraction.
const SunriseDepression = 0.833

// j2000 is the Julian day of the J2000.0 epoch.
const j2000 = 2451545.0

// ErrNoSolutionAtLatitude is returned when the Sun never reaches the
// requested depression on that date at that latitude (polar day or night
// for that angle).
var ErrNoSolutionAtLatitude = errors.New("no solution at latitude")

// Position is the Sun's declination and equation of time at an instant.
type Position struct {
	Declination    float64 // degrees
	EquationOfTime float64 // minutes, apparent minus mean solar time
}

// JulianDay returns the Julian day at 0h UT of the given Gregorian date.
func JulianDay(year int, month time.Month, day int) float64 {
	return julian.CalendarGregorianToJD(year, int(month), float64(day))
}

// PositionAt returns the solar position at Julian day jd.
func PositionAt(jd float64) Position {
	d := jd - j2000

	// Mean anomaly and mean longitude (deg)
	g := Normalize360(357.529 + 0.98560028*d)
	q := Normalize360(280.459 + 0.98564736*d)

	// Ecliptic longitude with equation of center
	l := Normalize360(q + 1.915*SinD(g) + 0.020*SinD(2*g))

	// Obliquity of the ecliptic
	eps := 23.439 - 0.00000036*d

	ra := Normalize24(Rad2Deg(math.Atan2(CosD(eps)*SinD(l), CosD(l))) / 15)
	eqt := normalizeHalfDay(q/15 - ra)

	return Position{
		Declination:    Rad2Deg(math.Asin(SinD(eps) * SinD(l))),
		EquationOfTime: eqt * 60,
	}
}

// HourAngle returns the time in hours between solar noon and the moment the
// Sun's center is depression degrees below the horizon, for an observer at
// lat with the Sun at declination decl. Negative depressions are altitudes
// above the horizon.
func HourAngle(depression, lat, decl float64) (float64, error) {
	cosH := (SinD(-depression) - SinD(lat)*SinD(decl)) / (CosD(lat) * CosD(decl))
	if math.IsNaN(cosH) || cosH < -1 || cosH > 1 {
		return 0, ErrNoSolutionAtLatitude
	}
	return Rad2Deg(math.Acos(cosH)) / 15, nil
}

// AsrAltitude returns the altitude of the Sun when an object's shadow equals
// factor times its height plus its shadow at noon.
func AsrAltitude(factor, lat, decl float64) float64 {
	return Rad2Deg(math.Atan(1 / (factor + TanD(math.Abs(lat-decl)))))
}

// Day is a civil date at a given longitude. Solar quantities are evaluated at
// the approximate local solar time of each event, which is enough refinement
// for minute-level results.
type Day struct {
	jd  float64
	lon float64
}

// NewDay binds a calendar date to a longitude (degrees, east positive).
func NewDay(year int, month time.Month, day int, lon float64) Day {
	return Day{jd: JulianDay(year, month, day), lon: lon}
}

// Position returns the solar position at local solar time hours.
func (d Day) Position(hours float64) Position {
	return PositionAt(d.jd + (hours-d.lon/15)/24)
}

// Noon returns true solar noon in fractional UTC hours, using the equation
// of time evaluated at local solar time hours.
func (d Day) Noon(hours float64) float64 {
	return 12 - d.Position(hours).EquationOfTime/60 - d.lon/15
}

// Before returns the UTC hour at which the Sun reaches depression before
// noon (rising).
func (d Day) Before(hours, depression, lat float64) (float64, error) {
	h, err := HourAngle(depression, lat, d.Position(hours).Declination)
	if err != nil {
		return 0, err
	}
	return d.Noon(hours) - h, nil
}

// After returns the UTC hour at which the Sun reaches depression after noon
// (setting).
func (d Day) After(hours, depression, lat float64) (float64, error) {
	h, err := HourAngle(depression, lat, d.Position(hours).Declination)
	if err != nil {
		return 0, err
	}
	return d.Noon(hours) + h, nil
}

// Asr returns the UTC hour of the afternoon shadow-length event.
func (d Day) Asr(hours, factor, lat float64) (float64, error) {
	decl := d.Position(hours).Declination
	return d.After(hours, -AsrAltitude(factor, lat, decl), lat)
}

// HoursToTime converts fractional UTC hours on the given date into an
// instant. Hours may be negative or past 24.
func HoursToTime(year int, month time.Month, day int, h float64) time.Time {
	base := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return base.Add(time.Duration(math.Round(h * float64(time.Hour))))
}

func normalizeHalfDay(h float64) float64 {
	return Normalize24(h+12) - 12
}
