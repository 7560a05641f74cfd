package prayer

import (
	"errors"
	"fmt"
	"time"

	"github.com/smokyabdulrahman/salat/internal/astro"
	"github.com/smokyabdulrahman/salat/internal/geo"
	"github.com/smokyabdulrahman/salat/internal/method"
	"github.com/smokyabdulrahman/salat/internal/zone"
)

// DhuhrSafetyOffset is added to solar noon so Dhuhr falls after the Sun has
// crossed the meridian.
const DhuhrSafetyOffset = 2 * time.Minute

// ErrInvalidSchedule is returned when computed times are not strictly
// increasing.
var ErrInvalidSchedule = errors.New("prayer times out of order")

// Approximate local solar hour of each event. The Sun's position is
// evaluated at these instants.
var solarGuess = [numEvents]float64{
	Fajr:    5,
	Sunrise: 6,
	Dhuhr:   12,
	Asr:     13,
	Maghrib: 18,
	Isha:    18,
}

// EventError names the event that could not be computed.
type EventError struct {
	Event Event
	Err   error
}

func (e *EventError) Error() string {
	return fmt.Sprintf("computing %s: %v", e.Event, e.Err)
}

func (e *EventError) Unwrap() error {
	return e.Err
}

// Schedule is the six times of one civil date at one place. It is immutable.
type Schedule struct {
	date   time.Time // midnight in loc
	coord  geo.Coordinate
	params method.Params
	loc    *time.Location
	times  [numEvents]time.Time
}

// Compute returns the schedule for the calendar date of date at coord,
// expressed in a fixed zone of round(longitude/15) hours.
func Compute(coord geo.Coordinate, date time.Time, params method.Params) (*Schedule, error) {
	return ComputeIn(coord, date, params, nil)
}

// ComputeIn is Compute with an explicit civil zone. A nil loc selects the
// longitude zone. Only the year, month and day of date are used.
func ComputeIn(coord geo.Coordinate, date time.Time, params method.Params, loc *time.Location) (*Schedule, error) {
	if err := coord.Validate(); err != nil {
		return nil, err
	}
	if loc == nil {
		loc = zone.ForLongitude(coord.Longitude)
	}

	y, m, d := date.Date()
	hours, err := solve(astro.NewDay(y, m, d, coord.Longitude), coord.Latitude, params)
	if err != nil {
		return nil, err
	}

	s := &Schedule{
		date:   time.Date(y, m, d, 0, 0, 0, 0, loc),
		coord:  coord,
		params: params,
		loc:    loc,
	}
	for _, e := range Events {
		t := astro.HoursToTime(y, m, d, hours[e]).In(loc)
		s.times[e] = t.Add(adjustment(params.Adjustments, e))
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// solve returns each event as fractional UTC hours on the day.
func solve(day astro.Day, lat float64, p method.Params) ([numEvents]float64, error) {
	var h [numEvents]float64
	var err error

	if h[Fajr], err = day.Before(solarGuess[Fajr], p.FajrAngle, lat); err != nil {
		return h, &EventError{Event: Fajr, Err: err}
	}
	if h[Sunrise], err = day.Before(solarGuess[Sunrise], astro.SunriseDepression, lat); err != nil {
		return h, &EventError{Event: Sunrise, Err: err}
	}

	h[Dhuhr] = day.Noon(solarGuess[Dhuhr]) + DhuhrSafetyOffset.Hours()

	if h[Asr], err = day.Asr(solarGuess[Asr], p.Madhab.ShadowFactor(), lat); err != nil {
		return h, &EventError{Event: Asr, Err: err}
	}

	maghribAngle := p.MaghribAngle
	if maghribAngle == 0 {
		maghribAngle = astro.SunriseDepression
	}
	if h[Maghrib], err = day.After(solarGuess[Maghrib], maghribAngle, lat); err != nil {
		return h, &EventError{Event: Maghrib, Err: err}
	}

	if p.IshaInterval > 0 {
		h[Isha] = h[Maghrib] + p.IshaInterval.Hours()
	} else if h[Isha], err = day.After(solarGuess[Isha], p.IshaAngle, lat); err != nil {
		return h, &EventError{Event: Isha, Err: err}
	}

	return h, nil
}

func adjustment(a method.Adjustments, e Event) time.Duration {
	switch e {
	case Fajr:
		return a.Fajr
	case Sunrise:
		return a.Sunrise
	case Dhuhr:
		return a.Dhuhr
	case Asr:
		return a.Asr
	case Maghrib:
		return a.Maghrib
	case Isha:
		return a.Isha
	}
	return 0
}

// Validate checks that the six times are strictly increasing.
func (s *Schedule) Validate() error {
	for i := 1; i < numEvents; i++ {
		prev, cur := Event(i-1), Event(i)
		if !s.times[cur].After(s.times[prev]) {
			return fmt.Errorf("%w: %s at %s is not after %s at %s", ErrInvalidSchedule,
				cur, s.times[cur].Format(time.TimeOnly), prev, s.times[prev].Format(time.TimeOnly))
		}
	}
	return nil
}

// Date returns midnight of the schedule's civil date in its zone.
func (s *Schedule) Date() time.Time { return s.date }

// Coordinate returns the observer position.
func (s *Schedule) Coordinate() geo.Coordinate { return s.coord }

// Params returns the calculation method used.
func (s *Schedule) Params() method.Params { return s.params }

// Location returns the civil zone the times are expressed in.
func (s *Schedule) Location() *time.Location { return s.loc }

// Time returns the full-precision instant of e.
func (s *Schedule) Time(e Event) time.Time {
	if !e.valid() {
		return time.Time{}
	}
	return s.times[e]
}

// Display formats e rounded to the nearest minute.
func (s *Schedule) Display(e Event, layout string) string {
	return s.Time(e).Round(time.Minute).Format(layout)
}

// List returns the requested events as Prayer values in the given order.
// With no arguments it returns all six.
func (s *Schedule) List(events ...Event) []Prayer {
	if len(events) == 0 {
		events = Events
	}
	out := make([]Prayer, 0, len(events))
	for _, e := range events {
		if !e.valid() {
			continue
		}
		out = append(out, Prayer{Event: e, Name: e.String(), Time: s.times[e]})
	}
	return out
}

// On computes the schedule for another date with the same place, method
// and zone.
func (s *Schedule) On(date time.Time) (*Schedule, error) {
	return ComputeIn(s.coord, date, s.params, s.loc)
}

// Tomorrow computes the schedule for the following civil date.
func (s *Schedule) Tomorrow() (*Schedule, error) {
	return s.On(s.date.AddDate(0, 0, 1))
}
