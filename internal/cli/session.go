package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salat/internal/cache"
	"github.com/smokyabdulrahman/salat/internal/config"
	"github.com/smokyabdulrahman/salat/internal/geo"
	"github.com/smokyabdulrahman/salat/internal/method"
	"github.com/smokyabdulrahman/salat/internal/prayer"
	"github.com/smokyabdulrahman/salat/internal/zone"
)

// detectLocation is swapped out in tests to keep them offline.
var detectLocation = geo.DetectLocation

// locationSource describes where the coordinate came from.
type locationSource int

const (
	sourceFlags locationSource = iota
	sourceCache
	sourceDetected
	sourceFallback
)

func (s locationSource) String() string {
	switch s {
	case sourceFlags:
		return "configured"
	case sourceCache:
		return "cached"
	case sourceDetected:
		return "detected"
	default:
		return "fallback"
	}
}

// resolvedLocation holds the result of location resolution.
type resolvedLocation struct {
	geo.Location
	Source locationSource
}

// session is everything a command needs to compute schedules: the merged
// config, where we are, which method, which zone and what "now" is.
type session struct {
	cfg    *config.Config
	place  resolvedLocation
	params method.Params
	loc    *time.Location
	layout string
	now    time.Time
	date   time.Time
	dated  bool // --date was given
	memo   *cache.ScheduleMemo
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return nil, err
	}

	params, err := cfg.Params()
	if err != nil {
		return nil, err
	}

	// Cache init failure is non-fatal; we just skip caching.
	c, err := cache.New(cfg.CacheDir, clock)
	if err != nil {
		c = nil
		log.Warn().Err(err).Msg("cache disabled")
	}

	place, err := resolveLocation(cmd.Context(), cfg, c)
	if err != nil {
		return nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	if loc == nil && place.Timezone != "" {
		if l, err := time.LoadLocation(place.Timezone); err == nil {
			loc = l
		} else {
			log.Debug().Err(err).Str("timezone", place.Timezone).Msg("ignoring detected timezone")
		}
	}
	if loc == nil {
		loc = zone.ForLongitude(place.Longitude)
	}

	memo, err := cache.NewScheduleMemo(cache.DefaultMemoSize)
	if err != nil {
		return nil, err
	}

	now := clock.Now().In(loc)
	s := &session{
		cfg:    cfg,
		place:  place,
		params: params,
		loc:    loc,
		layout: cfg.Layout(),
		now:    now,
		date:   now,
		memo:   memo,
	}

	if flagWasSet(cmd.Flags(), cmd.Root().PersistentFlags(), "date") {
		d, err := time.ParseInLocation(time.DateOnly, FlagDate, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid --date %q: must be YYYY-MM-DD", FlagDate)
		}
		s.date = d
		s.dated = true
	}

	log.Debug().
		Str("location", place.Coordinate.String()).
		Str("source", place.Source.String()).
		Str("method", params.Name).
		Str("madhab", params.Madhab.String()).
		Str("zone", loc.String()).
		Msg("session resolved")

	return s, nil
}

// resolveLocation determines the effective location.
// Priority: CLI flags/env/config > cached geolocation > IP auto-detect > Jakarta.
func resolveLocation(ctx context.Context, cfg *config.Config, c *cache.Cache) (resolvedLocation, error) {
	coord, ok, err := cfg.Coordinate()
	if err != nil {
		return resolvedLocation{}, err
	}
	if ok {
		return resolvedLocation{
			Location: geo.Location{Coordinate: coord, City: cfg.City},
			Source:   sourceFlags,
		}, nil
	}

	// Try cached geolocation first.
	if c != nil {
		if cached := c.LoadGeo(); cached != nil {
			return resolvedLocation{Location: withCity(*cached, cfg.City), Source: sourceCache}, nil
		}
	}

	if ctx == nil {
		ctx = context.Background()
	}

	// Fall back to IP-based geolocation.
	detected, err := detectLocation(ctx)
	if err != nil {
		log.Warn().Err(err).Str("fallback", geo.Jakarta.City).Msg("no location specified and auto-detection failed")
		return resolvedLocation{Location: withCity(geo.Jakarta, cfg.City), Source: sourceFallback}, nil
	}

	// Cache the detected location.
	if c != nil {
		if err := c.SaveGeo(detected); err != nil {
			log.Debug().Err(err).Msg("could not cache location")
		}
	}

	return resolvedLocation{Location: withCity(*detected, cfg.City), Source: sourceDetected}, nil
}

func withCity(l geo.Location, city string) geo.Location {
	if city != "" {
		l.City = city
	}
	return l
}

// schedule computes the times for the calendar date of d.
func (s *session) schedule(d time.Time) (*prayer.Schedule, error) {
	return s.memo.Compute(s.place.Coordinate, d, s.params, s.loc)
}

// today is the schedule for the session date.
func (s *session) today() (*prayer.Schedule, error) {
	return s.schedule(s.date)
}

// isToday reports whether the session date is the current civil date.
func (s *session) isToday() bool {
	return sameDay(s.date, s.now)
}

// locationLabel builds a "City, Country" string from available data.
func (s *session) locationLabel() string {
	switch {
	case s.place.City != "" && s.place.Country != "":
		return s.place.City + ", " + s.place.Country
	case s.place.City != "":
		return s.place.City
	}
	// Fall back to coordinates.
	return s.place.Coordinate.String()
}

// selection returns the events to list, from --prayers or the config.
func (s *session) selection(cmd *cobra.Command, flagValue string) ([]prayer.Event, error) {
	if f := cmd.Flags().Lookup("prayers"); f != nil && f.Changed && flagValue != "" {
		return prayer.ParseSelection(config.SplitList(flagValue))
	}
	return s.cfg.Selection()
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
