// Command tmux-salat prints a single status-line segment with the next
// prayer, for use in tmux's status-right.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/smokyabdulrahman/salat/internal/cache"
	"github.com/smokyabdulrahman/salat/internal/geo"
	"github.com/smokyabdulrahman/salat/internal/logging"
	"github.com/smokyabdulrahman/salat/internal/method"
	"github.com/smokyabdulrahman/salat/internal/prayer"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=v1.0.0"
var version = "dev"

var errPartialCoordinate = errors.New("-latitude and -longitude must be given together")

// detectLocation is swapped out in tests to keep them offline.
var detectLocation = geo.DetectLocation

func main() {
	if err := run(os.Stdout, os.Args[1:], time.Now()); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer, args []string, now time.Time) error {
	fs := flag.NewFlagSet("tmux-salat", flag.ContinueOnError)

	// Location flags
	latitude := fs.Float64("latitude", 0, "Latitude for prayer time calculation")
	longitude := fs.Float64("longitude", 0, "Longitude for prayer time calculation")

	// Calculation flags
	methodName := fs.String("method", method.Default().Name, "Calculation method name")
	madhab := fs.String("madhab", "shafi", "Asr convention: shafi or hanafi")

	// Display flags
	format := fs.String("format", prayer.FormatNameAndTime, "Display format: time-remaining, next-prayer-time, name-and-time, name-and-remaining, short-name-and-time, short-name-and-remaining, full, or a custom Go template (e.g. '{{.Name}} in {{.Remaining}}'). Template fields: .Name, .ShortName, .LocalName, .Arabic, .Time, .Remaining, .Hours, .Minutes, .Seconds")
	timeFormat := fs.String("time-format", "24h", "Time format: 12h or 24h")
	prayers := fs.String("prayers", "", "Comma-separated list of prayers to track (default: Fajr,Dhuhr,Asr,Maghrib,Isha)")

	// Cache flags
	cacheDir := fs.String("cache-dir", "", "Cache directory (default: ~/.cache/salat/)")

	// Info flags
	showVersion := fs.Bool("version", false, "Print version and exit")
	listMethods := fs.Bool("list-methods", false, "Print supported calculation methods and exit")
	verbose := fs.Bool("verbose", false, "Log diagnostics to stderr")

	if err := fs.Parse(args); err != nil {
		return err
	}

	logging.Setup(os.Stderr, *verbose, false)

	if *showVersion {
		fmt.Fprintf(w, "tmux-salat %s\n", version)
		return nil
	}

	if *listMethods {
		printMethods(w)
		return nil
	}

	params, err := method.Lookup(*methodName)
	if err != nil {
		return err
	}
	m, err := method.ParseMadhab(*madhab)
	if err != nil {
		return err
	}
	params = params.WithMadhab(m)

	// Determine time format string.
	goTimeFmt := "15:04" // 24h
	if *timeFormat == "12h" {
		goTimeFmt = "3:04 PM"
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["latitude"] != set["longitude"] {
		return errPartialCoordinate
	}
	loc := resolveLocation(*latitude, *longitude, set["latitude"], *cacheDir)

	var tz *time.Location
	if loc.Timezone != "" {
		if l, err := time.LoadLocation(loc.Timezone); err == nil {
			tz = l
		}
	}

	sched, err := prayer.ComputeIn(loc.Coordinate, now, params, tz)
	if err != nil {
		return err
	}
	now = now.In(sched.Location())

	// Without a selection the five prayers are tracked.
	if *prayers == "" {
		n, err := prayer.NextPrayer(sched, now)
		if err != nil {
			return err
		}
		fmt.Fprint(w, prayer.FormatNext(n, now, *format, goTimeFmt))
		return nil
	}

	var names []string
	for _, p := range strings.Split(*prayers, ",") {
		names = append(names, strings.TrimSpace(p))
	}
	events, err := prayer.ParseSelection(names)
	if err != nil {
		return err
	}
	slices.Sort(events)

	next := prayer.NextIn(sched.List(events...), now)

	// If all today's prayers have passed, use tomorrow's first prayer.
	if next == nil {
		tomorrow, err := sched.Tomorrow()
		if err != nil {
			return err
		}
		next = &tomorrow.List(events...)[0]
	}

	// Format and print.
	fmt.Fprint(w, prayer.FormatOutput(*next, now, *format, goTimeFmt))
	return nil
}

// resolveLocation determines the effective location based on flags or
// auto-detection, falling back to Jakarta.
func resolveLocation(lat, lon float64, explicit bool, cacheDir string) geo.Location {
	if explicit {
		return geo.Location{Coordinate: geo.Coordinate{Latitude: lat, Longitude: lon}}
	}

	c, err := cache.New(cacheDir, nil)
	if err != nil {
		log.Warn().Err(err).Msg("cache disabled")
		c = nil
	}

	// Try cached geolocation first.
	if c != nil {
		if cached := c.LoadGeo(); cached != nil {
			return *cached
		}
	}

	detected, err := detectLocation(context.Background())
	if err != nil {
		log.Warn().Err(err).Msg("auto-detection failed, using Jakarta")
		return geo.Jakarta
	}

	if c != nil {
		if err := c.SaveGeo(detected); err != nil {
			log.Debug().Err(err).Msg("could not cache location")
		}
	}
	return *detected
}

// printMethods prints the table of supported calculation methods.
func printMethods(w io.Writer) {
	fmt.Fprintln(w, "Supported calculation methods:")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-10s %s\n", "Name", "Authority")
	fmt.Fprintf(w, "  %-10s %s\n", "────", "─────────")
	for _, m := range method.All() {
		fmt.Fprintf(w, "  %-10s %s\n", m.Name, m.Label)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Use --method <name> to select a calculation method.")
	fmt.Fprintf(w, "If omitted, %s is used.\n", method.Default().Name)
}
