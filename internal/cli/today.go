package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salat/internal/display"
	"github.com/smokyabdulrahman/salat/internal/hijri"
	"github.com/smokyabdulrahman/salat/internal/prayer"
	"github.com/smokyabdulrahman/salat/internal/qibla"
	"github.com/smokyabdulrahman/salat/internal/zone"
)

const gregorianLayout = "02 Jan 2006"

// todayView is everything the root command renders.
type todayView struct {
	s       *session
	sched   *prayer.Schedule
	prayers []prayer.Prayer
	current *prayer.Prayer
	next    *prayer.Prayer
	// rollover is set when every listed time has passed and the next
	// prayer is tomorrow's Fajr.
	rollover *prayer.NextState
}

func runToday(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	events, err := s.cfg.Selection()
	if err != nil {
		return err
	}

	sched, err := s.today()
	if err != nil {
		return err
	}

	v := todayView{s: s, sched: sched, prayers: sched.List(events...)}

	// Current and next only make sense when looking at today.
	if s.isToday() {
		v.current = prayer.CurrentIn(v.prayers, s.now)
		v.next = prayer.NextIn(v.prayers, s.now)
		if v.next == nil {
			n, err := prayer.NewTracker(sched, s.memo.Compute).Tick(s.now)
			if err != nil {
				return err
			}
			v.rollover = &n
		}
	}

	w := cmd.OutOrStdout()
	if FlagJSON {
		return printTodayJSON(w, v)
	}

	// Rich terminal output.
	printTodayRich(w, v)
	return nil
}

// printTodayRich renders the colored terminal output for today's prayer schedule.
func printTodayRich(w io.Writer, v todayView) {
	s := v.s
	h := hijri.FromGregorian(s.date)
	label := zone.LabelFor(s.place.Longitude)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Bold("Prayer Times"))
	fmt.Fprintln(w)

	// Location and date info.
	fmt.Fprintf(w, "  %s\n", s.locationLabel())
	fmt.Fprintf(w, "  %s (%s)\n", s.loc.String(), label)
	fmt.Fprintf(w, "  %s\n", s.date.Format(gregorianLayout))
	fmt.Fprintf(w, "  %s %s\n", h.Format(), display.Dim("(approximate)"))
	fmt.Fprintf(w, "  %s\n", display.Gray(fmt.Sprintf("%s, %s", s.params.Name, s.params.Madhab)))
	fmt.Fprintln(w)

	// Find the max prayer name length for alignment.
	maxNameLen := 0
	for _, p := range v.prayers {
		if len(p.Name) > maxNameLen {
			maxNameLen = len(p.Name)
		}
	}

	// Print each prayer.
	for _, p := range v.prayers {
		line := fmt.Sprintf("  %s  %s", padRight(p.Name, maxNameLen), v.sched.Display(p.Event, s.layout))

		switch {
		case v.current != nil && p.Event == v.current.Event:
			// Current prayer: dimmed.
			fmt.Fprintln(w, display.Dim(line))
		case v.next != nil && p.Event == v.next.Event:
			// Next prayer: accent color + countdown.
			remaining := prayer.FormatRemaining(prayer.TimeRemaining(p, s.now))
			suffix := fmt.Sprintf("  <- next in %s", remaining)
			style := display.Accent
			if prayer.TimeRemaining(p, s.now) < prayer.UrgentWithin {
				style = display.Urgent
			}
			fmt.Fprintln(w, style(line)+style(suffix))
		default:
			fmt.Fprintln(w, line)
		}
	}

	if n := v.rollover; n != nil {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  %s\n", display.Accent(fmt.Sprintf("Next: %s tomorrow at %s (in %s)",
			n.Prayer, n.Time.Round(time.Minute).Format(s.layout), prayer.FormatRemaining(n.Remaining))))
	}

	b := qibla.Direction(s.place.Coordinate)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Qibla  %s, %s km\n", b, formatKm(qibla.Distance(s.place.Coordinate)))
	fmt.Fprintln(w)
}

// padRight pads a string to the given width with spaces.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// formatKm renders a distance with thousands separators, e.g. "7,914".
func formatKm(km float64) string {
	s := fmt.Sprintf("%.0f", km)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// todayJSON is the JSON output structure for the root command.
type todayJSON struct {
	Location todayJSONLocation `json:"location"`
	Date     todayJSONDate     `json:"date"`
	Method   todayJSONMethod   `json:"method"`
	Timings  map[string]string `json:"timings"`
	Current  string            `json:"current,omitempty"`
	Next     *todayJSONNext    `json:"next,omitempty"`
	Qibla    qiblaJSON         `json:"qibla"`
}

type todayJSONLocation struct {
	City      string  `json:"city,omitempty"`
	Country   string  `json:"country,omitempty"`
	Timezone  string  `json:"timezone"`
	Zone      string  `json:"zone"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Source    string  `json:"source"`
}

type todayJSONDate struct {
	Gregorian string `json:"gregorian"`
	Hijri     string `json:"hijri"`
	HijriNote string `json:"hijri_note"`
}

type todayJSONMethod struct {
	Name   string `json:"name"`
	Madhab string `json:"madhab"`
}

type todayJSONNext struct {
	Prayer    string `json:"prayer"`
	Time      string `json:"time"`
	Remaining string `json:"remaining"`
	Tomorrow  bool   `json:"tomorrow,omitempty"`
}

type qiblaJSON struct {
	Bearing    float64 `json:"bearing"`
	Compass    string  `json:"compass"`
	DistanceKm float64 `json:"distance_km"`
}

func locationJSON(s *session) todayJSONLocation {
	return todayJSONLocation{
		City:      s.place.City,
		Country:   s.place.Country,
		Timezone:  s.loc.String(),
		Zone:      string(zone.LabelFor(s.place.Longitude)),
		Latitude:  s.place.Latitude,
		Longitude: s.place.Longitude,
		Source:    s.place.Source.String(),
	}
}

func newQiblaJSON(s *session) qiblaJSON {
	b := qibla.Direction(s.place.Coordinate)
	return qiblaJSON{
		Bearing:    roundTo(float64(b), 2),
		Compass:    b.Compass(),
		DistanceKm: roundTo(qibla.Distance(s.place.Coordinate), 1),
	}
}

// printTodayJSON renders structured JSON output.
func printTodayJSON(w io.Writer, v todayView) error {
	s := v.s
	timings := make(map[string]string)
	for _, p := range v.prayers {
		timings[strings.ToLower(p.Name)] = v.sched.Display(p.Event, s.layout)
	}

	out := todayJSON{
		Location: locationJSON(s),
		Date: todayJSONDate{
			Gregorian: s.date.Format(gregorianLayout),
			Hijri:     hijri.FromGregorian(s.date).Format(),
			HijriNote: hijri.Approximate,
		},
		Method: todayJSONMethod{
			Name:   s.params.Name,
			Madhab: strings.ToLower(s.params.Madhab.String()),
		},
		Timings: timings,
		Qibla:   newQiblaJSON(s),
	}

	if v.current != nil {
		out.Current = strings.ToLower(v.current.Name)
	}

	switch {
	case v.next != nil:
		out.Next = &todayJSONNext{
			Prayer:    strings.ToLower(v.next.Name),
			Time:      v.sched.Display(v.next.Event, s.layout),
			Remaining: prayer.FormatRemaining(prayer.TimeRemaining(*v.next, s.now)),
		}
	case v.rollover != nil:
		out.Next = &todayJSONNext{
			Prayer:    strings.ToLower(v.rollover.Prayer.String()),
			Time:      v.rollover.Time.Round(time.Minute).Format(s.layout),
			Remaining: prayer.FormatRemaining(v.rollover.Remaining),
			Tomorrow:  true,
		}
	}

	return writeJSON(w, out)
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
