package cli

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salat/internal/prayer"
)

var (
	flagFormat  string
	flagPrayers string
)

const formatHelp = "Display format: time-remaining, next-prayer-time, name-and-time, name-and-remaining, " +
	"short-name-and-time, short-name-and-remaining, full, or a custom Go template " +
	"(fields: .Name .ShortName .LocalName .Arabic .Time .Remaining .Hours .Minutes .Seconds)"

func newNextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next prayer with countdown",
		Long: "Display the next upcoming prayer time with a countdown.\n" +
			"After Isha the next prayer is tomorrow's Fajr.",
		RunE: runNext,
	}

	cmd.Flags().StringVar(&flagFormat, "format", prayer.FormatFull, formatHelp)
	cmd.Flags().StringVar(&flagPrayers, "prayers", "", "Comma-separated list of prayers to track (overrides config)")

	return cmd
}

func runNext(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	sched, err := s.schedule(s.now)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()

	// Without a custom selection the five prayers are tracked.
	if !cmd.Flags().Changed("prayers") {
		n, err := prayer.NewTracker(sched, s.memo.Compute).Tick(s.now)
		if err != nil {
			return err
		}
		if FlagJSON {
			return writeJSON(w, nextJSON(n, s))
		}
		fmt.Fprint(w, prayer.FormatNext(n, s.now, flagFormat, s.layout))
		return nil
	}

	events, err := s.selection(cmd, flagPrayers)
	if err != nil {
		return err
	}

	// NextIn needs chronological order; Event values are chronological.
	slices.Sort(events)
	p := prayer.NextIn(sched.List(events...), s.now)

	// All of today's selected times have passed: use tomorrow's first.
	if p == nil {
		tomorrow, err := s.schedule(sched.Date().AddDate(0, 0, 1))
		if err != nil {
			return err
		}
		p = &tomorrow.List(events...)[0]
	}

	if FlagJSON {
		return writeJSON(w, todayJSONNext{
			Prayer:    strings.ToLower(p.Event.String()),
			Time:      p.Time.Round(time.Minute).Format(s.layout),
			Remaining: prayer.FormatRemaining(prayer.TimeRemaining(*p, s.now)),
			Tomorrow:  !sameDay(p.Time, s.now),
		})
	}
	fmt.Fprint(w, prayer.FormatOutput(*p, s.now, flagFormat, s.layout))
	return nil
}

func nextJSON(n prayer.NextState, s *session) todayJSONNext {
	return todayJSONNext{
		Prayer:    strings.ToLower(n.Prayer.String()),
		Time:      n.Time.Round(time.Minute).Format(s.layout),
		Remaining: prayer.FormatRemaining(n.Remaining),
		Tomorrow:  n.Rollover,
	}
}
