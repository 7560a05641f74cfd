package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salat/internal/display"
	"github.com/smokyabdulrahman/salat/internal/hijri"
	"github.com/smokyabdulrahman/salat/internal/prayer"
)

var flagQueryDays string

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <prayer>",
		Short: "Query a specific prayer time",
		Long: "Query a specific prayer time for today, or across multiple days with --days.\n\n" +
			"Valid names: Fajr, Sunrise, Dhuhr, Asr, Maghrib, Isha, or their Indonesian\n" +
			"forms (Subuh, Terbit, Dzuhur, Ashar, Maghrib, Isya).",
		Args: cobra.ExactArgs(1),
		RunE: runQuery,
	}

	cmd.Flags().StringVar(&flagQueryDays, "days", "", "Number of days to show (or 'week'/'month')")

	return cmd
}

// parseDays reads a --days value.
func parseDays(v string) (int, error) {
	switch v {
	case "":
		return 1, nil
	case "week":
		return 7, nil
	case "month":
		return 30, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid --days value %q: must be a positive integer, 'week', or 'month'", v)
	}
	return n, nil
}

func runQuery(cmd *cobra.Command, args []string) error {
	e, err := prayer.ParseEvent(args[0])
	if err != nil {
		return err
	}

	days, err := parseDays(flagQueryDays)
	if err != nil {
		return err
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	scheds, err := s.schedules(days)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()

	// Single day.
	if days == 1 {
		sched := scheds[0]
		timeStr := sched.Display(e, s.layout)
		if FlagJSON {
			return writeJSON(w, queryJSONSingle{
				Prayer: strings.ToLower(e.String()),
				Time:   timeStr,
				Date:   sched.Date().Format(gregorianLayout),
				Hijri:  hijri.FromGregorian(sched.Date()).Format(),
			})
		}
		fmt.Fprintf(w, "%s %s\n", e, timeStr)
		return nil
	}

	if FlagJSON {
		return printQueryJSON(w, s, scheds, e)
	}

	// Rich terminal output.
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Bold(fmt.Sprintf("%s Times \u2014 %d Days", e, days)))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", s.locationLabel())
	fmt.Fprintln(w)

	tbl := display.NewTable("Date", e.String())
	for i, sched := range scheds {
		tbl.AddRow(sched.Date().Format("Mon 02 Jan"), sched.Display(e, s.layout))
		if sameDay(sched.Date(), s.now) {
			tbl.Highlight(i, display.Accent)
		}
	}

	fmt.Fprint(w, tbl.Render())
	fmt.Fprintln(w)
	return nil
}

type queryJSONSingle struct {
	Prayer string `json:"prayer"`
	Time   string `json:"time"`
	Date   string `json:"date"`
	Hijri  string `json:"hijri"`
}

type queryJSONMulti struct {
	Location todayJSONLocation `json:"location"`
	Prayer   string            `json:"prayer"`
	Days     []queryJSONDay    `json:"days"`
}

type queryJSONDay struct {
	Date  string `json:"date"`
	Hijri string `json:"hijri"`
	Time  string `json:"time"`
}

func printQueryJSON(w io.Writer, s *session, scheds []*prayer.Schedule, e prayer.Event) error {
	out := queryJSONMulti{
		Location: locationJSON(s),
		Prayer:   strings.ToLower(e.String()),
	}

	for _, sched := range scheds {
		out.Days = append(out.Days, queryJSONDay{
			Date:  sched.Date().Format(gregorianLayout),
			Hijri: hijri.FromGregorian(sched.Date()).Format(),
			Time:  sched.Display(e, s.layout),
		})
	}

	return writeJSON(w, out)
}
