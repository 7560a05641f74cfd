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

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [days]",
		Short: "Show prayer times for multiple days",
		Long:  "Display a grid of prayer times for N days starting today (default: 7).",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args, 7)
		},
	}
}

func newWeekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Show prayer times for the next 7 days",
		Long:  "Alias for 'list 7'.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, nil, 7)
		},
	}
}

func newMonthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "month",
		Short: "Show prayer times for the next 30 days",
		Long:  "Alias for 'list 30'.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, nil, 30)
		},
	}
}

// schedules computes count consecutive days starting at the session date.
func (s *session) schedules(count int) ([]*prayer.Schedule, error) {
	out := make([]*prayer.Schedule, 0, count)
	for i := 0; i < count; i++ {
		sched, err := s.schedule(s.date.AddDate(0, 0, i))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.date.AddDate(0, 0, i).Format("2006-01-02"), err)
		}
		out = append(out, sched)
	}
	return out, nil
}

// runList is the handler for the list subcommand.
func runList(cmd *cobra.Command, args []string, defaultDays int) error {
	days := defaultDays
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid number of days: %q (must be a positive integer)", args[0])
		}
		days = n
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	events, err := s.cfg.Selection()
	if err != nil {
		return err
	}

	scheds, err := s.schedules(days)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if FlagJSON {
		return printListJSON(w, s, scheds, events)
	}

	// Rich terminal output.
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Bold(fmt.Sprintf("Prayer Times \u2014 %d Days", days)))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", s.locationLabel())
	fmt.Fprintf(w, "  %s, %s\n", s.loc.String(), s.params.Name)
	fmt.Fprintln(w)

	// Build table.
	headers := []string{"Date"}
	for _, e := range events {
		headers = append(headers, e.String())
	}
	tbl := display.NewTable(headers...)

	for i, sched := range scheds {
		row := []string{sched.Date().Format("Mon 02 Jan")}
		for _, e := range events {
			row = append(row, sched.Display(e, s.layout))
		}
		tbl.AddRow(row...)

		// Highlight today's row.
		if sameDay(sched.Date(), s.now) {
			tbl.Highlight(i, display.Accent)
		}
	}

	fmt.Fprint(w, tbl.Render())
	fmt.Fprintln(w)
	return nil
}

// listJSONOutput is the JSON structure for the list command.
type listJSONOutput struct {
	Location todayJSONLocation `json:"location"`
	Method   todayJSONMethod   `json:"method"`
	Days     []listJSONDay     `json:"days"`
}

type listJSONDay struct {
	Date    string            `json:"date"`
	Hijri   string            `json:"hijri"`
	Timings map[string]string `json:"timings"`
}

func printListJSON(w io.Writer, s *session, scheds []*prayer.Schedule, events []prayer.Event) error {
	out := listJSONOutput{
		Location: locationJSON(s),
		Method: todayJSONMethod{
			Name:   s.params.Name,
			Madhab: strings.ToLower(s.params.Madhab.String()),
		},
	}

	for _, sched := range scheds {
		timings := make(map[string]string)
		for _, e := range events {
			timings[strings.ToLower(e.String())] = sched.Display(e, s.layout)
		}

		out.Days = append(out.Days, listJSONDay{
			Date:    sched.Date().Format(gregorianLayout),
			Hijri:   hijri.FromGregorian(sched.Date()).Format(),
			Timings: timings,
		})
	}

	return writeJSON(w, out)
}
