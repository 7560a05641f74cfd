package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salat/internal/display"
	"github.com/smokyabdulrahman/salat/internal/prayer"
)

var (
	flagWatchFormat   string
	flagWatchInterval time.Duration
	flagWatchCount    int
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Live countdown to the next prayer",
		Long: "Print the next prayer and its countdown on every tick until interrupted.\n" +
			"The schedule rolls over to the next day after Isha. The line turns red\n" +
			"when less than 30 minutes remain.",
		RunE: runWatch,
	}

	cmd.Flags().StringVar(&flagWatchFormat, "format", "{{.Name}} {{.Time}} in {{.Hours}}h {{.Minutes}}m {{.Seconds}}s", formatHelp)
	cmd.Flags().DurationVar(&flagWatchInterval, "interval", time.Second, "Refresh interval")
	cmd.Flags().IntVar(&flagWatchCount, "count", 0, "Stop after this many updates (0 runs until interrupted)")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	if flagWatchInterval <= 0 {
		return fmt.Errorf("invalid --interval %s: must be positive", flagWatchInterval)
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	sched, err := s.schedule(s.now)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	w := watchWriter{
		out:    cmd.OutOrStdout(),
		format: flagWatchFormat,
		layout: s.layout,
		loc:    s.loc,
	}
	return w.loop(ctx, clock, prayer.NewTracker(sched, s.memo.Compute), flagWatchInterval, flagWatchCount)
}

type watchWriter struct {
	out    io.Writer
	format string
	layout string
	loc    *time.Location
}

// loop renders once immediately and then on every tick. It returns nil when
// ctx is done or after limit renders (limit <= 0 means no limit).
func (w watchWriter) loop(ctx context.Context, clk clockwork.Clock, tr *prayer.Tracker, interval time.Duration, limit int) error {
	ticker := clk.NewTicker(interval)
	defer ticker.Stop()

	for n := 1; ; n++ {
		if err := w.render(clk.Now().In(w.loc), tr); err != nil {
			return err
		}
		if limit > 0 && n >= limit {
			return nil
		}

		select {
		case <-ctx.Done():
			log.Debug().Msg("watch stopped")
			return nil
		case <-ticker.Chan():
		}
	}
}

func (w watchWriter) render(now time.Time, tr *prayer.Tracker) error {
	before := tr.Schedule().Date()

	n, err := tr.Tick(now)
	if err != nil {
		return err
	}

	if after := tr.Schedule().Date(); !sameDay(before, after) {
		log.Debug().Str("date", after.Format(time.DateOnly)).Msg("schedule rolled over")
	}

	line := prayer.FormatNext(n, now, w.format, w.layout)
	if n.Urgent() {
		line = display.Urgent(line)
	}
	_, err = fmt.Fprintln(w.out, line)
	return err
}
