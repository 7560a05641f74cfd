package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smokyabdulrahman/salat/internal/geo"
	"github.com/smokyabdulrahman/salat/internal/method"
	"github.com/smokyabdulrahman/salat/internal/prayer"
)

// lineWriter records writes and signals after each one.
type lineWriter struct {
	mu    sync.Mutex
	buf   bytes.Buffer
	wrote chan struct{}
}

func newLineWriter() *lineWriter {
	return &lineWriter{wrote: make(chan struct{}, 16)}
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	n, err := w.buf.Write(p)
	w.mu.Unlock()
	w.wrote <- struct{}{}
	return n, err
}

func (w *lineWriter) lines() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return strings.Split(strings.TrimRight(w.buf.String(), "\n"), "\n")
}

func (w *lineWriter) wait(t *testing.T) {
	t.Helper()
	select {
	case <-w.wrote:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for output")
	}
}

func jakartaTracker(t *testing.T) *prayer.Tracker {
	t.Helper()
	coord := geo.Coordinate{Latitude: -6.2088, Longitude: 106.8456}
	s, err := prayer.ComputeIn(coord, time.Date(2024, time.January, 1, 0, 0, 0, 0, wib), method.Default(), nil)
	require.NoError(t, err)
	return prayer.NewTracker(s, nil)
}

func TestWatchLoop_SingleRender(t *testing.T) {
	fc := clockwork.NewFakeClockAt(time.Date(2024, time.January, 1, 13, 0, 0, 0, wib))
	out := newLineWriter()
	w := watchWriter{out: out, format: prayer.FormatFull, layout: "15:04", loc: wib}

	err := w.loop(context.Background(), fc, jakartaTracker(t), time.Second, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Asr 15:23 (2h 22m)"}, out.lines())
}

func TestWatchLoop_TicksWithClock(t *testing.T) {
	fc := clockwork.NewFakeClockAt(time.Date(2024, time.January, 1, 15, 0, 0, 0, wib))
	out := newLineWriter()
	w := watchWriter{out: out, format: "{{.Name}} {{.Minutes}}:{{.Seconds}}", layout: "15:04", loc: wib}

	tr := jakartaTracker(t)
	done := make(chan error, 1)
	go func() {
		done <- w.loop(context.Background(), fc, tr, time.Second, 3)
	}()

	out.wait(t)
	fc.Advance(time.Second)
	out.wait(t)
	fc.Advance(time.Second)
	out.wait(t)

	require.NoError(t, <-done)

	lines := out.lines()
	require.Len(t, lines, 3)
	for _, l := range lines {
		assert.True(t, strings.HasPrefix(l, "Asr 22:"), l)
	}
	assert.NotEqual(t, lines[0], lines[1])
	assert.NotEqual(t, lines[1], lines[2])
}

func TestWatchLoop_RollsOverAtNight(t *testing.T) {
	fc := clockwork.NewFakeClockAt(time.Date(2024, time.January, 1, 23, 59, 59, 0, wib))
	out := newLineWriter()
	tr := jakartaTracker(t)
	w := watchWriter{out: out, format: prayer.FormatNameAndTime, layout: "15:04", loc: wib}

	require.NoError(t, w.loop(context.Background(), fc, tr, time.Second, 1))
	assert.True(t, strings.HasPrefix(out.lines()[0], "Fajr 04:1"), out.lines()[0])
	assert.Equal(t, 2, tr.Schedule().Date().Day())
}

func TestWatchLoop_StopsOnCancel(t *testing.T) {
	fc := clockwork.NewFakeClockAt(time.Date(2024, time.January, 1, 13, 0, 0, 0, wib))
	out := newLineWriter()
	w := watchWriter{out: out, format: prayer.FormatNameAndTime, layout: "15:04", loc: wib}

	tr := jakartaTracker(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.loop(ctx, fc, tr, time.Second, 0)
	}()

	out.wait(t)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
	assert.Equal(t, []string{"Asr 15:23"}, out.lines())
}

func TestWatch_Command(t *testing.T) {
	setup(t)

	out, err := execute(t, jakarta("watch", "--count", "1", "--format", "name-and-remaining")...)
	require.NoError(t, err)
	assert.Equal(t, "Asr 2h 22m\n", out)

	_, err = execute(t, jakarta("watch", "--interval", "0s")...)
	assert.Error(t, err)
}
