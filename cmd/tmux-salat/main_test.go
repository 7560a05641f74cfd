package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smokyabdulrahman/salat/internal/geo"
)

var wib = time.FixedZone("WIB", 7*3600)

var jakartaArgs = []string{"--latitude", "-6.2088", "--longitude", "106.8456"}

func runArgs(t *testing.T, now time.Time, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	err := run(&buf, args, now)
	return buf.String(), err
}

func TestVersionFlag(t *testing.T) {
	out, err := runArgs(t, time.Now(), "--version")
	require.NoError(t, err)
	assert.Equal(t, "tmux-salat dev\n", out)
}

func TestListMethodsFlag(t *testing.T) {
	out, err := runArgs(t, time.Now(), "--list-methods")
	require.NoError(t, err)

	for _, m := range []string{"Kemenag", "Muslim World League", "Umm Al-Qura", "Jafari"} {
		assert.Contains(t, out, m)
	}
}

func TestRun_NextPrayer(t *testing.T) {
	now := time.Date(2024, time.January, 1, 13, 0, 0, 0, wib)

	out, err := runArgs(t, now, jakartaArgs...)
	require.NoError(t, err)
	assert.Equal(t, "Asr 15:23", out)
}

func TestRun_Format(t *testing.T) {
	now := time.Date(2024, time.January, 1, 15, 0, 0, 0, wib)

	out, err := runArgs(t, now, append(jakartaArgs, "--format", "short-name-and-remaining")...)
	require.NoError(t, err)
	assert.Equal(t, "A 22m", out)

	out, err = runArgs(t, now, append(jakartaArgs, "--format", "name-and-time", "--time-format", "12h")...)
	require.NoError(t, err)
	assert.Equal(t, "Asr 3:23 PM", out)
}

func TestRun_AfterIshaRollsOver(t *testing.T) {
	now := time.Date(2024, time.January, 1, 21, 0, 0, 0, wib)

	out, err := runArgs(t, now, jakartaArgs...)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Fajr 04:1"), "got %q", out)
}

func TestRun_PrayerSelection(t *testing.T) {
	now := time.Date(2024, time.January, 1, 5, 0, 0, 0, wib)

	out, err := runArgs(t, now, append(jakartaArgs, "--prayers", "Sunrise, Fajr")...)
	require.NoError(t, err)
	assert.Equal(t, "Sunrise 05:41", out)

	_, err = runArgs(t, now, append(jakartaArgs, "--prayers", "Tahajjud")...)
	assert.Error(t, err)
}

func TestRun_InvalidInput(t *testing.T) {
	now := time.Date(2024, time.January, 1, 13, 0, 0, 0, wib)

	_, err := runArgs(t, now, "--latitude", "95", "--longitude", "0")
	assert.ErrorIs(t, err, geo.ErrOutOfRange)

	_, err = runArgs(t, now, append(jakartaArgs, "--method", "nope")...)
	assert.Error(t, err)

	_, err = runArgs(t, now, append(jakartaArgs, "--madhab", "maliki")...)
	assert.Error(t, err)
}

func TestRun_PartialCoordinate(t *testing.T) {
	now := time.Date(2024, time.January, 1, 13, 0, 0, 0, wib)

	for _, args := range [][]string{
		{"--latitude", "-6.2088"},
		{"--longitude", "106.8456"},
	} {
		out, err := runArgs(t, now, args...)
		assert.ErrorIs(t, err, errPartialCoordinate, args)
		assert.Empty(t, out)
	}
}
