// Package display styles terminal output with ANSI escape codes.
//
// It respects the NO_COLOR environment variable (https://no-color.org/) and
// only colors output written to a terminal. On Windows consoles the escape
// codes are translated by go-colorable.
package display

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// ANSI escape codes for styling.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
	fgGray = "\033[90m" // bright black = gray
)

// enabled reports whether color output is active.
var enabled = shouldEnable(os.Stdout)

// shouldEnable determines whether to use color output for f.
func shouldEnable(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if _, ok := os.LookupEnv("FORCE_COLOR"); ok {
		return true
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Stdout returns standard output wrapped so escape codes render on every
// platform.
func Stdout() io.Writer {
	return colorable.NewColorableStdout()
}

// Stderr is Stdout for standard error.
func Stderr() io.Writer {
	return colorable.NewColorableStderr()
}

// SetEnabled overrides the auto-detected color state.
// Used by --json and --no-color, and by tests.
func SetEnabled(b bool) {
	enabled = b
}

// Enabled reports whether color output is currently active.
func Enabled() bool {
	return enabled
}

// wrap applies ANSI codes around text, only when colors are enabled.
func wrap(text string, codes ...string) string {
	if !enabled {
		return text
	}
	prefix := ""
	for _, c := range codes {
		prefix += c
	}
	return prefix + text + reset
}

// Bold returns text rendered in bold.
func Bold(text string) string {
	return wrap(text, bold)
}

// Dim returns text rendered faint.
func Dim(text string) string {
	return wrap(text, dim)
}

func Green(text string) string  { return wrap(text, green) }
func Yellow(text string) string { return wrap(text, yellow) }
func Cyan(text string) string   { return wrap(text, cyan) }
func Gray(text string) string   { return wrap(text, fgGray) }

// Accent highlights the next prayer (bold cyan).
func Accent(text string) string {
	return wrap(text, bold, cyan)
}

// Urgent highlights a prayer that is about to start (bold red).
func Urgent(text string) string {
	return wrap(text, bold, red)
}

// Boldf formats and bolds a string.
func Boldf(format string, a ...any) string {
	return Bold(fmt.Sprintf(format, a...))
}
