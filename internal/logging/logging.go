// Package logging configures the process-wide zerolog logger used for
// diagnostics. Command output never goes through it.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup sends human-readable logs to w. Verbose enables debug messages;
// otherwise only warnings and errors are written.
func Setup(w io.Writer, verbose, color bool) {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    !color,
		TimeFormat: time.TimeOnly,
	}
	log.Logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
}
