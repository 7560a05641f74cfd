package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog/log"
)

func TestSetup_QuietByDefault(t *testing.T) {
	var buf bytes.Buffer
	Setup(&buf, false, false)

	log.Debug().Msg("hidden detail")
	log.Warn().Str("key", "value").Msg("shown warning")

	out := buf.String()
	if strings.Contains(out, "hidden detail") {
		t.Errorf("debug message should be suppressed, got %q", out)
	}
	if !strings.Contains(out, "shown warning") || !strings.Contains(out, "key=value") {
		t.Errorf("warning missing from output: %q", out)
	}
}

func TestSetup_Verbose(t *testing.T) {
	var buf bytes.Buffer
	Setup(&buf, true, false)

	log.Debug().Msg("cache hit")

	if !strings.Contains(buf.String(), "cache hit") {
		t.Errorf("verbose mode should include debug messages, got %q", buf.String())
	}
}

func TestSetup_NoColorHasNoEscapes(t *testing.T) {
	var buf bytes.Buffer
	Setup(&buf, true, false)

	log.Error().Msg("plain")

	if strings.Contains(buf.String(), "\033[") {
		t.Errorf("expected no ANSI escapes, got %q", buf.String())
	}
}
