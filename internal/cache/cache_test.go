package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/smokyabdulrahman/salat/internal/geo"
)

func sampleLocation() *geo.Location {
	return &geo.Location{
		Coordinate: geo.Coordinate{Latitude: -6.9175, Longitude: 107.6191},
		City:       "Bandung",
		Country:    "Indonesia",
		Timezone:   "Asia/Jakarta",
	}
}

// ---------------------------------------------------------------------------
// New
// ---------------------------------------------------------------------------

func TestNew_ExplicitDir(t *testing.T) {
	dir := t.TempDir()
	c, err := New(dir, nil)
	if err != nil {
		t.Fatalf("New(%q) error: %v", dir, err)
	}
	if c.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", c.Dir(), dir)
	}
}

func TestNew_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "subdir", "cache")
	if _, err := New(dir, nil); err != nil {
		t.Fatalf("New(%q) error: %v", dir, err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Errorf("directory %q was not created", dir)
	}
}

func TestNew_DefaultDirUsesXDGCache(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)
	t.Setenv("HOME", base)

	c, err := New("", nil)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if filepath.Base(c.Dir()) != "salat" {
		t.Errorf("default dir = %q, want .../salat", c.Dir())
	}
}

// ---------------------------------------------------------------------------
// SaveGeo / LoadGeo
// ---------------------------------------------------------------------------

func TestGeo_RoundTrip(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC))
	c, _ := New(t.TempDir(), clock)

	if err := c.SaveGeo(sampleLocation()); err != nil {
		t.Fatalf("SaveGeo error: %v", err)
	}

	got := c.LoadGeo()
	if got == nil {
		t.Fatal("LoadGeo returned nil after save")
	}
	if *got != *sampleLocation() {
		t.Errorf("LoadGeo = %+v, want %+v", *got, *sampleLocation())
	}
}

func TestGeo_Expires(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC))
	c, _ := New(t.TempDir(), clock)
	c.SaveGeo(sampleLocation())

	clock.Advance(23 * time.Hour)
	if c.LoadGeo() == nil {
		t.Fatal("entry should still be fresh after 23h")
	}

	clock.Advance(2 * time.Hour)
	if got := c.LoadGeo(); got != nil {
		t.Errorf("entry should expire after 24h, got %+v", got)
	}
}

func TestGeo_Missing(t *testing.T) {
	c, _ := New(t.TempDir(), nil)
	if got := c.LoadGeo(); got != nil {
		t.Errorf("expected nil for empty cache, got %+v", got)
	}
}

func TestGeo_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	c, _ := New(dir, nil)
	os.WriteFile(filepath.Join(dir, geoCacheFile), []byte("{broken"), 0o644)

	if got := c.LoadGeo(); got != nil {
		t.Errorf("expected nil for corrupt cache, got %+v", got)
	}
}

func TestGeo_InvalidCoordinateIgnored(t *testing.T) {
	c, _ := New(t.TempDir(), nil)
	bad := sampleLocation()
	bad.Latitude = 120
	c.SaveGeo(bad)

	if got := c.LoadGeo(); got != nil {
		t.Errorf("expected nil for out-of-range cached position, got %+v", got)
	}
}
