// Package config provides persistent configuration for the salat CLI.
//
// Configuration is stored as JSON at ~/.config/salat/config.json
// (XDG-compliant). Any key can be overridden with a SALAT_<KEY> environment
// variable, read from the process or from a .env file. The merge priority
// is: CLI flags > environment > config file > defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/smokyabdulrahman/salat/internal/geo"
	"github.com/smokyabdulrahman/salat/internal/method"
	"github.com/smokyabdulrahman/salat/internal/prayer"
	"github.com/smokyabdulrahman/salat/internal/zone"
)

const (
	configDirName  = "salat"
	configFileName = "config.json"

	// EnvPrefix is prepended to upper-cased keys, e.g. SALAT_LATITUDE.
	EnvPrefix = "SALAT_"
)

// ValidKeys lists all config keys that can be set via `config set`.
var ValidKeys = []string{
	"city",
	"latitude", "longitude",
	"timezone",
	"method", "madhab",
	"time_format",
	"prayers",
	"cache_dir",
}

// Config holds all user-configurable settings.
// Zero values mean "not set" (use defaults or auto-detect).
type Config struct {
	City       string   `json:"city,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`  // pointer so the equator is distinguishable from "not set"
	Longitude  *float64 `json:"longitude,omitempty"` // likewise for the prime meridian
	Timezone   string   `json:"timezone,omitempty"`  // IANA name, or WIB/WITA/WIT
	Method     string   `json:"method,omitempty"`
	Madhab     string   `json:"madhab,omitempty"`      // "shafi" or "hanafi"
	TimeFormat string   `json:"time_format,omitempty"` // "12h" or "24h"
	Prayers    string   `json:"prayers,omitempty"`     // comma-separated list
	CacheDir   string   `json:"cache_dir,omitempty"`
}

// Defaults returns a Config with all default values applied.
func Defaults() Config {
	return Config{
		Method:     method.Default().Name,
		Madhab:     strings.ToLower(method.Shafi.String()),
		TimeFormat: "24h",
	}
}

// Dir returns the config directory path.
// It respects $XDG_CONFIG_HOME if set, otherwise uses ~/.config/.
func Dir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, configDirName), nil
}

// Path returns the full path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads the config file from disk.
// If the file does not exist, it returns an empty Config (not an error).
// If the file exists but is invalid JSON, it returns an error.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	return LoadFrom(path)
}

// LoadFrom reads the config from a specific file path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Config{}
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes the config to disk, creating the directory if needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}

	return c.SaveTo(path)
}

// SaveTo writes the config to a specific file path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create config directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Reset deletes the config file.
func Reset() error {
	path, err := Path()
	if err != nil {
		return err
	}

	return ResetAt(path)
}

// ResetAt deletes the config file at a specific path.
func ResetAt(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete config file: %w", err)
	}
	return nil
}

// Set sets a config key to the given value.
// It validates the key name and parses the value into the correct type.
func (c *Config) Set(key, value string) error {
	switch key {
	case "city":
		c.City = value
	case "latitude":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid latitude %q: must be a number", value)
		}
		if err := (geo.Coordinate{Latitude: v}).Validate(); err != nil {
			return fmt.Errorf("invalid latitude %q: %w", value, err)
		}
		c.Latitude = &v
	case "longitude":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid longitude %q: must be a number", value)
		}
		if err := (geo.Coordinate{Longitude: v}).Validate(); err != nil {
			return fmt.Errorf("invalid longitude %q: %w", value, err)
		}
		c.Longitude = &v
	case "timezone":
		if _, err := resolveZone(value); err != nil {
			return err
		}
		c.Timezone = value
	case "method":
		p, err := method.Lookup(value)
		if err != nil {
			return err
		}
		c.Method = p.Name
	case "madhab":
		m, err := method.ParseMadhab(value)
		if err != nil {
			return err
		}
		c.Madhab = strings.ToLower(m.String())
	case "time_format":
		if value != "12h" && value != "24h" {
			return fmt.Errorf("invalid time_format %q: must be \"12h\" or \"24h\"", value)
		}
		c.TimeFormat = value
	case "prayers":
		if _, err := prayer.ParseSelection(SplitList(value)); err != nil {
			return fmt.Errorf("invalid prayers list %q: %w", value, err)
		}
		c.Prayers = value
	case "cache_dir":
		c.CacheDir = value
	default:
		return fmt.Errorf("unknown config key %q; valid keys: %s", key, strings.Join(ValidKeys, ", "))
	}

	return nil
}

// Get returns the string value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "city":
		return c.City, nil
	case "latitude":
		return formatFloat(c.Latitude), nil
	case "longitude":
		return formatFloat(c.Longitude), nil
	case "timezone":
		return c.Timezone, nil
	case "method":
		return c.Method, nil
	case "madhab":
		return c.Madhab, nil
	case "time_format":
		return c.TimeFormat, nil
	case "prayers":
		return c.Prayers, nil
	case "cache_dir":
		return c.CacheDir, nil
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// Env collects SALAT_* overrides. Values from dotenvPath are read first and
// process variables take precedence. A missing dotenv file is not an error.
func Env(dotenvPath string) (map[string]string, error) {
	env := make(map[string]string)

	if dotenvPath != "" {
		file, err := godotenv.Read(dotenvPath)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", dotenvPath, err)
		}
		for k, v := range file {
			if strings.HasPrefix(k, EnvPrefix) {
				env[k] = v
			}
		}
	}

	for _, key := range ValidKeys {
		name := EnvName(key)
		if v, ok := os.LookupEnv(name); ok {
			env[name] = v
		}
	}
	return env, nil
}

// EnvName returns the environment variable for a config key.
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(key)
}

// ApplyEnv sets every key that has an override in env. Unknown SALAT_*
// variables are ignored.
func (c *Config) ApplyEnv(env map[string]string) error {
	for _, key := range ValidKeys {
		v, ok := env[EnvName(key)]
		if !ok || v == "" {
			continue
		}
		if err := c.Set(key, v); err != nil {
			return fmt.Errorf("%s: %w", EnvName(key), err)
		}
	}
	return nil
}

// ErrPartialCoordinate is returned when only one of latitude and longitude
// is set.
var ErrPartialCoordinate = errors.New("latitude and longitude must be set together")

// Coordinate returns the configured position and whether it is set. Setting
// only one component is an error.
func (c *Config) Coordinate() (geo.Coordinate, bool, error) {
	switch {
	case c.Latitude == nil && c.Longitude == nil:
		return geo.Coordinate{}, false, nil
	case c.Latitude == nil:
		return geo.Coordinate{}, false, fmt.Errorf("%w: latitude is missing", ErrPartialCoordinate)
	case c.Longitude == nil:
		return geo.Coordinate{}, false, fmt.Errorf("%w: longitude is missing", ErrPartialCoordinate)
	}
	return geo.Coordinate{Latitude: *c.Latitude, Longitude: *c.Longitude}, true, nil
}

// Params resolves the configured method and madhab. Empty fields fall back
// to the defaults.
func (c *Config) Params() (method.Params, error) {
	p := method.Default()
	if c.Method != "" {
		var err error
		if p, err = method.Lookup(c.Method); err != nil {
			return method.Params{}, err
		}
	}
	if c.Madhab != "" {
		m, err := method.ParseMadhab(c.Madhab)
		if err != nil {
			return method.Params{}, err
		}
		p = p.WithMadhab(m)
	}
	return p, nil
}

// Location resolves the configured timezone. It returns nil when none is
// set, which selects the longitude zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return nil, nil
	}
	return resolveZone(c.Timezone)
}

// Layout returns the Go time layout for the configured time format.
func (c *Config) Layout() string {
	if c.TimeFormat == "12h" {
		return "3:04 PM"
	}
	return "15:04"
}

// Selection returns the configured prayers, or the default list.
func (c *Config) Selection() ([]prayer.Event, error) {
	if c.Prayers == "" {
		return prayer.ParseSelection(prayer.DefaultPrayerNames)
	}
	return prayer.ParseSelection(SplitList(c.Prayers))
}

// SplitList splits a comma-separated list, trimming blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func resolveZone(name string) (*time.Location, error) {
	switch l := zone.Label(strings.ToUpper(name)); l {
	case zone.WIB, zone.WITA, zone.WIT:
		return l.Location(), nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}
