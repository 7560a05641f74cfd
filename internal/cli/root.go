package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/smokyabdulrahman/salat/internal/config"
	"github.com/smokyabdulrahman/salat/internal/display"
	"github.com/smokyabdulrahman/salat/internal/logging"
)

// Global flags shared across all subcommands.
var (
	FlagCity       string
	FlagLatitude   float64
	FlagLongitude  float64
	FlagTimezone   string
	FlagMethod     string
	FlagMadhab     string
	FlagJSON       bool
	FlagCacheDir   string
	FlagTimeFormat string
	FlagDate       string
	FlagVerbose    bool
	FlagNoColor    bool
)

// dotenvFile is read from the working directory for SALAT_* overrides.
const dotenvFile = ".env"

// loadedConfig holds the config loaded during PersistentPreRunE, with
// environment overrides already applied.
var loadedConfig *config.Config

// NewRootCmd creates the root command for the salat CLI.
// The version parameter is set by the calling binary via ldflags.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "salat",
		Short: "Offline Islamic prayer times, Qibla and Hijri date",
		Long: "Compute the five daily prayer times, sunrise, the Qibla bearing and an\n" +
			"approximate Hijri date for any location, without network access.\n" +
			"Defaults follow the Indonesian Ministry of Religious Affairs (Kemenag).",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if FlagNoColor {
				display.SetEnabled(false)
			}
			logging.Setup(display.Stderr(), FlagVerbose, display.Enabled())

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			env, err := config.Env(dotenvFile)
			if err != nil {
				return err
			}
			if err := cfg.ApplyEnv(env); err != nil {
				return err
			}
			loadedConfig = cfg
			return nil
		},
		// Default action: show today's prayer schedule.
		RunE:          runToday,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Register global persistent flags.
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&FlagCity, "city", "", "Label for the location (display only)")
	pf.Float64Var(&FlagLatitude, "latitude", 0, "Override latitude (-90..90)")
	pf.Float64Var(&FlagLongitude, "longitude", 0, "Override longitude (-180..180)")
	pf.StringVar(&FlagTimezone, "timezone", "", "IANA zone or WIB/WITA/WIT (default: from longitude)")
	pf.StringVar(&FlagMethod, "method", "", "Calculation method (see 'salat methods')")
	pf.StringVar(&FlagMadhab, "madhab", "", "Asr convention: shafi or hanafi")
	pf.BoolVar(&FlagJSON, "json", false, "Output as JSON (where supported)")
	pf.StringVar(&FlagCacheDir, "cache-dir", "", "Cache directory (default: ~/.cache/salat/)")
	pf.StringVar(&FlagTimeFormat, "time-format", "", "Time format: 12h or 24h (overrides config)")
	pf.StringVar(&FlagDate, "date", "", "Date to compute for, YYYY-MM-DD (default: today)")
	pf.BoolVarP(&FlagVerbose, "verbose", "v", false, "Log diagnostics to stderr")
	pf.BoolVar(&FlagNoColor, "no-color", false, "Disable colored output")

	// Register subcommands.
	rootCmd.AddCommand(newNextCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newWeekCmd())
	rootCmd.AddCommand(newMonthCmd())
	rootCmd.AddCommand(newQueryCmd())
	rootCmd.AddCommand(newQiblaCmd())
	rootCmd.AddCommand(newHijriCmd())
	rootCmd.AddCommand(newZoneCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newMethodsCmd())

	return rootCmd
}

// PrintVersion prints the version string in the expected format.
func PrintVersion(version string) string {
	return fmt.Sprintf("salat %s\n", version)
}

// effectiveConfig returns the merged configuration values,
// applying the priority: CLI flags > environment > config file > defaults.
// Flag values go through Config.Set so they are validated the same way.
func effectiveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Config{}
	if loadedConfig != nil {
		cfg = *loadedConfig
	}

	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()

	overrides := []struct {
		flag, key, value string
	}{
		{"city", "city", FlagCity},
		{"latitude", "latitude", strconv.FormatFloat(FlagLatitude, 'f', -1, 64)},
		{"longitude", "longitude", strconv.FormatFloat(FlagLongitude, 'f', -1, 64)},
		{"timezone", "timezone", FlagTimezone},
		{"method", "method", FlagMethod},
		{"madhab", "madhab", FlagMadhab},
		{"time-format", "time_format", FlagTimeFormat},
		{"cache-dir", "cache_dir", FlagCacheDir},
	}
	for _, o := range overrides {
		if !flagWasSet(flags, root, o.flag) {
			continue
		}
		if err := cfg.Set(o.key, o.value); err != nil {
			return nil, fmt.Errorf("--%s: %w", o.flag, err)
		}
	}

	defaults := config.Defaults()
	if cfg.Method == "" {
		cfg.Method = defaults.Method
	}
	if cfg.Madhab == "" {
		cfg.Madhab = defaults.Madhab
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = defaults.TimeFormat
	}

	return &cfg, nil
}

// flagWasSet checks if a flag was explicitly set on either the local or persistent flag set.
func flagWasSet(local, persistent *pflag.FlagSet, name string) bool {
	if f := local.Lookup(name); f != nil && f.Changed {
		return true
	}
	if f := persistent.Lookup(name); f != nil && f.Changed {
		return true
	}
	return false
}
