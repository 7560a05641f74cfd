package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salat/internal/config"
	"github.com/smokyabdulrahman/salat/internal/display"
	"github.com/smokyabdulrahman/salat/internal/method"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or modify configuration",
		Long: "Display current configuration, or use subcommands to modify it.\n" +
			"When run without subcommands, shows the current configuration.\n\n" +
			"Every key can also be set with a " + config.EnvPrefix + "<KEY> environment variable,\n" +
			"either exported or listed in a .env file in the working directory.",
		RunE: runConfigShow,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Long: fmt.Sprintf("Set a configuration value. Valid keys: %s\n\nExamples:\n  salat config set -- latitude -6.2088\n  salat config set longitude 106.8456\n  salat config set timezone WIB\n  salat config set method MWL\n  salat config set madhab hanafi\n  salat config set time_format 12h\n  salat config set prayers Fajr,Dhuhr,Asr,Maghrib,Isha",
			strings.Join(config.ValidKeys, ", ")),
		Args: cobra.ExactArgs(2),
		RunE: runConfigSet,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset config to defaults",
		Long:  "Delete the config file and restore all settings to defaults.",
		RunE:  runConfigReset,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print config file path",
		RunE:  runConfigPath,
	})

	return cmd
}

// runConfigShow displays the current configuration.
func runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}

	cfg := loadedConfig
	if cfg == nil {
		if cfg, err = config.Load(); err != nil {
			return err
		}
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "  Configuration (%s)\n\n", path)

	defaults := config.Defaults()
	for _, key := range config.ValidKeys {
		val, _ := cfg.Get(key)
		shown := val
		if shown == "" {
			def, _ := defaults.Get(key)
			shown = display.Dim("(not set)")
			if def != "" {
				shown = display.Dim(fmt.Sprintf("(default: %s)", def))
			}
		} else if key == "method" {
			// Add the authority name to the method key.
			shown = formatMethodValue(val)
		}
		fmt.Fprintf(w, "  %-14s %s\n", key, shown)
	}
	return nil
}

// runConfigSet sets a config key to the given value.
func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	// Load the file again so environment overrides are not persisted.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := cfg.Set(key, value); err != nil {
		return err
	}

	if err := cfg.Save(); err != nil {
		return err
	}

	stored, _ := cfg.Get(key)
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, stored)
	return nil
}

// runConfigReset deletes the config file.
func runConfigReset(cmd *cobra.Command, args []string) error {
	if err := config.Reset(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Configuration reset to defaults.")
	return nil
}

// runConfigPath prints the config file path.
func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// formatMethodValue adds the authority name to a method key.
func formatMethodValue(val string) string {
	p, err := method.Lookup(val)
	if err != nil {
		return val
	}
	return fmt.Sprintf("%s (%s)", p.Name, p.Label)
}

func newMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List all calculation methods",
		Long:  "Print the table of supported calculation methods and their angles.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			def := method.Default()

			if FlagJSON {
				type methodJSON struct {
					Name        string  `json:"name"`
					Label       string  `json:"label"`
					FajrAngle   float64 `json:"fajr_angle"`
					IshaAngle   float64 `json:"isha_angle,omitempty"`
					IshaMinutes int     `json:"isha_interval_minutes,omitempty"`
					Maghrib     float64 `json:"maghrib_angle,omitempty"`
					Default     bool    `json:"default,omitempty"`
				}
				var out []methodJSON
				for _, p := range method.All() {
					out = append(out, methodJSON{
						Name:        p.Name,
						Label:       p.Label,
						FajrAngle:   p.FajrAngle,
						IshaAngle:   p.IshaAngle,
						IshaMinutes: int(p.IshaInterval.Minutes()),
						Maghrib:     p.MaghribAngle,
						Default:     p.Name == def.Name,
					})
				}
				return writeJSON(w, out)
			}

			fmt.Fprintf(w, "Supported calculation methods (registry %s):\n\n", method.RegistryVersion)

			tbl := display.NewTable("Name", "Authority", "Parameters")
			for i, p := range method.All() {
				tbl.AddRow(p.Name, p.Label, p.Describe())
				if p.Name == def.Name {
					tbl.Highlight(i, display.Accent)
				}
			}
			fmt.Fprint(w, tbl.Render())

			fmt.Fprintln(w)
			fmt.Fprintln(w, "Use --method <name> to select a calculation method.")
			fmt.Fprintf(w, "If omitted, %s is used.\n", def.Name)
			return nil
		},
	}
}
