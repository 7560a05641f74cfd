package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salat/internal/display"
	"github.com/smokyabdulrahman/salat/internal/geo"
	"github.com/smokyabdulrahman/salat/internal/hijri"
	"github.com/smokyabdulrahman/salat/internal/qibla"
	"github.com/smokyabdulrahman/salat/internal/zone"
)

func newQiblaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "qibla",
		Short: "Show the Qibla direction",
		Long:  "Print the initial great-circle bearing from the location to the Kaaba,\nmeasured clockwise from true north, and the distance.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if FlagJSON {
				return writeJSON(w, struct {
					Location todayJSONLocation `json:"location"`
					qiblaJSON
				}{locationJSON(s), newQiblaJSON(s)})
			}

			b := qibla.Direction(s.place.Coordinate)
			fmt.Fprintf(w, "  %s\n", s.locationLabel())
			fmt.Fprintf(w, "  Qibla     %s\n", display.Accent(b.String()))
			fmt.Fprintf(w, "  Distance  %s km\n", formatKm(qibla.Distance(s.place.Coordinate)))
			return nil
		},
	}
}

func newHijriCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hijri",
		Short: "Show the approximate Hijri date",
		Long: "Show the approximate mean-lunar Hijri date for today, or --date.\n" +
			"The result is " + hijri.Approximate + ".",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}

			h := hijri.FromGregorian(s.date)
			w := cmd.OutOrStdout()
			if FlagJSON {
				return writeJSON(w, struct {
					Gregorian string `json:"gregorian"`
					Day       int    `json:"day"`
					Month     int    `json:"month"`
					MonthName string `json:"month_name"`
					Year      int    `json:"year"`
					Note      string `json:"note"`
				}{s.date.Format(gregorianLayout), h.Day, h.Month, h.MonthName(), h.Year, hijri.Approximate})
			}

			fmt.Fprintf(w, "%s (%s)\n", h.Format(), h)
			fmt.Fprintln(w, display.Dim("Note: "+hijri.Approximate))
			return nil
		},
	}
}

func newZoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "zone [longitude]",
		Short: "Show the Indonesian time zone label for a longitude",
		Long: "Classify a longitude as WIB (UTC+7), WITA (UTC+8) or WIT (UTC+9).\n" +
			"Without an argument the resolved location is used. Pass negative\n" +
			"longitudes after --, e.g. 'salat zone -- -74'.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var lon float64
			if len(args) == 1 {
				v, err := strconv.ParseFloat(args[0], 64)
				if err != nil {
					return fmt.Errorf("invalid longitude %q: must be a number", args[0])
				}
				if err := (geo.Coordinate{Longitude: v}).Validate(); err != nil {
					return err
				}
				lon = v
			} else {
				s, err := newSession(cmd)
				if err != nil {
					return err
				}
				lon = s.place.Longitude
			}

			info := zone.LabelFor(lon).Info()
			w := cmd.OutOrStdout()
			if FlagJSON {
				return writeJSON(w, struct {
					Longitude float64  `json:"longitude"`
					Label     string   `json:"label"`
					IANA      string   `json:"iana"`
					Offset    string   `json:"utc_offset"`
					Cities    []string `json:"cities"`
				}{lon, string(info.Label), info.IANA, zone.OffsetName(info.UTCOffset), info.Cities})
			}

			fmt.Fprintf(w, "%s  %s (%s)\n", display.Bold(string(info.Label)), zone.OffsetName(info.UTCOffset), info.IANA)
			fmt.Fprintf(w, "  %s\n", strings.Join(info.Cities, ", "))
			return nil
		},
	}
}
