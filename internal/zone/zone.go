// Package zone labels Indonesian civil time zones by longitude and builds
// the fixed-offset zones used when no IANA zone is configured.
package zone

import (
	"fmt"
	"math"
	"time"
	_ "time/tzdata" // IANA zones on hosts without a tz database
)

// Label is an Indonesian civil time zone abbreviation.
type Label string

const (
	WIB  Label = "WIB"  // Waktu Indonesia Barat, UTC+7
	WITA Label = "WITA" // Waktu Indonesia Tengah, UTC+8
	WIT  Label = "WIT"  // Waktu Indonesia Timur, UTC+9
)

// Boundaries in degrees east. A longitude exactly on a boundary belongs to
// the eastern zone.
const (
	witaFrom = 120.0
	witFrom  = 135.0
)

// Info is the regional metadata for a label. Cities follow the civil zone
// borders, which do not match the longitude split in LabelFor: Denpasar,
// Makassar, Banjarmasin and Balikpapan keep WITA time but lie west of 120°E,
// so LabelFor reports WIB for them.
type Info struct {
	Label     Label
	IANA      string
	UTCOffset int // hours
	Cities    []string
}

var regions = map[Label]Info{
	WIB: {
		Label:     WIB,
		IANA:      "Asia/Jakarta",
		UTCOffset: 7,
		Cities:    []string{"Jakarta", "Bandung", "Semarang", "Yogyakarta", "Surabaya", "Medan", "Palembang"},
	},
	WITA: {
		Label:     WITA,
		IANA:      "Asia/Makassar",
		UTCOffset: 8,
		Cities:    []string{"Denpasar", "Makassar", "Banjarmasin", "Balikpapan", "Manado", "Kupang"},
	},
	WIT: {
		Label:     WIT,
		IANA:      "Asia/Jayapura",
		UTCOffset: 9,
		Cities:    []string{"Manokwari", "Jayapura", "Sorong", "Ambon"},
	},
}

// LabelFor returns the Indonesian zone for a longitude. It applies the
// split to any longitude, including ones outside Indonesia. The split is an
// approximation of the civil borders, not a lookup of them.
func LabelFor(lon float64) Label {
	switch {
	case lon < witaFrom:
		return WIB
	case lon < witFrom:
		return WITA
	default:
		return WIT
	}
}

// Info returns the regional metadata for l. Unknown labels return the zero Info.
func (l Label) Info() Info {
	info := regions[l]
	info.Cities = append([]string(nil), info.Cities...)
	return info
}

// Location returns the IANA zone for l, or a fixed zone with the same
// offset when the tz database is unavailable.
func (l Label) Location() *time.Location {
	info, ok := regions[l]
	if !ok {
		return time.UTC
	}
	if loc, err := time.LoadLocation(info.IANA); err == nil {
		return loc
	}
	return time.FixedZone(string(l), info.UTCOffset*3600)
}

// ForLongitude returns a fixed zone whose offset is lon/15 rounded to the
// nearest whole hour, named like "UTC+7".
func ForLongitude(lon float64) *time.Location {
	hours := int(math.Round(lon / 15))
	return time.FixedZone(OffsetName(hours), hours*3600)
}

// OffsetName formats an hour offset as "UTC", "UTC+7" or "UTC-5".
func OffsetName(hours int) string {
	if hours == 0 {
		return "UTC"
	}
	return fmt.Sprintf("UTC%+d", hours)
}
