// Package hijri converts Gregorian dates to an approximate Islamic (Hijri)
// date using mean lunar arithmetic.
//
// The result can differ by a day or two from official calendars, which
// depend on moon sighting or on tabular rules this package does not model.
// Front ends should show Approximate next to every converted date.
package hijri

import (
	"fmt"
	"math"
	"time"

	"github.com/smokyabdulrahman/salat/internal/astro"
)

// Approximate is the caveat shown alongside converted dates.
const Approximate = "approximate; official dates depend on moon sighting and may differ by 1-2 days"

const (
	yearDays  = 354.367 // mean lunar year
	monthDays = 29.53   // mean synodic month
)

// epochJD is the Julian day of 16 July 622, day 1 of Muharram, year 1.
var epochJD = astro.JulianDay(622, time.July, 16)

var monthNames = [12]string{
	"Muharram", "Safar", "Rabi al-Awwal", "Rabi al-Thani",
	"Jumada al-Ula", "Jumada al-Akhirah", "Rajab", "Shaban",
	"Ramadan", "Shawwal", "Dhu al-Qadah", "Dhu al-Hijjah",
}

// Date is a Hijri calendar date.
type Date struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

// FromGregorian converts the calendar date of t, read in t's location.
// The time of day is ignored.
func FromGregorian(t time.Time) Date {
	y, m, d := t.Date()
	days := astro.JulianDay(y, m, d) - epochJD

	year := math.Floor(days/yearDays) + 1
	rem := days - math.Floor(days/yearDays)*yearDays

	month := math.Floor(rem/monthDays) + 1
	if month > 12 {
		month = 12
	}
	day := math.Floor(rem-(month-1)*monthDays) + 1

	return Date{Day: int(day), Month: int(month), Year: int(year)}
}

// MonthName returns the transliterated month name, or "" when Month is out
// of range.
func (d Date) MonthName() string {
	if d.Month < 1 || d.Month > 12 {
		return ""
	}
	return monthNames[d.Month-1]
}

// String formats the date as "D/M/Y H".
func (d Date) String() string {
	return fmt.Sprintf("%d/%d/%d H", d.Day, d.Month, d.Year)
}

// Format returns a long form such as "21 Jumada al-Akhirah 1445 AH".
func (d Date) Format() string {
	return fmt.Sprintf("%d %s %d AH", d.Day, d.MonthName(), d.Year)
}
