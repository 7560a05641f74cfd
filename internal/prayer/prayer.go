package prayer

import (
	"fmt"
	"strings"
	"time"
)

// Event is one of the six daily times: the five prayers plus sunrise.
type Event int

const (
	Fajr Event = iota
	Sunrise
	Dhuhr
	Asr
	Maghrib
	Isha

	numEvents = 6
)

// Events lists all six times in chronological order.
var Events = []Event{Fajr, Sunrise, Dhuhr, Asr, Maghrib, Isha}

// Prayers lists the five obligatory prayers. Sunrise is informational only.
var Prayers = []Event{Fajr, Dhuhr, Asr, Maghrib, Isha}

// DefaultPrayerNames are the times shown by default.
var DefaultPrayerNames = []string{
	"Fajr", "Sunrise", "Dhuhr", "Asr", "Maghrib", "Isha",
}

// Names holds the translations of an event name.
type Names struct {
	English    string `json:"en"`
	Indonesian string `json:"id"`
	Arabic     string `json:"ar"`
}

var eventNames = [numEvents]Names{
	Fajr:    {English: "Fajr", Indonesian: "Subuh", Arabic: "فجر"},
	Sunrise: {English: "Sunrise", Indonesian: "Matahari Terbit", Arabic: "شروق"},
	Dhuhr:   {English: "Dhuhr", Indonesian: "Dzuhur", Arabic: "ظهر"},
	Asr:     {English: "Asr", Indonesian: "Ashar", Arabic: "عصر"},
	Maghrib: {English: "Maghrib", Indonesian: "Maghrib", Arabic: "مغرب"},
	Isha:    {English: "Isha", Indonesian: "Isya", Arabic: "عشاء"},
}

// shortNames are single-character abbreviations for status bars.
var shortNames = [numEvents]string{
	Fajr:    "F",
	Sunrise: "S",
	Dhuhr:   "D",
	Asr:     "A",
	Maghrib: "M",
	Isha:    "I",
}

func (e Event) valid() bool {
	return e >= 0 && e < numEvents
}

func (e Event) String() string {
	if !e.valid() {
		return fmt.Sprintf("Event(%d)", int(e))
	}
	return eventNames[e].English
}

// Names returns the English, Indonesian and Arabic names of e.
func (e Event) Names() Names {
	if !e.valid() {
		return Names{}
	}
	return eventNames[e]
}

// ShortName returns the abbreviation of e, e.g. "A" for Asr.
func (e Event) ShortName() string {
	if !e.valid() {
		return ""
	}
	return shortNames[e]
}

// IsPrayer reports whether e is one of the five prayers.
func (e Event) IsPrayer() bool {
	return e.valid() && e != Sunrise
}

// ParseEvent accepts English or Indonesian names in any case.
func ParseEvent(s string) (Event, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, n := range eventNames {
		if key == strings.ToLower(n.English) || key == strings.ToLower(n.Indonesian) {
			return Event(i), nil
		}
	}
	if e, ok := eventAliases[key]; ok {
		return e, nil
	}
	return 0, fmt.Errorf("unknown prayer name: %s", s)
}

var eventAliases = map[string]Event{
	"subh":   Fajr,
	"shubuh": Fajr,
	"syuruq": Sunrise,
	"zuhr":   Dhuhr,
	"dhuhur": Dhuhr,
	"zuhur":  Dhuhr,
	"asar":   Asr,
	"magrib": Maghrib,
	"isyak":  Isha,
	"ishaa":  Isha,
}

// ParseSelection converts configured names into events, keeping their order.
func ParseSelection(names []string) ([]Event, error) {
	events := make([]Event, 0, len(names))
	for _, n := range names {
		e, err := ParseEvent(n)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

// Prayer is one event with its time, as shown in lists.
type Prayer struct {
	Event Event
	Name  string
	Time  time.Time
}

// NextIn returns the first entry of prayers strictly after now, or nil when
// all have passed. prayers must be in chronological order.
func NextIn(prayers []Prayer, now time.Time) *Prayer {
	for i := range prayers {
		if prayers[i].Time.After(now) {
			return &prayers[i]
		}
	}
	return nil
}

// CurrentIn returns the last entry of prayers at or before now, or nil when
// none has started yet.
func CurrentIn(prayers []Prayer, now time.Time) *Prayer {
	var cur *Prayer
	for i := range prayers {
		if prayers[i].Time.After(now) {
			break
		}
		cur = &prayers[i]
	}
	return cur
}

// TimeRemaining returns the duration until the given prayer time, never
// negative.
func TimeRemaining(p Prayer, now time.Time) time.Duration {
	return clamp(p.Time.Sub(now))
}

// FormatRemaining formats a duration as "Xh Ym" or "Ym" if less than an hour.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		return "0m"
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

func clamp(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
