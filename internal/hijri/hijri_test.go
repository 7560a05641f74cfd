package hijri

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFromGregorian(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want Date
	}{
		{"epoch", date(622, time.July, 16), Date{Day: 1, Month: 1, Year: 1}},
		{"day after epoch", date(622, time.July, 17), Date{Day: 2, Month: 1, Year: 1}},
		{"new year 2024", date(2024, time.January, 1), Date{Day: 21, Month: 6, Year: 1445}},
		{"ramadan 2025", date(2025, time.March, 1), Date{Day: 3, Month: 9, Year: 1446}},
		{"today", date(2026, time.October, 15), Date{Day: 5, Month: 5, Year: 1448}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromGregorian(tt.in))
		})
	}
}

func TestFromGregorian_IgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2024, 1, 1, 0, 0, 1, 0, time.UTC)
	night := time.Date(2024, 1, 1, 23, 59, 59, 0, time.UTC)

	assert.Equal(t, FromGregorian(morning), FromGregorian(night))
}

func TestFromGregorian_UsesLocalCalendarDate(t *testing.T) {
	wib := time.FixedZone("UTC+7", 7*3600)
	// 2023-12-31 20:00 UTC is already 1 January in Jakarta.
	instant := time.Date(2023, 12, 31, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, Date{Day: 21, Month: 6, Year: 1445}, FromGregorian(instant.In(wib)))
}

func TestFromGregorian_FieldsInRange(t *testing.T) {
	start := date(2000, time.January, 1)
	for i := 0; i < 365*30; i += 3 {
		d := FromGregorian(start.AddDate(0, 0, i))
		assert.GreaterOrEqual(t, d.Month, 1)
		assert.LessOrEqual(t, d.Month, 12)
		assert.GreaterOrEqual(t, d.Day, 1)
		assert.LessOrEqual(t, d.Day, 30)
	}
}

func TestDate_Formatting(t *testing.T) {
	d := Date{Day: 21, Month: 6, Year: 1445}

	assert.Equal(t, "21/6/1445 H", d.String())
	assert.Equal(t, "21 Jumada al-Akhirah 1445 AH", d.Format())
	assert.Equal(t, "Ramadan", Date{Day: 1, Month: 9, Year: 1446}.MonthName())
	assert.Equal(t, "", Date{Month: 13}.MonthName())
}
