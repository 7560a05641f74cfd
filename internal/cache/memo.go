package cache

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/smokyabdulrahman/salat/internal/geo"
	"github.com/smokyabdulrahman/salat/internal/method"
	"github.com/smokyabdulrahman/salat/internal/prayer"
)

// DefaultMemoSize covers a month view plus its neighbours.
const DefaultMemoSize = 64

type memoKey struct {
	coord  geo.Coordinate
	year   int
	month  time.Month
	day    int
	params method.Params
	zone   string // "" for the longitude zone
}

// ScheduleMemo remembers computed schedules by place, date, method and zone.
// It is safe for concurrent use. Failed computations are not stored.
type ScheduleMemo struct {
	entries *lru.Cache[memoKey, *prayer.Schedule]
}

// NewScheduleMemo returns a memo holding at most size schedules.
func NewScheduleMemo(size int) (*ScheduleMemo, error) {
	entries, err := lru.New[memoKey, *prayer.Schedule](size)
	if err != nil {
		return nil, fmt.Errorf("creating schedule memo: %w", err)
	}
	return &ScheduleMemo{entries: entries}, nil
}

// Compute has the signature of prayer.ComputeIn and returns a stored
// schedule when one exists.
func (m *ScheduleMemo) Compute(coord geo.Coordinate, date time.Time, params method.Params, loc *time.Location) (*prayer.Schedule, error) {
	y, mo, d := date.Date()
	key := memoKey{coord: coord, year: y, month: mo, day: d, params: params}
	if loc != nil {
		key.zone = loc.String()
	}

	if s, ok := m.entries.Get(key); ok {
		return s, nil
	}

	s, err := prayer.ComputeIn(coord, date, params, loc)
	if err != nil {
		return nil, err
	}
	m.entries.Add(key, s)
	return s, nil
}

// Len returns the number of stored schedules.
func (m *ScheduleMemo) Len() int {
	return m.entries.Len()
}
