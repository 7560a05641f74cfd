package prayer

import (
	"fmt"
	"time"

	"github.com/smokyabdulrahman/salat/internal/geo"
	"github.com/smokyabdulrahman/salat/internal/method"
)

// UrgentWithin is the remaining time under which a countdown is urgent.
const UrgentWithin = 30 * time.Minute

// State is the selector's position within a day.
type State int

const (
	StateFajr State = iota
	StateDhuhr
	StateAsr
	StateMaghrib
	StateIsha
	// StateRolloverPending means today's Isha has passed and the next
	// prayer is tomorrow's Fajr.
	StateRolloverPending
)

var stateEvents = map[State]Event{
	StateFajr:    Fajr,
	StateDhuhr:   Dhuhr,
	StateAsr:     Asr,
	StateMaghrib: Maghrib,
	StateIsha:    Isha,
}

func (st State) String() string {
	if e, ok := stateEvents[st]; ok {
		return e.String()
	}
	if st == StateRolloverPending {
		return "RolloverPending"
	}
	return fmt.Sprintf("State(%d)", int(st))
}

// Event returns the prayer the state waits for. RolloverPending waits for
// tomorrow's Fajr.
func (st State) Event() Event {
	if e, ok := stateEvents[st]; ok {
		return e
	}
	return Fajr
}

// SelectState returns the state for the first prayer strictly after now.
func SelectState(s *Schedule, now time.Time) State {
	for i, e := range Prayers {
		if s.Time(e).After(now) {
			return State(i)
		}
	}
	return StateRolloverPending
}

// NextState is the upcoming prayer and the time left until it.
type NextState struct {
	Prayer    Event
	Time      time.Time
	Remaining time.Duration // never negative
	Rollover  bool          // Time is on the following day
}

// Countdown splits Remaining into whole hours, minutes and seconds.
func (n NextState) Countdown() (hours, minutes, seconds int) {
	total := int(n.Remaining / time.Second)
	return total / 3600, total % 3600 / 60, total % 60
}

// Urgent reports whether less than UrgentWithin remains.
func (n NextState) Urgent() bool {
	return n.Remaining < UrgentWithin
}

func (n NextState) String() string {
	h, m, s := n.Countdown()
	return fmt.Sprintf("%s in %02d:%02d:%02d", n.Prayer, h, m, s)
}

// NextPrayer returns the first prayer strictly after now. When today's Isha
// has passed it computes tomorrow's schedule and returns its Fajr.
func NextPrayer(s *Schedule, now time.Time) (NextState, error) {
	st, _, err := next(s, now, ComputeIn)
	return st, err
}

// ComputeFunc computes a schedule. ComputeIn is the default; callers may
// substitute a memoized version.
type ComputeFunc func(coord geo.Coordinate, date time.Time, params method.Params, loc *time.Location) (*Schedule, error)

// next also returns tomorrow's schedule when it had to compute one.
func next(s *Schedule, now time.Time, compute ComputeFunc) (NextState, *Schedule, error) {
	state := SelectState(s, now)
	if state != StateRolloverPending {
		e := state.Event()
		t := s.Time(e)
		return NextState{Prayer: e, Time: t, Remaining: clamp(t.Sub(now))}, nil, nil
	}

	tomorrow, err := compute(s.coord, s.date.AddDate(0, 0, 1), s.params, s.loc)
	if err != nil {
		return NextState{}, nil, fmt.Errorf("computing tomorrow's schedule: %w", err)
	}
	t := tomorrow.Time(Fajr)
	return NextState{Prayer: Fajr, Time: t, Remaining: clamp(t.Sub(now)), Rollover: true}, tomorrow, nil
}

// Tracker holds the schedule a periodic caller is counting down against.
// It is not safe for concurrent use.
type Tracker struct {
	sched   *Schedule
	compute ComputeFunc
}

// NewTracker starts tracking from s. A nil compute uses ComputeIn.
func NewTracker(s *Schedule, compute ComputeFunc) *Tracker {
	if compute == nil {
		compute = ComputeIn
	}
	return &Tracker{sched: s, compute: compute}
}

// Schedule returns the schedule currently held.
func (t *Tracker) Schedule() *Schedule {
	return t.sched
}

// Tick evaluates the next prayer at now. On rollover the held schedule is
// replaced by tomorrow's. If now has moved past the held date entirely,
// the schedule for now's date is computed first.
func (t *Tracker) Tick(now time.Time) (NextState, error) {
	y, m, d := now.In(t.sched.loc).Date()
	if today := time.Date(y, m, d, 0, 0, 0, 0, t.sched.loc); today.After(t.sched.date) {
		s, err := t.compute(t.sched.coord, today, t.sched.params, t.sched.loc)
		if err != nil {
			return NextState{}, err
		}
		t.sched = s
	}

	st, tomorrow, err := next(t.sched, now, t.compute)
	if err != nil {
		return NextState{}, err
	}
	if tomorrow != nil {
		t.sched = tomorrow
	}
	return st, nil
}
