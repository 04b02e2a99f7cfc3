// Package clock supplies "now" and "today" to the attendance and leave
// services. Every temporal invariant in those modules (the 18:00 cutoff,
// "no backdated leave", monthly balances) reads time through this
// interface so tests can pin the wall clock.
package clock

import "time"

const (
	// WorkdayEndHour is the fixed end of the working day. Sign-outs are
	// capped at this wall-clock boundary and open records are auto-closed
	// against it.
	WorkdayEndHour = 18

	// DateLayout is the calendar-date wire format used across the API.
	DateLayout = "2006-01-02"
)

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// New returns the wall clock.
func New() Clock {
	return systemClock{}
}

// Fixed returns a Clock pinned at t.
func Fixed(t time.Time) Clock {
	return fixedClock{t: t}
}

type fixedClock struct {
	t time.Time
}

func (f fixedClock) Now() time.Time {
	return f.t
}

// DayOf truncates t to midnight in t's location.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WorkdayEnd returns 18:00:00 of t's calendar day in t's location.
func WorkdayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), WorkdayEndHour, 0, 0, 0, t.Location())
}

// MonthBounds returns the inclusive first and last day of (year, month).
func MonthBounds(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)
	return first, last
}

// InclusiveDays counts calendar days in [a, b], 0 when b precedes a.
func InclusiveDays(a, b time.Time) int {
	a = DayOf(a)
	b = DayOf(b)
	if b.Before(a) {
		return 0
	}
	return int(b.Sub(a).Hours()/24) + 1
}

// SameMonth reports whether a and b share a calendar year and month.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
