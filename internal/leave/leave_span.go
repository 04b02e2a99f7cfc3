package leave

import (
	"time"

	"github.com/nidhidattani13/ems/internal/shared/clock"
)

// Span is the day extent of a leave request: either a full-day range
// [Start, End] or a single half-day session on Start.
type Span struct {
	Start   time.Time
	End     time.Time
	HalfDay bool
	Session string
}

// Days counts the calendar days the span occupies in the monthly
// ledger. Half-day requests consume a whole ledger day; the balance
// arithmetic works in integer days.
func (s Span) Days() int {
	return clock.InclusiveDays(s.Start, s.End)
}

// Covers reports whether day falls inside [Start, End].
func (s Span) Covers(day time.Time) bool {
	d := clock.DayOf(day)
	return !d.Before(clock.DayOf(s.Start)) && !d.After(clock.DayOf(s.End))
}
