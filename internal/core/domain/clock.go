package domain

import "time"

const DateKeyLayout = "2006-01-02"

// Clock is the single source of "now" for the engine. It is injected into
// every service so temporal logic stays deterministic under test.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in a location fixed at session start.
// Using one location for the whole session avoids date-key skew between
// calls made on the same calendar day.
type SystemClock struct {
	Location *time.Location
}

func NewSystemClock(loc *time.Location) SystemClock {
	if loc == nil {
		loc = time.UTC
	}
	return SystemClock{Location: loc}
}

func (c SystemClock) Now() time.Time {
	return time.Now().In(c.Location)
}

// DateKey collapses an instant to its canonical per-day key (YYYY-MM-DD).
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// WeekdayOrdinal maps an instant to its weekday ordinal, 1 (Sunday) through
// 7 (Saturday). Schedules are stored against these ordinals.
func WeekdayOrdinal(t time.Time) int {
	return int(t.Weekday()) + 1
}
