package restaurant

import (
	"fmt"
	"time"
)

// Simulation clock defaults. All sessions run against the same fixed instant
// so calendar-dependent rules evaluate identically on every replay.
var (
	// DefaultSimTime is Wednesday, January 14, 2026 at 6:00 PM.
	DefaultSimTime = time.Date(2026, time.January, 14, 18, 0, 0, 0, time.UTC)
)

// Clock supplies the simulation's current time.
type Clock interface {
	Now() time.Time
}

// FixedClock is a Clock pinned to a single instant.
type FixedClock struct {
	Instant time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time { return c.Instant }

// federalHolidays2026 lists the observed US federal holidays for the
// simulation year.
var federalHolidays2026 = map[string]struct{}{
	"2026-01-01": {}, // New Year's Day
	"2026-01-19": {}, // MLK Day
	"2026-02-16": {}, // Presidents' Day
	"2026-05-25": {}, // Memorial Day
	"2026-06-19": {}, // Juneteenth
	"2026-07-03": {}, // Independence Day (observed)
	"2026-07-04": {}, // Independence Day
	"2026-09-07": {}, // Labor Day
	"2026-10-12": {}, // Columbus Day
	"2026-11-11": {}, // Veterans Day
	"2026-11-26": {}, // Thanksgiving
	"2026-12-25": {}, // Christmas
}

// IsFederalHoliday reports whether the date falls on a federal holiday.
func IsFederalHoliday(d time.Time) bool {
	_, ok := federalHolidays2026[d.Format("2006-01-02")]
	return ok
}

// IsWeekend reports whether the date is a Saturday or Sunday.
func IsWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsWeekday reports whether the date is Monday through Friday.
func IsWeekday(d time.Time) bool { return !IsWeekend(d) }

// IsLunchTime reports whether the time is before the 5 PM lunch cutoff.
func IsLunchTime(t time.Time) bool { return t.Hour() < 17 }

// IsPeakHours reports whether the time falls in a peak window:
// Friday 6-9 PM, Saturday 5-9 PM, Sunday 5-8 PM.
func IsPeakHours(t time.Time) bool {
	h := t.Hour()
	switch t.Weekday() {
	case time.Friday:
		return h >= 18 && h <= 21
	case time.Saturday:
		return h >= 17 && h <= 21
	case time.Sunday:
		return h >= 17 && h <= 20
	default:
		return false
	}
}

// ParseDate parses a YYYY-MM-DD reservation date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// ParseDateTime parses a reservation date and HH:MM time into one instant.
func ParseDateTime(date, clock string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04", date+" "+clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time %q %q: %w", date, clock, err)
	}
	return t, nil
}
