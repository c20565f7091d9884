package digest

import "time"

// Range is a digest lookup window. Both bounds are inclusive and always
// expressed in UTC; End sits 1ms before the next period boundary.
type Range struct {
	Start time.Time
	End   time.Time
}

// DailyRange returns today's window: UTC midnight through 23:59:59.999.
func DailyRange(now time.Time) Range {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return Range{Start: start, End: start.AddDate(0, 0, 1).Add(-time.Millisecond)}
}

// WeeklyRange returns the Monday-through-Sunday window for now's UTC week.
//
// When now falls on a Sunday the window rolls FORWARD to the next Monday
// rather than back to the week that is about to end. Downstream consumers
// rely on this, so don't "fix" it.
func WeeklyRange(now time.Time) Range {
	now = now.UTC()

	var ahead int
	switch now.Weekday() {
	case time.Sunday:
		ahead = 1
	case time.Monday:
		ahead = 0
	default:
		ahead = 8 - int(now.Weekday())
	}

	monday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, ahead)
	sunday := monday.AddDate(0, 0, 7).Add(-time.Millisecond)
	return Range{Start: monday, End: sunday}
}

// WeekNumber returns the ISO-8601 week number of d: shift the date to the
// Thursday of its week, then count whole weeks since that year's January 1.
func WeekNumber(d time.Time) int {
	d = d.UTC()
	day := int(d.Weekday())
	if day == 0 {
		day = 7 // ISO: Sunday is day 7
	}
	thursday := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 4-day)
	yearStart := time.Date(thursday.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	days := int(thursday.Sub(yearStart).Hours()/24) + 1
	return (days + 6) / 7
}

// FormatDate renders a date for display, e.g. "Monday, January 2, 2006".
func FormatDate(d time.Time) string {
	return d.UTC().Format("Monday, January 2, 2006")
}

// FormatTimeRange renders a timed event's window on a 12-hour clock,
// e.g. "9:00 AM - 10:30 AM".
func FormatTimeRange(start, end time.Time) string {
	return start.UTC().Format("3:04 PM") + " - " + end.UTC().Format("3:04 PM")
}
