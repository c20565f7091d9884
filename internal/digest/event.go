package digest

import "time"

// Event is a single calendar entry as returned by the calendar gateway.
// Exactly one timing variant is populated: timed events carry Start/End,
// all-day events carry Date (YYYY-MM-DD). Events with neither are kept in
// the digest but rendered without a time line.
type Event struct {
	Title       string
	Description string
	Location    string

	// Timed variant.
	Start time.Time
	End   time.Time

	// All-day variant.
	AllDay bool
	Date   string
}

// Timed reports whether the event has a concrete start instant.
func (e Event) Timed() bool { return !e.AllDay && !e.Start.IsZero() }

// DayKey returns the ISO calendar date (UTC) the event belongs to,
// or "" when the event has no timing information at all.
func (e Event) DayKey() string {
	switch {
	case e.Timed():
		return e.Start.UTC().Format("2006-01-02")
	case e.AllDay && e.Date != "":
		return e.Date
	default:
		return ""
	}
}
