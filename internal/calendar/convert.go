package calendar

import (
	"time"

	gcal "google.golang.org/api/calendar/v3"

	"digestbot/internal/digest"
)

// fromAPI maps a Google Calendar event onto the digest event model.
// Timed events carry RFC3339 DateTime values; all-day events carry a
// YYYY-MM-DD Date. An event with neither keeps only its text fields.
func fromAPI(e *gcal.Event) digest.Event {
	out := digest.Event{
		Title:       e.Summary,
		Description: e.Description,
		Location:    e.Location,
	}

	switch {
	case e.Start != nil && e.Start.DateTime != "":
		if t, err := time.Parse(time.RFC3339, e.Start.DateTime); err == nil {
			out.Start = t
		}
		if e.End != nil && e.End.DateTime != "" {
			if t, err := time.Parse(time.RFC3339, e.End.DateTime); err == nil {
				out.End = t
			}
		}
	case e.Start != nil && e.Start.Date != "":
		out.AllDay = true
		out.Date = e.Start.Date
	}
	return out
}
