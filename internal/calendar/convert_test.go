package calendar

import (
	"testing"
	"time"

	gcal "google.golang.org/api/calendar/v3"
)

func TestFromAPITimed(t *testing.T) {
	t.Parallel()
	e := &gcal.Event{
		Summary:     "Team Sync",
		Description: "agenda\nlong notes",
		Location:    "Room 4",
		Start:       &gcal.EventDateTime{DateTime: "2025-06-11T09:00:00Z"},
		End:         &gcal.EventDateTime{DateTime: "2025-06-11T09:30:00Z"},
	}

	got := fromAPI(e)

	if got.Title != "Team Sync" || got.Description != "agenda\nlong notes" || got.Location != "Room 4" {
		t.Fatalf("text fields = %+v", got)
	}
	if got.AllDay || got.Date != "" {
		t.Fatalf("timed event flagged all-day: %+v", got)
	}
	if !got.Start.Equal(time.Date(2025, time.June, 11, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("start = %v", got.Start)
	}
	if !got.End.Equal(time.Date(2025, time.June, 11, 9, 30, 0, 0, time.UTC)) {
		t.Fatalf("end = %v", got.End)
	}
	if !got.Timed() {
		t.Fatal("expected Timed()")
	}
}

func TestFromAPITimedWithOffset(t *testing.T) {
	t.Parallel()
	e := &gcal.Event{
		Summary: "Late call",
		Start:   &gcal.EventDateTime{DateTime: "2025-06-11T18:00:00+02:00"},
		End:     &gcal.EventDateTime{DateTime: "2025-06-11T19:00:00+02:00"},
	}

	got := fromAPI(e)
	if !got.Start.Equal(time.Date(2025, time.June, 11, 16, 0, 0, 0, time.UTC)) {
		t.Fatalf("start = %v", got.Start)
	}
	if got.DayKey() != "2025-06-11" {
		t.Fatalf("DayKey = %q", got.DayKey())
	}
}

func TestFromAPIAllDay(t *testing.T) {
	t.Parallel()
	e := &gcal.Event{
		Summary: "Offsite",
		Start:   &gcal.EventDateTime{Date: "2025-06-11"},
		End:     &gcal.EventDateTime{Date: "2025-06-12"},
	}

	got := fromAPI(e)
	if !got.AllDay || got.Date != "2025-06-11" {
		t.Fatalf("got %+v", got)
	}
	if got.Timed() {
		t.Fatal("all-day event must not be Timed()")
	}
	if got.DayKey() != "2025-06-11" {
		t.Fatalf("DayKey = %q", got.DayKey())
	}
}

func TestFromAPINoTiming(t *testing.T) {
	t.Parallel()
	got := fromAPI(&gcal.Event{Summary: "Floating"})
	if got.AllDay || got.Timed() || got.DayKey() != "" {
		t.Fatalf("got %+v", got)
	}
}
