package mentor

import (
	"testing"
	"time"

	"mentormatch/models"
)

func TestDayWindows(t *testing.T) {
	// 2024-06-03 is a Monday.
	day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	rules := []models.AvailabilityRule{
		{Weekday: 0, StartMinute: 9 * 60, EndMinute: 12 * 60, IsActive: true},
		{Weekday: 0, StartMinute: 14 * 60, EndMinute: 17 * 60, IsActive: true},
		{Weekday: 1, StartMinute: 9 * 60, EndMinute: 17 * 60, IsActive: true},
		{Weekday: 0, StartMinute: 18 * 60, EndMinute: 20 * 60, IsActive: false},
	}

	windows := dayWindows(day, "2024-06-03", rules, nil)
	if len(windows) != 2 {
		t.Fatalf("expected 2 windows for Monday, got %d", len(windows))
	}
	if windows[0].Start.Hour() != 9 || windows[0].End.Hour() != 12 {
		t.Errorf("unexpected first window: %v-%v", windows[0].Start, windows[0].End)
	}

	// An unavailable override blanks the day.
	off := []models.AvailabilityOverride{{Date: "2024-06-03", IsAvailable: false}}
	if got := dayWindows(day, "2024-06-03", rules, off); got != nil {
		t.Errorf("expected no windows with an off override, got %v", got)
	}

	// An available override replaces the weekly rules.
	custom := []models.AvailabilityOverride{{Date: "2024-06-03", IsAvailable: true, StartMinute: 10 * 60, EndMinute: 11 * 60}}
	got := dayWindows(day, "2024-06-03", rules, custom)
	if len(got) != 1 || got[0].Start.Hour() != 10 || got[0].End.Hour() != 11 {
		t.Errorf("expected single 10:00-11:00 window, got %v", got)
	}
}

func TestOverlapsAny(t *testing.T) {
	mk := func(h, m, minutes int) models.Booking {
		b := models.Booking{Status: models.BookingStatusConfirmed}
		b.SetWindow(time.Date(2024, 6, 3, h, m, 0, 0, time.UTC), minutes)
		return b
	}
	booked := []models.Booking{mk(10, 0, 60)}

	start := time.Date(2024, 6, 3, 10, 30, 0, 0, time.UTC)
	if !overlapsAny(booked, start, start.Add(time.Hour)) {
		t.Error("expected 10:30-11:30 to overlap 10:00-11:00")
	}
	start = time.Date(2024, 6, 3, 11, 0, 0, 0, time.UTC)
	if overlapsAny(booked, start, start.Add(time.Hour)) {
		t.Error("back-to-back 11:00-12:00 should not overlap")
	}
}
