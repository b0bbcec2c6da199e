package mentor

import (
	"context"
	"fmt"
	"time"

	"mentormatch/models"
)

// slotStepMinutes is the granularity of offered start times.
const slotStepMinutes = 30

// AvailableSlots lists the open start/end windows of a mentor on a given day
// ("2006-01-02", interpreted in the mentor's timezone). Overrides replace the
// weekly rules for that date; active bookings and past instants are excluded.
func (s *DefaultMentorService) AvailableSlots(ctx context.Context, mentorID string, date string, durationMinutes int) ([]Slot, error) {
	if durationMinutes < models.MinBookingMinutes || durationMinutes > models.MaxBookingMinutes {
		return nil, fmt.Errorf("duration must be between %d and %d minutes", models.MinBookingMinutes, models.MaxBookingMinutes)
	}

	profile, err := s.ProfileRepo.GetByID(mentorID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch mentor: %w", err)
	}
	if profile == nil || !profile.IsMentor {
		return nil, fmt.Errorf("mentor not found")
	}

	loc := time.UTC
	if profile.Timezone != "" {
		if l, err := time.LoadLocation(profile.Timezone); err == nil {
			loc = l
		}
	}
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return nil, fmt.Errorf("date must be YYYY-MM-DD")
	}

	rules, overrides, err := s.ProfileRepo.GetAvailability(mentorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load availability: %w", err)
	}

	windows := dayWindows(day, date, rules, overrides)
	if len(windows) == 0 {
		return []Slot{}, nil
	}

	dayStart := day
	dayEnd := day.Add(24 * time.Hour)
	booked, err := s.BookingRepo.FindOverlapping(ctx, mentorID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}

	now := time.Now()
	duration := time.Duration(durationMinutes) * time.Minute
	step := slotStepMinutes * time.Minute

	var slots []Slot
	for _, w := range windows {
		for start := w.Start; !start.Add(duration).After(w.End); start = start.Add(step) {
			if !start.After(now) {
				continue
			}
			end := start.Add(duration)
			if overlapsAny(booked, start, end) {
				continue
			}
			slots = append(slots, Slot{Start: start, End: end})
		}
	}
	if slots == nil {
		slots = []Slot{}
	}
	return slots, nil
}

// dayWindows resolves the availability windows for one day. A date override,
// when present, replaces the weekly rules entirely.
func dayWindows(day time.Time, date string, rules []models.AvailabilityRule, overrides []models.AvailabilityOverride) []Slot {
	for _, o := range overrides {
		if o.Date != date {
			continue
		}
		if !o.IsAvailable {
			return nil
		}
		return []Slot{{
			Start: day.Add(time.Duration(o.StartMinute) * time.Minute),
			End:   day.Add(time.Duration(o.EndMinute) * time.Minute),
		}}
	}

	// Weekday with Monday as 0.
	weekday := (int(day.Weekday()) + 6) % 7
	var windows []Slot
	for _, r := range rules {
		if !r.IsActive || r.Weekday != weekday {
			continue
		}
		windows = append(windows, Slot{
			Start: day.Add(time.Duration(r.StartMinute) * time.Minute),
			End:   day.Add(time.Duration(r.EndMinute) * time.Minute),
		})
	}
	return windows
}

func overlapsAny(bookings []models.Booking, start, end time.Time) bool {
	for _, b := range bookings {
		if b.ScheduledAt.Before(end) && b.EndsAt.After(start) {
			return true
		}
	}
	return false
}
