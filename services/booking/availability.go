package booking

import (
	"context"
	"time"

	"mentormatch/models"
)

// validateWindow checks the duration bounds and that the start instant is
// strictly in the future.
func validateWindow(start time.Time, durationMinutes int, now time.Time) error {
	if durationMinutes < models.MinBookingMinutes || durationMinutes > models.MaxBookingMinutes {
		return NewInvalidTransitionError("duration must be between 15 and 180 minutes")
	}
	if !start.After(now) {
		return NewPastDeadlineError("scheduled time must be in the future")
	}
	return nil
}

// CheckAvailability reports whether the window [start, start+duration) is free
// of the mentor's active bookings. Read-only; the authoritative check is
// re-run inside the insert transaction.
func (s *DefaultBookingService) CheckAvailability(ctx context.Context, mentorID string, start time.Time, durationMinutes int) (bool, error) {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	overlapping, err := s.BookingRepo.FindOverlapping(ctx, mentorID, start, end)
	if err != nil {
		return false, err
	}
	return len(overlapping) == 0, nil
}

// checkAvailabilityExcluding is the reschedule variant: the booking being
// moved must not conflict with itself.
func (s *DefaultBookingService) checkAvailabilityExcluding(ctx context.Context, mentorID string, start time.Time, durationMinutes int, excludeID string) (bool, error) {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	overlapping, err := s.BookingRepo.FindOverlapping(ctx, mentorID, start, end)
	if err != nil {
		return false, err
	}
	for _, b := range overlapping {
		if b.ID != excludeID {
			return false, nil
		}
	}
	return true, nil
}
