package bookingRepo

import (
	"context"
	"errors"
	"time"

	"mentormatch/models"
)

// ErrSlotConflict is returned when a transactional insert or reschedule finds
// the candidate window already taken, including when a concurrent writer wins
// the transaction race.
var ErrSlotConflict = errors.New("booking slot conflict")

// ListFilter narrows a booking listing.
type ListFilter struct {
	Status       string
	UpcomingOnly bool
	Role         string // mentor | mentee | "" (both)
}

// BookingRepository defines methods for booking data access.
//
// CreateIfSlotFree and RescheduleIfSlotFree are the only write paths for an
// active window: both run the overlap check and the write inside one MongoDB
// multi-document transaction, so two concurrent requests for the same mentor
// cannot both commit. Callers seeing ErrSlotConflict may re-run the
// availability check and retry.
type BookingRepository interface {
	// GetByID retrieves a booking by ID. Returns (nil, nil) when absent.
	GetByID(id string) (*models.Booking, error)
	// ListByUser returns bookings where the user is mentor and/or mentee.
	ListByUser(userID string, filter ListFilter) ([]models.Booking, error)
	// FindOverlapping returns the mentor's active bookings intersecting [start, end).
	FindOverlapping(ctx context.Context, mentorID string, start, end time.Time) ([]models.Booking, error)
	// CreateIfSlotFree atomically re-checks the window and inserts the booking.
	CreateIfSlotFree(ctx context.Context, booking *models.Booking) error
	// RescheduleIfSlotFree atomically re-checks the new window (ignoring the
	// booking itself) and persists the updated booking.
	RescheduleIfSlotFree(ctx context.Context, booking *models.Booking) error
	// Update persists state changes that do not move the window.
	Update(booking *models.Booking) error
	// ListConfirmedEndedBefore returns confirmed bookings whose window ended
	// before the cutoff; used by the no-show sweep.
	ListConfirmedEndedBefore(cutoff time.Time) ([]models.Booking, error)
}
