package booking

import (
	"context"
	"time"

	bookingRepo "mentormatch/database/repository/booking"
	paymentRepo "mentormatch/database/repository/payment"
	profileRepo "mentormatch/database/repository/profile"
	sessionRepo "mentormatch/database/repository/session"

	"mentormatch/models"
)

// Transition events accepted by ApplyTransition.
const (
	EventConfirm    = "confirm"
	EventCancel     = "cancel"
	EventReschedule = "reschedule"
	EventComplete   = "complete"
)

// TransitionPayload carries the optional inputs of a transition event.
type TransitionPayload struct {
	Reason     string
	Reschedule *models.RescheduleRequest
}

// Notifier delivers booking lifecycle notifications to a participant.
type Notifier interface {
	NotifyBookingEvent(profileID, title, body string, data map[string]string)
}

// ReminderScheduler enqueues and cancels pre-session reminders.
type ReminderScheduler interface {
	ScheduleReminder(booking *models.Booking) error
	CancelReminder(bookingID string) error
}

// BookingService manages the booking lifecycle: creation with the atomic slot
// check, the state machine, and caller-facing views.
type BookingService interface {
	Create(ctx context.Context, menteeID string, req models.BookingRequest) (*models.BookingView, error)
	Get(bookingID, actorID string) (*models.BookingView, error)
	List(actorID string, filter bookingRepo.ListFilter) ([]models.BookingView, error)
	CheckAvailability(ctx context.Context, mentorID string, start time.Time, durationMinutes int) (bool, error)
	ComputePriceForMentor(mentorID, sessionKind string, durationMinutes int) (int64, string, error)
	ApplyTransition(ctx context.Context, bookingID, event, actorID string, payload TransitionPayload) (*models.BookingView, error)
	MarkNoShows(cutoff time.Time) (int, error)
}

// DefaultBookingService implements BookingService. Notifier, Scheduler and
// PaymentRepo are optional; nil disables the corresponding side effects.
type DefaultBookingService struct {
	BookingRepo bookingRepo.BookingRepository
	ProfileRepo profileRepo.ProfileRepository
	SessionRepo sessionRepo.SessionRepository
	PaymentRepo paymentRepo.PaymentRepository
	Notifier    Notifier
	Scheduler   ReminderScheduler

	// Now is the clock used by guards; tests override it. Defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
