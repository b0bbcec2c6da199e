package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "mentormatch/database/repository/booking"
	"mentormatch/models"
	"mentormatch/utils"

	"go.uber.org/zap"
)

// refundNoticePeriod is the minimum notice before the session start for a
// cancellation to stay refund-eligible.
const refundNoticePeriod = 24 * time.Hour

// RefundEligible reports whether cancelling at instant now leaves at least the
// full notice period before the session start. Exactly 24h of notice is still
// eligible.
func RefundEligible(scheduledAt, now time.Time) bool {
	return scheduledAt.Sub(now) >= refundNoticePeriod
}

// ApplyTransition runs one state-machine event against a booking. Guards are
// checked before any write; a failed guard leaves the booking untouched.
func (s *DefaultBookingService) ApplyTransition(ctx context.Context, bookingID, event, actorID string, payload TransitionPayload) (*models.BookingView, error) {
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if b == nil {
		return nil, NewNotFoundError("booking not found")
	}

	switch event {
	case EventConfirm:
		err = s.confirm(b, actorID)
	case EventCancel:
		err = s.cancel(b, actorID, payload.Reason)
	case EventReschedule:
		err = s.reschedule(ctx, b, actorID, payload.Reschedule)
	case EventComplete:
		err = s.complete(b, actorID)
	default:
		err = NewInvalidTransitionError(fmt.Sprintf("unknown event %q", event))
	}
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Info("booking transition applied",
		zap.String("bookingID", b.ID),
		zap.String("event", event),
		zap.String("status", b.Status))
	return s.buildView(b, actorID)
}

func (s *DefaultBookingService) confirm(b *models.Booking, actorID string) error {
	if actorID != b.MentorID {
		return NewNotAuthorizedError("only the mentor may confirm a booking")
	}
	if b.Status != models.BookingStatusPending {
		return NewInvalidTransitionError(fmt.Sprintf("cannot confirm a %s booking", b.Status))
	}

	b.Status = models.BookingStatusConfirmed
	if err := s.BookingRepo.Update(b); err != nil {
		return err
	}

	if s.Scheduler != nil {
		if err := s.Scheduler.ScheduleReminder(b); err != nil {
			utils.GetLogger().Warn("failed to schedule booking reminder",
				zap.String("bookingID", b.ID), zap.Error(err))
		}
	}
	s.notify(b.MenteeID, "Booking confirmed",
		fmt.Sprintf("Your session on %s was confirmed.", b.ScheduledAt.Format("Jan 2 15:04")), b)
	return nil
}

func (s *DefaultBookingService) cancel(b *models.Booking, actorID, reason string) error {
	if actorID != b.MentorID && actorID != b.MenteeID {
		return NewNotAuthorizedError("only a participant may cancel a booking")
	}
	if !b.IsActive() {
		return NewInvalidTransitionError(fmt.Sprintf("cannot cancel a %s booking", b.Status))
	}

	now := s.now()
	b.Status = models.BookingStatusCancelled
	b.Cancellation = &models.CancellationRecord{
		Reason:         reason,
		CancelledBy:    actorID,
		CancelledAt:    now,
		RefundEligible: RefundEligible(b.ScheduledAt, now),
	}
	if err := s.BookingRepo.Update(b); err != nil {
		return err
	}

	if s.Scheduler != nil {
		if err := s.Scheduler.CancelReminder(b.ID); err != nil {
			utils.GetLogger().Warn("failed to cancel booking reminder",
				zap.String("bookingID", b.ID), zap.Error(err))
		}
	}
	other := b.MentorID
	if actorID == b.MentorID {
		other = b.MenteeID
	}
	s.notify(other, "Booking cancelled",
		fmt.Sprintf("The session on %s was cancelled.", b.ScheduledAt.Format("Jan 2 15:04")), b)
	return nil
}

func (s *DefaultBookingService) reschedule(ctx context.Context, b *models.Booking, actorID string, req *models.RescheduleRequest) error {
	if actorID != b.MenteeID {
		return NewNotAuthorizedError("only the mentee may reschedule a booking")
	}
	if !b.IsActive() {
		return NewInvalidTransitionError(fmt.Sprintf("cannot reschedule a %s booking", b.Status))
	}
	now := s.now()
	if !b.ScheduledAt.After(now) {
		return NewPastDeadlineError("cannot reschedule a session that already started")
	}
	if req == nil {
		return NewInvalidTransitionError("reschedule payload is required")
	}

	newStart := b.ScheduledAt
	if req.ScheduledAt != nil {
		newStart = *req.ScheduledAt
	}
	newDuration := b.DurationMinutes
	if req.DurationMinutes != nil {
		newDuration = *req.DurationMinutes
	}
	if err := validateWindow(newStart, newDuration, now); err != nil {
		return err
	}

	windowMoved := !newStart.Equal(b.ScheduledAt) || newDuration != b.DurationMinutes
	if windowMoved {
		free, err := s.checkAvailabilityExcluding(ctx, b.MentorID, newStart, newDuration, b.ID)
		if err != nil {
			return err
		}
		if !free {
			return NewSlotUnavailableError("the requested slot is already booked")
		}
	}

	// Price is recomputed from the booking's original session kind when the
	// duration changes.
	if newDuration != b.DurationMinutes {
		price, _, err := s.ComputePriceForMentor(b.MentorID, b.SessionKind, newDuration)
		if err != nil {
			return err
		}
		b.PriceCents = price
	}

	b.SetWindow(newStart, newDuration)
	if req.Notes != nil {
		b.Notes = *req.Notes
	}
	b.Status = models.BookingStatusPending

	if windowMoved {
		if err := s.BookingRepo.RescheduleIfSlotFree(ctx, b); err != nil {
			if errors.Is(err, bookingRepo.ErrSlotConflict) {
				return NewSlotUnavailableError("the requested slot is already booked")
			}
			return err
		}
	} else if err := s.BookingRepo.Update(b); err != nil {
		return err
	}

	if s.Scheduler != nil {
		if err := s.Scheduler.CancelReminder(b.ID); err != nil {
			utils.GetLogger().Warn("failed to cancel booking reminder",
				zap.String("bookingID", b.ID), zap.Error(err))
		}
	}
	s.notify(b.MentorID, "Booking rescheduled",
		fmt.Sprintf("A session was moved to %s and needs your confirmation.", b.ScheduledAt.Format("Jan 2 15:04")), b)
	return nil
}

func (s *DefaultBookingService) complete(b *models.Booking, actorID string) error {
	if actorID != b.MentorID && actorID != b.MenteeID {
		return NewNotAuthorizedError("only a participant may complete a booking")
	}
	if b.Status != models.BookingStatusConfirmed {
		return NewInvalidTransitionError(fmt.Sprintf("cannot complete a %s booking", b.Status))
	}

	b.Status = models.BookingStatusCompleted
	return s.BookingRepo.Update(b)
}

// MarkNoShows flips confirmed bookings whose window ended before the cutoff
// to no_show, unless a session was opened for them: an in-progress session
// means the call overran its window and is left alone, and a closed session
// whose completed transition was lost is reconciled to completed here.
func (s *DefaultBookingService) MarkNoShows(cutoff time.Time) (int, error) {
	stale, err := s.BookingRepo.ListConfirmedEndedBefore(cutoff)
	if err != nil {
		return 0, err
	}

	marked := 0
	for i := range stale {
		b := &stale[i]

		if s.SessionRepo != nil {
			sess, err := s.SessionRepo.GetByBookingID(b.ID)
			if err != nil {
				utils.GetLogger().Error("failed to check for a session before no-show",
					zap.String("bookingID", b.ID), zap.Error(err))
				continue
			}
			if sess != nil {
				if sess.Status == models.SessionStatusInProgress {
					continue
				}
				b.Status = models.BookingStatusCompleted
				if err := s.BookingRepo.Update(b); err != nil {
					utils.GetLogger().Error("failed to reconcile booking after its session ended",
						zap.String("bookingID", b.ID), zap.Error(err))
				}
				continue
			}
		}

		b.Status = models.BookingStatusNoShow
		if err := s.BookingRepo.Update(b); err != nil {
			utils.GetLogger().Error("failed to mark booking as no-show",
				zap.String("bookingID", b.ID), zap.Error(err))
			continue
		}
		marked++
	}
	return marked, nil
}

func (s *DefaultBookingService) notify(profileID, title, body string, b *models.Booking) {
	if s.Notifier == nil {
		return
	}
	s.Notifier.NotifyBookingEvent(profileID, title, body, map[string]string{
		"booking_id": b.ID,
		"status":     b.Status,
	})
}
