package booking

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "mentormatch/database/repository/booking"
	"mentormatch/models"
	"mentormatch/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Create validates the request, prices the session and inserts the booking.
// The slot check and the insert run in one storage transaction; a concurrent
// winner surfaces as SlotUnavailable and the caller may retry.
func (s *DefaultBookingService) Create(ctx context.Context, menteeID string, req models.BookingRequest) (*models.BookingView, error) {
	if req.MentorID == menteeID {
		return nil, NewInvalidTransitionError("mentor and mentee must be distinct")
	}
	switch req.SessionKind {
	case models.SessionKindOneOnOne, models.SessionKindGroup, models.SessionKindTrial:
	default:
		return nil, NewInvalidTransitionError(fmt.Sprintf("unknown session kind %q", req.SessionKind))
	}
	now := s.now()
	if err := validateWindow(req.ScheduledAt, req.DurationMinutes, now); err != nil {
		return nil, err
	}

	price, currency, err := s.ComputePriceForMentor(req.MentorID, req.SessionKind, req.DurationMinutes)
	if err != nil {
		return nil, err
	}

	// Fast read-only check for a friendly failure before paying the
	// transaction cost. The transactional insert remains authoritative.
	free, err := s.CheckAvailability(ctx, req.MentorID, req.ScheduledAt, req.DurationMinutes)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, NewSlotUnavailableError("the requested slot is already booked")
	}

	b := &models.Booking{
		ID:          uuid.New().String(),
		MentorID:    req.MentorID,
		MenteeID:    menteeID,
		SessionKind: req.SessionKind,
		Status:      models.BookingStatusPending,
		PriceCents:  price,
		Currency:    currency,
		Notes:       req.Notes,
	}
	b.SetWindow(req.ScheduledAt, req.DurationMinutes)

	if err := s.BookingRepo.CreateIfSlotFree(ctx, b); err != nil {
		if errors.Is(err, bookingRepo.ErrSlotConflict) {
			return nil, NewSlotUnavailableError("the requested slot is already booked")
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	utils.GetLogger().Info("booking created",
		zap.String("bookingID", b.ID),
		zap.String("mentorID", b.MentorID),
		zap.Int64("priceCents", b.PriceCents))

	s.notify(b.MentorID, "New booking request",
		fmt.Sprintf("You have a new %d-minute session request for %s.", b.DurationMinutes, b.ScheduledAt.Format("Jan 2 15:04")), b)
	return s.buildView(b, menteeID)
}

// Get returns the booking view for one of its participants.
func (s *DefaultBookingService) Get(bookingID, actorID string) (*models.BookingView, error) {
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if b == nil {
		return nil, NewNotFoundError("booking not found")
	}
	if actorID != b.MentorID && actorID != b.MenteeID {
		return nil, NewNotAuthorizedError("not a participant of this booking")
	}
	return s.buildView(b, actorID)
}

// List returns the actor's bookings as views.
func (s *DefaultBookingService) List(actorID string, filter bookingRepo.ListFilter) ([]models.BookingView, error) {
	bookings, err := s.BookingRepo.ListByUser(actorID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	views := make([]models.BookingView, 0, len(bookings))
	for i := range bookings {
		view, err := s.buildView(&bookings[i], actorID)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// buildView decorates a booking with participant names, session info and the
// derived action flags.
func (s *DefaultBookingService) buildView(b *models.Booking, actorID string) (*models.BookingView, error) {
	now := s.now()
	view := &models.BookingView{
		Booking:       *b,
		CanCancel:     b.IsActive(),
		CanReschedule: actorID == b.MenteeID && b.IsActive() && b.ScheduledAt.After(now),
	}

	if mentor, err := s.ProfileRepo.GetByID(b.MentorID); err == nil && mentor != nil {
		view.MentorName = mentor.DisplayName
	}
	if mentee, err := s.ProfileRepo.GetByID(b.MenteeID); err == nil && mentee != nil {
		view.MenteeName = mentee.DisplayName
	}

	if s.SessionRepo != nil {
		if sess, err := s.SessionRepo.GetByBookingID(b.ID); err == nil && sess != nil {
			view.SessionID = sess.ID
			view.VideoRoomURL = sess.VideoRoomURL
		}
	}

	if b.PriceCents > 0 && b.IsActive() {
		view.PaymentRequired = true
		if s.PaymentRepo != nil {
			txn, err := s.PaymentRepo.GetTransactionByBookingID(b.ID)
			if err == nil && txn != nil && txn.Status == models.TransactionSucceeded {
				view.PaymentRequired = false
			}
		}
	}
	return view, nil
}
