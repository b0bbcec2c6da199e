package session

import (
	"context"
	"fmt"
	"time"

	sessionRepo "mentormatch/database/repository/session"

	"mentormatch/config"
	"mentormatch/models"
	"mentormatch/services/booking"
	"mentormatch/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// earlyJoinWindow is how long before the scheduled start a room may open.
const earlyJoinWindow = 10 * time.Minute

// SessionService runs the live part of a confirmed booking: opening the video
// room, joining it, and closing it (which completes the booking).
type SessionService interface {
	Start(ctx context.Context, bookingID, actorID string) (*models.SessionStartResponse, error)
	Get(sessionID, actorID string) (*models.Session, error)
	Join(sessionID, actorID string) (*models.SessionStartResponse, error)
	End(ctx context.Context, sessionID, actorID string) (*models.Session, error)
	ListByUser(userID string) ([]models.Session, error)
}

// DefaultSessionService implements SessionService.
type DefaultSessionService struct {
	SessionRepo sessionRepo.SessionRepository
	BookingSvc  booking.BookingService
}

// Start opens the video room for a confirmed booking. Only the mentor may
// open the room; calling Start again returns the existing room.
func (s *DefaultSessionService) Start(ctx context.Context, bookingID, actorID string) (*models.SessionStartResponse, error) {
	view, err := s.BookingSvc.Get(bookingID, actorID)
	if err != nil {
		return nil, err
	}
	if actorID != view.MentorID {
		return nil, booking.NewNotAuthorizedError("only the mentor may start the session")
	}
	if view.Status != models.BookingStatusConfirmed {
		return nil, booking.NewInvalidTransitionError(fmt.Sprintf("cannot start a session for a %s booking", view.Status))
	}
	now := time.Now()
	if now.Before(view.ScheduledAt.Add(-earlyJoinWindow)) {
		return nil, booking.NewPastDeadlineError("too early to start this session")
	}

	existing, err := s.SessionRepo.GetByBookingID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing session: %w", err)
	}
	if existing != nil {
		return s.withRoomToken(existing, actorID)
	}

	roomID := uuid.New().String()
	sess := &models.Session{
		ID:           uuid.New().String(),
		BookingID:    bookingID,
		MentorID:     view.MentorID,
		MenteeID:     view.MenteeID,
		Status:       models.SessionStatusInProgress,
		StartedAt:    &now,
		VideoRoomID:  roomID,
		VideoRoomURL: fmt.Sprintf("%s/rooms/%s", config.AppConfig.VideoBaseURL, roomID),
		CreatedAt:    now,
	}
	if err := s.SessionRepo.Create(sess); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	utils.GetLogger().Info("session started",
		zap.String("sessionID", sess.ID),
		zap.String("bookingID", bookingID))
	return s.withRoomToken(sess, actorID)
}

// Get returns a session to one of its participants, regardless of state.
func (s *DefaultSessionService) Get(sessionID, actorID string) (*models.Session, error) {
	sess, err := s.SessionRepo.GetByID(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}
	if sess == nil {
		return nil, booking.NewNotFoundError("session not found")
	}
	if actorID != sess.MentorID && actorID != sess.MenteeID {
		return nil, booking.NewNotAuthorizedError("not a participant of this session")
	}
	return sess, nil
}

// Join returns the room details for a participant of a running session.
func (s *DefaultSessionService) Join(sessionID, actorID string) (*models.SessionStartResponse, error) {
	sess, err := s.SessionRepo.GetByID(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}
	if sess == nil {
		return nil, booking.NewNotFoundError("session not found")
	}
	if actorID != sess.MentorID && actorID != sess.MenteeID {
		return nil, booking.NewNotAuthorizedError("not a participant of this session")
	}
	if sess.Status != models.SessionStatusInProgress {
		return nil, booking.NewInvalidTransitionError("session has already ended")
	}
	return s.withRoomToken(sess, actorID)
}

// End closes the room and completes the underlying booking.
func (s *DefaultSessionService) End(ctx context.Context, sessionID, actorID string) (*models.Session, error) {
	sess, err := s.SessionRepo.GetByID(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}
	if sess == nil {
		return nil, booking.NewNotFoundError("session not found")
	}
	if actorID != sess.MentorID && actorID != sess.MenteeID {
		return nil, booking.NewNotAuthorizedError("not a participant of this session")
	}
	if sess.Status != models.SessionStatusInProgress {
		return nil, booking.NewInvalidTransitionError("session has already ended")
	}

	now := time.Now()
	sess.Status = models.SessionStatusCompleted
	sess.EndedAt = &now
	if err := s.SessionRepo.Update(sess); err != nil {
		return nil, fmt.Errorf("failed to close session: %w", err)
	}

	if _, err := s.BookingSvc.ApplyTransition(ctx, sess.BookingID, booking.EventComplete, actorID, booking.TransitionPayload{}); err != nil {
		// The room is closed either way; the booking sweep will reconcile.
		utils.GetLogger().Error("failed to complete booking after session end",
			zap.String("bookingID", sess.BookingID), zap.Error(err))
	}

	utils.GetLogger().Info("session ended",
		zap.String("sessionID", sess.ID),
		zap.String("bookingID", sess.BookingID))
	return sess, nil
}

// ListByUser returns the sessions a user took part in.
func (s *DefaultSessionService) ListByUser(userID string) ([]models.Session, error) {
	return s.SessionRepo.ListByUser(userID)
}

// withRoomToken signs a short-lived token scoped to the room for the joining
// participant.
func (s *DefaultSessionService) withRoomToken(sess *models.Session, actorID string) (*models.SessionStartResponse, error) {
	token, err := utils.GenerateToken(actorID, sess.VideoRoomID, 4*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("failed to sign room token: %w", err)
	}
	return &models.SessionStartResponse{Session: *sess, RoomToken: token}, nil
}
