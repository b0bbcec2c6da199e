package sessionRepo

import "mentormatch/models"

// SessionRepository defines methods for live-session data access.
type SessionRepository interface {
	// GetByID retrieves a session by ID. Returns (nil, nil) when absent.
	GetByID(id string) (*models.Session, error)
	// GetByBookingID retrieves the session attached to a booking, if any.
	GetByBookingID(bookingID string) (*models.Session, error)
	// Create inserts a new session record.
	Create(session *models.Session) error
	// Update persists changes to an existing session.
	Update(session *models.Session) error
	// ListByUser returns sessions where the user is mentor or mentee.
	ListByUser(userID string) ([]models.Session, error)
}
