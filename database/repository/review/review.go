package reviewRepo

import "mentormatch/models"

// ReviewRepository defines methods for review data access.
type ReviewRepository interface {
	// GetByID retrieves a review by ID. Returns (nil, nil) when absent.
	GetByID(id string) (*models.Review, error)
	// GetByBookingAndReviewer retrieves an existing review for a booking by a
	// given reviewer, to keep reviews one-per-booking-per-reviewer.
	GetByBookingAndReviewer(bookingID, reviewerID string) (*models.Review, error)
	// GetBySessionID retrieves the review of a session. Returns (nil, nil) when absent.
	GetBySessionID(sessionID string) (*models.Review, error)
	// Create inserts a new review record.
	Create(review *models.Review) error
	// Delete removes a review by ID.
	Delete(id string) error
	// ListByMentor returns public reviews for a mentor, newest first.
	ListByMentor(mentorID string, limit int) ([]models.Review, error)
	// StatsByMentor computes the mentor's rating average, total and
	// per-star distribution over public reviews.
	StatsByMentor(mentorID string) (avg float64, total int, distribution map[int]int, err error)
}
