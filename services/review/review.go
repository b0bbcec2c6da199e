package review

import (
	"fmt"
	"time"

	bookingRepo "mentormatch/database/repository/booking"
	profileRepo "mentormatch/database/repository/profile"
	reviewRepo "mentormatch/database/repository/review"
	sessionRepo "mentormatch/database/repository/session"

	"mentormatch/models"
	"mentormatch/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// CreateRequest is the payload for leaving a review.
type CreateRequest struct {
	BookingID string `json:"booking_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment"`
	IsPublic  *bool  `json:"is_public"`
}

// ReviewService lets mentees rate completed sessions and exposes mentor
// rating stats.
type ReviewService interface {
	Create(reviewerID string, req CreateRequest) (*models.Review, error)
	GetBySession(sessionID string) (*models.Review, error)
	Delete(reviewID, reviewerID string) error
	MentorStats(mentorID string, limit int) (*models.MentorReviewStats, error)
}

// DefaultReviewService implements ReviewService.
type DefaultReviewService struct {
	ReviewRepo  reviewRepo.ReviewRepository
	BookingRepo bookingRepo.BookingRepository
	ProfileRepo profileRepo.ProfileRepository
	SessionRepo sessionRepo.SessionRepository
}

// Create records a review for a completed booking. Only the mentee may
// review, once per booking; the mentor's denormalised rating is refreshed.
func (s *DefaultReviewService) Create(reviewerID string, req CreateRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}

	b, err := s.BookingRepo.GetByID(req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if b == nil {
		return nil, fmt.Errorf("booking not found")
	}
	if reviewerID != b.MenteeID {
		return nil, fmt.Errorf("only the mentee may review this session")
	}
	if b.Status != models.BookingStatusCompleted {
		return nil, fmt.Errorf("only completed sessions can be reviewed")
	}

	existing, err := s.ReviewRepo.GetByBookingAndReviewer(req.BookingID, reviewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing review: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("this session was already reviewed")
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}
	sessionID := ""
	if s.SessionRepo != nil {
		if sess, err := s.SessionRepo.GetByBookingID(b.ID); err == nil && sess != nil {
			sessionID = sess.ID
		}
	}

	review := &models.Review{
		ID:         uuid.New().String(),
		SessionID:  sessionID,
		BookingID:  b.ID,
		MentorID:   b.MentorID,
		ReviewerID: reviewerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		IsPublic:   isPublic,
		CreatedAt:  time.Now(),
	}
	if err := s.ReviewRepo.Create(review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	if err := s.refreshMentorRating(b.MentorID); err != nil {
		utils.GetLogger().Warn("failed to refresh mentor rating",
			zap.String("mentorID", b.MentorID), zap.Error(err))
	}
	return review, nil
}

// GetBySession returns the review left for a session, if any.
func (s *DefaultReviewService) GetBySession(sessionID string) (*models.Review, error) {
	review, err := s.ReviewRepo.GetBySessionID(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load review: %w", err)
	}
	return review, nil
}

// Delete removes the reviewer's own review and refreshes the mentor's
// denormalised rating.
func (s *DefaultReviewService) Delete(reviewID, reviewerID string) error {
	review, err := s.ReviewRepo.GetByID(reviewID)
	if err != nil {
		return fmt.Errorf("failed to load review: %w", err)
	}
	if review == nil {
		return fmt.Errorf("review not found")
	}
	if review.ReviewerID != reviewerID {
		return fmt.Errorf("only the author may delete this review")
	}
	if err := s.ReviewRepo.Delete(reviewID); err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	if err := s.refreshMentorRating(review.MentorID); err != nil {
		utils.GetLogger().Warn("failed to refresh mentor rating",
			zap.String("mentorID", review.MentorID), zap.Error(err))
	}
	return nil
}

// MentorStats returns the aggregate rating plus recent public reviews.
func (s *DefaultReviewService) MentorStats(mentorID string, limit int) (*models.MentorReviewStats, error) {
	avg, total, distribution, err := s.ReviewRepo.StatsByMentor(mentorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load review stats: %w", err)
	}
	reviews, err := s.ReviewRepo.ListByMentor(mentorID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}
	return &models.MentorReviewStats{
		MentorID:      mentorID,
		AverageRating: avg,
		TotalReviews:  total,
		Distribution:  distribution,
		Reviews:       reviews,
	}, nil
}

func (s *DefaultReviewService) refreshMentorRating(mentorID string) error {
	avg, total, _, err := s.ReviewRepo.StatsByMentor(mentorID)
	if err != nil {
		return err
	}
	return s.ProfileRepo.UpdateSetDocument(mentorID, bson.M{
		"rating_average": avg,
		"rating_count":   total,
		"updated_at":     time.Now(),
	})
}
