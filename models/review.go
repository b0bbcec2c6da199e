// models/review.go
package models

import "time"

// Review is a mentee's rating of a completed session. One review per session.
type Review struct {
	ID         string    `bson:"id" json:"id"`
	SessionID  string    `bson:"session_id" json:"session_id"`
	BookingID  string    `bson:"booking_id" json:"booking_id"`
	MentorID   string    `bson:"mentor_id" json:"mentor_id"`
	ReviewerID string    `bson:"reviewer_id" json:"reviewer_id"`
	Rating     int       `bson:"rating" json:"rating"` // 1..5
	Comment    string    `bson:"comment,omitempty" json:"comment,omitempty"`
	IsPublic   bool      `bson:"is_public" json:"is_public"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}

// MentorReviewStats aggregates a mentor's public reviews.
type MentorReviewStats struct {
	MentorID      string      `json:"mentor_id"`
	AverageRating float64     `json:"average_rating"`
	TotalReviews  int         `json:"total_reviews"`
	Distribution  map[int]int `json:"rating_distribution"`
	Reviews       []Review    `json:"reviews"`
}
