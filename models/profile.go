// models/profile.go
package models

import "time"

// Expertise levels a mentor can declare for a category.
const (
	ExpertiseBeginner     = "beginner"
	ExpertiseIntermediate = "intermediate"
	ExpertiseExpert       = "expert"
)

// Profile is the public identity of a user, mentor or mentee.
type Profile struct {
	ID          string   `bson:"id" json:"id"`
	UserID      string   `bson:"user_id" json:"user_id"`
	DisplayName string   `bson:"display_name" json:"display_name"`
	Bio         string   `bson:"bio,omitempty" json:"bio,omitempty"`
	AvatarURL   string   `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	Timezone    string   `bson:"timezone,omitempty" json:"timezone,omitempty"`
	Languages   []string `bson:"languages,omitempty" json:"languages,omitempty"`
	IsMentor    bool     `bson:"is_mentor" json:"is_mentor"`
	IsVerified  bool     `bson:"is_verified" json:"is_verified"`

	// Mentor-only fields. Rate is nil until the profile becomes a mentor.
	Rate       *MentorRateProfile `bson:"rate,omitempty" json:"rate,omitempty"`
	Categories []MentorCategory   `bson:"categories,omitempty" json:"categories,omitempty"`

	// Denormalised review stats, maintained by the review service.
	RatingAverage float64 `bson:"rating_average" json:"rating_average"`
	RatingCount   int     `bson:"rating_count" json:"rating_count"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// MentorRateProfile holds the pricing inputs for a mentor. Amounts are in
// minor currency units (cents).
type MentorRateProfile struct {
	HourlyRateCents int64  `bson:"hourly_rate_cents" json:"hourly_rate_cents"`
	TrialRateCents  int64  `bson:"trial_rate_cents" json:"trial_rate_cents"`
	Currency        string `bson:"currency" json:"currency"`
	IsActive        bool   `bson:"is_active" json:"is_active"`
	Headline        string `bson:"headline,omitempty" json:"headline,omitempty"`
	YearsExperience int    `bson:"years_experience,omitempty" json:"years_experience,omitempty"`
}

// MentorCategory links a mentor to a category with a declared expertise level.
type MentorCategory struct {
	CategoryID      string `bson:"category_id" json:"category_id"`
	ExpertiseLevel  string `bson:"expertise_level" json:"expertise_level"`
	YearsExperience int    `bson:"years_experience,omitempty" json:"years_experience,omitempty"`
	Description     string `bson:"description,omitempty" json:"description,omitempty"`
}

// MentorLike records one-way interest from a mentee toward a mentor.
type MentorLike struct {
	MenteeID  string    `bson:"mentee_id" json:"mentee_id"`
	MentorID  string    `bson:"mentor_id" json:"mentor_id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// MentorSave is a bookmark of a mentor by a mentee.
type MentorSave struct {
	MenteeID  string    `bson:"mentee_id" json:"mentee_id"`
	MentorID  string    `bson:"mentor_id" json:"mentor_id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// AvailabilityRule is a recurring weekly availability window for a mentor.
// Weekday 0 is Monday. Start/End are minutes from midnight in the mentor's
// timezone.
type AvailabilityRule struct {
	ID          string `bson:"id" json:"id"`
	MentorID    string `bson:"mentor_id" json:"mentor_id"`
	Weekday     int    `bson:"weekday" json:"weekday"`
	StartMinute int    `bson:"start_minute" json:"start_minute"`
	EndMinute   int    `bson:"end_minute" json:"end_minute"`
	IsActive    bool   `bson:"is_active" json:"is_active"`
}

// AvailabilityOverride replaces the weekly rules on a specific date.
type AvailabilityOverride struct {
	ID          string `bson:"id" json:"id"`
	MentorID    string `bson:"mentor_id" json:"mentor_id"`
	Date        string `bson:"date" json:"date"` // "2006-01-02"
	IsAvailable bool   `bson:"is_available" json:"is_available"`
	StartMinute int    `bson:"start_minute,omitempty" json:"start_minute,omitempty"`
	EndMinute   int    `bson:"end_minute,omitempty" json:"end_minute,omitempty"`
}
