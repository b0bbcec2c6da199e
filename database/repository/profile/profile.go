package profileRepo

import (
	"mentormatch/models"

	"go.mongodb.org/mongo-driver/bson"
)

// MentorSearchFilter narrows and orders a mentor listing.
type MentorSearchFilter struct {
	CategoryID    string
	Query         string
	MinPriceCents int64
	MaxPriceCents int64
	MinRating     float64
	VerifiedOnly  bool
	Sort          string // rating | price_asc | price_desc | recent
	Page          int
	PageSize      int
}

// ProfileRepository defines methods for profile data access, including mentor
// discovery and the like/save engagement tables.
type ProfileRepository interface {
	// GetByID retrieves a profile by its unique ID. Returns (nil, nil) when absent.
	GetByID(id string) (*models.Profile, error)
	// GetByUserID retrieves the profile belonging to a user. Returns (nil, nil) when absent.
	GetByUserID(userID string) (*models.Profile, error)
	// Create inserts a new profile record.
	Create(profile *models.Profile) error
	// Update modifies an existing profile record.
	Update(profile *models.Profile) error
	// UpdateSetDocument applies a partial $set update by ID.
	UpdateSetDocument(id string, updateDoc bson.M) error

	// SearchMentors returns active mentors matching the filter plus the total count.
	SearchMentors(filter MentorSearchFilter) ([]models.Profile, int64, error)
	// ListMentorsByCategory returns active mentors linked to a category.
	ListMentorsByCategory(categoryID string, limit int) ([]models.Profile, error)

	// Like records one-way interest; inserting twice is a no-op.
	Like(menteeID, mentorID string) error
	// HasLiked reports whether the mentee already liked the mentor.
	HasLiked(menteeID, mentorID string) (bool, error)
	// Save bookmarks a mentor; inserting twice is a no-op.
	Save(menteeID, mentorID string) error
	// Unsave removes a bookmark.
	Unsave(menteeID, mentorID string) error
	// ListSaved returns the mentor profiles a mentee has bookmarked.
	ListSaved(menteeID string) ([]models.Profile, error)
	// LikedCategoryIDs returns the category IDs of mentors the mentee liked.
	LikedCategoryIDs(menteeID string) ([]string, error)

	// ReplaceAvailability swaps a mentor's weekly rules and date overrides.
	ReplaceAvailability(mentorID string, rules []models.AvailabilityRule, overrides []models.AvailabilityOverride) error
	// GetAvailability returns a mentor's weekly rules and date overrides.
	GetAvailability(mentorID string) ([]models.AvailabilityRule, []models.AvailabilityOverride, error)
}
