package profile

import (
	"context"
	"io"

	categoryRepo "mentormatch/database/repository/category"
	profileRepo "mentormatch/database/repository/profile"

	"mentormatch/models"
	"mentormatch/services/storage"
)

// UpdateRequest carries the editable fields of a profile. Nil fields are left
// untouched.
type UpdateRequest struct {
	DisplayName *string   `json:"display_name"`
	Bio         *string   `json:"bio"`
	Timezone    *string   `json:"timezone"`
	Languages   *[]string `json:"languages"`
}

// BecomeMentorRequest upgrades a profile to a mentor with pricing and
// category links.
type BecomeMentorRequest struct {
	HourlyRateCents int64                   `json:"hourly_rate_cents" binding:"required"`
	TrialRateCents  int64                   `json:"trial_rate_cents"`
	Currency        string                  `json:"currency" binding:"required"`
	Headline        string                  `json:"headline"`
	YearsExperience int                     `json:"years_experience"`
	Categories      []models.MentorCategory `json:"categories" binding:"required"`
}

// ProfileService manages a user's own profile.
type ProfileService interface {
	Get(profileID string) (*models.Profile, error)
	GetByUserID(userID string) (*models.Profile, error)
	Update(profileID string, req UpdateRequest) (*models.Profile, error)
	BecomeMentor(profileID string, req BecomeMentorRequest) (*models.Profile, error)
	SetMentorActive(profileID string, active bool) (*models.Profile, error)
	UploadAvatar(ctx context.Context, profileID string, file io.Reader) (string, error)
	SetAvailability(profileID string, rules []models.AvailabilityRule, overrides []models.AvailabilityOverride) error
}

// DefaultProfileService implements ProfileService.
type DefaultProfileService struct {
	ProfileRepo  profileRepo.ProfileRepository
	CategoryRepo categoryRepo.CategoryRepository
	Storage      storage.StorageService
}
