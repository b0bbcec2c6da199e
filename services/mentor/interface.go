package mentor

import (
	"context"
	"time"

	bookingRepo "mentormatch/database/repository/booking"
	categoryRepo "mentormatch/database/repository/category"
	profileRepo "mentormatch/database/repository/profile"
	reviewRepo "mentormatch/database/repository/review"

	"mentormatch/models"
)

// SearchResult is one page of mentor search output.
type SearchResult struct {
	Mentors  []models.Profile `json:"mentors"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// Detail is the full public view of a mentor.
type Detail struct {
	Profile       models.Profile            `json:"profile"`
	Reviews       []models.Review           `json:"reviews"`
	RatingAverage float64                   `json:"rating_average"`
	RatingCount   int                       `json:"rating_count"`
	Availability  []models.AvailabilityRule `json:"availability"`
	HasLiked      bool                      `json:"has_liked"`
}

// Slot is a bookable start/end pair on a given day.
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// MentorService covers mentor discovery: search, detail, recommendations,
// like/save engagement and open-slot listing.
type MentorService interface {
	Search(filter profileRepo.MentorSearchFilter) (*SearchResult, error)
	GetDetail(mentorID, viewerID string) (*Detail, error)
	ListByCategory(categorySlug string, limit int) ([]models.Profile, error)
	Recommended(menteeID string, limit int) ([]models.Profile, error)
	Like(menteeID, mentorID string) error
	Save(menteeID, mentorID string) error
	Unsave(menteeID, mentorID string) error
	ListSaved(menteeID string) ([]models.Profile, error)
	AvailableSlots(ctx context.Context, mentorID string, date string, durationMinutes int) ([]Slot, error)
}

// DefaultMentorService implements MentorService.
type DefaultMentorService struct {
	ProfileRepo  profileRepo.ProfileRepository
	CategoryRepo categoryRepo.CategoryRepository
	ReviewRepo   reviewRepo.ReviewRepository
	BookingRepo  bookingRepo.BookingRepository
}
