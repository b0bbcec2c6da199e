package profile

import (
	"context"
	"fmt"
	"io"
	"time"

	"mentormatch/models"
	"mentormatch/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Get returns a profile by ID.
func (s *DefaultProfileService) Get(profileID string) (*models.Profile, error) {
	p, err := s.ProfileRepo.GetByID(profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("profile not found")
	}
	return p, nil
}

// GetByUserID returns the profile belonging to a user.
func (s *DefaultProfileService) GetByUserID(userID string) (*models.Profile, error) {
	p, err := s.ProfileRepo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("profile not found")
	}
	return p, nil
}

// Update applies the non-nil fields of the request.
func (s *DefaultProfileService) Update(profileID string, req UpdateRequest) (*models.Profile, error) {
	updateDoc := bson.M{}
	if req.DisplayName != nil {
		if *req.DisplayName == "" {
			return nil, fmt.Errorf("display name cannot be empty")
		}
		updateDoc["display_name"] = *req.DisplayName
	}
	if req.Bio != nil {
		updateDoc["bio"] = *req.Bio
	}
	if req.Timezone != nil {
		if _, err := time.LoadLocation(*req.Timezone); err != nil {
			return nil, fmt.Errorf("invalid timezone %q", *req.Timezone)
		}
		updateDoc["timezone"] = *req.Timezone
	}
	if req.Languages != nil {
		updateDoc["languages"] = *req.Languages
	}
	if len(updateDoc) > 0 {
		updateDoc["updated_at"] = time.Now()
		if err := s.ProfileRepo.UpdateSetDocument(profileID, updateDoc); err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}
	return s.Get(profileID)
}

// BecomeMentor upgrades the profile with an active rate profile and category
// links. Every referenced category must exist.
func (s *DefaultProfileService) BecomeMentor(profileID string, req BecomeMentorRequest) (*models.Profile, error) {
	if req.HourlyRateCents <= 0 {
		return nil, fmt.Errorf("hourly rate must be positive")
	}
	if req.TrialRateCents < 0 {
		return nil, fmt.Errorf("trial rate cannot be negative")
	}
	if len(req.Categories) == 0 {
		return nil, fmt.Errorf("at least one category is required")
	}
	for _, mc := range req.Categories {
		cat, err := s.CategoryRepo.GetByID(mc.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to check category: %w", err)
		}
		if cat == nil || !cat.IsActive {
			return nil, fmt.Errorf("unknown category %s", mc.CategoryID)
		}
		switch mc.ExpertiseLevel {
		case models.ExpertiseBeginner, models.ExpertiseIntermediate, models.ExpertiseExpert:
		default:
			return nil, fmt.Errorf("unknown expertise level %q", mc.ExpertiseLevel)
		}
	}

	rate := models.MentorRateProfile{
		HourlyRateCents: req.HourlyRateCents,
		TrialRateCents:  req.TrialRateCents,
		Currency:        req.Currency,
		IsActive:        true,
		Headline:        req.Headline,
		YearsExperience: req.YearsExperience,
	}
	updateDoc := bson.M{
		"is_mentor":  true,
		"rate":       rate,
		"categories": req.Categories,
		"updated_at": time.Now(),
	}
	if err := s.ProfileRepo.UpdateSetDocument(profileID, updateDoc); err != nil {
		return nil, fmt.Errorf("failed to upgrade profile: %w", err)
	}

	utils.GetLogger().Info("profile upgraded to mentor", zap.String("profileID", profileID))
	return s.Get(profileID)
}

// SetMentorActive pauses or resumes a mentor's bookability without touching
// the rest of the rate profile.
func (s *DefaultProfileService) SetMentorActive(profileID string, active bool) (*models.Profile, error) {
	p, err := s.Get(profileID)
	if err != nil {
		return nil, err
	}
	if !p.IsMentor || p.Rate == nil {
		return nil, fmt.Errorf("profile is not a mentor")
	}
	if err := s.ProfileRepo.UpdateSetDocument(profileID, bson.M{
		"rate.is_active": active,
		"updated_at":     time.Now(),
	}); err != nil {
		return nil, fmt.Errorf("failed to update mentor status: %w", err)
	}
	return s.Get(profileID)
}

// UploadAvatar stores the image and records its URL on the profile.
func (s *DefaultProfileService) UploadAvatar(ctx context.Context, profileID string, file io.Reader) (string, error) {
	if s.Storage == nil {
		return "", fmt.Errorf("avatar storage is not configured")
	}
	url, err := s.Storage.UploadAvatar(ctx, file, profileID)
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}
	if err := s.ProfileRepo.UpdateSetDocument(profileID, bson.M{
		"avatar_url": url,
		"updated_at": time.Now(),
	}); err != nil {
		return "", fmt.Errorf("failed to save avatar url: %w", err)
	}
	return url, nil
}

// SetAvailability validates and replaces the mentor's weekly rules and date
// overrides.
func (s *DefaultProfileService) SetAvailability(profileID string, rules []models.AvailabilityRule, overrides []models.AvailabilityOverride) error {
	p, err := s.Get(profileID)
	if err != nil {
		return err
	}
	if !p.IsMentor {
		return fmt.Errorf("profile is not a mentor")
	}

	for i := range rules {
		r := &rules[i]
		if r.Weekday < 0 || r.Weekday > 6 {
			return fmt.Errorf("weekday must be 0 (Monday) through 6 (Sunday)")
		}
		if r.StartMinute < 0 || r.EndMinute > 24*60 || r.StartMinute >= r.EndMinute {
			return fmt.Errorf("availability window must be within the day and non-empty")
		}
		r.MentorID = profileID
	}
	for i := range overrides {
		o := &overrides[i]
		if _, err := time.Parse("2006-01-02", o.Date); err != nil {
			return fmt.Errorf("override date must be YYYY-MM-DD")
		}
		if o.IsAvailable && (o.StartMinute < 0 || o.EndMinute > 24*60 || o.StartMinute >= o.EndMinute) {
			return fmt.Errorf("override window must be within the day and non-empty")
		}
		o.MentorID = profileID
	}
	return s.ProfileRepo.ReplaceAvailability(profileID, rules, overrides)
}
