package mentor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	profileRepo "mentormatch/database/repository/profile"
	"mentormatch/models"
	"mentormatch/utils"

	"go.uber.org/zap"
)

const detailCacheTTL = 5 * time.Minute

// Search returns one page of mentors matching the filter.
func (s *DefaultMentorService) Search(filter profileRepo.MentorSearchFilter) (*SearchResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 50 {
		filter.PageSize = 20
	}

	mentors, total, err := s.ProfileRepo.SearchMentors(filter)
	if err != nil {
		return nil, fmt.Errorf("mentor search failed: %w", err)
	}
	return &SearchResult{
		Mentors:  mentors,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// GetDetail returns the full public view of a mentor. The viewer-independent
// part is cached in Redis.
func (s *DefaultMentorService) GetDetail(mentorID, viewerID string) (*Detail, error) {
	detail, err := s.loadDetail(mentorID)
	if err != nil {
		return nil, err
	}

	if viewerID != "" && viewerID != mentorID {
		liked, err := s.ProfileRepo.HasLiked(viewerID, mentorID)
		if err != nil {
			utils.GetLogger().Warn("failed to check like status", zap.Error(err))
		} else {
			detail.HasLiked = liked
		}
	}
	return detail, nil
}

func (s *DefaultMentorService) loadDetail(mentorID string) (*Detail, error) {
	cacheKey := "mentor:detail:" + mentorID
	cacheClient := utils.GetCacheClient()
	ctx := context.Background()

	if cacheClient != nil {
		if raw, err := cacheClient.Get(ctx, cacheKey).Result(); err == nil {
			var cached Detail
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	profile, err := s.ProfileRepo.GetByID(mentorID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch mentor: %w", err)
	}
	if profile == nil || !profile.IsMentor {
		return nil, fmt.Errorf("mentor not found")
	}

	reviews, err := s.ReviewRepo.ListByMentor(mentorID, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}
	avg, count, _, err := s.ReviewRepo.StatsByMentor(mentorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load review stats: %w", err)
	}
	rules, _, err := s.ProfileRepo.GetAvailability(mentorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load availability: %w", err)
	}

	detail := &Detail{
		Profile:       *profile,
		Reviews:       reviews,
		RatingAverage: avg,
		RatingCount:   count,
		Availability:  rules,
	}

	if cacheClient != nil {
		if raw, err := json.Marshal(detail); err == nil {
			if err := cacheClient.Set(ctx, cacheKey, raw, detailCacheTTL).Err(); err != nil {
				utils.GetLogger().Warn("failed to cache mentor detail", zap.Error(err))
			}
		}
	}
	return detail, nil
}

// ListByCategory resolves a category slug and returns its mentors.
func (s *DefaultMentorService) ListByCategory(categorySlug string, limit int) ([]models.Profile, error) {
	cat, err := s.CategoryRepo.GetBySlug(categorySlug)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve category: %w", err)
	}
	if cat == nil {
		return nil, fmt.Errorf("category not found")
	}
	return s.ProfileRepo.ListMentorsByCategory(cat.ID, limit)
}

// Recommended suggests mentors from the categories the mentee has liked,
// falling back to top-rated mentors when there is no engagement history yet.
func (s *DefaultMentorService) Recommended(menteeID string, limit int) ([]models.Profile, error) {
	if limit <= 0 {
		limit = 10
	}

	categoryIDs, err := s.ProfileRepo.LikedCategoryIDs(menteeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load liked categories: %w", err)
	}

	seen := map[string]bool{menteeID: true}
	var out []models.Profile
	for _, catID := range categoryIDs {
		mentors, err := s.ProfileRepo.ListMentorsByCategory(catID, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to load category mentors: %w", err)
		}
		for _, m := range mentors {
			if seen[m.ID] {
				continue
			}
			seen[m.ID] = true
			out = append(out, m)
			if len(out) >= limit {
				return out, nil
			}
		}
	}

	if len(out) < limit {
		top, _, err := s.ProfileRepo.SearchMentors(profileRepo.MentorSearchFilter{
			Sort:     "rating",
			Page:     1,
			PageSize: limit,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to load top mentors: %w", err)
		}
		for _, m := range top {
			if seen[m.ID] {
				continue
			}
			seen[m.ID] = true
			out = append(out, m)
			if len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}
