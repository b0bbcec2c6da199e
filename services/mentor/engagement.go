package mentor

import (
	"fmt"

	"mentormatch/models"
)

func (s *DefaultMentorService) requireMentor(mentorID string) error {
	p, err := s.ProfileRepo.GetByID(mentorID)
	if err != nil {
		return fmt.Errorf("failed to fetch mentor: %w", err)
	}
	if p == nil || !p.IsMentor {
		return fmt.Errorf("mentor not found")
	}
	return nil
}

// Like records one-way interest toward a mentor. Liking twice is a no-op.
func (s *DefaultMentorService) Like(menteeID, mentorID string) error {
	if menteeID == mentorID {
		return fmt.Errorf("cannot like your own profile")
	}
	if err := s.requireMentor(mentorID); err != nil {
		return err
	}
	return s.ProfileRepo.Like(menteeID, mentorID)
}

// Save bookmarks a mentor.
func (s *DefaultMentorService) Save(menteeID, mentorID string) error {
	if menteeID == mentorID {
		return fmt.Errorf("cannot save your own profile")
	}
	if err := s.requireMentor(mentorID); err != nil {
		return err
	}
	return s.ProfileRepo.Save(menteeID, mentorID)
}

// Unsave removes a bookmark.
func (s *DefaultMentorService) Unsave(menteeID, mentorID string) error {
	return s.ProfileRepo.Unsave(menteeID, mentorID)
}

// ListSaved returns the mentee's bookmarked mentors.
func (s *DefaultMentorService) ListSaved(menteeID string) ([]models.Profile, error) {
	return s.ProfileRepo.ListSaved(menteeID)
}
