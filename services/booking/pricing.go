package booking

import "mentormatch/models"

// ComputePrice derives the price in minor currency units for a session of the
// given kind and duration. Trial sessions cost the flat trial rate regardless
// of duration; everything else is floor(hourly_rate * minutes / 60). Integer
// truncation, never rounding, so fractional cents are dropped.
func ComputePrice(rate *models.MentorRateProfile, sessionKind string, durationMinutes int) (int64, error) {
	if rate == nil || !rate.IsActive {
		return 0, NewMentorNotConfiguredError("mentor has no active rate profile")
	}

	if sessionKind == models.SessionKindTrial {
		if rate.TrialRateCents < 0 {
			return 0, NewMentorNotConfiguredError("mentor trial rate is invalid")
		}
		return rate.TrialRateCents, nil
	}

	if rate.HourlyRateCents <= 0 {
		return 0, NewMentorNotConfiguredError("mentor hourly rate is not set")
	}
	return rate.HourlyRateCents * int64(durationMinutes) / 60, nil
}

// mentorRate loads the mentor's rate profile, failing with MentorNotConfigured
// when the profile is missing or mentoring is switched off.
func (s *DefaultBookingService) mentorRate(mentorID string) (*models.MentorRateProfile, error) {
	profile, err := s.ProfileRepo.GetByID(mentorID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, NewNotFoundError("mentor not found")
	}
	if !profile.IsMentor || profile.Rate == nil || !profile.Rate.IsActive {
		return nil, NewMentorNotConfiguredError("mentor has no active rate profile")
	}
	return profile.Rate, nil
}

// ComputePriceForMentor resolves the mentor's rate profile and prices the
// requested session.
func (s *DefaultBookingService) ComputePriceForMentor(mentorID, sessionKind string, durationMinutes int) (int64, string, error) {
	rate, err := s.mentorRate(mentorID)
	if err != nil {
		return 0, "", err
	}
	price, err := ComputePrice(rate, sessionKind, durationMinutes)
	if err != nil {
		return 0, "", err
	}
	return price, rate.Currency, nil
}
