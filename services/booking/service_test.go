package booking

import (
	"context"
	"testing"
	"time"

	bookingRepo "mentormatch/database/repository/booking"
	profileRepo "mentormatch/database/repository/profile"
	"mentormatch/models"

	"go.mongodb.org/mongo-driver/bson"
)

// fakeBookingRepo keeps bookings in memory and mirrors the transactional
// repo's conflict semantics.
type fakeBookingRepo struct {
	bookings map[string]*models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (f *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) ListByUser(userID string, filter bookingRepo.ListFilter) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.MentorID != userID && b.MenteeID != userID {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeBookingRepo) overlapping(mentorID string, start, end time.Time, excludeID string) []models.Booking {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.ID == excludeID || b.MentorID != mentorID || !b.IsActive() {
			continue
		}
		if b.ScheduledAt.Before(end) && b.EndsAt.After(start) {
			out = append(out, *b)
		}
	}
	return out
}

func (f *fakeBookingRepo) FindOverlapping(_ context.Context, mentorID string, start, end time.Time) ([]models.Booking, error) {
	return f.overlapping(mentorID, start, end, ""), nil
}

func (f *fakeBookingRepo) CreateIfSlotFree(_ context.Context, b *models.Booking) error {
	if len(f.overlapping(b.MentorID, b.ScheduledAt, b.EndsAt, "")) > 0 {
		return bookingRepo.ErrSlotConflict
	}
	copied := *b
	f.bookings[b.ID] = &copied
	return nil
}

func (f *fakeBookingRepo) RescheduleIfSlotFree(_ context.Context, b *models.Booking) error {
	if len(f.overlapping(b.MentorID, b.ScheduledAt, b.EndsAt, b.ID)) > 0 {
		return bookingRepo.ErrSlotConflict
	}
	copied := *b
	f.bookings[b.ID] = &copied
	return nil
}

func (f *fakeBookingRepo) Update(b *models.Booking) error {
	copied := *b
	f.bookings[b.ID] = &copied
	return nil
}

func (f *fakeBookingRepo) ListConfirmedEndedBefore(cutoff time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.Status == models.BookingStatusConfirmed && b.EndsAt.Before(cutoff) {
			out = append(out, *b)
		}
	}
	return out, nil
}

// fakeProfileRepo serves profiles from a map; the engagement and availability
// methods are unused by these tests.
type fakeProfileRepo struct {
	profiles map[string]*models.Profile
}

func (f *fakeProfileRepo) GetByID(id string) (*models.Profile, error) {
	return f.profiles[id], nil
}

func (f *fakeProfileRepo) GetByUserID(userID string) (*models.Profile, error) {
	for _, p := range f.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProfileRepo) Create(p *models.Profile) error { f.profiles[p.ID] = p; return nil }
func (f *fakeProfileRepo) Update(p *models.Profile) error { f.profiles[p.ID] = p; return nil }
func (f *fakeProfileRepo) UpdateSetDocument(string, bson.M) error { return nil }
func (f *fakeProfileRepo) SearchMentors(profileRepo.MentorSearchFilter) ([]models.Profile, int64, error) {
	return nil, 0, nil
}
func (f *fakeProfileRepo) ListMentorsByCategory(string, int) ([]models.Profile, error) {
	return nil, nil
}
func (f *fakeProfileRepo) Like(string, string) error            { return nil }
func (f *fakeProfileRepo) HasLiked(string, string) (bool, error) { return false, nil }
func (f *fakeProfileRepo) Save(string, string) error            { return nil }
func (f *fakeProfileRepo) Unsave(string, string) error          { return nil }
func (f *fakeProfileRepo) ListSaved(string) ([]models.Profile, error) {
	return nil, nil
}
func (f *fakeProfileRepo) LikedCategoryIDs(string) ([]string, error) { return nil, nil }
func (f *fakeProfileRepo) ReplaceAvailability(string, []models.AvailabilityRule, []models.AvailabilityOverride) error {
	return nil
}
func (f *fakeProfileRepo) GetAvailability(string) ([]models.AvailabilityRule, []models.AvailabilityOverride, error) {
	return nil, nil, nil
}

// fakeSessionRepo keeps sessions in memory, keyed by booking.
type fakeSessionRepo struct {
	byBooking map[string]*models.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{byBooking: make(map[string]*models.Session)}
}

func (f *fakeSessionRepo) GetByID(id string) (*models.Session, error) {
	for _, s := range f.byBooking {
		if s.ID == id {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeSessionRepo) GetByBookingID(bookingID string) (*models.Session, error) {
	s, ok := f.byBooking[bookingID]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSessionRepo) Create(s *models.Session) error {
	copied := *s
	f.byBooking[s.BookingID] = &copied
	return nil
}

func (f *fakeSessionRepo) Update(s *models.Session) error {
	copied := *s
	f.byBooking[s.BookingID] = &copied
	return nil
}

func (f *fakeSessionRepo) ListByUser(string) ([]models.Session, error) { return nil, nil }

var testNow = time.Date(2024, 5, 30, 12, 0, 0, 0, time.UTC)

func newTestService() (*DefaultBookingService, *fakeBookingRepo) {
	repo := newFakeBookingRepo()
	profiles := &fakeProfileRepo{profiles: map[string]*models.Profile{
		"mentor-1": {
			ID:          "mentor-1",
			DisplayName: "Ada",
			IsMentor:    true,
			Rate: &models.MentorRateProfile{
				HourlyRateCents: 6000,
				TrialRateCents:  1500,
				Currency:        "usd",
				IsActive:        true,
			},
		},
		"mentee-1": {ID: "mentee-1", DisplayName: "Grace"},
	}}
	svc := &DefaultBookingService{
		BookingRepo: repo,
		ProfileRepo: profiles,
		Now:         func() time.Time { return testNow },
	}
	return svc, repo
}

func mustCreate(t *testing.T, svc *DefaultBookingService, start time.Time, minutes int) *models.BookingView {
	t.Helper()
	view, err := svc.Create(context.Background(), "mentee-1", models.BookingRequest{
		MentorID:        "mentor-1",
		ScheduledAt:     start,
		DurationMinutes: minutes,
		SessionKind:     models.SessionKindOneOnOne,
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	return view
}

func TestCreateBooking(t *testing.T) {
	svc, _ := newTestService()

	start := testNow.Add(48 * time.Hour)
	view := mustCreate(t, svc, start, 60)

	if view.Status != models.BookingStatusPending {
		t.Errorf("expected pending status, got %s", view.Status)
	}
	if view.PriceCents != 6000 {
		t.Errorf("expected price 6000, got %d", view.PriceCents)
	}
	if !view.EndsAt.Equal(start.Add(time.Hour)) {
		t.Errorf("expected ends_at %v, got %v", start.Add(time.Hour), view.EndsAt)
	}
	if !view.PaymentRequired {
		t.Error("expected payment_required for a priced booking")
	}
}

func TestCreateBookingGuards(t *testing.T) {
	svc, _ := newTestService()
	future := testNow.Add(48 * time.Hour)

	cases := []struct {
		name     string
		menteeID string
		req      models.BookingRequest
		wantCode string
	}{
		{
			name:     "mentor booking themselves",
			menteeID: "mentor-1",
			req:      models.BookingRequest{MentorID: "mentor-1", ScheduledAt: future, DurationMinutes: 60, SessionKind: models.SessionKindOneOnOne},
			wantCode: CodeInvalidTransition,
		},
		{
			name:     "start in the past",
			menteeID: "mentee-1",
			req:      models.BookingRequest{MentorID: "mentor-1", ScheduledAt: testNow.Add(-time.Hour), DurationMinutes: 60, SessionKind: models.SessionKindOneOnOne},
			wantCode: CodePastDeadline,
		},
		{
			name:     "duration too short",
			menteeID: "mentee-1",
			req:      models.BookingRequest{MentorID: "mentor-1", ScheduledAt: future, DurationMinutes: 10, SessionKind: models.SessionKindOneOnOne},
			wantCode: CodeInvalidTransition,
		},
		{
			name:     "duration too long",
			menteeID: "mentee-1",
			req:      models.BookingRequest{MentorID: "mentor-1", ScheduledAt: future, DurationMinutes: 200, SessionKind: models.SessionKindOneOnOne},
			wantCode: CodeInvalidTransition,
		},
		{
			name:     "unknown mentor",
			menteeID: "mentee-1",
			req:      models.BookingRequest{MentorID: "ghost", ScheduledAt: future, DurationMinutes: 60, SessionKind: models.SessionKindOneOnOne},
			wantCode: CodeNotFound,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.menteeID, tc.req)
			if CodeOf(err) != tc.wantCode {
				t.Errorf("expected %s, got %v", tc.wantCode, err)
			}
		})
	}
}

func TestCreateBookingMentorNotConfigured(t *testing.T) {
	svc, _ := newTestService()
	svc.ProfileRepo.(*fakeProfileRepo).profiles["mentor-1"].Rate.IsActive = false

	_, err := svc.Create(context.Background(), "mentee-1", models.BookingRequest{
		MentorID:        "mentor-1",
		ScheduledAt:     testNow.Add(48 * time.Hour),
		DurationMinutes: 60,
		SessionKind:     models.SessionKindOneOnOne,
	})
	if CodeOf(err) != CodeMentorNotConfigured {
		t.Errorf("expected mentorNotConfigured, got %v", err)
	}
}

func TestSlotOverlap(t *testing.T) {
	svc, _ := newTestService()

	// Existing confirmed booking 2024-06-01 10:00-11:00.
	existing := mustCreate(t, svc, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), 60)
	if _, err := svc.ApplyTransition(context.Background(), existing.ID, EventConfirm, "mentor-1", TransitionPayload{}); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	// 10:30-11:30 overlaps.
	_, err := svc.Create(context.Background(), "mentee-1", models.BookingRequest{
		MentorID:        "mentor-1",
		ScheduledAt:     time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC),
		DurationMinutes: 60,
		SessionKind:     models.SessionKindOneOnOne,
	})
	if CodeOf(err) != CodeSlotUnavailable {
		t.Errorf("expected slotUnavailable for overlapping window, got %v", err)
	}

	// 11:00-12:00 is back-to-back and fine.
	mustCreate(t, svc, time.Date(2024, 6, 1, 11, 0, 0, 0, time.UTC), 60)
}

func TestCancelledBookingDoesNotConflict(t *testing.T) {
	svc, _ := newTestService()

	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	view := mustCreate(t, svc, start, 60)
	if _, err := svc.ApplyTransition(context.Background(), view.ID, EventCancel, "mentee-1", TransitionPayload{Reason: "changed plans"}); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	free, err := svc.CheckAvailability(context.Background(), "mentor-1", start, 60)
	if err != nil {
		t.Fatalf("check availability: %v", err)
	}
	if !free {
		t.Error("cancelled booking should not block the slot")
	}
}

func TestGetRequiresParticipant(t *testing.T) {
	svc, _ := newTestService()
	view := mustCreate(t, svc, testNow.Add(48*time.Hour), 60)

	if _, err := svc.Get(view.ID, "stranger"); CodeOf(err) != CodeNotAuthorized {
		t.Errorf("expected notAuthorized for a stranger, got %v", err)
	}
	if _, err := svc.Get("missing", "mentee-1"); CodeOf(err) != CodeNotFound {
		t.Errorf("expected notFound, got %v", err)
	}
	got, err := svc.Get(view.ID, "mentor-1")
	if err != nil {
		t.Fatalf("get as mentor: %v", err)
	}
	if got.MentorName != "Ada" || got.MenteeName != "Grace" {
		t.Errorf("expected participant names, got %q / %q", got.MentorName, got.MenteeName)
	}
}
