package booking

import (
	"context"
	"testing"
	"time"

	"mentormatch/models"
)

func TestRefundEligibleBoundary(t *testing.T) {
	start := time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{name: "48h notice", now: start.Add(-48 * time.Hour), want: true},
		{name: "exactly 24h notice", now: start.Add(-24 * time.Hour), want: true},
		{name: "23h59m59s notice", now: start.Add(-24*time.Hour + time.Second), want: false},
		{name: "one hour notice", now: start.Add(-time.Hour), want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RefundEligible(start, tc.now); got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestConfirmTransition(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	view := mustCreate(t, svc, testNow.Add(48*time.Hour), 60)

	if _, err := svc.ApplyTransition(ctx, view.ID, EventConfirm, "mentee-1", TransitionPayload{}); CodeOf(err) != CodeNotAuthorized {
		t.Errorf("expected notAuthorized for mentee confirm, got %v", err)
	}

	got, err := svc.ApplyTransition(ctx, view.ID, EventConfirm, "mentor-1", TransitionPayload{})
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if got.Status != models.BookingStatusConfirmed {
		t.Errorf("expected confirmed, got %s", got.Status)
	}

	// Confirming again is not idempotent: the guard fails and state is kept.
	if _, err := svc.ApplyTransition(ctx, view.ID, EventConfirm, "mentor-1", TransitionPayload{}); CodeOf(err) != CodeInvalidTransition {
		t.Errorf("expected invalidTransition on double confirm, got %v", err)
	}
	after, err := svc.Get(view.ID, "mentor-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if after.Status != models.BookingStatusConfirmed {
		t.Errorf("double confirm changed state to %s", after.Status)
	}
}

func TestCancelRecordsRefundEligibility(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	early := mustCreate(t, svc, testNow.Add(72*time.Hour), 60)
	late := mustCreate(t, svc, testNow.Add(2*time.Hour), 60)

	got, err := svc.ApplyTransition(ctx, early.ID, EventCancel, "mentee-1", TransitionPayload{Reason: "conflict"})
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if got.Cancellation == nil || !got.Cancellation.RefundEligible {
		t.Error("expected refund-eligible cancellation with 72h notice")
	}
	if got.Cancellation.CancelledBy != "mentee-1" || got.Cancellation.Reason != "conflict" {
		t.Errorf("cancellation metadata not recorded: %+v", got.Cancellation)
	}

	got, err = svc.ApplyTransition(ctx, late.ID, EventCancel, "mentor-1", TransitionPayload{})
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if got.Cancellation == nil || got.Cancellation.RefundEligible {
		t.Error("expected no refund with 2h notice")
	}

	if _, err := svc.ApplyTransition(ctx, early.ID, EventCancel, "mentee-1", TransitionPayload{}); CodeOf(err) != CodeInvalidTransition {
		t.Errorf("expected invalidTransition cancelling a cancelled booking, got %v", err)
	}
	if _, err := svc.ApplyTransition(ctx, late.ID, EventCancel, "stranger", TransitionPayload{}); CodeOf(err) != CodeNotAuthorized {
		t.Errorf("expected notAuthorized for a stranger, got %v", err)
	}
}

func TestRescheduleResetsToPending(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	view := mustCreate(t, svc, testNow.Add(48*time.Hour), 60)
	if _, err := svc.ApplyTransition(ctx, view.ID, EventConfirm, "mentor-1", TransitionPayload{}); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	newStart := testNow.Add(96 * time.Hour)
	newDuration := 45
	got, err := svc.ApplyTransition(ctx, view.ID, EventReschedule, "mentee-1", TransitionPayload{
		Reschedule: &models.RescheduleRequest{ScheduledAt: &newStart, DurationMinutes: &newDuration},
	})
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if got.Status != models.BookingStatusPending {
		t.Errorf("expected reschedule to reset to pending, got %s", got.Status)
	}
	if !got.ScheduledAt.Equal(newStart) || got.DurationMinutes != 45 {
		t.Errorf("window not updated: %v / %d", got.ScheduledAt, got.DurationMinutes)
	}
	if got.PriceCents != 4500 {
		t.Errorf("expected price recomputed to 4500, got %d", got.PriceCents)
	}
}

func TestReschedulePriceKeepsOriginalKind(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	view, err := svc.Create(ctx, "mentee-1", models.BookingRequest{
		MentorID:        "mentor-1",
		ScheduledAt:     testNow.Add(48 * time.Hour),
		DurationMinutes: 30,
		SessionKind:     models.SessionKindTrial,
	})
	if err != nil {
		t.Fatalf("create trial: %v", err)
	}
	if view.PriceCents != 1500 {
		t.Fatalf("expected trial price 1500, got %d", view.PriceCents)
	}

	newDuration := 60
	got, err := svc.ApplyTransition(ctx, view.ID, EventReschedule, "mentee-1", TransitionPayload{
		Reschedule: &models.RescheduleRequest{DurationMinutes: &newDuration},
	})
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if got.PriceCents != 1500 {
		t.Errorf("trial price should stay flat after duration change, got %d", got.PriceCents)
	}
}

func TestRescheduleGuards(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	blocker := mustCreate(t, svc, testNow.Add(24*time.Hour), 60)
	_ = blocker
	view := mustCreate(t, svc, testNow.Add(48*time.Hour), 60)

	newStart := testNow.Add(24 * time.Hour)
	if _, err := svc.ApplyTransition(ctx, view.ID, EventReschedule, "mentee-1", TransitionPayload{
		Reschedule: &models.RescheduleRequest{ScheduledAt: &newStart},
	}); CodeOf(err) != CodeSlotUnavailable {
		t.Errorf("expected slotUnavailable moving onto a taken slot, got %v", err)
	}

	if _, err := svc.ApplyTransition(ctx, view.ID, EventReschedule, "mentor-1", TransitionPayload{
		Reschedule: &models.RescheduleRequest{ScheduledAt: &newStart},
	}); CodeOf(err) != CodeNotAuthorized {
		t.Errorf("expected notAuthorized for mentor reschedule, got %v", err)
	}

	past := testNow.Add(-time.Hour)
	if _, err := svc.ApplyTransition(ctx, view.ID, EventReschedule, "mentee-1", TransitionPayload{
		Reschedule: &models.RescheduleRequest{ScheduledAt: &past},
	}); CodeOf(err) != CodePastDeadline {
		t.Errorf("expected pastDeadline for a past start, got %v", err)
	}

	if _, err := svc.ApplyTransition(ctx, view.ID, EventCancel, "mentee-1", TransitionPayload{}); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	future := testNow.Add(96 * time.Hour)
	if _, err := svc.ApplyTransition(ctx, view.ID, EventReschedule, "mentee-1", TransitionPayload{
		Reschedule: &models.RescheduleRequest{ScheduledAt: &future},
	}); CodeOf(err) != CodeInvalidTransition {
		t.Errorf("expected invalidTransition rescheduling a cancelled booking, got %v", err)
	}
}

func TestCompleteTransition(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	view := mustCreate(t, svc, testNow.Add(48*time.Hour), 60)
	if _, err := svc.ApplyTransition(ctx, view.ID, EventComplete, "mentor-1", TransitionPayload{}); CodeOf(err) != CodeInvalidTransition {
		t.Errorf("expected invalidTransition completing a pending booking, got %v", err)
	}

	if _, err := svc.ApplyTransition(ctx, view.ID, EventConfirm, "mentor-1", TransitionPayload{}); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	got, err := svc.ApplyTransition(ctx, view.ID, EventComplete, "mentor-1", TransitionPayload{})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got.Status != models.BookingStatusCompleted {
		t.Errorf("expected completed, got %s", got.Status)
	}
}

func TestMarkNoShows(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	view := mustCreate(t, svc, testNow.Add(time.Hour), 60)
	if _, err := svc.ApplyTransition(ctx, view.ID, EventConfirm, "mentor-1", TransitionPayload{}); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	pendingView := mustCreate(t, svc, testNow.Add(4*time.Hour), 60)

	marked, err := svc.MarkNoShows(testNow.Add(3 * time.Hour))
	if err != nil {
		t.Fatalf("mark no-shows: %v", err)
	}
	if marked != 1 {
		t.Fatalf("expected 1 booking marked, got %d", marked)
	}
	if got := repo.bookings[view.ID]; got.Status != models.BookingStatusNoShow {
		t.Errorf("expected no_show, got %s", got.Status)
	}
	if got := repo.bookings[pendingView.ID]; got.Status != models.BookingStatusPending {
		t.Errorf("pending booking should be untouched, got %s", got.Status)
	}
}

func TestMarkNoShowsSkipsBookingsWithSessions(t *testing.T) {
	svc, repo := newTestService()
	sessions := newFakeSessionRepo()
	svc.SessionRepo = sessions
	ctx := context.Background()

	confirm := func(view *models.BookingView) {
		t.Helper()
		if _, err := svc.ApplyTransition(ctx, view.ID, EventConfirm, "mentor-1", TransitionPayload{}); err != nil {
			t.Fatalf("confirm: %v", err)
		}
	}

	// A session that started on time and overran the window.
	running := mustCreate(t, svc, testNow.Add(time.Hour), 60)
	confirm(running)
	startedAt := testNow.Add(time.Hour)
	if err := sessions.Create(&models.Session{
		ID:        "sess-running",
		BookingID: running.ID,
		MentorID:  "mentor-1",
		MenteeID:  "mentee-1",
		Status:    models.SessionStatusInProgress,
		StartedAt: &startedAt,
	}); err != nil {
		t.Fatalf("create session: %v", err)
	}

	// A session that closed but whose completed transition was lost.
	ended := mustCreate(t, svc, testNow.Add(3*time.Hour), 30)
	confirm(ended)
	endedAt := testNow.Add(4 * time.Hour)
	if err := sessions.Create(&models.Session{
		ID:        "sess-ended",
		BookingID: ended.ID,
		MentorID:  "mentor-1",
		MenteeID:  "mentee-1",
		Status:    models.SessionStatusCompleted,
		EndedAt:   &endedAt,
	}); err != nil {
		t.Fatalf("create session: %v", err)
	}

	// No session at all: the genuine no-show.
	missed := mustCreate(t, svc, testNow.Add(5*time.Hour), 60)
	confirm(missed)

	marked, err := svc.MarkNoShows(testNow.Add(10 * time.Hour))
	if err != nil {
		t.Fatalf("mark no-shows: %v", err)
	}
	if marked != 1 {
		t.Fatalf("expected only the sessionless booking marked, got %d", marked)
	}
	if got := repo.bookings[running.ID]; got.Status != models.BookingStatusConfirmed {
		t.Errorf("booking with a live session should stay confirmed, got %s", got.Status)
	}
	if got := repo.bookings[ended.ID]; got.Status != models.BookingStatusCompleted {
		t.Errorf("booking with a closed session should be reconciled to completed, got %s", got.Status)
	}
	if got := repo.bookings[missed.ID]; got.Status != models.BookingStatusNoShow {
		t.Errorf("sessionless booking should be no_show, got %s", got.Status)
	}
}
