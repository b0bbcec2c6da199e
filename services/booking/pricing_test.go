package booking

import (
	"testing"

	"mentormatch/models"
)

func TestComputePrice(t *testing.T) {
	rate := &models.MentorRateProfile{
		HourlyRateCents: 6000,
		TrialRateCents:  1500,
		Currency:        "usd",
		IsActive:        true,
	}

	cases := []struct {
		name    string
		rate    *models.MentorRateProfile
		kind    string
		minutes int
		want    int64
		wantErr string
	}{
		{name: "full hour", rate: rate, kind: models.SessionKindOneOnOne, minutes: 60, want: 6000},
		{name: "45 minutes", rate: rate, kind: models.SessionKindOneOnOne, minutes: 45, want: 4500},
		{name: "truncates fractional cents", rate: &models.MentorRateProfile{HourlyRateCents: 5000, IsActive: true}, kind: models.SessionKindOneOnOne, minutes: 50, want: 4166},
		{name: "group uses hourly rate", rate: rate, kind: models.SessionKindGroup, minutes: 90, want: 9000},
		{name: "trial is flat", rate: rate, kind: models.SessionKindTrial, minutes: 30, want: 1500},
		{name: "trial ignores duration", rate: rate, kind: models.SessionKindTrial, minutes: 180, want: 1500},
		{name: "nil rate profile", rate: nil, kind: models.SessionKindOneOnOne, minutes: 60, wantErr: CodeMentorNotConfigured},
		{name: "inactive rate profile", rate: &models.MentorRateProfile{HourlyRateCents: 6000}, kind: models.SessionKindOneOnOne, minutes: 60, wantErr: CodeMentorNotConfigured},
		{name: "zero hourly rate", rate: &models.MentorRateProfile{IsActive: true}, kind: models.SessionKindOneOnOne, minutes: 60, wantErr: CodeMentorNotConfigured},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ComputePrice(tc.rate, tc.kind, tc.minutes)
			if tc.wantErr != "" {
				if CodeOf(err) != tc.wantErr {
					t.Fatalf("expected %s, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("expected %d, got %d", tc.want, got)
			}
		})
	}
}
