package payment

import (
	"testing"

	"mentormatch/config"
)

func TestPlatformFee(t *testing.T) {
	orig := config.AppConfig.PlatformFeePercent
	defer func() { config.AppConfig.PlatformFeePercent = orig }()

	cases := []struct {
		name    string
		percent float64
		amount  int64
		want    int64
	}{
		{name: "ten percent", percent: 10.0, amount: 6000, want: 600},
		{name: "fractional percent", percent: 12.5, amount: 6000, want: 750},
		{name: "truncates to whole cents", percent: 10.0, amount: 4505, want: 450},
		{name: "disabled", percent: 0, amount: 6000, want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			config.AppConfig.PlatformFeePercent = tc.percent
			if got := platformFee(tc.amount); got != tc.want {
				t.Errorf("expected %d, got %d", tc.want, got)
			}
		})
	}
}
