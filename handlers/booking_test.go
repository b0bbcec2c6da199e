package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestParseDuration(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		query  string
		want   int
		wantOK bool
	}{
		{name: "default", query: "", want: 60, wantOK: true},
		{name: "valid", query: "duration=45", want: 45, wantOK: true},
		{name: "not a number", query: "duration=abc", wantOK: false},
		{name: "too short", query: "duration=10", wantOK: false},
		{name: "too long", query: "duration=200", wantOK: false},
		{name: "zero", query: "duration=0", wantOK: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/bookings/quote?"+tc.query, nil)

			got, ok := parseDuration(c)
			if ok != tc.wantOK {
				t.Fatalf("expected ok=%v, got %v", tc.wantOK, ok)
			}
			if !tc.wantOK {
				if w.Code != http.StatusBadRequest {
					t.Errorf("expected 400, got %d", w.Code)
				}
				return
			}
			if got != tc.want {
				t.Errorf("expected %d, got %d", tc.want, got)
			}
		})
	}
}
