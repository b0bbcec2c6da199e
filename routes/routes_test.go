package routes

import (
	"testing"

	"mentormatch/handlers"

	"github.com/gin-gonic/gin"
)

// Completion is driven by closing the session, never called directly, so the
// booking group must not expose it.
func TestBookingRoutesExposeOnlyCallerTransitions(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	hb := &handlers.HandlerBundle{
		Booking: &handlers.BookingHandler{},
	}
	RegisterBookingRoutes(r, hb)

	want := map[string]bool{
		"POST /api/bookings/:id/confirm":    false,
		"POST /api/bookings/:id/cancel":     false,
		"POST /api/bookings/:id/reschedule": false,
	}
	for _, route := range r.Routes() {
		key := route.Method + " " + route.Path
		if key == "POST /api/bookings/:id/complete" {
			t.Fatalf("complete must not be exposed as a booking endpoint")
		}
		if _, ok := want[key]; ok {
			want[key] = true
		}
	}
	for key, seen := range want {
		if !seen {
			t.Errorf("missing route %s", key)
		}
	}
}
