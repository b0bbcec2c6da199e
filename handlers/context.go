package handlers

import (
	"net/http"

	"mentormatch/services/booking"

	"github.com/gin-gonic/gin"
)

// currentUserID returns the authenticated user's ID, aborting with 401 when
// the auth middleware did not run.
func currentUserID(c *gin.Context) (string, bool) {
	id, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	userID, ok := id.(string)
	if !ok || userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

// currentProfileID returns the authenticated caller's profile ID.
func currentProfileID(c *gin.Context) (string, bool) {
	id, exists := c.Get("profileID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	profileID, ok := id.(string)
	if !ok || profileID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return profileID, true
}

// bookingErrorStatus maps booking error codes to HTTP statuses.
func bookingErrorStatus(err error) int {
	switch booking.CodeOf(err) {
	case booking.CodeNotFound:
		return http.StatusNotFound
	case booking.CodeNotAuthorized:
		return http.StatusForbidden
	case booking.CodeSlotUnavailable, booking.CodeInvalidTransition:
		return http.StatusConflict
	case booking.CodePastDeadline, booking.CodeMentorNotConfigured:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeBookingError renders a booking service error with its code and the
// mapped HTTP status.
func writeBookingError(c *gin.Context, err error) {
	if code := booking.CodeOf(err); code != "" {
		c.JSON(bookingErrorStatus(err), gin.H{"error": err.Error(), "code": code})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
