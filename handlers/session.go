// handlers/session.go
package handlers

import (
	"net/http"

	"mentormatch/services/session"

	"github.com/gin-gonic/gin"
)

// SessionHandler exposes the video session endpoints.
type SessionHandler struct {
	Svc session.SessionService
}

func NewSessionHandler(svc session.SessionService) *SessionHandler {
	return &SessionHandler{Svc: svc}
}

// StartSessionHandler opens the video room for a confirmed booking.
func (h *SessionHandler) StartSessionHandler(c *gin.Context) {
	actorID, ok := currentProfileID(c)
	if !ok {
		return
	}

	resp, err := h.Svc.Start(c.Request.Context(), c.Param("bookingID"), actorID)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetSessionHandler returns one session to a participant.
func (h *SessionHandler) GetSessionHandler(c *gin.Context) {
	actorID, ok := currentProfileID(c)
	if !ok {
		return
	}

	sess, err := h.Svc.Get(c.Param("id"), actorID)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// JoinSessionHandler returns the room details and a fresh token for a
// participant of an in-progress session.
func (h *SessionHandler) JoinSessionHandler(c *gin.Context) {
	actorID, ok := currentProfileID(c)
	if !ok {
		return
	}

	resp, err := h.Svc.Join(c.Param("id"), actorID)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EndSessionHandler closes the room and completes the booking.
func (h *SessionHandler) EndSessionHandler(c *gin.Context) {
	actorID, ok := currentProfileID(c)
	if !ok {
		return
	}

	sess, err := h.Svc.End(c.Request.Context(), c.Param("id"), actorID)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// ListSessionsHandler returns the caller's past and current sessions.
func (h *SessionHandler) ListSessionsHandler(c *gin.Context) {
	actorID, ok := currentProfileID(c)
	if !ok {
		return
	}

	sessions, err := h.Svc.ListByUser(actorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load sessions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}
