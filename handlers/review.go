// handlers/review.go
package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"mentormatch/services/booking"
	"mentormatch/services/review"

	"github.com/gin-gonic/gin"
)

// ReviewHandler exposes review endpoints.
type ReviewHandler struct {
	Svc review.ReviewService
}

func NewReviewHandler(svc review.ReviewService) *ReviewHandler {
	return &ReviewHandler{Svc: svc}
}

// CreateReviewHandler records a review for a completed booking.
func (h *ReviewHandler) CreateReviewHandler(c *gin.Context) {
	reviewerID, ok := currentProfileID(c)
	if !ok {
		return
	}

	var req review.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	r, err := h.Svc.Create(reviewerID, req)
	if err != nil {
		if booking.CodeOf(err) != "" {
			writeBookingError(c, err)
			return
		}
		if strings.Contains(err.Error(), "already reviewed") {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, r)
}

// GetSessionReviewHandler returns the review left for a session, if any.
func (h *ReviewHandler) GetSessionReviewHandler(c *gin.Context) {
	r, err := h.Svc.GetBySession(c.Param("sessionID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load review"})
		return
	}
	if r == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No review for this session"})
		return
	}
	c.JSON(http.StatusOK, r)
}

// DeleteReviewHandler removes the caller's own review.
func (h *ReviewHandler) DeleteReviewHandler(c *gin.Context) {
	reviewerID, ok := currentProfileID(c)
	if !ok {
		return
	}

	if err := h.Svc.Delete(c.Param("id"), reviewerID); err != nil {
		switch {
		case strings.Contains(err.Error(), "not found"):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case strings.Contains(err.Error(), "only the author"):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}

// MentorStatsHandler returns a mentor's aggregate rating and recent reviews.
func (h *ReviewHandler) MentorStatsHandler(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	stats, err := h.Svc.MentorStats(c.Param("id"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load review stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
