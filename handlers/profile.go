// handlers/profile.go
package handlers

import (
	"net/http"

	"mentormatch/models"
	"mentormatch/services/linkedin"
	"mentormatch/services/profile"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxImportPDFBytes caps LinkedIn PDF uploads.
const maxImportPDFBytes = 10 << 20

// ProfileHandler exposes the caller's own profile endpoints.
type ProfileHandler struct {
	Svc      profile.ProfileService
	LinkedIn linkedin.LinkedInService
}

func NewProfileHandler(svc profile.ProfileService, li linkedin.LinkedInService) *ProfileHandler {
	return &ProfileHandler{Svc: svc, LinkedIn: li}
}

// GetProfileHandler returns the authenticated caller's profile.
func (h *ProfileHandler) GetProfileHandler(c *gin.Context) {
	profileID, ok := currentProfileID(c)
	if !ok {
		return
	}

	p, err := h.Svc.Get(profileID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve profile"})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateProfileHandler applies a partial profile update.
func (h *ProfileHandler) UpdateProfileHandler(c *gin.Context) {
	profileID, ok := currentProfileID(c)
	if !ok {
		return
	}

	var req profile.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	p, err := h.Svc.Update(profileID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

// BecomeMentorHandler upgrades the caller's profile to a mentor.
func (h *ProfileHandler) BecomeMentorHandler(c *gin.Context) {
	profileID, ok := currentProfileID(c)
	if !ok {
		return
	}

	var req profile.BecomeMentorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	p, err := h.Svc.BecomeMentor(profileID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

// SetMentorActiveHandler toggles whether the mentor appears in search and
// accepts bookings.
func (h *ProfileHandler) SetMentorActiveHandler(c *gin.Context) {
	profileID, ok := currentProfileID(c)
	if !ok {
		return
	}

	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	p, err := h.Svc.SetMentorActive(profileID, *req.Active)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

// UploadAvatarHandler stores an avatar image and updates the profile URL.
func (h *ProfileHandler) UploadAvatarHandler(c *gin.Context) {
	profileID, ok := currentProfileID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file upload"})
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot read uploaded file"})
		return
	}
	defer f.Close()

	url, err := h.Svc.UploadAvatar(c.Request.Context(), profileID, f)
	if err != nil {
		getLogger(c).Error("avatar upload failed", zap.String("profileID", profileID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload avatar"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}

// SetAvailabilityHandler replaces the mentor's weekly rules and overrides.
func (h *ProfileHandler) SetAvailabilityHandler(c *gin.Context) {
	profileID, ok := currentProfileID(c)
	if !ok {
		return
	}

	var req struct {
		Rules     []models.AvailabilityRule     `json:"rules"`
		Overrides []models.AvailabilityOverride `json:"overrides"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.Svc.SetAvailability(profileID, req.Rules, req.Overrides); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Availability updated"})
}

// LinkedInStatusHandler reports whether the import pipeline is configured.
func (h *ProfileHandler) LinkedInStatusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"available": h.LinkedIn != nil})
}

// ImportLinkedInHandler extracts profile prefill fields from an uploaded
// LinkedIn PDF export. Nothing is persisted; the client reviews the prefill
// and submits it through the normal update endpoints.
func (h *ProfileHandler) ImportLinkedInHandler(c *gin.Context) {
	if _, ok := currentProfileID(c); !ok {
		return
	}
	if h.LinkedIn == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "LinkedIn import is not configured"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file upload"})
		return
	}
	if fileHeader.Size > maxImportPDFBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "PDF exceeds the 10MB limit"})
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot read uploaded file"})
		return
	}
	defer f.Close()

	extracted, prefill, err := h.LinkedIn.ImportProfile(c.Request.Context(), f, fileHeader.Size)
	if err != nil {
		getLogger(c).Warn("linkedin import failed", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Could not extract a profile from this PDF"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"extracted": extracted, "prefill": prefill})
}
