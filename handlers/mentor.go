// handlers/mentor.go
package handlers

import (
	"net/http"
	"strconv"
	"strings"

	categoryRepo "mentormatch/database/repository/category"
	profileRepo "mentormatch/database/repository/profile"
	"mentormatch/services/mentor"

	"github.com/gin-gonic/gin"
)

// MentorHandler exposes mentor discovery and engagement endpoints.
type MentorHandler struct {
	Svc          mentor.MentorService
	CategoryRepo categoryRepo.CategoryRepository
}

func NewMentorHandler(svc mentor.MentorService, categories categoryRepo.CategoryRepository) *MentorHandler {
	return &MentorHandler{Svc: svc, CategoryRepo: categories}
}

// SearchHandler runs a filtered, paginated mentor search.
func (h *MentorHandler) SearchHandler(c *gin.Context) {
	filter := profileRepo.MentorSearchFilter{
		CategoryID:   c.Query("category_id"),
		Query:        c.Query("q"),
		Sort:         c.Query("sort"),
		VerifiedOnly: c.Query("verified") == "true",
	}
	filter.MinPriceCents, _ = strconv.ParseInt(c.Query("min_price"), 10, 64)
	filter.MaxPriceCents, _ = strconv.ParseInt(c.Query("max_price"), 10, 64)
	filter.MinRating, _ = strconv.ParseFloat(c.Query("min_rating"), 64)
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	result, err := h.Svc.Search(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetDetailHandler returns the full public view of one mentor.
func (h *MentorHandler) GetDetailHandler(c *gin.Context) {
	viewerID, _ := c.Get("profileID")
	viewer, _ := viewerID.(string)

	detail, err := h.Svc.GetDetail(c.Param("id"), viewer)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Mentor not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load mentor"})
		return
	}
	c.JSON(http.StatusOK, detail)
}

// ListByCategoryHandler returns active mentors in a category by slug.
func (h *MentorHandler) ListByCategoryHandler(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	mentors, err := h.Svc.ListByCategory(c.Param("slug"), limit)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mentors": mentors})
}

// RecommendedHandler returns mentors matched to the caller's liked categories.
func (h *MentorHandler) RecommendedHandler(c *gin.Context) {
	menteeID, ok := currentProfileID(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	mentors, err := h.Svc.Recommended(menteeID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load recommendations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mentors": mentors})
}

// LikeHandler records one-way interest in a mentor.
func (h *MentorHandler) LikeHandler(c *gin.Context) {
	menteeID, ok := currentProfileID(c)
	if !ok {
		return
	}
	if err := h.Svc.Like(menteeID, c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Liked"})
}

// SaveHandler bookmarks a mentor.
func (h *MentorHandler) SaveHandler(c *gin.Context) {
	menteeID, ok := currentProfileID(c)
	if !ok {
		return
	}
	if err := h.Svc.Save(menteeID, c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Saved"})
}

// UnsaveHandler removes a bookmark.
func (h *MentorHandler) UnsaveHandler(c *gin.Context) {
	menteeID, ok := currentProfileID(c)
	if !ok {
		return
	}
	if err := h.Svc.Unsave(menteeID, c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Removed"})
}

// ListSavedHandler returns the caller's bookmarked mentors.
func (h *MentorHandler) ListSavedHandler(c *gin.Context) {
	menteeID, ok := currentProfileID(c)
	if !ok {
		return
	}
	mentors, err := h.Svc.ListSaved(menteeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load saved mentors"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mentors": mentors})
}

// AvailableSlotsHandler lists bookable slots for a mentor on one date.
// Date is YYYY-MM-DD in the mentor's timezone.
func (h *MentorHandler) AvailableSlotsHandler(c *gin.Context) {
	duration, _ := strconv.Atoi(c.DefaultQuery("duration", "60"))
	slots, err := h.Svc.AvailableSlots(c.Request.Context(), c.Param("id"), c.Query("date"), duration)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// ListCategoriesHandler returns the active category tree level.
func (h *MentorHandler) ListCategoriesHandler(c *gin.Context) {
	categories, err := h.CategoryRepo.List(c.Query("parent_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
