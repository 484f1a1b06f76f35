package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mentorlink/mentorlink-api/internal/services"
)

// MentorsHandler handles the mentee-facing mentor directory endpoints
type MentorsHandler struct {
	service services.MentorsServiceInterface
}

// NewMentorsHandler creates a new MentorsHandler
func NewMentorsHandler(service services.MentorsServiceInterface) *MentorsHandler {
	return &MentorsHandler{service: service}
}

// ListMentors handles GET /api/v1/mentee/mentors
// Serves from the directory cache; ?refresh=true triggers a background
// refresh and still answers immediately with current data
func (h *MentorsHandler) ListMentors(c *gin.Context) {
	forceRefresh := c.Query("refresh") == "true"

	entries, err := h.service.ListMentors(c.Request.Context(), forceRefresh)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch mentors")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mentors": entries,
		"total":   len(entries),
	})
}

// GetMentor handles GET /api/v1/mentee/mentors/:id
func (h *MentorsHandler) GetMentor(c *gin.Context) {
	mentorID := c.Param("id")
	if mentorID == "" {
		respondError(c, http.StatusBadRequest, "Invalid mentor ID", nil)
		return
	}

	entry, err := h.service.GetMentor(c.Request.Context(), mentorID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch mentor")
		return
	}

	c.JSON(http.StatusOK, entry)
}
