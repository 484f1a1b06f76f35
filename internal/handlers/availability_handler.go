package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mentorlink/mentorlink-api/internal/middleware"
	"github.com/mentorlink/mentorlink-api/internal/models"
	"github.com/mentorlink/mentorlink-api/internal/services"
)

// AvailabilityHandler handles mentor availability endpoints
type AvailabilityHandler struct {
	service services.AvailabilityServiceInterface
}

// NewAvailabilityHandler creates a new AvailabilityHandler
func NewAvailabilityHandler(service services.AvailabilityServiceInterface) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

// AddAvailability handles POST /api/v1/mentor/availability
func (h *AvailabilityHandler) AddAvailability(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var req models.AddAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": ParseValidationErrors(err),
		})
		return
	}

	slot, err := h.service.AddAvailability(c.Request.Context(), session.UserID, &req)
	if err != nil {
		respondServiceError(c, err, "Failed to add availability")
		return
	}

	c.JSON(http.StatusCreated, slot)
}

// ListAvailability handles GET /api/v1/mentor/availability
func (h *AvailabilityHandler) ListAvailability(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	resp, err := h.service.ListAvailability(c.Request.Context(), session.UserID)
	if err != nil {
		respondServiceError(c, err, "Failed to list availability")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteAvailability handles DELETE /api/v1/mentor/availability/:id
func (h *AvailabilityHandler) DeleteAvailability(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	availabilityID := c.Param("id")
	if availabilityID == "" {
		respondError(c, http.StatusBadRequest, "Invalid availability ID", nil)
		return
	}

	if err := h.service.DeleteAvailability(c.Request.Context(), session.UserID, availabilityID); err != nil {
		respondServiceError(c, err, "Failed to delete availability")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
