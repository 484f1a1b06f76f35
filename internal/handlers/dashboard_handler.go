package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mentorlink/mentorlink-api/internal/middleware"
	"github.com/mentorlink/mentorlink-api/internal/services"
)

// DashboardHandler handles the per-role dashboard summary endpoint
type DashboardHandler struct {
	service services.DashboardServiceInterface
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(service services.DashboardServiceInterface) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Summary handles GET /api/v1/{mentor,mentee}/dashboard
func (h *DashboardHandler) Summary(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), session)
	if err != nil {
		respondServiceError(c, err, "Failed to build dashboard")
		return
	}

	c.JSON(http.StatusOK, summary)
}
