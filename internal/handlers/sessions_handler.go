package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mentorlink/mentorlink-api/internal/middleware"
	"github.com/mentorlink/mentorlink-api/internal/services"
)

// SessionsHandler handles session listing endpoints
type SessionsHandler struct {
	service services.SessionsServiceInterface
}

// NewSessionsHandler creates a new SessionsHandler
func NewSessionsHandler(service services.SessionsServiceInterface) *SessionsHandler {
	return &SessionsHandler{service: service}
}

// ListSessions handles GET /api/v1/{mentor,mentee}/sessions
// Each session is classified against the current instant at read time
func (h *SessionsHandler) ListSessions(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	resp, err := h.service.ListSessions(c.Request.Context(), session.UserID, time.Now())
	if err != nil {
		respondServiceError(c, err, "Failed to fetch sessions")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RemindSession handles POST /api/v1/mentor/sessions/:id/remind
func (h *SessionsHandler) RemindSession(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	sessionID := c.Param("id")
	if sessionID == "" {
		respondError(c, http.StatusBadRequest, "Invalid session ID", nil)
		return
	}

	if err := h.service.RemindSession(c.Request.Context(), session.UserID, sessionID); err != nil {
		respondServiceError(c, err, "Failed to send reminder")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
