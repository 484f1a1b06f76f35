package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mentorlink/mentorlink-api/internal/middleware"
	"github.com/mentorlink/mentorlink-api/internal/models"
	"github.com/mentorlink/mentorlink-api/internal/services"
)

// RequestsHandler handles mentorship request endpoints for both roles
type RequestsHandler struct {
	service services.RequestsServiceInterface
}

// NewRequestsHandler creates a new RequestsHandler
func NewRequestsHandler(service services.RequestsServiceInterface) *RequestsHandler {
	return &RequestsHandler{service: service}
}

// parseStatusFilter reads the optional ?status= query parameter. An
// empty value means no filtering.
func parseStatusFilter(c *gin.Context) (models.RequestStatus, bool) {
	raw := strings.ToUpper(c.Query("status"))
	switch models.RequestStatus(raw) {
	case "", models.StatusPending, models.StatusAccepted, models.StatusRejected:
		return models.RequestStatus(raw), true
	default:
		return "", false
	}
}

// CreateRequest handles POST /api/v1/mentee/requests
// Opens a PENDING request towards a mentor
func (h *RequestsHandler) CreateRequest(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var payload models.CreateRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": ParseValidationErrors(err),
		})
		return
	}

	request, err := h.service.CreateRequest(c.Request.Context(), session.UserID, &payload)
	if err != nil {
		respondServiceError(c, err, "Failed to create request")
		return
	}

	c.JSON(http.StatusCreated, request)
}

// ListMenteeRequests handles GET /api/v1/mentee/requests
func (h *RequestsHandler) ListMenteeRequests(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	status, ok := parseStatusFilter(c)
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid status value. Must be PENDING, ACCEPTED or REJECTED", nil)
		return
	}

	resp, err := h.service.ListForMentee(c.Request.Context(), session.UserID, status)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch requests")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListMentorRequests handles GET /api/v1/mentor/requests
func (h *RequestsHandler) ListMentorRequests(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	status, ok := parseStatusFilter(c)
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid status value. Must be PENDING, ACCEPTED or REJECTED", nil)
		return
	}

	resp, err := h.service.ListForMentor(c.Request.Context(), session.UserID, status)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch requests")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AcceptRequest handles POST /api/v1/mentor/requests/:id/accept
// Books the session and, only on success, flips the request to ACCEPTED
func (h *RequestsHandler) AcceptRequest(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	requestID := c.Param("id")
	if requestID == "" {
		respondError(c, http.StatusBadRequest, "Invalid request ID", nil)
		return
	}

	resp, err := h.service.AcceptRequest(c.Request.Context(), session.UserID, requestID)
	if err != nil {
		respondServiceError(c, err, "Failed to accept request")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RejectRequest handles POST /api/v1/mentor/requests/:id/reject
func (h *RequestsHandler) RejectRequest(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	requestID := c.Param("id")
	if requestID == "" {
		respondError(c, http.StatusBadRequest, "Invalid request ID", nil)
		return
	}

	request, err := h.service.RejectRequest(c.Request.Context(), session.UserID, requestID)
	if err != nil {
		respondServiceError(c, err, "Failed to reject request")
		return
	}

	c.JSON(http.StatusOK, request)
}
