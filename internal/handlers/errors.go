package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/mentorlink/mentorlink-api/pkg/errors"
)

// attachError attaches err to the gin context so the observability middleware
// can include the reason in the request log. c.Error() returns *gin.Error (not
// the error interface), so we suppress errcheck here intentionally.
func attachError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err) //nolint:errcheck
	}
}

// respondError sends an error JSON response and attaches the error to the gin
// context so the observability middleware can include the reason in the log.
func respondError(c *gin.Context, status int, message string, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message})
}

// respondServiceError maps the service sentinels to HTTP statuses. The
// collaborator sentinel becomes 502 so clients can tell an upstream
// outage apart from our own failures.
func respondServiceError(c *gin.Context, err error, defaultMsg string) {
	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		respondError(c, http.StatusNotFound, "Not found", err)
	case apperrors.Is(err, apperrors.ErrAccessDenied):
		respondError(c, http.StatusForbidden, "Access denied", err)
	case apperrors.Is(err, apperrors.ErrUnauthorized):
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		attachError(c, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
	case apperrors.Is(err, apperrors.ErrConflict):
		attachError(c, err)
		c.JSON(http.StatusConflict, gin.H{"error": "Conflict", "details": err.Error()})
	case apperrors.Is(err, apperrors.ErrCollaborator):
		respondError(c, http.StatusBadGateway, "Upstream service unavailable", err)
	default:
		respondError(c, http.StatusInternalServerError, defaultMsg, err)
	}
}
