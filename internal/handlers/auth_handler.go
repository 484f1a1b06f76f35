package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mentorlink/mentorlink-api/internal/middleware"
	"github.com/mentorlink/mentorlink-api/internal/models"
	"github.com/mentorlink/mentorlink-api/internal/services"
)

// AuthHandler handles login, logout, and password management endpoints
type AuthHandler struct {
	service services.AuthServiceInterface
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service services.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login handles POST /api/v1/auth/login
// Verifies credentials and sets the session cookie
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": ParseValidationErrors(err),
		})
		return
	}

	resp, token, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Login failed")
		return
	}

	middleware.SetSessionCookie(c, token, h.service.GetSessionTTL(),
		h.service.GetCookieDomain(), h.service.GetCookieSecure())

	c.JSON(http.StatusOK, resp)
}

// Logout handles POST /api/v1/auth/logout
// Clears the session cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c, h.service.GetCookieDomain(), h.service.GetCookieSecure())
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Me handles GET /api/v1/auth/session
// Returns the current session identity
func (h *AuthHandler) Me(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// ChangePassword handles POST /api/v1/auth/change-password
// Changes the caller's password and clears the forced-change flag
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": ParseValidationErrors(err),
		})
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), session.UserID, &req); err != nil {
		respondServiceError(c, err, "Failed to change password")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
