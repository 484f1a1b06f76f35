package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/mentorlink/mentorlink-api/config"
	"github.com/mentorlink/mentorlink-api/internal/models"
	"github.com/mentorlink/mentorlink-api/internal/repository"
	apperrors "github.com/mentorlink/mentorlink-api/pkg/errors"
	"github.com/mentorlink/mentorlink-api/pkg/jwt"
	"github.com/mentorlink/mentorlink-api/pkg/logger"
	"github.com/mentorlink/mentorlink-api/pkg/metrics"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles password login and account credential management
type AuthService struct {
	users        repository.UserStore
	tokenManager *jwt.TokenManager
	config       *config.Config
}

// NewAuthService creates a new AuthService
func NewAuthService(users repository.UserStore, tokenManager *jwt.TokenManager, cfg *config.Config) *AuthService {
	return &AuthService{
		users:        users,
		tokenManager: tokenManager,
		config:       cfg,
	}
}

// Login verifies credentials and returns the account summary plus a
// signed session token. Unknown email and wrong password produce the
// same error so the endpoint does not leak which accounts exist.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, string, error) {
	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			metrics.LoginAttempts.WithLabelValues("invalid_credentials").Inc()
			return nil, "", apperrors.UnauthorizedError("invalid credentials")
		}
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		return nil, "", fmt.Errorf("failed to look up account: %w", err)
	}

	if !user.IsActive {
		metrics.LoginAttempts.WithLabelValues("inactive").Inc()
		logger.Warn("Login attempt on inactive account", zap.String("user_id", user.ID))
		return nil, "", apperrors.UnauthorizedError("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		metrics.LoginAttempts.WithLabelValues("invalid_credentials").Inc()
		return nil, "", apperrors.UnauthorizedError("invalid credentials")
	}

	token, err := s.tokenManager.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		logger.Error("Failed to generate session token", zap.Error(err))
		return nil, "", fmt.Errorf("failed to generate session token: %w", err)
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	logger.Info("User logged in",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)))

	return &models.LoginResponse{
		UserID:             user.ID,
		Email:              user.Email,
		Role:               user.Role,
		MustChangePassword: user.MustChangePassword,
		ProfileCompleted:   user.ProfileCompleted,
	}, token, nil
}

// ChangePassword verifies the current password before storing the new
// hash. Clears the forced-change flag as a side effect.
func (s *AuthService) ChangePassword(ctx context.Context, userID string, req *models.ChangePasswordRequest) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return apperrors.UnauthorizedError("current password is incorrect")
	}

	if req.CurrentPassword == req.NewPassword {
		return apperrors.InvalidInputError("newPassword", "must differ from the current password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.UpdateUserPassword(ctx, userID, string(hash)); err != nil {
		return err
	}

	logger.Info("Password changed", zap.String("user_id", userID))
	return nil
}

// EnsureAdmin creates the bootstrap admin account on first start. An
// existing account with the configured email is left untouched.
func (s *AuthService) EnsureAdmin(ctx context.Context) error {
	_, err := s.users.GetUserByEmail(ctx, s.config.Admin.Email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check admin account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.config.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	user, err := s.users.InsertUser(ctx, s.config.Admin.Email, string(hash), models.RoleAdmin, false)
	if err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	logger.Info("Bootstrap admin account created", zap.String("user_id", user.ID))
	return nil
}

// GetSessionTTL returns the session lifetime in seconds, for cookie Max-Age
func (s *AuthService) GetSessionTTL() int {
	return s.config.Session.SessionTTLHours * 3600
}

// GetCookieDomain returns the configured session cookie domain
func (s *AuthService) GetCookieDomain() string {
	return s.config.Session.CookieDomain
}

// GetCookieSecure returns whether the session cookie requires HTTPS
func (s *AuthService) GetCookieSecure() bool {
	return s.config.Session.CookieSecure
}

// GetTokenManager returns the token manager for middleware validation
func (s *AuthService) GetTokenManager() *jwt.TokenManager {
	return s.tokenManager
}
