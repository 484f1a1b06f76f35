package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/mentorlink/mentorlink-api/internal/models"
	"github.com/mentorlink/mentorlink-api/internal/repository"
	apperrors "github.com/mentorlink/mentorlink-api/pkg/errors"
	"github.com/mentorlink/mentorlink-api/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AdminService handles account administration
type AdminService struct {
	users repository.UserStore
}

// NewAdminService creates a new AdminService
func NewAdminService(users repository.UserStore) *AdminService {
	return &AdminService{users: users}
}

// CreateUser provisions a mentor or mentee account. The account starts
// with a forced password change so the admin-set password is temporary.
func (s *AdminService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	if !req.Role.Valid() || req.Role == models.RoleAdmin {
		return nil, apperrors.InvalidInputError("role", "must be Mentor or Mentee")
	}

	existing, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ConflictError("an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.InsertUser(ctx, req.Email, string(hash), req.Role, true)
	if err != nil {
		return nil, err
	}

	logger.Info("Account created",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)))
	return user, nil
}

// ListUsers returns all accounts
func (s *AdminService) ListUsers(ctx context.Context) (*models.UserListResponse, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]models.User, 0, len(users))
	for _, u := range users {
		result = append(result, *u)
	}
	return &models.UserListResponse{Users: result, Total: len(result)}, nil
}

// DeleteUser removes an account. Admins cannot delete themselves or
// other admin accounts.
func (s *AdminService) DeleteUser(ctx context.Context, session *models.UserSession, userID string) error {
	if userID == session.UserID {
		return apperrors.AccessDeniedError("cannot delete your own account")
	}

	target, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if target.Role == models.RoleAdmin {
		return apperrors.AccessDeniedError("cannot delete an admin account")
	}

	if err := s.users.DeleteUser(ctx, userID); err != nil {
		return err
	}

	logger.Info("Account deleted",
		zap.String("user_id", userID),
		zap.String("deleted_by", session.UserID))
	return nil
}
