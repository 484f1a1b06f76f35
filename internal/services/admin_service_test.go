package services_test

import (
	"context"
	"testing"

	"github.com/mentorlink/mentorlink-api/internal/models"
	"github.com/mentorlink/mentorlink-api/internal/services"
	apperrors "github.com/mentorlink/mentorlink-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAdminService_CreateUser(t *testing.T) {
	mockUsers := new(MockUserStore)
	service := services.NewAdminService(mockUsers)
	ctx := context.Background()

	created := &models.User{ID: "user-1", Email: "new@example.com", Role: models.RoleMentor, MustChangePassword: true}

	mockUsers.On("GetUserByEmail", ctx, "new@example.com").
		Return(nil, apperrors.NotFoundError("user")).Once()
	mockUsers.On("InsertUser", ctx, "new@example.com", mock.MatchedBy(func(hash string) bool {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte("temp-password")) == nil
	}), models.RoleMentor, true).Return(created, nil).Once()

	user, err := service.CreateUser(ctx, &models.CreateUserRequest{
		Email:    "new@example.com",
		Password: "temp-password",
		Role:     models.RoleMentor,
	})

	require.NoError(t, err)
	assert.True(t, user.MustChangePassword)
	mockUsers.AssertExpectations(t)
}

func TestAdminService_CreateUser_DuplicateEmail(t *testing.T) {
	mockUsers := new(MockUserStore)
	service := services.NewAdminService(mockUsers)
	ctx := context.Background()

	existing := &models.User{ID: "user-1", Email: "taken@example.com"}
	mockUsers.On("GetUserByEmail", ctx, "taken@example.com").Return(existing, nil).Once()

	_, err := service.CreateUser(ctx, &models.CreateUserRequest{
		Email:    "taken@example.com",
		Password: "temp-password",
		Role:     models.RoleMentee,
	})

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	mockUsers.AssertNotCalled(t, "InsertUser",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminService_CreateUser_AdminRoleRejected(t *testing.T) {
	service := services.NewAdminService(new(MockUserStore))

	_, err := service.CreateUser(context.Background(), &models.CreateUserRequest{
		Email:    "new@example.com",
		Password: "temp-password",
		Role:     models.RoleAdmin,
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestAdminService_DeleteUser(t *testing.T) {
	mockUsers := new(MockUserStore)
	service := services.NewAdminService(mockUsers)
	ctx := context.Background()
	session := &models.UserSession{UserID: "admin-1", Role: models.RoleAdmin}

	target := &models.User{ID: "user-1", Role: models.RoleMentee}
	mockUsers.On("GetUserByID", ctx, "user-1").Return(target, nil).Once()
	mockUsers.On("DeleteUser", ctx, "user-1").Return(nil).Once()

	err := service.DeleteUser(ctx, session, "user-1")

	assert.NoError(t, err)
	mockUsers.AssertExpectations(t)
}

func TestAdminService_DeleteUser_SelfDeletionBlocked(t *testing.T) {
	mockUsers := new(MockUserStore)
	service := services.NewAdminService(mockUsers)
	session := &models.UserSession{UserID: "admin-1", Role: models.RoleAdmin}

	err := service.DeleteUser(context.Background(), session, "admin-1")

	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)
	mockUsers.AssertNotCalled(t, "DeleteUser", mock.Anything, mock.Anything)
}

func TestAdminService_DeleteUser_AdminTargetBlocked(t *testing.T) {
	mockUsers := new(MockUserStore)
	service := services.NewAdminService(mockUsers)
	ctx := context.Background()
	session := &models.UserSession{UserID: "admin-1", Role: models.RoleAdmin}

	target := &models.User{ID: "admin-2", Role: models.RoleAdmin}
	mockUsers.On("GetUserByID", ctx, "admin-2").Return(target, nil).Once()

	err := service.DeleteUser(ctx, session, "admin-2")

	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)
	mockUsers.AssertNotCalled(t, "DeleteUser", mock.Anything, mock.Anything)
}
