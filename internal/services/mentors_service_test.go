package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mentorlink/mentorlink-api/internal/cache"
	"github.com/mentorlink/mentorlink-api/internal/models"
	"github.com/mentorlink/mentorlink-api/internal/services"
	apperrors "github.com/mentorlink/mentorlink-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMentorsService_ListMentors_FromCache(t *testing.T) {
	mockDirectory := new(MockDirectoryCache)
	mockUsers := new(MockUserStore)
	service := services.NewMentorsService(mockDirectory, mockUsers, false)

	entries := []*cache.DirectoryEntry{{UserID: "mentor-1", Email: "mentor@example.com"}}
	mockDirectory.On("Get").Return(entries, nil).Once()

	got, err := service.ListMentors(context.Background(), false)

	require.NoError(t, err)
	assert.Len(t, got, 1)
	mockUsers.AssertNotCalled(t, "ListMentors", mock.Anything)
	mockDirectory.AssertNotCalled(t, "ForceRefresh")
}

func TestMentorsService_ListMentors_ForceRefresh(t *testing.T) {
	mockDirectory := new(MockDirectoryCache)
	service := services.NewMentorsService(mockDirectory, new(MockUserStore), false)

	entries := []*cache.DirectoryEntry{{UserID: "mentor-1"}}
	mockDirectory.On("ForceRefresh").Return(entries, nil).Once()

	got, err := service.ListMentors(context.Background(), true)

	require.NoError(t, err)
	assert.Len(t, got, 1)
	mockDirectory.AssertNotCalled(t, "Get")
}

func TestMentorsService_ListMentors_CacheDisabledReadsDatabase(t *testing.T) {
	mockDirectory := new(MockDirectoryCache)
	mockUsers := new(MockUserStore)
	service := services.NewMentorsService(mockDirectory, mockUsers, true)
	ctx := context.Background()

	mentors := []*models.User{{ID: "mentor-1", Email: "mentor@example.com"}}
	profiles := map[string]*models.Profile{
		"mentor-1": {UserID: "mentor-1", Name: "Ada"},
	}
	mockUsers.On("ListMentors", ctx).Return(mentors, profiles, nil).Once()

	got, err := service.ListMentors(ctx, false)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "mentor@example.com", got[0].Email)
	require.NotNil(t, got[0].Profile)
	assert.Equal(t, "Ada", got[0].Profile.Name)
	mockDirectory.AssertNotCalled(t, "Get")
}

func TestMentorsService_GetMentor(t *testing.T) {
	mockDirectory := new(MockDirectoryCache)
	service := services.NewMentorsService(mockDirectory, new(MockUserStore), false)

	entry := &cache.DirectoryEntry{UserID: "mentor-1"}
	mockDirectory.On("GetByID", "mentor-1").Return(entry, nil).Once()

	got, err := service.GetMentor(context.Background(), "mentor-1")

	require.NoError(t, err)
	assert.Equal(t, "mentor-1", got.UserID)
}

func TestMentorsService_GetMentor_NotFound(t *testing.T) {
	mockDirectory := new(MockDirectoryCache)
	service := services.NewMentorsService(mockDirectory, new(MockUserStore), false)

	mockDirectory.On("GetByID", "ghost").Return(nil, errors.New("entry not in cache")).Once()

	_, err := service.GetMentor(context.Background(), "ghost")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
