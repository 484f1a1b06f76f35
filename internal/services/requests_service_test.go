package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mentorlink/mentorlink-api/internal/models"
	"github.com/mentorlink/mentorlink-api/internal/services"
	apperrors "github.com/mentorlink/mentorlink-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func pendingRequest(id, mentorID, menteeID string) *models.MentorshipRequest {
	return &models.MentorshipRequest{
		ID:       id,
		MentorID: mentorID,
		MenteeID: menteeID,
		Status:   models.StatusPending,
	}
}

func TestRequestsService_CreateRequest(t *testing.T) {
	mockUsers := new(MockUserStore)
	mockRequests := new(MockRequestStore)
	service := services.NewRequestsService(mockUsers, mockRequests, new(MockScheduler))
	ctx := context.Background()

	mentor := &models.User{ID: "mentor-1", Role: models.RoleMentor, IsActive: true}
	created := pendingRequest("req-1", "mentor-1", "mentee-1")

	mockUsers.On("GetUserByID", ctx, "mentor-1").Return(mentor, nil).Once()
	mockRequests.On("HasPendingRequest", ctx, "mentor-1", "mentee-1").Return(false, nil).Once()
	mockRequests.On("InsertMentorshipRequest", ctx, "mentor-1", "mentee-1", "hi").Return(created, nil).Once()

	request, err := service.CreateRequest(ctx, "mentee-1", &models.CreateRequestPayload{
		MentorID: "mentor-1",
		Message:  "hi",
	})

	assert.NoError(t, err)
	assert.Equal(t, models.StatusPending, request.Status)
	mockRequests.AssertExpectations(t)
}

func TestRequestsService_CreateRequest_DuplicatePending(t *testing.T) {
	mockUsers := new(MockUserStore)
	mockRequests := new(MockRequestStore)
	service := services.NewRequestsService(mockUsers, mockRequests, new(MockScheduler))
	ctx := context.Background()

	mentor := &models.User{ID: "mentor-1", Role: models.RoleMentor, IsActive: true}
	mockUsers.On("GetUserByID", ctx, "mentor-1").Return(mentor, nil).Once()
	mockRequests.On("HasPendingRequest", ctx, "mentor-1", "mentee-1").Return(true, nil).Once()

	_, err := service.CreateRequest(ctx, "mentee-1", &models.CreateRequestPayload{MentorID: "mentor-1"})

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	mockRequests.AssertNotCalled(t, "InsertMentorshipRequest")
}

func TestRequestsService_CreateRequest_SelfRequest(t *testing.T) {
	service := services.NewRequestsService(new(MockUserStore), new(MockRequestStore), new(MockScheduler))

	_, err := service.CreateRequest(context.Background(), "user-1", &models.CreateRequestPayload{MentorID: "user-1"})

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestRequestsService_CreateRequest_TargetNotMentor(t *testing.T) {
	mockUsers := new(MockUserStore)
	mockRequests := new(MockRequestStore)
	service := services.NewRequestsService(mockUsers, mockRequests, new(MockScheduler))
	ctx := context.Background()

	mentee := &models.User{ID: "mentee-2", Role: models.RoleMentee, IsActive: true}
	mockUsers.On("GetUserByID", ctx, "mentee-2").Return(mentee, nil).Once()

	_, err := service.CreateRequest(ctx, "mentee-1", &models.CreateRequestPayload{MentorID: "mentee-2"})

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mockRequests.AssertNotCalled(t, "InsertMentorshipRequest")
}

func TestRequestsService_AcceptRequest(t *testing.T) {
	mockUsers := new(MockUserStore)
	mockRequests := new(MockRequestStore)
	mockScheduler := new(MockScheduler)
	service := services.NewRequestsService(mockUsers, mockRequests, mockScheduler)
	ctx := context.Background()

	request := pendingRequest("req-1", "mentor-1", "mentee-1")
	session := &models.Session{ID: "sess-1", MentorID: "mentor-1", MenteeID: "mentee-1"}
	accepted := &models.MentorshipRequest{ID: "req-1", MentorID: "mentor-1", MenteeID: "mentee-1", Status: models.StatusAccepted}

	mockRequests.On("GetMentorshipRequest", ctx, "req-1").Return(request, nil).Once()
	mockScheduler.On("ScheduleSession", ctx, request).Return(session, nil).Once()
	mockRequests.On("UpdateRequestStatus", ctx, "req-1", models.StatusPending, models.StatusAccepted).Return(accepted, nil).Once()

	resp, err := service.AcceptRequest(ctx, "mentor-1", "req-1")

	assert.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, resp.Request.Status)
	assert.Equal(t, "sess-1", resp.Session.ID)
	mockScheduler.AssertExpectations(t)
	mockRequests.AssertExpectations(t)
}

func TestRequestsService_AcceptRequest_SchedulerFailureKeepsPending(t *testing.T) {
	mockUsers := new(MockUserStore)
	mockRequests := new(MockRequestStore)
	mockScheduler := new(MockScheduler)
	service := services.NewRequestsService(mockUsers, mockRequests, mockScheduler)
	ctx := context.Background()

	request := pendingRequest("req-1", "mentor-1", "mentee-1")

	mockRequests.On("GetMentorshipRequest", ctx, "req-1").Return(request, nil).Once()
	mockScheduler.On("ScheduleSession", ctx, request).
		Return(nil, apperrors.CollaboratorError("google_calendar", errors.New("quota exceeded"))).Once()

	_, err := service.AcceptRequest(ctx, "mentor-1", "req-1")

	assert.ErrorIs(t, err, apperrors.ErrCollaborator)
	// The status flip must never run when scheduling fails
	mockRequests.AssertNotCalled(t, "UpdateRequestStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestsService_AcceptRequest_WrongMentor(t *testing.T) {
	mockRequests := new(MockRequestStore)
	mockScheduler := new(MockScheduler)
	service := services.NewRequestsService(new(MockUserStore), mockRequests, mockScheduler)
	ctx := context.Background()

	request := pendingRequest("req-1", "mentor-1", "mentee-1")
	mockRequests.On("GetMentorshipRequest", ctx, "req-1").Return(request, nil).Once()

	_, err := service.AcceptRequest(ctx, "mentor-2", "req-1")

	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)
	mockScheduler.AssertNotCalled(t, "ScheduleSession")
}

func TestRequestsService_AcceptRequest_AlreadyTerminal(t *testing.T) {
	mockRequests := new(MockRequestStore)
	mockScheduler := new(MockScheduler)
	service := services.NewRequestsService(new(MockUserStore), mockRequests, mockScheduler)
	ctx := context.Background()

	request := &models.MentorshipRequest{ID: "req-1", MentorID: "mentor-1", Status: models.StatusRejected}
	mockRequests.On("GetMentorshipRequest", ctx, "req-1").Return(request, nil).Once()

	_, err := service.AcceptRequest(ctx, "mentor-1", "req-1")

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	mockScheduler.AssertNotCalled(t, "ScheduleSession")
}

func TestRequestsService_RejectRequest(t *testing.T) {
	mockRequests := new(MockRequestStore)
	service := services.NewRequestsService(new(MockUserStore), mockRequests, new(MockScheduler))
	ctx := context.Background()

	request := pendingRequest("req-1", "mentor-1", "mentee-1")
	rejected := &models.MentorshipRequest{ID: "req-1", MentorID: "mentor-1", Status: models.StatusRejected}

	mockRequests.On("GetMentorshipRequest", ctx, "req-1").Return(request, nil).Once()
	mockRequests.On("UpdateRequestStatus", ctx, "req-1", models.StatusPending, models.StatusRejected).Return(rejected, nil).Once()

	updated, err := service.RejectRequest(ctx, "mentor-1", "req-1")

	assert.NoError(t, err)
	assert.Equal(t, models.StatusRejected, updated.Status)
	mockRequests.AssertExpectations(t)
}

func TestRequestsService_SweepExpired(t *testing.T) {
	mockRequests := new(MockRequestStore)
	service := services.NewRequestsService(new(MockUserStore), mockRequests, new(MockScheduler))
	ctx := context.Background()

	mockRequests.On("RejectExpiredRequests", ctx, mock.MatchedBy(func(cutoff time.Time) bool {
		return time.Since(cutoff) > 71*time.Hour && time.Since(cutoff) < 73*time.Hour
	})).Return(int64(3), nil).Once()

	swept, err := service.SweepExpired(ctx, 72*time.Hour)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), swept)
	mockRequests.AssertExpectations(t)
}
