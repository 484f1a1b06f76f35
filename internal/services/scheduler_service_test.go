package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mentorlink/mentorlink-api/config"
	"github.com/mentorlink/mentorlink-api/internal/models"
	"github.com/mentorlink/mentorlink-api/internal/services"
	apperrors "github.com/mentorlink/mentorlink-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func schedulerConfig() *config.Config {
	return &config.Config{
		Scheduler: config.SchedulerConfig{
			SessionLeadMinutes:     5,
			SessionDurationMinutes: 30,
		},
	}
}

func TestSchedulerService_ScheduleSession(t *testing.T) {
	mockUsers := new(MockUserStore)
	mockSessions := new(MockSessionStore)
	mockMeetings := new(MockLinkCreator)
	mockMail := new(MockMailer)
	service := services.NewSchedulerService(mockUsers, mockSessions, mockMeetings, mockMail, schedulerConfig())
	ctx := context.Background()

	mentor := &models.User{ID: "mentor-1", Email: "mentor@example.com", Role: models.RoleMentor}
	mentee := &models.User{ID: "mentee-1", Email: "mentee@example.com", Role: models.RoleMentee}
	request := &models.MentorshipRequest{ID: "req-1", MentorID: "mentor-1", MenteeID: "mentee-1", Status: models.StatusPending}

	mockUsers.On("GetUserByID", ctx, "mentor-1").Return(mentor, nil).Once()
	mockUsers.On("GetUserByID", ctx, "mentee-1").Return(mentee, nil).Once()

	before := time.Now()
	// The window must open about five minutes out and last thirty minutes
	windowOK := func(startAt time.Time) bool {
		lead := startAt.Sub(before)
		return lead >= 5*time.Minute && lead < 5*time.Minute+5*time.Second
	}

	mockMeetings.On("CreateMeeting", ctx, mock.AnythingOfType("string"),
		[]string{"mentor@example.com", "mentee@example.com"},
		mock.MatchedBy(windowOK),
		mock.MatchedBy(func(endAt time.Time) bool { return true }),
	).Return("https://meet.google.com/abc-defg-hij", nil).Once()

	stored := &models.Session{
		ID:          "sess-1",
		MentorID:    "mentor-1",
		MenteeID:    "mentee-1",
		MeetLink:    "https://meet.google.com/abc-defg-hij",
		MentorEmail: "mentor@example.com",
		MenteeEmail: "mentee@example.com",
	}
	mockSessions.On("InsertSession", ctx, "mentor-1", "mentee-1",
		mock.MatchedBy(windowOK),
		mock.MatchedBy(func(endAt time.Time) bool { return true }),
		"https://meet.google.com/abc-defg-hij",
	).Return(stored, nil).Once()

	mockMail.On("Send", "mentor@example.com", mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil).Once()
	mockMail.On("Send", "mentee@example.com", mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil).Once()

	session, err := service.ScheduleSession(ctx, request)

	require.NoError(t, err)
	assert.Equal(t, "sess-1", session.ID)
	assert.Equal(t, "https://meet.google.com/abc-defg-hij", session.MeetLink)

	// Duration check against the actual arguments the store received
	call := mockSessions.Calls[0]
	startAt := call.Arguments.Get(3).(time.Time)
	endAt := call.Arguments.Get(4).(time.Time)
	assert.Equal(t, 30*time.Minute, endAt.Sub(startAt))

	mockMeetings.AssertExpectations(t)
	mockSessions.AssertExpectations(t)
	mockMail.AssertExpectations(t)
}

func TestSchedulerService_ScheduleSession_MeetingFailure(t *testing.T) {
	mockUsers := new(MockUserStore)
	mockSessions := new(MockSessionStore)
	mockMeetings := new(MockLinkCreator)
	mockMail := new(MockMailer)
	service := services.NewSchedulerService(mockUsers, mockSessions, mockMeetings, mockMail, schedulerConfig())
	ctx := context.Background()

	mentor := &models.User{ID: "mentor-1", Email: "mentor@example.com"}
	mentee := &models.User{ID: "mentee-1", Email: "mentee@example.com"}
	request := &models.MentorshipRequest{ID: "req-1", MentorID: "mentor-1", MenteeID: "mentee-1"}

	mockUsers.On("GetUserByID", ctx, "mentor-1").Return(mentor, nil).Once()
	mockUsers.On("GetUserByID", ctx, "mentee-1").Return(mentee, nil).Once()
	mockMeetings.On("CreateMeeting", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("calendar unavailable")).Once()

	_, err := service.ScheduleSession(ctx, request)

	assert.ErrorIs(t, err, apperrors.ErrCollaborator)
	// No session row and no emails when the link was never created
	mockSessions.AssertNotCalled(t, "InsertSession",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockMail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestSchedulerService_ScheduleSession_EmailFailureIsNonFatal(t *testing.T) {
	mockUsers := new(MockUserStore)
	mockSessions := new(MockSessionStore)
	mockMeetings := new(MockLinkCreator)
	mockMail := new(MockMailer)
	service := services.NewSchedulerService(mockUsers, mockSessions, mockMeetings, mockMail, schedulerConfig())
	ctx := context.Background()

	mentor := &models.User{ID: "mentor-1", Email: "mentor@example.com"}
	mentee := &models.User{ID: "mentee-1", Email: "mentee@example.com"}
	request := &models.MentorshipRequest{ID: "req-1", MentorID: "mentor-1", MenteeID: "mentee-1"}

	stored := &models.Session{
		ID:          "sess-1",
		MentorEmail: "mentor@example.com",
		MenteeEmail: "mentee@example.com",
	}

	mockUsers.On("GetUserByID", ctx, "mentor-1").Return(mentor, nil).Once()
	mockUsers.On("GetUserByID", ctx, "mentee-1").Return(mentee, nil).Once()
	mockMeetings.On("CreateMeeting", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("https://meet.google.com/abc", nil).Once()
	mockSessions.On("InsertSession", ctx, "mentor-1", "mentee-1", mock.Anything, mock.Anything, "https://meet.google.com/abc").
		Return(stored, nil).Once()
	mockMail.On("Send", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp down")).Twice()

	session, err := service.ScheduleSession(ctx, request)

	assert.NoError(t, err)
	assert.Equal(t, "sess-1", session.ID)
	mockMail.AssertExpectations(t)
}
