package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mentorlink/mentorlink-api/internal/middleware"
	"github.com/mentorlink/mentorlink-api/internal/models"
	apperrors "github.com/mentorlink/mentorlink-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// mockRequestsService is a mock implementation of services.RequestsServiceInterface
type mockRequestsService struct {
	mock.Mock
}

func (m *mockRequestsService) CreateRequest(ctx context.Context, menteeID string, req *models.CreateRequestPayload) (*models.MentorshipRequest, error) {
	args := m.Called(ctx, menteeID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MentorshipRequest), args.Error(1)
}

func (m *mockRequestsService) ListForMentor(ctx context.Context, mentorID string, status models.RequestStatus) (*models.RequestListResponse, error) {
	args := m.Called(ctx, mentorID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RequestListResponse), args.Error(1)
}

func (m *mockRequestsService) ListForMentee(ctx context.Context, menteeID string, status models.RequestStatus) (*models.RequestListResponse, error) {
	args := m.Called(ctx, menteeID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RequestListResponse), args.Error(1)
}

func (m *mockRequestsService) AcceptRequest(ctx context.Context, mentorID, requestID string) (*models.AcceptRequestResponse, error) {
	args := m.Called(ctx, mentorID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AcceptRequestResponse), args.Error(1)
}

func (m *mockRequestsService) RejectRequest(ctx context.Context, mentorID, requestID string) (*models.MentorshipRequest, error) {
	args := m.Called(ctx, mentorID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MentorshipRequest), args.Error(1)
}

func (m *mockRequestsService) SweepExpired(ctx context.Context, maxAge time.Duration) (int64, error) {
	args := m.Called(ctx, maxAge)
	return args.Get(0).(int64), args.Error(1)
}

// withSession injects a session the way SessionMiddleware would
func withSession(session *models.UserSession) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.SessionContextKey, session)
		c.Next()
	}
}

func mentorSession() *models.UserSession {
	return &models.UserSession{UserID: "mentor-1", Email: "mentor@example.com", Role: models.RoleMentor}
}

func TestRequestsHandler_AcceptRequest(t *testing.T) {
	mockService := new(mockRequestsService)
	handler := NewRequestsHandler(mockService)

	router := gin.New()
	router.Use(withSession(mentorSession()))
	router.POST("/requests/:id/accept", handler.AcceptRequest)

	resp := &models.AcceptRequestResponse{
		Request: &models.MentorshipRequest{ID: "req-1", Status: models.StatusAccepted},
		Session: &models.Session{ID: "sess-1", MeetLink: "https://meet.google.com/abc"},
	}
	mockService.On("AcceptRequest", mock.Anything, "mentor-1", "req-1").Return(resp, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/requests/req-1/accept", http.NoBody)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "sess-1")
	mockService.AssertExpectations(t)
}

func TestRequestsHandler_AcceptRequest_CollaboratorFailure(t *testing.T) {
	mockService := new(mockRequestsService)
	handler := NewRequestsHandler(mockService)

	router := gin.New()
	router.Use(withSession(mentorSession()))
	router.POST("/requests/:id/accept", handler.AcceptRequest)

	mockService.On("AcceptRequest", mock.Anything, "mentor-1", "req-1").
		Return(nil, apperrors.CollaboratorError("google_calendar", assert.AnError)).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/requests/req-1/accept", http.NoBody)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestRequestsHandler_AcceptRequest_AlreadyDecided(t *testing.T) {
	mockService := new(mockRequestsService)
	handler := NewRequestsHandler(mockService)

	router := gin.New()
	router.Use(withSession(mentorSession()))
	router.POST("/requests/:id/accept", handler.AcceptRequest)

	mockService.On("AcceptRequest", mock.Anything, "mentor-1", "req-1").
		Return(nil, apperrors.ConflictError("cannot accept request in status ACCEPTED")).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/requests/req-1/accept", http.NoBody)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRequestsHandler_CreateRequest(t *testing.T) {
	mockService := new(mockRequestsService)
	handler := NewRequestsHandler(mockService)

	router := gin.New()
	router.Use(withSession(&models.UserSession{UserID: "mentee-1", Role: models.RoleMentee}))
	router.POST("/requests", handler.CreateRequest)

	created := &models.MentorshipRequest{ID: "req-1", Status: models.StatusPending}
	mockService.On("CreateRequest", mock.Anything, "mentee-1", mock.MatchedBy(func(p *models.CreateRequestPayload) bool {
		return p.MentorID == "550e8400-e29b-41d4-a716-446655440000"
	})).Return(created, nil).Once()

	body := `{"mentorId":"550e8400-e29b-41d4-a716-446655440000","message":"hello"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/requests", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "PENDING")
}

func TestRequestsHandler_CreateRequest_InvalidBody(t *testing.T) {
	mockService := new(mockRequestsService)
	handler := NewRequestsHandler(mockService)

	router := gin.New()
	router.Use(withSession(&models.UserSession{UserID: "mentee-1", Role: models.RoleMentee}))
	router.POST("/requests", handler.CreateRequest)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/requests", strings.NewReader(`{"mentorId":"not-a-uuid"}`))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "CreateRequest", mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestsHandler_ListMentorRequests_InvalidStatusFilter(t *testing.T) {
	mockService := new(mockRequestsService)
	handler := NewRequestsHandler(mockService)

	router := gin.New()
	router.Use(withSession(mentorSession()))
	router.GET("/requests", handler.ListMentorRequests)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/requests?status=bogus", http.NoBody)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "ListForMentor", mock.Anything, mock.Anything, mock.Anything)
}
