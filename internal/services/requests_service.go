package services

import (
	"context"
	"fmt"
	"time"

	"github.com/mentorlink/mentorlink-api/internal/models"
	"github.com/mentorlink/mentorlink-api/internal/repository"
	apperrors "github.com/mentorlink/mentorlink-api/pkg/errors"
	"github.com/mentorlink/mentorlink-api/pkg/logger"
	"github.com/mentorlink/mentorlink-api/pkg/metrics"
	"go.uber.org/zap"
)

// RequestsService drives the mentorship request lifecycle
type RequestsService struct {
	users     repository.UserStore
	requests  repository.RequestStore
	scheduler SchedulerInterface
}

// NewRequestsService creates a new RequestsService
func NewRequestsService(users repository.UserStore, requests repository.RequestStore, scheduler SchedulerInterface) *RequestsService {
	return &RequestsService{
		users:     users,
		requests:  requests,
		scheduler: scheduler,
	}
}

// CreateRequest opens a PENDING request from a mentee towards a mentor
func (s *RequestsService) CreateRequest(ctx context.Context, menteeID string, req *models.CreateRequestPayload) (*models.MentorshipRequest, error) {
	if req.MentorID == menteeID {
		return nil, apperrors.InvalidInputError("mentorId", "cannot request mentorship from yourself")
	}

	mentor, err := s.users.GetUserByID(ctx, req.MentorID)
	if err != nil {
		return nil, err
	}
	if mentor.Role != models.RoleMentor || !mentor.IsActive {
		return nil, apperrors.NotFoundError("mentor")
	}

	pending, err := s.requests.HasPendingRequest(ctx, req.MentorID, menteeID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, apperrors.ConflictError("a pending request to this mentor already exists")
	}

	request, err := s.requests.InsertMentorshipRequest(ctx, req.MentorID, menteeID, req.Message)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	logger.Info("Mentorship request created",
		zap.String("request_id", request.ID),
		zap.String("mentor_id", req.MentorID),
		zap.String("mentee_id", menteeID))

	return request, nil
}

// ListForMentor returns the mentor's incoming requests
func (s *RequestsService) ListForMentor(ctx context.Context, mentorID string, status models.RequestStatus) (*models.RequestListResponse, error) {
	requests, err := s.requests.ListRequestsByMentor(ctx, mentorID, status)
	if err != nil {
		return nil, err
	}
	return toRequestList(requests), nil
}

// ListForMentee returns the requests the mentee has sent
func (s *RequestsService) ListForMentee(ctx context.Context, menteeID string, status models.RequestStatus) (*models.RequestListResponse, error) {
	requests, err := s.requests.ListRequestsByMentee(ctx, menteeID, status)
	if err != nil {
		return nil, err
	}
	return toRequestList(requests), nil
}

func toRequestList(requests []*models.MentorshipRequest) *models.RequestListResponse {
	result := make([]models.MentorshipRequest, 0, len(requests))
	for _, r := range requests {
		result = append(result, *r)
	}
	return &models.RequestListResponse{Requests: result, Total: len(result)}
}

// AcceptRequest accepts a PENDING request. The session is booked first;
// only once the scheduler succeeds does the request flip to ACCEPTED. A
// scheduling failure therefore leaves the request PENDING and retryable.
func (s *RequestsService) AcceptRequest(ctx context.Context, mentorID, requestID string) (*models.AcceptRequestResponse, error) {
	request, err := s.getOwnedRequest(ctx, mentorID, requestID)
	if err != nil {
		return nil, err
	}

	if !request.Status.CanTransitionTo(models.StatusAccepted) {
		return nil, apperrors.ConflictError(
			fmt.Sprintf("cannot accept request in status %s", request.Status))
	}

	session, err := s.scheduler.ScheduleSession(ctx, request)
	if err != nil {
		logger.Warn("Accept aborted, session could not be scheduled",
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, err
	}

	updated, err := s.requests.UpdateRequestStatus(ctx, requestID, models.StatusPending, models.StatusAccepted)
	if err != nil {
		// The session exists but the flip lost a race. Surface the
		// conflict; the booked session remains valid either way.
		logger.Error("Request accept flip failed after session was booked",
			zap.String("request_id", requestID),
			zap.String("session_id", session.ID),
			zap.Error(err))
		return nil, err
	}

	logger.Info("Mentorship request accepted",
		zap.String("request_id", requestID),
		zap.String("session_id", session.ID))

	return &models.AcceptRequestResponse{Request: updated, Session: session}, nil
}

// RejectRequest rejects a PENDING request. No session side effects.
func (s *RequestsService) RejectRequest(ctx context.Context, mentorID, requestID string) (*models.MentorshipRequest, error) {
	request, err := s.getOwnedRequest(ctx, mentorID, requestID)
	if err != nil {
		return nil, err
	}

	if !request.Status.CanTransitionTo(models.StatusRejected) {
		return nil, apperrors.ConflictError(
			fmt.Sprintf("cannot reject request in status %s", request.Status))
	}

	updated, err := s.requests.UpdateRequestStatus(ctx, requestID, models.StatusPending, models.StatusRejected)
	if err != nil {
		return nil, err
	}

	logger.Info("Mentorship request rejected", zap.String("request_id", requestID))
	return updated, nil
}

// SweepExpired auto-rejects PENDING requests older than maxAge
func (s *RequestsService) SweepExpired(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge)
	swept, err := s.requests.RejectExpiredRequests(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if swept > 0 {
		metrics.RequestsAutoCancelled.Add(float64(swept))
		logger.Info("Expired mentorship requests auto-rejected", zap.Int64("count", swept))
	}
	return swept, nil
}

func (s *RequestsService) getOwnedRequest(ctx context.Context, mentorID, requestID string) (*models.MentorshipRequest, error) {
	request, err := s.requests.GetMentorshipRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.MentorID != mentorID {
		logger.Warn("Access denied to mentorship request",
			zap.String("request_id", requestID),
			zap.String("request_mentor", request.MentorID),
			zap.String("requesting_mentor", mentorID))
		return nil, apperrors.AccessDeniedError("request belongs to another mentor")
	}

	return request, nil
}
