package services

import (
	"context"

	"github.com/mentorlink/mentorlink-api/internal/models"
	"github.com/mentorlink/mentorlink-api/internal/repository"
	apperrors "github.com/mentorlink/mentorlink-api/pkg/errors"
	"github.com/mentorlink/mentorlink-api/pkg/logger"
	"github.com/mentorlink/mentorlink-api/pkg/metrics"
	"go.uber.org/zap"
)

// AvailabilityService manages mentor availability windows
type AvailabilityService struct {
	store repository.AvailabilityStore
}

// NewAvailabilityService creates a new AvailabilityService
func NewAvailabilityService(store repository.AvailabilityStore) *AvailabilityService {
	return &AvailabilityService{store: store}
}

// AddAvailability records a new window after checking the bounds. A
// window whose end does not come strictly after its start is rejected
// and nothing is persisted.
func (s *AvailabilityService) AddAvailability(ctx context.Context, mentorID string, req *models.AddAvailabilityRequest) (*models.Availability, error) {
	if !req.EndAt.After(req.StartAt) {
		metrics.AvailabilityChanges.WithLabelValues("add", "rejected").Inc()
		return nil, apperrors.InvalidInputError("endAt", "must be after startAt")
	}

	slot, err := s.store.InsertAvailability(ctx, mentorID, req.StartAt, req.EndAt)
	if err != nil {
		metrics.AvailabilityChanges.WithLabelValues("add", "error").Inc()
		return nil, err
	}

	metrics.AvailabilityChanges.WithLabelValues("add", "success").Inc()
	logger.Info("Availability window added",
		zap.String("mentor_id", mentorID),
		zap.Time("start_at", slot.StartAt),
		zap.Time("end_at", slot.EndAt))
	return slot, nil
}

// ListAvailability returns the mentor's windows, earliest first
func (s *AvailabilityService) ListAvailability(ctx context.Context, mentorID string) (*models.AvailabilityListResponse, error) {
	slots, err := s.store.ListAvailabilityByMentor(ctx, mentorID)
	if err != nil {
		return nil, err
	}

	result := make([]models.Availability, 0, len(slots))
	for _, slot := range slots {
		result = append(result, *slot)
	}

	return &models.AvailabilityListResponse{
		Slots: result,
		Total: len(result),
	}, nil
}

// DeleteAvailability removes one of the caller's own windows
func (s *AvailabilityService) DeleteAvailability(ctx context.Context, mentorID, availabilityID string) error {
	if err := s.store.DeleteAvailability(ctx, availabilityID, mentorID); err != nil {
		metrics.AvailabilityChanges.WithLabelValues("delete", "error").Inc()
		return err
	}

	metrics.AvailabilityChanges.WithLabelValues("delete", "success").Inc()
	logger.Info("Availability window deleted",
		zap.String("mentor_id", mentorID),
		zap.String("availability_id", availabilityID))
	return nil
}
