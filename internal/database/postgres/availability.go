package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mentorlink/mentorlink-api/internal/models"
	apperrors "github.com/mentorlink/mentorlink-api/pkg/errors"
	"github.com/mentorlink/mentorlink-api/pkg/logger"
	"github.com/mentorlink/mentorlink-api/pkg/metrics"
	"go.uber.org/zap"
)

const availabilityColumns = `availabilityid, mentorid, start_at, end_at, created_at`

// InsertAvailability records a new availability window for a mentor
func (c *Client) InsertAvailability(ctx context.Context, mentorID string, startAt, endAt time.Time) (*models.Availability, error) {
	start := time.Now()
	operation := "insertAvailability"

	query := fmt.Sprintf(`
		INSERT INTO availability (mentorid, start_at, end_at)
		VALUES ($1, $2, $3)
		RETURNING %s`, availabilityColumns)

	slot, err := models.ScanAvailability(c.pool.QueryRow(ctx, query, mentorID, startAt, endAt))
	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to insert availability: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.String("mentor_id", mentorID))
	return slot, nil
}

// GetAvailability fetches a single availability window
func (c *Client) GetAvailability(ctx context.Context, id string) (*models.Availability, error) {
	start := time.Now()
	operation := "getAvailability"

	query := fmt.Sprintf(`SELECT %s FROM availability WHERE availabilityid = $1`, availabilityColumns)

	slot, err := models.ScanAvailability(c.pool.QueryRow(ctx, query, id))
	duration := metrics.MeasureDuration(start)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			recordMetrics(operation, "not_found", duration)
			return nil, apperrors.NotFoundError("availability")
		}
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query availability: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return slot, nil
}

// ListAvailabilityByMentor fetches a mentor's availability windows,
// earliest start first
func (c *Client) ListAvailabilityByMentor(ctx context.Context, mentorID string) ([]*models.Availability, error) {
	start := time.Now()
	operation := "listAvailabilityByMentor"

	query := fmt.Sprintf(`
		SELECT %s FROM availability
		WHERE mentorid = $1
		ORDER BY start_at ASC`, availabilityColumns)

	rows, err := c.pool.Query(ctx, query, mentorID)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query availability: %w", err)
	}

	slots, err := models.ScanAvailabilities(rows)
	duration := metrics.MeasureDuration(start)
	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to scan availability: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return slots, nil
}

// DeleteAvailability removes a window, scoped to its owner so a mentor
// cannot delete another mentor's slot
func (c *Client) DeleteAvailability(ctx context.Context, id, mentorID string) error {
	start := time.Now()
	operation := "deleteAvailability"

	tag, err := c.pool.Exec(ctx, `
		DELETE FROM availability
		WHERE availabilityid = $1 AND mentorid = $2`, id, mentorID)
	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to delete availability: %w", err)
	}
	if tag.RowsAffected() == 0 {
		recordMetrics(operation, "not_found", duration)
		return apperrors.NotFoundError("availability")
	}

	recordMetrics(operation, "success", duration)
	return nil
}
