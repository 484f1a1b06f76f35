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

const requestColumns = `r.mentorshiprequestid, r.mentorid, r.menteeid, r.status,
		r.message, r.created_at, r.updated_at, u.email AS mentee_email`

// InsertMentorshipRequest creates a PENDING request from a mentee
func (c *Client) InsertMentorshipRequest(ctx context.Context, mentorID, menteeID, message string) (*models.MentorshipRequest, error) {
	start := time.Now()
	operation := "insertMentorshipRequest"

	query := fmt.Sprintf(`
		WITH inserted AS (
			INSERT INTO mentorshiprequest (mentorid, menteeid, status, message)
			VALUES ($1, $2, 'PENDING', $3)
			RETURNING *
		)
		SELECT %s FROM inserted r
		JOIN users u ON u.userid = r.menteeid`, requestColumns)

	request, err := models.ScanMentorshipRequest(c.pool.QueryRow(ctx, query, mentorID, menteeID, message))
	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to insert mentorship request: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration,
		zap.String("mentor_id", mentorID), zap.String("mentee_id", menteeID))
	return request, nil
}

// GetMentorshipRequest fetches a request by ID
func (c *Client) GetMentorshipRequest(ctx context.Context, id string) (*models.MentorshipRequest, error) {
	start := time.Now()
	operation := "getMentorshipRequest"

	query := fmt.Sprintf(`
		SELECT %s FROM mentorshiprequest r
		JOIN users u ON u.userid = r.menteeid
		WHERE r.mentorshiprequestid = $1`, requestColumns)

	request, err := models.ScanMentorshipRequest(c.pool.QueryRow(ctx, query, id))
	duration := metrics.MeasureDuration(start)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			recordMetrics(operation, "not_found", duration)
			return nil, apperrors.NotFoundError("mentorship request")
		}
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query mentorship request: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return request, nil
}

// ListRequestsByMentor fetches a mentor's incoming requests. A status
// filter of "" returns all of them.
func (c *Client) ListRequestsByMentor(ctx context.Context, mentorID string, status models.RequestStatus) ([]*models.MentorshipRequest, error) {
	return c.listRequests(ctx, "listRequestsByMentor", "r.mentorid", mentorID, status)
}

// ListRequestsByMentee fetches the requests a mentee has sent
func (c *Client) ListRequestsByMentee(ctx context.Context, menteeID string, status models.RequestStatus) ([]*models.MentorshipRequest, error) {
	return c.listRequests(ctx, "listRequestsByMentee", "r.menteeid", menteeID, status)
}

func (c *Client) listRequests(ctx context.Context, operation, column, id string, status models.RequestStatus) ([]*models.MentorshipRequest, error) {
	start := time.Now()

	query := fmt.Sprintf(`
		SELECT %s FROM mentorshiprequest r
		JOIN users u ON u.userid = r.menteeid
		WHERE %s = $1 AND ($2 = '' OR r.status = $2)
		ORDER BY r.created_at DESC`, requestColumns, column)

	rows, err := c.pool.Query(ctx, query, id, string(status))
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query mentorship requests: %w", err)
	}

	requests, err := models.ScanMentorshipRequests(rows)
	duration := metrics.MeasureDuration(start)
	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to scan mentorship requests: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return requests, nil
}

// HasPendingRequest reports whether the mentee already has a PENDING
// request towards the mentor
func (c *Client) HasPendingRequest(ctx context.Context, mentorID, menteeID string) (bool, error) {
	start := time.Now()
	operation := "hasPendingRequest"

	var exists bool
	err := c.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM mentorshiprequest
			WHERE mentorid = $1 AND menteeid = $2 AND status = 'PENDING'
		)`, mentorID, menteeID).Scan(&exists)
	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return false, fmt.Errorf("failed to check pending request: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return exists, nil
}

// UpdateRequestStatus transitions a request out of PENDING. The WHERE
// clause enforces the transition at the database level so two
// concurrent decisions cannot both win.
func (c *Client) UpdateRequestStatus(ctx context.Context, id string, from, to models.RequestStatus) (*models.MentorshipRequest, error) {
	start := time.Now()
	operation := "updateRequestStatus"

	query := fmt.Sprintf(`
		WITH updated AS (
			UPDATE mentorshiprequest
			SET status = $3, updated_at = now()
			WHERE mentorshiprequestid = $1 AND status = $2
			RETURNING *
		)
		SELECT %s FROM updated r
		JOIN users u ON u.userid = r.menteeid`, requestColumns)

	request, err := models.ScanMentorshipRequest(c.pool.QueryRow(ctx, query, id, from, to))
	duration := metrics.MeasureDuration(start)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			recordMetrics(operation, "conflict", duration)
			return nil, apperrors.ConflictError("request is no longer " + string(from))
		}
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to update request status: %w", err)
	}

	recordMetrics(operation, "success", duration)
	metrics.RequestTransitions.WithLabelValues(string(from), string(to)).Inc()
	return request, nil
}

// RejectExpiredRequests rejects PENDING requests older than the cutoff
// and returns how many were swept
func (c *Client) RejectExpiredRequests(ctx context.Context, cutoff time.Time) (int64, error) {
	start := time.Now()
	operation := "rejectExpiredRequests"

	tag, err := c.pool.Exec(ctx, `
		UPDATE mentorshiprequest
		SET status = 'REJECTED', updated_at = now()
		WHERE status = 'PENDING' AND created_at < $1`, cutoff)
	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return 0, fmt.Errorf("failed to reject expired requests: %w", err)
	}

	recordMetrics(operation, "success", duration)
	if swept := tag.RowsAffected(); swept > 0 {
		logger.LogAPICall("postgres", operation, "success", duration, zap.Int64("swept", swept))
		return swept, nil
	}
	return 0, nil
}

// CountRequestsByMentor counts a mentor's requests in a given status
func (c *Client) CountRequestsByMentor(ctx context.Context, mentorID string, status models.RequestStatus) (int, error) {
	return c.countRequests(ctx, "countRequestsByMentor", "mentorid", mentorID, status)
}

// CountRequestsByMentee counts a mentee's requests in a given status
func (c *Client) CountRequestsByMentee(ctx context.Context, menteeID string, status models.RequestStatus) (int, error) {
	return c.countRequests(ctx, "countRequestsByMentee", "menteeid", menteeID, status)
}

func (c *Client) countRequests(ctx context.Context, operation, column, id string, status models.RequestStatus) (int, error) {
	start := time.Now()

	query := fmt.Sprintf(`
		SELECT COUNT(*) FROM mentorshiprequest
		WHERE %s = $1 AND ($2 = '' OR status = $2)`, column)

	var count int
	err := c.pool.QueryRow(ctx, query, id, string(status)).Scan(&count)
	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return 0, fmt.Errorf("failed to count mentorship requests: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return count, nil
}
