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

const sessionColumns = `s.sessionid, s.mentorid, s.menteeid, s.start_at, s.end_at,
		s.meet_link, s.created_at,
		mentor.email AS mentor_email, mentee.email AS mentee_email`

const sessionJoins = `
		JOIN users mentor ON mentor.userid = s.mentorid
		JOIN users mentee ON mentee.userid = s.menteeid`

// InsertSession creates a session row and returns it with both
// participant emails joined in
func (c *Client) InsertSession(ctx context.Context, mentorID, menteeID string, startAt, endAt time.Time, meetLink string) (*models.Session, error) {
	start := time.Now()
	operation := "insertSession"

	query := fmt.Sprintf(`
		WITH inserted AS (
			INSERT INTO session (mentorid, menteeid, start_at, end_at, meet_link)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING *
		)
		SELECT %s FROM inserted s %s`, sessionColumns, sessionJoins)

	session, err := models.ScanSession(c.pool.QueryRow(ctx, query, mentorID, menteeID, startAt, endAt, meetLink))
	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to insert session: %w", err)
	}

	recordMetrics(operation, "success", duration)
	metrics.SessionsCreated.Inc()
	logger.LogAPICall("postgres", operation, "success", duration,
		zap.String("mentor_id", mentorID), zap.String("mentee_id", menteeID))
	return session, nil
}

// GetSession fetches a session by ID
func (c *Client) GetSession(ctx context.Context, id string) (*models.Session, error) {
	start := time.Now()
	operation := "getSession"

	query := fmt.Sprintf(`
		SELECT %s FROM session s %s
		WHERE s.sessionid = $1`, sessionColumns, sessionJoins)

	session, err := models.ScanSession(c.pool.QueryRow(ctx, query, id))
	duration := metrics.MeasureDuration(start)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			recordMetrics(operation, "not_found", duration)
			return nil, apperrors.NotFoundError("session")
		}
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return session, nil
}

// ListSessionsByUser fetches every session the user participates in,
// on either side, soonest start first
func (c *Client) ListSessionsByUser(ctx context.Context, userID string) ([]*models.Session, error) {
	start := time.Now()
	operation := "listSessionsByUser"

	query := fmt.Sprintf(`
		SELECT %s FROM session s %s
		WHERE s.mentorid = $1 OR s.menteeid = $1
		ORDER BY s.start_at ASC`, sessionColumns, sessionJoins)

	rows, err := c.pool.Query(ctx, query, userID)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}

	sessions, err := models.ScanSessions(rows)
	duration := metrics.MeasureDuration(start)
	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to scan sessions: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return sessions, nil
}

// ListSessionsStartingBetween fetches sessions whose start falls inside
// the window, for the reminder sweep
func (c *Client) ListSessionsStartingBetween(ctx context.Context, from, to time.Time) ([]*models.Session, error) {
	start := time.Now()
	operation := "listSessionsStartingBetween"

	query := fmt.Sprintf(`
		SELECT %s FROM session s %s
		WHERE s.start_at >= $1 AND s.start_at < $2 AND NOT s.reminder_sent
		ORDER BY s.start_at ASC`, sessionColumns, sessionJoins)

	rows, err := c.pool.Query(ctx, query, from, to)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query upcoming sessions: %w", err)
	}

	sessions, err := models.ScanSessions(rows)
	duration := metrics.MeasureDuration(start)
	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to scan upcoming sessions: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return sessions, nil
}

// MarkReminderSent flags a session so the reminder sweep does not mail
// its participants twice
func (c *Client) MarkReminderSent(ctx context.Context, sessionID string) error {
	start := time.Now()
	operation := "markReminderSent"

	_, err := c.pool.Exec(ctx, `
		UPDATE session SET reminder_sent = true WHERE sessionid = $1`, sessionID)
	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to mark reminder sent: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return nil
}

// CountSessionsByUser counts the sessions the user participates in
func (c *Client) CountSessionsByUser(ctx context.Context, userID string) (int, error) {
	start := time.Now()
	operation := "countSessionsByUser"

	var count int
	err := c.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM session
		WHERE mentorid = $1 OR menteeid = $1`, userID).Scan(&count)
	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return count, nil
}
