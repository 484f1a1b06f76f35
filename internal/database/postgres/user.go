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

const userColumns = `userid, email, password_hash, role, is_active,
		must_change_password, profile_completed, created_at, updated_at`

// GetUserByEmail fetches a user by email
func (c *Client) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return c.getUserByField(ctx, "getUserByEmail", "email = $1", email)
}

// GetUserByID fetches a user by ID
func (c *Client) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return c.getUserByField(ctx, "getUserByID", "userid = $1", id)
}

func (c *Client) getUserByField(ctx context.Context, operation, whereClause string, arg interface{}) (*models.User, error) {
	start := time.Now()

	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s`, userColumns, whereClause)

	user, err := models.ScanUser(c.pool.QueryRow(ctx, query, arg))
	duration := metrics.MeasureDuration(start)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			recordMetrics(operation, "not_found", duration)
			return nil, apperrors.NotFoundError("user")
		}
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return user, nil
}

// ListUsers fetches all users, newest first
func (c *Client) ListUsers(ctx context.Context) ([]*models.User, error) {
	start := time.Now()
	operation := "listUsers"

	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY created_at DESC`, userColumns)

	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query users: %w", err)
	}

	users, err := models.ScanUsers(rows)
	duration := metrics.MeasureDuration(start)
	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to scan users: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int("count", len(users)))
	return users, nil
}

// ListMentors fetches active mentor accounts joined with their profiles,
// for the mentee-facing directory
func (c *Client) ListMentors(ctx context.Context) ([]*models.User, map[string]*models.Profile, error) {
	start := time.Now()
	operation := "listMentors"

	query := fmt.Sprintf(`
		SELECT %s FROM users
		WHERE role = 'Mentor' AND is_active
		ORDER BY created_at ASC`, userColumns)

	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, nil, fmt.Errorf("failed to query mentors: %w", err)
	}

	mentors, err := models.ScanUsers(rows)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		return nil, nil, fmt.Errorf("failed to scan mentors: %w", err)
	}

	profileRows, err := c.pool.Query(ctx, `
		SELECT p.userid, p.name, p.bio, p.skills, p.goals, p.profile_image_url, p.updated_at
		FROM profile p
		JOIN users u ON u.userid = p.userid
		WHERE u.role = 'Mentor' AND u.is_active`)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, nil, fmt.Errorf("failed to query mentor profiles: %w", err)
	}
	defer profileRows.Close()

	profiles := make(map[string]*models.Profile)
	for profileRows.Next() {
		profile, scanErr := models.ScanProfile(profileRows)
		if scanErr != nil {
			duration := metrics.MeasureDuration(start)
			recordMetrics(operation, "error", duration)
			return nil, nil, fmt.Errorf("failed to scan mentor profile: %w", scanErr)
		}
		profiles[profile.UserID] = profile
	}
	if err := profileRows.Err(); err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		return nil, nil, fmt.Errorf("error iterating mentor profiles: %w", err)
	}

	duration := metrics.MeasureDuration(start)
	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int("count", len(mentors)))
	return mentors, profiles, nil
}

// InsertUser creates a new account and returns it
func (c *Client) InsertUser(ctx context.Context, email, passwordHash string, role models.Role, mustChangePassword bool) (*models.User, error) {
	start := time.Now()
	operation := "insertUser"

	query := fmt.Sprintf(`
		INSERT INTO users (email, password_hash, role, is_active, must_change_password, profile_completed)
		VALUES ($1, $2, $3, true, $4, false)
		RETURNING %s`, userColumns)

	user, err := models.ScanUser(c.pool.QueryRow(ctx, query, email, passwordHash, role, mustChangePassword))
	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.String("role", string(role)))
	return user, nil
}

// DeleteUser removes an account by ID
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	start := time.Now()
	operation := "deleteUser"

	tag, err := c.pool.Exec(ctx, `DELETE FROM users WHERE userid = $1`, id)
	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		recordMetrics(operation, "not_found", duration)
		return apperrors.NotFoundError("user")
	}

	recordMetrics(operation, "success", duration)
	return nil
}

// UpdateUserPassword replaces the password hash and clears the forced
// password-change flag
func (c *Client) UpdateUserPassword(ctx context.Context, id, passwordHash string) error {
	start := time.Now()
	operation := "updateUserPassword"

	tag, err := c.pool.Exec(ctx, `
		UPDATE users
		SET password_hash = $2, must_change_password = false, updated_at = now()
		WHERE userid = $1`, id, passwordHash)
	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		recordMetrics(operation, "not_found", duration)
		return apperrors.NotFoundError("user")
	}

	recordMetrics(operation, "success", duration)
	return nil
}

// SetProfileCompleted marks the account's profile as completed
func (c *Client) SetProfileCompleted(ctx context.Context, id string) error {
	start := time.Now()
	operation := "setProfileCompleted"

	_, err := c.pool.Exec(ctx, `
		UPDATE users SET profile_completed = true, updated_at = now()
		WHERE userid = $1`, id)
	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to mark profile completed: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return nil
}
