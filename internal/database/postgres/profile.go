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

const profileColumns = `userid, name, bio, skills, goals, profile_image_url, updated_at`

// GetProfile fetches the profile belonging to a user
func (c *Client) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	start := time.Now()
	operation := "getProfile"

	query := fmt.Sprintf(`SELECT %s FROM profile WHERE userid = $1`, profileColumns)

	profile, err := models.ScanProfile(c.pool.QueryRow(ctx, query, userID))
	duration := metrics.MeasureDuration(start)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			recordMetrics(operation, "not_found", duration)
			return nil, apperrors.NotFoundError("profile")
		}
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return profile, nil
}

// UpsertProfile inserts the profile row or replaces its text fields on
// conflict. The image URL is only overwritten when a new one is given,
// so a failed upload never erases a previously stored picture.
func (c *Client) UpsertProfile(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	start := time.Now()
	operation := "upsertProfile"

	query := fmt.Sprintf(`
		INSERT INTO profile (userid, name, bio, skills, goals, profile_image_url, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (userid) DO UPDATE SET
			name = EXCLUDED.name,
			bio = EXCLUDED.bio,
			skills = EXCLUDED.skills,
			goals = EXCLUDED.goals,
			profile_image_url = COALESCE(EXCLUDED.profile_image_url, profile.profile_image_url),
			updated_at = now()
		RETURNING %s`, profileColumns)

	saved, err := models.ScanProfile(c.pool.QueryRow(ctx, query,
		p.UserID, p.Name, p.Bio, p.Skills, p.Goals, p.ProfileImageURL))
	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.String("user_id", p.UserID))
	return saved, nil
}

// UpdateProfileImage stores a newly uploaded picture URL. The row is
// created if the user has not saved any profile text yet.
func (c *Client) UpdateProfileImage(ctx context.Context, userID, imageURL string) (*models.Profile, error) {
	start := time.Now()
	operation := "updateProfileImage"

	query := fmt.Sprintf(`
		INSERT INTO profile (userid, profile_image_url, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (userid) DO UPDATE SET
			profile_image_url = EXCLUDED.profile_image_url,
			updated_at = now()
		RETURNING %s`, profileColumns)

	saved, err := models.ScanProfile(c.pool.QueryRow(ctx, query, userID, imageURL))
	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to update profile image: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.String("user_id", userID))
	return saved, nil
}
