package services

import (
	"context"
	"fmt"

	"github.com/mentorlink/mentorlink-api/internal/models"
	"github.com/mentorlink/mentorlink-api/internal/repository"
	apperrors "github.com/mentorlink/mentorlink-api/pkg/errors"
	"github.com/mentorlink/mentorlink-api/pkg/logger"
	"github.com/mentorlink/mentorlink-api/pkg/metrics"
	"go.uber.org/zap"
)

// ImageStorage is the object storage surface the profile service needs
type ImageStorage interface {
	UploadImage(ctx context.Context, imageData, key, contentType string) (string, error)
	GenerateFileName(ownerID, originalFileName string) string
	ValidateImageType(contentType string) error
	ValidateImageSize(imageData string) error
}

// ProfileService handles profile reads and upserts
type ProfileService struct {
	users    repository.UserStore
	profiles repository.ProfileStore
	storage  ImageStorage
}

// NewProfileService creates a new ProfileService
func NewProfileService(users repository.UserStore, profiles repository.ProfileStore, storage ImageStorage) *ProfileService {
	return &ProfileService{
		users:    users,
		profiles: profiles,
		storage:  storage,
	}
}

// GetProfile fetches the profile owned by the user
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	return s.profiles.GetProfile(ctx, userID)
}

// SaveProfile upserts the caller's profile. The image upload is attempted
// first so the stored row can reference the new URL, but an upload failure
// does not fail the save: the text fields are committed and the response
// reports the skipped image so the client can retry it.
func (s *ProfileService) SaveProfile(ctx context.Context, userID string, req *models.SaveProfileRequest) (*models.SaveProfileResponse, error) {
	resp := &models.SaveProfileResponse{}

	var imageURL *string
	if req.Image != "" {
		url, err := s.uploadImage(ctx, userID, req)
		if err != nil {
			metrics.ProfilePictureUploads.WithLabelValues("error").Inc()
			logger.Warn("Profile image upload failed, saving profile without it",
				zap.String("user_id", userID),
				zap.Error(err))
			resp.ImageFailed = true
			resp.ImageError = err.Error()
		} else {
			metrics.ProfilePictureUploads.WithLabelValues("success").Inc()
			imageURL = &url
		}
	}

	profile := &models.Profile{
		UserID:          userID,
		Name:            req.Name,
		Bio:             req.Bio,
		Skills:          req.Skills,
		Goals:           req.Goals,
		ProfileImageURL: imageURL,
	}

	saved, err := s.profiles.UpsertProfile(ctx, profile)
	if err != nil {
		metrics.ProfileUpdates.WithLabelValues("error").Inc()
		logger.Error("Failed to upsert profile", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	if err := s.users.SetProfileCompleted(ctx, userID); err != nil {
		// The profile row is committed; the flag catches up on the next save
		logger.Warn("Failed to mark profile completed", zap.String("user_id", userID), zap.Error(err))
	}

	metrics.ProfileUpdates.WithLabelValues("success").Inc()
	logger.Info("Profile saved",
		zap.String("user_id", userID),
		zap.Bool("image_failed", resp.ImageFailed))

	resp.Profile = saved
	return resp, nil
}

// UploadPicture handles the dedicated picture endpoint. Unlike SaveProfile
// there is nothing else to commit, so a storage failure fails the call.
func (s *ProfileService) UploadPicture(ctx context.Context, userID string, req *models.UploadPictureRequest) (*models.UploadPictureResponse, error) {
	if s.storage == nil {
		return nil, apperrors.CollaboratorError("object_storage", fmt.Errorf("image storage is not configured"))
	}
	if err := s.storage.ValidateImageType(req.ImageContentType); err != nil {
		return nil, apperrors.InvalidInputError("imageContentType", err.Error())
	}
	if err := s.storage.ValidateImageSize(req.Image); err != nil {
		return nil, apperrors.InvalidInputError("image", err.Error())
	}

	key := s.storage.GenerateFileName(userID, req.ImageFileName)
	url, err := s.storage.UploadImage(ctx, req.Image, key, req.ImageContentType)
	if err != nil {
		metrics.ProfilePictureUploads.WithLabelValues("error").Inc()
		return nil, apperrors.CollaboratorError("object_storage", err)
	}

	if _, err := s.profiles.UpdateProfileImage(ctx, userID, url); err != nil {
		return nil, err
	}

	metrics.ProfilePictureUploads.WithLabelValues("success").Inc()
	logger.Info("Profile picture uploaded", zap.String("user_id", userID))
	return &models.UploadPictureResponse{ProfileImageURL: url}, nil
}

func (s *ProfileService) uploadImage(ctx context.Context, userID string, req *models.SaveProfileRequest) (string, error) {
	if s.storage == nil {
		return "", fmt.Errorf("image storage is not configured")
	}
	if err := s.storage.ValidateImageType(req.ImageContentType); err != nil {
		return "", err
	}
	if err := s.storage.ValidateImageSize(req.Image); err != nil {
		return "", err
	}

	key := s.storage.GenerateFileName(userID, req.ImageFileName)
	return s.storage.UploadImage(ctx, req.Image, key, req.ImageContentType)
}
