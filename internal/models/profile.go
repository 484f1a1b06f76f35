package models

import (
	"time"

	"github.com/jackc/pgx/v5"
)

// Profile holds the biographical fields a user maintains about themselves
type Profile struct {
	UserID          string    `json:"userId"`
	Name            string    `json:"name"`
	Bio             string    `json:"bio"`
	Skills          string    `json:"skills"`
	Goals           string    `json:"goals"`
	ProfileImageURL *string   `json:"profileImageUrl"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// SaveProfileRequest is the payload for upserting a profile. The image is
// optional; when present it is a base64-encoded file plus metadata.
type SaveProfileRequest struct {
	Name             string `json:"name" binding:"required,max=200"`
	Bio              string `json:"bio" binding:"max=2000"`
	Skills           string `json:"skills" binding:"max=2000"`
	Goals            string `json:"goals" binding:"max=2000"`
	Image            string `json:"image" binding:"omitempty"`
	ImageFileName    string `json:"imageFileName" binding:"omitempty,max=255"`
	ImageContentType string `json:"imageContentType" binding:"omitempty,max=100"`
}

// SaveProfileResponse reports the upserted profile plus whether an
// attempted image upload was skipped due to a storage failure
type SaveProfileResponse struct {
	Profile     *Profile `json:"profile"`
	ImageFailed bool     `json:"imageFailed,omitempty"`
	ImageError  string   `json:"imageError,omitempty"`
}

// UploadPictureRequest is the payload for the dedicated picture upload
// endpoint: a base64-encoded file plus metadata.
type UploadPictureRequest struct {
	Image            string `json:"image" binding:"required"`
	ImageFileName    string `json:"imageFileName" binding:"omitempty,max=255"`
	ImageContentType string `json:"imageContentType" binding:"required,max=100"`
}

// UploadPictureResponse reports the stored picture URL
type UploadPictureResponse struct {
	ProfileImageURL string `json:"profileImageUrl"`
}

// ScanProfile scans a single row into a Profile.
// Expected columns: userid, name, bio, skills, goals, profile_image_url, updated_at
func ScanProfile(row pgx.Row) (*Profile, error) {
	var p Profile
	var bio, skills, goals *string

	err := row.Scan(
		&p.UserID,
		&p.Name,
		&bio,
		&skills,
		&goals,
		&p.ProfileImageURL,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if bio != nil {
		p.Bio = *bio
	}
	if skills != nil {
		p.Skills = *skills
	}
	if goals != nil {
		p.Goals = *goals
	}

	return &p, nil
}
