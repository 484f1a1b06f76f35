package repository

import (
	"context"
	"time"

	"github.com/mentorlink/mentorlink-api/internal/database/postgres"
	"github.com/mentorlink/mentorlink-api/internal/models"
)

// UserStore defines account storage operations
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	ListMentors(ctx context.Context) ([]*models.User, map[string]*models.Profile, error)
	InsertUser(ctx context.Context, email, passwordHash string, role models.Role, mustChangePassword bool) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
	UpdateUserPassword(ctx context.Context, id, passwordHash string) error
	SetProfileCompleted(ctx context.Context, id string) error
}

// ProfileStore defines profile storage operations
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	UpsertProfile(ctx context.Context, p *models.Profile) (*models.Profile, error)
	UpdateProfileImage(ctx context.Context, userID, imageURL string) (*models.Profile, error)
}

// AvailabilityStore defines availability window storage operations
type AvailabilityStore interface {
	InsertAvailability(ctx context.Context, mentorID string, startAt, endAt time.Time) (*models.Availability, error)
	GetAvailability(ctx context.Context, id string) (*models.Availability, error)
	ListAvailabilityByMentor(ctx context.Context, mentorID string) ([]*models.Availability, error)
	DeleteAvailability(ctx context.Context, id, mentorID string) error
}

// RequestStore defines mentorship request storage operations
type RequestStore interface {
	InsertMentorshipRequest(ctx context.Context, mentorID, menteeID, message string) (*models.MentorshipRequest, error)
	GetMentorshipRequest(ctx context.Context, id string) (*models.MentorshipRequest, error)
	ListRequestsByMentor(ctx context.Context, mentorID string, status models.RequestStatus) ([]*models.MentorshipRequest, error)
	ListRequestsByMentee(ctx context.Context, menteeID string, status models.RequestStatus) ([]*models.MentorshipRequest, error)
	HasPendingRequest(ctx context.Context, mentorID, menteeID string) (bool, error)
	UpdateRequestStatus(ctx context.Context, id string, from, to models.RequestStatus) (*models.MentorshipRequest, error)
	RejectExpiredRequests(ctx context.Context, cutoff time.Time) (int64, error)
	CountRequestsByMentor(ctx context.Context, mentorID string, status models.RequestStatus) (int, error)
	CountRequestsByMentee(ctx context.Context, menteeID string, status models.RequestStatus) (int, error)
}

// SessionStore defines session storage operations
type SessionStore interface {
	InsertSession(ctx context.Context, mentorID, menteeID string, startAt, endAt time.Time, meetLink string) (*models.Session, error)
	GetSession(ctx context.Context, id string) (*models.Session, error)
	ListSessionsByUser(ctx context.Context, userID string) ([]*models.Session, error)
	ListSessionsStartingBetween(ctx context.Context, from, to time.Time) ([]*models.Session, error)
	MarkReminderSent(ctx context.Context, sessionID string) error
	CountSessionsByUser(ctx context.Context, userID string) (int, error)
}

// Store is the full storage surface backed by PostgreSQL
type Store interface {
	UserStore
	ProfileStore
	AvailabilityStore
	RequestStore
	SessionStore
}

var _ Store = (*postgres.Client)(nil)
