package services

import (
	"context"
	"time"

	"github.com/mentorlink/mentorlink-api/internal/cache"
	"github.com/mentorlink/mentorlink-api/internal/models"
	"github.com/mentorlink/mentorlink-api/pkg/jwt"
)

// AuthServiceInterface defines authentication operations
type AuthServiceInterface interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, string, error)
	ChangePassword(ctx context.Context, userID string, req *models.ChangePasswordRequest) error
	EnsureAdmin(ctx context.Context) error
	GetSessionTTL() int
	GetCookieDomain() string
	GetCookieSecure() bool
	GetTokenManager() *jwt.TokenManager
}

// ProfileServiceInterface defines profile operations
type ProfileServiceInterface interface {
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	SaveProfile(ctx context.Context, userID string, req *models.SaveProfileRequest) (*models.SaveProfileResponse, error)
	UploadPicture(ctx context.Context, userID string, req *models.UploadPictureRequest) (*models.UploadPictureResponse, error)
}

// AvailabilityServiceInterface defines mentor availability operations
type AvailabilityServiceInterface interface {
	AddAvailability(ctx context.Context, mentorID string, req *models.AddAvailabilityRequest) (*models.Availability, error)
	ListAvailability(ctx context.Context, mentorID string) (*models.AvailabilityListResponse, error)
	DeleteAvailability(ctx context.Context, mentorID, availabilityID string) error
}

// SchedulerInterface creates a confirmed session between two participants.
// Implementations are expected to fail atomically: either a session with a
// meeting link exists afterwards, or an error is returned and no state
// was committed.
type SchedulerInterface interface {
	ScheduleSession(ctx context.Context, request *models.MentorshipRequest) (*models.Session, error)
}

// RequestsServiceInterface defines mentorship request lifecycle operations
type RequestsServiceInterface interface {
	CreateRequest(ctx context.Context, menteeID string, req *models.CreateRequestPayload) (*models.MentorshipRequest, error)
	ListForMentor(ctx context.Context, mentorID string, status models.RequestStatus) (*models.RequestListResponse, error)
	ListForMentee(ctx context.Context, menteeID string, status models.RequestStatus) (*models.RequestListResponse, error)
	AcceptRequest(ctx context.Context, mentorID, requestID string) (*models.AcceptRequestResponse, error)
	RejectRequest(ctx context.Context, mentorID, requestID string) (*models.MentorshipRequest, error)
	SweepExpired(ctx context.Context, maxAge time.Duration) (int64, error)
}

// SessionsServiceInterface defines session listing and reminder operations
type SessionsServiceInterface interface {
	ListSessions(ctx context.Context, userID string, now time.Time) (*models.SessionListResponse, error)
	SendReminders(ctx context.Context, window time.Duration) (int, error)
	RemindSession(ctx context.Context, userID, sessionID string) error
}

// DashboardServiceInterface aggregates per-role dashboard counts
type DashboardServiceInterface interface {
	Summary(ctx context.Context, session *models.UserSession) (*models.DashboardSummary, error)
}

// MentorsServiceInterface exposes the mentee-facing mentor directory
type MentorsServiceInterface interface {
	ListMentors(ctx context.Context, forceRefresh bool) ([]*cache.DirectoryEntry, error)
	GetMentor(ctx context.Context, mentorID string) (*cache.DirectoryEntry, error)
}

// AdminServiceInterface defines account administration operations
type AdminServiceInterface interface {
	CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error)
	ListUsers(ctx context.Context) (*models.UserListResponse, error)
	DeleteUser(ctx context.Context, session *models.UserSession, userID string) error
}

// Ensure services implement their interfaces
var _ AuthServiceInterface = (*AuthService)(nil)
var _ ProfileServiceInterface = (*ProfileService)(nil)
var _ AvailabilityServiceInterface = (*AvailabilityService)(nil)
var _ SchedulerInterface = (*SchedulerService)(nil)
var _ RequestsServiceInterface = (*RequestsService)(nil)
var _ SessionsServiceInterface = (*SessionsService)(nil)
var _ DashboardServiceInterface = (*DashboardService)(nil)
var _ MentorsServiceInterface = (*MentorsService)(nil)
var _ AdminServiceInterface = (*AdminService)(nil)
