package services_test

import (
	"context"
	"time"

	"github.com/mentorlink/mentorlink-api/internal/cache"
	"github.com/mentorlink/mentorlink-api/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockUserStore is a mock implementation of repository.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserStore) ListMentors(ctx context.Context) ([]*models.User, map[string]*models.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]*models.User), args.Get(1).(map[string]*models.Profile), args.Error(2)
}

func (m *MockUserStore) InsertUser(ctx context.Context, email, passwordHash string, role models.Role, mustChangePassword bool) (*models.User, error) {
	args := m.Called(ctx, email, passwordHash, role, mustChangePassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) DeleteUser(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserStore) UpdateUserPassword(ctx context.Context, id, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUserStore) SetProfileCompleted(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProfileStore is a mock implementation of repository.ProfileStore
type MockProfileStore struct {
	mock.Mock
}

func (m *MockProfileStore) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileStore) UpsertProfile(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileStore) UpdateProfileImage(ctx context.Context, userID, imageURL string) (*models.Profile, error) {
	args := m.Called(ctx, userID, imageURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

// MockAvailabilityStore is a mock implementation of repository.AvailabilityStore
type MockAvailabilityStore struct {
	mock.Mock
}

func (m *MockAvailabilityStore) InsertAvailability(ctx context.Context, mentorID string, startAt, endAt time.Time) (*models.Availability, error) {
	args := m.Called(ctx, mentorID, startAt, endAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Availability), args.Error(1)
}

func (m *MockAvailabilityStore) GetAvailability(ctx context.Context, id string) (*models.Availability, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Availability), args.Error(1)
}

func (m *MockAvailabilityStore) ListAvailabilityByMentor(ctx context.Context, mentorID string) ([]*models.Availability, error) {
	args := m.Called(ctx, mentorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Availability), args.Error(1)
}

func (m *MockAvailabilityStore) DeleteAvailability(ctx context.Context, id, mentorID string) error {
	args := m.Called(ctx, id, mentorID)
	return args.Error(0)
}

// MockRequestStore is a mock implementation of repository.RequestStore
type MockRequestStore struct {
	mock.Mock
}

func (m *MockRequestStore) InsertMentorshipRequest(ctx context.Context, mentorID, menteeID, message string) (*models.MentorshipRequest, error) {
	args := m.Called(ctx, mentorID, menteeID, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MentorshipRequest), args.Error(1)
}

func (m *MockRequestStore) GetMentorshipRequest(ctx context.Context, id string) (*models.MentorshipRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MentorshipRequest), args.Error(1)
}

func (m *MockRequestStore) ListRequestsByMentor(ctx context.Context, mentorID string, status models.RequestStatus) ([]*models.MentorshipRequest, error) {
	args := m.Called(ctx, mentorID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MentorshipRequest), args.Error(1)
}

func (m *MockRequestStore) ListRequestsByMentee(ctx context.Context, menteeID string, status models.RequestStatus) ([]*models.MentorshipRequest, error) {
	args := m.Called(ctx, menteeID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MentorshipRequest), args.Error(1)
}

func (m *MockRequestStore) HasPendingRequest(ctx context.Context, mentorID, menteeID string) (bool, error) {
	args := m.Called(ctx, mentorID, menteeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRequestStore) UpdateRequestStatus(ctx context.Context, id string, from, to models.RequestStatus) (*models.MentorshipRequest, error) {
	args := m.Called(ctx, id, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MentorshipRequest), args.Error(1)
}

func (m *MockRequestStore) RejectExpiredRequests(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRequestStore) CountRequestsByMentor(ctx context.Context, mentorID string, status models.RequestStatus) (int, error) {
	args := m.Called(ctx, mentorID, status)
	return args.Int(0), args.Error(1)
}

func (m *MockRequestStore) CountRequestsByMentee(ctx context.Context, menteeID string, status models.RequestStatus) (int, error) {
	args := m.Called(ctx, menteeID, status)
	return args.Int(0), args.Error(1)
}

// MockSessionStore is a mock implementation of repository.SessionStore
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) InsertSession(ctx context.Context, mentorID, menteeID string, startAt, endAt time.Time, meetLink string) (*models.Session, error) {
	args := m.Called(ctx, mentorID, menteeID, startAt, endAt, meetLink)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionStore) GetSession(ctx context.Context, id string) (*models.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionStore) ListSessionsByUser(ctx context.Context, userID string) ([]*models.Session, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Session), args.Error(1)
}

func (m *MockSessionStore) ListSessionsStartingBetween(ctx context.Context, from, to time.Time) ([]*models.Session, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Session), args.Error(1)
}

func (m *MockSessionStore) MarkReminderSent(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockSessionStore) CountSessionsByUser(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// MockScheduler is a mock implementation of services.SchedulerInterface
type MockScheduler struct {
	mock.Mock
}

func (m *MockScheduler) ScheduleSession(ctx context.Context, request *models.MentorshipRequest) (*models.Session, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

// MockLinkCreator is a mock implementation of meet.LinkCreator
type MockLinkCreator struct {
	mock.Mock
}

func (m *MockLinkCreator) CreateMeeting(ctx context.Context, summary string, attendees []string, start, end time.Time) (string, error) {
	args := m.Called(ctx, summary, attendees, start, end)
	return args.String(0), args.Error(1)
}

// MockMailer is a mock implementation of mailer.Sender
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(to, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

// MockImageStorage is a mock implementation of services.ImageStorage
type MockImageStorage struct {
	mock.Mock
}

func (m *MockImageStorage) UploadImage(ctx context.Context, imageData, key, contentType string) (string, error) {
	args := m.Called(ctx, imageData, key, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockImageStorage) GenerateFileName(ownerID, originalFileName string) string {
	args := m.Called(ownerID, originalFileName)
	return args.String(0)
}

func (m *MockImageStorage) ValidateImageType(contentType string) error {
	args := m.Called(contentType)
	return args.Error(0)
}

func (m *MockImageStorage) ValidateImageSize(imageData string) error {
	args := m.Called(imageData)
	return args.Error(0)
}

// MockDirectoryCache is a mock implementation of cache.DirectoryCacheInterface
type MockDirectoryCache struct {
	mock.Mock
}

func (m *MockDirectoryCache) Initialize() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockDirectoryCache) IsReady() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockDirectoryCache) Get() ([]*cache.DirectoryEntry, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cache.DirectoryEntry), args.Error(1)
}

func (m *MockDirectoryCache) GetByID(mentorID string) (*cache.DirectoryEntry, error) {
	args := m.Called(mentorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cache.DirectoryEntry), args.Error(1)
}

func (m *MockDirectoryCache) ForceRefresh() ([]*cache.DirectoryEntry, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cache.DirectoryEntry), args.Error(1)
}

func (m *MockDirectoryCache) Clear() {
	m.Called()
}
