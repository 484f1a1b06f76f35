package services

import (
	"context"
	"errors"

	"github.com/mentorlink/mentorlink-api/internal/models"
	"github.com/mentorlink/mentorlink-api/internal/repository"
	apperrors "github.com/mentorlink/mentorlink-api/pkg/errors"
)

// DashboardService aggregates the counts shown when a user lands on
// their role's dashboard
type DashboardService struct {
	profiles repository.ProfileStore
	requests repository.RequestStore
	sessions repository.SessionStore
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(profiles repository.ProfileStore, requests repository.RequestStore, sessions repository.SessionStore) *DashboardService {
	return &DashboardService{
		profiles: profiles,
		requests: requests,
		sessions: sessions,
	}
}

// Summary builds the dashboard for the session's role. Mentors see
// their incoming PENDING requests; mentees see the ones they are still
// waiting on. A missing profile is not an error, the field stays nil.
func (s *DashboardService) Summary(ctx context.Context, session *models.UserSession) (*models.DashboardSummary, error) {
	summary := &models.DashboardSummary{Role: session.Role}

	var err error
	switch session.Role {
	case models.RoleMentor:
		summary.IncomingRequests, err = s.requests.CountRequestsByMentor(ctx, session.UserID, models.StatusPending)
	case models.RoleMentee:
		summary.PendingRequests, err = s.requests.CountRequestsByMentee(ctx, session.UserID, models.StatusPending)
	case models.RoleAdmin:
		// Admin dashboards aggregate nothing per-user
	default:
		return nil, apperrors.AccessDeniedError("unknown role")
	}
	if err != nil {
		return nil, err
	}

	if session.Role == models.RoleMentor || session.Role == models.RoleMentee {
		summary.TotalSessions, err = s.sessions.CountSessionsByUser(ctx, session.UserID)
		if err != nil {
			return nil, err
		}

		profile, err := s.profiles.GetProfile(ctx, session.UserID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		summary.Profile = profile
	}

	return summary, nil
}
