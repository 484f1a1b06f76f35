package services

import (
	"context"
	"fmt"
	"time"

	"github.com/mentorlink/mentorlink-api/config"
	"github.com/mentorlink/mentorlink-api/internal/models"
	"github.com/mentorlink/mentorlink-api/internal/repository"
	"github.com/mentorlink/mentorlink-api/internal/schedule"
	apperrors "github.com/mentorlink/mentorlink-api/pkg/errors"
	"github.com/mentorlink/mentorlink-api/pkg/logger"
	"github.com/mentorlink/mentorlink-api/pkg/mailer"
	"github.com/mentorlink/mentorlink-api/pkg/meet"
	"go.uber.org/zap"
)

// SchedulerService books a session for an accepted request: it creates
// the meeting link, persists the session row, and notifies both
// participants by email
type SchedulerService struct {
	users    repository.UserStore
	sessions repository.SessionStore
	meetings meet.LinkCreator
	mail     mailer.Sender
	config   *config.Config
	now      func() time.Time
}

// NewSchedulerService creates a new SchedulerService
func NewSchedulerService(
	users repository.UserStore,
	sessions repository.SessionStore,
	meetings meet.LinkCreator,
	mail mailer.Sender,
	cfg *config.Config,
) *SchedulerService {
	return &SchedulerService{
		users:    users,
		sessions: sessions,
		meetings: meetings,
		mail:     mail,
		config:   cfg,
		now:      time.Now,
	}
}

// ScheduleSession books the session window for the request. The window
// opens a short lead after the acceptance instant and runs for the
// configured slot length. Meeting-link creation happens before the row
// is written, so a collaborator failure leaves no session behind.
// Notification emails are sent after commit and are non-fatal.
func (s *SchedulerService) ScheduleSession(ctx context.Context, request *models.MentorshipRequest) (*models.Session, error) {
	mentor, err := s.users.GetUserByID(ctx, request.MentorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load mentor: %w", err)
	}
	mentee, err := s.users.GetUserByID(ctx, request.MenteeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load mentee: %w", err)
	}

	startAt := s.now().Add(time.Duration(s.config.Scheduler.SessionLeadMinutes) * time.Minute)
	endAt := startAt.Add(time.Duration(s.config.Scheduler.SessionDurationMinutes) * time.Minute)

	summary := fmt.Sprintf("Mentorship session: %s / %s", mentor.Email, mentee.Email)
	link, err := s.meetings.CreateMeeting(ctx, summary, []string{mentor.Email, mentee.Email}, startAt, endAt)
	if err != nil {
		logger.Error("Meeting link creation failed",
			zap.String("request_id", request.ID),
			zap.Error(err))
		return nil, apperrors.CollaboratorError("google_calendar", err)
	}

	session, err := s.sessions.InsertSession(ctx, request.MentorID, request.MenteeID, startAt, endAt, link)
	if err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	s.notifyParticipants(session)

	logger.Info("Session scheduled",
		zap.String("session_id", session.ID),
		zap.String("request_id", request.ID),
		zap.Time("start_at", session.StartAt))

	return session, nil
}

// notifyParticipants emails both sides with the session details. Send
// failures are logged and swallowed: the session is already booked.
func (s *SchedulerService) notifyParticipants(session *models.Session) {
	body := fmt.Sprintf(
		"Your mentorship session is confirmed.\n\nStarts: %s (WAT)\nEnds: %s (WAT)\nMeeting link: %s\n",
		schedule.FormatWAT(session.StartAt),
		schedule.FormatWAT(session.EndAt),
		session.MeetLink,
	)

	for _, to := range []string{session.MentorEmail, session.MenteeEmail} {
		if to == "" {
			continue
		}
		if err := s.mail.Send(to, "Mentorship session confirmed", body); err != nil {
			logger.Warn("Failed to send session confirmation email",
				zap.String("session_id", session.ID),
				zap.String("recipient", to),
				zap.Error(err))
		}
	}
}
