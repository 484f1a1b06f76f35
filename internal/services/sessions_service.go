package services

import (
	"context"
	"fmt"
	"time"

	"github.com/mentorlink/mentorlink-api/internal/models"
	"github.com/mentorlink/mentorlink-api/internal/repository"
	"github.com/mentorlink/mentorlink-api/internal/schedule"
	apperrors "github.com/mentorlink/mentorlink-api/pkg/errors"
	"github.com/mentorlink/mentorlink-api/pkg/logger"
	"github.com/mentorlink/mentorlink-api/pkg/mailer"
	"github.com/mentorlink/mentorlink-api/pkg/metrics"
	"go.uber.org/zap"
)

// SessionsService lists sessions with their derived status and runs the
// reminder sweep
type SessionsService struct {
	sessions repository.SessionStore
	mail     mailer.Sender
}

// NewSessionsService creates a new SessionsService
func NewSessionsService(sessions repository.SessionStore, mail mailer.Sender) *SessionsService {
	return &SessionsService{sessions: sessions, mail: mail}
}

// ListSessions returns every session the user participates in, each
// classified against now. Status is derived at read time and never stored.
func (s *SessionsService) ListSessions(ctx context.Context, userID string, now time.Time) (*models.SessionListResponse, error) {
	sessions, err := s.sessions.ListSessionsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]models.SessionView, 0, len(sessions))
	for _, session := range sessions {
		views = append(views, models.NewSessionView(*session, now))
	}

	return &models.SessionListResponse{Sessions: views, Total: len(views)}, nil
}

// SendReminders emails both participants of every session starting
// within the window that has not been reminded yet. Returns the number
// of sessions reminded.
func (s *SessionsService) SendReminders(ctx context.Context, window time.Duration) (int, error) {
	now := time.Now()
	sessions, err := s.sessions.ListSessionsStartingBetween(ctx, now, now.Add(window))
	if err != nil {
		return 0, fmt.Errorf("failed to list upcoming sessions: %w", err)
	}

	reminded := 0
	for _, session := range sessions {
		body := fmt.Sprintf(
			"Reminder: your mentorship session starts at %s (WAT).\nMeeting link: %s\n",
			schedule.FormatWAT(session.StartAt),
			session.MeetLink,
		)

		sent := false
		for _, to := range []string{session.MentorEmail, session.MenteeEmail} {
			if to == "" {
				continue
			}
			if err := s.mail.Send(to, "Upcoming mentorship session", body); err != nil {
				logger.Warn("Failed to send session reminder",
					zap.String("session_id", session.ID),
					zap.String("recipient", to),
					zap.Error(err))
				continue
			}
			sent = true
		}

		if !sent {
			continue
		}

		if err := s.sessions.MarkReminderSent(ctx, session.ID); err != nil {
			logger.Error("Failed to mark reminder sent",
				zap.String("session_id", session.ID),
				zap.Error(err))
			continue
		}

		metrics.RemindersSent.Inc()
		reminded++
	}

	if reminded > 0 {
		logger.Info("Session reminders sent", zap.Int("count", reminded))
	}
	return reminded, nil
}

// RemindSession sends a reminder for one session on demand. The caller
// must be a participant. The call fails only when neither participant
// could be emailed.
func (s *SessionsService) RemindSession(ctx context.Context, userID, sessionID string) error {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}

	if session.MentorID != userID && session.MenteeID != userID {
		return apperrors.AccessDeniedError("session belongs to another user")
	}

	body := fmt.Sprintf(
		"Reminder: your mentorship session starts at %s (WAT).\nMeeting link: %s\n",
		schedule.FormatWAT(session.StartAt),
		session.MeetLink,
	)

	sent := false
	var lastErr error
	for _, to := range []string{session.MentorEmail, session.MenteeEmail} {
		if to == "" {
			continue
		}
		if sendErr := s.mail.Send(to, "Upcoming mentorship session", body); sendErr != nil {
			logger.Warn("Failed to send session reminder",
				zap.String("session_id", session.ID),
				zap.String("recipient", to),
				zap.Error(sendErr))
			lastErr = sendErr
			continue
		}
		sent = true
	}

	if !sent {
		return apperrors.CollaboratorError("smtp", lastErr)
	}

	if err := s.sessions.MarkReminderSent(ctx, session.ID); err != nil {
		logger.Error("Failed to mark reminder sent",
			zap.String("session_id", session.ID),
			zap.Error(err))
	}

	metrics.RemindersSent.Inc()
	return nil
}
