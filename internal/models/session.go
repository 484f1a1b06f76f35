package models

import (
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mentorlink/mentorlink-api/internal/schedule"
)

// Session links a mentor and mentee for a scheduled time window. Session
// rows are created only as a side effect of request acceptance.
type Session struct {
	ID        string    `json:"id"`
	MentorID  string    `json:"mentorId"`
	MenteeID  string    `json:"menteeId"`
	StartAt   time.Time `json:"startAt"`
	EndAt     time.Time `json:"endAt"`
	MeetLink  string    `json:"meetLink"`
	CreatedAt time.Time `json:"createdAt"`

	// Joined counterpart email for display and reminders
	MentorEmail string `json:"mentorEmail,omitempty"`
	MenteeEmail string `json:"menteeEmail,omitempty"`
}

// SessionView is a Session decorated with its derived status label,
// computed per render from the current time
type SessionView struct {
	Session
	Status     schedule.Status `json:"status"`
	StatusIcon string          `json:"statusIcon"`
}

// NewSessionView classifies a session against now
func NewSessionView(s Session, now time.Time) SessionView {
	status := schedule.Classify(s.StartAt, s.EndAt, now)
	return SessionView{
		Session:    s,
		Status:     status,
		StatusIcon: status.Icon(),
	}
}

// SessionListResponse is the response for listing sessions
type SessionListResponse struct {
	Sessions []SessionView `json:"sessions"`
	Total    int           `json:"total"`
}

// ScanSession scans a single row into a Session.
// Expected columns: sessionid, mentorid, menteeid, start_at, end_at,
// meet_link, created_at, mentor_email, mentee_email (from JOIN users)
func ScanSession(row pgx.Row) (*Session, error) {
	var s Session
	var meetLink *string

	err := row.Scan(
		&s.ID,
		&s.MentorID,
		&s.MenteeID,
		&s.StartAt,
		&s.EndAt,
		&meetLink,
		&s.CreatedAt,
		&s.MentorEmail,
		&s.MenteeEmail,
	)
	if err != nil {
		return nil, err
	}

	if meetLink != nil {
		s.MeetLink = *meetLink
	}

	return &s, nil
}

// ScanSessions scans multiple rows into a slice of Sessions
func ScanSessions(rows pgx.Rows) ([]*Session, error) {
	defer rows.Close()

	sessions := []*Session{}
	for rows.Next() {
		session, err := ScanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}
