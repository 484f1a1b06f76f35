package models

import (
	"time"

	"github.com/jackc/pgx/v5"
)

// RequestStatus represents the status of a mentorship request
type RequestStatus string

const (
	StatusPending  RequestStatus = "PENDING"
	StatusAccepted RequestStatus = "ACCEPTED"
	StatusRejected RequestStatus = "REJECTED"
)

// IsTerminal returns true once a request has been accepted or rejected;
// terminal requests never transition again
func (s RequestStatus) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// CanTransitionTo checks if a status transition is valid. Only
// PENDING → ACCEPTED and PENDING → REJECTED exist.
func (s RequestStatus) CanTransitionTo(newStatus RequestStatus) bool {
	if s.IsTerminal() {
		return false
	}
	return s == StatusPending && (newStatus == StatusAccepted || newStatus == StatusRejected)
}

// MentorshipRequest links a mentee to a mentor
type MentorshipRequest struct {
	ID        string        `json:"id"`
	MentorID  string        `json:"mentorId"`
	MenteeID  string        `json:"menteeId"`
	Status    RequestStatus `json:"status"`
	Message   string        `json:"message"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`

	// Joined for the mentor's inbox view
	MenteeEmail   string   `json:"menteeEmail,omitempty"`
	MenteeProfile *Profile `json:"menteeProfile,omitempty"`
}

// CreateRequestPayload is the mentee payload for requesting mentorship
type CreateRequestPayload struct {
	MentorID string `json:"mentorId" binding:"required,uuid"`
	Message  string `json:"message" binding:"max=2000"`
}

// RequestListResponse is the response for listing requests
type RequestListResponse struct {
	Requests []MentorshipRequest `json:"requests"`
	Total    int                 `json:"total"`
}

// AcceptRequestResponse returns the transitioned request and the session
// created as a side effect of acceptance
type AcceptRequestResponse struct {
	Request *MentorshipRequest `json:"request"`
	Session *Session           `json:"session"`
}

// ScanMentorshipRequest scans a single row into a MentorshipRequest.
// Expected columns: mentorshiprequestid, mentorid, menteeid, status,
// message, created_at, updated_at, mentee_email (from JOIN users)
func ScanMentorshipRequest(row pgx.Row) (*MentorshipRequest, error) {
	var r MentorshipRequest
	var message *string
	var menteeEmail *string

	err := row.Scan(
		&r.ID,
		&r.MentorID,
		&r.MenteeID,
		&r.Status,
		&message,
		&r.CreatedAt,
		&r.UpdatedAt,
		&menteeEmail,
	)
	if err != nil {
		return nil, err
	}

	if message != nil {
		r.Message = *message
	}
	if menteeEmail != nil {
		r.MenteeEmail = *menteeEmail
	}

	return &r, nil
}

// ScanMentorshipRequests scans multiple rows into a slice of MentorshipRequest
func ScanMentorshipRequests(rows pgx.Rows) ([]*MentorshipRequest, error) {
	defer rows.Close()

	requests := []*MentorshipRequest{}
	for rows.Next() {
		request, err := ScanMentorshipRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}
