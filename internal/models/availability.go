package models

import (
	"time"

	"github.com/jackc/pgx/v5"
)

// Availability is a mentor-declared open time slot
type Availability struct {
	ID        string    `json:"id"`
	MentorID  string    `json:"mentorId"`
	StartAt   time.Time `json:"startAt"`
	EndAt     time.Time `json:"endAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// AddAvailabilityRequest is the payload for declaring a new slot
type AddAvailabilityRequest struct {
	StartAt time.Time `json:"startAt" binding:"required"`
	EndAt   time.Time `json:"endAt" binding:"required"`
}

// AvailabilityListResponse is the response for listing a mentor's slots
type AvailabilityListResponse struct {
	Slots []Availability `json:"slots"`
	Total int            `json:"total"`
}

// ScanAvailability scans a single row into an Availability.
// Expected columns: availabilityid, mentorid, start_at, end_at, created_at
func ScanAvailability(row pgx.Row) (*Availability, error) {
	var a Availability
	err := row.Scan(
		&a.ID,
		&a.MentorID,
		&a.StartAt,
		&a.EndAt,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ScanAvailabilities scans multiple rows into a slice of Availability
func ScanAvailabilities(rows pgx.Rows) ([]*Availability, error) {
	defer rows.Close()

	slots := []*Availability{}
	for rows.Next() {
		slot, err := ScanAvailability(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return slots, nil
}
