package schedule

import "time"

// Status labels a session relative to the current instant
type Status string

const (
	StatusInvalid  Status = "Invalid"
	StatusPast     Status = "Past"
	StatusOngoing  Status = "Ongoing"
	StatusUpcoming Status = "Upcoming"
)

// Icon returns the display icon associated with a status
func (s Status) Icon() string {
	switch s {
	case StatusInvalid:
		return "❌"
	case StatusPast:
		return "🟥"
	case StatusOngoing:
		return "🟨"
	case StatusUpcoming:
		return "🟩"
	default:
		return ""
	}
}

// Classify labels a session window relative to now. Evaluation order is
// Invalid, Past, Ongoing, Upcoming; the interval is inclusive on both
// ends, so now==start and now==end both count as Ongoing.
func Classify(start, end any, now time.Time) Status {
	startAt, startOK := Normalize(start, WAT)
	endAt, endOK := Normalize(end, WAT)

	if !startOK || !endOK {
		return StatusInvalid
	}

	now = now.In(WAT)

	switch {
	case endAt.Before(now):
		return StatusPast
	case !startAt.After(now) && !now.After(endAt):
		return StatusOngoing
	default:
		return StatusUpcoming
	}
}
