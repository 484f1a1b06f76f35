package meet

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mentorlink/mentorlink-api/pkg/circuitbreaker"
	"github.com/mentorlink/mentorlink-api/pkg/logger"
	"github.com/mentorlink/mentorlink-api/pkg/metrics"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// LinkCreator is the calendar collaborator contract: schedule a video
// meeting for the given window and return its join link.
type LinkCreator interface {
	CreateMeeting(ctx context.Context, summary string, attendees []string, start, end time.Time) (string, error)
}

// Client creates Google Calendar events with attached Meet conference links
type Client struct {
	service    *calendar.Service
	calendarID string
	timeZone   string
	breaker    *gobreaker.CircuitBreaker
}

// NewClient creates a calendar client from a service account credentials file.
// calendarID is the calendar events are inserted into ("primary" for the
// service account's own calendar).
func NewClient(ctx context.Context, credentialsFile, calendarID, timeZone string) (*Client, error) {
	service, err := calendar.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(calendar.CalendarEventsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	if calendarID == "" {
		calendarID = "primary"
	}

	logger.Info("Calendar client initialized",
		zap.String("calendar_id", calendarID),
		zap.String("time_zone", timeZone))

	return &Client{
		service:    service,
		calendarID: calendarID,
		timeZone:   timeZone,
		breaker:    circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig("google_calendar")),
	}, nil
}

// CreateMeeting inserts a calendar event with a Meet conference for the
// given window and returns the join link. Calls go through a circuit
// breaker so a flapping calendar API fails fast instead of blocking
// request handling.
func (c *Client) CreateMeeting(ctx context.Context, summary string, attendees []string, start, end time.Time) (string, error) {
	startTime := time.Now()
	operation := "createMeeting"

	event := &calendar.Event{
		Summary: summary,
		Start: &calendar.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: c.timeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: c.timeZone,
		},
		ConferenceData: &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId: uuid.NewString(),
				ConferenceSolutionKey: &calendar.ConferenceSolutionKey{
					Type: "hangoutsMeet",
				},
			},
		},
	}

	for _, email := range attendees {
		event.Attendees = append(event.Attendees, &calendar.EventAttendee{Email: email})
	}

	created, err := circuitbreaker.Execute(c.breaker, func() (*calendar.Event, error) {
		return c.service.Events.Insert(c.calendarID, event).
			ConferenceDataVersion(1).
			Context(ctx).
			Do()
	})

	duration := metrics.MeasureDuration(startTime)

	if err != nil {
		metrics.CalendarRequestDuration.WithLabelValues(operation, "error").Observe(duration)
		metrics.CalendarRequestTotal.WithLabelValues(operation, "error").Inc()
		logger.LogAPICall("google_calendar", operation, "error", duration, zap.Error(err))
		return "", fmt.Errorf("failed to create calendar event: %w", err)
	}

	link := created.HangoutLink
	if link == "" && created.ConferenceData != nil {
		for _, entry := range created.ConferenceData.EntryPoints {
			if entry.EntryPointType == "video" {
				link = entry.Uri
				break
			}
		}
	}

	metrics.CalendarRequestDuration.WithLabelValues(operation, "success").Observe(duration)
	metrics.CalendarRequestTotal.WithLabelValues(operation, "success").Inc()
	logger.LogAPICall("google_calendar", operation, "success", duration,
		zap.String("event_id", created.Id))

	if link == "" {
		return "", fmt.Errorf("calendar event %s has no meeting link", created.Id)
	}

	return link, nil
}
