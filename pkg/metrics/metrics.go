package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the dedicated registry exposed on /api/metrics
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

// Custom histogram buckets tuned for API response times ranging from
// milliseconds to multi-second external collaborator calls (SMTP, calendar)
var CustomAPIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21, 34, 55}

var (
	// HTTP metrics
	HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// Database client metrics (PostgreSQL)
	PostgresRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_client_operation_duration_seconds",
			Help:    "Database client operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	PostgresRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_client_operation_total",
			Help: "Total number of database client operations",
		},
		[]string{"operation", "status"},
	)

	// Storage client metrics (profile picture bucket)
	StorageRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storage_client_operation_duration_seconds",
			Help:    "Storage client operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	StorageRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_client_operation_total",
			Help: "Total number of storage client operations",
		},
		[]string{"operation", "status"},
	)

	// Calendar collaborator metrics
	CalendarRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "calendar_client_operation_duration_seconds",
			Help:    "Calendar client operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	CalendarRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calendar_client_operation_total",
			Help: "Total number of calendar client operations",
		},
		[]string{"operation", "status"},
	)

	// Email collaborator metrics
	EmailSendDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "email_send_duration_seconds",
			Help:    "Email send duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"status"},
	)

	EmailSendTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "email_send_total",
			Help: "Total number of email sends",
		},
		[]string{"status"},
	)

	// Cache metrics
	CacheHits = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_name"},
	)

	CacheMisses = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_name"},
	)

	CacheSize = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Number of entries in cache",
		},
		[]string{"cache_name"},
	)

	// Business metrics
	LoginAttempts = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorlink_login_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"status"},
	)

	ProfileUpdates = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorlink_profile_updates_total",
			Help: "Total number of profile upserts",
		},
		[]string{"status"},
	)

	ProfilePictureUploads = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorlink_profile_picture_uploads_total",
			Help: "Total number of profile picture uploads",
		},
		[]string{"status"},
	)

	AvailabilityChanges = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorlink_availability_changes_total",
			Help: "Total number of availability slot additions and deletions",
		},
		[]string{"action", "status"},
	)

	RequestTransitions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorlink_request_transitions_total",
			Help: "Total number of mentorship request status transitions",
		},
		[]string{"from_status", "to_status"},
	)

	SessionsCreated = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "mentorlink_sessions_created_total",
			Help: "Total number of sessions created",
		},
	)

	RemindersSent = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "mentorlink_session_reminders_total",
			Help: "Total number of sessions reminded",
		},
	)

	RequestsAutoCancelled = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "mentorlink_requests_auto_cancelled_total",
			Help: "Total number of expired pending requests auto-rejected by the sweeper",
		},
	)
)

// Init registers runtime collectors and the service build info gauge
func Init(serviceName string) {
	Registry.MustRegister(collectors.NewGoCollector())
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	buildInfo := factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mentorlink_build_info",
			Help: "Service identity, value is always 1",
		},
		[]string{"service"},
	)
	buildInfo.WithLabelValues(serviceName).Set(1)
}

// MeasureDuration returns elapsed seconds since start
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}
