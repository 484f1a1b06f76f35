package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mentorlink/mentorlink-api/pkg/metrics"
)

// Client wraps the PostgreSQL connection pool with the table-oriented
// operations the services need
type Client struct {
	pool *pgxpool.Pool
}

// NewClient creates a new PostgreSQL client
func NewClient(pool *pgxpool.Pool) *Client {
	return &Client{pool: pool}
}

// Pool exposes the underlying pool for healthchecks
func (c *Client) Pool() *pgxpool.Pool {
	return c.pool
}

// recordMetrics records operation metrics for a database call
func recordMetrics(operation, status string, duration float64) {
	metrics.PostgresRequestDuration.WithLabelValues(operation, status).Observe(duration)
	metrics.PostgresRequestTotal.WithLabelValues(operation, status).Inc()
}
