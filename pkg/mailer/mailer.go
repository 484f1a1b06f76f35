package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/mentorlink/mentorlink-api/pkg/logger"
	"github.com/mentorlink/mentorlink-api/pkg/metrics"
	"github.com/mentorlink/mentorlink-api/pkg/retry"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Sender is the email collaborator contract. A nil error means the
// message was handed off to the SMTP server.
type Sender interface {
	Send(to, subject, body string) error
}

// Config holds SMTP configuration for sending emails
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Validate checks if the SMTP configuration is complete
func (c Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if c.Port == 0 {
		return fmt.Errorf("SMTP port is required")
	}
	if c.From == "" {
		return fmt.Errorf("SMTP from address is required")
	}
	return nil
}

// Disabled is the Sender used when SMTP is not configured. Every send
// fails, so callers take their non-fatal degradation paths.
type Disabled struct{}

// Send always fails
func (Disabled) Send(to, _, _ string) error {
	logger.Warn("Email not sent: SMTP is not configured", zap.String("to", to))
	return fmt.Errorf("smtp is not configured")
}

// Mailer sends plain-text email over SMTP
type Mailer struct {
	config Config
	dialer *gomail.Dialer
}

// NewMailer creates a new Mailer from validated configuration
func NewMailer(cfg Config) (*Mailer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Mailer{
		config: cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}, nil
}

// Send sends a single plain-text email
func (m *Mailer) Send(to, subject, body string) error {
	start := time.Now()

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.config.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	err := retry.Do(context.Background(), retry.SMTPConfig(), "smtp_send", func() error {
		return m.dialer.DialAndSend(msg)
	})
	duration := metrics.MeasureDuration(start)

	if err != nil {
		metrics.EmailSendDuration.WithLabelValues("error").Observe(duration)
		metrics.EmailSendTotal.WithLabelValues("error").Inc()
		logger.LogAPICall("smtp", "send", "error", duration,
			zap.Error(err),
			zap.String("to", to),
			zap.String("subject", subject))
		return fmt.Errorf("failed to send email: %w", err)
	}

	metrics.EmailSendDuration.WithLabelValues("success").Observe(duration)
	metrics.EmailSendTotal.WithLabelValues("success").Inc()
	logger.LogAPICall("smtp", "send", "success", duration,
		zap.String("to", to),
		zap.String("subject", subject))

	return nil
}
