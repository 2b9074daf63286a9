// Package exchange implements gift-exchange events: access codes, the one-shot
// circular draw, and participant code verification.
package exchange

import (
	"io"
	"log/slog"

	"github.com/farellandr/secretsanta/internal/metrics"
	"github.com/farellandr/secretsanta/internal/notifier"
)

// Service is the entry point for every event and participant operation.
// It keeps no state between calls; the Store is the single source of truth.
type Service struct {
	store             Store
	notifier          notifier.Notifier
	logger            *slog.Logger
	metrics           *metrics.Metrics
	baseURL           string
	notifyConcurrency int
}

type ServiceOptionFunc func(*Service)

// WithNotifier sets the collaborator used to message participants
func WithNotifier(n notifier.Notifier) ServiceOptionFunc {
	return func(s *Service) {
		s.notifier = n
	}
}

// WithLogger specifies the logger object to use for logging messages
func WithLogger(logger *slog.Logger) ServiceOptionFunc {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics specifies the collectors to update
func WithMetrics(m *metrics.Metrics) ServiceOptionFunc {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithBaseURL sets the participant page URL used in direct access links
func WithBaseURL(baseURL string) ServiceOptionFunc {
	return func(s *Service) {
		s.baseURL = baseURL
	}
}

// WithNotifyConcurrency limits how many messages are sent at once
func WithNotifyConcurrency(n int) ServiceOptionFunc {
	return func(s *Service) {
		s.notifyConcurrency = n
	}
}

func New(store Store, opts ...ServiceOptionFunc) *Service {
	s := &Service{
		store:             store,
		notifyConcurrency: notifier.DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if s.notifier == nil {
		s.notifier = notifier.NewLogOnly(s.logger)
	}
	return s
}
