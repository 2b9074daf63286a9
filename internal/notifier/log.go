package notifier

import (
	"context"
	"io"
	"log/slog"
)

// LogOnly is used when no email provider is configured. It logs the message
// that would have been sent and reports it as not delivered.
type LogOnly struct {
	logger *slog.Logger
}

func NewLogOnly(logger *slog.Logger) *LogOnly {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &LogOnly{logger: logger}
}

func (l *LogOnly) Notify(_ context.Context, contact string, kind Kind, payload Payload) bool {
	l.logger.Warn("email provider not configured, message not sent",
		"component", "notifier",
		"kind", kind,
		"contact", contact,
		"event", payload.EventName,
	)
	return false
}
