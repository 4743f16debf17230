package activity

import (
	"context"
	"log/slog"
)

// LogSink writes events to the structured log.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Append(ctx context.Context, event Event) error {
	s.logger.InfoContext(ctx, string(event.Action),
		"log_type", "activity",
		"event_id", event.ID,
		"audit_id", event.AuditID,
		"requirement_id", event.RequirementID,
		"outcome", event.Outcome,
		"actor", event.Actor,
		"client", event.Client,
		"request_id", event.RequestID,
	)
	return nil
}
