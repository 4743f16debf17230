package activity

import (
	"context"
	"log/slog"
)

// Worker drains an inbox into a sink. Sink errors are logged and the event
// is dropped; the loop only stops when ctx is done or the inbox is closed.
type Worker struct {
	sink    Sink
	inbox   <-chan Event
	logger  *slog.Logger
	onError func()
}

func NewWorker(sink Sink, inbox <-chan Event, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{sink: sink, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.inbox:
			if !ok {
				return nil
			}
			w.deliver(ctx, event)
		}
	}
}

func (w *Worker) deliver(ctx context.Context, event Event) {
	if err := w.sink.Append(ctx, event); err != nil {
		if w.onError != nil {
			w.onError()
		}
		w.logger.WarnContext(ctx, "activity event dropped",
			"action", event.Action,
			"audit_id", event.AuditID,
			"error", err,
		)
	}
}
