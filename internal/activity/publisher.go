package activity

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"checkpoint/internal/activity/metrics"
	"checkpoint/pkg/requestcontext"
)

// Publisher stamps events and hands them to a sink, synchronously or through
// a bounded buffer drained by a Worker.
type Publisher struct {
	sink    Sink
	logger  *slog.Logger
	metrics *metrics.Metrics

	bufferSize int
	inbox      chan Event
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	closeOnce  sync.Once
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithAsyncBuffer makes Emit non-blocking. Events beyond size are dropped.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		p.bufferSize = size
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

// NewPublisher creates a publisher on sink.
func NewPublisher(sink Sink, opts ...Option) *Publisher {
	p := &Publisher{sink: sink, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	if p.bufferSize > 0 {
		p.inbox = make(chan Event, p.bufferSize)
		ctx, cancel := context.WithCancel(context.Background())
		p.cancel = cancel
		w := NewWorker(sink, p.inbox, p.logger)
		w.onError = p.metrics.IncFailed
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			_ = w.Run(ctx)
		}()
	}
	return p
}

// Emit fills ID, timestamp, request id, actor and client from ctx when
// missing and delivers the event.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Action == "" {
		return fmt.Errorf("activity event requires an action")
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx).UTC().Truncate(time.Millisecond)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.Actor == "" {
		event.Actor = requestcontext.Actor(ctx)
	}
	if event.Client == "" {
		event.Client = requestcontext.Client(ctx)
	}

	if p.inbox == nil {
		if err := p.sink.Append(ctx, event); err != nil {
			p.metrics.IncFailed()
			return fmt.Errorf("append activity event: %w", err)
		}
		p.metrics.IncEmitted(string(event.Action))
		return nil
	}

	select {
	case p.inbox <- event:
		p.metrics.IncEmitted(string(event.Action))
	default:
		p.metrics.IncDropped()
		p.logger.WarnContext(ctx, "activity buffer full, dropping event",
			"action", event.Action,
			"audit_id", event.AuditID,
		)
	}
	return nil
}

// Close waits for buffered events to be delivered. Call it after every
// emitter has stopped; Emit after Close panics in async mode.
func (p *Publisher) Close() error {
	p.closeOnce.Do(func() {
		if p.inbox == nil {
			return
		}
		close(p.inbox)
		p.wg.Wait()
		p.cancel()
	})
	return nil
}
