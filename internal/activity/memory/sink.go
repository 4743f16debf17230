package memory

import (
	"context"
	"sync"

	"checkpoint/internal/activity"
	id "checkpoint/pkg/domain"
)

// Sink keeps events in memory. Used in tests and when no broker is configured.
type Sink struct {
	mu     sync.RWMutex
	events []activity.Event
}

func NewSink() *Sink {
	return &Sink{}
}

func (s *Sink) Append(_ context.Context, event activity.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// Events returns a snapshot of every event.
func (s *Sink) Events() []activity.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]activity.Event(nil), s.events...)
}

// ForAudit returns the events recorded for one audit in emission order.
func (s *Sink) ForAudit(auditID id.AuditID) []activity.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []activity.Event
	for _, e := range s.events {
		if e.AuditID == auditID {
			out = append(out, e)
		}
	}
	return out
}
