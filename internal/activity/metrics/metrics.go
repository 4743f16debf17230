package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks activity event delivery.
type Metrics struct {
	Emitted *prometheus.CounterVec
	Failed  prometheus.Counter
	Dropped prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		Emitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "checkpoint_activity_events_emitted_total",
			Help: "Activity events accepted for delivery by action",
		}, []string{"action"}),
		Failed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "checkpoint_activity_events_failed_total",
			Help: "Activity events the sink rejected",
		}),
		Dropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "checkpoint_activity_events_dropped_total",
			Help: "Activity events dropped because the async buffer was full",
		}),
	}
}

func (m *Metrics) IncEmitted(action string) {
	if m != nil {
		m.Emitted.WithLabelValues(action).Inc()
	}
}

func (m *Metrics) IncFailed() {
	if m != nil {
		m.Failed.Inc()
	}
}

func (m *Metrics) IncDropped() {
	if m != nil {
		m.Dropped.Inc()
	}
}
