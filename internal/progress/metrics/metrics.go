package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for result recording.
type Metrics struct {
	ResultsSaved *prometheus.CounterVec
	SaveFailures *prometheus.CounterVec
	SaveDuration prometheus.Histogram
}

// New creates a new Metrics instance with all progress metrics registered.
func New() *Metrics {
	return &Metrics{
		ResultsSaved: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "checkpoint_results_saved_total",
			Help: "Total requirement results saved by outcome and mode",
		}, []string{"outcome", "mode"}), // mode: "insert", "update"
		SaveFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "checkpoint_result_save_failures_total",
			Help: "Total rejected or failed result saves by error code",
		}, []string{"code"}),
		SaveDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "checkpoint_result_save_duration_seconds",
			Help:    "Time spent persisting one result",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

func (m *Metrics) IncrementSaved(outcome, mode string) {
	if m != nil {
		m.ResultsSaved.WithLabelValues(outcome, mode).Inc()
	}
}

func (m *Metrics) IncrementFailure(code string) {
	if m != nil {
		m.SaveFailures.WithLabelValues(code).Inc()
	}
}

// ObserveSave records how long a successful save took, in seconds.
func (m *Metrics) ObserveSave(seconds float64) {
	if m != nil {
		m.SaveDuration.Observe(seconds)
	}
}
