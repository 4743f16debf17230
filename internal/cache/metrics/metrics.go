package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Miss reasons.
const (
	MissEmpty   = "empty"
	MissExpired = "expired"
)

// Metrics provides observability for the bundle cache.
type Metrics struct {
	Hits          prometheus.Counter
	Misses        *prometheus.CounterVec
	Writes        prometheus.Counter
	Invalidations *prometheus.CounterVec
}

// New creates a new Metrics instance with all cache metrics registered.
func New() *Metrics {
	return &Metrics{
		Hits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "checkpoint_cache_hits_total",
			Help: "Total bundle cache reads served from memory",
		}),
		Misses: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "checkpoint_cache_misses_total",
			Help: "Total bundle cache misses by reason",
		}, []string{"reason"}), // reason: "empty", "expired"
		Writes: promauto.NewCounter(prometheus.CounterOpts{
			Name: "checkpoint_cache_writes_total",
			Help: "Total bundle cache writes",
		}),
		Invalidations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "checkpoint_cache_invalidations_total",
			Help: "Total bundle cache invalidations by origin",
		}, []string{"origin"}), // origin: "local", "remote"
	}
}

func (m *Metrics) IncrementHit() {
	if m != nil {
		m.Hits.Inc()
	}
}

// IncrementMiss records a miss with its reason.
func (m *Metrics) IncrementMiss(reason string) {
	if m != nil {
		m.Misses.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) IncrementWrite() {
	if m != nil {
		m.Writes.Inc()
	}
}

// IncrementInvalidation records an invalidation coming from this process
// ("local") or from another replica ("remote").
func (m *Metrics) IncrementInvalidation(origin string) {
	if m != nil {
		m.Invalidations.WithLabelValues(origin).Inc()
	}
}
