package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for audit lifecycle operations.
type Metrics struct {
	AuditsCreated       prometheus.Counter
	AuditsClosed        prometheus.Counter
	NumberCollisions    prometheus.Counter
	ActionPlansSaved    *prometheus.CounterVec
	NonConformityClosed prometheus.Counter
}

// New creates a new Metrics instance with all audit metrics registered.
func New() *Metrics {
	return &Metrics{
		AuditsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "checkpoint_audits_created_total",
			Help: "Total audits created",
		}),
		AuditsClosed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "checkpoint_audits_closed_total",
			Help: "Total audits closed",
		}),
		NumberCollisions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "checkpoint_audit_number_collisions_total",
			Help: "Audit creations retried because the number was already taken",
		}),
		ActionPlansSaved: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "checkpoint_action_plans_saved_total",
			Help: "Total action plan saves by resulting state",
		}, []string{"state"}),
		NonConformityClosed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "checkpoint_nonconformities_closed_total",
			Help: "Total non-conformities closed",
		}),
	}
}

func (m *Metrics) IncrementAuditCreated() {
	if m != nil {
		m.AuditsCreated.Inc()
	}
}

func (m *Metrics) IncrementAuditClosed() {
	if m != nil {
		m.AuditsClosed.Inc()
	}
}

func (m *Metrics) IncrementNumberCollision() {
	if m != nil {
		m.NumberCollisions.Inc()
	}
}

func (m *Metrics) IncrementPlanSaved(state string) {
	if m != nil {
		m.ActionPlansSaved.WithLabelValues(state).Inc()
	}
}

func (m *Metrics) IncrementNonConformityClosed() {
	if m != nil {
		m.NonConformityClosed.Inc()
	}
}
