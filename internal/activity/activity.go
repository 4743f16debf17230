// Package activity records what happened to audits so other systems (BI,
// notification jobs) can follow along. Events are best effort: a failed
// emission never undoes the write that caused it.
package activity

import (
	"context"
	"time"

	id "checkpoint/pkg/domain"
)

// Action names one kind of activity.
type Action string

const (
	ActionAuditCreated        Action = "audit_created"
	ActionAuditClosed         Action = "audit_closed"
	ActionResultSaved         Action = "result_saved"
	ActionActionPlanSaved     Action = "action_plan_saved"
	ActionNonConformityClosed Action = "nonconformity_closed"
	ActionChecklistSeeded     Action = "checklist_seeded"
)

// Event is one activity record. It is transport-agnostic so sinks can fan out.
type Event struct {
	ID            string           `json:"id"`
	Action        Action           `json:"action"`
	AuditID       id.AuditID       `json:"audit_id"`
	ResultID      id.ResultID      `json:"result_id"`
	RequirementID id.RequirementID `json:"requirement_id,omitempty"`
	Location      string           `json:"location,omitempty"`
	Outcome       id.Outcome       `json:"outcome,omitempty"`
	Actor         string           `json:"actor,omitempty"`
	Client        string           `json:"client,omitempty"`
	RequestID     string           `json:"request_id,omitempty"`
	Timestamp     time.Time        `json:"timestamp"`
}

// Key is the partitioning key: events of one audit stay ordered.
func (e Event) Key() string {
	if e.AuditID.IsNil() {
		return string(e.Action)
	}
	return e.AuditID.String()
}

// Sink persists or forwards events.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// Emitter is what services depend on.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}
