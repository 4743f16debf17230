package models

import (
	id "checkpoint/pkg/domain"
)

// NonConformity is an open NC result shown with its checklist wording and the
// state of its remediation. PlanState is pending when no plan exists yet.
type NonConformity struct {
	Result      Result           `json:"result"`
	Pillar      string           `json:"pillar"`
	Standard    string           `json:"standard"`
	Requirement string           `json:"requirement"`
	Guidance    string           `json:"guidance,omitempty"`
	PlanID      *id.ActionPlanID `json:"action_plan_id,omitempty"`
	PlanState   PlanState        `json:"plan_state"`
}

// CreateAuditInput carries the caller supplied fields of a new audit.
type CreateAuditInput struct {
	Location string
	Auditors []string
	Auditees []string
}
