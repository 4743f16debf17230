package models

import (
	"strings"
	"time"

	id "checkpoint/pkg/domain"
	dErrors "checkpoint/pkg/domain-errors"
)

// PlanState tracks remediation progress of a non-conformity.
type PlanState string

const (
	PlanPending    PlanState = "pendiente"
	PlanInProgress PlanState = "en_progreso"
	PlanCompleted  PlanState = "completado"
)

// PlanStates lists every state in dashboard order.
var PlanStates = []PlanState{PlanPending, PlanInProgress, PlanCompleted}

func (s PlanState) IsValid() bool {
	switch s {
	case PlanPending, PlanInProgress, PlanCompleted:
		return true
	}
	return false
}

// ParsePlanState validates external input; empty means pending.
func ParsePlanState(s string) (PlanState, error) {
	if s == "" {
		return PlanPending, nil
	}
	st := PlanState(s)
	if !st.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid action plan state: "+s)
	}
	return st, nil
}

// ActionPlan is the remediation record for exactly one non-conforming Result.
type ActionPlan struct {
	ID                 id.ActionPlanID `json:"id"`
	ResultID           id.ResultID     `json:"result_id"`
	Responsible        string          `json:"responsible"`
	CommitmentDate     *time.Time      `json:"commitment_date"`
	RecommendedActions string          `json:"recommended_actions"`
	State              PlanState       `json:"state"`
	Evidence           []Attachment    `json:"evidence"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ActionPlanInput carries the editable fields of a plan.
type ActionPlanInput struct {
	Responsible        string
	CommitmentDate     *time.Time
	RecommendedActions string
	State              PlanState
	Evidence           []Attachment
}

// Normalize trims free text and fills defaults.
func (in *ActionPlanInput) Normalize() {
	in.Responsible = strings.TrimSpace(in.Responsible)
	in.RecommendedActions = strings.TrimSpace(in.RecommendedActions)
	if in.State == "" {
		in.State = PlanPending
	}
	for i := range in.Evidence {
		in.Evidence[i] = in.Evidence[i].Normalize()
	}
}

// Validate checks invariants of the input.
func (in *ActionPlanInput) Validate() error {
	if !in.State.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "invalid action plan state")
	}
	return nil
}

// NewActionPlan creates a plan. New plans always start Pending regardless of
// the state in the input.
func NewActionPlan(planID id.ActionPlanID, resultID id.ResultID, in ActionPlanInput, now time.Time) *ActionPlan {
	return &ActionPlan{
		ID:                 planID,
		ResultID:           resultID,
		Responsible:        in.Responsible,
		CommitmentDate:     in.CommitmentDate,
		RecommendedActions: in.RecommendedActions,
		State:              PlanPending,
		Evidence:           in.Evidence,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// Apply overwrites the editable fields.
func (p *ActionPlan) Apply(in ActionPlanInput, now time.Time) {
	p.Responsible = in.Responsible
	p.CommitmentDate = in.CommitmentDate
	p.RecommendedActions = in.RecommendedActions
	p.State = in.State
	p.Evidence = in.Evidence
	p.UpdatedAt = now
}
