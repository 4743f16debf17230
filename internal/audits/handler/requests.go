package handler

import (
	"strings"
	"time"

	"checkpoint/internal/audits/models"
	id "checkpoint/pkg/domain"
	dErrors "checkpoint/pkg/domain-errors"
)

// CreateAuditRequest is the body of POST /audits.
type CreateAuditRequest struct {
	Location string   `json:"location"`
	Auditors []string `json:"auditors"`
	Auditees []string `json:"auditees"`
}

func (r *CreateAuditRequest) Validate() error {
	r.Location = strings.TrimSpace(r.Location)
	if r.Location == "" {
		return dErrors.New(dErrors.CodeValidation, "location is required")
	}
	return nil
}

func (r *CreateAuditRequest) input() models.CreateAuditInput {
	return models.CreateAuditInput{Location: r.Location, Auditors: r.Auditors, Auditees: r.Auditees}
}

// SaveActionPlanRequest is the body of PUT /results/{resultID}/action-plan.
// CommitmentDate accepts a calendar date (2006-01-02) or an RFC 3339 timestamp.
type SaveActionPlanRequest struct {
	Responsible        string              `json:"responsible"`
	CommitmentDate     string              `json:"commitment_date"`
	RecommendedActions string              `json:"recommended_actions"`
	State              string              `json:"state"`
	Evidence           []models.Attachment `json:"evidence"`
	ExistingPlanID     string              `json:"existing_plan_id"`

	commitment *time.Time
	state      models.PlanState
	existing   *id.ActionPlanID
}

func (r *SaveActionPlanRequest) Validate() error {
	state, err := models.ParsePlanState(strings.TrimSpace(r.State))
	if err != nil {
		return err
	}
	r.state = state
	if raw := strings.TrimSpace(r.CommitmentDate); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return err
		}
		r.commitment = &t
	}
	if raw := strings.TrimSpace(r.ExistingPlanID); raw != "" {
		planID, err := id.ParseActionPlanID(raw)
		if err != nil {
			return err
		}
		r.existing = &planID
	}
	return nil
}

func (r *SaveActionPlanRequest) input() models.ActionPlanInput {
	return models.ActionPlanInput{
		Responsible:        r.Responsible,
		CommitmentDate:     r.commitment,
		RecommendedActions: r.RecommendedActions,
		State:              r.state,
		Evidence:           r.Evidence,
	}
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, dErrors.New(dErrors.CodeValidation, "commitment_date must be YYYY-MM-DD or RFC 3339")
	}
	return t, nil
}
