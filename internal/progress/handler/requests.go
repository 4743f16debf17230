package handler

import (
	"strings"

	auditmodels "checkpoint/internal/audits/models"
	id "checkpoint/pkg/domain"
	dErrors "checkpoint/pkg/domain-errors"
)

// SaveResultRequest is the body of PUT /audits/{auditID}/results/{requirementID}.
type SaveResultRequest struct {
	Outcome          string                   `json:"outcome"`
	Comment          string                   `json:"comment"`
	Attachments      []auditmodels.Attachment `json:"attachments"`
	ExistingResultID string                   `json:"existing_result_id"`

	outcome  id.Outcome
	existing *id.ResultID
}

// Validate parses the outcome and the optional existing result id.
func (r *SaveResultRequest) Validate() error {
	outcome, err := id.ParseOutcome(strings.TrimSpace(r.Outcome))
	if err != nil {
		return err
	}
	r.outcome = outcome
	r.Comment = strings.TrimSpace(r.Comment)
	for _, a := range r.Attachments {
		if strings.TrimSpace(a.URL) == "" {
			return dErrors.New(dErrors.CodeValidation, "attachment url is required")
		}
	}
	if s := strings.TrimSpace(r.ExistingResultID); s != "" {
		resultID, err := id.ParseResultID(s)
		if err != nil {
			return err
		}
		r.existing = &resultID
	}
	return nil
}

func (r *SaveResultRequest) input(auditID id.AuditID, reqID id.RequirementID) auditmodels.ResultInput {
	return auditmodels.ResultInput{
		AuditID:       auditID,
		RequirementID: reqID,
		Outcome:       r.outcome,
		Comment:       r.Comment,
		Attachments:   r.Attachments,
	}
}
