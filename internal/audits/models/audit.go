package models

import (
	"fmt"
	"strings"
	"time"

	id "checkpoint/pkg/domain"
	dErrors "checkpoint/pkg/domain-errors"
	pstrings "checkpoint/pkg/platform/strings"
)

// AuditState is the lifecycle state of an audit.
type AuditState string

const (
	AuditOpen   AuditState = "abierta"
	AuditClosed AuditState = "cerrada"
)

// CanTransitionTo enforces Open -> Closed, exactly once, no reopen.
func (s AuditState) CanTransitionTo(target AuditState) bool {
	return s == AuditOpen && target == AuditClosed
}

// Audit is one evaluation of the checklist at a location.
//
// Invariants:
//   - Location is non-empty
//   - State moves Open -> Closed once; ClosedAt is nil while Open
//   - Results are only created or updated while Open
type Audit struct {
	ID        id.AuditID `json:"id"`
	Number    string     `json:"number"`
	Location  string     `json:"location"`
	Auditors  []string   `json:"auditors"`
	Auditees  []string   `json:"auditees"`
	State     AuditState `json:"state"`
	CreatedBy string     `json:"created_by,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	ClosedAt  *time.Time `json:"closed_at"`
	Results   []Result   `json:"results,omitempty"`
}

// NewAudit builds an Open audit. The number is assigned by the caller.
func NewAudit(auditID id.AuditID, number, location string, auditors, auditees []string, createdBy string, now time.Time) (*Audit, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "audit location cannot be empty")
	}
	if number == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "audit number cannot be empty")
	}
	return &Audit{
		ID:        auditID,
		Number:    number,
		Location:  location,
		Auditors:  pstrings.DedupeAndTrim(auditors),
		Auditees:  pstrings.DedupeAndTrim(auditees),
		State:     AuditOpen,
		CreatedBy: createdBy,
		CreatedAt: now,
	}, nil
}

func (a *Audit) IsOpen() bool {
	return a.State == AuditOpen
}

// CanClose checks the Open -> Closed transition.
func (a *Audit) CanClose() error {
	if !a.State.CanTransitionTo(AuditClosed) {
		return dErrors.New(dErrors.CodeInvariantViolation, "audit is already closed")
	}
	return nil
}

// Close validates and applies closure.
func (a *Audit) Close(now time.Time) error {
	if err := a.CanClose(); err != nil {
		return err
	}
	a.State = AuditClosed
	a.ClosedAt = &now
	return nil
}

// EnsureWritable rejects result mutations on a closed audit.
func (a *Audit) EnsureWritable() error {
	if !a.IsOpen() {
		return dErrors.New(dErrors.CodeInvariantViolation, "audit is closed; results are read-only")
	}
	return nil
}

// AuditNumber renders "PS-YYYYMMDD-NNN" where seq is the running count of
// existing audits plus one. Two concurrent creations can draw the same seq;
// the store does not serialize numbering.
func AuditNumber(now time.Time, seq int) string {
	return fmt.Sprintf("PS-%s-%03d", now.Format("20060102"), seq)
}
