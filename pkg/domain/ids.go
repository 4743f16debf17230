package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "checkpoint/pkg/domain-errors"
)

// Storage identities. Each is a distinct type so an audit id can never be
// passed where a result id is expected.
type (
	AuditID      uuid.UUID
	ResultID     uuid.UUID
	ActionPlanID uuid.UUID
)

// Checklist business keys. These are the stable ids printed on the checklist
// ("P1", "P1.2", "P1.2.3"), not the document store's storage ids.
type (
	PillarID      string
	StandardID    string
	RequirementID string
)

func parseUUID(s, kind string) (uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" cannot be nil")
	}
	return u, nil
}

// ParseAuditID parses external input into an AuditID.
// Errors: CodeInvalidInput for empty, malformed or nil uuids.
func ParseAuditID(s string) (AuditID, error) {
	u, err := parseUUID(s, "audit id")
	return AuditID(u), err
}

// ParseResultID parses external input into a ResultID.
func ParseResultID(s string) (ResultID, error) {
	u, err := parseUUID(s, "result id")
	return ResultID(u), err
}

// ParseActionPlanID parses external input into an ActionPlanID.
func ParseActionPlanID(s string) (ActionPlanID, error) {
	u, err := parseUUID(s, "action plan id")
	return ActionPlanID(u), err
}

func NewAuditID() AuditID           { return AuditID(uuid.New()) }
func NewResultID() ResultID         { return ResultID(uuid.New()) }
func NewActionPlanID() ActionPlanID { return ActionPlanID(uuid.New()) }

func (id AuditID) String() string      { return uuid.UUID(id).String() }
func (id ResultID) String() string     { return uuid.UUID(id).String() }
func (id ActionPlanID) String() string { return uuid.UUID(id).String() }

func (id AuditID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id ResultID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id ActionPlanID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// MarshalText lets typed ids render as plain uuid strings in JSON.
func (id AuditID) MarshalText() ([]byte, error)      { return uuid.UUID(id).MarshalText() }
func (id ResultID) MarshalText() ([]byte, error)     { return uuid.UUID(id).MarshalText() }
func (id ActionPlanID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *AuditID) UnmarshalText(b []byte) error      { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *ResultID) UnmarshalText(b []byte) error     { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *ActionPlanID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

// ParseRequirementID trims and validates a requirement business key.
func ParseRequirementID(s string) (RequirementID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "requirement id cannot be empty")
	}
	return RequirementID(s), nil
}

// ParseStandardID trims and validates a standard business key.
func ParseStandardID(s string) (StandardID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "standard id cannot be empty")
	}
	return StandardID(s), nil
}
