// Package service serves dashboard rollups from the shared snapshot.
package service

import (
	"context"
	"errors"
	"log/slog"

	auditmodels "checkpoint/internal/audits/models"
	"checkpoint/internal/cache"
	"checkpoint/internal/dashboard"
	id "checkpoint/pkg/domain"
	dErrors "checkpoint/pkg/domain-errors"
	"checkpoint/pkg/requestcontext"
)

// BundleLoader reads the shared snapshot.
type BundleLoader interface {
	Load(ctx context.Context) (*cache.Bundle, error)
}

// Overview is the headline of the dashboard.
type Overview struct {
	Audits            int                 `json:"audits"`
	TotalRequirements int                 `json:"total_requirements"`
	Results           dashboard.Counters  `json:"results"`
	Plans             dashboard.PlanTally `json:"action_plans"`
}

// AuditSummary is one audit's outcome split and report score.
type AuditSummary struct {
	AuditID      id.AuditID                `json:"audit_id"`
	Number       string                    `json:"number"`
	Location     string                    `json:"location"`
	Distribution []dashboard.Slice         `json:"distribution"`
	Conformity   dashboard.ConformityScore `json:"conformity"`
}

// History is one requirement's outcomes over a window.
type History struct {
	RequirementID id.RequirementID         `json:"requirement_id"`
	Operational   string                   `json:"operational_requirement"`
	Period        string                   `json:"period"`
	Points        []dashboard.HistoryPoint `json:"points"`
}

type Service struct {
	loader    BundleLoader
	locations []string
	logger    *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithLocations sets the rows of the location matrix.
func WithLocations(locations []string) Option {
	return func(s *Service) {
		if len(locations) > 0 {
			s.locations = locations
		}
	}
}

func New(loader BundleLoader, opts ...Option) (*Service, error) {
	if loader == nil {
		return nil, errors.New("bundle loader is required")
	}
	s := &Service{
		loader:    loader,
		locations: dashboard.DefaultLocations,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Overview counts every result and action plan on record.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	b, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &Overview{
		Audits:            len(b.Audits),
		TotalRequirements: b.TotalRequirements,
		Results:           dashboard.GlobalCounters(dashboard.Flatten(b.Audits)),
		Plans:             dashboard.PlanCounters(b.ActionPlans),
	}, nil
}

// Audit summarizes one audit.
func (s *Service) Audit(ctx context.Context, auditID id.AuditID) (*AuditSummary, error) {
	b, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	a, ok := findAudit(b.Audits, auditID)
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "audit not found")
	}
	return &AuditSummary{
		AuditID:      a.ID,
		Number:       a.Number,
		Location:     a.Location,
		Distribution: dashboard.AuditDistribution(a),
		Conformity:   dashboard.Conformity(a.Results),
	}, nil
}

// RequirementHistory lists reqID's outcomes in the window ending at the
// request time.
func (s *Service) RequirementHistory(ctx context.Context, reqID id.RequirementID, w dashboard.Window) (*History, error) {
	b, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	req, ok := b.Tree.Requirement(reqID)
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "requirement not found")
	}
	now := requestcontext.Now(ctx)
	return &History{
		RequirementID: reqID,
		Operational:   req.Operational,
		Period:        w.Label,
		Points:        dashboard.RequirementHistory(dashboard.Flatten(b.Audits), reqID, w, now),
	}, nil
}

// Locations compares outcomes across the configured locations.
func (s *Service) Locations(ctx context.Context) ([]dashboard.LocationRow, error) {
	b, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	entries := dashboard.Flatten(b.Audits)
	rows := dashboard.LocationMatrix(entries, s.locations)
	if skipped := len(entries) - countedResults(rows); skipped > 0 {
		s.logger.DebugContext(ctx, "results left out of location matrix",
			"skipped", skipped,
			"locations", s.locations,
		)
	}
	return rows, nil
}

func countedResults(rows []dashboard.LocationRow) int {
	n := 0
	for _, r := range rows {
		n += r.Total()
	}
	return n
}

func findAudit(audits []auditmodels.Audit, auditID id.AuditID) (auditmodels.Audit, bool) {
	for _, a := range audits {
		if a.ID == auditID {
			return a, true
		}
	}
	return auditmodels.Audit{}, false
}
