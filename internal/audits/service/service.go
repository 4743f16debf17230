// Package service manages the audit lifecycle, action plans and
// non-conformity closure.
package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"checkpoint/internal/activity"
	"checkpoint/internal/audits/metrics"
	"checkpoint/internal/audits/models"
	"checkpoint/internal/cache"
	id "checkpoint/pkg/domain"
	dErrors "checkpoint/pkg/domain-errors"
	"checkpoint/pkg/platform/sentinel"
	"checkpoint/pkg/platform/tx"
	"checkpoint/pkg/requestcontext"
)

// maxNumberAttempts bounds retries when two creations draw the same number.
const maxNumberAttempts = 3

// Store persists audits, results and action plans.
type Store interface {
	CreateAudit(ctx context.Context, a *models.Audit) error
	GetAudit(ctx context.Context, auditID id.AuditID) (*models.Audit, error)
	UpdateAudit(ctx context.Context, a *models.Audit) error
	CountAudits(ctx context.Context) (int, error)
	LoadResults(ctx context.Context, auditID id.AuditID) ([]models.Result, error)
	GetResult(ctx context.Context, resultID id.ResultID) (*models.Result, error)
	UpdateResult(ctx context.Context, r *models.Result) error
	GetActionPlanByResult(ctx context.Context, resultID id.ResultID) (*models.ActionPlan, error)
	InsertActionPlan(ctx context.Context, p *models.ActionPlan) error
	UpdateActionPlan(ctx context.Context, p *models.ActionPlan) error
}

// TxRunner runs fn in one transaction.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// BundleLoader reads the shared snapshot and drops it after writes.
type BundleLoader interface {
	Load(ctx context.Context) (*cache.Bundle, error)
	Invalidate(ctx context.Context, reason string)
}

type ActivityEmitter interface {
	Emit(ctx context.Context, event activity.Event) error
}

// Service orchestrates audits and their remediation.
type Service struct {
	store     Store
	tx        TxRunner
	loader    BundleLoader
	emitter   ActivityEmitter
	locations []string
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithActivityEmitter(e ActivityEmitter) Option {
	return func(s *Service) {
		s.emitter = e
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTxRunner wraps audit creation in a transaction.
func WithTxRunner(runner TxRunner) Option {
	return func(s *Service) {
		if runner != nil {
			s.tx = runner
		}
	}
}

// WithLocations restricts audits to the given locations.
func WithLocations(locations []string) Option {
	return func(s *Service) {
		s.locations = locations
	}
}

// New constructs a Service.
func New(store Store, loader BundleLoader, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("audit store is required")
	}
	if loader == nil {
		return nil, errors.New("bundle loader is required")
	}
	s := &Service{
		store:  store,
		loader: loader,
		tx:     tx.NoopRunner{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// CreateAudit opens a new audit numbered PS-YYYYMMDD-NNN, where NNN is the
// count of existing audits plus one. A taken number is retried with the next
// sequence a bounded number of times.
func (s *Service) CreateAudit(ctx context.Context, in models.CreateAuditInput) (*models.Audit, error) {
	if len(s.locations) > 0 && !slices.Contains(s.locations, in.Location) {
		return nil, dErrors.New(dErrors.CodeValidation, "unknown location: "+in.Location)
	}
	now := requestcontext.Now(ctx)
	actor := requestcontext.Actor(ctx)

	var audit *models.Audit
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
			count, err := s.store.CountAudits(ctx)
			if err != nil {
				return err
			}
			a, err := models.NewAudit(id.NewAuditID(), models.AuditNumber(now, count+1+attempt),
				in.Location, in.Auditors, in.Auditees, actor, now)
			if err != nil {
				return err
			}
			if err := s.store.CreateAudit(ctx, a); err != nil {
				return err
			}
			audit = a
			return nil
		})
		if err == nil {
			break
		}
		if errors.Is(err, sentinel.ErrConflict) {
			s.metrics.IncrementNumberCollision()
			s.logger.WarnContext(ctx, "audit number taken, retrying", "attempt", attempt+1)
			continue
		}
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, storeError(err, "audit not found", "failed to create audit")
	}
	if audit == nil {
		return nil, dErrors.New(dErrors.CodeConflict, "could not allocate an audit number")
	}

	s.metrics.IncrementAuditCreated()
	s.loader.Invalidate(ctx, string(activity.ActionAuditCreated))
	s.logActivity(ctx, activity.Event{
		Action:   activity.ActionAuditCreated,
		AuditID:  audit.ID,
		Location: audit.Location,
	}, "number", audit.Number)
	return audit, nil
}

// GetAudit returns the audit with its current results.
func (s *Service) GetAudit(ctx context.Context, auditID id.AuditID) (*models.Audit, error) {
	a, err := s.store.GetAudit(ctx, auditID)
	if err != nil {
		return nil, storeError(err, "audit not found", "failed to load audit")
	}
	results, err := s.store.LoadResults(ctx, auditID)
	if err != nil {
		return nil, storeError(err, "audit not found", "failed to load results")
	}
	a.Results = results
	return a, nil
}

// CloseAudit moves an open audit to closed. Closing twice is an invariant
// violation.
func (s *Service) CloseAudit(ctx context.Context, auditID id.AuditID) (*models.Audit, error) {
	a, err := s.store.GetAudit(ctx, auditID)
	if err != nil {
		return nil, storeError(err, "audit not found", "failed to load audit")
	}
	if err := a.Close(requestcontext.Now(ctx)); err != nil {
		return nil, err
	}
	if err := s.store.UpdateAudit(ctx, a); err != nil {
		return nil, storeError(err, "audit not found", "failed to close audit")
	}

	s.metrics.IncrementAuditClosed()
	s.loader.Invalidate(ctx, string(activity.ActionAuditClosed))
	s.logActivity(ctx, activity.Event{
		Action:   activity.ActionAuditClosed,
		AuditID:  a.ID,
		Location: a.Location,
	})
	return a, nil
}

// ListAudits returns every audit with results, newest first, from the
// shared snapshot.
func (s *Service) ListAudits(ctx context.Context) ([]models.Audit, error) {
	b, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	return b.Audits, nil
}

// NonConformities lists the audit's open NC results with their checklist
// wording and plan state.
func (s *Service) NonConformities(ctx context.Context, auditID id.AuditID) ([]models.NonConformity, error) {
	if _, err := s.store.GetAudit(ctx, auditID); err != nil {
		return nil, storeError(err, "audit not found", "failed to load audit")
	}
	results, err := s.store.LoadResults(ctx, auditID)
	if err != nil {
		return nil, storeError(err, "audit not found", "failed to load results")
	}
	b, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	plans := make(map[id.ResultID]models.ActionPlan, len(b.ActionPlans))
	for _, p := range b.ActionPlans {
		plans[p.ResultID] = p
	}

	out := make([]models.NonConformity, 0)
	for _, r := range results {
		if !r.IsNonConformity() {
			continue
		}
		nc := models.NonConformity{Result: r, PlanState: models.PlanPending}
		if p, ok := b.Tree.Pillar(r.PillarID); ok {
			nc.Pillar = p.Name
		}
		if std, ok := b.Tree.Standard(r.StandardID); ok {
			nc.Standard = std.Description
		}
		if req, ok := b.Tree.Requirement(r.RequirementID); ok {
			nc.Requirement = req.Operational
			nc.Guidance = req.Guidance
		}
		if p, ok := plans[r.ID]; ok {
			planID := p.ID
			nc.PlanID = &planID
			nc.PlanState = p.State
		}
		out = append(out, nc)
	}
	return out, nil
}

// GetActionPlan returns the plan attached to resultID.
func (s *Service) GetActionPlan(ctx context.Context, resultID id.ResultID) (*models.ActionPlan, error) {
	p, err := s.store.GetActionPlanByResult(ctx, resultID)
	if err != nil {
		return nil, storeError(err, "action plan not found", "failed to load action plan")
	}
	return p, nil
}

// SaveActionPlan creates the result's plan, always Pending, or updates the
// existing one. When existing is set it must name the result's current plan.
func (s *Service) SaveActionPlan(ctx context.Context, resultID id.ResultID, in models.ActionPlanInput, existing *id.ActionPlanID) (*models.ActionPlan, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.store.GetResult(ctx, resultID); err != nil {
		return nil, storeError(err, "result not found", "failed to load result")
	}
	now := requestcontext.Now(ctx)

	current, err := s.store.GetActionPlanByResult(ctx, resultID)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return nil, storeError(err, "action plan not found", "failed to load action plan")
	}
	if existing != nil && (current == nil || current.ID != *existing) {
		return nil, dErrors.New(dErrors.CodeNotFound, "action plan not found")
	}

	var plan *models.ActionPlan
	if current != nil {
		current.Apply(in, now)
		if err := s.store.UpdateActionPlan(ctx, current); err != nil {
			return nil, storeError(err, "action plan not found", "failed to update action plan")
		}
		plan = current
	} else {
		plan = models.NewActionPlan(id.NewActionPlanID(), resultID, in, now)
		if err := s.store.InsertActionPlan(ctx, plan); err != nil {
			return nil, storeError(err, "result not found", "failed to save action plan")
		}
	}

	s.metrics.IncrementPlanSaved(string(plan.State))
	s.loader.Invalidate(ctx, string(activity.ActionActionPlanSaved))
	s.logActivity(ctx, activity.Event{
		Action:   activity.ActionActionPlanSaved,
		ResultID: resultID,
	}, "action_plan_id", plan.ID.String(), "state", string(plan.State))
	return plan, nil
}

// CloseNonConformity marks an NC result as closed and stamps the closing
// comment. Only open non-conformities can be closed.
func (s *Service) CloseNonConformity(ctx context.Context, resultID id.ResultID) (*models.Result, error) {
	r, err := s.store.GetResult(ctx, resultID)
	if err != nil {
		return nil, storeError(err, "result not found", "failed to load result")
	}
	if !r.IsNonConformity() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "result is not an open non-conformity")
	}
	r.Outcome = id.OutcomeNonConformingClosed
	r.Comment = models.CloseNonConformityComment(requestcontext.Now(ctx))
	if err := s.store.UpdateResult(ctx, r); err != nil {
		return nil, storeError(err, "result not found", "failed to close non-conformity")
	}

	s.metrics.IncrementNonConformityClosed()
	s.loader.Invalidate(ctx, string(activity.ActionNonConformityClosed))
	s.logActivity(ctx, activity.Event{
		Action:        activity.ActionNonConformityClosed,
		AuditID:       r.AuditID,
		ResultID:      r.ID,
		RequirementID: r.RequirementID,
		Outcome:       r.Outcome,
	})
	return r, nil
}

func (s *Service) logActivity(ctx context.Context, event activity.Event, attrs ...any) {
	args := append(attrs, "event", string(event.Action), "log_type", "activity")
	if !event.AuditID.IsNil() {
		args = append(args, "audit_id", event.AuditID.String())
	}
	if !event.ResultID.IsNil() {
		args = append(args, "result_id", event.ResultID.String())
	}
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		args = append(args, "request_id", requestID)
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, string(event.Action), args...)
	}
	if s.emitter == nil {
		return
	}
	if err := s.emitter.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit activity event", "error", err, "event", string(event.Action))
	}
}

func storeError(err error, notFoundMsg, msg string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, notFoundMsg)
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeConflict, msg)
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, msg)
	}
	if _, ok := dErrors.As(err); ok {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}
