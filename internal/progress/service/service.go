// Package service records requirement results and serves audit progress.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"checkpoint/internal/activity"
	auditmodels "checkpoint/internal/audits/models"
	"checkpoint/internal/cache"
	checklist "checkpoint/internal/checklist/models"
	"checkpoint/internal/progress/metrics"
	id "checkpoint/pkg/domain"
	dErrors "checkpoint/pkg/domain-errors"
	"checkpoint/pkg/platform/sentinel"
	"checkpoint/pkg/requestcontext"
)

// ResultStore persists audits' results.
type ResultStore interface {
	GetAudit(ctx context.Context, auditID id.AuditID) (*auditmodels.Audit, error)
	LoadResults(ctx context.Context, auditID id.AuditID) ([]auditmodels.Result, error)
	GetResult(ctx context.Context, resultID id.ResultID) (*auditmodels.Result, error)
	InsertResult(ctx context.Context, r *auditmodels.Result) error
	UpdateResult(ctx context.Context, r *auditmodels.Result) error
}

// BundleLoader reads the shared snapshot and drops it after writes.
type BundleLoader interface {
	Load(ctx context.Context) (*cache.Bundle, error)
	Invalidate(ctx context.Context, reason string)
}

type ActivityEmitter interface {
	Emit(ctx context.Context, event activity.Event) error
}

// Service opens audit sessions and records results.
type Service struct {
	results ResultStore
	loader  BundleLoader
	order   checklist.PillarOrder
	emitter ActivityEmitter
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
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

// WithPillarOrder fixes the display order of pillar cards. Without it the
// checklist's own order is used.
func WithPillarOrder(order checklist.PillarOrder) Option {
	return func(s *Service) {
		s.order = order
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// New constructs a Service.
func New(results ResultStore, loader BundleLoader, opts ...Option) (*Service, error) {
	if results == nil {
		return nil, errors.New("result store is required")
	}
	if loader == nil {
		return nil, errors.New("bundle loader is required")
	}
	s := &Service{
		results: results,
		loader:  loader,
		logger:  slog.Default(),
		tracer:  otel.Tracer("checkpoint/internal/progress/service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Open loads the checklist and the audit's current results.
func (s *Service) Open(ctx context.Context, auditID id.AuditID) (*Session, error) {
	audit, err := s.results.GetAudit(ctx, auditID)
	if err != nil {
		return nil, storeError(err, "audit not found", "failed to load audit")
	}
	b, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	results, err := s.results.LoadResults(ctx, auditID)
	if err != nil {
		return nil, storeError(err, "audit not found", "failed to load results")
	}
	return newSession(*audit, b.Tree, s.order, results), nil
}

// SaveResult records in for the session's audit. When existing is set the
// stored result with that id is updated; otherwise the requirement's current
// result is updated, or a new one is inserted.
//
// Order: durable write, then the session index, then cache invalidation,
// then the activity event. A failed write leaves everything untouched.
func (s *Service) SaveResult(ctx context.Context, sess *Session, in auditmodels.ResultInput, existing *id.ResultID) (*auditmodels.Result, error) {
	ctx, span := s.tracer.Start(ctx, "progress.save_result", trace.WithAttributes(
		attribute.String("audit.id", sess.audit.ID.String()),
		attribute.String("requirement.id", string(in.RequirementID)),
	))
	defer span.End()
	start := time.Now()

	result, mode, err := s.persist(ctx, sess, in, existing)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "save result failed")
		if de, ok := dErrors.As(err); ok {
			s.metrics.IncrementFailure(string(de.Code))
		}
		return nil, err
	}
	s.metrics.ObserveSave(time.Since(start).Seconds())
	s.metrics.IncrementSaved(string(result.Outcome), mode)

	sess.upsert(*result)
	s.loader.Invalidate(ctx, string(activity.ActionResultSaved))
	s.logActivity(ctx, activity.Event{
		Action:        activity.ActionResultSaved,
		AuditID:       result.AuditID,
		ResultID:      result.ID,
		RequirementID: result.RequirementID,
		Location:      sess.audit.Location,
		Outcome:       result.Outcome,
	}, "mode", mode)
	return result, nil
}

func (s *Service) persist(ctx context.Context, sess *Session, in auditmodels.ResultInput, existing *id.ResultID) (*auditmodels.Result, string, error) {
	audit := sess.Audit()
	if in.AuditID.IsNil() {
		in.AuditID = audit.ID
	}
	if in.AuditID != audit.ID {
		return nil, "", dErrors.New(dErrors.CodeBadRequest, "result belongs to another audit")
	}
	if err := audit.EnsureWritable(); err != nil {
		return nil, "", err
	}
	if !in.Outcome.IsValid() {
		return nil, "", dErrors.New(dErrors.CodeValidation, "invalid outcome")
	}
	pillarID, standardID, ok := sess.tree.Locate(in.RequirementID)
	if !ok {
		return nil, "", dErrors.New(dErrors.CodeValidation, "requirement is not part of the checklist")
	}
	for i := range in.Attachments {
		in.Attachments[i] = in.Attachments[i].Normalize()
	}
	now := requestcontext.Now(ctx)

	var current *auditmodels.Result
	if existing != nil && !existing.IsNil() {
		r, err := s.results.GetResult(ctx, *existing)
		if err != nil {
			return nil, "", storeError(err, "result not found", "failed to load result")
		}
		if r.AuditID != audit.ID || r.RequirementID != in.RequirementID {
			return nil, "", dErrors.New(dErrors.CodeConflict, "result does not match audit and requirement")
		}
		current = r
	} else if r, ok := sess.Result(in.RequirementID); ok {
		current = &r
	}

	if current != nil {
		updated := *current
		updated.Outcome = in.Outcome
		updated.Comment = in.Comment
		updated.Attachments = in.Attachments
		updated.RecordedAt = now
		if err := s.results.UpdateResult(ctx, &updated); err != nil {
			return nil, "", storeError(err, "result not found", "failed to update result")
		}
		return &updated, "update", nil
	}

	r := &auditmodels.Result{
		ID:            id.NewResultID(),
		AuditID:       audit.ID,
		PillarID:      pillarID,
		StandardID:    standardID,
		RequirementID: in.RequirementID,
		Outcome:       in.Outcome,
		Comment:       in.Comment,
		Attachments:   in.Attachments,
		RecordedAt:    now,
	}
	if err := s.results.InsertResult(ctx, r); err != nil {
		return nil, "", storeError(err, "audit not found", "failed to save result")
	}
	return r, "insert", nil
}

func (s *Service) logActivity(ctx context.Context, event activity.Event, attrs ...any) {
	args := append(attrs,
		"event", string(event.Action),
		"log_type", "activity",
		"audit_id", event.AuditID.String(),
		"requirement_id", string(event.RequirementID),
		"outcome", string(event.Outcome),
	)
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

// storeError maps store sentinels onto domain codes. Unreachable stores
// surface as unavailable so callers know to retry.
func storeError(err error, notFoundMsg, msg string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, notFoundMsg)
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeConflict, "result already recorded for requirement")
	case errors.Is(err, sentinel.ErrInvalidState):
		return dErrors.Wrap(err, dErrors.CodeInvariantViolation, "audit is closed; results are read-only")
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, msg)
	}
	if _, ok := dErrors.As(err); ok {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}
