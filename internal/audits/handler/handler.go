// Package handler exposes audits, action plans and non-conformities over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"checkpoint/internal/audits/models"
	id "checkpoint/pkg/domain"
	dErrors "checkpoint/pkg/domain-errors"
	"checkpoint/pkg/platform/httputil"
	"checkpoint/pkg/requestcontext"
)

// Service defines the audit operations used by the handler.
type Service interface {
	CreateAudit(ctx context.Context, in models.CreateAuditInput) (*models.Audit, error)
	GetAudit(ctx context.Context, auditID id.AuditID) (*models.Audit, error)
	CloseAudit(ctx context.Context, auditID id.AuditID) (*models.Audit, error)
	ListAudits(ctx context.Context) ([]models.Audit, error)
	NonConformities(ctx context.Context, auditID id.AuditID) ([]models.NonConformity, error)
	GetActionPlan(ctx context.Context, resultID id.ResultID) (*models.ActionPlan, error)
	SaveActionPlan(ctx context.Context, resultID id.ResultID, in models.ActionPlanInput, existing *id.ActionPlanID) (*models.ActionPlan, error)
	CloseNonConformity(ctx context.Context, resultID id.ResultID) (*models.Result, error)
}

// Handler serves audit endpoints.
type Handler struct {
	audits Service
	logger *slog.Logger
}

// New creates an audits Handler.
func New(audits Service, logger *slog.Logger) *Handler {
	return &Handler{audits: audits, logger: logger}
}

// Register registers the audit routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/audits", h.handleCreateAudit)
	r.Get("/audits", h.handleListAudits)
	r.Get("/audits/{auditID}", h.handleGetAudit)
	r.Post("/audits/{auditID}/close", h.handleCloseAudit)
	r.Get("/audits/{auditID}/nonconformities", h.handleNonConformities)
	r.Get("/results/{resultID}/action-plan", h.handleGetActionPlan)
	r.Put("/results/{resultID}/action-plan", h.handleSaveActionPlan)
	r.Post("/results/{resultID}/close", h.handleCloseNonConformity)
}

func (h *Handler) handleCreateAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[CreateAuditRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	audit, err := h.audits.CreateAudit(ctx, req.input())
	if err != nil {
		h.fail(w, ctx, "failed to create audit", err, "location", req.Location)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, audit)
}

func (h *Handler) handleListAudits(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	audits, err := h.audits.ListAudits(ctx)
	if err != nil {
		h.fail(w, ctx, "failed to list audits", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"audits": audits})
}

func (h *Handler) handleGetAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	auditID, ok := auditParam(w, r)
	if !ok {
		return
	}
	audit, err := h.audits.GetAudit(ctx, auditID)
	if err != nil {
		h.fail(w, ctx, "failed to load audit", err, "audit_id", auditID.String())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, audit)
}

func (h *Handler) handleCloseAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	auditID, ok := auditParam(w, r)
	if !ok {
		return
	}
	audit, err := h.audits.CloseAudit(ctx, auditID)
	if err != nil {
		h.fail(w, ctx, "failed to close audit", err, "audit_id", auditID.String())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, audit)
}

func (h *Handler) handleNonConformities(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	auditID, ok := auditParam(w, r)
	if !ok {
		return
	}
	ncs, err := h.audits.NonConformities(ctx, auditID)
	if err != nil {
		h.fail(w, ctx, "failed to list non-conformities", err, "audit_id", auditID.String())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"nonconformities": ncs})
}

func (h *Handler) handleGetActionPlan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resultID, ok := resultParam(w, r)
	if !ok {
		return
	}
	plan, err := h.audits.GetActionPlan(ctx, resultID)
	if err != nil {
		h.fail(w, ctx, "failed to load action plan", err, "result_id", resultID.String())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, plan)
}

func (h *Handler) handleSaveActionPlan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resultID, ok := resultParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SaveActionPlanRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	plan, err := h.audits.SaveActionPlan(ctx, resultID, req.input(), req.existing)
	if err != nil {
		h.fail(w, ctx, "failed to save action plan", err, "result_id", resultID.String())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, plan)
}

func (h *Handler) handleCloseNonConformity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resultID, ok := resultParam(w, r)
	if !ok {
		return
	}
	result, err := h.audits.CloseNonConformity(ctx, resultID)
	if err != nil {
		h.fail(w, ctx, "failed to close non-conformity", err, "result_id", resultID.String())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func auditParam(w http.ResponseWriter, r *http.Request) (id.AuditID, bool) {
	auditID, err := id.ParseAuditID(chi.URLParam(r, "auditID"))
	if err != nil {
		httputil.WriteError(w, err)
		return id.AuditID{}, false
	}
	return auditID, true
}

func resultParam(w http.ResponseWriter, r *http.Request) (id.ResultID, bool) {
	resultID, err := id.ParseResultID(chi.URLParam(r, "resultID"))
	if err != nil {
		httputil.WriteError(w, err)
		return id.ResultID{}, false
	}
	return resultID, true
}

// fail logs err at a level matching its status and writes the error response.
func (h *Handler) fail(w http.ResponseWriter, ctx context.Context, msg string, err error, attrs ...any) {
	attrs = append(attrs, "request_id", requestcontext.RequestID(ctx), "error", err)
	if httputil.StatusFor(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, attrs...)
	} else {
		h.logger.WarnContext(ctx, msg, attrs...)
	}
	httputil.WriteError(w, err)
}
