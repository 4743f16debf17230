// Package handler exposes dashboard rollups over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"checkpoint/internal/dashboard"
	"checkpoint/internal/dashboard/service"
	id "checkpoint/pkg/domain"
	dErrors "checkpoint/pkg/domain-errors"
	"checkpoint/pkg/platform/httputil"
	"checkpoint/pkg/requestcontext"
)

// Service defines the dashboard reads used by the handler.
type Service interface {
	Overview(ctx context.Context) (*service.Overview, error)
	Audit(ctx context.Context, auditID id.AuditID) (*service.AuditSummary, error)
	RequirementHistory(ctx context.Context, reqID id.RequirementID, w dashboard.Window) (*service.History, error)
	Locations(ctx context.Context) ([]dashboard.LocationRow, error)
}

type Handler struct {
	dashboard Service
	logger    *slog.Logger
}

func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{dashboard: svc, logger: logger}
}

// Register registers the dashboard routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/dashboard", func(r chi.Router) {
		r.Get("/counters", h.handleCounters)
		r.Get("/audits/{auditID}/distribution", h.handleDistribution)
		r.Get("/requirements/{requirementID}/history", h.handleHistory)
		r.Get("/locations", h.handleLocations)
	})
}

func (h *Handler) handleCounters(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	overview, err := h.dashboard.Overview(ctx)
	if err != nil {
		h.fail(w, ctx, "failed to compute dashboard counters", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, overview)
}

func (h *Handler) handleDistribution(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	auditID, err := id.ParseAuditID(chi.URLParam(r, "auditID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	summary, err := h.dashboard.Audit(ctx, auditID)
	if err != nil {
		h.fail(w, ctx, "failed to compute audit distribution", err, "audit_id", auditID.String())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, summary)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID, err := id.ParseRequirementID(chi.URLParam(r, "requirementID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	window, err := dashboard.ParseWindow(r.URL.Query().Get("period"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	history, err := h.dashboard.RequirementHistory(ctx, reqID, window)
	if err != nil {
		h.fail(w, ctx, "failed to compute requirement history", err,
			"requirement_id", string(reqID),
			"period", window.Label,
		)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, history)
}

func (h *Handler) handleLocations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rows, err := h.dashboard.Locations(ctx)
	if err != nil {
		h.fail(w, ctx, "failed to compute location matrix", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"locations": rows})
}

func (h *Handler) fail(w http.ResponseWriter, ctx context.Context, msg string, err error, attrs ...any) {
	attrs = append(attrs, "request_id", requestcontext.RequestID(ctx), "error", err)
	if httputil.StatusFor(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, attrs...)
	} else {
		h.logger.WarnContext(ctx, msg, attrs...)
	}
	httputil.WriteError(w, err)
}
