// Package handler exposes audit progress and result recording over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	auditmodels "checkpoint/internal/audits/models"
	checklist "checkpoint/internal/checklist/models"
	"checkpoint/internal/progress"
	"checkpoint/internal/progress/service"
	id "checkpoint/pkg/domain"
	dErrors "checkpoint/pkg/domain-errors"
	"checkpoint/pkg/platform/httputil"
	"checkpoint/pkg/requestcontext"
)

// Service defines the progress operations used by the handler.
type Service interface {
	Open(ctx context.Context, auditID id.AuditID) (*service.Session, error)
	SaveResult(ctx context.Context, sess *service.Session, in auditmodels.ResultInput, existing *id.ResultID) (*auditmodels.Result, error)
}

// Handler serves progress endpoints.
type Handler struct {
	progress Service
	logger   *slog.Logger
}

// New creates a progress Handler.
func New(progress Service, logger *slog.Logger) *Handler {
	return &Handler{progress: progress, logger: logger}
}

// Register registers the progress routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/audits/{auditID}/progress", h.handleProgress)
	r.Get("/audits/{auditID}/standards/{standardID}/next", h.handleNext)
	r.Put("/audits/{auditID}/results/{requirementID}", h.handleSaveResult)
}

// NextResponse is the navigator answer. Requirement is set only when State is "found".
type NextResponse struct {
	State       string                 `json:"state"`
	Requirement *checklist.Requirement `json:"requirement,omitempty"`
}

// SaveResultResponse returns the stored result with the refreshed progress.
type SaveResultResponse struct {
	Result   *auditmodels.Result `json:"result"`
	Progress service.View        `json:"progress"`
}

func (h *Handler) handleProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, ok := h.open(w, r)
	if !ok {
		return
	}
	h.logger.DebugContext(ctx, "progress rendered",
		"request_id", requestcontext.RequestID(ctx),
		"audit_id", sess.Audit().ID.String(),
	)
	httputil.WriteJSON(w, http.StatusOK, sess.View())
}

func (h *Handler) handleNext(w http.ResponseWriter, r *http.Request) {
	standardID, err := id.ParseStandardID(chi.URLParam(r, "standardID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	current, err := id.ParseRequirementID(r.URL.Query().Get("current"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	sess, ok := h.open(w, r)
	if !ok {
		return
	}

	next, state, err := sess.Next(standardID, current)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	switch state {
	case progress.NextFound:
		httputil.WriteJSON(w, http.StatusOK, NextResponse{State: state.String(), Requirement: &next})
	case progress.NextLast:
		httputil.WriteJSON(w, http.StatusOK, NextResponse{State: state.String()})
	default:
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "requirement not found in standard"))
	}
}

func (h *Handler) handleSaveResult(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	reqID, err := id.ParseRequirementID(chi.URLParam(r, "requirementID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[SaveResultRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	sess, ok := h.open(w, r)
	if !ok {
		return
	}

	result, err := h.progress.SaveResult(ctx, sess, req.input(sess.Audit().ID, reqID), req.existing)
	if err != nil {
		h.logFailure(ctx, "failed to save result", err,
			"audit_id", sess.Audit().ID.String(),
			"requirement_id", string(reqID),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, SaveResultResponse{Result: result, Progress: sess.View()})
}

func (h *Handler) open(w http.ResponseWriter, r *http.Request) (*service.Session, bool) {
	ctx := r.Context()
	auditID, err := id.ParseAuditID(chi.URLParam(r, "auditID"))
	if err != nil {
		httputil.WriteError(w, err)
		return nil, false
	}
	sess, err := h.progress.Open(ctx, auditID)
	if err != nil {
		h.logFailure(ctx, "failed to open audit", err, "audit_id", auditID.String())
		httputil.WriteError(w, err)
		return nil, false
	}
	return sess, true
}

// logFailure logs server side failures at error level and client mistakes at warn.
func (h *Handler) logFailure(ctx context.Context, msg string, err error, attrs ...any) {
	attrs = append(attrs, "request_id", requestcontext.RequestID(ctx), "error", err)
	if httputil.StatusFor(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, attrs...)
		return
	}
	h.logger.WarnContext(ctx, msg, attrs...)
}
