// Package handler exposes manual cache invalidation for operators.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"checkpoint/pkg/requestcontext"
)

// Invalidator drops the shared snapshot and tells peers.
type Invalidator interface {
	Invalidate(ctx context.Context, reason string)
}

type Handler struct {
	loader Invalidator
	logger *slog.Logger
}

func New(loader Invalidator, logger *slog.Logger) *Handler {
	return &Handler{loader: loader, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/cache/invalidate", h.handleInvalidate)
}

func (h *Handler) handleInvalidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.loader.Invalidate(ctx, "manual")
	h.logger.InfoContext(ctx, "cache invalidated",
		"request_id", requestcontext.RequestID(ctx),
		"actor", requestcontext.Actor(ctx),
	)
	w.WriteHeader(http.StatusNoContent)
}
