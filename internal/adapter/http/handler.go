package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mesa-budget/internal/core/port"
	"mesa-budget/internal/metrics"
)

// Options carries the optional collaborators of a Handler.
type Options struct {
	// Metrics records request counts and latencies. May be nil.
	Metrics *metrics.Metrics
	// Gatherer backs GET /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer
	// Ready backs GET /healthz. Nil always reports healthy.
	Ready func(ctx context.Context) error
}

// Handler contains dependencies and routes. It is an inbound adapter for HTTP.
// It holds the engine to execute business logic and a logger for structured
// logging. Routes are registered on a chi.Router for convenient method
// handling.
type Handler struct {
	svc    port.BudgetEngine
	logger *slog.Logger
	ready  func(ctx context.Context) error
	router chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(svc port.BudgetEngine, logger *slog.Logger, opts Options) *Handler {
	h := &Handler{svc: svc, logger: logger, ready: opts.Ready}
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer, opts.Metrics.HTTP)

	r.Get("/healthz", h.handleHealth)
	if opts.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/spend", h.handleSpend)
		r.Route("/ops", func(r chi.Router) {
			r.Post("/reset", h.handleReset)
			r.Post("/sweeps/{job}", h.handleSweep)
			r.Post("/reconcile/campaigns/{id}", h.handleReconcileCampaign)
			r.Post("/reconcile/brands/{id}", h.handleReconcileBrand)
		})
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil {
		if err := h.ready(r.Context()); err != nil {
			h.logger.Warn("health check failed", slog.Any("error", err))
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "store unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// writeError maps engine errors onto status codes: validation 400, unknown
// entity 404, lock conflict 409, store outage 503, anything else 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *port.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Error(), Field: verr.Field})
	case errors.Is(err, port.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, port.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, port.ErrConcurrencyConflict):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "concurrent update, retry"})
	case errors.Is(err, port.ErrStoreUnavailable):
		h.logger.Error("store unavailable", slog.String("path", r.URL.Path), slog.Any("error", err))
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "store unavailable"})
	default:
		h.logger.Error("request failed", slog.String("path", r.URL.Path), slog.Any("error", err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// the status line is already out; an encode failure can only be dropped
	_ = json.NewEncoder(w).Encode(v)
}
