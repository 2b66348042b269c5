package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "popcli/internal/errors"
	"popcli/internal/services"
)

// AnalysisHandler handles comparison run HTTP requests
type AnalysisHandler struct {
	service AnalysisServiceInterface
	logger  *slog.Logger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(service AnalysisServiceInterface, logger *slog.Logger) *AnalysisHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "analysis")),
	}
}

// Routes returns the analysis routes
func (h *AnalysisHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/", h.RunAnalysis)
	r.Get("/", h.ListRuns)
	r.Get("/{id}", h.GetRun)
	r.Post("/range", h.MetricRange)

	return r
}

// RunAnalysis handles POST /api/analysis
func (h *AnalysisHandler) RunAnalysis(w http.ResponseWriter, r *http.Request) {
	var req services.RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.WriteError(w, apierrors.InvalidRequestWithError(err))
		return
	}

	result, err := h.service.RunAnalysis(r.Context(), req)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "analysis run failed",
			slog.String("mode", string(req.Mode)),
			slog.String("error", err.Error()))
		apierrors.WriteError(w, apierrors.FromAppError(err))
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, result)
}

// ListRuns handles GET /api/analysis
func (h *AnalysisHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			apierrors.WriteError(w, apierrors.ErrValidation("limit", "limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	runs, err := h.service.ListRuns(r.Context(), limit)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list runs",
			slog.String("error", err.Error()))
		apierrors.WriteError(w, apierrors.FromAppError(err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"runs":  runs,
		"count": len(runs),
	})
}

// GetRun handles GET /api/analysis/{id}
func (h *AnalysisHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		apierrors.WriteError(w, apierrors.ErrValidation("id", "run ID is required"))
		return
	}

	run, err := h.service.GetRun(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, apierrors.FromAppError(err))
		return
	}

	render.JSON(w, r, run)
}

// MetricRange handles POST /api/analysis/range
func (h *AnalysisHandler) MetricRange(w http.ResponseWriter, r *http.Request) {
	var req services.RangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.WriteError(w, apierrors.InvalidRequestWithError(err))
		return
	}
	if req.Metric == "" {
		apierrors.WriteError(w, apierrors.ErrValidation("metric", "metric name is required"))
		return
	}

	summary, err := h.service.MetricRange(r.Context(), req)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "metric range failed",
			slog.String("metric", req.Metric),
			slog.String("error", err.Error()))
		apierrors.WriteError(w, apierrors.FromAppError(err))
		return
	}

	render.JSON(w, r, summary)
}
