// Package handler wires the linkage engine endpoints to the service.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"crosslink/internal/linkage"
	dErrors "crosslink/pkg/domain-errors"
	"crosslink/pkg/platform/httputil"
	"crosslink/pkg/requestcontext"
)

// Service defines the engine operations the HTTP layer needs.
type Service interface {
	RunFullScan(ctx context.Context) (linkage.ScanResult, error)
	Suspicious(ctx context.Context, minScore, limit int) []linkage.Node
	BuildNetwork(ctx context.Context, seedID string, depth int) (*linkage.NetworkGraph, error)
	Stats(ctx context.Context) linkage.Stats
}

// Handler wires linkage endpoints to the engine service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a linkage handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts linkage endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/linkages/detect", h.HandleDetect)
	r.Get("/linkages/suspicious", h.HandleSuspicious)
	r.Get("/linkages/network/{profileID}", h.HandleNetwork)
	r.Get("/linkages/stats", h.HandleStats)
}

// HandleDetect handles POST /linkages/detect. The scan runs synchronously;
// a concurrent trigger gets a conflict while the in-flight scan continues.
func (h *Handler) HandleDetect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	result, err := h.service.RunFullScan(ctx)
	if err != nil {
		if dErrors.CodeOf(err) != dErrors.CodeConflict {
			h.logger.ErrorContext(ctx, "scan trigger failed",
				"request_id", requestID,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "scan triggered",
		"request_id", requestID,
		"run_id", result.RunID,
		"total_linkages", result.TotalLinkages,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromScanResult(result))
}

// HandleSuspicious handles GET /linkages/suspicious?min_score=N&limit=M.
func (h *Handler) HandleSuspicious(w http.ResponseWriter, r *http.Request) {
	params, err := ParseSuspiciousParams(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	nodes := h.service.Suspicious(r.Context(), params.MinScore, params.Limit)
	httputil.WriteJSON(w, http.StatusOK, FromNodes(nodes))
}

// HandleNetwork handles GET /linkages/network/{profileID}?depth=D.
func (h *Handler) HandleNetwork(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	seedID := chi.URLParam(r, "profileID")
	params, err := ParseNetworkParams(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	graph, err := h.service.BuildNetwork(ctx, seedID, params.Depth)
	if err != nil {
		if dErrors.CodeOf(err) != dErrors.CodeNotFound {
			h.logger.ErrorContext(ctx, "network query failed",
				"request_id", requestcontext.RequestID(ctx),
				"seed_id", seedID,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, graph)
}

// HandleStats handles GET /linkages/stats.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.service.Stats(r.Context()))
}
