package audit

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dErrors "crosslink/pkg/domain-errors"
	"crosslink/pkg/platform/httputil"
)

// Handler exposes the audit trail read endpoint.
type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// Register mounts audit endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/audit", h.HandleList)
}

// HandleList handles GET /audit?limit=N.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "limit must be a non-negative integer"))
			return
		}
		limit = n
	}
	events, err := h.store.ListRecent(r.Context(), limit)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(dErrors.CodeInternal, "list audit events", err))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"events": events})
}
