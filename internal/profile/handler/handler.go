// Package handler exposes the thin profile CRUD surface. The linkage engine
// only reads profiles; this layer exists so the corpus can be managed at all.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"crosslink/internal/profile"
	dErrors "crosslink/pkg/domain-errors"
	"crosslink/pkg/platform/httputil"
	"crosslink/pkg/requestcontext"
)

// Handler wires profile CRUD endpoints to the store.
type Handler struct {
	store  profile.Store
	logger *slog.Logger
}

func New(store profile.Store, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// Register mounts profile endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/profiles", h.HandleCreate)
	r.Get("/profiles", h.HandleList)
	r.Get("/profiles/{profileID}", h.HandleGet)
	r.Put("/profiles/{profileID}", h.HandleUpdate)
	r.Delete("/profiles/{profileID}", h.HandleDelete)
}

// HandleCreate handles POST /profiles.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[SaveProfileRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	p := req.ToProfile()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := h.store.Save(ctx, p); err != nil {
		h.logger.ErrorContext(ctx, "profile save failed",
			"profile_id", p.ID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(dErrors.CodeInternal, "save profile", err))
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, p)
}

// HandleList handles GET /profiles.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.store.List(r.Context())
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(dErrors.CodeInternal, "list profiles", err))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"profiles": profiles,
		"count":    len(profiles),
	})
}

// HandleGet handles GET /profiles/{profileID}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.Get(r.Context(), chi.URLParam(r, "profileID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

// HandleUpdate handles PUT /profiles/{profileID}. The path id wins over any
// id in the body.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "profileID")
	if _, err := h.store.Get(ctx, id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[SaveProfileRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	p := req.ToProfile()
	p.ID = id
	if err := h.store.Save(ctx, p); err != nil {
		httputil.WriteError(w, dErrors.Wrap(dErrors.CodeInternal, "update profile", err))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

// HandleDelete handles DELETE /profiles/{profileID}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.Context(), chi.URLParam(r, "profileID")); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
