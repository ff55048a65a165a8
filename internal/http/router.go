// Package httpapi assembles the chi router. It should delegate to domain
// handlers without embedding business logic so transport concerns remain
// isolated.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	audithandler "crosslink/internal/audit"
	linkagehandler "crosslink/internal/linkage/handler"
	profilehandler "crosslink/internal/profile/handler"
	"crosslink/pkg/platform/middleware/auth"
	"crosslink/pkg/platform/middleware/requestid"
	"crosslink/pkg/platform/middleware/requesttime"
)

// Deps carries the wired handlers into the router.
type Deps struct {
	Profiles *profilehandler.Handler
	Linkages *linkagehandler.Handler
	Audit    *audithandler.Handler
	// JWTSigningKey enables the bearer gate on /api when non-empty.
	JWTSigningKey string
}

// NewRouter wires all public endpoints.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Use(auth.Middleware(deps.JWTSigningKey))
		deps.Profiles.Register(api)
		deps.Linkages.Register(api)
		if deps.Audit != nil {
			deps.Audit.Register(api)
		}
	})

	return r
}
