// Package requestid assigns every request a correlation id, echoed in the
// response and carried through the context for log correlation.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"crosslink/pkg/requestcontext"
)

// Header is the correlation header honored on requests and set on responses.
const Header = "X-Request-ID"

// Middleware reuses the incoming request id when present, otherwise mints one.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(Header)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(Header, requestID)
		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
