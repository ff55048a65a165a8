// Package auth gates mutating endpoints behind a signed bearer token. The
// engine treats session management as an external concern; this middleware
// only verifies the token signature and surfaces the subject as the actor.
package auth

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	dErrors "crosslink/pkg/domain-errors"
	"crosslink/pkg/platform/httputil"
	"crosslink/pkg/requestcontext"
)

// Middleware verifies HS256 bearer tokens when a signing key is configured.
// With an empty key the gate is disabled and requests pass through untouched.
func Middleware(signingKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if signingKey == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if raw == "" || raw == r.Header.Get("Authorization") {
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "bearer token required"))
				return
			}

			token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(signingKey), nil
			})
			if err != nil || !token.Valid {
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid token"))
				return
			}

			ctx := r.Context()
			if subject, err := token.Claims.GetSubject(); err == nil && subject != "" {
				ctx = requestcontext.WithActor(ctx, subject)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
