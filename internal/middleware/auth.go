package middleware

import (
	"net/http"
	"strings"

	"mathboard/internal/auth"
	"mathboard/internal/httputil"
)

// Auth verifies the bearer token and stores the verified user ID in the
// request context. Reads are open; mutating methods require a registered
// (non-guest) identity, since only registered users may author
// discussions and operations.
func Auth(verifier auth.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mutating := r.Method != http.MethodGet && r.Method != http.MethodHead && r.Method != http.MethodOptions

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				if mutating {
					httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			if mutating && claims.IsGuest() {
				httputil.RespondError(w, http.StatusForbidden, "guests cannot create or modify content")
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, claims.GetUserID()))
		})
	}
}
