package middleware

import (
	"net/http"

	"github.com/filmoteca/filmoteca/internal/api/response"
)

// RequireScopes returns middleware that gates a route on the principal
// holding at least one of the allowed scopes. It must run after Auth has
// populated the principal.
func RequireScopes(allowed ...string) func(http.Handler) http.Handler {
	allowedSet := make(map[string]bool, len(allowed))
	for _, s := range allowed {
		allowedSet[s] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := GetPrincipal(r.Context())
			if principal == nil || len(principal.Scopes) == 0 {
				response.Err(w, http.StatusUnauthorized, "Missing scopes")
				return
			}

			for _, s := range principal.Scopes {
				if allowedSet[s] {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Err(w, http.StatusUnauthorized, "Insufficient scopes")
		})
	}
}
