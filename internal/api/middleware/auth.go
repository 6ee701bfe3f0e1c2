package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/filmoteca/filmoteca/internal/api/response"
	"github.com/filmoteca/filmoteca/internal/auth"
)

const principalKey contextKey = "principal"

// Auth is middleware that verifies the bearer token and attaches the
// Principal carried in its claims. Scopes come from the token as issued;
// no store lookup happens here.
func Auth(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")

			const prefix = "Bearer "
			if !strings.HasPrefix(header, prefix) {
				response.Err(w, http.StatusUnauthorized, "bearer token is required")
				return
			}

			claims, err := tokens.Verify(strings.TrimPrefix(header, prefix))
			if err != nil {
				response.Err(w, http.StatusUnauthorized, "")
				return
			}

			principal := claims.Principal()
			ctx := context.WithValue(r.Context(), principalKey, &principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetPrincipal retrieves the authenticated Principal from the request context.
func GetPrincipal(ctx context.Context) *auth.Principal {
	if p, ok := ctx.Value(principalKey).(*auth.Principal); ok {
		return p
	}
	return nil
}
