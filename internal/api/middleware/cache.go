package middleware

import (
	"fmt"
	"net/http"
)

// Cache durations, in seconds.
const (
	FiveMinutes  = 300
	SixtyMinutes = 3600
)

// Cache returns middleware that sets a public max-age header. Disabled in
// dev mode so local changes stay visible.
func Cache(seconds int, dev bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !dev {
				w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", seconds))
			}
			next.ServeHTTP(w, r)
		})
	}
}
