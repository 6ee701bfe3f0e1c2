package gateway

import (
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/filmoteca/filmoteca/internal/api/middleware"
	"github.com/filmoteca/filmoteca/internal/api/response"
)

// RouterDeps holds all dependencies needed by the gateway router.
type RouterDeps struct {
	Basic    *BasicStrategy
	Provider *ProviderStrategy
	Upstream *Client
	Sessions *scs.SessionManager
}

// NewRouter creates the gateway router. Provider routes are registered only
// when a provider strategy is configured.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Logger)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.Err(w, http.StatusNotFound, "")
	})

	h := NewHandler(deps.Basic, deps.Provider, deps.Upstream, deps.Sessions)

	r.Post("/auth/sign-in", h.SignIn)
	r.Get("/whoami", h.WhoAmI)
	r.Post("/user-movies", h.CreateUserMovie)
	r.Delete("/user-movies/{userMovieId}", h.DeleteUserMovie)

	if deps.Provider != nil {
		r.Get("/auth/provider", h.ProviderRedirect)
		r.Get("/auth/provider/callback", h.ProviderCallback)
	}

	return deps.Sessions.LoadAndSave(r)
}
