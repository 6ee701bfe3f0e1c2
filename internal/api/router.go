// Package api wires the movies API routes, middleware, and handlers.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/filmoteca/filmoteca/internal/api/handler"
	"github.com/filmoteca/filmoteca/internal/api/middleware"
	"github.com/filmoteca/filmoteca/internal/api/response"
	"github.com/filmoteca/filmoteca/internal/auth"
	"github.com/filmoteca/filmoteca/internal/movie"
	"github.com/filmoteca/filmoteca/internal/usermovie"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	AuthFlows  handler.AuthFlows
	Tokens     *auth.TokenService
	Movies     movie.Repository
	UserMovies usermovie.Repository
	DBPinger   handler.DBPinger
	Version    string
	Dev        bool
}

// NewRouter creates and configures a chi router with all middleware and
// routes. Scope allow-sets are fixed here, at registration time.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Logger)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.Err(w, http.StatusNotFound, "")
	})

	r.Get("/health", handler.NewHealthHandler(deps.DBPinger, deps.Version).ServeHTTP)

	authHandler := handler.NewAuthHandler(deps.AuthFlows)
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/sign-in", authHandler.SignIn)
		r.Post("/sign-up", authHandler.SignUp)
		r.Post("/sign-provider", authHandler.SignProvider)
	})

	movieHandler := handler.NewMovieHandler(deps.Movies)
	r.Route("/api/movies", func(r chi.Router) {
		r.Use(middleware.Auth(deps.Tokens))
		r.With(
			middleware.RequireScopes("read:movies"),
			middleware.Cache(middleware.FiveMinutes, deps.Dev),
		).Get("/", movieHandler.List)
		r.With(
			middleware.RequireScopes("read:movies"),
			middleware.Cache(middleware.SixtyMinutes, deps.Dev),
		).Get("/{movieId}", movieHandler.GetByID)
		r.With(middleware.RequireScopes("create:movies")).Post("/", movieHandler.Create)
		r.With(middleware.RequireScopes("update:movies")).Put("/{movieId}", movieHandler.Update)
		r.With(middleware.RequireScopes("delete:movies")).Delete("/{movieId}", movieHandler.Delete)
	})

	userMovieHandler := handler.NewUserMovieHandler(deps.UserMovies)
	r.Route("/api/user-movies", func(r chi.Router) {
		r.Use(middleware.Auth(deps.Tokens))
		r.With(middleware.RequireScopes("read:user-movies")).Get("/", userMovieHandler.List)
		r.With(middleware.RequireScopes("create:user-movies")).Post("/", userMovieHandler.Create)
		r.With(middleware.RequireScopes("delete:user-movies")).Delete("/{userMovieId}", userMovieHandler.Delete)
	})

	return r
}
