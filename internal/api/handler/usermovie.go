package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/filmoteca/filmoteca/internal/api/middleware"
	"github.com/filmoteca/filmoteca/internal/api/response"
	"github.com/filmoteca/filmoteca/internal/usermovie"
)

type userMovieResponse struct {
	ID      string `json:"id"`
	UserID  string `json:"userId"`
	MovieID string `json:"movieId"`
}

// UserMovieHandler handles the user-movie list endpoints.
type UserMovieHandler struct {
	repo usermovie.Repository
}

// NewUserMovieHandler creates a new UserMovieHandler.
func NewUserMovieHandler(repo usermovie.Repository) *UserMovieHandler {
	return &UserMovieHandler{repo: repo}
}

// List handles GET /api/user-movies?userId=...
func (h *UserMovieHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.URL.Query().Get("userId"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "userId must be a valid UUID")
		return
	}

	userMovies, err := h.repo.ListByUser(r.Context(), userID)
	if err != nil {
		slog.Error("failed to list user movies", "error", err, "requestId", middleware.GetRequestID(r.Context()))
		response.Err(w, http.StatusInternalServerError, "Failed to list user movies")
		return
	}

	items := make([]userMovieResponse, 0, len(userMovies))
	for _, um := range userMovies {
		items = append(items, userMovieResponse{
			ID:      um.ID.String(),
			UserID:  um.UserID.String(),
			MovieID: um.MovieID.String(),
		})
	}

	response.Data(w, http.StatusOK, items, "user movies listed")
}

type createUserMovieRequest struct {
	UserID  string `json:"userId"`
	MovieID string `json:"movieId"`
}

// Create handles POST /api/user-movies.
func (h *UserMovieHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req createUserMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		response.Err(w, http.StatusBadRequest, "userId must be a valid UUID")
		return
	}
	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		response.Err(w, http.StatusBadRequest, "movieId must be a valid UUID")
		return
	}

	um := &usermovie.UserMovie{UserID: userID, MovieID: movieID}
	if err := h.repo.Create(r.Context(), um); err != nil {
		slog.Error("failed to create user movie", "error", err, "requestId", middleware.GetRequestID(r.Context()))
		response.Err(w, http.StatusInternalServerError, "Failed to create user movie")
		return
	}

	response.Data(w, http.StatusCreated, um.ID.String(), "user movie created")
}

// Delete handles DELETE /api/user-movies/{userMovieId}.
func (h *UserMovieHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "userMovieId"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "userMovieId must be a valid UUID")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, usermovie.ErrUserMovieNotFound) {
			response.Err(w, http.StatusNotFound, "User movie not found")
			return
		}
		slog.Error("failed to delete user movie", "error", err, "requestId", middleware.GetRequestID(r.Context()))
		response.Err(w, http.StatusInternalServerError, "Failed to delete user movie")
		return
	}

	response.Data(w, http.StatusOK, id.String(), "user movie deleted")
}
