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
	"github.com/filmoteca/filmoteca/internal/api/validation"
	"github.com/filmoteca/filmoteca/internal/movie"
)

type movieResponse struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Year          int      `json:"year"`
	Cover         string   `json:"cover"`
	Description   string   `json:"description"`
	Duration      int      `json:"duration"`
	ContentRating string   `json:"contentRating"`
	Source        string   `json:"source"`
	Tags          []string `json:"tags"`
}

func toMovieResponse(m *movie.Movie) movieResponse {
	tags := m.Tags
	if tags == nil {
		tags = []string{}
	}
	return movieResponse{
		ID:            m.ID.String(),
		Title:         m.Title,
		Year:          m.Year,
		Cover:         m.Cover,
		Description:   m.Description,
		Duration:      m.Duration,
		ContentRating: m.ContentRating,
		Source:        m.Source,
		Tags:          tags,
	}
}

// MovieHandler handles the movie CRUD endpoints.
type MovieHandler struct {
	repo movie.Repository
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(repo movie.Repository) *MovieHandler {
	return &MovieHandler{repo: repo}
}

// List handles GET /api/movies with an optional tags filter.
func (h *MovieHandler) List(w http.ResponseWriter, r *http.Request) {
	tag := r.URL.Query().Get("tags")

	movies, err := h.repo.List(r.Context(), tag)
	if err != nil {
		h.writeError(w, r, err, "Failed to list movies")
		return
	}

	items := make([]movieResponse, 0, len(movies))
	for i := range movies {
		items = append(items, toMovieResponse(&movies[i]))
	}

	response.Data(w, http.StatusOK, items, "movies listed")
}

// GetByID handles GET /api/movies/{movieId}.
func (h *MovieHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.movieID(w, r)
	if !ok {
		return
	}

	m, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err, "Failed to retrieve movie")
		return
	}

	response.Data(w, http.StatusOK, toMovieResponse(m), "movie retrieved")
}

type createMovieRequest struct {
	Title         string   `json:"title"`
	Year          int      `json:"year"`
	Cover         string   `json:"cover"`
	Description   string   `json:"description"`
	Duration      int      `json:"duration"`
	ContentRating string   `json:"contentRating"`
	Source        string   `json:"source"`
	Tags          []string `json:"tags"`
}

// Create handles POST /api/movies.
func (h *MovieHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req createMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	if err := validation.ValidateCreateMovieRequest(validation.CreateMovieRequest{
		Title:         req.Title,
		Year:          req.Year,
		Cover:         req.Cover,
		Description:   req.Description,
		Duration:      req.Duration,
		ContentRating: req.ContentRating,
		Source:        req.Source,
		Tags:          req.Tags,
	}); err != nil {
		response.Err(w, http.StatusBadRequest, err.Error())
		return
	}

	m := &movie.Movie{
		Title:         req.Title,
		Year:          req.Year,
		Cover:         req.Cover,
		Description:   req.Description,
		Duration:      req.Duration,
		ContentRating: req.ContentRating,
		Source:        req.Source,
		Tags:          req.Tags,
	}

	if err := h.repo.Create(r.Context(), m); err != nil {
		h.writeError(w, r, err, "Failed to create movie")
		return
	}

	response.Data(w, http.StatusCreated, m.ID.String(), "movie created")
}

type updateMovieRequest struct {
	Title         *string  `json:"title"`
	Year          *int     `json:"year"`
	Cover         *string  `json:"cover"`
	Description   *string  `json:"description"`
	Duration      *int     `json:"duration"`
	ContentRating *string  `json:"contentRating"`
	Source        *string  `json:"source"`
	Tags          []string `json:"tags"`
}

// Update handles PUT /api/movies/{movieId}. Absent fields keep their stored
// values.
func (h *MovieHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.movieID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req updateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	if err := validation.ValidateUpdateMovieRequest(validation.UpdateMovieRequest{
		Title:         req.Title,
		Year:          req.Year,
		Cover:         req.Cover,
		Description:   req.Description,
		Duration:      req.Duration,
		ContentRating: req.ContentRating,
		Source:        req.Source,
		Tags:          req.Tags,
	}); err != nil {
		response.Err(w, http.StatusBadRequest, err.Error())
		return
	}

	m, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err, "Failed to update movie")
		return
	}

	applyMovieUpdate(m, req)

	if err := h.repo.Update(r.Context(), m); err != nil {
		h.writeError(w, r, err, "Failed to update movie")
		return
	}

	response.Data(w, http.StatusOK, m.ID.String(), "movie updated")
}

// Delete handles DELETE /api/movies/{movieId}.
func (h *MovieHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.movieID(w, r)
	if !ok {
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err, "Failed to delete movie")
		return
	}

	response.Data(w, http.StatusOK, id.String(), "movie deleted")
}

func (h *MovieHandler) movieID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "movieId"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "movieId must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *MovieHandler) writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	if errors.Is(err, movie.ErrMovieNotFound) {
		response.Err(w, http.StatusNotFound, "Movie not found")
		return
	}
	slog.Error(fallback, "error", err, "requestId", middleware.GetRequestID(r.Context()))
	response.Err(w, http.StatusInternalServerError, fallback)
}

func applyMovieUpdate(m *movie.Movie, req updateMovieRequest) {
	if req.Title != nil {
		m.Title = *req.Title
	}
	if req.Year != nil {
		m.Year = *req.Year
	}
	if req.Cover != nil {
		m.Cover = *req.Cover
	}
	if req.Description != nil {
		m.Description = *req.Description
	}
	if req.Duration != nil {
		m.Duration = *req.Duration
	}
	if req.ContentRating != nil {
		m.ContentRating = *req.ContentRating
	}
	if req.Source != nil {
		m.Source = *req.Source
	}
	if req.Tags != nil {
		m.Tags = req.Tags
	}
}
