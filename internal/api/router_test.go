package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmoteca/filmoteca/internal/api"
	"github.com/filmoteca/filmoteca/internal/auth"
	"github.com/filmoteca/filmoteca/internal/movie"
	"github.com/filmoteca/filmoteca/internal/usermovie"
)

const testSecret = "router-test-secret"

type stubFlows struct {
	session *auth.SignedSession
	err     error
}

func (s *stubFlows) SignIn(context.Context, string, string, string) (*auth.SignedSession, error) {
	return s.session, s.err
}

func (s *stubFlows) SignUp(context.Context, string, string, string) (string, error) {
	return "", s.err
}

func (s *stubFlows) SignInProvider(context.Context, string, string, string, string) (*auth.SignedSession, error) {
	return s.session, s.err
}

type stubMovieRepo struct {
	movies []movie.Movie
}

func (s *stubMovieRepo) List(context.Context, string) ([]movie.Movie, error) {
	return s.movies, nil
}

func (s *stubMovieRepo) GetByID(context.Context, uuid.UUID) (*movie.Movie, error) {
	return nil, movie.ErrMovieNotFound
}

func (s *stubMovieRepo) Create(_ context.Context, m *movie.Movie) error {
	m.ID = uuid.New()
	s.movies = append(s.movies, *m)
	return nil
}

func (s *stubMovieRepo) Update(context.Context, *movie.Movie) error { return movie.ErrMovieNotFound }
func (s *stubMovieRepo) Delete(context.Context, uuid.UUID) error    { return movie.ErrMovieNotFound }

type stubUserMovieRepo struct{}

func (stubUserMovieRepo) ListByUser(context.Context, uuid.UUID) ([]usermovie.UserMovie, error) {
	return nil, nil
}

func (stubUserMovieRepo) Create(_ context.Context, um *usermovie.UserMovie) error {
	um.ID = uuid.New()
	return nil
}

func (stubUserMovieRepo) Delete(context.Context, uuid.UUID) error {
	return usermovie.ErrUserMovieNotFound
}

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func newRouter(t *testing.T, scopes ...string) (http.Handler, string) {
	t.Helper()

	tokens, err := auth.NewTokenService(testSecret)
	require.NoError(t, err)

	session, err := tokens.Issue(auth.Principal{
		ID:     uuid.NewString(),
		Name:   "Ana",
		Email:  "ana@example.com",
		Scopes: scopes,
	})
	require.NoError(t, err)

	r := api.NewRouter(api.RouterDeps{
		AuthFlows:  &stubFlows{},
		Tokens:     tokens,
		Movies:     &stubMovieRepo{},
		UserMovies: stubUserMovieRepo{},
		DBPinger:   stubPinger{},
		Version:    "test",
		Dev:        false,
	})
	return r, session
}

func get(t *testing.T, h http.Handler, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	r, _ := newRouter(t)

	w := get(t, r, "/health", "")

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status   string `json:"status"`
		Version  string `json:"version"`
		Database bool   `json:"database"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "test", resp.Version)
	assert.True(t, resp.Database)
}

func TestRouter_NotFoundEnvelope(t *testing.T) {
	r, _ := newRouter(t)

	w := get(t, r, "/nope", "")

	require.Equal(t, http.StatusNotFound, w.Code)

	var resp struct {
		StatusCode int    `json:"statusCode"`
		Error      string `json:"error"`
		Message    string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Not Found", resp.Error)
}

func TestRouter_MoviesRequireToken(t *testing.T) {
	r, _ := newRouter(t, "read:movies")

	w := get(t, r, "/api/movies", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_MoviesListWithScope(t *testing.T) {
	r, token := newRouter(t, "read:movies")

	w := get(t, r, "/api/movies", token)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("Cache-Control"), "list responses carry cache headers")
}

func TestRouter_MoviesInsufficientScopes(t *testing.T) {
	r, token := newRouter(t, "read:user-movies")

	w := get(t, r, "/api/movies", token)

	require.Equal(t, http.StatusUnauthorized, w.Code)

	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Insufficient scopes", resp.Message)
}

func TestRouter_CreateMovieNeedsCreateScope(t *testing.T) {
	r, token := newRouter(t, "read:movies")

	body := strings.NewReader(`{"title":"x","year":2000,"duration":100}`)
	req := httptest.NewRequest(http.MethodPost, "/api/movies", body)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_SignInReachableWithoutToken(t *testing.T) {
	tokens, err := auth.NewTokenService(testSecret)
	require.NoError(t, err)

	r := api.NewRouter(api.RouterDeps{
		AuthFlows:  &stubFlows{err: auth.ErrInvalidCredentials},
		Tokens:     tokens,
		Movies:     &stubMovieRepo{},
		UserMovies: stubUserMovieRepo{},
		DBPinger:   stubPinger{},
		Version:    "test",
		Dev:        true,
	})

	body := strings.NewReader(`{"apiKeyToken":"abc"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/sign-in", body)
	req.SetBasicAuth("ana@example.com", "wrong")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_UserMoviesScoped(t *testing.T) {
	r, token := newRouter(t, "read:user-movies")

	w := get(t, r, "/api/user-movies?userId="+uuid.NewString(), token)

	assert.Equal(t, http.StatusOK, w.Code)
}
