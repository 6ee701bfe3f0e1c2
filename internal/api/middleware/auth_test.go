package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmoteca/filmoteca/internal/api/middleware"
	"github.com/filmoteca/filmoteca/internal/auth"
)

const testSecret = "middleware-test-secret"

func newTokenService(t *testing.T) *auth.TokenService {
	t.Helper()

	tokens, err := auth.NewTokenService(testSecret)
	require.NoError(t, err)
	return tokens
}

func issueToken(t *testing.T, tokens *auth.TokenService, scopes ...string) string {
	t.Helper()

	raw, err := tokens.Issue(auth.Principal{
		ID:     "user-1",
		Name:   "Ada",
		Email:  "ada@example.com",
		Scopes: scopes,
	})
	require.NoError(t, err)
	return raw
}

func principalEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := middleware.GetPrincipal(r.Context())
		if p == nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(p)
	})
}

func parseErrorEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var env map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestAuth_MissingHeader(t *testing.T) {
	handler := middleware.Auth(newTokenService(t))(principalEcho())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	env := parseErrorEnvelope(t, w)
	assert.Equal(t, float64(http.StatusUnauthorized), env["statusCode"])
	assert.Equal(t, "Unauthorized", env["error"])
}

func TestAuth_InvalidToken(t *testing.T) {
	handler := middleware.Auth(newTokenService(t))(principalEcho())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_ValidTokenAttachesPrincipal(t *testing.T) {
	tokens := newTokenService(t)
	handler := middleware.Auth(tokens)(principalEcho())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, "read:movies"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var p auth.Principal
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, "user-1", p.ID)
	assert.Equal(t, []string{"read:movies"}, p.Scopes)
}

func TestGetPrincipal_EmptyContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, middleware.GetPrincipal(req.Context()))
}
