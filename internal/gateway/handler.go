package gateway

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/filmoteca/filmoteca/internal/api/middleware"
	"github.com/filmoteca/filmoteca/internal/api/response"
)

// Session keys. The token pair lives in the session only between the
// redirect and the callback of the provider handshake.
const (
	sessionTokenKey         = "token"
	sessionUserIDKey        = "userId"
	sessionUserNameKey      = "userName"
	sessionUserEmailKey     = "userEmail"
	sessionVisitsKey        = "visits"
	sessionRequestTokenKey  = "oauthRequestToken"
	sessionRequestSecretKey = "oauthRequestSecret"
)

// Handler handles the gateway's auth endpoints.
type Handler struct {
	basic    *BasicStrategy
	provider *ProviderStrategy
	upstream *Client
	sessions *scs.SessionManager
}

// NewHandler creates a new gateway Handler. The provider strategy may be nil
// when no consumer credentials are configured.
func NewHandler(basic *BasicStrategy, provider *ProviderStrategy, upstream *Client, sessions *scs.SessionManager) *Handler {
	return &Handler{basic: basic, provider: provider, upstream: upstream, sessions: sessions}
}

// writeUpstreamError maps exchange failures onto the wire envelope. Any
// upstream failure is Unauthorized to the caller; transport detail only goes
// to the log.
func writeUpstreamError(w http.ResponseWriter, r *http.Request, err error) {
	if !errors.Is(err, ErrUpstreamUnauthorized) {
		slog.Error("upstream auth call failed", "error", err, "requestId", middleware.GetRequestID(r.Context()))
	}
	response.Err(w, http.StatusUnauthorized, "")
}

// SignIn handles POST /auth/sign-in with HTTP Basic credentials.
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	email, password, ok := r.BasicAuth()
	if !ok {
		response.Err(w, http.StatusUnauthorized, "basic credentials are required")
		return
	}

	session, err := h.basic.Authenticate(r.Context(), email, password)
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}

	h.storeSession(r, session)
	response.JSON(w, http.StatusOK, session)
}

// ProviderRedirect handles GET /auth/provider: it starts the OAuth 1.0a
// handshake and redirects the user to the provider.
func (h *Handler) ProviderRedirect(w http.ResponseWriter, r *http.Request) {
	authURL, requestToken, requestSecret, err := h.provider.AuthorizationURL()
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}

	h.sessions.Put(r.Context(), sessionRequestTokenKey, requestToken)
	h.sessions.Put(r.Context(), sessionRequestSecretKey, requestSecret)

	http.Redirect(w, r, authURL, http.StatusFound)
}

// ProviderCallback handles GET /auth/provider/callback: it completes the
// handshake and stores the authenticated session.
func (h *Handler) ProviderCallback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	callbackToken := query.Get("oauth_token")
	verifier := query.Get("oauth_verifier")

	requestToken := h.sessions.GetString(r.Context(), sessionRequestTokenKey)
	requestSecret := h.sessions.GetString(r.Context(), sessionRequestSecretKey)
	h.sessions.Remove(r.Context(), sessionRequestTokenKey)
	h.sessions.Remove(r.Context(), sessionRequestSecretKey)

	if callbackToken == "" || verifier == "" || callbackToken != requestToken {
		response.Err(w, http.StatusUnauthorized, "")
		return
	}

	session, err := h.provider.Callback(r.Context(), requestToken, requestSecret, verifier)
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}

	h.storeSession(r, session)
	response.JSON(w, http.StatusOK, session)
}

// WhoAmI handles GET /whoami: it reports the session principal and a visit
// counter.
func (h *Handler) WhoAmI(w http.ResponseWriter, r *http.Request) {
	token := h.sessions.GetString(r.Context(), sessionTokenKey)
	if token == "" {
		response.Err(w, http.StatusUnauthorized, "no active session")
		return
	}

	visits := h.sessions.GetInt(r.Context(), sessionVisitsKey) + 1
	h.sessions.Put(r.Context(), sessionVisitsKey, visits)

	response.JSON(w, http.StatusOK, map[string]any{
		"user": RemoteUser{
			ID:    h.sessions.GetString(r.Context(), sessionUserIDKey),
			Name:  h.sessions.GetString(r.Context(), sessionUserNameKey),
			Email: h.sessions.GetString(r.Context(), sessionUserEmailKey),
		},
		"visits": visits,
	})
}

type createUserMovieRequest struct {
	MovieID string `json:"movieId"`
}

// CreateUserMovie handles POST /user-movies: the link creation is forwarded
// under the session token, with the session user as the owner.
func (h *Handler) CreateUserMovie(w http.ResponseWriter, r *http.Request) {
	token := h.sessions.GetString(r.Context(), sessionTokenKey)
	if token == "" {
		response.Err(w, http.StatusUnauthorized, "no active session")
		return
	}

	var req createUserMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	userID := h.sessions.GetString(r.Context(), sessionUserIDKey)
	id, err := h.upstream.CreateUserMovie(r.Context(), token, userID, req.MovieID)
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}

	response.Data(w, http.StatusCreated, id, "user movie created")
}

// DeleteUserMovie handles DELETE /user-movies/{userMovieId} under the
// session token.
func (h *Handler) DeleteUserMovie(w http.ResponseWriter, r *http.Request) {
	token := h.sessions.GetString(r.Context(), sessionTokenKey)
	if token == "" {
		response.Err(w, http.StatusUnauthorized, "no active session")
		return
	}

	id := chi.URLParam(r, "userMovieId")
	if err := h.upstream.DeleteUserMovie(r.Context(), token, id); err != nil {
		writeUpstreamError(w, r, err)
		return
	}

	response.Data(w, http.StatusOK, id, "user movie deleted")
}

func (h *Handler) storeSession(r *http.Request, session *Session) {
	ctx := r.Context()
	h.sessions.Put(ctx, sessionTokenKey, session.Token)
	h.sessions.Put(ctx, sessionUserIDKey, session.User.ID)
	h.sessions.Put(ctx, sessionUserNameKey, session.User.Name)
	h.sessions.Put(ctx, sessionUserEmailKey, session.User.Email)
}
