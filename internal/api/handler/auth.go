package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/filmoteca/filmoteca/internal/api/response"
	"github.com/filmoteca/filmoteca/internal/api/validation"
	"github.com/filmoteca/filmoteca/internal/auth"
)

// AuthFlows is the credential exchange surface the handlers depend on.
type AuthFlows interface {
	SignIn(ctx context.Context, email, password, apiKeyToken string) (*auth.SignedSession, error)
	SignUp(ctx context.Context, name, email, password string) (string, error)
	SignInProvider(ctx context.Context, name, email, password, apiKeyToken string) (*auth.SignedSession, error)
}

// AuthHandler handles the /api/auth endpoints.
type AuthHandler struct {
	flows AuthFlows
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(flows AuthFlows) *AuthHandler {
	return &AuthHandler{flows: flows}
}

type signInRequest struct {
	APIKeyToken string `json:"apiKeyToken"`
}

type sessionResponse struct {
	Token string        `json:"token"`
	User  auth.UserView `json:"user"`
}

// SignIn handles POST /api/auth/sign-in. Credentials travel in the HTTP
// Basic header; the API key token travels in the JSON body.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	email, password, _ := r.BasicAuth()

	session, err := h.flows.SignIn(r.Context(), email, password, req.APIKeyToken)
	if err != nil {
		writeFlowError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, sessionResponse{Token: session.Token, User: session.User})
}

type signUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUp handles POST /api/auth/sign-up.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	if err := validation.ValidateSignUpRequest(validation.SignUpRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}); err != nil {
		response.Err(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.flows.SignUp(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeFlowError(w, r, err)
		return
	}

	response.Data(w, http.StatusCreated, id, "user created")
}

type providerSignInRequest struct {
	APIKeyToken string `json:"apiKeyToken"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

// SignProvider handles POST /api/auth/sign-provider: the provider-federation
// path that trusts an upstream identity assertion instead of checking a
// password.
func (h *AuthHandler) SignProvider(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req providerSignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	if req.APIKeyToken == "" {
		writeFlowError(w, r, auth.ErrMissingAPIKeyToken)
		return
	}

	if err := validation.ValidateProviderSignInRequest(validation.ProviderSignInRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}); err != nil {
		response.Err(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.flows.SignInProvider(r.Context(), req.Name, req.Email, req.Password, req.APIKeyToken)
	if err != nil {
		writeFlowError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, sessionResponse{Token: session.Token, User: session.User})
}
