package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/filmoteca/filmoteca/internal/api/middleware"
	"github.com/filmoteca/filmoteca/internal/api/response"
	"github.com/filmoteca/filmoteca/internal/auth"
)

// writeFlowError is the single place auth flow errors become wire responses.
// Anything unrecognized is logged and surfaced as an opaque 500.
func writeFlowError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, auth.ErrMissingAPIKeyToken):
		response.Err(w, http.StatusBadRequest, auth.ErrMissingAPIKeyToken.Error())
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidAPIKey):
		response.Err(w, http.StatusUnauthorized, "")
	case errors.Is(err, auth.ErrEmailTaken):
		response.Err(w, http.StatusConflict, auth.ErrEmailTaken.Error())
	default:
		slog.Error("auth flow failed", "error", err, "requestId", middleware.GetRequestID(r.Context()))
		response.Err(w, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
