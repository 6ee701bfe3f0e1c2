// Package response implements the JSON envelopes shared by the API and the
// gateway. Errors use the {statusCode, error, message} shape; successful
// mutations use {data, message}.
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorBody is the wire shape of every error response.
type ErrorBody struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

// Body is the wire shape of data-carrying responses.
type Body struct {
	Data    any    `json:"data"`
	Message string `json:"message"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Data writes a {data, message} response.
func Data(w http.ResponseWriter, status int, data any, message string) {
	JSON(w, status, Body{Data: data, Message: message})
}

// Err writes an error envelope. When message is empty the standard status
// text is used, so internal detail never leaks by default.
func Err(w http.ResponseWriter, status int, message string) {
	if message == "" {
		message = http.StatusText(status)
	}
	JSON(w, status, ErrorBody{
		StatusCode: status,
		Error:      http.StatusText(status),
		Message:    message,
	})
}
