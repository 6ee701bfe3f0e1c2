// Package validation holds the structural rules for request payloads.
package validation

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// SignUpRequest mirrors the fields of a user-creation payload.
type SignUpRequest struct {
	Name     string
	Email    string
	Password string
}

// ValidateSignUpRequest validates a sign-up payload. The returned error
// lists every failing field.
func ValidateSignUpRequest(req SignUpRequest) error {
	return validation.Errors{
		"name":     validation.Validate(req.Name, validation.Required, validation.Length(1, 100)),
		"email":    validation.Validate(req.Email, validation.Required, is.Email),
		"password": validation.Validate(req.Password, validation.Required, validation.Length(8, 72)),
	}.Filter()
}

// ProviderSignInRequest mirrors the provider-asserted identity fields. The
// password is a provider-derived surrogate, so no minimum length applies.
type ProviderSignInRequest struct {
	Name     string
	Email    string
	Password string
}

// ValidateProviderSignInRequest validates a provider sign-in payload.
func ValidateProviderSignInRequest(req ProviderSignInRequest) error {
	return validation.Errors{
		"name":     validation.Validate(req.Name, validation.Required, validation.Length(1, 100)),
		"email":    validation.Validate(req.Email, validation.Required, is.Email),
		"password": validation.Validate(req.Password, validation.Required),
	}.Filter()
}
