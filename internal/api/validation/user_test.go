package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmoteca/filmoteca/internal/api/validation"
)

func validSignUp() validation.SignUpRequest {
	return validation.SignUpRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "correct horse battery",
	}
}

func TestValidateSignUpRequest(t *testing.T) {
	assert.NoError(t, validation.ValidateSignUpRequest(validSignUp()))
}

func TestValidateSignUpRequest_MissingFields(t *testing.T) {
	err := validation.ValidateSignUpRequest(validation.SignUpRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
	assert.Contains(t, err.Error(), "email")
	assert.Contains(t, err.Error(), "password")
}

func TestValidateSignUpRequest_BadEmail(t *testing.T) {
	req := validSignUp()
	req.Email = "not-an-email"
	assert.Error(t, validation.ValidateSignUpRequest(req))
}

func TestValidateSignUpRequest_ShortPassword(t *testing.T) {
	req := validSignUp()
	req.Password = "short"
	assert.Error(t, validation.ValidateSignUpRequest(req))
}

func TestValidateProviderSignInRequest(t *testing.T) {
	err := validation.ValidateProviderSignInRequest(validation.ProviderSignInRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "x",
	})
	assert.NoError(t, err, "provider surrogates have no minimum length")
}

func TestValidateProviderSignInRequest_MissingPassword(t *testing.T) {
	err := validation.ValidateProviderSignInRequest(validation.ProviderSignInRequest{
		Name:  "Ana",
		Email: "ana@example.com",
	})
	assert.Error(t, err)
}
