package auth

import (
	"context"
	"errors"
)

// ErrUserNotFound is returned when a user record is not found.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailTaken is returned when creating a user whose email already exists.
var ErrEmailTaken = errors.New("email already registered")

// ErrAPIKeyNotFound is returned when no API key matches the given token.
var ErrAPIKeyNotFound = errors.New("api key not found")

// UserRepository provides operations on the users table.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) error
	// GetOrCreate returns the user with the given email, creating it first if
	// absent. Concurrent identical calls must resolve to a single record.
	GetOrCreate(ctx context.Context, user *User) (*User, error)
}

// APIKeyRepository provides read access to the api_keys table.
type APIKeyRepository interface {
	FindByToken(ctx context.Context, token string) (*APIKey, error)
}
