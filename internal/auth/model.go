package auth

import (
	"time"

	"github.com/google/uuid"
)

// User represents a row in the users table. The password hash never leaves
// this package.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// APIKey carries a scope grant into a session. Keys are created and managed
// externally; this service only reads them.
type APIKey struct {
	Token  string
	Scopes []string
}

// Principal is the authenticated identity attached to a request after token
// verification. Its scopes are the ones embedded at issuance, never
// recomputed from the user record.
type Principal struct {
	ID     string
	Name   string
	Email  string
	Scopes []string
}

// UserView is the redacted user shape returned to callers.
type UserView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SignedSession is the result of a successful credential exchange.
type SignedSession struct {
	Token string
	User  UserView
}
