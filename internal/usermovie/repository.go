package usermovie

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrUserMovieNotFound is returned when a user-movie record is not found.
var ErrUserMovieNotFound = errors.New("user movie not found")

// Repository provides operations on the user_movies table.
type Repository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]UserMovie, error)
	Create(ctx context.Context, um *UserMovie) error
	Delete(ctx context.Context, id uuid.UUID) error
}
