package movie

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrMovieNotFound is returned when a movie record is not found.
var ErrMovieNotFound = errors.New("movie not found")

// Repository provides operations on the movies table.
type Repository interface {
	// List returns movies, optionally filtered to those carrying the tag.
	List(ctx context.Context, tag string) ([]Movie, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Movie, error)
	Create(ctx context.Context, m *Movie) error
	Update(ctx context.Context, m *Movie) error
	Delete(ctx context.Context, id uuid.UUID) error
}
