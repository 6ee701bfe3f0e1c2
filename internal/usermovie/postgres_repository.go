package usermovie

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a Repository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

// ListByUser returns the user's movie list ordered by creation time.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]UserMovie, error) {
	query := `
		SELECT id, user_id, movie_id, created_at
		FROM user_movies
		WHERE user_id = $1
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing user movies: %w", err)
	}
	defer rows.Close()

	userMovies := []UserMovie{}
	for rows.Next() {
		var um UserMovie
		if err := rows.Scan(&um.ID, &um.UserID, &um.MovieID, &um.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning user movie row: %w", err)
		}
		userMovies = append(userMovies, um)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating user movie rows: %w", err)
	}

	return userMovies, nil
}

// Create inserts a user-movie link. Adding the same movie twice resolves to
// the existing link.
func (r *PostgresRepository) Create(ctx context.Context, um *UserMovie) error {
	query := `
		INSERT INTO user_movies (user_id, movie_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, movie_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query, um.UserID, um.MovieID).Scan(&um.ID, &um.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting user movie: %w", err)
	}

	return nil
}

// Delete removes a user-movie link.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM user_movies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting user movie: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrUserMovieNotFound
	}

	return nil
}
