package movie

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
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

const movieColumns = `id, title, year, cover, description, duration, content_rating, source, tags, created_at`

func scanMovie(row pgx.Row, m *Movie) error {
	return row.Scan(
		&m.ID, &m.Title, &m.Year, &m.Cover, &m.Description,
		&m.Duration, &m.ContentRating, &m.Source, &m.Tags, &m.CreatedAt,
	)
}

// List returns movies ordered by creation time, optionally filtered by tag.
func (r *PostgresRepository) List(ctx context.Context, tag string) ([]Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies`
	args := []any{}
	if tag != "" {
		query += ` WHERE $1 = ANY(tags)`
		args = append(args, tag)
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing movies: %w", err)
	}
	defer rows.Close()

	movies := []Movie{}
	for rows.Next() {
		var m Movie
		if err := scanMovie(rows, &m); err != nil {
			return nil, fmt.Errorf("scanning movie row: %w", err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating movie rows: %w", err)
	}

	return movies, nil
}

// GetByID retrieves a single movie by its UUID.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`

	var m Movie
	if err := scanMovie(r.pool.QueryRow(ctx, query, id), &m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("querying movie: %w", err)
	}

	return &m, nil
}

// Create inserts a new movie record.
func (r *PostgresRepository) Create(ctx context.Context, m *Movie) error {
	query := `
		INSERT INTO movies (title, year, cover, description, duration, content_rating, source, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query,
		m.Title, m.Year, m.Cover, m.Description,
		m.Duration, m.ContentRating, m.Source, m.Tags,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting movie: %w", err)
	}

	return nil
}

// Update replaces the stored fields of an existing movie.
func (r *PostgresRepository) Update(ctx context.Context, m *Movie) error {
	query := `
		UPDATE movies
		SET title = $2, year = $3, cover = $4, description = $5,
		    duration = $6, content_rating = $7, source = $8, tags = $9
		WHERE id = $1`

	result, err := r.pool.Exec(ctx, query,
		m.ID, m.Title, m.Year, m.Cover, m.Description,
		m.Duration, m.ContentRating, m.Source, m.Tags,
	)
	if err != nil {
		return fmt.Errorf("updating movie: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrMovieNotFound
	}

	return nil
}

// Delete removes a movie record.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting movie: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrMovieNotFound
	}

	return nil
}
