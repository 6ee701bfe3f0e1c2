package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresUserRepository implements UserRepository using pgxpool.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a UserRepository backed by the given connection pool.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &PostgresUserRepository{pool: pool}
}

// FindByEmail retrieves a single user by email.
func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE email = $1`

	var u User
	err := r.pool.QueryRow(ctx, query, normalizeEmail(email)).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("querying user: %w", err)
	}

	return &u, nil
}

// Create inserts a new user record.
func (r *PostgresUserRepository) Create(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query,
		u.Name,
		normalizeEmail(u.Email),
		u.PasswordHash,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrEmailTaken
		}
		return fmt.Errorf("inserting user: %w", err)
	}

	return nil
}

// GetOrCreate returns the user matching the given email, inserting it first
// when absent. ON CONFLICT DO NOTHING plus a re-select keeps concurrent
// identical calls from racing a duplicate insert.
func (r *PostgresUserRepository) GetOrCreate(ctx context.Context, u *User) (*User, error) {
	query := `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO NOTHING
		RETURNING id, name, email, password_hash, created_at`

	var created User
	err := r.pool.QueryRow(ctx, query,
		u.Name,
		normalizeEmail(u.Email),
		u.PasswordHash,
	).Scan(&created.ID, &created.Name, &created.Email, &created.PasswordHash, &created.CreatedAt)
	if err == nil {
		return &created, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("inserting user: %w", err)
	}

	// Conflict: the record already exists, fetch it.
	return r.FindByEmail(ctx, u.Email)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// PostgresAPIKeyRepository implements APIKeyRepository using pgxpool.
type PostgresAPIKeyRepository struct {
	pool *pgxpool.Pool
}

// NewAPIKeyRepository creates an APIKeyRepository backed by the given pool.
func NewAPIKeyRepository(pool *pgxpool.Pool) APIKeyRepository {
	return &PostgresAPIKeyRepository{pool: pool}
}

// FindByToken retrieves an API key and its scope grant by token.
func (r *PostgresAPIKeyRepository) FindByToken(ctx context.Context, token string) (*APIKey, error) {
	query := `
		SELECT token, scopes
		FROM api_keys
		WHERE token = $1`

	var k APIKey
	err := r.pool.QueryRow(ctx, query, token).Scan(&k.Token, &k.Scopes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAPIKeyNotFound
		}
		return nil, fmt.Errorf("querying api key: %w", err)
	}

	return &k, nil
}
