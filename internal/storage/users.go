package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/liftlog/liftlog/internal/models"
)

// CreateUser inserts a new user with the given bcrypt hash.
// Returns ErrEmailTaken when the email is already registered.
func (db *DB) CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error) {
	var u models.User
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO users (email, password_hash)
		 VALUES ($1, $2)
		 RETURNING id, email, password_hash, created_at`,
		email, passwordHash,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("inserting user: %w", err)
	}
	return &u, nil
}

// GetUserByEmail looks up a user by email. Returns ErrNotFound when the
// email is unknown.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := db.Pool.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by email: %w", err)
	}
	return &u, nil
}

// GetUser looks up a user by ID. Returns ErrNotFound when unknown.
func (db *DB) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	err := db.Pool.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}
	return &u, nil
}

// Labels resolves user IDs to email labels in one bulk query, for
// leaderboard enrichment. IDs with no matching user are simply absent
// from the result.
func (db *DB) Labels(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]string{}, nil
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT id, email FROM users WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("querying user labels: %w", err)
	}
	defer rows.Close()

	labels := make(map[uuid.UUID]string, len(ids))
	for rows.Next() {
		var id uuid.UUID
		var email string
		if err := rows.Scan(&id, &email); err != nil {
			return nil, fmt.Errorf("scanning user label: %w", err)
		}
		labels[id] = email
	}
	return labels, rows.Err()
}
