package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/studygram/internal/study"
)

// CreateUser inserts an account. A taken email yields study.ErrEmailExists.
func (db *DB) CreateUser(ctx context.Context, user *study.UserRecord) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, created_at) VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return study.ErrEmailExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByEmail looks an account up by address, ignoring case
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*study.UserRecord, error) {
	var u study.UserRecord
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE LOWER(email) = LOWER($1)`,
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, notFoundOr(err, "user", uuid.Nil, "get")
	}
	return &u, nil
}

// GetUser looks an account up by ID
func (db *DB) GetUser(ctx context.Context, userID uuid.UUID) (*study.UserRecord, error) {
	var u study.UserRecord
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE id = $1`,
		userID,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, notFoundOr(err, "user", userID, "get")
	}
	return &u, nil
}
