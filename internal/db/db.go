// Package db provides PostgreSQL storage for the study organizer.
package db

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/studygram/internal/study"
)

//go:embed schema.sql
var schemaSQL string

// uniqueViolation is the SQLSTATE for a unique constraint failure
const uniqueViolation = "23505"

// DB wraps a PostgreSQL connection pool and implements study.Repository
type DB struct {
	pool *pgxpool.Pool
}

var _ study.Repository = (*DB)(nil)

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Ping checks that the database is reachable
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// Migrate creates the tables when they do not exist yet
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// notFoundOr maps pgx.ErrNoRows onto study.ErrNotFound and wraps everything else
func notFoundOr(err error, resource string, id uuid.UUID, action string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return &study.NotFoundError{Resource: resource, ID: id}
	}
	return fmt.Errorf("failed to %s %s: %w", action, resource, err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// expectRow reports a missing row when an ownership-scoped statement touched nothing
func expectRow(tag pgconn.CommandTag, resource string, id uuid.UUID) error {
	if tag.RowsAffected() == 0 {
		return &study.NotFoundError{Resource: resource, ID: id}
	}
	return nil
}
