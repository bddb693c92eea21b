package db

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/studygram/internal/study"
)

func TestNotFoundOr(t *testing.T) {
	id := uuid.New()

	err := notFoundOr(pgx.ErrNoRows, "topic", id, "get")
	assert.ErrorIs(t, err, study.ErrNotFound)
	assert.Contains(t, err.Error(), id.String())

	boom := errors.New("connection reset")
	err = notFoundOr(boom, "topic", id, "get")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, study.ErrNotFound)
	assert.Equal(t, "failed to get topic: connection reset", err.Error())
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("23505")))
}

func TestExpectRow(t *testing.T) {
	id := uuid.New()
	assert.ErrorIs(t, expectRow(pgconn.NewCommandTag("DELETE 0"), "subject", id), study.ErrNotFound)
	assert.NoError(t, expectRow(pgconn.NewCommandTag("DELETE 1"), "subject", id))
}

func TestSchemaEmbedded(t *testing.T) {
	for _, table := range []string{"users", "subjects", "chapters", "topics", "documents", "journal_entries", "activity"} {
		assert.Contains(t, schemaSQL, "CREATE TABLE IF NOT EXISTS "+table+" ")
	}
	assert.Contains(t, schemaSQL, "ON DELETE SET NULL")
}
