package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/studygram/internal/types"
)

// AddJournalEntry inserts a study session
func (db *DB) AddJournalEntry(ctx context.Context, entry *types.JournalEntry) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO journal_entries (id, user_id, subject, mood, hours, body, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID, entry.UserID, entry.Subject, entry.Mood, entry.Hours, entry.Text, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add journal entry: %w", err)
	}
	return nil
}

// ListJournalEntries returns the user's entries, newest first
func (db *DB) ListJournalEntries(ctx context.Context, userID uuid.UUID) ([]types.JournalEntry, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, subject, mood, hours, body, created_at
		 FROM journal_entries WHERE user_id = $1 ORDER BY position DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	defer rows.Close()

	entries := []types.JournalEntry{}
	for rows.Next() {
		var e types.JournalEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Subject, &e.Mood, &e.Hours, &e.Text, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return entries, nil
}

// DeleteJournalEntry removes one of the user's entries
func (db *DB) DeleteJournalEntry(ctx context.Context, userID, entryID uuid.UUID) error {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM journal_entries WHERE id = $1 AND user_id = $2`,
		entryID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}
	return expectRow(tag, "journal entry", entryID)
}

// AddActivity appends to the user's feed
func (db *DB) AddActivity(ctx context.Context, activity *types.Activity) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO activity (id, user_id, message, created_at) VALUES ($1, $2, $3, $4)`,
		activity.ID, activity.UserID, activity.Message, activity.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add activity: %w", err)
	}
	return nil
}

// RecentActivity returns up to limit feed entries, newest first
func (db *DB) RecentActivity(ctx context.Context, userID uuid.UUID, limit int) ([]types.Activity, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, message, created_at FROM activity
		 WHERE user_id = $1 ORDER BY position DESC LIMIT $2`,
		userID, max(limit, 0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	feed := []types.Activity{}
	for rows.Next() {
		var a types.Activity
		if err := rows.Scan(&a.ID, &a.UserID, &a.Message, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		feed = append(feed, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	return feed, nil
}

// PruneActivity deletes everything but the newest keep entries
func (db *DB) PruneActivity(ctx context.Context, userID uuid.UUID, keep int) error {
	_, err := db.pool.Exec(ctx,
		`DELETE FROM activity WHERE user_id = $1 AND id NOT IN (
		     SELECT id FROM activity WHERE user_id = $1 ORDER BY position DESC LIMIT $2
		 )`,
		userID, max(keep, 0),
	)
	if err != nil {
		return fmt.Errorf("failed to prune activity: %w", err)
	}
	return nil
}

// Counts computes the dashboard counters in one round trip
func (db *DB) Counts(ctx context.Context, userID uuid.UUID) (*types.Dashboard, error) {
	var dash types.Dashboard
	err := db.pool.QueryRow(ctx,
		`SELECT
		     (SELECT COUNT(*) FROM documents WHERE user_id = $1),
		     (SELECT COUNT(*) FROM topics t
		          JOIN chapters c ON c.id = t.chapter_id
		          JOIN subjects s ON s.id = c.subject_id
		          WHERE s.user_id = $1),
		     (SELECT COUNT(*) FROM journal_entries WHERE user_id = $1),
		     (SELECT COALESCE(SUM(hours), 0) FROM journal_entries WHERE user_id = $1)`,
		userID,
	).Scan(&dash.Documents, &dash.Notes, &dash.JournalEntries, &dash.TotalHours)
	if err != nil {
		return nil, fmt.Errorf("failed to compute counts: %w", err)
	}
	return &dash, nil
}
