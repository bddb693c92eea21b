// Package study holds the study organizer: the subject tree, analysed documents,
// the learning journal and the activity feed.
package study

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/studygram/internal/types"
)

// SubjectStore persists the subject → chapter → topic tree. Lookups by ID
// are scoped to the owning user; a foreign ID behaves as missing.
type SubjectStore interface {
	CreateSubject(ctx context.Context, subject *types.Subject) error
	ListSubjects(ctx context.Context, userID uuid.UUID) ([]types.Subject, error)
	DeleteSubject(ctx context.Context, userID, subjectID uuid.UUID) error

	CreateChapter(ctx context.Context, userID uuid.UUID, chapter *types.Chapter) error
	DeleteChapter(ctx context.Context, userID, subjectID, chapterID uuid.UUID) error

	CreateTopic(ctx context.Context, userID uuid.UUID, topic *types.Topic) error
	GetTopic(ctx context.Context, userID, topicID uuid.UUID) (*types.Topic, error)
	UpdateTopic(ctx context.Context, userID uuid.UUID, topic *types.Topic) error
	DeleteTopic(ctx context.Context, userID, topicID uuid.UUID) error
}

// DocumentStore persists analysed documents
type DocumentStore interface {
	SaveDocument(ctx context.Context, doc *types.Document) error
	ListDocuments(ctx context.Context, userID uuid.UUID) ([]types.Document, error)
	GetDocument(ctx context.Context, userID, documentID uuid.UUID) (*types.Document, error)
	DeleteDocument(ctx context.Context, userID, documentID uuid.UUID) error
}

// JournalStore persists study journal entries
type JournalStore interface {
	AddJournalEntry(ctx context.Context, entry *types.JournalEntry) error
	ListJournalEntries(ctx context.Context, userID uuid.UUID) ([]types.JournalEntry, error)
	DeleteJournalEntry(ctx context.Context, userID, entryID uuid.UUID) error
}

// ActivityStore persists the recent-activity feed
type ActivityStore interface {
	AddActivity(ctx context.Context, activity *types.Activity) error
	// RecentActivity returns at most limit entries, newest first
	RecentActivity(ctx context.Context, userID uuid.UUID, limit int) ([]types.Activity, error)
	// PruneActivity drops all but the newest keep entries
	PruneActivity(ctx context.Context, userID uuid.UUID, keep int) error
}

// UserRecord is a stored account including its password hash
type UserRecord struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserStore persists accounts. CreateUser returns ErrEmailExists for a taken address.
type UserStore interface {
	CreateUser(ctx context.Context, user *UserRecord) error
	GetUserByEmail(ctx context.Context, email string) (*UserRecord, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*UserRecord, error)
}

// Repository is the full persistence surface of the study organizer
type Repository interface {
	SubjectStore
	DocumentStore
	JournalStore
	ActivityStore
	UserStore

	// Counts returns the dashboard counters of a user
	Counts(ctx context.Context, userID uuid.UUID) (*types.Dashboard, error)
}
