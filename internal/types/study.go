package types

import (
	"time"

	"github.com/google/uuid"
)

// Subject is the root of the notes tree (subject → chapter → topic)
type Subject struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Chapters  []Chapter `json:"chapters"`
	CreatedAt time.Time `json:"created_at"`
}

// Chapter belongs to a subject
type Chapter struct {
	ID        uuid.UUID `json:"id"`
	SubjectID uuid.UUID `json:"subject_id"`
	Name      string    `json:"name"`
	Content   string    `json:"content,omitempty"`
	Topics    []Topic   `json:"topics"`
	CreatedAt time.Time `json:"created_at"`
}

// Topic is a leaf of the notes tree, optionally linked to an analysed document
type Topic struct {
	ID           uuid.UUID  `json:"id"`
	ChapterID    uuid.UUID  `json:"chapter_id"`
	Name         string     `json:"name"`
	Content      string     `json:"content,omitempty"`
	DocumentID   *uuid.UUID `json:"document_id,omitempty"`
	DocumentName string     `json:"document_name,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// DocumentStats holds the display counters shown next to a summary
type DocumentStats struct {
	OriginalWords      int `json:"original_words"`
	SummaryWords       int `json:"summary_words"`
	CompressionPercent int `json:"compression_percent"`
}

// Document is an ingested file together with its analysis
type Document struct {
	ID        uuid.UUID      `json:"id"`
	UserID    uuid.UUID      `json:"user_id"`
	Filename  string         `json:"filename"`
	Type      string         `json:"type"`
	SizeBytes int64          `json:"size_bytes"`
	Hash      string         `json:"hash"`
	FullText  string         `json:"full_text,omitempty"`
	Analysis  AnalysisResult `json:"analysis"`
	Stats     DocumentStats  `json:"stats"`
	CreatedAt time.Time      `json:"created_at"`
}

// JournalEntry is a study session reflection
type JournalEntry struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Subject   string    `json:"subject"`
	Mood      string    `json:"mood,omitempty"`
	Hours     float64   `json:"hours"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Activity is one line of the recent-activity feed
type Activity struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Dashboard aggregates the counters shown on the overview page
type Dashboard struct {
	Documents      int     `json:"documents"`
	Notes          int     `json:"notes"`
	JournalEntries int     `json:"journal_entries"`
	TotalHours     float64 `json:"total_hours"`
}
