package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/studygram/internal/types"
)

const documentColumns = `id, user_id, filename, doc_type, size_bytes, hash, full_text, analysis, stats, created_at`

// SaveDocument stores a document and its analysis, replacing one with the same ID
func (db *DB) SaveDocument(ctx context.Context, doc *types.Document) error {
	analysisJSON, err := json.Marshal(doc.Analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}
	statsJSON, err := json.Marshal(doc.Stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO documents (`+documentColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (id) DO UPDATE SET filename = $3, doc_type = $4, size_bytes = $5,
		     hash = $6, full_text = $7, analysis = $8, stats = $9`,
		doc.ID, doc.UserID, doc.Filename, doc.Type, doc.SizeBytes, doc.Hash, doc.FullText,
		analysisJSON, statsJSON, doc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save document %s: %w", doc.Filename, err)
	}
	return nil
}

func scanDocument(row pgx.Row) (*types.Document, error) {
	var doc types.Document
	var analysisJSON, statsJSON []byte
	if err := row.Scan(&doc.ID, &doc.UserID, &doc.Filename, &doc.Type, &doc.SizeBytes, &doc.Hash,
		&doc.FullText, &analysisJSON, &statsJSON, &doc.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(analysisJSON, &doc.Analysis); err != nil {
		return nil, fmt.Errorf("failed to decode analysis: %w", err)
	}
	if err := json.Unmarshal(statsJSON, &doc.Stats); err != nil {
		return nil, fmt.Errorf("failed to decode stats: %w", err)
	}
	return &doc, nil
}

// ListDocuments returns the user's documents, newest first
func (db *DB) ListDocuments(ctx context.Context, userID uuid.UUID) ([]types.Document, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE user_id = $1 ORDER BY position DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	docs := []types.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

// GetDocument loads one of the user's documents
func (db *DB) GetDocument(ctx context.Context, userID, documentID uuid.UUID) (*types.Document, error) {
	doc, err := scanDocument(db.pool.QueryRow(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = $1 AND user_id = $2`,
		documentID, userID,
	))
	if err != nil {
		return nil, notFoundOr(err, "document", documentID, "get")
	}
	return doc, nil
}

// DeleteDocument removes a document. Linked topics keep the filename; the
// foreign key clears their document_id.
func (db *DB) DeleteDocument(ctx context.Context, userID, documentID uuid.UUID) error {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM documents WHERE id = $1 AND user_id = $2`,
		documentID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return expectRow(tag, "document", documentID)
}
