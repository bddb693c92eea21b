package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/studygram/internal/types"
)

// CreateSubject inserts a new subject
func (db *DB) CreateSubject(ctx context.Context, subject *types.Subject) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO subjects (id, user_id, name, created_at) VALUES ($1, $2, $3, $4)`,
		subject.ID, subject.UserID, subject.Name, subject.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create subject: %w", err)
	}
	return nil
}

// ListSubjects loads the user's subject tree in creation order
func (db *DB) ListSubjects(ctx context.Context, userID uuid.UUID) ([]types.Subject, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, name, created_at FROM subjects
		 WHERE user_id = $1 ORDER BY position`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	defer rows.Close()

	subjects := []types.Subject{}
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var s types.Subject
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subject: %w", err)
		}
		s.Chapters = []types.Chapter{}
		index[s.ID] = len(subjects)
		subjects = append(subjects, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	if len(subjects) == 0 {
		return subjects, nil
	}

	topics, err := db.listTopics(ctx, userID)
	if err != nil {
		return nil, err
	}

	chapterRows, err := db.pool.Query(ctx,
		`SELECT c.id, c.subject_id, c.name, c.content, c.created_at
		 FROM chapters c JOIN subjects s ON s.id = c.subject_id
		 WHERE s.user_id = $1 ORDER BY c.position`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list chapters: %w", err)
	}
	defer chapterRows.Close()

	for chapterRows.Next() {
		var c types.Chapter
		if err := chapterRows.Scan(&c.ID, &c.SubjectID, &c.Name, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chapter: %w", err)
		}
		c.Topics = topics[c.ID]
		if c.Topics == nil {
			c.Topics = []types.Topic{}
		}
		if i, ok := index[c.SubjectID]; ok {
			subjects[i].Chapters = append(subjects[i].Chapters, c)
		}
	}
	if err := chapterRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list chapters: %w", err)
	}
	return subjects, nil
}

// listTopics groups the user's topics by chapter
func (db *DB) listTopics(ctx context.Context, userID uuid.UUID) (map[uuid.UUID][]types.Topic, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT t.id, t.chapter_id, t.name, t.content, t.document_id, t.document_name, t.created_at, t.updated_at
		 FROM topics t
		 JOIN chapters c ON c.id = t.chapter_id
		 JOIN subjects s ON s.id = c.subject_id
		 WHERE s.user_id = $1 ORDER BY t.position`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	defer rows.Close()

	byChapter := make(map[uuid.UUID][]types.Topic)
	for rows.Next() {
		var t types.Topic
		if err := rows.Scan(&t.ID, &t.ChapterID, &t.Name, &t.Content, &t.DocumentID, &t.DocumentName, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan topic: %w", err)
		}
		byChapter[t.ChapterID] = append(byChapter[t.ChapterID], t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	return byChapter, nil
}

// DeleteSubject removes a subject; chapters and topics go with it via cascade
func (db *DB) DeleteSubject(ctx context.Context, userID, subjectID uuid.UUID) error {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM subjects WHERE id = $1 AND user_id = $2`,
		subjectID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete subject: %w", err)
	}
	return expectRow(tag, "subject", subjectID)
}

// CreateChapter inserts a chapter under one of the user's subjects
func (db *DB) CreateChapter(ctx context.Context, userID uuid.UUID, chapter *types.Chapter) error {
	tag, err := db.pool.Exec(ctx,
		`INSERT INTO chapters (id, subject_id, name, content, created_at)
		 SELECT $1::uuid, $2::uuid, $3::text, $4::text, $5::timestamptz
		 WHERE EXISTS (SELECT 1 FROM subjects WHERE id = $2 AND user_id = $6)`,
		chapter.ID, chapter.SubjectID, chapter.Name, chapter.Content, chapter.CreatedAt, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to create chapter: %w", err)
	}
	return expectRow(tag, "subject", chapter.SubjectID)
}

// DeleteChapter removes a chapter of the given subject
func (db *DB) DeleteChapter(ctx context.Context, userID, subjectID, chapterID uuid.UUID) error {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM chapters c USING subjects s
		 WHERE c.id = $1 AND c.subject_id = $2 AND s.id = c.subject_id AND s.user_id = $3`,
		chapterID, subjectID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete chapter: %w", err)
	}
	return expectRow(tag, "chapter", chapterID)
}

// CreateTopic inserts a topic under one of the user's chapters
func (db *DB) CreateTopic(ctx context.Context, userID uuid.UUID, topic *types.Topic) error {
	tag, err := db.pool.Exec(ctx,
		`INSERT INTO topics (id, chapter_id, name, content, document_id, document_name, created_at, updated_at)
		 SELECT $1::uuid, $2::uuid, $3::text, $4::text, $5::uuid, $6::text, $7::timestamptz, $8::timestamptz
		 WHERE EXISTS (
		     SELECT 1 FROM chapters c JOIN subjects s ON s.id = c.subject_id
		     WHERE c.id = $2 AND s.user_id = $9
		 )`,
		topic.ID, topic.ChapterID, topic.Name, topic.Content, topic.DocumentID, topic.DocumentName,
		topic.CreatedAt, topic.UpdatedAt, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to create topic: %w", err)
	}
	return expectRow(tag, "chapter", topic.ChapterID)
}

// GetTopic loads one of the user's topics
func (db *DB) GetTopic(ctx context.Context, userID, topicID uuid.UUID) (*types.Topic, error) {
	var t types.Topic
	err := db.pool.QueryRow(ctx,
		`SELECT t.id, t.chapter_id, t.name, t.content, t.document_id, t.document_name, t.created_at, t.updated_at
		 FROM topics t
		 JOIN chapters c ON c.id = t.chapter_id
		 JOIN subjects s ON s.id = c.subject_id
		 WHERE t.id = $1 AND s.user_id = $2`,
		topicID, userID,
	).Scan(&t.ID, &t.ChapterID, &t.Name, &t.Content, &t.DocumentID, &t.DocumentName, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, notFoundOr(err, "topic", topicID, "get")
	}
	return &t, nil
}

// UpdateTopic rewrites a topic's name, content and document link
func (db *DB) UpdateTopic(ctx context.Context, userID uuid.UUID, topic *types.Topic) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE topics t SET name = $2, content = $3, document_id = $4, document_name = $5, updated_at = $6
		 FROM chapters c, subjects s
		 WHERE t.id = $1 AND c.id = t.chapter_id AND s.id = c.subject_id AND s.user_id = $7`,
		topic.ID, topic.Name, topic.Content, topic.DocumentID, topic.DocumentName, topic.UpdatedAt, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update topic: %w", err)
	}
	return expectRow(tag, "topic", topic.ID)
}

// DeleteTopic removes one of the user's topics
func (db *DB) DeleteTopic(ctx context.Context, userID, topicID uuid.UUID) error {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM topics t USING chapters c, subjects s
		 WHERE t.id = $1 AND c.id = t.chapter_id AND s.id = c.subject_id AND s.user_id = $2`,
		topicID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete topic: %w", err)
	}
	return expectRow(tag, "topic", topicID)
}
