package study

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/studygram/internal/types"
)

func seedTree(t *testing.T, repo *MemoryRepository, userID uuid.UUID) (types.Subject, types.Chapter, types.Topic) {
	t.Helper()
	ctx := context.Background()

	subject := types.Subject{ID: uuid.New(), UserID: userID, Name: "Biology"}
	require.NoError(t, repo.CreateSubject(ctx, &subject))

	chapter := types.Chapter{ID: uuid.New(), SubjectID: subject.ID, Name: "Cells"}
	require.NoError(t, repo.CreateChapter(ctx, userID, &chapter))

	topic := types.Topic{ID: uuid.New(), ChapterID: chapter.ID, Name: "Mitosis"}
	require.NoError(t, repo.CreateTopic(ctx, userID, &topic))

	return subject, chapter, topic
}

func TestMemoryRepository_ListSubjectsInCreationOrder(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	userID := uuid.New()

	names := []string{"Zoology", "Algebra", "Music"}
	for _, name := range names {
		require.NoError(t, repo.CreateSubject(ctx, &types.Subject{ID: uuid.New(), UserID: userID, Name: name}))
	}

	subjects, err := repo.ListSubjects(ctx, userID)
	require.NoError(t, err)
	require.Len(t, subjects, 3)
	for i, name := range names {
		assert.Equal(t, name, subjects[i].Name)
		assert.NotNil(t, subjects[i].Chapters)
	}
}

func TestMemoryRepository_ChapterRequiresOwnedSubject(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	subject, _, _ := seedTree(t, repo, uuid.New())

	err := repo.CreateChapter(ctx, uuid.New(), &types.Chapter{ID: uuid.New(), SubjectID: subject.ID, Name: "Foreign"})
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.CreateChapter(ctx, subject.UserID, &types.Chapter{ID: uuid.New(), SubjectID: uuid.New(), Name: "Orphan"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepository_DeleteChapterChecksSubject(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	userID := uuid.New()
	subject, chapter, topic := seedTree(t, repo, userID)

	err := repo.DeleteChapter(ctx, userID, uuid.New(), chapter.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.DeleteChapter(ctx, userID, subject.ID, chapter.ID))

	_, err = repo.GetTopic(ctx, userID, topic.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepository_TopicCopiesAreIsolated(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	userID := uuid.New()
	_, chapter, _ := seedTree(t, repo, userID)

	docID := uuid.New()
	topic := types.Topic{ID: uuid.New(), ChapterID: chapter.ID, Name: "Linked", DocumentID: &docID}
	require.NoError(t, repo.CreateTopic(ctx, userID, &topic))

	got, err := repo.GetTopic(ctx, userID, topic.ID)
	require.NoError(t, err)
	*got.DocumentID = uuid.New()
	got.Name = "mutated"

	again, err := repo.GetTopic(ctx, userID, topic.ID)
	require.NoError(t, err)
	assert.Equal(t, docID, *again.DocumentID)
	assert.Equal(t, "Linked", again.Name)
}

func TestMemoryRepository_UpdateTopicForeignUser(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	_, _, topic := seedTree(t, repo, uuid.New())

	topic.Name = "Hijacked"
	assert.ErrorIs(t, repo.UpdateTopic(ctx, uuid.New(), &topic), ErrNotFound)
	assert.ErrorIs(t, repo.DeleteTopic(ctx, uuid.New(), topic.ID), ErrNotFound)
}

func TestMemoryRepository_DeleteDocumentUnlinksTopics(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	userID := uuid.New()
	_, chapter, _ := seedTree(t, repo, userID)

	doc := types.Document{ID: uuid.New(), UserID: userID, Filename: "cells.pdf"}
	require.NoError(t, repo.SaveDocument(ctx, &doc))

	topic := types.Topic{ID: uuid.New(), ChapterID: chapter.ID, Name: "Organelles", DocumentID: &doc.ID, DocumentName: doc.Filename}
	require.NoError(t, repo.CreateTopic(ctx, userID, &topic))

	require.NoError(t, repo.DeleteDocument(ctx, userID, doc.ID))

	got, err := repo.GetTopic(ctx, userID, topic.ID)
	require.NoError(t, err)
	assert.Nil(t, got.DocumentID)
	assert.Equal(t, "cells.pdf", got.DocumentName)
}

func TestMemoryRepository_DocumentsScopedToUser(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	owner := uuid.New()

	doc := types.Document{ID: uuid.New(), UserID: owner, Filename: "a.txt"}
	require.NoError(t, repo.SaveDocument(ctx, &doc))

	_, err := repo.GetDocument(ctx, uuid.New(), doc.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.DeleteDocument(ctx, uuid.New(), doc.ID), ErrNotFound)

	docs, err := repo.ListDocuments(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestMemoryRepository_ActivityPrune(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	userID := uuid.New()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.AddActivity(ctx, &types.Activity{
			ID:        uuid.New(),
			UserID:    userID,
			Message:   string(rune('a' + i)),
			CreatedAt: time.Now(),
		}))
	}

	feed, err := repo.RecentActivity(ctx, userID, 3)
	require.NoError(t, err)
	require.Len(t, feed, 3)
	assert.Equal(t, "e", feed[0].Message)

	require.NoError(t, repo.PruneActivity(ctx, userID, 2))
	feed, err = repo.RecentActivity(ctx, userID, 10)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, "d", feed[1].Message)

	feed, err = repo.RecentActivity(ctx, userID, -1)
	require.NoError(t, err)
	assert.Empty(t, feed)
}

func TestMemoryRepository_Users(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	user := UserRecord{ID: uuid.New(), Name: "Ada", Email: "Ada@Example.com", PasswordHash: "hash"}
	require.NoError(t, repo.CreateUser(ctx, &user))

	err := repo.CreateUser(ctx, &UserRecord{ID: uuid.New(), Email: "ada@example.com"})
	assert.ErrorIs(t, err, ErrEmailExists)

	got, err := repo.GetUserByEmail(ctx, "ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = repo.GetUser(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepository_ConcurrentWrites(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	userID := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.AddJournalEntry(ctx, &types.JournalEntry{ID: uuid.New(), UserID: userID, Subject: "Math", Hours: 0.5, Text: "x"})
		}()
	}
	wg.Wait()

	dash, err := repo.Counts(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 20, dash.JournalEntries)
	assert.InDelta(t, 10.0, dash.TotalHours, 1e-9)
}
