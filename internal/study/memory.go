package study

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jonathan/studygram/internal/types"
)

// MemoryRepository is an in-process Repository backed by mutex-guarded maps.
// Values are copied in and out so callers never share state with the store.
type MemoryRepository struct {
	mu sync.RWMutex

	seq   uint64
	order map[uuid.UUID]uint64 // insertion sequence, for stable listing

	subjects  map[uuid.UUID]types.Subject
	chapters  map[uuid.UUID]types.Chapter
	topics    map[uuid.UUID]types.Topic
	documents map[uuid.UUID]types.Document
	journal   map[uuid.UUID]types.JournalEntry
	activity  map[uuid.UUID][]types.Activity // per user, newest first
	users     map[uuid.UUID]UserRecord
	emails    map[string]uuid.UUID
}

// NewMemoryRepository creates an empty repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		order:     make(map[uuid.UUID]uint64),
		subjects:  make(map[uuid.UUID]types.Subject),
		chapters:  make(map[uuid.UUID]types.Chapter),
		topics:    make(map[uuid.UUID]types.Topic),
		documents: make(map[uuid.UUID]types.Document),
		journal:   make(map[uuid.UUID]types.JournalEntry),
		activity:  make(map[uuid.UUID][]types.Activity),
		users:     make(map[uuid.UUID]UserRecord),
		emails:    make(map[string]uuid.UUID),
	}
}

var _ Repository = (*MemoryRepository)(nil)

func (r *MemoryRepository) track(id uuid.UUID) {
	r.seq++
	r.order[id] = r.seq
}

// sortedByInsertion orders ids oldest first
func (r *MemoryRepository) sortedByInsertion(ids []uuid.UUID) {
	slices.SortFunc(ids, func(a, b uuid.UUID) int {
		return cmp.Compare(r.order[a], r.order[b])
	})
}

// chapterOwner reports whether the chapter exists and belongs to userID; caller holds the lock
func (r *MemoryRepository) chapterOwner(userID, chapterID uuid.UUID) (types.Chapter, bool) {
	chapter, ok := r.chapters[chapterID]
	if !ok {
		return types.Chapter{}, false
	}
	subject, ok := r.subjects[chapter.SubjectID]
	return chapter, ok && subject.UserID == userID
}

func cloneTopic(t types.Topic) types.Topic {
	if t.DocumentID != nil {
		id := *t.DocumentID
		t.DocumentID = &id
	}
	return t
}

func (r *MemoryRepository) topicOwned(userID uuid.UUID, topic types.Topic) bool {
	_, ok := r.chapterOwner(userID, topic.ChapterID)
	return ok
}

// CreateSubject stores a new subject
func (r *MemoryRepository) CreateSubject(_ context.Context, subject *types.Subject) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *subject
	stored.Chapters = nil
	r.subjects[subject.ID] = stored
	r.track(subject.ID)
	return nil
}

// ListSubjects returns the user's subjects with their chapters and topics, in creation order
func (r *MemoryRepository) ListSubjects(_ context.Context, userID uuid.UUID) ([]types.Subject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	topicsByChapter := make(map[uuid.UUID][]uuid.UUID)
	for id, t := range r.topics {
		topicsByChapter[t.ChapterID] = append(topicsByChapter[t.ChapterID], id)
	}
	chaptersBySubject := make(map[uuid.UUID][]uuid.UUID)
	for id, c := range r.chapters {
		chaptersBySubject[c.SubjectID] = append(chaptersBySubject[c.SubjectID], id)
	}

	var subjectIDs []uuid.UUID
	for id, s := range r.subjects {
		if s.UserID == userID {
			subjectIDs = append(subjectIDs, id)
		}
	}
	r.sortedByInsertion(subjectIDs)

	subjects := make([]types.Subject, 0, len(subjectIDs))
	for _, sid := range subjectIDs {
		subject := r.subjects[sid]
		chapterIDs := chaptersBySubject[sid]
		r.sortedByInsertion(chapterIDs)

		subject.Chapters = make([]types.Chapter, 0, len(chapterIDs))
		for _, cid := range chapterIDs {
			chapter := r.chapters[cid]
			topicIDs := topicsByChapter[cid]
			r.sortedByInsertion(topicIDs)

			chapter.Topics = make([]types.Topic, 0, len(topicIDs))
			for _, tid := range topicIDs {
				chapter.Topics = append(chapter.Topics, cloneTopic(r.topics[tid]))
			}
			subject.Chapters = append(subject.Chapters, chapter)
		}
		subjects = append(subjects, subject)
	}
	return subjects, nil
}

// DeleteSubject removes a subject with all its chapters and topics
func (r *MemoryRepository) DeleteSubject(_ context.Context, userID, subjectID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	subject, ok := r.subjects[subjectID]
	if !ok || subject.UserID != userID {
		return notFound("subject", subjectID)
	}
	for cid, c := range r.chapters {
		if c.SubjectID == subjectID {
			r.deleteChapterLocked(cid)
		}
	}
	delete(r.subjects, subjectID)
	delete(r.order, subjectID)
	return nil
}

func (r *MemoryRepository) deleteChapterLocked(chapterID uuid.UUID) {
	for tid, t := range r.topics {
		if t.ChapterID == chapterID {
			delete(r.topics, tid)
			delete(r.order, tid)
		}
	}
	delete(r.chapters, chapterID)
	delete(r.order, chapterID)
}

// CreateChapter adds a chapter to one of the user's subjects
func (r *MemoryRepository) CreateChapter(_ context.Context, userID uuid.UUID, chapter *types.Chapter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	subject, ok := r.subjects[chapter.SubjectID]
	if !ok || subject.UserID != userID {
		return notFound("subject", chapter.SubjectID)
	}
	stored := *chapter
	stored.Topics = nil
	r.chapters[chapter.ID] = stored
	r.track(chapter.ID)
	return nil
}

// DeleteChapter removes a chapter and its topics
func (r *MemoryRepository) DeleteChapter(_ context.Context, userID, subjectID, chapterID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	chapter, ok := r.chapterOwner(userID, chapterID)
	if !ok || chapter.SubjectID != subjectID {
		return notFound("chapter", chapterID)
	}
	r.deleteChapterLocked(chapterID)
	return nil
}

// CreateTopic adds a topic to one of the user's chapters
func (r *MemoryRepository) CreateTopic(_ context.Context, userID uuid.UUID, topic *types.Topic) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.chapterOwner(userID, topic.ChapterID); !ok {
		return notFound("chapter", topic.ChapterID)
	}
	r.topics[topic.ID] = cloneTopic(*topic)
	r.track(topic.ID)
	return nil
}

// GetTopic returns one of the user's topics
func (r *MemoryRepository) GetTopic(_ context.Context, userID, topicID uuid.UUID) (*types.Topic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	topic, ok := r.topics[topicID]
	if !ok || !r.topicOwned(userID, topic) {
		return nil, notFound("topic", topicID)
	}
	topic = cloneTopic(topic)
	return &topic, nil
}

// UpdateTopic replaces a topic's name, content and document link
func (r *MemoryRepository) UpdateTopic(_ context.Context, userID uuid.UUID, topic *types.Topic) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.topics[topic.ID]
	if !ok || !r.topicOwned(userID, existing) {
		return notFound("topic", topic.ID)
	}
	updated := cloneTopic(*topic)
	updated.ChapterID = existing.ChapterID
	updated.CreatedAt = existing.CreatedAt
	r.topics[topic.ID] = updated
	return nil
}

// DeleteTopic removes one of the user's topics
func (r *MemoryRepository) DeleteTopic(_ context.Context, userID, topicID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	topic, ok := r.topics[topicID]
	if !ok || !r.topicOwned(userID, topic) {
		return notFound("topic", topicID)
	}
	delete(r.topics, topicID)
	delete(r.order, topicID)
	return nil
}

// SaveDocument stores a document, replacing one with the same ID
func (r *MemoryRepository) SaveDocument(_ context.Context, doc *types.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.documents[doc.ID]; !exists {
		r.track(doc.ID)
	}
	r.documents[doc.ID] = *doc
	return nil
}

// ListDocuments returns the user's documents, newest first
func (r *MemoryRepository) ListDocuments(_ context.Context, userID uuid.UUID) ([]types.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []uuid.UUID
	for id, d := range r.documents {
		if d.UserID == userID {
			ids = append(ids, id)
		}
	}
	r.sortedByInsertion(ids)
	slices.Reverse(ids)

	docs := make([]types.Document, 0, len(ids))
	for _, id := range ids {
		docs = append(docs, r.documents[id])
	}
	return docs, nil
}

// GetDocument returns one of the user's documents
func (r *MemoryRepository) GetDocument(_ context.Context, userID, documentID uuid.UUID) (*types.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.documents[documentID]
	if !ok || doc.UserID != userID {
		return nil, notFound("document", documentID)
	}
	return &doc, nil
}

// DeleteDocument removes a document; topics keep the document name but lose the link
func (r *MemoryRepository) DeleteDocument(_ context.Context, userID, documentID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.documents[documentID]
	if !ok || doc.UserID != userID {
		return notFound("document", documentID)
	}
	for id, t := range r.topics {
		if t.DocumentID != nil && *t.DocumentID == documentID {
			t.DocumentID = nil
			r.topics[id] = t
		}
	}
	delete(r.documents, documentID)
	delete(r.order, documentID)
	return nil
}

// AddJournalEntry stores a journal entry
func (r *MemoryRepository) AddJournalEntry(_ context.Context, entry *types.JournalEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.journal[entry.ID] = *entry
	r.track(entry.ID)
	return nil
}

// ListJournalEntries returns the user's entries, newest first
func (r *MemoryRepository) ListJournalEntries(_ context.Context, userID uuid.UUID) ([]types.JournalEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []uuid.UUID
	for id, e := range r.journal {
		if e.UserID == userID {
			ids = append(ids, id)
		}
	}
	r.sortedByInsertion(ids)
	slices.Reverse(ids)

	entries := make([]types.JournalEntry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, r.journal[id])
	}
	return entries, nil
}

// DeleteJournalEntry removes one of the user's entries
func (r *MemoryRepository) DeleteJournalEntry(_ context.Context, userID, entryID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.journal[entryID]
	if !ok || entry.UserID != userID {
		return notFound("journal entry", entryID)
	}
	delete(r.journal, entryID)
	delete(r.order, entryID)
	return nil
}

// AddActivity prepends an entry to the user's feed
func (r *MemoryRepository) AddActivity(_ context.Context, activity *types.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	feed := r.activity[activity.UserID]
	r.activity[activity.UserID] = append([]types.Activity{*activity}, feed...)
	return nil
}

// RecentActivity returns up to limit entries, newest first
func (r *MemoryRepository) RecentActivity(_ context.Context, userID uuid.UUID, limit int) ([]types.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	feed := r.activity[userID]
	n := min(len(feed), max(limit, 0))
	out := make([]types.Activity, n)
	copy(out, feed[:n])
	return out, nil
}

// PruneActivity keeps only the newest keep entries
func (r *MemoryRepository) PruneActivity(_ context.Context, userID uuid.UUID, keep int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	feed := r.activity[userID]
	if len(feed) > keep {
		r.activity[userID] = slices.Clone(feed[:max(keep, 0)])
	}
	return nil
}

// CreateUser stores an account; emails are unique case-insensitively
func (r *MemoryRepository) CreateUser(_ context.Context, user *UserRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(user.Email)
	if _, taken := r.emails[key]; taken {
		return ErrEmailExists
	}
	r.users[user.ID] = *user
	r.emails[key] = user.ID
	return nil
}

// GetUserByEmail looks an account up by address
func (r *MemoryRepository) GetUserByEmail(_ context.Context, email string) (*UserRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.emails[strings.ToLower(email)]
	if !ok {
		return nil, notFound("user", uuid.Nil)
	}
	user := r.users[id]
	return &user, nil
}

// GetUser looks an account up by ID
func (r *MemoryRepository) GetUser(_ context.Context, userID uuid.UUID) (*UserRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[userID]
	if !ok {
		return nil, notFound("user", userID)
	}
	return &user, nil
}

// Counts computes the dashboard counters
func (r *MemoryRepository) Counts(_ context.Context, userID uuid.UUID) (*types.Dashboard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dash := &types.Dashboard{}
	for _, d := range r.documents {
		if d.UserID == userID {
			dash.Documents++
		}
	}
	for _, t := range r.topics {
		if r.topicOwned(userID, t) {
			dash.Notes++
		}
	}
	for _, e := range r.journal {
		if e.UserID == userID {
			dash.JournalEntries++
			dash.TotalHours += e.Hours
		}
	}
	return dash, nil
}
