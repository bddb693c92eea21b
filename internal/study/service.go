package study

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/studygram/internal/types"
)

// ActivityLimit is the length of the recent-activity feed
const ActivityLimit = 10

// Service implements the study organizer operations on top of a Repository.
// Every mutation that the user would notice is recorded in the activity feed.
type Service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a Service. A nil logger discards output.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Repository returns the underlying store
func (s *Service) Repository() Repository {
	return s.repo
}

// record appends to the activity feed and trims it. Feed failures are logged, not returned.
func (s *Service) record(ctx context.Context, userID uuid.UUID, message string) {
	activity := &types.Activity{
		ID:        uuid.New(),
		UserID:    userID,
		Message:   message,
		CreatedAt: s.now(),
	}
	if err := s.repo.AddActivity(ctx, activity); err != nil {
		s.logger.Warn("failed to record activity", zap.String("user_id", userID.String()), zap.Error(err))
		return
	}
	if err := s.repo.PruneActivity(ctx, userID, ActivityLimit); err != nil {
		s.logger.Warn("failed to prune activity", zap.String("user_id", userID.String()), zap.Error(err))
	}
}

// CreateSubject adds a new empty subject
func (s *Service) CreateSubject(ctx context.Context, userID uuid.UUID, req *types.CreateSubjectRequest) (*types.Subject, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := req.Validate(); err != nil {
		return nil, fromValidator(err)
	}

	subject := &types.Subject{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      req.Name,
		Chapters:  []types.Chapter{},
		CreatedAt: s.now(),
	}
	if err := s.repo.CreateSubject(ctx, subject); err != nil {
		return nil, fmt.Errorf("failed to create subject: %w", err)
	}

	s.record(ctx, userID, "Created subject: "+subject.Name)
	return subject, nil
}

// ListSubjects returns the user's full subject tree
func (s *Service) ListSubjects(ctx context.Context, userID uuid.UUID) ([]types.Subject, error) {
	subjects, err := s.repo.ListSubjects(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	return subjects, nil
}

// DeleteSubject removes a subject and everything under it
func (s *Service) DeleteSubject(ctx context.Context, userID, subjectID uuid.UUID) error {
	if err := s.repo.DeleteSubject(ctx, userID, subjectID); err != nil {
		return fmt.Errorf("failed to delete subject: %w", err)
	}
	s.record(ctx, userID, "Deleted subject")
	return nil
}

// AddChapter adds a chapter to a subject
func (s *Service) AddChapter(ctx context.Context, userID, subjectID uuid.UUID, req *types.CreateChapterRequest) (*types.Chapter, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Content = strings.TrimSpace(req.Content)
	if err := req.Validate(); err != nil {
		return nil, fromValidator(err)
	}

	chapter := &types.Chapter{
		ID:        uuid.New(),
		SubjectID: subjectID,
		Name:      req.Name,
		Content:   req.Content,
		Topics:    []types.Topic{},
		CreatedAt: s.now(),
	}
	if err := s.repo.CreateChapter(ctx, userID, chapter); err != nil {
		return nil, fmt.Errorf("failed to create chapter: %w", err)
	}

	s.record(ctx, userID, "Saved: "+chapter.Name)
	return chapter, nil
}

// DeleteChapter removes a chapter and its topics
func (s *Service) DeleteChapter(ctx context.Context, userID, subjectID, chapterID uuid.UUID) error {
	if err := s.repo.DeleteChapter(ctx, userID, subjectID, chapterID); err != nil {
		return fmt.Errorf("failed to delete chapter: %w", err)
	}
	return nil
}

// linkDocument resolves an optional document reference to its ID and filename
func (s *Service) linkDocument(ctx context.Context, userID uuid.UUID, raw string) (*uuid.UUID, string, error) {
	if raw == "" {
		return nil, "", nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, "", &ValidationError{Field: "document_id", Message: "must be a valid UUID"}
	}
	doc, err := s.repo.GetDocument(ctx, userID, id)
	if err != nil {
		return nil, "", fmt.Errorf("failed to link document: %w", err)
	}
	return &doc.ID, doc.Filename, nil
}

// AddTopic adds a topic to a chapter, optionally attaching an analysed document
func (s *Service) AddTopic(ctx context.Context, userID, chapterID uuid.UUID, req *types.CreateTopicRequest) (*types.Topic, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Content = strings.TrimSpace(req.Content)
	if err := req.Validate(); err != nil {
		return nil, fromValidator(err)
	}

	docID, docName, err := s.linkDocument(ctx, userID, req.DocumentID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	topic := &types.Topic{
		ID:           uuid.New(),
		ChapterID:    chapterID,
		Name:         req.Name,
		Content:      req.Content,
		DocumentID:   docID,
		DocumentName: docName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateTopic(ctx, userID, topic); err != nil {
		return nil, fmt.Errorf("failed to create topic: %w", err)
	}

	s.record(ctx, userID, "Saved: "+topic.Name)
	return topic, nil
}

// UpdateTopic edits a topic. The attached document is only replaced when a new one is given.
func (s *Service) UpdateTopic(ctx context.Context, userID, topicID uuid.UUID, req *types.UpdateTopicRequest) (*types.Topic, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Content = strings.TrimSpace(req.Content)
	if err := req.Validate(); err != nil {
		return nil, fromValidator(err)
	}

	topic, err := s.repo.GetTopic(ctx, userID, topicID)
	if err != nil {
		return nil, fmt.Errorf("failed to get topic: %w", err)
	}

	topic.Name = req.Name
	topic.Content = req.Content
	if req.DocumentID != "" {
		docID, docName, err := s.linkDocument(ctx, userID, req.DocumentID)
		if err != nil {
			return nil, err
		}
		topic.DocumentID = docID
		topic.DocumentName = docName
	}
	topic.UpdatedAt = s.now()

	if err := s.repo.UpdateTopic(ctx, userID, topic); err != nil {
		return nil, fmt.Errorf("failed to update topic: %w", err)
	}

	s.record(ctx, userID, "Saved: "+topic.Name)
	return topic, nil
}

// DeleteTopic removes a topic
func (s *Service) DeleteTopic(ctx context.Context, userID, topicID uuid.UUID) error {
	if err := s.repo.DeleteTopic(ctx, userID, topicID); err != nil {
		return fmt.Errorf("failed to delete topic: %w", err)
	}
	return nil
}

// SaveDocument stores an analysed document and records it in the feed
func (s *Service) SaveDocument(ctx context.Context, doc *types.Document) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = s.now()
	}
	if err := s.repo.SaveDocument(ctx, doc); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}

	s.record(ctx, doc.UserID, "Summarized document: "+doc.Filename)
	return nil
}

// ListDocuments returns the user's documents, newest first
func (s *Service) ListDocuments(ctx context.Context, userID uuid.UUID) ([]types.Document, error) {
	docs, err := s.repo.ListDocuments(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

// GetDocument returns one document
func (s *Service) GetDocument(ctx context.Context, userID, documentID uuid.UUID) (*types.Document, error) {
	doc, err := s.repo.GetDocument(ctx, userID, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return doc, nil
}

// DeleteDocument removes a document
func (s *Service) DeleteDocument(ctx context.Context, userID, documentID uuid.UUID) error {
	if err := s.repo.DeleteDocument(ctx, userID, documentID); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

// AddJournalEntry records a study session
func (s *Service) AddJournalEntry(ctx context.Context, userID uuid.UUID, req *types.CreateJournalEntryRequest) (*types.JournalEntry, error) {
	req.Subject = strings.TrimSpace(req.Subject)
	req.Text = strings.TrimSpace(req.Text)
	if err := req.Validate(); err != nil {
		return nil, fromValidator(err)
	}

	entry := &types.JournalEntry{
		ID:        uuid.New(),
		UserID:    userID,
		Subject:   req.Subject,
		Mood:      req.Mood,
		Hours:     req.Hours,
		Text:      req.Text,
		CreatedAt: s.now(),
	}
	if err := s.repo.AddJournalEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to add journal entry: %w", err)
	}

	s.record(ctx, userID, "Journal entry: "+entry.Subject)
	return entry, nil
}

// ListJournalEntries returns the user's entries, newest first
func (s *Service) ListJournalEntries(ctx context.Context, userID uuid.UUID) ([]types.JournalEntry, error) {
	entries, err := s.repo.ListJournalEntries(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return entries, nil
}

// DeleteJournalEntry removes an entry
func (s *Service) DeleteJournalEntry(ctx context.Context, userID, entryID uuid.UUID) error {
	if err := s.repo.DeleteJournalEntry(ctx, userID, entryID); err != nil {
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}
	return nil
}

// RecentActivity returns the newest ActivityLimit feed entries
func (s *Service) RecentActivity(ctx context.Context, userID uuid.UUID) ([]types.Activity, error) {
	activity, err := s.repo.RecentActivity(ctx, userID, ActivityLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	return activity, nil
}

// Dashboard returns the overview counters: documents, topics (as notes),
// journal entries and the total journaled hours
func (s *Service) Dashboard(ctx context.Context, userID uuid.UUID) (*types.Dashboard, error) {
	dash, err := s.repo.Counts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute dashboard: %w", err)
	}
	return dash, nil
}
