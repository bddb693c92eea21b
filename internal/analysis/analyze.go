package analysis

import (
	"fmt"

	"github.com/jonathan/studygram/internal/types"
)

// Stage names, used in StageError and progress reporting
const (
	StageSegment    = "segment"
	StageFrequency  = "frequency"
	StageSummary    = "summary"
	StageNotes      = "notes"
	StageFlashcards = "flashcards"
	StageQuiz       = "quiz"
)

// Options groups the configuration of every stage
type Options struct {
	Summary    SummaryOptions   `json:"summary"`
	Notes      NotesOptions     `json:"notes"`
	Flashcards FlashcardOptions `json:"flashcards"`
	Quiz       QuizOptions      `json:"quiz"`
}

// DefaultOptions returns the stage defaults
func DefaultOptions() Options {
	return Options{
		Summary:    DefaultSummaryOptions(),
		Notes:      DefaultNotesOptions(),
		Flashcards: DefaultFlashcardOptions(),
		Quiz:       DefaultQuizOptions(),
	}
}

// MergeWithDefaults fills zero numeric fields from DefaultOptions.
// Boolean policies are taken as given.
func (o Options) MergeWithDefaults() Options {
	d := DefaultOptions()
	if o.Summary.Ratio == 0 {
		o.Summary.Ratio = d.Summary.Ratio
	}
	if o.Summary.MinSentences == 0 {
		o.Summary.MinSentences = d.Summary.MinSentences
	}
	if o.Notes.MinLength == 0 {
		o.Notes.MinLength = d.Notes.MinLength
	}
	if o.Notes.MaxNotes == 0 {
		o.Notes.MaxNotes = d.Notes.MaxNotes
	}
	if o.Flashcards.MaxCards == 0 {
		o.Flashcards.MaxCards = d.Flashcards.MaxCards
	}
	if o.Quiz.MaxItems == 0 {
		o.Quiz.MaxItems = d.Quiz.MaxItems
	}
	if o.Quiz.MinSentenceLength == 0 {
		o.Quiz.MinSentenceLength = d.Quiz.MinSentenceLength
	}
	if o.Quiz.MaxOptions == 0 {
		o.Quiz.MaxOptions = d.Quiz.MaxOptions
	}
	return o
}

// Analyzer runs the full text-analysis pipeline. It is safe for concurrent use.
type Analyzer struct {
	opts        Options
	newShuffler func() Shuffler
}

// Option customizes an Analyzer
type Option func(*Analyzer)

// WithShuffler shares one shuffler across all calls
func WithShuffler(s Shuffler) Option {
	return func(a *Analyzer) {
		a.newShuffler = func() Shuffler { return s }
	}
}

// WithSeed gives every call a fresh shuffler seeded with seed, so identical
// text always yields an identical result
func WithSeed(seed int64) Option {
	return func(a *Analyzer) {
		a.newShuffler = func() Shuffler { return NewSeededShuffler(seed) }
	}
}

// NewAnalyzer creates an Analyzer. Without options quiz options are shuffled randomly.
func NewAnalyzer(opts Options, options ...Option) *Analyzer {
	shared := NewRandomShuffler()
	a := &Analyzer{
		opts:        opts,
		newShuffler: func() Shuffler { return shared },
	}
	for _, opt := range options {
		opt(a)
	}
	return a
}

// Options returns the stage configuration in use
func (a *Analyzer) Options() Options {
	return a.opts
}

// Analyze derives the summary, notes, flashcards and quiz of text.
// Stages that find nothing contribute empty values; an error is only
// returned when a stage panics, and names that stage.
func (a *Analyzer) Analyze(text string) (*types.AnalysisResult, error) {
	sentences, err := runStage(StageSegment, func() []Sentence {
		return Segment(text)
	})
	if err != nil {
		return nil, err
	}

	freqs, err := runStage(StageFrequency, func() TermFrequencies {
		return BuildFrequencies(text)
	})
	if err != nil {
		return nil, err
	}

	summary, err := runStage(StageSummary, func() string {
		return Summarize(text, sentences, freqs, a.opts.Summary)
	})
	if err != nil {
		return nil, err
	}

	notes, err := runStage(StageNotes, func() []string {
		return CondenseNotes(sentences, a.opts.Notes)
	})
	if err != nil {
		return nil, err
	}

	cards, err := runStage(StageFlashcards, func() []types.Flashcard {
		return MakeFlashcards(sentences, a.opts.Flashcards)
	})
	if err != nil {
		return nil, err
	}

	shuffler := a.newShuffler()
	quiz, err := runStage(StageQuiz, func() []types.QuizItem {
		return MakeQuiz(text, sentences, a.opts.Quiz, shuffler)
	})
	if err != nil {
		return nil, err
	}

	return &types.AnalysisResult{
		Summary:    summary,
		Notes:      notes,
		Flashcards: cards,
		Quiz:       quiz,
	}, nil
}

// runStage calls fn and converts a panic into a StageError
func runStage[T any](stage string, fn func() T) (out T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &StageError{Stage: stage, Cause: fmt.Errorf("%v", r)}
		}
	}()
	return fn(), nil
}
