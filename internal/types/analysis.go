// Package types provides type definitions for structured data used throughout the studygram system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Flashcard is a question/answer pair derived from a definitional sentence
type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QuizItem is a multiple-choice question. CorrectAnswer is always one of Options.
type QuizItem struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

// IsCorrect reports whether the chosen option is the correct answer.
// Click-to-reveal in the UI uses this rather than the option order.
func (q QuizItem) IsCorrect(choice string) bool {
	return choice == q.CorrectAnswer
}

// AnalysisResult bundles everything derived from one document's text
type AnalysisResult struct {
	Summary    string      `json:"summary"`
	Notes      []string    `json:"notes"`
	Flashcards []Flashcard `json:"flashcards"`
	Quiz       []QuizItem  `json:"quiz"`
}
