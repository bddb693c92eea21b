package analysis

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/studygram/internal/types"
)

// keywordPattern matches whole ASCII-letter words of five or more letters
var keywordPattern = regexp.MustCompile(`\b[a-zA-Z]{5,}\b`)

// QuizOptions controls quiz generation
type QuizOptions struct {
	MaxItems          int `json:"max_items" validate:"gte=0"`
	MinSentenceLength int `json:"min_sentence_length" validate:"gte=0"` // sentences must be strictly longer, in characters
	MaxOptions        int `json:"max_options" validate:"gte=1"`         // answer plus distractors

	// SuppressWithoutDistractors skips items that would only offer the correct answer
	SuppressWithoutDistractors bool `json:"suppress_without_distractors"`
}

// DefaultQuizOptions keeps up to 5 four-option items from sentences longer than 60 characters
func DefaultQuizOptions() QuizOptions {
	return QuizOptions{
		MaxItems:                   5,
		MinSentenceLength:          60,
		MaxOptions:                 4,
		SuppressWithoutDistractors: true,
	}
}

// ExtractKeywords returns the unique case-preserved keywords of text in first-occurrence order
func ExtractKeywords(text string) []string {
	matches := keywordPattern.FindAllString(text, -1)
	seen := make(map[string]bool, len(matches))
	keywords := make([]string, 0, len(matches))
	for _, m := range matches {
		if seen[m] {
			continue
		}
		seen[m] = true
		keywords = append(keywords, m)
	}
	return keywords
}

// pickDistractors takes the first n keywords that do not appear inside the answer
func pickDistractors(pool []string, answer string, n int) []string {
	distractors := make([]string, 0, n)
	for _, keyword := range pool {
		if len(distractors) >= n {
			break
		}
		if strings.Contains(answer, keyword) {
			continue
		}
		distractors = append(distractors, keyword)
	}
	return distractors
}

// MakeQuiz builds multiple-choice items from long definitional sentences.
// Distractors are drawn from the keywords of the whole document.
func MakeQuiz(text string, sentences []Sentence, opts QuizOptions, shuffler Shuffler) []types.QuizItem {
	quiz := make([]types.QuizItem, 0, max(opts.MaxItems, 0))
	if opts.MaxItems <= 0 {
		return quiz
	}
	if shuffler == nil {
		shuffler = IdentityShuffler{}
	}

	pool := ExtractKeywords(text)
	for _, s := range sentences {
		if len(quiz) >= opts.MaxItems {
			break
		}
		if utf8.RuneCountInString(s.Text) <= opts.MinSentenceLength {
			continue
		}
		question, answer, ok := splitDefinition(s.Text)
		if !ok {
			continue
		}

		distractors := pickDistractors(pool, answer, max(opts.MaxOptions-1, 0))
		if len(distractors) == 0 && opts.SuppressWithoutDistractors {
			continue
		}

		options := make([]string, 0, len(distractors)+1)
		options = append(options, answer)
		options = append(options, distractors...)
		shuffler.Shuffle(options)

		quiz = append(quiz, types.QuizItem{
			Question:      question,
			Options:       options,
			CorrectAnswer: answer,
		})
	}
	return quiz
}
