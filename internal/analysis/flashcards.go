package analysis

import (
	"strings"

	"github.com/jonathan/studygram/internal/types"
)

// definitionSeparator marks a definitional sentence ("X is Y")
const definitionSeparator = " is "

// answerPunctuation strips commas and periods from answers; other punctuation passes through
var answerPunctuation = strings.NewReplacer(",", "", ".", "")

// FlashcardOptions controls flashcard extraction
type FlashcardOptions struct {
	MaxCards         int  `json:"max_cards" validate:"gte=0"`
	SkipEmptyAnswers bool `json:"skip_empty_answers"`
}

// DefaultFlashcardOptions keeps up to 6 cards and emits cards with empty answers
func DefaultFlashcardOptions() FlashcardOptions {
	return FlashcardOptions{MaxCards: 6}
}

// splitDefinition splits a sentence at the first " is " into a question and an answer
func splitDefinition(sentence string) (question, answer string, ok bool) {
	subject, predicate, found := strings.Cut(sentence, definitionSeparator)
	if !found {
		return "", "", false
	}
	question = "What is " + strings.TrimSpace(subject) + "?"
	answer = strings.TrimSpace(answerPunctuation.Replace(predicate))
	return question, answer, true
}

// MakeFlashcards turns definitional sentences into question/answer cards, in document order
func MakeFlashcards(sentences []Sentence, opts FlashcardOptions) []types.Flashcard {
	cards := make([]types.Flashcard, 0, max(opts.MaxCards, 0))
	for _, s := range sentences {
		if len(cards) >= opts.MaxCards {
			break
		}
		question, answer, ok := splitDefinition(s.Text)
		if !ok {
			continue
		}
		if opts.SkipEmptyAnswers && answer == "" {
			continue
		}
		cards = append(cards, types.Flashcard{Question: question, Answer: answer})
	}
	return cards
}
