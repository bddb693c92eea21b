// Package analysis turns raw document text into a summary, condensed notes,
// flashcards and a multiple-choice quiz using deterministic frequency and
// pattern heuristics.
package analysis

import (
	"regexp"
	"strings"
)

// sentencePattern matches a run of non-terminal characters closed by one or more terminators.
// A trailing fragment without a terminator never matches and is dropped.
var sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]+`)

// Sentence is one terminated sentence of the source text
type Sentence struct {
	Text     string // trimmed sentence text, terminator included
	Position int    // 0-based ordinal in the source
}

// Segment splits text into sentences in document order.
// Empty input or input without terminators yields an empty slice.
func Segment(text string) []Sentence {
	matches := sentencePattern.FindAllString(text, -1)
	sentences := make([]Sentence, 0, len(matches))
	for i, m := range matches {
		sentences = append(sentences, Sentence{
			Text:     strings.TrimSpace(m),
			Position: i,
		})
	}
	return sentences
}
