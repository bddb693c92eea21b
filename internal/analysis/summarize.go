package analysis

import (
	"math"
	"sort"
	"strings"
)

// SummaryOptions controls how many sentences the summary keeps
type SummaryOptions struct {
	Ratio        float64 `json:"ratio" validate:"gte=0,lte=1"`   // fraction of sentences kept, rounded up
	MinSentences int     `json:"min_sentences" validate:"gte=0"` // floor applied when the document is long enough
}

// DefaultSummaryOptions keeps 30% of the sentences with a floor of one
func DefaultSummaryOptions() SummaryOptions {
	return SummaryOptions{Ratio: 0.3, MinSentences: 1}
}

// ScoredSentence pairs a sentence with its term-frequency score
type ScoredSentence struct {
	Sentence
	Score int
}

// ScoreSentences scores every sentence against the frequency table, preserving order
func ScoreSentences(sentences []Sentence, freqs TermFrequencies) []ScoredSentence {
	scored := make([]ScoredSentence, len(sentences))
	for i, s := range sentences {
		scored[i] = ScoredSentence{Sentence: s, Score: freqs.Score(s.Text)}
	}
	return scored
}

// summaryLength returns how many of n sentences the summary keeps
func summaryLength(n int, opts SummaryOptions) int {
	target := int(math.Ceil(float64(n) * opts.Ratio))
	target = max(target, min(opts.MinSentences, n))
	return min(max(target, 0), n)
}

// Summarize selects the highest scoring sentences and joins them in document order.
// Equal scores keep document order. Text without sentences is returned verbatim.
func Summarize(text string, sentences []Sentence, freqs TermFrequencies, opts SummaryOptions) string {
	if len(sentences) == 0 {
		return text
	}

	scored := ScoreSentences(sentences, freqs)
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	selected := scored[:summaryLength(len(sentences), opts)]
	sort.Slice(selected, func(i, j int) bool {
		return selected[i].Position < selected[j].Position
	})

	parts := make([]string, len(selected))
	for i, s := range selected {
		parts[i] = s.Text
	}
	return strings.Join(parts, " ")
}
