package analysis

import (
	"regexp"
	"strings"
)

// wordPattern matches word-character runs (letters, digits, underscore)
var wordPattern = regexp.MustCompile(`\w+`)

// minTermLength is the shortest token counted; shorter tokens act as a cheap stopword filter
const minTermLength = 4

// TermFrequencies maps a lower-cased term to its occurrence count.
// Terms that never occur are absent rather than stored with a zero count.
type TermFrequencies map[string]int

// Tokenize returns the lower-cased word tokens of text in order, without length filtering
func Tokenize(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

// isQualifyingTerm reports whether a token is long enough to be counted
func isQualifyingTerm(token string) bool {
	return len(token) >= minTermLength
}

// BuildFrequencies counts the qualifying terms of text
func BuildFrequencies(text string) TermFrequencies {
	freqs := make(TermFrequencies)
	for _, token := range Tokenize(text) {
		if isQualifyingTerm(token) {
			freqs[token]++
		}
	}
	return freqs
}

// Score sums the frequencies of the qualifying tokens of a sentence.
// Unknown tokens contribute zero.
func (tf TermFrequencies) Score(sentence string) int {
	score := 0
	for _, token := range Tokenize(sentence) {
		if isQualifyingTerm(token) {
			score += tf[token]
		}
	}
	return score
}
