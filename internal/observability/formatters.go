// Package observability provides logging, metrics and formatted output for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/studygram/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	inner := boxWidth - 4
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad right-pads s with spaces to n runes; %-*s pads by bytes
func pad(s string, n int) string {
	if gap := n - utf8.RuneCountInString(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// wrap breaks text into lines of at most width runes on word boundaries
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	var lines []string
	var line strings.Builder
	for _, w := range words {
		if line.Len() > 0 && utf8.RuneCountInString(line.String())+1+utf8.RuneCountInString(w) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(w)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

// PrintSummary outputs the summary wrapped to the box width, with the document stats
func (p *Printer) PrintSummary(summary string, stats *types.DocumentStats) {
	var sb strings.Builder
	if stats != nil {
		sb.WriteString(fmt.Sprintf("Original: %d words  Summary: %d words  Compression: %d%%\n\n",
			stats.OriginalWords, stats.SummaryWords, stats.CompressionPercent))
	}
	if strings.TrimSpace(summary) == "" {
		sb.WriteString("(empty)")
	} else {
		sb.WriteString(strings.Join(wrap(summary, boxWidth-4), "\n"))
	}

	p.printBox("SUMMARY", sb.String())
}

// PrintNotes outputs the condensed notes
func (p *Printer) PrintNotes(notes []string) {
	if len(notes) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d notes:\n\n", len(notes)))
	count := min(len(notes), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(truncate(notes[i], 52))
		sb.WriteString("\n")
	}
	if len(notes) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more notes", len(notes)-maxItemsToShow))
	}

	p.printBox("KEY NOTES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFlashcards outputs question/answer pairs
func (p *Printer) PrintFlashcards(cards []types.Flashcard) {
	if len(cards) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(cards), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("Q: %s\n", truncate(cards[i].Question, 50)))
		sb.WriteString(fmt.Sprintf("A: %s\n", truncate(cards[i].Answer, 50)))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(cards) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more cards", len(cards)-maxItemsToShow))
	}

	p.printBox(fmt.Sprintf("FLASHCARDS (%d)", len(cards)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintQuiz outputs the quiz items, marking the correct option
func (p *Printer) PrintQuiz(quiz []types.QuizItem) {
	if len(quiz) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(quiz), maxItemsToShow)
	for i := 0; i < count; i++ {
		item := quiz[i]
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, truncate(item.Question, 48)))
		for j, option := range item.Options {
			marker := " "
			if item.IsCorrect(option) {
				marker = "✓"
			}
			sb.WriteString(fmt.Sprintf("   %s %c) %s\n", marker, 'a'+rune(j), truncate(option, 40)))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(fmt.Sprintf("QUIZ (%d)", len(quiz)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnalysis outputs every section of an analysis result
func (p *Printer) PrintAnalysis(result *types.AnalysisResult, stats *types.DocumentStats) {
	if result == nil {
		return
	}
	p.PrintSummary(result.Summary, stats)
	p.PrintNotes(result.Notes)
	p.PrintFlashcards(result.Flashcards)
	p.PrintQuiz(result.Quiz)
}
