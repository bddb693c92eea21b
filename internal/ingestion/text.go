package ingestion

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	inlineSpace    = regexp.MustCompile(`[ \t\f\v\x{00a0}]+`)
	excessiveBlank = regexp.MustCompile(`\n{3,}`)
)

// CleanText normalizes decoded document text. Line endings become LF,
// control characters left by PDF extraction are dropped, runs of spaces
// collapse to one and at most one blank line separates paragraphs.
// Headings and bullet lines keep their own line.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.Map(dropControl, content)

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := excessiveBlank.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

// PrepareText cleans decoded text for analysis. PDF extraction keeps the
// page's line breaks, so wrapped lines of a paragraph are joined back together.
func PrepareText(docType DocumentType, raw string) string {
	text := CleanText(raw)
	if docType == TypePDF {
		text = JoinWrappedLines(text)
	}
	return text
}

// JoinWrappedLines merges hard-wrapped lines of a paragraph into one line so a
// sentence broken across lines segments as one. Blank lines, headings and
// bullets still start a new line.
func JoinWrappedLines(content string) string {
	lines := strings.Split(content, "\n")
	var b strings.Builder
	b.Grow(len(content))

	prevText := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		structural := trimmed == "" || isHeadingLine(trimmed) || isBulletLine(trimmed)
		switch {
		case b.Len() == 0:
		case prevText && !structural:
			b.WriteByte(' ')
		default:
			b.WriteByte('\n')
		}
		b.WriteString(trimmed)
		prevText = !structural
	}
	return b.String()
}

func dropControl(r rune) rune {
	if r == '\n' || r == '\t' {
		return r
	}
	if unicode.IsControl(r) || r == '\ufeff' {
		return -1
	}
	return r
}

// cleanLine trims a line and collapses inner spacing; indentation is kept for bullets only
func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}
	trimmed = inlineSpace.ReplaceAllString(trimmed, " ")

	if isBulletLine(trimmed) {
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		return strings.Repeat(" ", indent) + trimmed
	}
	return trimmed
}

func isHeadingLine(line string) bool {
	return strings.HasPrefix(line, "#")
}

// isBulletLine checks if a trimmed line is a list item
func isBulletLine(line string) bool {
	return strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") ||
		strings.HasPrefix(line, "• ") || strings.HasPrefix(line, "· ")
}
