package analysis

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func longSentence(prefix string) string {
	return prefix + " " + strings.Repeat("detail ", 12) + "end."
}

func TestCondenseNotes_FiltersByLength(t *testing.T) {
	text := "Short one. " + longSentence("First") + " Tiny. " + longSentence("Second")
	notes := CondenseNotes(Segment(text), DefaultNotesOptions())

	require.Len(t, notes, 2)
	assert.True(t, strings.HasPrefix(notes[0], NoteBullet+"First"))
	assert.True(t, strings.HasPrefix(notes[1], NoteBullet+"Second"))
	for _, n := range notes {
		body := strings.TrimPrefix(n, NoteBullet)
		assert.Greater(t, utf8.RuneCountInString(body), 80)
	}
}

func TestCondenseNotes_RespectsMaxNotes(t *testing.T) {
	var parts []string
	for i := 0; i < 12; i++ {
		parts = append(parts, longSentence("Sentence"))
	}
	notes := CondenseNotes(Segment(strings.Join(parts, " ")), DefaultNotesOptions())
	assert.Len(t, notes, 8)

	notes = CondenseNotes(Segment(strings.Join(parts, " ")), NotesOptions{MinLength: 80, MaxNotes: 3})
	assert.Len(t, notes, 3)
}

func TestCondenseNotes_NothingQualifies(t *testing.T) {
	notes := CondenseNotes(Segment("Short. Also short."), DefaultNotesOptions())
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
}

func TestCondenseNotes_LengthBoundaryIsExclusive(t *testing.T) {
	exact := strings.Repeat("a", 79) + "."
	notes := CondenseNotes(Segment(exact), NotesOptions{MinLength: 80, MaxNotes: 8})
	assert.Empty(t, notes)

	notes = CondenseNotes(Segment("b"+exact), NotesOptions{MinLength: 80, MaxNotes: 8})
	assert.Len(t, notes, 1)
}
