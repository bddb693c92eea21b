package analysis

import "unicode/utf8"

// NoteBullet prefixes every condensed note
const NoteBullet = "• "

// NotesOptions controls which sentences become notes
type NotesOptions struct {
	MinLength int `json:"min_length" validate:"gte=0"` // sentences must be strictly longer than this, in characters
	MaxNotes  int `json:"max_notes" validate:"gte=0"`
}

// DefaultNotesOptions keeps up to 8 sentences longer than 80 characters
func DefaultNotesOptions() NotesOptions {
	return NotesOptions{MinLength: 80, MaxNotes: 8}
}

// CondenseNotes returns the first long sentences as bullet lines, in document order
func CondenseNotes(sentences []Sentence, opts NotesOptions) []string {
	notes := make([]string, 0, max(opts.MaxNotes, 0))
	for _, s := range sentences {
		if len(notes) >= opts.MaxNotes {
			break
		}
		if utf8.RuneCountInString(s.Text) > opts.MinLength {
			notes = append(notes, NoteBullet+s.Text)
		}
	}
	return notes
}
