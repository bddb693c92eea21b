package ingestion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeHash(t *testing.T) {
	hash1 := computeHash("test content")
	hash2 := computeHash("different content")

	assert.Len(t, hash1, 64)
	assert.NotEqual(t, hash1, hash2)
	assert.Equal(t, hash1, computeHash("test content"))
}

func TestNewMetadata(t *testing.T) {
	metadata := NewMetadata("/tmp/uploads/biology.pdf", TypePDF, "cleaned text", 2048)

	assert.Equal(t, "biology.pdf", metadata.Filename)
	assert.Equal(t, TypePDF, metadata.Type)
	assert.Equal(t, int64(2048), metadata.SizeBytes)
	assert.Equal(t, computeHash("cleaned text"), metadata.Hash)

	_, err := time.Parse(time.RFC3339, metadata.Timestamp)
	assert.NoError(t, err)
}

func TestCountWords(t *testing.T) {
	assert.Equal(t, 0, CountWords(""))
	assert.Equal(t, 1, CountWords("word"))
	assert.Equal(t, 4, CountWords("cells divide by mitosis"))
	assert.Equal(t, 3, CountWords("double  space"))
}

func TestComputeStats(t *testing.T) {
	tests := []struct {
		name        string
		full        string
		summary     string
		wantPercent int
	}{
		{name: "half", full: "aaaa bbbb", summary: "aaaa", wantPercent: 56},
		{name: "identical", full: "same text", summary: "same text", wantPercent: 0},
		{name: "empty summary", full: "some text", summary: "", wantPercent: 100},
		{name: "empty document", full: "", summary: "", wantPercent: 0},
		{name: "summary longer clamps to zero", full: "short", summary: "much longer summary", wantPercent: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := ComputeStats(tt.full, tt.summary)
			assert.Equal(t, tt.wantPercent, stats.CompressionPercent)
			assert.Equal(t, CountWords(tt.full), stats.OriginalWords)
			assert.Equal(t, CountWords(tt.summary), stats.SummaryWords)
		})
	}
}

func TestSummaryFilename(t *testing.T) {
	assert.Equal(t, "chapter1.pdf_summary.txt", SummaryFilename("chapter1.pdf"))
	assert.Equal(t, "notes.txt_summary.txt", SummaryFilename("/a/b/notes.txt"))
}
