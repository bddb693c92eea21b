package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"math"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonathan/studygram/internal/types"
)

// Metadata describes an ingested document
type Metadata struct {
	Filename  string       `json:"filename"`
	Type      DocumentType `json:"type"`
	SizeBytes int64        `json:"size_bytes"`
	Timestamp string       `json:"timestamp"` // RFC3339 format
	Hash      string       `json:"hash"`      // SHA256 hex digest of the cleaned text
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(filename string, docType DocumentType, content string, sizeBytes int64) *Metadata {
	return &Metadata{
		Filename:  filepath.Base(filename),
		Type:      docType,
		SizeBytes: sizeBytes,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// CountWords counts space-separated words. Consecutive spaces yield empty
// words, which are counted; empty text has zero words.
func CountWords(text string) int {
	if text == "" {
		return 0
	}
	return len(strings.Split(text, " "))
}

// ComputeStats reports the word counts of a document and its summary and how
// much shorter the summary is, as a whole percentage in [0, 100]
func ComputeStats(fullText, summary string) types.DocumentStats {
	stats := types.DocumentStats{
		OriginalWords: CountWords(fullText),
		SummaryWords:  CountWords(summary),
	}

	fullLen := utf8.RuneCountInString(fullText)
	if fullLen == 0 {
		return stats
	}
	ratio := 1 - float64(utf8.RuneCountInString(summary))/float64(fullLen)
	stats.CompressionPercent = min(max(int(math.Round(ratio*100)), 0), 100)
	return stats
}

// SummaryFilename returns the download name for a document's summary
func SummaryFilename(filename string) string {
	base := filepath.Base(filename)
	if base == "." || base == string(filepath.Separator) {
		base = "document"
	}
	return base + "_summary.txt"
}
