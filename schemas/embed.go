// Package schemas holds the JSON Schema documents for studygram artifacts.
package schemas

import "embed"

// Files are the embedded *.schema.json documents
//
//go:embed *.schema.json
var Files embed.FS

// File names within Files
const (
	AnalysisResult = "analysis_result.schema.json"
	Document       = "document.schema.json"
)
