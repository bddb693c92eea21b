package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/studygram/internal/schemas"
)

const validDocument = `{
  "id": "0b6b1f7e-8a52-4c47-9f7c-2d1f7c3b9a10",
  "filename": "bio.txt",
  "type": "plain-text",
  "size_bytes": 120,
  "hash": "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
  "analysis": {},
  "stats": {"original_words": 20, "summary_words": 8, "compression_percent": 60},
  "created_at": "2024-05-01T10:00:00Z"
}`

func TestRunValidate_AnalyzeOutput(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "bio.txt", photosynthesis)
	out := filepath.Join(dir, "bio.analysis.json")

	var stdout, stderr bytes.Buffer
	require.NoError(t, runAnalyze(context.Background(), analyzeOptions{inputs: []string{in}, out: out, seed: 7, seedSet: true}, &stdout, &stderr))

	stdout.Reset()
	require.NoError(t, runValidate(validateOptions{input: out, kind: "analysis"}, &stdout))
	assert.Contains(t, stdout.String(), "valid analysis")
}

func TestRunValidate_AnalysisMissingFields(t *testing.T) {
	path := writeInput(t, t.TempDir(), "bad.json", `{"summary": 3}`)

	err := runValidate(validateOptions{input: path, kind: "analysis"}, &bytes.Buffer{})
	require.Error(t, err)
	var validationErr *schemas.ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestRunValidate_QuizAnswerNotInOptions(t *testing.T) {
	path := writeInput(t, t.TempDir(), "quiz.json", `{
  "summary": "",
  "notes": [],
  "flashcards": [],
  "quiz": [{"question": "What is Water?", "options": ["a gas", "a solid"], "correct_answer": "a liquid"}]
}`)

	err := runValidate(validateOptions{input: path, kind: "analysis"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quiz.0.correct_answer")
}

func TestRunValidate_Document(t *testing.T) {
	dir := t.TempDir()
	path := writeInput(t, dir, "doc.json", validDocument)

	var stdout bytes.Buffer
	require.NoError(t, runValidate(validateOptions{input: path, kind: "document"}, &stdout))

	bad := writeInput(t, dir, "bad-doc.json", `{"filename": "bio.txt", "type": "odt"}`)
	err := runValidate(validateOptions{input: bad, kind: "document"}, &stdout)
	var validationErr *schemas.ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestRunValidate_UnknownKind(t *testing.T) {
	path := writeInput(t, t.TempDir(), "doc.json", validDocument)
	err := runValidate(validateOptions{input: path, kind: "summary"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "unknown kind")
}

func TestRunValidate_MissingFile(t *testing.T) {
	err := runValidate(validateOptions{input: filepath.Join(t.TempDir(), "none.json"), kind: "analysis"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "JSON file not found")
}
