package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/studygram/internal/types"
)

const photosynthesis = "Photosynthesis is the process plants use to make food. " +
	"This process requires sunlight, water, and carbon dioxide. " +
	"Chlorophyll is the pigment that captures light energy."

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunAnalyze_Stdout(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "bio.txt", photosynthesis)

	var stdout, stderr bytes.Buffer
	err := runAnalyze(context.Background(), analyzeOptions{inputs: []string{in}, seed: 7, seedSet: true}, &stdout, &stderr)
	require.NoError(t, err)

	var result types.AnalysisResult
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &result))
	assert.Equal(t, "This process requires sunlight, water, and carbon dioxide.", result.Summary)
	assert.NotEmpty(t, result.Notes)
	assert.Empty(t, stderr.String())
}

func TestRunAnalyze_SeedIsReproducible(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "bio.txt", photosynthesis)
	opts := analyzeOptions{inputs: []string{in}, seed: 42, seedSet: true}

	var first, second bytes.Buffer
	require.NoError(t, runAnalyze(context.Background(), opts, &first, &bytes.Buffer{}))
	require.NoError(t, runAnalyze(context.Background(), opts, &second, &bytes.Buffer{}))
	assert.Equal(t, first.String(), second.String())
}

func TestRunAnalyze_OutputFile(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "bio.txt", photosynthesis)
	out := filepath.Join(dir, "result.json")

	var stdout bytes.Buffer
	require.NoError(t, runAnalyze(context.Background(), analyzeOptions{inputs: []string{in}, out: out}, &stdout, &bytes.Buffer{}))
	assert.Contains(t, stdout.String(), "Analysis: "+out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var result types.AnalysisResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.NotEmpty(t, result.Summary)
}

func TestRunAnalyze_OutputDirectoryForBatch(t *testing.T) {
	dir := t.TempDir()
	a := writeInput(t, dir, "bio.txt", photosynthesis)
	b := writeInput(t, dir, "history.md", "Rome is a city in Italy. Rome was founded long ago.")
	out := filepath.Join(dir, "results")

	var stdout bytes.Buffer
	err := runAnalyze(context.Background(), analyzeOptions{inputs: []string{a, b}, docType: "plain-text", out: out, verbose: true}, &stdout, &bytes.Buffer{})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(out, "bio.analysis.json"))
	assert.FileExists(t, filepath.Join(out, "history.analysis.json"))
	assert.Contains(t, stdout.String(), "SUMMARY")
}

func TestRunAnalyze_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		opts    analyzeOptions
		wantErr string
	}{
		{
			name:    "no inputs",
			opts:    analyzeOptions{},
			wantErr: "at least one --in",
		},
		{
			name:    "missing file",
			opts:    analyzeOptions{inputs: []string{filepath.Join(dir, "missing.txt")}},
			wantErr: "failed to read",
		},
		{
			name:    "unsupported extension",
			opts:    analyzeOptions{inputs: []string{writeInput(t, dir, "slides.pptx", "x")}},
			wantErr: "unsupported document type",
		},
		{
			name:    "bad config",
			opts:    analyzeOptions{inputs: []string{writeInput(t, dir, "ok.txt", photosynthesis)}, configPath: writeInput(t, dir, "bad.json", "{")},
			wantErr: "failed to parse config JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runAnalyze(context.Background(), tt.opts, &bytes.Buffer{}, &bytes.Buffer{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestResultFilename(t *testing.T) {
	assert.Equal(t, "chapter1.analysis.json", resultFilename("notes/chapter1.pdf"))
	assert.Equal(t, "README.analysis.json", resultFilename("README"))
}
