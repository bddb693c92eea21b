package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, `{
		"analysis": {"summary": {"ratio": 0.25, "min_sentences": 3}, "quiz": {"max_items": 10}},
		"seed": 42,
		"port": 9090,
		"log_level": "debug"
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 0.25, cfg.Analysis.Summary.Ratio)
	assert.Equal(t, 3, cfg.Analysis.Summary.MinSentences)
	assert.Equal(t, 10, cfg.Analysis.Quiz.MaxItems)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, int64(42), *cfg.Seed)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_OmittedFieldsKeepDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{"port": 9090, "analysis": {"quiz": {"max_items": 2}}}`))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 2, cfg.Analysis.Quiz.MaxItems)
	assert.Equal(t, 4, cfg.Analysis.Quiz.MaxOptions)
	assert.True(t, cfg.Analysis.Quiz.SuppressWithoutDistractors)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Nil(t, cfg.Seed)
}

func TestLoadConfig_ExplicitFalseOverridesDefault(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{"analysis": {"quiz": {"suppress_without_distractors": false}}}`))
	require.NoError(t, err)

	merged := cfg.MergeWithDefaults(Default())
	assert.False(t, merged.Analysis.Quiz.SuppressWithoutDistractors)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{ invalid json }`))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestMergeWithDefaults(t *testing.T) {
	partial := Config{
		Port: 9090,
	}
	partial.Analysis.Notes.MaxNotes = 3

	merged := partial.MergeWithDefaults(Default())

	assert.Equal(t, 9090, merged.Port)
	assert.Equal(t, 3, merged.Analysis.Notes.MaxNotes)
	assert.Equal(t, 80, merged.Analysis.Notes.MinLength)
	assert.Equal(t, 0.3, merged.Analysis.Summary.Ratio)
	assert.Equal(t, DefaultMaxUploadBytes, merged.MaxUploadBytes)
	assert.Equal(t, "info", merged.LogLevel)
	assert.Equal(t, 4, merged.Concurrency)
	assert.Nil(t, merged.Seed)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	var cfg Config
	merged := cfg.MergeWithDefaults(Config{})

	// stage defaults still apply so the analyzer is always runnable
	assert.Equal(t, 4, merged.Analysis.Quiz.MaxOptions)
	assert.Equal(t, 0, merged.Port)
	assert.Empty(t, merged.LogLevel)
}

func TestMergeWithDefaults_CopiesSeed(t *testing.T) {
	seed := int64(7)
	defaults := Default()
	defaults.Seed = &seed

	var cfg Config
	merged := cfg.MergeWithDefaults(defaults)
	require.NotNil(t, merged.Seed)
	assert.Equal(t, int64(7), *merged.Seed)

	*merged.Seed = 8
	assert.Equal(t, int64(7), seed)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "ratio above one", mutate: func(c *Config) { c.Analysis.Summary.Ratio = 1.5 }, wantErr: "Ratio"},
		{name: "unknown log level", mutate: func(c *Config) { c.LogLevel = "verbose" }, wantErr: "LogLevel"},
		{name: "port out of range", mutate: func(c *Config) { c.Port = 70000 }, wantErr: "Port"},
		{name: "negative upload limit", mutate: func(c *Config) { c.MaxUploadBytes = -1 }, wantErr: "MaxUploadBytes"},
		{name: "too much concurrency", mutate: func(c *Config) { c.Concurrency = 1000 }, wantErr: "Concurrency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config error")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/studygram")
	t.Setenv("PORT", "3000")
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")
	t.Setenv("CORS_ALLOWED_ORIGIN", "")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, "postgres://localhost/studygram", cfg.DatabaseURL)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, int64(1024), cfg.MaxUploadBytes)
	assert.Equal(t, "*", cfg.AllowedOrigin)
}

func TestApplyEnv_IgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("PORT", "eighty")

	cfg := Default()
	cfg.ApplyEnv()
	assert.Equal(t, 8080, cfg.Port)
}
