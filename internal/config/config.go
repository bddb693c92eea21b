// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/studygram/internal/analysis"
)

// DefaultMaxUploadBytes caps document uploads at 20 MiB
const DefaultMaxUploadBytes int64 = 20 << 20

var configValidator = validator.New()

// Config represents the configuration that can be loaded from a JSON file.
// Missing values use defaults or are provided via CLI flags and the environment.
type Config struct {
	// Analysis stage parameters; zero numeric fields fall back to the stage defaults
	Analysis analysis.Options `json:"analysis"`

	// Seed makes quiz option order reproducible when set
	Seed *int64 `json:"seed,omitempty"`

	// Concurrency bounds the number of documents analyzed at once in batch runs
	Concurrency int `json:"concurrency,omitempty" validate:"gte=0,lte=64"`

	// Server
	Port           int    `json:"port,omitempty" validate:"gte=0,lte=65535"`
	MaxUploadBytes int64  `json:"max_upload_bytes,omitempty" validate:"gte=0"`
	AllowedOrigin  string `json:"allowed_origin,omitempty"`
	DatabaseURL    string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Logging
	LogLevel   string `json:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	LogDevMode bool   `json:"log_dev_mode,omitempty"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Analysis:       analysis.DefaultOptions(),
		Concurrency:    4,
		Port:           8080,
		MaxUploadBytes: DefaultMaxUploadBytes,
		AllowedOrigin:  "*",
		LogLevel:       "info",
	}
}

// LoadConfig loads configuration from a JSON file on top of Default, so
// fields the file omits, booleans included, keep their default values.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values. It is meant to
// run after MergeWithDefaults, since stage options such as max_options must
// be positive once resolved.
func (c *Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("config error: %s", describeValidation(err))
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// Booleans cannot distinguish unset from false, so they are not merged.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	result.Analysis = mergeAnalysis(result.Analysis, defaults.Analysis)
	if result.Seed == nil && defaults.Seed != nil {
		seed := *defaults.Seed
		result.Seed = &seed
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = defaults.MaxUploadBytes
	}
	if result.AllowedOrigin == "" {
		result.AllowedOrigin = defaults.AllowedOrigin
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}

	return result
}

// ApplyEnv overrides fields from the environment: DATABASE_URL, PORT,
// LOG_LEVEL, MAX_UPLOAD_BYTES and CORS_ALLOWED_ORIGIN
func (c *Config) ApplyEnv() {
	c.DatabaseURL = getEnvString("DATABASE_URL", c.DatabaseURL)
	c.Port = getEnvInt("PORT", c.Port)
	c.LogLevel = strings.ToLower(getEnvString("LOG_LEVEL", c.LogLevel))
	c.MaxUploadBytes = getEnvInt64("MAX_UPLOAD_BYTES", c.MaxUploadBytes)
	c.AllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", c.AllowedOrigin)
}

// mergeAnalysis fills zero stage fields from defaults, then from the stage's own defaults
func mergeAnalysis(opts, defaults analysis.Options) analysis.Options {
	if opts.Summary.Ratio == 0 {
		opts.Summary.Ratio = defaults.Summary.Ratio
	}
	if opts.Summary.MinSentences == 0 {
		opts.Summary.MinSentences = defaults.Summary.MinSentences
	}
	if opts.Notes.MinLength == 0 {
		opts.Notes.MinLength = defaults.Notes.MinLength
	}
	if opts.Notes.MaxNotes == 0 {
		opts.Notes.MaxNotes = defaults.Notes.MaxNotes
	}
	if opts.Flashcards.MaxCards == 0 {
		opts.Flashcards.MaxCards = defaults.Flashcards.MaxCards
	}
	if opts.Quiz.MaxItems == 0 {
		opts.Quiz.MaxItems = defaults.Quiz.MaxItems
	}
	if opts.Quiz.MinSentenceLength == 0 {
		opts.Quiz.MinSentenceLength = defaults.Quiz.MinSentenceLength
	}
	if opts.Quiz.MaxOptions == 0 {
		opts.Quiz.MaxOptions = defaults.Quiz.MaxOptions
	}
	return opts.MergeWithDefaults()
}

// describeValidation flattens validator errors into "field: rule" pairs
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s must satisfy %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s must satisfy %s", field, fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
