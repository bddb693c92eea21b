package main

import (
	"fmt"

	"github.com/jonathan/studygram/internal/config"
)

// loadConfig reads the optional JSON config file, fills defaults and applies the environment
func loadConfig(path string) (config.Config, error) {
	defaults := config.Default()
	cfg := &defaults
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	merged := cfg.MergeWithDefaults(config.Default())
	merged.ApplyEnv()
	if err := merged.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return merged, nil
}
