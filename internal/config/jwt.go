package config

import (
	"fmt"
	"time"
)

// JWTConfig holds configuration for issuing and validating access tokens.
type JWTConfig struct {
	Secret     string        `validate:"required,min=16"`
	Expiration time.Duration `validate:"gte=1m,lte=720h"`
	Issuer     string        `validate:"required"`
}

// NewJWTConfig reads JWT_SECRET (required, at least 16 bytes), JWT_EXPIRATION
// (duration or hours, default 24h) and JWT_ISSUER (default "studygram").
func NewJWTConfig() (*JWTConfig, error) {
	expiration, err := getEnvDuration("JWT_EXPIRATION", 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION: %w", err)
	}

	cfg := &JWTConfig{
		Secret:     getEnvString("JWT_SECRET", ""),
		Expiration: expiration,
		Issuer:     getEnvString("JWT_ISSUER", "studygram"),
	}
	if err := configValidator.Struct(cfg); err != nil {
		return nil, fmt.Errorf("jwt config: %s", describeValidation(err))
	}
	return cfg, nil
}
