package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ErrMissingSecret indicates that a required signing secret is not configured.
// This is a server misconfiguration, never a client error.
var ErrMissingSecret = errors.New("jwt signing secret is not configured")

// Config holds the signing secrets and expiries for the access and refresh tokens.
// JWT_USER_REFERSH_SECRET keeps its historical spelling; deployments already set it.
type Config struct {
	AccessSecret  string        `env:"JWT_USER_ACCESS_SECRET"`
	AccessExpiry  time.Duration `env:"JWT_USER_ACCESS_TOKEN_EXPIRY" envDefault:"15m"`
	RefreshSecret string        `env:"JWT_USER_REFERSH_SECRET"`
	RefreshExpiry time.Duration `env:"JWT_USER_REFRESH_TOKEN_EXPIRY" envDefault:"168h"`
}

// LoadConfig reads the token configuration from the environment.
// It is called on every issue and verify so that rotated secrets take
// effect without a restart.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse jwt config: %w", err)
	}
	return cfg, nil
}
