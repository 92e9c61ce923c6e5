// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"tenantpress/internal/domain"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"TP_DB_PATH" envDefault:"./data/tenantpress.db"`
	ServerHost string `env:"TP_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"TP_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"TP_ENV" envDefault:"development"`
	LogLevel   string `env:"TP_LOG_LEVEL" envDefault:"info"`

	// FallbackDomain is retried by the resolver when a request host
	// matches no tenant (e.g. behind a generic preview hostname).
	FallbackDomain string `env:"TP_FALLBACK_DOMAIN"`

	// Rate limiting for the preview server
	RateRPS   float64 `env:"TP_RATE_RPS" envDefault:"10"`
	RateBurst int     `env:"TP_RATE_BURST" envDefault:"20"`

	// Seeding configuration
	DoSeed bool `env:"TP_DO_SEED" envDefault:"false"` // Enable database seeding
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// The fallback domain is compared against normalized request hosts,
	// so store it normalized too.
	cfg.FallbackDomain = domain.Normalize(cfg.FallbackDomain)

	if cfg.RateRPS <= 0 {
		return nil, fmt.Errorf("TP_RATE_RPS must be positive, got %v", cfg.RateRPS)
	}
	if cfg.RateBurst <= 0 {
		return nil, fmt.Errorf("TP_RATE_BURST must be positive, got %d", cfg.RateBurst)
	}

	return cfg, nil
}
