// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DBPath != "./data/tenantpress.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d", cfg.ServerPort)
	}
	if !cfg.IsDevelopment() {
		t.Error("default env should be development")
	}
	if cfg.DoSeed {
		t.Error("seeding should default to off")
	}
}

func TestLoadFallbackDomainNormalized(t *testing.T) {
	t.Setenv("TP_FALLBACK_DOMAIN", "https://www.Fallback.example.com/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.FallbackDomain != "fallback.example.com" {
		t.Errorf("FallbackDomain = %q, want normalized key", cfg.FallbackDomain)
	}
}

func TestLoadRejectsBadRateLimits(t *testing.T) {
	t.Setenv("TP_RATE_RPS", "0")
	if _, err := Load(); err == nil {
		t.Error("zero TP_RATE_RPS should be rejected")
	}
}

func TestServerAddr(t *testing.T) {
	cfg := Config{ServerHost: "0.0.0.0", ServerPort: 9000}
	if got := cfg.ServerAddr(); got != "0.0.0.0:9000" {
		t.Errorf("ServerAddr = %q", got)
	}
}
