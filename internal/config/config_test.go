package config

import (
	"testing"
	"time"
)

func TestLoadRequiresSecretAndDSN(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_DSN", "user:pass@/streamhaven")

	if _, err := Load(); err == nil {
		t.Error("expected an error without JWT_SECRET")
	}

	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_DSN", "")
	if _, err := Load(); err == nil {
		t.Error("expected an error without DB_DSN")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_DSN", "user:pass@/streamhaven")
	t.Setenv("PORT", "")
	t.Setenv("TOKEN_TTL_HOURS", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("SEED_CATALOG", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("got addr %q, want :8080", cfg.Addr)
	}
	if cfg.TokenTTL != 72*time.Hour {
		t.Errorf("got ttl %v, want 72h", cfg.TokenTTL)
	}
	if cfg.SeedCatalog {
		t.Error("seeding should be off by default")
	}
	if len(cfg.Plans) != 3 {
		t.Errorf("got %d plans, want 3", len(cfg.Plans))
	}
}

func TestLoadParsesOrigins(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_DSN", "user:pass@/streamhaven")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.AllowedOrigin("https://app.example.com") {
		t.Error("expected app origin to be allowed")
	}
	if !cfg.AllowedOrigin("https://admin.example.com") {
		t.Error("expected admin origin to be allowed")
	}
	if cfg.AllowedOrigin("https://evil.example.com") {
		t.Error("unexpected origin allowed")
	}
}

func TestLoadRejectsBadTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_DSN", "user:pass@/streamhaven")
	t.Setenv("TOKEN_TTL_HOURS", "soon")

	if _, err := Load(); err == nil {
		t.Error("expected an error for a non-numeric TTL")
	}
}
