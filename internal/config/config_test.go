package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected port 8080, got %q", cfg.Port)
	}
	if cfg.BackendBase != "http://localhost:8081" {
		t.Fatalf("unexpected backend base %q", cfg.BackendBase)
	}
	if cfg.UseMock {
		t.Fatalf("mock layer must be off by default")
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Fatalf("expected 30s timeout, got %s", cfg.RequestTimeout)
	}
	if cfg.CORSAllowed != "*" {
		t.Fatalf("expected wildcard CORS, got %q", cfg.CORSAllowed)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("USE_MOCK", "true")
	t.Setenv("BE_BASE", "http://api.internal:9000")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("ADMIN_KEY", "secret")

	cfg, err := load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.UseMock {
		t.Fatalf("expected USE_MOCK=true to enable the mock layer")
	}
	if cfg.BackendBase != "http://api.internal:9000" {
		t.Fatalf("unexpected backend base %q", cfg.BackendBase)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %s", cfg.RequestTimeout)
	}
	if cfg.AdminKey != "secret" {
		t.Fatalf("unexpected admin key %q", cfg.AdminKey)
	}
}

func TestLoadDotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PORT=9999\nLOG_LEVEL=debug\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	cfg, err := load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9999" || cfg.LogLevel != "debug" {
		t.Fatalf("expected file values, got port=%q level=%q", cfg.Port, cfg.LogLevel)
	}
}
