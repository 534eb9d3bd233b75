package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"DB_DRIVER", "DB_PATH", "DATABASE_URL", "SEED_PATH", "PORT", "OUTPUT_DIR", "LOG_LEVEL", "DEFAULTS_PATH"} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()
	if cfg.DBDriver != "sqlite" {
		t.Fatalf("DBDriver = %q, want sqlite", cfg.DBDriver)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.SeedPath != "data/seeds/labels.yaml" {
		t.Fatalf("SeedPath = %q, want data/seeds/labels.yaml", cfg.SeedPath)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", " PGX ")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := FromEnv()
	if cfg.DBDriver != "pgx" {
		t.Fatalf("DBDriver = %q, want pgx", cfg.DBDriver)
	}
	if cfg.Port != "9090" {
		t.Fatalf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("DAZZLE_TEST_OUTPUT_DIR=/tmp/labels\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("DAZZLE_TEST_OUTPUT_DIR", "")
	os.Unsetenv("DAZZLE_TEST_OUTPUT_DIR")

	if !LoadEnv(path) {
		t.Fatalf("LoadEnv(%q) = false, want true", path)
	}
	if got := Get("DAZZLE_TEST_OUTPUT_DIR", "fallback"); got != "/tmp/labels" {
		t.Fatalf("Get = %q, want /tmp/labels", got)
	}

	if LoadEnv(filepath.Join(t.TempDir(), "missing.env")) {
		t.Fatalf("LoadEnv on a missing file = true, want false")
	}
}
