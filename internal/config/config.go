package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Service settings, read from the environment (and a .env file if present).
type Config struct {
	DBDriver    string
	DBPath      string
	DatabaseURL string
	SeedPath    string
	Port        string
	OutputDir   string
	LogLevel    string
	// Optional label file whose defaults apply to every shipment.
	DefaultsPath string
}

// LoadEnv reads .env into the process environment. It reports whether a
// file was found; a missing file is not an error.
func LoadEnv(files ...string) bool {
	return godotenv.Load(files...) == nil
}

// FromEnv collects the settings.
func FromEnv() Config {
	return Config{
		DBDriver:     strings.ToLower(Get("DB_DRIVER", "sqlite")),
		DBPath:       Get("DB_PATH", "data/labels.db"),
		DatabaseURL:  Get("DATABASE_URL", ""),
		SeedPath:     Get("SEED_PATH", "data/seeds/labels.yaml"),
		Port:         Get("PORT", "8080"),
		OutputDir:    Get("OUTPUT_DIR", "out"),
		LogLevel:     Get("LOG_LEVEL", "info"),
		DefaultsPath: Get("DEFAULTS_PATH", ""),
	}
}

// Get returns the trimmed value of key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
