package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config carries the runtime settings for the tracker. Everything comes
// from the environment, optionally seeded from a .env file.
type Config struct {
	// StoreKind selects the record store backend: "sheets" or "excel".
	StoreKind string
	// SpreadsheetID addresses the Google spreadsheet (sheets backend).
	SpreadsheetID string
	// CredentialsFile points at a service account key; empty means
	// application default credentials (sheets backend).
	CredentialsFile string
	// WorkbookPath is the local .xlsx file (excel backend).
	WorkbookPath string
	// CacheTTL bounds read staleness; zero disables the read cache.
	CacheTTL time.Duration
	// LogLevel is a logrus level name.
	LogLevel string
}

// Load reads the configuration from the environment. A missing .env file
// is not an error.
func Load() Config {
	godotenv.Load()

	return Config{
		StoreKind:       getEnv("REVTRACKER_STORE", "excel"),
		SpreadsheetID:   getEnv("REVTRACKER_SPREADSHEET_ID", ""),
		CredentialsFile: getEnv("REVTRACKER_CREDENTIALS_FILE", ""),
		WorkbookPath:    getEnv("REVTRACKER_WORKBOOK", "revtracker.xlsx"),
		CacheTTL:        getEnvDuration("REVTRACKER_CACHE_TTL", 30*time.Second),
		LogLevel:        getEnv("REVTRACKER_LOG_LEVEL", "warn"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
