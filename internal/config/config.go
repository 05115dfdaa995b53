package config

import (
	"os"
	"path/filepath"
	"strings"

	"fjacquet/expense-tracker/internal/logging"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from a .env file in the working
// directory or its parent, if one exists. Variables already set in the
// environment win. It returns the file that was loaded, or "".
func LoadEnv() string {
	for _, envFile := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			return ""
		}
		return envFile
	}
	return ""
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}

// NewLogger builds the application logger from the configuration.
func NewLogger(cfg *Config) logging.Logger {
	return logging.NewLogrusAdapter(strings.ToLower(cfg.Log.Level), strings.ToLower(cfg.Log.Format))
}
