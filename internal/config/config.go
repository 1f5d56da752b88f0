package config

import (
	"os"
	"strconv"
	"time"

	"gorelate/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Analyzer AnalyzerConfig
	Database DatabaseConfig
	Upload   UploadConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// AnalyzerConfig holds analysis-service boundary settings. An empty URL
// selects the in-process engine instead of a remote service.
type AnalyzerConfig struct {
	URL            string
	SubmitAttempts int           // bounded retries on the submission call
	PollInterval   time.Duration // fixed status polling interval
	PollTimeout    time.Duration // overall deadline for the polling loop
}

// DatabaseConfig holds the optional run-history database settings
type DatabaseConfig struct {
	URL string
}

// UploadConfig holds dataset upload limits
type UploadConfig struct {
	MaxFileSize int64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnv("SERVER_PORT", "8090"),
			GinMode: getEnv("GIN_MODE", "release"),
		},
		Analyzer: AnalyzerConfig{
			URL:            getEnv("ANALYZER_URL", ""),
			SubmitAttempts: getEnvInt("ANALYZER_SUBMIT_ATTEMPTS", 3),
			PollInterval:   getEnvDuration("ANALYZER_POLL_INTERVAL", time.Second),
			PollTimeout:    getEnvDuration("ANALYZER_POLL_TIMEOUT", 5*time.Minute),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Upload: UploadConfig{
			MaxFileSize: int64(getEnvInt("MAX_UPLOAD_MB", 50)) * 1024 * 1024,
		},
	}

	if config.Analyzer.SubmitAttempts < 1 {
		return nil, errors.ConfigInvalid("ANALYZER_SUBMIT_ATTEMPTS must be at least 1")
	}
	if config.Analyzer.PollInterval <= 0 {
		return nil, errors.ConfigInvalid("ANALYZER_POLL_INTERVAL must be positive")
	}
	if config.Analyzer.PollTimeout <= 0 {
		return nil, errors.ConfigInvalid("ANALYZER_POLL_TIMEOUT must be positive")
	}

	return config, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
