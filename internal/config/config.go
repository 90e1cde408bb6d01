// Package config contains everything related to configuration
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	LogsPath        string
	CharacterName   string
	LogLanguage     string
	DatabasePath    string
	TypeIDCachePath string
	LogFilePath     string
	PollInterval    time.Duration
	RegionID        int
}

// Default values
const (
	defaultPollInterval = 2 * time.Second
)

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	// Try loading .env from multiple locations
	envPaths := getEnvPaths()
	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		LogsPath:        getEnvString("LOGS_PATH", getDefaultLogsPath()),
		CharacterName:   getEnvString("CHARACTER_NAME", ""),
		LogLanguage:     getEnvString("LOG_LANGUAGE", ""),
		DatabasePath:    getEnvString("DATABASE_PATH", getDefaultDataPath("runs.db")),
		TypeIDCachePath: getEnvString("TYPEID_CACHE_PATH", getDefaultDataPath("typeid_cache.json")),
		LogFilePath:     getEnvString("LOG_FILE_PATH", getDefaultDataPath("abt.log")),
		PollInterval:    getEnvDuration("POLL_INTERVAL", defaultPollInterval),
		RegionID:        getEnvInt("MARKET_REGION_ID", DefaultRegionID),
	}

	// Ensure database directory exists
	if err := ensureDir(filepath.Dir(cfg.DatabasePath)); err != nil {
		return nil, err
	}

	// Ensure cache directory exists
	if err := ensureDir(filepath.Dir(cfg.TypeIDCachePath)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory locations
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "abyssal-tracker", ".env"),
			filepath.Join(home, ".abyssal-tracker", ".env"),
		)
	}

	// Parent directory (useful for development)
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(cwd), ".env"))
	}

	return paths
}

// getDefaultLogsPath returns the default EVE chat log directory.
func getDefaultLogsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "Chatlogs"
	}
	return filepath.Join(home, "Documents", "EVE", "logs", "Chatlogs")
}

// getDefaultDataPath returns the default path for an application data file.
func getDefaultDataPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".config", "abyssal-tracker", name)
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns the default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "1m", "500ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds if no unit specified
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
