// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App       AppConfig
	Logger    LoggerConfig
	Storage   StorageConfig
	Providers ProvidersConfig
	Sync      SyncConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// StorageConfig holds database and cache paths.
type StorageConfig struct {
	// BasePath is the directory holding the catalog database and the
	// metadata cache (default: ~/InventoryManagement/data).
	BasePath string
	// DatabasePath is the SQLite catalog file (default: {base}/catalog.db).
	DatabasePath string
	// CachePath is the metadata cache directory (default: {base}/cache).
	CachePath string
	// CacheEnabled allows disabling the on-disk metadata cache entirely.
	CacheEnabled bool
}

// SyncConfig controls the periodic bulk metadata sync.
type SyncConfig struct {
	// Interval between bulk sync runs. Zero disables periodic runs; the
	// daemon then performs a single pass and waits for shutdown.
	Interval time.Duration
}

// ProvidersConfig holds external source credentials. Any credential may
// be empty; the matching adapter then degrades to returning no results.
type ProvidersConfig struct {
	RAWGAPIKey       string
	GamesDBAPIKey    string
	IGDBClientID     string
	IGDBClientSecret string
	BGAClientID      string
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	basePath := flag.String("data-path", "", "Base path for database and cache storage")
	databasePath := flag.String("database-path", "", "Path to the SQLite catalog database")
	cachePath := flag.String("cache-path", "", "Path for the metadata cache")
	cacheEnabled := flag.String("cache-enabled", "", "Enable the on-disk metadata cache (default: true)")
	syncInterval := flag.String("sync-interval", "", "Interval between bulk metadata sync runs, e.g. 12h (default: 24h, 0 disables)")

	envFile := flag.String("env-file", ".env", "Path to .env file")

	flag.Parse()

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Storage: StorageConfig{
			BasePath:     getConfigValue(*basePath, "DATA_PATH", ""),
			DatabasePath: getConfigValue(*databasePath, "DATABASE_PATH", ""),
			CachePath:    getConfigValue(*cachePath, "CACHE_PATH", ""),
			CacheEnabled: getBoolConfigValue(*cacheEnabled, "CACHE_ENABLED", true),
		},
		Sync: SyncConfig{},
		Providers: ProvidersConfig{
			RAWGAPIKey:       getConfigValue("", "RAWG_API_KEY", ""),
			GamesDBAPIKey:    getConfigValue("", "GAMESDB_API_KEY", ""),
			IGDBClientID:     getConfigValue("", "IGDB_CLIENT_ID", ""),
			IGDBClientSecret: getConfigValue("", "IGDB_CLIENT_SECRET", ""),
			BGAClientID:      getConfigValue("", "BGA_CLIENT_ID", ""),
		},
	}

	interval := getConfigValue(*syncInterval, "SYNC_INTERVAL", "24h")
	parsed, err := time.ParseDuration(interval)
	if err != nil {
		return nil, fmt.Errorf("invalid sync interval %q: %w", interval, err)
	}
	cfg.Sync.Interval = parsed

	if err := cfg.expandStoragePaths(); err != nil {
		return nil, fmt.Errorf("invalid storage path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Storage.BasePath == "" {
		return errors.New("storage base path cannot be empty after expansion")
	}

	if c.Sync.Interval < 0 {
		return errors.New("sync interval cannot be negative")
	}

	// IGDB needs both halves of its credential or neither.
	if (c.Providers.IGDBClientID == "") != (c.Providers.IGDBClientSecret == "") {
		return errors.New("IGDB_CLIENT_ID and IGDB_CLIENT_SECRET must be set together")
	}

	return nil
}

// expandStoragePaths expands ~ and makes every storage path absolute,
// deriving the database and cache paths from the base path when unset.
func (c *Config) expandStoragePaths() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultBase := filepath.Join(homeDir, "InventoryManagement", "data")

	base, err := expandPath(c.Storage.BasePath, defaultBase)
	if err != nil {
		return err
	}
	c.Storage.BasePath = base

	db, err := expandPath(c.Storage.DatabasePath, filepath.Join(base, "catalog.db"))
	if err != nil {
		return err
	}
	c.Storage.DatabasePath = db

	cache, err := expandPath(c.Storage.CachePath, filepath.Join(base, "cache"))
	if err != nil {
		return err
	}
	c.Storage.CachePath = cache

	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getBoolConfigValue returns a bool from flag, env var, or default.
// Accepts: "true", "1", "yes" (case-insensitive) as true; anything else is false.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		value = strings.Trim(value, `"'`)

		// Env vars take precedence over the .env file.
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
