package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		App:     AppConfig{Environment: "development"},
		Logger:  LoggerConfig{Level: "info"},
		Storage: StorageConfig{BasePath: "/some/path"},
	}

	assert.NoError(t, cfg.Validate())
}

func TestValidate_NegativeSyncInterval(t *testing.T) {
	cfg := &Config{
		App:     AppConfig{Environment: "development"},
		Logger:  LoggerConfig{Level: "info"},
		Storage: StorageConfig{BasePath: "/some/path"},
		Sync:    SyncConfig{Interval: -1},
	}

	assert.Error(t, cfg.Validate())
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"prod", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := &Config{
				App:     AppConfig{Environment: tt.env},
				Logger:  LoggerConfig{Level: "info"},
				Storage: StorageConfig{BasePath: "/some/path"},
			}
			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_LogLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"debug", true},
		{"info", true},
		{"warn", true},
		{"error", true},
		{"WARN", true},
		{"verbose", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := &Config{
				App:     AppConfig{Environment: "development"},
				Logger:  LoggerConfig{Level: tt.level},
				Storage: StorageConfig{BasePath: "/some/path"},
			}
			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_IGDBCredentialPairing(t *testing.T) {
	base := func() *Config {
		return &Config{
			App:     AppConfig{Environment: "development"},
			Logger:  LoggerConfig{Level: "info"},
			Storage: StorageConfig{BasePath: "/some/path"},
		}
	}

	cfg := base()
	cfg.Providers.IGDBClientID = "id-only"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Providers.IGDBClientSecret = "secret-only"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Providers.IGDBClientID = "id"
	cfg.Providers.IGDBClientSecret = "secret"
	assert.NoError(t, cfg.Validate())
}

func TestExpandStoragePaths_Defaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.expandStoragePaths())

	assert.NotEmpty(t, cfg.Storage.BasePath)
	assert.Equal(t, filepath.Join(cfg.Storage.BasePath, "catalog.db"), cfg.Storage.DatabasePath)
	assert.Equal(t, filepath.Join(cfg.Storage.BasePath, "cache"), cfg.Storage.CachePath)
}

func TestExpandStoragePaths_ExplicitOverrides(t *testing.T) {
	cfg := &Config{
		Storage: StorageConfig{
			BasePath:     "/data",
			DatabasePath: "/elsewhere/games.db",
		},
	}
	require.NoError(t, cfg.expandStoragePaths())

	assert.Equal(t, "/data", cfg.Storage.BasePath)
	assert.Equal(t, "/elsewhere/games.db", cfg.Storage.DatabasePath)
	assert.Equal(t, "/data/cache", cfg.Storage.CachePath)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := "# comment line\n\nTEST_CFG_KEY=from-file\nTEST_CFG_QUOTED=\"quoted value\"\n"
	require.NoError(t, os.WriteFile(envPath, []byte(content), 0o600))

	t.Setenv("TEST_CFG_KEY", "")
	os.Unsetenv("TEST_CFG_KEY")
	t.Setenv("TEST_CFG_QUOTED", "")
	os.Unsetenv("TEST_CFG_QUOTED")

	require.NoError(t, loadEnvFile(envPath))

	assert.Equal(t, "from-file", os.Getenv("TEST_CFG_KEY"))
	assert.Equal(t, "quoted value", os.Getenv("TEST_CFG_QUOTED"))
}

func TestLoadEnvFile_EnvVarWins(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("TEST_CFG_PRESET=from-file\n"), 0o600))

	t.Setenv("TEST_CFG_PRESET", "from-env")

	require.NoError(t, loadEnvFile(envPath))
	assert.Equal(t, "from-env", os.Getenv("TEST_CFG_PRESET"))
}

func TestLoadEnvFile_InvalidLine(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("NOT A VALID LINE\n"), 0o600))

	assert.Error(t, loadEnvFile(envPath))
}
