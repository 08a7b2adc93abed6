package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOLDERS_LOG_DIR", "")
	t.Setenv("HOLDERS_LOG_LEVEL", "")
	t.Setenv("HOLDERS_NO_COLOR", "")
	os.Unsetenv("HOLDERS_LOG_DIR")
	os.Unsetenv("HOLDERS_LOG_LEVEL")
	os.Unsetenv("HOLDERS_NO_COLOR")

	cfg, err := LoadFrom(noEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Log.Dir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.NoColor)

	level, err := cfg.ConsoleLevel()
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, level)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HOLDERS_LOG_DIR", "/tmp/holders-logs")
	t.Setenv("HOLDERS_LOG_LEVEL", "warn")
	t.Setenv("HOLDERS_NO_COLOR", "true")

	cfg, err := LoadFrom(noEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/holders-logs", cfg.Log.Dir)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.Log.NoColor)
}

func TestLoadFromDotEnvFile(t *testing.T) {
	t.Setenv("HOLDERS_LOG_LEVEL", "")
	os.Unsetenv("HOLDERS_LOG_LEVEL")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("HOLDERS_LOG_LEVEL=debug\n"), 0644))
	// godotenv sets the variable for the rest of the process
	t.Cleanup(func() { os.Unsetenv("HOLDERS_LOG_LEVEL") })

	cfg, err := LoadFrom(envFile)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsUnknownLevel(t *testing.T) {
	t.Setenv("HOLDERS_LOG_LEVEL", "loud")

	_, err := LoadFrom(noEnvFile(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log.level")
}
