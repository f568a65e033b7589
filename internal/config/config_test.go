package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)

	assert.Equal(t, uint32(21), cfg.Engine.Precision)
	assert.Equal(t, 64, cfg.Engine.MaxIterations)
	assert.Equal(t, 4096, cfg.Engine.MaxExactDigits)
	assert.Equal(t, 1024, cfg.Engine.CacheSize)
	assert.Equal(t, 4, cfg.Engine.BatchWorkers)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":                       "9000",
		"HOST":                       "127.0.0.1",
		"SYMKERNEL_PRECISION":        "30",
		"SYMKERNEL_MAX_ITERATIONS":   "10",
		"SYMKERNEL_MAX_EXACT_DIGITS": "100",
		"SYMKERNEL_CACHE_SIZE":       "0",
		"SYMKERNEL_BATCH_WORKERS":    "8",
		"LOG_LEVEL":                  "debug",
		"LOG_DEV":                    "true",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, uint32(30), cfg.Engine.Precision)
	assert.Equal(t, 10, cfg.Engine.MaxIterations)
	assert.Equal(t, 100, cfg.Engine.MaxExactDigits)
	assert.Equal(t, 0, cfg.Engine.CacheSize)
	assert.Equal(t, 8, cfg.Engine.BatchWorkers)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
}

func TestLoadInvalidNumber(t *testing.T) {
	t.Setenv("SYMKERNEL_PRECISION", "many")

	_, err := Load()
	assert.Error(t, err)

	cfg := LoadOrDefault()
	assert.Equal(t, uint32(21), cfg.Engine.Precision)
}

func TestLoadFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symkernel.yaml")
	data := "server:\n  port: \"7000\"\nengine:\n  precision: 12\n  cache_size: 16\nlogging:\n  level: warn\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, uint32(12), cfg.Engine.Precision)
	assert.Equal(t, 16, cfg.Engine.CacheSize)
	assert.Equal(t, 64, cfg.Engine.MaxIterations)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadFile_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symkernel.toml")
	data := "[engine]\nprecision = 15\nmax_iterations = 8\n\n[logging]\ndevelopment = true\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(15), cfg.Engine.Precision)
	assert.Equal(t, 8, cfg.Engine.MaxIterations)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoadFile_EnvironmentWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symkernel.yml")
	require.NoError(t, os.WriteFile(path, []byte("engine:\n  precision: 12\n"), 0o600))
	t.Setenv("SYMKERNEL_PRECISION", "40")
	t.Setenv("LOG_DEV", "true")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(40), cfg.Engine.Precision)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	ini := filepath.Join(dir, "symkernel.ini")
	require.NoError(t, os.WriteFile(ini, []byte("precision=3"), 0o600))
	_, err = LoadFile(ini)
	assert.ErrorContains(t, err, "unsupported config format")

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[engine\nprecision = "), 0o600))
	_, err = LoadFile(bad)
	assert.Error(t, err)
}

func TestToEngine(t *testing.T) {
	cfg := Default()
	ec, err := cfg.ToEngine()
	require.NoError(t, err)
	assert.Equal(t, uint32(21), ec.Precision)
	assert.Equal(t, 1024, ec.CacheSize)

	cfg.Engine.MaxIterations = 0
	_, err = cfg.ToEngine()
	assert.Error(t, err)
}

func TestAddr(t *testing.T) {
	cfg := Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = "9090"
	assert.Equal(t, "127.0.0.1:9090", cfg.Addr())
}
