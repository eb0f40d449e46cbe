package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"STRETCH_LOG_LEVEL", "STRETCH_LOG_FORMAT", "STRETCH_LOG_FILE",
	"STRETCH_LOG_MAX_SIZE", "STRETCH_LOG_MAX_BACKUPS", "STRETCH_LOG_MAX_AGE",
	"STRETCH_LOG_COMPRESS", "STRETCH_TIME_FACTOR", "STRETCH_CHEAPER",
	"STRETCH_EXACT", "STRETCH_BIT_DEPTH", "STRETCH_SAMPLE_RATE",
}

// clearEnv unsets every STRETCH_* key for the test and restores them after.
func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range allKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STRETCH_TIME_FACTOR", "1.5")
	t.Setenv("STRETCH_EXACT", "true")
	t.Setenv("STRETCH_BIT_DEPTH", "24")
	t.Setenv("STRETCH_LOG_LEVEL", "debug")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.InDelta(t, 1.5, cfg.TimeFactor, 1e-12)
	assert.True(t, cfg.Exact)
	assert.Equal(t, 24, cfg.BitDepth)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.Cheaper)
}

func TestFromEnvReportsEveryBadValue(t *testing.T) {
	clearEnv(t)
	t.Setenv("STRETCH_TIME_FACTOR", "fast")
	t.Setenv("STRETCH_CHEAPER", "maybe")

	_, err := FromEnv()
	require.ErrorIs(t, err, ErrInvalidValue)
	assert.Contains(t, err.Error(), "STRETCH_TIME_FACTOR")
	assert.Contains(t, err.Error(), "STRETCH_CHEAPER")
}

func TestLoadEnvFileDoesNotOverrideEnvironment(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "stretch.env")
	require.NoError(t, os.WriteFile(path, []byte("STRETCH_CHEAPER=true\nSTRETCH_LOG_LEVEL=warn\n"), 0o600))

	t.Setenv("STRETCH_LOG_LEVEL", "error")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Cheaper)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}

func TestLoadMissingDefaultFileIsIgnored(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
}
