package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"":       zapcore.InfoLevel,
		"debug":  zapcore.DebugLevel,
		" WARN ": zapcore.WarnLevel,
		"error":  zapcore.ErrorLevel,
	}

	for name, want := range tests {
		got, err := ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseLevel("loud")
	require.Error(t, err)
}

func TestNewJSONFiltersByLevel(t *testing.T) {
	var out bytes.Buffer

	logger, err := New(Config{Level: "info", Format: "json", Output: &out})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("processed", zap.Int("frames", 42))
	require.NoError(t, logger.Sync())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "processed", record["msg"])
	assert.Equal(t, "info", record["level"])
	assert.InDelta(t, 42, record["frames"], 0)
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	_, err := New(Config{Format: "xml"})
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestNewWritesRotatedFile(t *testing.T) {
	var out bytes.Buffer

	path := filepath.Join(t.TempDir(), "logs", "stretch.log")

	logger, err := New(Config{Level: "debug", Output: &out, File: path, MaxSizeMB: 1})
	require.NoError(t, err)

	logger.Debug("to file")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"to file"`)
	assert.Contains(t, out.String(), "to file")
}
