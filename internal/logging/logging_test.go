package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("DOGWORD_LOG_LEVEL", "DEBUG")
	t.Setenv("DOGWORD_LOG_FORMAT", "JSON")
	t.Setenv("DOGWORD_LOG_FILE", "/tmp/dogword.log")

	cfg := ConfigFromEnv()
	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "/tmp/dogword.log", cfg.File)
}

func TestConfigFromEnvDefaults(t *testing.T) {
	t.Setenv("DOGWORD_LOG_LEVEL", "")
	t.Setenv("DOGWORD_LOG_FORMAT", "")
	t.Setenv("DOGWORD_LOG_FILE", "")

	cfg := ConfigFromEnv()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "console", cfg.Format)
	assert.Empty(t, cfg.File)
}

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(Config{Level: "warn", Format: "json"}, &buf)

	logger.Info().Msg("hidden")
	logger.Warn().Int("words", 16).Msg("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, float64(16), entry["words"])
	assert.Equal(t, "warn", entry["level"])
}

func TestNewWithWriterBadLevel(t *testing.T) {
	logger := NewWithWriter(Config{Level: "loud", Format: "json"}, &bytes.Buffer{})
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestNewWithWriterConsole(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(Config{Level: "info", Format: "console", NoColor: true}, &buf)
	logger.Info().Str("grid", "ABCD").Msg("solved")
	assert.Contains(t, buf.String(), "solved")
	assert.Contains(t, buf.String(), "grid=ABCD")
}

func TestNewFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dogword.log")
	logger := New(Config{Level: "info", Format: "json", File: path, MaxSizeMB: 1})
	logger.Info().Msg("to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}
