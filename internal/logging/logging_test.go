package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "info", time.UTC)

	logger.Info("server_started", "port", "8080")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "server_started", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "8080", entry["port"])
	assert.NotEmpty(t, entry["ts"])
	assert.NotContains(t, entry, "time")
}

func TestNewWithWriter_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "error", nil)

	logger.Info("dropped")
	assert.Zero(t, buf.Len())

	logger.Error("kept")
	assert.NotZero(t, buf.Len())
}

func TestLevelFromString(t *testing.T) {
	assert.Equal(t, slog.LevelError, levelFromString("ERROR"))
	assert.Equal(t, slog.LevelWarn, levelFromString("warning"))
	assert.Equal(t, slog.LevelDebug, levelFromString(" debug "))
	assert.Equal(t, slog.LevelInfo, levelFromString(""))
}
