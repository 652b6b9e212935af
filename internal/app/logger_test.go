package app

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLevel(level slog.Level) *slog.LevelVar {
	lv := &slog.LevelVar{}
	lv.Set(level)
	return lv
}

func TestSetupLogger_ConsoleOnly(t *testing.T) {
	t.Setenv(LogEnvVar, "")

	var buf bytes.Buffer
	logger, closer := setupLogger(&buf, newTestLevel(slog.LevelInfo))
	assert.Nil(t, closer)

	logger.Info("validating documents")
	logger.Warn("no files matched")
	logger.Error("schema broke", "error", "bad ref")
	logger.Debug("should be suppressed")

	out := buf.String()
	assert.Contains(t, out, "validating documents\n")
	assert.Contains(t, out, "Warning: no files matched\n")
	assert.Contains(t, out, "Error: schema broke: bad ref\n")
	assert.NotContains(t, out, "should be suppressed")
}

func TestSetupLogger_DebugShowsAttrs(t *testing.T) {
	t.Setenv(LogEnvVar, "")

	var buf bytes.Buffer
	logger, _ := setupLogger(&buf, newTestLevel(slog.LevelDebug))

	logger.Debug("schema compiled", "kind", "tokens")
	assert.Contains(t, buf.String(), "schema compiled kind=tokens\n")
}

func TestSetupLogger_FileLogging(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "dtv.log")
	t.Setenv(LogEnvVar, logPath)

	var buf bytes.Buffer
	logger, closer := setupLogger(&buf, newTestLevel(slog.LevelInfo))
	require.NotNil(t, closer)
	defer closer.Close()

	logger.Info("hello from the run", "kind", "tokens")
	// Debug records reach the file even when the console is at info.
	logger.Debug("file only")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "hello from the run", entry["msg"])
	assert.Equal(t, "tokens", entry["kind"])

	assert.Contains(t, buf.String(), "hello from the run")
	assert.NotContains(t, buf.String(), "file only")
}

func TestSetupLogger_UnwritableLogFile(t *testing.T) {
	t.Setenv(LogEnvVar, filepath.Join(t.TempDir(), "no", "such", "dir", "dtv.log"))

	var buf bytes.Buffer
	logger, closer := setupLogger(&buf, newTestLevel(slog.LevelInfo))
	assert.Nil(t, closer)

	// The logger still works on the console.
	logger.Info("still running")
	assert.Contains(t, buf.String(), "Warning: logging to file disabled")
	assert.Contains(t, buf.String(), "still running")
}

func TestConsoleHandler_WithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := &consoleHandler{w: &buf, level: newTestLevel(slog.LevelDebug)}
	logger := slog.New(h).With("component", "watcher")

	logger.Debug("watching")
	assert.Contains(t, buf.String(), "watching component=watcher\n")
}
