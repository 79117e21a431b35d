package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.input), "parseLevel(%q)", tt.input)
	}
}

func TestOpenOutputStderr(t *testing.T) {
	for _, path := range []string{"", "-", " - "} {
		w, closer, err := openOutput(path)
		require.NoError(t, err)
		assert.Equal(t, os.Stderr, w, "path %q", path)
		assert.NoError(t, closer())
	}
}

func TestNewWritesToFileAndCreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state", "triage.log")

	logger, closer, err := New(path, "info")
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("stream opened", "status", 200)
	require.NoError(t, closer())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "msg=\"stream opened\"")
	assert.Contains(t, out, "status=200")
	assert.False(t, strings.Contains(out, "hidden"), "debug line should be filtered")
}

func TestNewAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "triage.log")
	for _, msg := range []string{"first", "second"} {
		logger, closer, err := New(path, "")
		require.NoError(t, err)
		logger.Info(msg)
		require.NoError(t, closer())
	}
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))
}

func TestNewInvalidPath(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, _, err := New(filepath.Join(blocker, "triage.log"), "info")
	assert.Error(t, err)
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	require.NotNil(t, logger)
	logger.Info("dropped")
}
