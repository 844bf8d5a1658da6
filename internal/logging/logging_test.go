package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcra/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "", want: slog.LevelInfo},
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: "warning", want: slog.LevelWarn},
		{in: " error ", want: slog.LevelError},
		{in: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewWithWriter(t *testing.T) {
	t.Run("text respects level", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := NewWithWriter(&buf, slog.LevelWarn, "text")
		require.NoError(t, err)

		logger.Info("hidden")
		logger.Warn("shown", "suite", "core")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "suite=core")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := NewWithWriter(&buf, slog.LevelInfo, "json")
		require.NoError(t, err)

		logger.Info("hello")
		assert.Contains(t, buf.String(), `"msg":"hello"`)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := NewWithWriter(&bytes.Buffer{}, slog.LevelInfo, "xml")
		assert.Error(t, err)
	})
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcra.log")

	logger, closer, err := New(config.LoggingConfig{Level: "debug", File: path})
	require.NoError(t, err)
	logger.Debug("to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestNew_BadLevel(t *testing.T) {
	_, _, err := New(config.LoggingConfig{Level: "chatty"})
	assert.Error(t, err)
}
