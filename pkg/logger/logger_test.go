package logger

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"garbage", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in), "level %q", tt.in)
	}
}

func TestInitWithConfig(t *testing.T) {
	InitWithConfig(Config{Level: "debug", Format: "text", Output: "stderr"})
	require.NotNil(t, Log)
	assert.True(t, Log.Enabled(t.Context(), slog.LevelDebug))

	InitWithConfig(Config{Level: "error", Format: "json", Output: "stdout"})
	assert.False(t, Log.Enabled(t.Context(), slog.LevelInfo))
}

func TestWithRequestID(t *testing.T) {
	Init("info")
	l := WithRequestID("req-123")
	require.NotNil(t, l)
	assert.NotSame(t, Log, l)
}
