package logger

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

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    LogLevel
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"DEBUG", LevelDebug, false},
		{"", LevelInfo, false},
		{"info", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"verbose", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUninitializedLoggerIsSilent(t *testing.T) {
	prevLog := Log
	Log = nil
	t.Cleanup(func() { Log = prevLog })

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	Info("should not appear")
	Error("nor this")
	With("k", "v").Warn("or this")

	assert.Empty(t, buf.String())
}

func TestInitLogger_WritesJSONAtLevel(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nested", "sqlcreds.log")

	prev := slog.Default()
	InitLogger(LevelInfo, logPath)
	t.Cleanup(func() {
		Close()
		Log = nil
		slog.SetDefault(prev)
	})

	Debug("hidden message")
	Info("visible message", "profile", "prod")
	Close()

	assert.Equal(t, logPath, LogPath)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "visible message", entry["msg"])
	assert.Equal(t, "prod", entry["profile"])
}
