package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func readEntries(t *testing.T, path string) []map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestNew_Outputs(t *testing.T) {
	for _, cfg := range []Config{
		{},
		{Level: "debug", Format: "console", Output: "stdout"},
		{Level: "error", Format: "json", Output: "stderr"},
	} {
		log, err := New(cfg)
		require.NoError(t, err)
		assert.NotNil(t, log)
	}
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.log")
	log, err := New(Config{Level: "info", Format: "json", Output: path, TimeFormat: "2006-01-02"},
		WithFields(zap.String("app", "shopping-app")))
	require.NoError(t, err)

	log.Info("order placed", zap.String("order_number", "ORD-000001"))
	log.Debug("hidden")
	require.NoError(t, log.Sync())

	entries := readEntries(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, "order placed", entries[0]["msg"])
	assert.Equal(t, "info", entries[0]["level"])
	assert.Equal(t, "ORD-000001", entries[0]["order_number"])
	assert.Equal(t, "shopping-app", entries[0]["app"])
	assert.Len(t, entries[0]["time"], len("2006-01-02"))
}

func TestNew_UnwritableFile(t *testing.T) {
	_, err := New(Config{Output: filepath.Join(t.TempDir(), "missing", "dir", "shop.log")})
	assert.ErrorContains(t, err, "open log file")
}

func TestNew_ErrorsCarryStacktrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.log")
	log, err := New(Config{Format: "json", Output: path})
	require.NoError(t, err)

	log.Warn("coupon nearly exhausted")
	log.Error("payment callback rejected")
	require.NoError(t, log.Sync())

	entries := readEntries(t, path)
	require.Len(t, entries, 2)
	assert.NotContains(t, entries[0], "stacktrace")
	assert.Contains(t, entries[1], "stacktrace")
}

func TestWithCore_TeesEntries(t *testing.T) {
	extra, recorded := observer.New(zapcore.DebugLevel)

	log, err := New(Config{Level: "error", Format: "json", Output: "stderr"}, WithCore(extra), WithCore(nil))
	require.NoError(t, err)

	log.Info("coupon redeemed", zap.String("code", "SAVE10"))

	entries := recorded.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "SAVE10", entries[0].ContextMap()["code"])
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"Warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"fatal":   zapcore.FatalLevel,
		"verbose": zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
	}
	for level, want := range tests {
		assert.Equal(t, want, ParseLevel(level), "level %q", level)
	}
}
