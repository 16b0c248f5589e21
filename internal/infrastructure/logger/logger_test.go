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

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "WARNING", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "", want: slog.LevelInfo},
		{in: "verbose", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.in))
		})
	}
}

func TestFilterHandler(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(newHandler(&buf, Options{Mute: []string{"JSON-RPC Server Endpoint"}}))

	log.Info("JSON-RPC Server Endpoint: http://zabbix/api_jsonrpc.php")
	log.With("host", "web-01").Info("JSON-RPC Server Endpoint again")
	log.Info("Served items history", "items", 1)

	out := buf.String()
	assert.NotContains(t, out, "JSON-RPC")
	assert.Contains(t, out, "Served items history")
}

func TestNewHandler_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(newHandler(&buf, Options{Format: "JSON", Level: "debug"}))

	log.Debug("probe", "k", "v")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "probe", record["msg"])
	assert.Equal(t, "v", record["k"])
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zbxstats.log")
	l := New(Options{Output: path, Level: "warn"})

	l.Info("dropped")
	l.Warn("kept")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(data), "dropped"))
	assert.Contains(t, string(data), "kept")
	assert.Same(t, l.Logger, l.SLog())
}
