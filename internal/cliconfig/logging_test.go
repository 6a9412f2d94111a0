package cliconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_FileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "switchyard.log")
	cfg := DefaultConfig()
	cfg.LogFile = path
	cfg.LogFormat = LogFormatJSON
	cfg.LogLevel = "warn"

	logger, closer := NewLogger(cfg, os.Stderr)
	logger.Info().Msg("dropped")
	logger.Warn().Str("endpoint", "alice").Msg("kept")
	require.NoError(t, closer.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "alice", entry["endpoint"])
}

func TestUseConsole(t *testing.T) {
	assert.True(t, useConsole(LogFormatConsole, true, nil), "console format always uses the console writer")
	assert.False(t, useConsole(LogFormatJSON, true, os.Stderr), "json format never uses the console writer")
	assert.False(t, useConsole(LogFormatAuto, false, os.Stderr), "auto format writing to a file is JSON")
}
