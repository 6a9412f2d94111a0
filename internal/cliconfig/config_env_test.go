package cliconfig

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all valid env vars",
			envVars: map[string]string{
				"SWITCHYARD_HISTORY_CAPACITY": "12",
				"SWITCHYARD_LOG_LEVEL":        "debug",
				"SWITCHYARD_LOG_FORMAT":       "console",
				"SWITCHYARD_LOG_FILE":         "/tmp/sy.log",
				"SWITCHYARD_METRICS_ADDR":     ":2112",
				"SWITCHYARD_WATCH_DEBOUNCE":   "2s",
			},
			changed: map[string]bool{},
			expected: Config{
				HistoryCapacity: 12,
				LogLevel:        "debug",
				LogFormat:       "console",
				LogFile:         "/tmp/sy.log",
				MetricsAddr:     ":2112",
				WatchDebounce:   2 * time.Second,
			},
		},
		{
			name: "respects changed flags",
			envVars: map[string]string{
				"SWITCHYARD_HISTORY_CAPACITY": "12",
				"SWITCHYARD_LOG_LEVEL":        "debug",
			},
			changed:  map[string]bool{"log-level": true},
			initial:  Config{LogLevel: "error"},
			expected: Config{HistoryCapacity: 12, LogLevel: "error"},
		},
		{
			name:     "non-positive capacity is ignored",
			envVars:  map[string]string{"SWITCHYARD_HISTORY_CAPACITY": "0"},
			changed:  map[string]bool{},
			initial:  Config{HistoryCapacity: 5},
			expected: Config{HistoryCapacity: 5},
		},
		{
			name:    "returns error for invalid int",
			envVars: map[string]string{"SWITCHYARD_HISTORY_CAPACITY": "lots"},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name:    "returns error for invalid duration",
			envVars: map[string]string{"SWITCHYARD_WATCH_DEBOUNCE": "not-a-duration"},
			changed: map[string]bool{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg)
		})
	}
}

// Integration test: precedence order (CLI > Env > File)
func TestConfigPrecedence(t *testing.T) {
	fileConf := FileConfig{
		HistoryCapacity: 3,
		LogLevel:        "warn",
		MetricsAddr:     ":9000",
	}

	t.Setenv("SWITCHYARD_LOG_LEVEL", "debug")
	t.Setenv("SWITCHYARD_HISTORY_CAPACITY", "8")

	changed := map[string]bool{"history-capacity": true}
	cfg := Config{HistoryCapacity: 2}

	require.NoError(t, ApplyFileConfig(&cfg, fileConf, changed))
	require.NoError(t, ApplyEnvConfig(&cfg, changed))

	assert.Equal(t, 2, cfg.HistoryCapacity, "CLI wins")
	assert.Equal(t, "debug", cfg.LogLevel, "env overrides file")
	assert.Equal(t, ":9000", cfg.MetricsAddr, "file sets what nothing else does")
}
