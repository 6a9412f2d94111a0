package cliconfig

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/switchyard"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, switchyard.DefaultHistoryCapacity, cfg.HistoryCapacity)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, LogFormatAuto, cfg.LogFormat)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	valid := func(mut func(*Config)) Config {
		c := DefaultConfig()
		mut(&c)
		return c
	}

	tests := []struct {
		name       string
		config     Config
		wantErr    bool
		wantLevel  string
		wantFormat string
	}{
		{
			name:   "defaults",
			config: DefaultConfig(),
		},
		{
			name:    "zero capacity",
			config:  valid(func(c *Config) { c.HistoryCapacity = 0 }),
			wantErr: true,
		},
		{
			name:    "negative capacity",
			config:  valid(func(c *Config) { c.HistoryCapacity = -3 }),
			wantErr: true,
		},
		{
			name:      "level is normalised",
			config:    valid(func(c *Config) { c.LogLevel = " DEBUG " }),
			wantLevel: "debug",
		},
		{
			name:      "empty level defaults to info",
			config:    valid(func(c *Config) { c.LogLevel = "" }),
			wantLevel: "info",
		},
		{
			name:    "unknown level",
			config:  valid(func(c *Config) { c.LogLevel = "loud" }),
			wantErr: true,
		},
		{
			name:       "empty format defaults to auto",
			config:     valid(func(c *Config) { c.LogFormat = "" }),
			wantFormat: LogFormatAuto,
		},
		{
			name:       "json format",
			config:     valid(func(c *Config) { c.LogFormat = "JSON" }),
			wantFormat: LogFormatJSON,
		},
		{
			name:    "unknown format",
			config:  valid(func(c *Config) { c.LogFormat = "xml" }),
			wantErr: true,
		},
		{
			name:    "zero debounce",
			config:  valid(func(c *Config) { c.WatchDebounce = 0 }),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, switchyard.ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			if tt.wantLevel != "" {
				assert.Equal(t, tt.wantLevel, tt.config.LogLevel)
			}
			if tt.wantFormat != "" {
				assert.Equal(t, tt.wantFormat, tt.config.LogFormat)
			}
		})
	}
}

func TestConfig_Core(t *testing.T) {
	cfg := Config{HistoryCapacity: 4, WatchDebounce: time.Second}
	assert.Equal(t, 4, cfg.Core().HistoryCapacity)
}
