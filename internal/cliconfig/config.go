package cliconfig

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/switchyard"
)

// Log formats accepted by Config.LogFormat.
const (
	LogFormatAuto    = "auto"
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Config holds CLI configuration for switchyard.
type Config struct {
	HistoryCapacity int

	LogLevel  string
	LogFormat string
	LogFile   string

	MetricsAddr   string
	WatchDebounce time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		HistoryCapacity: switchyard.DefaultHistoryCapacity,
		LogLevel:        "info",
		LogFormat:       LogFormatAuto,
		WatchDebounce:   200 * time.Millisecond,
	}
}

// Validate checks the configuration for errors and normalises values.
func (c *Config) Validate() error {
	if c.HistoryCapacity <= 0 {
		return fmt.Errorf("%w: history-capacity must be positive", switchyard.ErrInvalidConfig)
	}

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log-level %q", switchyard.ErrInvalidConfig, c.LogLevel)
	}

	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	switch c.LogFormat {
	case "":
		c.LogFormat = LogFormatAuto
	case LogFormatAuto, LogFormatConsole, LogFormatJSON:
	default:
		return fmt.Errorf("%w: log-format %q (want auto, console or json)", switchyard.ErrInvalidConfig, c.LogFormat)
	}

	if c.WatchDebounce <= 0 {
		return fmt.Errorf("%w: watch-debounce must be positive", switchyard.ErrInvalidConfig)
	}
	return nil
}

// Core returns the library configuration derived from c.
func (c Config) Core() switchyard.Config {
	return switchyard.Config{HistoryCapacity: c.HistoryCapacity}
}

// configSetter applies values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setIntFromString is setInt for values that arrive as strings (env vars).
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	s.setInt(flag, i, dst)
	return nil
}
