package cliconfig

import "os"

// EnvPrefix prefixes every environment variable read by ApplyEnvConfig.
const EnvPrefix = "SWITCHYARD_"

// ApplyEnvConfig applies SWITCHYARD_* environment variables, skipping flags
// in changed. It fails on malformed numbers or durations.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("log-level", os.Getenv(EnvPrefix+"LOG_LEVEL"), &cfg.LogLevel)
	s.setString("log-format", os.Getenv(EnvPrefix+"LOG_FORMAT"), &cfg.LogFormat)
	s.setString("log-file", os.Getenv(EnvPrefix+"LOG_FILE"), &cfg.LogFile)
	s.setString("metrics-addr", os.Getenv(EnvPrefix+"METRICS_ADDR"), &cfg.MetricsAddr)

	if err := s.setIntFromString("history-capacity", os.Getenv(EnvPrefix+"HISTORY_CAPACITY"), &cfg.HistoryCapacity); err != nil {
		return err
	}
	return s.setDuration("watch-debounce", os.Getenv(EnvPrefix+"WATCH_DEBOUNCE"), &cfg.WatchDebounce)
}
