package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/switchyard/internal/cliconfig"
	"github.com/bft-labs/switchyard/pkg/log"
)

const helpDescription = `
Drive a bounded undo history and a named-endpoint message router from
scenario files.

A scenario declares devices (light, door, thermostat, tv) and an ordered list
of steps: execute, undo, undo_n, register, unregister, send and status. The
transcript shows each step and every message it caused.

Configuration comes from flags, SWITCHYARD_* environment variables and
$HOME/.switchyard/config.toml, in that order of precedence.
`

var exampleUsage = strings.TrimSpace(`
  switchyard run chat.yaml
  switchyard watch undo.toml --metrics-addr :9090
  switchyard demo
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// app carries the resolved configuration and logger to subcommands.
type app struct {
	cfg     cliconfig.Config
	cfgPath string

	logger log.Logger
	closer io.Closer
}

func newRootCmd(a *app) *cobra.Command {
	a.cfg = cliconfig.DefaultConfig()
	a.logger = log.NewNoopLogger()

	root := &cobra.Command{
		Use:           "switchyard",
		Short:         "Replayable device commands and a named-endpoint message router",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.loadConfig(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgPath, "config", "", "path to config file (default: $HOME/.switchyard/config.toml)")
	flags.IntVar(&a.cfg.HistoryCapacity, "history-capacity", a.cfg.HistoryCapacity, "undo history size when a scenario does not set one")
	flags.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "log level (trace, debug, info, warn, error)")
	flags.StringVar(&a.cfg.LogFormat, "log-format", a.cfg.LogFormat, "log format (auto, console, json)")
	flags.StringVar(&a.cfg.LogFile, "log-file", a.cfg.LogFile, "write logs to a rotated file instead of stderr")
	flags.StringVar(&a.cfg.MetricsAddr, "metrics-addr", a.cfg.MetricsAddr, "serve /metrics and /healthz on this address while watching")
	flags.DurationVar(&a.cfg.WatchDebounce, "watch-debounce", a.cfg.WatchDebounce, "quiet period before re-running a changed scenario")

	root.AddCommand(newRunCmd(a), newWatchCmd(a), newDemoCmd(a))
	return root
}

// loadConfig applies the config file, then the environment, without
// overriding flags the user set explicitly.
func (a *app) loadConfig(cmd *cobra.Command) error {
	cfgFile := a.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&a.cfg, fc, changed); err != nil {
			return err
		}
	}

	if err := cliconfig.ApplyEnvConfig(&a.cfg, changed); err != nil {
		return err
	}

	if err := a.cfg.Validate(); err != nil {
		return err
	}

	zl, closer := cliconfig.NewLogger(a.cfg, os.Stderr)
	a.logger, a.closer = log.NewZerolog(zl), closer
	a.logger.Debug("configuration", log.Any("config", a.cfg))
	return nil
}

func (a *app) close() {
	if a.closer != nil {
		_ = a.closer.Close()
	}
}

func main() {
	a := &app{}
	root := newRootCmd(a)

	err := root.Execute()
	if err != nil {
		a.logger.Error("switchyard", log.Err(err))
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	a.close()
	if err != nil {
		os.Exit(1)
	}
}
