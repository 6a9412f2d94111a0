package main

import (
	"context"
	"embed"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/bft-labs/switchyard"
	httpadapter "github.com/bft-labs/switchyard/internal/adapters/http"
	"github.com/bft-labs/switchyard/internal/scenario"
	"github.com/bft-labs/switchyard/internal/showcase"
	"github.com/bft-labs/switchyard/pkg/log"
	"github.com/bft-labs/switchyard/pkg/metrics"
	"github.com/bft-labs/switchyard/plugins/scenariowatcher"
)

//go:embed scenarios
var demoScenarios embed.FS

const shutdownTimeout = 5 * time.Second

func (a *app) component(name string) log.Logger {
	if z, ok := a.logger.(*log.Zerolog); ok {
		return z.Component(name)
	}
	return a.logger
}

func (a *app) runScenario(sc *scenario.Scenario, out io.Writer, opts ...switchyard.Option) (*scenario.Result, error) {
	opts = append([]switchyard.Option{switchyard.WithLogger(a.component("core"))}, opts...)
	res, err := scenario.Run(sc, a.cfg.Core(), opts...)
	if err != nil {
		return nil, err
	}
	_, err = fmt.Fprintln(out, res.String())
	return res, err
}

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run <scenario>",
		Short: "Run a scenario file once and print its transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := scenario.Load(args[0])
			if err != nil {
				return fmt.Errorf("load scenario: %w", err)
			}
			_, err = a.runScenario(sc, cmd.OutOrStdout())
			return err
		},
	}
}

func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the built-in scenarios and the pattern showcase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, name := range []string{"undo.toml", "chat.yaml"} {
				data, err := demoScenarios.ReadFile(path.Join("scenarios", name))
				if err != nil {
					return err
				}
				sc, err := scenario.Parse(data, path.Ext(name)[1:])
				if err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
				fmt.Fprintf(out, "== %s\n", name)
				if _, err := a.runScenario(sc, out); err != nil {
					return err
				}
			}
			return showcase.Write(out)
		},
	}
}

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <scenario>",
		Short: "Re-run a scenario every time the file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.watch(ctx, args[0], cmd.OutOrStdout())
		},
	}
}

// watch blocks until ctx is done.
func (a *app) watch(ctx context.Context, file string, out io.Writer) error {
	reg := prometheus.NewRegistry()
	collector, err := metrics.New(reg)
	if err != nil {
		return err
	}

	var (
		mu     sync.Mutex
		status httpadapter.Status
	)
	logger := a.component("watch")

	run := func(_ context.Context, p string) {
		mu.Lock()
		status.Runs++
		n := status.Runs
		mu.Unlock()

		fmt.Fprintf(out, "== run %d: %s\n", n, p)
		sc, err := scenario.Load(p)
		if err != nil {
			logger.Warn("scenario not loaded", log.String("path", p), log.Err(err))
			fmt.Fprintf(out, "error: %v\n", err)
			return
		}
		res, err := a.runScenario(sc, out, switchyard.WithMetrics(collector))
		if err != nil {
			logger.Error("scenario run failed", log.String("path", p), log.Err(err))
			return
		}

		mu.Lock()
		status.Endpoints = res.Core.Router.Len()
		status.History = res.Core.History.Len()
		mu.Unlock()
	}

	w := scenariowatcher.New(file, run, scenariowatcher.Config{DebounceDelay: a.cfg.WatchDebounce}, logger)

	var srvDone chan error
	if a.cfg.MetricsAddr != "" {
		handler := httpadapter.NewHandler(reg, func() httpadapter.Status {
			mu.Lock()
			s := status
			mu.Unlock()
			s.Status = strings.ToLower(w.State().String())
			return s
		})
		srv := httpadapter.NewServer(a.cfg.MetricsAddr, handler, a.component("http"))
		srvDone = make(chan error, 1)
		go func() { srvDone <- srv.ListenAndServe(ctx) }()
	}

	if err := w.Start(ctx); err != nil {
		return err
	}

	var srvErr error
	select {
	case <-ctx.Done():
		logger.Info("stopping")
	case srvErr = <-srvDone:
		srvDone = nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := w.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("stop watcher: %w", err)
	}
	if srvDone != nil {
		srvErr = <-srvDone
	}
	if srvErr != nil {
		return fmt.Errorf("metrics server: %w", srvErr)
	}
	return nil
}
