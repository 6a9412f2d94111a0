// Package scenariowatcher re-runs a scenario file whenever it changes.
// Bursts of writes are collapsed into one run after a quiet period.
package scenariowatcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/switchyard/pkg/log"
)

// RunFunc runs the scenario at path. Runs never overlap.
type RunFunc func(ctx context.Context, path string)

// Config holds configuration options for the watcher.
type Config struct {
	// DebounceDelay is the quiet period after the last change before running.
	// Default: 200 milliseconds
	DebounceDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{DebounceDelay: 200 * time.Millisecond}
}

// Plugin watches one scenario file.
type Plugin struct {
	path          string
	run           RunFunc
	debounceDelay time.Duration
	logger        log.Logger

	mu       sync.Mutex
	state    State
	debounce *time.Timer
	cancel   context.CancelFunc
	wg       sync.WaitGroup

	runMu sync.Mutex
}

// New creates a watcher for path.
func New(path string, run RunFunc, cfg Config, logger log.Logger) *Plugin {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = DefaultConfig().DebounceDelay
	}
	return &Plugin{
		path:          filepath.Clean(path),
		run:           run,
		debounceDelay: cfg.DebounceDelay,
		logger:        log.OrNoop(logger),
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "scenariowatcher"
}

// Start runs the scenario once and then watches its directory until ctx is
// cancelled or Shutdown is called. The parent directory is watched so that
// replace-on-save is seen. Start fails with ErrAlreadyRunning unless the
// watcher is stopped or failed.
func (p *Plugin) Start(ctx context.Context) error {
	if err := p.transition(StateStarting, "start"); err != nil {
		return ErrAlreadyRunning
	}

	watcher, err := p.newWatcher()
	if err != nil {
		_ = p.transition(StateFailed, err.Error())
		return err
	}

	watchCtx, cancel := context.WithCancel(ctx)
	p.mu.Lock()
	p.cancel = cancel
	p.mu.Unlock()

	p.runNow(watchCtx)

	p.wg.Add(1)
	go p.watchLoop(watchCtx, watcher)

	if err := p.transition(StateRunning, "watching"); err != nil {
		return err
	}
	p.logger.Info("watching scenario",
		log.String("path", p.path),
		log.Duration("debounce", p.debounceDelay),
	)
	return nil
}

func (p *Plugin) newWatcher() (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(p.path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(p.path), err)
	}
	return watcher, nil
}

// Shutdown stops the watcher and waits for any run in progress. It is a
// no-op unless the watcher is running. If ctx ends first the watcher is
// left Failed and may be started again.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if err := p.transition(StateStopping, "shutdown"); err != nil {
		return nil
	}

	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		p.runMu.Lock()
		p.runMu.Unlock()
		close(done)
	}()

	select {
	case <-done:
		return p.transition(StateStopped, "shutdown complete")
	case <-ctx.Done():
		_ = p.transition(StateFailed, "shutdown timed out")
		return ctx.Err()
	}
}

func (p *Plugin) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer p.wg.Done()
	defer watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != p.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			p.debounceRun(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("watcher error", log.Err(err))
		}
	}
}

func (p *Plugin) debounceRun(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.debounce = time.AfterFunc(p.debounceDelay, func() {
		p.runNow(ctx)
	})
}

func (p *Plugin) runNow(ctx context.Context) {
	p.runMu.Lock()
	defer p.runMu.Unlock()

	if ctx.Err() != nil {
		return
	}
	p.logger.Debug("running scenario", log.String("path", p.path))
	p.run(ctx, p.path)
}
