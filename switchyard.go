// Package switchyard bundles a bounded undo history and a named-endpoint
// message router.
//
// Example usage:
//
//	core, err := switchyard.New(switchyard.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	light := devices.NewLight("hall")
//	_ = core.History.Execute(devices.LightOn(light))
//
//	alice := switchyard.NewEndpoint("alice", router.NewInbox())
//	_ = core.Router.Register(alice)
//
// The two halves are independent; use pkg/actionlog or pkg/router directly
// when only one is needed.
package switchyard

import (
	"fmt"

	"github.com/bft-labs/switchyard/internal/domain"
	"github.com/bft-labs/switchyard/pkg/actionlog"
	"github.com/bft-labs/switchyard/pkg/log"
	"github.com/bft-labs/switchyard/pkg/metrics"
	"github.com/bft-labs/switchyard/pkg/router"
)

// DefaultHistoryCapacity is the history size used by DefaultConfig.
const DefaultHistoryCapacity = 10

// Re-exported types for callers that only import the root package.
type (
	ReversibleAction = actionlog.ReversibleAction
	ActionLog        = actionlog.Log
	Router           = router.Router
	Endpoint         = router.Endpoint
	Message          = router.Message
	Receiver         = router.Receiver
)

// Errors, matchable with errors.Is.
var (
	ErrNilAction           = domain.ErrNilAction
	ErrEmptyHistory        = domain.ErrEmptyHistory
	ErrInvalidCapacity     = domain.ErrInvalidCapacity
	ErrDuplicateName       = domain.ErrDuplicateName
	ErrNotConnected        = domain.ErrNotConnected
	ErrSenderNotRegistered = domain.ErrSenderNotRegistered
	ErrRecipientNotFound   = domain.ErrRecipientNotFound
	ErrNilEndpoint         = domain.ErrNilEndpoint
	ErrInvalidName         = domain.ErrInvalidName
	ErrAlreadyBound        = domain.ErrAlreadyBound
	ErrInvalidConfig       = domain.ErrInvalidConfig
)

// Config holds the settings for a Core.
type Config struct {
	// HistoryCapacity bounds the undo history. Must be positive.
	HistoryCapacity int
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{HistoryCapacity: DefaultHistoryCapacity}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.HistoryCapacity <= 0 {
		return fmt.Errorf("%w: history capacity must be positive, got %d", ErrInvalidConfig, c.HistoryCapacity)
	}
	return nil
}

// Core is one action log and one router built from the same options.
type Core struct {
	History *actionlog.Log
	Router  *router.Router
}

// Option configures New.
type Option func(*options)

type options struct {
	logger  log.Logger
	metrics *metrics.Collector
}

// WithLogger sets the logger passed to both components.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics attaches a metrics collector to both components.
func WithMetrics(c *metrics.Collector) Option {
	return func(o *options) {
		o.metrics = c
	}
}

// New validates cfg and builds a Core.
func New(cfg Config, opts ...Option) (*Core, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logOpts := []actionlog.Option{actionlog.WithLogger(o.logger)}
	routeOpts := []router.Option{router.WithLogger(o.logger)}
	if o.metrics != nil {
		logOpts = append(logOpts, actionlog.WithObserver(o.metrics))
		routeOpts = append(routeOpts, router.WithObserver(o.metrics))
	}

	history, err := actionlog.New(cfg.HistoryCapacity, logOpts...)
	if err != nil {
		return nil, err
	}

	return &Core{
		History: history,
		Router:  router.New(routeOpts...),
	}, nil
}

// NewEndpoint creates an unregistered endpoint.
func NewEndpoint(name string, receiver Receiver) *Endpoint {
	return router.NewEndpoint(name, receiver)
}
