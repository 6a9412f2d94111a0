package router

import "github.com/bft-labs/switchyard/pkg/log"

// Observer is notified of router activity. Calls happen outside the registry
// lock, in the goroutine that triggered them.
type Observer interface {
	OnRegister(name string, members int)
	OnUnregister(name string, members int)
	OnDeliver(to string, msg Message)
	OnReject(from string, err error)
}

// Option configures a Router.
type Option func(*options)

type options struct {
	logger    log.Logger
	observers []Observer
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithObserver adds an observer.
func WithObserver(observer Observer) Option {
	return func(o *options) {
		if observer != nil {
			o.observers = append(o.observers, observer)
		}
	}
}
