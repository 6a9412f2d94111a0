package actionlog

import "github.com/bft-labs/switchyard/pkg/log"

// Observer is notified after the log changes. Calls happen after the log's
// lock is released, in the goroutine that made the change.
type Observer interface {
	OnExecute(action ReversibleAction)
	OnUndo(action ReversibleAction)
	OnEvict(action ReversibleAction)
}

// Option configures a Log.
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

// WithObserver adds an observer. Observers are called in registration order.
func WithObserver(observer Observer) Option {
	return func(o *options) {
		if observer != nil {
			o.observers = append(o.observers, observer)
		}
	}
}
