package scenariowatcher

import (
	"errors"
	"fmt"

	"github.com/bft-labs/switchyard/pkg/log"
)

// Watcher errors.
var (
	ErrAlreadyRunning    = errors.New("scenariowatcher: already running")
	ErrInvalidTransition = errors.New("scenariowatcher: invalid state transition")
)

// State is the watcher's lifecycle state.
type State int

const (
	StateStopped State = iota
	StateStarting
	StateRunning
	StateStopping
	StateFailed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StateStarting:
		return "Starting"
	case StateRunning:
		return "Running"
	case StateStopping:
		return "Stopping"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// canTransition reports whether from -> to is allowed.
func canTransition(from, to State) bool {
	switch from {
	case StateStopped, StateFailed:
		return to == StateStarting
	case StateStarting:
		return to == StateRunning || to == StateFailed
	case StateRunning:
		return to == StateStopping
	case StateStopping:
		return to == StateStopped || to == StateFailed
	}
	return false
}

// State returns the current lifecycle state.
func (p *Plugin) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Plugin) transition(to State, reason string) error {
	p.mu.Lock()
	from := p.state
	if !canTransition(from, to) {
		p.mu.Unlock()
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	p.state = to
	p.mu.Unlock()

	p.logger.Debug("state transition",
		log.String("from", from.String()),
		log.String("to", to.String()),
		log.String("reason", reason),
	)
	return nil
}
