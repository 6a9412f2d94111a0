package actionlog

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/bft-labs/switchyard/internal/domain"
	"github.com/bft-labs/switchyard/pkg/log"
)

// Errors returned by Log, matchable with errors.Is.
var (
	ErrNilAction       = domain.ErrNilAction
	ErrEmptyHistory    = domain.ErrEmptyHistory
	ErrInvalidCapacity = domain.ErrInvalidCapacity
)

// Log is a bounded undo history.
type Log struct {
	mu       sync.Mutex
	capacity int
	// entries is kept oldest first; the front of the history is the last element.
	entries []ReversibleAction

	logger    log.Logger
	observers []Observer
}

// New creates an empty log holding at most capacity actions.
func New(capacity int, opts ...Option) (*Log, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return &Log{
		capacity:  capacity,
		entries:   make([]ReversibleAction, 0, capacity),
		logger:    log.OrNoop(o.logger),
		observers: o.observers,
	}, nil
}

// Execute applies action and records it. If the history is full, the oldest
// entry is discarded without being reverted. A nil action, including a nil
// pointer of a concrete type, returns ErrNilAction.
func (l *Log) Execute(action ReversibleAction) error {
	if isNil(action) {
		return ErrNilAction
	}

	evicted, size := l.record(action)

	l.logger.Debug("action executed",
		log.String("action", NameOf(action)),
		log.Int("history", size),
		log.Bool("evicted", evicted != nil),
	)
	for _, o := range l.observers {
		o.OnExecute(action)
	}

	if evicted != nil {
		l.logger.Debug("action evicted", log.String("action", NameOf(evicted)))
		for _, o := range l.observers {
			o.OnEvict(evicted)
		}
	}
	return nil
}

// UndoLast removes the most recent action and reverts it.
// It returns the reverted action, or ErrEmptyHistory.
func (l *Log) UndoLast() (ReversibleAction, error) {
	action, ok := l.revertFront()
	if !ok {
		return nil, ErrEmptyHistory
	}

	l.logger.Debug("action undone", log.String("action", NameOf(action)))
	for _, o := range l.observers {
		o.OnUndo(action)
	}
	return action, nil
}

// UndoMultiple undoes up to n actions, stopping early when the history runs
// out. It returns how many were undone. The error is always nil; running out
// of history is not a failure here.
func (l *Log) UndoMultiple(n int) (int, error) {
	undone := 0
	for undone < n {
		if _, err := l.UndoLast(); err != nil {
			break
		}
		undone++
	}
	if n > 0 {
		l.logger.Debug("undo batch",
			log.Int("requested", n),
			log.Int("undone", undone),
		)
	}
	return undone, nil
}

// Len returns the number of undoable actions.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Capacity returns the fixed capacity.
func (l *Log) Capacity() int {
	return l.capacity
}

// Entries returns a snapshot of the history, most recent first.
func (l *Log) Entries() []ReversibleAction {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]ReversibleAction, len(l.entries))
	for i, a := range l.entries {
		out[len(l.entries)-1-i] = a
	}
	return out
}

// record applies action and pushes it, returning the evicted entry (if any)
// and the resulting history length.
func (l *Log) record(action ReversibleAction) (ReversibleAction, int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	action.Apply()

	var evicted ReversibleAction
	if len(l.entries) == l.capacity {
		evicted = l.entries[0]
		copy(l.entries, l.entries[1:])
		l.entries[len(l.entries)-1] = action
	} else {
		l.entries = append(l.entries, action)
	}
	return evicted, len(l.entries)
}

// revertFront pops the most recent entry and reverts it.
func (l *Log) revertFront() (ReversibleAction, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := len(l.entries)
	if n == 0 {
		return nil, false
	}
	action := l.entries[n-1]
	l.entries[n-1] = nil
	l.entries = l.entries[:n-1]
	action.Revert()
	return action, true
}

func isNil(action ReversibleAction) bool {
	if action == nil {
		return true
	}
	v := reflect.ValueOf(action)
	switch v.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan:
		return v.IsNil()
	}
	return false
}
