package router

import (
	"sync"

	"github.com/bft-labs/switchyard/internal/domain"
)

// Message and Kind are shared with the rest of switchyard.
type (
	Message = domain.Message
	Kind    = domain.Kind
)

const (
	KindSystem    = domain.KindSystem
	KindBroadcast = domain.KindBroadcast
	KindDirected  = domain.KindDirected
)

// Receiver accepts deliveries. Receive must not fail and should return
// promptly.
type Receiver interface {
	Receive(msg Message)
}

// ReceiverFunc adapts a function to Receiver.
type ReceiverFunc func(msg Message)

// Receive calls f(msg).
func (f ReceiverFunc) Receive(msg Message) { f(msg) }

// Inbox is a Receiver that records every message it gets.
type Inbox struct {
	mu       sync.Mutex
	messages []Message
}

// NewInbox returns an empty inbox.
func NewInbox() *Inbox {
	return &Inbox{}
}

// Receive records msg.
func (in *Inbox) Receive(msg Message) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.messages = append(in.messages, msg)
}

// Messages returns a copy of everything received so far.
func (in *Inbox) Messages() []Message {
	in.mu.Lock()
	defer in.mu.Unlock()
	return append([]Message(nil), in.messages...)
}

// Drain returns everything received so far and empties the inbox.
func (in *Inbox) Drain() []Message {
	in.mu.Lock()
	defer in.mu.Unlock()
	out := in.messages
	in.messages = nil
	return out
}

// Len returns the number of recorded messages.
func (in *Inbox) Len() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return len(in.messages)
}
