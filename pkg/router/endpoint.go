package router

import (
	"sync"

	"github.com/bft-labs/switchyard/internal/domain"
)

// State is an endpoint's membership relative to a router.
type State int

const (
	StateUnregistered State = iota
	StateRegistered
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateUnregistered:
		return "Unregistered"
	case StateRegistered:
		return "Registered"
	default:
		return "Unknown"
	}
}

// Endpoint is a named participant. The creator owns it; a router only keeps
// a registration record pointing at it while it is registered.
type Endpoint struct {
	name     string
	receiver Receiver

	mu     sync.RWMutex
	router *Router
}

// NewEndpoint creates an unregistered endpoint. A nil receiver discards
// deliveries.
func NewEndpoint(name string, receiver Receiver) *Endpoint {
	if receiver == nil {
		receiver = ReceiverFunc(func(Message) {})
	}
	return &Endpoint{name: name, receiver: receiver}
}

// Name returns the endpoint's name.
func (e *Endpoint) Name() string { return e.name }

// Router returns the router the endpoint is bound to, or nil.
func (e *Endpoint) Router() *Router {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.router
}

// State reports whether the endpoint is currently bound to a router.
func (e *Endpoint) State() State {
	if e.Router() == nil {
		return StateUnregistered
	}
	return StateRegistered
}

// Send broadcasts payload to every other endpoint on the bound router.
func (e *Endpoint) Send(payload string) error {
	return e.SendTo("", payload)
}

// SendTo sends payload to the endpoint named to, or broadcasts when to is
// empty. It fails with ErrNotConnected when the endpoint has no router.
func (e *Endpoint) SendTo(to, payload string) error {
	r := e.Router()
	if r == nil {
		return domain.ErrNotConnected
	}
	return r.Send(payload, e, to)
}

// Receive hands msg to the endpoint's receiver.
func (e *Endpoint) Receive(msg Message) {
	e.receiver.Receive(msg)
}

// bind sets the back reference if the endpoint is free (or already bound to r).
func (e *Endpoint) bind(r *Router) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.router != nil && e.router != r {
		return false
	}
	e.router = r
	return true
}

func (e *Endpoint) unbind(r *Router) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.router == r {
		e.router = nil
	}
}
