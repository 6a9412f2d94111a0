package router

import (
	"fmt"
	"sync"

	"github.com/bft-labs/switchyard/internal/domain"
	"github.com/bft-labs/switchyard/pkg/log"
)

// Errors returned (or, for ErrRecipientNotFound, delivered) by the router.
var (
	ErrDuplicateName       = domain.ErrDuplicateName
	ErrNotConnected        = domain.ErrNotConnected
	ErrSenderNotRegistered = domain.ErrSenderNotRegistered
	ErrRecipientNotFound   = domain.ErrRecipientNotFound
	ErrNilEndpoint         = domain.ErrNilEndpoint
	ErrInvalidName         = domain.ErrInvalidName
	ErrAlreadyBound        = domain.ErrAlreadyBound
)

// Router routes messages between registered endpoints.
type Router struct {
	mu       sync.RWMutex
	registry map[string]*Endpoint
	// members holds the registry in registration order so fan-out is stable.
	members []*Endpoint

	logger    log.Logger
	observers []Observer
}

// New creates an empty router.
func New(opts ...Option) *Router {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Router{
		registry:  make(map[string]*Endpoint),
		logger:    log.OrNoop(o.logger),
		observers: o.observers,
	}
}

// Register adds e under its name and notifies the other members.
// An existing registration with the same name is left untouched.
func (r *Router) Register(e *Endpoint) error {
	if e == nil {
		return ErrNilEndpoint
	}
	if e.name == "" {
		return ErrInvalidName
	}

	r.mu.Lock()
	if _, taken := r.registry[e.name]; taken {
		r.mu.Unlock()
		r.reject(e.name, ErrDuplicateName)
		return fmt.Errorf("%w: %q", ErrDuplicateName, e.name)
	}
	if !e.bind(r) {
		r.mu.Unlock()
		r.reject(e.name, ErrAlreadyBound)
		return fmt.Errorf("%w: %q", ErrAlreadyBound, e.name)
	}
	r.registry[e.name] = e
	r.members = append(r.members, e)
	others := r.snapshotExcept(e)
	count := len(r.members)
	r.mu.Unlock()

	r.logger.Info("endpoint registered",
		log.String("endpoint", e.name),
		log.Int("members", count),
	)
	for _, o := range r.observers {
		o.OnRegister(e.name, count)
	}

	r.deliver(others, Message{
		Kind:    KindSystem,
		Payload: e.name + " joined",
		Subject: e.name,
	})
	return nil
}

// Unregister removes e and notifies the remaining members. It is a no-op when
// e is not the endpoint registered under its name.
func (r *Router) Unregister(e *Endpoint) error {
	if e == nil {
		return ErrNilEndpoint
	}

	r.mu.Lock()
	if current, ok := r.registry[e.name]; !ok || current != e {
		r.mu.Unlock()
		return nil
	}
	delete(r.registry, e.name)
	for i, m := range r.members {
		if m == e {
			r.members = append(r.members[:i], r.members[i+1:]...)
			break
		}
	}
	e.unbind(r)
	remaining := r.snapshotExcept(nil)
	count := len(r.members)
	r.mu.Unlock()

	r.logger.Info("endpoint unregistered",
		log.String("endpoint", e.name),
		log.Int("members", count),
	)
	for _, o := range r.observers {
		o.OnUnregister(e.name, count)
	}

	r.deliver(remaining, Message{
		Kind:    KindSystem,
		Payload: e.name + " left",
		Subject: e.name,
	})
	return nil
}

// Send delivers payload from the sender. An empty to broadcasts to every
// other member; otherwise only the named endpoint receives it. An unknown
// recipient is reported to the sender as a system message and Send returns nil.
func (r *Router) Send(payload string, from *Endpoint, to string) error {
	if from == nil {
		return ErrNilEndpoint
	}

	r.mu.RLock()
	if current, ok := r.registry[from.name]; !ok || current != from {
		r.mu.RUnlock()
		r.reject(from.name, ErrSenderNotRegistered)
		return fmt.Errorf("%w: %q", ErrSenderNotRegistered, from.name)
	}

	if to == "" {
		recipients := r.snapshotExcept(from)
		r.mu.RUnlock()
		r.deliver(recipients, Message{Kind: KindBroadcast, From: from.name, Payload: payload})
		return nil
	}

	target, ok := r.registry[to]
	r.mu.RUnlock()
	if !ok {
		r.reject(from.name, ErrRecipientNotFound)
		r.deliver([]*Endpoint{from}, Message{
			Kind:    KindSystem,
			Payload: fmt.Sprintf("recipient %q not found", to),
			Subject: to,
			Err:     ErrRecipientNotFound,
		})
		return nil
	}

	r.deliver([]*Endpoint{target}, Message{Kind: KindDirected, From: from.name, To: to, Payload: payload})
	return nil
}

// Len returns the number of registered endpoints.
func (r *Router) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

// Names returns the registered names in registration order.
func (r *Router) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.members))
	for i, m := range r.members {
		names[i] = m.name
	}
	return names
}

// Lookup returns the endpoint registered under name.
func (r *Router) Lookup(name string) (*Endpoint, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.registry[name]
	return e, ok
}

// snapshotExcept copies the member list without skip. Callers hold r.mu.
func (r *Router) snapshotExcept(skip *Endpoint) []*Endpoint {
	out := make([]*Endpoint, 0, len(r.members))
	for _, m := range r.members {
		if m != skip {
			out = append(out, m)
		}
	}
	return out
}

// deliver runs without the registry lock.
func (r *Router) deliver(recipients []*Endpoint, msg Message) {
	for _, e := range recipients {
		e.Receive(msg)
		r.logger.Debug("message delivered",
			log.String("to", e.name),
			log.String("from", msg.From),
			log.String("kind", msg.Kind.String()),
		)
		for _, o := range r.observers {
			o.OnDeliver(e.name, msg)
		}
	}
}

func (r *Router) reject(from string, err error) {
	r.logger.Warn("rejected",
		log.String("endpoint", from),
		log.Err(err),
	)
	for _, o := range r.observers {
		o.OnReject(from, err)
	}
}
