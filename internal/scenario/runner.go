package scenario

import (
	"fmt"
	"strings"
	"sync"

	"github.com/bft-labs/switchyard"
	"github.com/bft-labs/switchyard/pkg/actionlog"
	"github.com/bft-labs/switchyard/pkg/router"
)

// Result is the outcome of a run.
type Result struct {
	// Lines is the transcript: one line per step outcome, with deliveries
	// indented under the step that caused them.
	Lines []string

	// Core is the core the scenario ran against, left in its final state.
	Core *switchyard.Core

	// Inboxes holds every message each endpoint received, by name.
	Inboxes map[string]*router.Inbox
}

// String joins the transcript lines.
func (r *Result) String() string {
	return strings.Join(r.Lines, "\n")
}

// Run validates sc and executes it against a new Core. A positive
// sc.Capacity overrides cfg.HistoryCapacity.
func Run(sc *Scenario, cfg switchyard.Config, opts ...switchyard.Option) (*Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	if sc.Capacity > 0 {
		cfg.HistoryCapacity = sc.Capacity
	}
	core, err := switchyard.New(cfg, opts...)
	if err != nil {
		return nil, err
	}

	r := &runner{
		core:      core,
		devices:   make(map[string]device, len(sc.Devices)),
		endpoints: make(map[string]*router.Endpoint),
		inboxes:   make(map[string]*router.Inbox),
	}
	for _, d := range sc.Devices {
		r.devices[d.Name] = newDevice(d)
		r.order = append(r.order, d.Name)
	}

	for _, st := range sc.Steps {
		r.step(st)
	}

	return &Result{Lines: r.lines, Core: core, Inboxes: r.inboxes}, nil
}

type runner struct {
	core    *switchyard.Core
	devices map[string]device
	order   []string

	endpoints map[string]*router.Endpoint
	inboxes   map[string]*router.Inbox

	mu    sync.Mutex
	lines []string
}

func (r *runner) printf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

func (r *runner) outcome(line string, err error) {
	if err != nil {
		r.printf("%s: %v", line, err)
		return
	}
	r.printf("%s", line)
}

func (r *runner) step(st Step) {
	switch st.Op {
	case OpExecute:
		cmd := r.devices[st.Device].command(st.Command, st.Value)
		r.outcome("execute "+cmd.Name(), r.core.History.Execute(cmd))

	case OpUndo:
		action, err := r.core.History.UndoLast()
		if err != nil {
			r.outcome("undo", err)
			return
		}
		r.printf("undo %s", actionlog.NameOf(action))

	case OpUndoN:
		n, err := r.core.History.UndoMultiple(st.N)
		r.outcome(fmt.Sprintf("undo_n %d: %d undone", st.N, n), err)

	case OpRegister:
		r.outcome("register "+st.Endpoint, r.core.Router.Register(r.endpoint(st.Endpoint)))

	case OpUnregister:
		r.outcome("unregister "+st.Endpoint, r.core.Router.Unregister(r.endpoint(st.Endpoint)))

	case OpSend:
		e := r.endpoint(st.Endpoint)
		to := st.To
		if to == "" {
			to = "*"
		}
		r.printf("send %s -> %s: %s", st.Endpoint, to, st.Payload)
		if err := e.SendTo(st.To, st.Payload); err != nil {
			r.printf("  %s: %v", st.Endpoint, err)
		}

	case OpStatus:
		r.printf("status history %d/%d", r.core.History.Len(), r.core.History.Capacity())
		for _, name := range r.order {
			r.printf("status %s", r.devices[name].status())
		}
	}
}

// endpoint returns the endpoint for name, creating it unregistered on first
// use.
func (r *runner) endpoint(name string) *router.Endpoint {
	if e, ok := r.endpoints[name]; ok {
		return e
	}
	inbox := router.NewInbox()
	e := router.NewEndpoint(name, router.ReceiverFunc(func(msg router.Message) {
		inbox.Receive(msg)
		r.printf("  %s", formatDelivery(name, msg))
	}))
	r.endpoints[name] = e
	r.inboxes[name] = inbox
	return e
}

func formatDelivery(to string, msg router.Message) string {
	if msg.IsSystem() {
		return fmt.Sprintf("%s <- system: %s", to, msg.Payload)
	}
	return fmt.Sprintf("%s <- %s (%s): %s", to, msg.From, msg.Kind, msg.Payload)
}
