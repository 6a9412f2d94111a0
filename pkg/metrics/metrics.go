// Package metrics exports Prometheus counters for an action log and a router.
//
// A [Collector] implements both actionlog.Observer and router.Observer:
//
//	c, _ := metrics.New(prometheus.DefaultRegisterer)
//	history, _ := actionlog.New(16, actionlog.WithObserver(c))
//	r := router.New(router.WithObserver(c))
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bft-labs/switchyard/internal/domain"
	"github.com/bft-labs/switchyard/pkg/actionlog"
	"github.com/bft-labs/switchyard/pkg/router"
)

const namespace = "switchyard"

// Collector counts action log and router activity.
type Collector struct {
	executed  prometheus.Counter
	undone    prometheus.Counter
	evicted   prometheus.Counter
	delivered *prometheus.CounterVec
	rejected  *prometheus.CounterVec
	members   prometheus.Gauge
}

var (
	_ actionlog.Observer = (*Collector)(nil)
	_ router.Observer    = (*Collector)(nil)
)

// New creates a collector and registers its metrics with reg.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		executed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_executed_total",
			Help:      "Actions applied and recorded by the action log.",
		}),
		undone: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_undone_total",
			Help:      "Actions reverted by undo.",
		}),
		evicted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_evicted_total",
			Help:      "Actions dropped from a full history without being reverted.",
		}),
		delivered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_delivered_total",
			Help:      "Messages handed to endpoint receivers.",
		}, []string{"kind"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_rejected_total",
			Help:      "Router requests refused, by reason.",
		}, []string{"reason"}),
		members: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "endpoints_registered",
			Help:      "Endpoints currently registered with the router.",
		}),
	}

	for _, m := range []prometheus.Collector{c.executed, c.undone, c.evicted, c.delivered, c.rejected, c.members} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Collector) OnExecute(actionlog.ReversibleAction) { c.executed.Inc() }
func (c *Collector) OnUndo(actionlog.ReversibleAction)    { c.undone.Inc() }
func (c *Collector) OnEvict(actionlog.ReversibleAction)   { c.evicted.Inc() }

func (c *Collector) OnRegister(_ string, members int)   { c.members.Set(float64(members)) }
func (c *Collector) OnUnregister(_ string, members int) { c.members.Set(float64(members)) }

func (c *Collector) OnDeliver(_ string, msg router.Message) {
	c.delivered.WithLabelValues(msg.Kind.String()).Inc()
}

func (c *Collector) OnReject(_ string, err error) {
	c.rejected.WithLabelValues(reason(err)).Inc()
}

func reason(err error) string {
	switch {
	case errors.Is(err, domain.ErrDuplicateName):
		return "duplicate_name"
	case errors.Is(err, domain.ErrSenderNotRegistered):
		return "sender_not_registered"
	case errors.Is(err, domain.ErrRecipientNotFound):
		return "recipient_not_found"
	case errors.Is(err, domain.ErrAlreadyBound):
		return "already_bound"
	default:
		return "other"
	}
}
