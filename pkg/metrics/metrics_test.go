package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/switchyard/pkg/actionlog"
	"github.com/bft-labs/switchyard/pkg/router"
)

func TestCollector_ActionLog(t *testing.T) {
	c, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	history, err := actionlog.New(1, actionlog.WithObserver(c))
	require.NoError(t, err)

	require.NoError(t, history.Execute(actionlog.NewFunc("a", nil, nil)))
	require.NoError(t, history.Execute(actionlog.NewFunc("b", nil, nil)))
	_, err = history.UndoLast()
	require.NoError(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.executed))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.evicted))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.undone))
}

func TestCollector_Router(t *testing.T) {
	c, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	r := router.New(router.WithObserver(c))
	alice := router.NewEndpoint("alice", nil)
	bob := router.NewEndpoint("bob", nil)
	require.NoError(t, r.Register(alice))
	require.NoError(t, r.Register(bob))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.members))

	require.NoError(t, alice.Send("hi"))
	require.NoError(t, alice.SendTo("bob", "psst"))
	require.NoError(t, alice.SendTo("carol", "?"))
	assert.Error(t, r.Register(router.NewEndpoint("bob", nil)))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.delivered.WithLabelValues("broadcast")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.delivered.WithLabelValues("directed")))
	// "bob joined" to alice, plus the not-found notice.
	assert.Equal(t, 2.0, testutil.ToFloat64(c.delivered.WithLabelValues("system")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.rejected.WithLabelValues("recipient_not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.rejected.WithLabelValues("duplicate_name")))

	require.NoError(t, r.Unregister(bob))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.members))
}

func TestNew_DoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)

	_, err = New(reg)
	assert.Error(t, err)
}
