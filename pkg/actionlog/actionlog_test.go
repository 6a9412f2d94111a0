package actionlog_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/switchyard/pkg/actionlog"
)

// counter is a device whose state is a single integer.
type counter struct {
	mu    sync.Mutex
	value int
	trace []string
}

func (c *counter) add(label string, delta int) *actionlog.Func {
	return actionlog.NewFunc(label,
		func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.value += delta
			c.trace = append(c.trace, "apply "+label)
		},
		func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.value -= delta
			c.trace = append(c.trace, "revert "+label)
		},
	)
}

// recorder captures observer callbacks.
type recorder struct {
	mu                       sync.Mutex
	executed, undone, evicted []string
}

func (r *recorder) OnExecute(a actionlog.ReversibleAction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.executed = append(r.executed, actionlog.NameOf(a))
}

func (r *recorder) OnUndo(a actionlog.ReversibleAction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.undone = append(r.undone, actionlog.NameOf(a))
}

func (r *recorder) OnEvict(a actionlog.ReversibleAction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evicted = append(r.evicted, actionlog.NameOf(a))
}

func names(actions []actionlog.ReversibleAction) []string {
	out := make([]string, 0, len(actions))
	for _, a := range actions {
		out = append(out, actionlog.NameOf(a))
	}
	return out
}

func TestNew_InvalidCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		l, err := actionlog.New(capacity)
		assert.Nil(t, l)
		assert.ErrorIs(t, err, actionlog.ErrInvalidCapacity)
	}
}

func TestExecute_NilAction(t *testing.T) {
	l, err := actionlog.New(1)
	require.NoError(t, err)

	assert.ErrorIs(t, l.Execute(nil), actionlog.ErrNilAction)
	assert.ErrorIs(t, l.Execute((*actionlog.Func)(nil)), actionlog.ErrNilAction)
	assert.Zero(t, l.Len())
}

func TestUndoLast_EmptyHistory(t *testing.T) {
	l, err := actionlog.New(3)
	require.NoError(t, err)

	a, err := l.UndoLast()
	assert.Nil(t, a)
	assert.True(t, errors.Is(err, actionlog.ErrEmptyHistory))
}

func TestUndo_RestoresState(t *testing.T) {
	c := &counter{value: 7}
	l, err := actionlog.New(4)
	require.NoError(t, err)

	require.NoError(t, l.Execute(c.add("plus5", 5)))
	assert.Equal(t, 12, c.value)

	undone, err := l.UndoLast()
	require.NoError(t, err)
	assert.Equal(t, "plus5", actionlog.NameOf(undone))
	assert.Equal(t, 7, c.value)
}

func TestExecute_EvictsOldestWithoutRevert(t *testing.T) {
	c := &counter{}
	rec := &recorder{}
	l, err := actionlog.New(2, actionlog.WithObserver(rec))
	require.NoError(t, err)

	require.NoError(t, l.Execute(c.add("A", 1)))
	require.NoError(t, l.Execute(c.add("B", 10)))
	require.NoError(t, l.Execute(c.add("C", 100)))

	assert.Equal(t, []string{"C", "B"}, names(l.Entries()))
	assert.Equal(t, []string{"A"}, rec.evicted)
	assert.NotContains(t, c.trace, "revert A")

	a, err := l.UndoLast()
	require.NoError(t, err)
	assert.Equal(t, "C", actionlog.NameOf(a))
	assert.Equal(t, 11, c.value)

	a, err = l.UndoLast()
	require.NoError(t, err)
	assert.Equal(t, "B", actionlog.NameOf(a))
	assert.Equal(t, 1, c.value, "A stays applied once evicted")

	_, err = l.UndoLast()
	assert.ErrorIs(t, err, actionlog.ErrEmptyHistory)

	assert.Equal(t, []string{"A", "B", "C"}, rec.executed)
	assert.Equal(t, []string{"C", "B"}, rec.undone)
}

func TestUndoLast_CapacityBound(t *testing.T) {
	for _, capacity := range []int{1, 3, 8} {
		c := &counter{}
		l, err := actionlog.New(capacity)
		require.NoError(t, err)

		for i := 0; i < capacity*2+1; i++ {
			require.NoError(t, l.Execute(c.add("step", 1)))
		}
		assert.Equal(t, capacity, l.Len())

		for i := 0; i < capacity; i++ {
			_, err := l.UndoLast()
			require.NoError(t, err, "undo %d of %d", i+1, capacity)
		}
		_, err = l.UndoLast()
		assert.ErrorIs(t, err, actionlog.ErrEmptyHistory)
	}
}

func TestUndoMultiple(t *testing.T) {
	tests := []struct {
		name     string
		executed int
		n        int
		want     int
		left     int
	}{
		{"zero is a no-op", 3, 0, 0, 3},
		{"negative is a no-op", 3, -2, 0, 3},
		{"partial", 3, 2, 2, 1},
		{"exact", 3, 3, 3, 0},
		{"more than available", 2, 5, 2, 0},
		{"empty history", 0, 4, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &counter{}
			l, err := actionlog.New(5)
			require.NoError(t, err)
			for i := 0; i < tt.executed; i++ {
				require.NoError(t, l.Execute(c.add("inc", 1)))
			}

			got, err := l.UndoMultiple(tt.n)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.left, l.Len())
			assert.Equal(t, tt.left, c.value)
		})
	}
}

func TestUndoMultiple_RevertsMostRecentFirst(t *testing.T) {
	c := &counter{}
	l, err := actionlog.New(5)
	require.NoError(t, err)
	for _, label := range []string{"a", "b", "c"} {
		require.NoError(t, l.Execute(c.add(label, 1)))
	}

	n, err := l.UndoMultiple(3)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"revert c", "revert b", "revert a"}, c.trace[3:])
}

func TestFunc_NilClosures(t *testing.T) {
	l, err := actionlog.New(1)
	require.NoError(t, err)

	require.NoError(t, l.Execute(&actionlog.Func{}))
	a, err := l.UndoLast()
	require.NoError(t, err)
	assert.Equal(t, "anonymous", actionlog.NameOf(a))
}

func TestLog_ConcurrentExecuteKeepsCapacity(t *testing.T) {
	const capacity = 16
	c := &counter{}
	l, err := actionlog.New(capacity)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				_ = l.Execute(c.add("inc", 1))
				if i%7 == 0 {
					_, _ = l.UndoLast()
				}
				assert.LessOrEqual(t, l.Len(), capacity)
			}
		}()
	}
	wg.Wait()

	before := l.Len()
	assert.LessOrEqual(t, before, capacity)

	n, err := l.UndoMultiple(capacity + 1)
	require.NoError(t, err)
	assert.Equal(t, before, n)
	assert.Zero(t, l.Len())
}
