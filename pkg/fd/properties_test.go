package fd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requeueAll schedules every imposed constraint again.
func requeueAll(s *Store) {
	for _, c := range s.Constraints() {
		s.AddChanged(c)
	}
}

// mixedModel imposes one constraint of most families over a handful of
// shared variables.
func mixedModel(t *testing.T) (*Store, []*IntVar) {
	t.Helper()
	s := NewStore()
	x := newVars(s, "x", 5, 1, 5)
	next := newVars(s, "n", 4, 1, 4)
	total := s.NewIntVar("total", 0, 60)
	leg := s.NewIntVar("leg", 0, 50)
	top := s.NewIntVar("top", 0, 9)
	pair := s.NewIntVar("pair", 0, 10)
	b := s.NewBoolVar("b")

	diff, err := NewAlldiff(x)
	require.NoError(t, err)
	weighted, err := NewSumWeight(x, []int{1, 2, 3, 4, 5}, total)
	require.NoError(t, err)
	circuit, err := NewCircuit(next)
	require.NoError(t, err)
	element, err := NewElementInteger(next[0], []int{0, 7, 3, 9}, leg, 0)
	require.NoError(t, err)
	top3, err := NewMax(x[:3], top)
	require.NoError(t, err)
	order, err := NewReified(NewXltY(x[0], x[1]), b)
	require.NoError(t, err)

	require.NoError(t, s.ImposeAll(diff, weighted, circuit, element, top3, order,
		NewXplusYeqZ(x[2], x[3], pair), NewXneqC(next[1], 3)))

	vars := append(append(append([]*IntVar{}, x...), next...), total, leg, top, pair, b)
	return s, vars
}

func TestStore_IdempotentAtFixpoint(t *testing.T) {
	s, vars := mixedModel(t)
	require.NoError(t, s.Consistency())

	check := func(step string) {
		before := domains(vars)
		calls := s.Stats().ConsistencyCalls
		requeueAll(s)
		require.NoError(t, s.Consistency(), step)
		assert.Equal(t, before, domains(vars), step)
		assert.Equal(t, calls+len(s.Constraints()), s.Stats().ConsistencyCalls, step)
	}
	check("root")

	s.Push()
	require.NoError(t, vars[0].InValue(2))
	require.NoError(t, s.Consistency())
	check("x1 = 2")

	s.Push()
	require.NoError(t, vars[5].InValue(2))
	require.NoError(t, s.Consistency())
	check("n1 = 2")
}

func TestStore_Deterministic(t *testing.T) {
	run := func() (string, Stats) {
		s, vars := mixedModel(t)
		require.NoError(t, s.Consistency())
		s.Push()
		require.NoError(t, vars[1].InMin(4))
		require.NoError(t, s.Consistency())
		return s.String(), s.Stats()
	}
	first, firstStats := run()
	second, secondStats := run()
	assert.Equal(t, first, second)
	assert.Equal(t, firstStats, secondStats)
}

// levelWatcher captures the domain of x and the value of a cell when a
// level is removed.
type levelWatcher struct {
	recorder
	cell *TimeStamp[int]
	seen []string
	vals []int
	lvls []int
}

func (w *levelWatcher) RemoveLevel(level int) {
	w.seen = append(w.seen, w.x.Domain().String())
	w.vals = append(w.vals, w.cell.Value())
	w.lvls = append(w.lvls, level)
}

func TestStore_RemoveLevelRunsBeforeRestore(t *testing.T) {
	s := NewStore()
	x := s.NewIntVar("x", 0, 9)
	w := &levelWatcher{
		recorder: *newRecorder(x, EventNone, QueuePrimitive, "watch", nil),
		cell:     NewTimeStamp(s, 0),
	}
	require.NoError(t, s.Impose(w))
	require.NoError(t, s.Consistency())

	s.Push()
	require.NoError(t, x.InMax(5))
	w.cell.Update(1)
	s.Push()
	require.NoError(t, x.InMin(2))
	w.cell.Update(2)

	s.Pop()
	s.Pop()

	assert.Equal(t, []int{2, 1}, w.lvls)
	assert.Equal(t, []string{"{2..5}", "{0..5}"}, w.seen)
	assert.Equal(t, []int{2, 1}, w.vals)
	assert.Equal(t, "{0..9}", x.Domain().String())
	assert.Equal(t, 0, w.cell.Value())
}
