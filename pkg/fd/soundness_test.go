package fd

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/fdprop/internal/oracle"
)

// twin keeps an fd variable next to its oracle counterpart.
type twin struct {
	v *IntVar
	o oracle.Var
}

type soundnessCase struct {
	name  string
	arity int
	lo    int
	hi    int
	// build imposes the constraint on vars and returns the relation the
	// oracle must enforce.
	build func(s *Store, vars []*IntVar) (Constraint, func([]int) bool, error)
}

func randomValues(rng *rand.Rand, lo, hi int) []int {
	var out []int
	for v := lo; v <= hi; v++ {
		if rng.Intn(3) > 0 {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		out = append(out, lo+rng.Intn(hi-lo+1))
	}
	return out
}

// checkSoundness propagates random instances and checks that no value used
// by a solution was pruned, and that propagation only fails on instances
// without solutions.
func checkSoundness(t *testing.T, tc soundnessCase, trials int) {
	rng := rand.New(rand.NewSource(int64(len(tc.name)) * 7919))
	for trial := 0; trial < trials; trial++ {
		s := NewStore()
		m := oracle.NewModel()
		twins := make([]twin, tc.arity)
		vars := make([]*IntVar, tc.arity)
		for i := range twins {
			values := randomValues(rng, tc.lo, tc.hi)
			name := fmt.Sprintf("v%d", i)
			twins[i] = twin{v: s.NewIntVarValues(name, values...), o: m.NewVar(name, values...)}
			vars[i] = twins[i].v
		}

		c, rel, err := tc.build(s, vars)
		require.NoError(t, err)
		scope := make([]oracle.Var, len(twins))
		for i, tw := range twins {
			scope[i] = tw.o
		}
		m.Relation(scope, rel)
		o := m.Compile()

		before := domains(vars)
		err = s.ImposeWithConsistency(c)
		if err != nil {
			require.True(t, IsFailure(err), "trial %d: %v", trial, err)
			assert.False(t, o.Satisfiable(), "trial %d: %s failed on %v", trial, c, before)
			continue
		}
		for _, tw := range twins {
			for _, value := range o.Support(tw.o) {
				assert.True(t, tw.v.Contains(value),
					"trial %d: %s lost supported value %d of %s, domains before %v", trial, c, value, tw.v.Name(), before)
			}
		}

		// a second run from the fixpoint changes nothing
		fixpoint := domains(vars)
		requeueAll(s)
		require.NoError(t, s.Consistency(), "trial %d", trial)
		assert.Equal(t, fixpoint, domains(vars), "trial %d: %s is not idempotent", trial, c)
	}
}

func TestSoundness(t *testing.T) {
	cases := []soundnessCase{
		{
			name: "alldifferent", arity: 4, lo: 0, hi: 4,
			build: func(s *Store, vars []*IntVar) (Constraint, func([]int) bool, error) {
				c, err := NewAlldifferent(vars)
				return c, allDifferentValues, err
			},
		},
		{
			name: "alldiff", arity: 4, lo: 0, hi: 4,
			build: func(s *Store, vars []*IntVar) (Constraint, func([]int) bool, error) {
				c, err := NewAlldiff(vars)
				return c, allDifferentValues, err
			},
		},
		{
			name: "circuit", arity: 4, lo: 1, hi: 4,
			build: func(s *Store, vars []*IntVar) (Constraint, func([]int) bool, error) {
				c, err := NewCircuit(vars)
				return c, isCircuit, err
			},
		},
		{
			name: "sum", arity: 4, lo: -2, hi: 4,
			build: func(s *Store, vars []*IntVar) (Constraint, func([]int) bool, error) {
				c, err := NewSum(vars[:3], vars[3])
				return c, func(v []int) bool { return v[0]+v[1]+v[2] == v[3] }, err
			},
		},
		{
			name: "sum weight", arity: 3, lo: -3, hi: 3,
			build: func(s *Store, vars []*IntVar) (Constraint, func([]int) bool, error) {
				c, err := NewSumWeight(vars[:2], []int{2, -3}, vars[2])
				return c, func(v []int) bool { return 2*v[0]-3*v[1] == v[2] }, err
			},
		},
		{
			name: "x plus y", arity: 3, lo: -2, hi: 5,
			build: func(s *Store, vars []*IntVar) (Constraint, func([]int) bool, error) {
				return NewXplusYeqZ(vars[0], vars[1], vars[2]), func(v []int) bool { return v[0]+v[1] == v[2] }, nil
			},
		},
		{
			name: "x mul y", arity: 3, lo: -3, hi: 4,
			build: func(s *Store, vars []*IntVar) (Constraint, func([]int) bool, error) {
				return NewXmulYeqZ(vars[0], vars[1], vars[2]), func(v []int) bool { return v[0]*v[1] == v[2] }, nil
			},
		},
		{
			name: "element", arity: 2, lo: 0, hi: 5,
			build: func(s *Store, vars []*IntVar) (Constraint, func([]int) bool, error) {
				list := []int{3, 1, 4, 1, 5}
				c, err := NewElementInteger(vars[0], list, vars[1], 0)
				return c, func(v []int) bool { return v[0] >= 1 && v[0] <= len(list) && list[v[0]-1] == v[1] }, err
			},
		},
		{
			name: "element variable", arity: 4, lo: 0, hi: 3,
			build: func(s *Store, vars []*IntVar) (Constraint, func([]int) bool, error) {
				c, err := NewElementVariable(vars[0], vars[1:3], vars[3], 0)
				return c, func(v []int) bool { return (v[0] == 1 || v[0] == 2) && v[v[0]] == v[3] }, err
			},
		},
		{
			name: "max", arity: 4, lo: 0, hi: 4,
			build: func(s *Store, vars []*IntVar) (Constraint, func([]int) bool, error) {
				c, err := NewMax(vars[:3], vars[3])
				return c, func(v []int) bool { return max(v[0], v[1], v[2]) == v[3] }, err
			},
		},
		{
			name: "min", arity: 4, lo: 0, hi: 4,
			build: func(s *Store, vars []*IntVar) (Constraint, func([]int) bool, error) {
				c, err := NewMin(vars[:3], vars[3])
				return c, func(v []int) bool { return min(v[0], v[1], v[2]) == v[3] }, err
			},
		},
		{
			name: "reified order", arity: 3, lo: 0, hi: 3,
			build: func(s *Store, vars []*IntVar) (Constraint, func([]int) bool, error) {
				b := s.NewBoolVar("b")
				// tie the guard to the third variable through equality
				if err := s.Impose(NewXeqY(b, vars[2])); err != nil {
					return nil, nil, err
				}
				c, err := NewReified(NewXltY(vars[0], vars[1]), b)
				return c, func(v []int) bool {
					return (v[2] == 1 && v[0] < v[1]) || (v[2] == 0 && v[0] >= v[1])
				}, err
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			checkSoundness(t, tc, 60)
		})
	}
}

func allDifferentValues(v []int) bool {
	for i := range v {
		for j := i + 1; j < len(v); j++ {
			if v[i] == v[j] {
				return false
			}
		}
	}
	return true
}

// isCircuit reports whether the 1-based successors form one cycle.
func isCircuit(next []int) bool {
	n := len(next)
	seen := make([]bool, n)
	node := 0
	for step := 0; step < n; step++ {
		if seen[node] {
			return false
		}
		seen[node] = true
		node = next[node] - 1
		if node < 0 || node >= n {
			return false
		}
	}
	return node == 0
}
