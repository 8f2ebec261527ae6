package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func distinct(vs []int) bool {
	seen := map[int]bool{}
	for _, v := range vs {
		if seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

func TestOracle_Pigeonhole(t *testing.T) {
	m := NewModel()
	vars := []Var{m.NewRangeVar("a", 1, 2), m.NewRangeVar("b", 1, 2), m.NewRangeVar("c", 1, 2)}
	m.Relation(vars, distinct)
	o := m.Compile()

	assert.False(t, o.Satisfiable())
	assert.Empty(t, o.Support(vars[0]))
	assert.Empty(t, o.Solutions(0))
}

func TestOracle_SupportOfSum(t *testing.T) {
	m := NewModel()
	x := m.NewRangeVar("x", 0, 5)
	y := m.NewRangeVar("y", 0, 5)
	z := m.NewVar("z", 7)
	m.Relation([]Var{x, y, z}, func(v []int) bool { return v[0]+v[1] == v[2] })
	o := m.Compile()

	require.True(t, o.Satisfiable())
	assert.Equal(t, []int{2, 3, 4, 5}, o.Support(x))
	assert.True(t, o.Supported(y, 5))
	assert.False(t, o.Supported(y, 1))
	assert.False(t, o.Supported(y, 42))
}

func TestOracle_Solutions(t *testing.T) {
	m := NewModel()
	rows := make([]Var, 4)
	for i := range rows {
		rows[i] = m.NewRangeVar("", 0, 3)
	}
	for i := range rows {
		for j := i + 1; j < len(rows); j++ {
			d := j - i
			m.Relation([]Var{rows[i], rows[j]}, func(v []int) bool {
				return v[0] != v[1] && v[0]-v[1] != d && v[1]-v[0] != d
			})
		}
	}
	o := m.Compile()

	sols := o.Solutions(0)
	assert.ElementsMatch(t, [][]int{{1, 3, 0, 2}, {2, 0, 3, 1}}, sols)
	assert.Len(t, o.Solutions(1), 1)
	// enumeration does not touch the shared instance
	assert.True(t, o.Satisfiable())
}

func TestOracle_RepeatedScope(t *testing.T) {
	m := NewModel()
	x := m.NewRangeVar("x", 0, 4)
	m.Relation([]Var{x, x}, func(v []int) bool { return v[0]*v[1] == 4 })
	o := m.Compile()
	assert.Equal(t, []int{2}, o.Support(x))
	assert.Equal(t, "oracle(1 vars, 1 relations)", o.String())
}
