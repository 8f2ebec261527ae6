package models

import (
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/fdprop/pkg/search"
)

func solveAll(t *testing.T, m *Model) [][]int {
	t.Helper()
	res, err := search.Solve(context.Background(), m.Store, m.Decision, nil)
	require.NoError(t, err)
	return res.Solutions
}

func TestQueens(t *testing.T) {
	m, err := Queens(8)
	require.NoError(t, err)
	assert.Len(t, solveAll(t, m), 92)

	_, err = Queens(0)
	assert.Error(t, err)
}

func TestSendMoreMoney(t *testing.T) {
	m, err := SendMoreMoney()
	require.NoError(t, err)
	sols := solveAll(t, m)
	require.Len(t, sols, 1)
	assert.Equal(t, []int{9, 5, 6, 7, 1, 0, 8, 2}, sols[0])
}

func TestMagicSquare(t *testing.T) {
	m, err := MagicSquare(3)
	require.NoError(t, err)
	sols := solveAll(t, m)
	assert.Len(t, sols, 8)
	for _, sq := range sols {
		assert.Equal(t, 5, sq[4], "the centre of a 3x3 magic square is 5")
	}
}

// bruteTours returns the cost of every directed Hamiltonian cycle.
func bruteTours(costs [][]int) []int {
	n := len(costs)
	var out []int
	var walk func(path []int, used []bool, cost int)
	walk = func(path []int, used []bool, cost int) {
		last := path[len(path)-1]
		if len(path) == n {
			if costs[last][0] >= 0 {
				out = append(out, cost+costs[last][0])
			}
			return
		}
		for j := 1; j < n; j++ {
			if used[j] || costs[last][j] < 0 {
				continue
			}
			used[j] = true
			walk(append(path, j), used, cost+costs[last][j])
			used[j] = false
		}
	}
	used := make([]bool, n)
	used[0] = true
	walk([]int{0}, used, 0)
	return out
}

func tourCost(costs [][]int, next []int) int {
	total := 0
	for i, j := range next {
		total += costs[i][j-1]
	}
	return total
}

func TestTour(t *testing.T) {
	costs := RandomCosts(5, 9, 42)
	brute := bruteTours(costs)
	best := brute[0]
	for _, c := range brute {
		best = min(best, c)
	}

	m, err := Tour(costs, 0)
	require.NoError(t, err)
	assert.Len(t, solveAll(t, m.Model), len(brute))

	m, err = Tour(costs, best)
	require.NoError(t, err)
	sols := solveAll(t, m.Model)
	require.NotEmpty(t, sols)
	wantOptimal := 0
	for _, c := range brute {
		if c == best {
			wantOptimal++
		}
	}
	assert.Len(t, sols, wantOptimal)
	for _, next := range sols {
		assert.Equal(t, best, tourCost(costs, next))
	}
}

func TestTour_MissingRoads(t *testing.T) {
	costs := [][]int{
		{0, 1, -1, 1},
		{1, 0, 1, -1},
		{-1, 1, 0, 1},
		{1, -1, 1, 0},
	}
	m, err := Tour(costs, 0)
	require.NoError(t, err)
	sols := solveAll(t, m.Model)
	// only the ring 1-2-3-4 in either direction
	assert.ElementsMatch(t, [][]int{{2, 3, 4, 1}, {4, 1, 2, 3}}, sols)
	assert.Equal(t, []int{1, 2, 3, 4}, TourOrder([]int{2, 3, 4, 1}))
}

func TestTour_BadMatrix(t *testing.T) {
	_, err := Tour([][]int{{0}}, 0)
	assert.Error(t, err)
	_, err = Tour([][]int{{0, 1}, {1}}, 0)
	assert.Error(t, err)
}

func TestRandomCostsIsSymmetric(t *testing.T) {
	costs := RandomCosts(6, 20, 7)
	for i := range costs {
		assert.Zero(t, costs[i][i])
		for j := range costs {
			assert.Equal(t, costs[i][j], costs[j][i])
		}
	}
	assert.Equal(t, costs, RandomCosts(6, 20, 7))
}

func TestSchedule(t *testing.T) {
	jobs := []Job{{"a", 3, 2}, {"b", 2, 2}, {"c", 2, 1}}
	const capacity, horizon = 3, 5

	want := 0
	for a := 0; a <= horizon-3; a++ {
		for b := 0; b <= horizon-2; b++ {
			for c := 0; c <= horizon-2; c++ {
				if slices.Max(Load(jobs, []int{a, b, c}, horizon)) <= capacity {
					want++
				}
			}
		}
	}

	m, err := Schedule(jobs, capacity, horizon)
	require.NoError(t, err)
	sols := solveAll(t, m.Model)
	assert.Len(t, sols, want)
	for _, starts := range sols {
		assert.LessOrEqual(t, slices.Max(Load(jobs, starts, horizon)), capacity)
	}

	_, err = Schedule([]Job{{"long", 9, 1}}, 1, 5)
	assert.Error(t, err)
}
