package models

import (
	"fmt"
	"math/rand"

	"github.com/gitrdm/fdprop/pkg/fd"
)

// TourModel is a travelling salesman instance.
type TourModel struct {
	*Model
	// Next[i] is the 1-based city visited after city i+1.
	Next []*fd.IntVar
	// Leg[i] is the cost of leaving city i+1.
	Leg []*fd.IntVar
	// Cost is the total length of the tour.
	Cost *fd.IntVar
}

// Tour builds a tour through every city of the square cost matrix. When
// maxCost is positive the tour length is bounded by it. A negative entry
// off the diagonal marks a missing road.
func Tour(costs [][]int, maxCost int, opts ...fd.StoreOption) (*TourModel, error) {
	n := len(costs)
	if n < 2 {
		return nil, fmt.Errorf("tour: need at least two cities, got %d", n)
	}
	s := fd.NewStore(opts...)
	next := make([]*fd.IntVar, n)
	legs := make([]*fd.IntVar, n)
	hi := 0
	for i, row := range costs {
		if len(row) != n {
			return nil, fmt.Errorf("tour: row %d has %d entries, want %d", i, len(row), n)
		}
		for _, c := range row {
			hi = max(hi, c)
		}
	}
	for i, row := range costs {
		var targets []int
		for j, c := range row {
			if j != i && c >= 0 {
				targets = append(targets, j+1)
			}
		}
		next[i] = s.NewIntVarValues(fmt.Sprintf("next%d", i+1), targets...)
		legs[i] = s.NewIntVar(fmt.Sprintf("leg%d", i+1), 0, hi)
	}
	upper := hi * n
	if maxCost > 0 {
		upper = min(upper, maxCost)
	}
	cost := s.NewIntVar("cost", 0, upper)

	circuit, err := fd.NewCircuit(next)
	if err != nil {
		return nil, err
	}
	if err := s.Impose(circuit); err != nil {
		return nil, err
	}
	for i, row := range costs {
		// the diagonal and missing roads are already outside next[i]
		e, err := fd.NewElementInteger(next[i], row, legs[i], 0)
		if err != nil {
			return nil, err
		}
		if err := s.Impose(e); err != nil {
			return nil, err
		}
	}
	total, err := fd.NewSum(legs, cost)
	if err != nil {
		return nil, err
	}
	if err := s.Impose(total); err != nil {
		return nil, err
	}
	return &TourModel{Model: &Model{Store: s, Decision: next}, Next: next, Leg: legs, Cost: cost}, nil
}

// RandomCosts returns a symmetric n x n matrix with entries in [1, maxLeg]
// drawn from seed.
func RandomCosts(n, maxLeg int, seed int64) [][]int {
	rng := rand.New(rand.NewSource(seed))
	costs := make([][]int, n)
	for i := range costs {
		costs[i] = make([]int, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			c := 1 + rng.Intn(max(maxLeg, 1))
			costs[i][j], costs[j][i] = c, c
		}
	}
	return costs
}

// TourOrder walks a solved successor assignment from city 1 and returns
// the 1-based cities in visiting order.
func TourOrder(next []int) []int {
	order := make([]int, 0, len(next))
	city := 1
	for range next {
		order = append(order, city)
		city = next[city-1]
	}
	return order
}
