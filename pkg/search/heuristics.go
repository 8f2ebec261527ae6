package search

import (
	"slices"

	"github.com/gitrdm/fdprop/pkg/fd"
)

// selectVariable returns the unbound variable preferred by the configured
// heuristic, or nil when every variable is bound. Ties go to the earliest
// variable.
func (sr *searcher) selectVariable() *fd.IntVar {
	var (
		best      *fd.IntVar
		bestScore float64
	)
	for i, v := range sr.vars {
		if v.IsBound() {
			continue
		}
		score := variableScore(sr.cfg.VariableHeuristic, i, v)
		if best == nil || score < bestScore {
			best, bestScore = v, score
		}
	}
	return best
}

// variableScore is lower for better candidates.
func variableScore(h VariableHeuristic, index int, v *fd.IntVar) float64 {
	switch h {
	case HeuristicInputOrder:
		return float64(index)
	case HeuristicDomDeg:
		return float64(v.Size()) / float64(1+v.Degree())
	case HeuristicMostConstrained:
		// weight only breaks ties between equal degrees
		return -float64(v.Degree()) - float64(v.Weight())/float64(1+v.Weight())
	default:
		return float64(v.Size())
	}
}

func (sr *searcher) orderValues(v *fd.IntVar) []int {
	values := v.Domain().ToSlice()
	if sr.cfg.ValueOrder == ValueDescending {
		slices.Reverse(values)
	}
	return values
}
