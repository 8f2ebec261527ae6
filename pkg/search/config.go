package search

import (
	"time"

	"github.com/sirupsen/logrus"
)

// VariableHeuristic selects the next variable to label.
type VariableHeuristic int

const (
	// HeuristicInputOrder labels variables in the order they were given.
	HeuristicInputOrder VariableHeuristic = iota
	// HeuristicDom picks the smallest domain first.
	HeuristicDom
	// HeuristicDomDeg picks the smallest ratio of domain size to degree.
	HeuristicDomDeg
	// HeuristicMostConstrained picks the variable involved in the most
	// constraints, breaking ties by accumulated failure weight.
	HeuristicMostConstrained
)

// String returns the flag name of the heuristic.
func (h VariableHeuristic) String() string {
	switch h {
	case HeuristicInputOrder:
		return "input"
	case HeuristicDom:
		return "dom"
	case HeuristicDomDeg:
		return "domdeg"
	case HeuristicMostConstrained:
		return "deg"
	default:
		return "unknown"
	}
}

// ParseVariableHeuristic maps a heuristic name back to its value.
func ParseVariableHeuristic(name string) (VariableHeuristic, bool) {
	for _, h := range []VariableHeuristic{HeuristicInputOrder, HeuristicDom, HeuristicDomDeg, HeuristicMostConstrained} {
		if h.String() == name {
			return h, true
		}
	}
	return 0, false
}

// ValueOrder selects the order in which the values of a variable are tried.
type ValueOrder int

const (
	// ValueAscending tries the smallest value first.
	ValueAscending ValueOrder = iota
	// ValueDescending tries the largest value first.
	ValueDescending
)

// Config holds search configuration.
type Config struct {
	// VariableHeuristic picks the next variable to label.
	VariableHeuristic VariableHeuristic

	// ValueOrder picks the order of values within a variable.
	ValueOrder ValueOrder

	// MaxSolutions stops the search after that many solutions.
	// Zero or negative means all solutions.
	MaxSolutions int

	// TimeBudget bounds the wall time of one search. It is checked
	// between fixpoint calls, never inside one. Zero means no budget.
	TimeBudget time.Duration

	// Logger receives debug events. Nil means the store's logger.
	Logger *logrus.Entry
}

// DefaultConfig returns a configuration that labels by smallest domain,
// tries values in ascending order and enumerates every solution.
func DefaultConfig() *Config {
	return &Config{
		VariableHeuristic: HeuristicDom,
		ValueOrder:        ValueAscending,
	}
}
