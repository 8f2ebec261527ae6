// Package search labels the variables of an fd.Store depth first.
//
// Each decision opens a new store level, binds one variable and runs the
// store to a fixpoint. A propagation failure pops the level and tries the
// next value; any other error aborts the search. Levels are only pushed
// at a fixpoint, so popping never loses scheduled work.
//
// The time budget and the context are checked between fixpoint calls.
// When either runs out the search returns what it found so far together
// with ErrIncomplete.
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gitrdm/fdprop/pkg/fd"
)

var (
	// ErrIncomplete is returned when the search was cancelled or ran out of
	// time before exploring the whole tree.
	ErrIncomplete = errors.New("cancelled before the search space was exhausted")

	// ErrNoSolution is returned by First when the model has no solution.
	ErrNoSolution = errors.New("no solution")
)

// Stats describes one search run.
type Stats struct {
	Nodes     int // decisions taken
	Failures  int // decisions refuted by propagation
	Solutions int
	MaxDepth  int
	Elapsed   time.Duration
}

// String formats the counters on one line.
func (st Stats) String() string {
	return fmt.Sprintf("nodes=%d failures=%d solutions=%d depth=%d elapsed=%s",
		st.Nodes, st.Failures, st.Solutions, st.MaxDepth, st.Elapsed)
}

// Result holds the solutions of one search, each listing the values of
// the labelled variables in the order they were given.
type Result struct {
	Solutions [][]int
	Stats     Stats
	Store     fd.Stats
}

type searcher struct {
	ctx      context.Context
	store    *fd.Store
	vars     []*fd.IntVar
	cfg      *Config
	log      *logrus.Entry
	deadline time.Time
	result   *Result
}

// Solve labels vars until the configured number of solutions is found or
// the tree is exhausted. The store is returned to the level it had on
// entry. A model with no solution yields an empty result and no error.
func Solve(ctx context.Context, s *fd.Store, vars []*fd.IntVar, cfg *Config) (*Result, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	log := cfg.Logger
	if log == nil {
		log = s.Logger()
	}

	sr := &searcher{
		ctx:    ctx,
		store:  s,
		vars:   vars,
		cfg:    cfg,
		log:    log,
		result: &Result{Solutions: [][]int{}},
	}
	start := time.Now()
	if cfg.TimeBudget > 0 {
		sr.deadline = start.Add(cfg.TimeBudget)
	}

	base := s.Level()
	err := sr.run()
	if s.Level() > base {
		s.Backtrack(base)
	}

	sr.result.Stats.Elapsed = time.Since(start)
	sr.result.Store = s.Stats()
	log.WithFields(logrus.Fields{
		"nodes":     sr.result.Stats.Nodes,
		"solutions": sr.result.Stats.Solutions,
	}).Debug("search finished")
	return sr.result, err
}

// First returns the first solution found, or ErrNoSolution.
func First(ctx context.Context, s *fd.Store, vars []*fd.IntVar, cfg *Config) ([]int, error) {
	c := DefaultConfig()
	if cfg != nil {
		cp := *cfg
		c = &cp
	}
	c.MaxSolutions = 1

	res, err := Solve(ctx, s, vars, c)
	if err != nil {
		return nil, err
	}
	if len(res.Solutions) == 0 {
		return nil, ErrNoSolution
	}
	return res.Solutions[0], nil
}

func (sr *searcher) run() error {
	s := sr.store
	// the root fixpoint is taken in place so that nothing scheduled by the
	// caller is lost when the search levels are popped
	if err := s.Consistency(); err != nil {
		if fd.IsFailure(err) {
			sr.log.WithField("level", s.Level()).Debug("root failure")
			return nil
		}
		return err
	}
	_, err := sr.label(1)
	return err
}

// label explores the subtree below the current fixpoint. It reports true
// when the search must stop.
func (sr *searcher) label(depth int) (bool, error) {
	v := sr.selectVariable()
	if v == nil {
		return sr.record(), nil
	}
	if depth > sr.result.Stats.MaxDepth {
		sr.result.Stats.MaxDepth = depth
	}

	s := sr.store
	for _, value := range sr.orderValues(v) {
		if err := sr.checkBudget(); err != nil {
			return true, err
		}
		sr.result.Stats.Nodes++

		s.Push()
		err := v.InValue(value)
		if err == nil {
			err = s.Consistency()
		}
		switch {
		case err == nil:
			stop, err := sr.label(depth + 1)
			if stop || err != nil {
				s.Pop()
				return stop, err
			}
		case fd.IsFailure(err):
			sr.result.Stats.Failures++
			sr.log.WithFields(logrus.Fields{
				"level": s.Level(),
				"nodes": sr.result.Stats.Nodes,
			}).Debugf("%s = %d refuted", v.Name(), value)
		default:
			s.Pop()
			return true, err
		}
		s.Pop()
	}
	return false, nil
}

// record stores the current assignment and reports whether the solution
// limit is reached.
func (sr *searcher) record() bool {
	sol := make([]int, len(sr.vars))
	for i, v := range sr.vars {
		sol[i] = v.Value()
	}
	sr.result.Solutions = append(sr.result.Solutions, sol)
	sr.result.Stats.Solutions++
	sr.log.WithFields(logrus.Fields{
		"level": sr.store.Level(),
		"nodes": sr.result.Stats.Nodes,
	}).Debug("solution")
	return sr.cfg.MaxSolutions > 0 && sr.result.Stats.Solutions >= sr.cfg.MaxSolutions
}

func (sr *searcher) checkBudget() error {
	if err := sr.ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrIncomplete, err)
	}
	if !sr.deadline.IsZero() && time.Now().After(sr.deadline) {
		return fmt.Errorf("%w: time budget of %s exceeded", ErrIncomplete, sr.cfg.TimeBudget)
	}
	return nil
}
