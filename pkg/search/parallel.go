package search

import (
	"context"
	"fmt"

	"github.com/gitrdm/fdprop/internal/parallel"
	"github.com/gitrdm/fdprop/pkg/fd"
)

// Problem builds a fresh store and the variables to label. It is called on
// the goroutine that solves it, so stores are never shared.
type Problem func() (*fd.Store, []*fd.IntVar, error)

// SolveAll solves independent problems on up to workers goroutines and
// returns their results in input order. A non-positive worker count means
// one per CPU. The first model error or incomplete search cancels the
// problems still running.
func SolveAll(ctx context.Context, problems []Problem, cfg *Config, workers int) ([]*Result, error) {
	return parallel.Map(ctx, workers, len(problems), func(ctx context.Context, i int) (*Result, error) {
		s, vars, err := problems[i]()
		if err != nil {
			return nil, fmt.Errorf("problem %d: %w", i, err)
		}
		res, err := Solve(ctx, s, vars, cfg)
		if err != nil {
			return res, fmt.Errorf("problem %d: %w", i, err)
		}
		return res, nil
	})
}
