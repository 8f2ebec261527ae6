package sum

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gitrdm/fdprop/cmd/fdprop/options"
	"github.com/gitrdm/fdprop/pkg/fd"
	"github.com/gitrdm/fdprop/pkg/search"
)

// NewSumCommand returns the command that enumerates the term assignments
// of a bounded sum.
func NewSumCommand(g *options.Global) *cobra.Command {
	var (
		terms    int
		lo, hi   int
		total    int
		distinct bool
		weights  []int
	)
	cmd := &cobra.Command{
		Use:   "sum",
		Short: "Lists the ways to reach a total with bounded terms",
		Long: `Lists every tuple x1..xk with lo <= xi <= hi and w1*x1 + ... + wk*xk = total.
Without --weights every weight is 1. With --distinct the terms are pairwise
different.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(weights) > 0 {
				terms = len(weights)
			}
			if terms < 1 {
				return fmt.Errorf("--terms must be positive, got %d", terms)
			}
			cfg, err := g.SearchConfig()
			if err != nil {
				return err
			}
			s, vars, err := build(g, terms, lo, hi, total, distinct, weights)
			if err != nil {
				return err
			}
			res, err := search.Solve(cmd.Context(), s, vars, cfg)
			if res == nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, sol := range res.Solutions {
				fmt.Fprintln(out, strings.Trim(fmt.Sprint(sol), "[]"))
			}
			fmt.Fprintf(out, "%d solution(s); %s\n", len(res.Solutions), res.Stats)
			return err
		},
	}
	cmd.Flags().IntVarP(&terms, "terms", "k", 3, "number of terms")
	cmd.Flags().IntVar(&lo, "min", 0, "smallest value of a term")
	cmd.Flags().IntVar(&hi, "max", 9, "largest value of a term")
	cmd.Flags().IntVar(&total, "total", 10, "value of the sum")
	cmd.Flags().BoolVar(&distinct, "distinct", false, "require pairwise different terms")
	cmd.Flags().IntSliceVar(&weights, "weights", nil, "weight of each term; implies --terms")
	return cmd
}

func build(g *options.Global, terms, lo, hi, total int, distinct bool, weights []int) (*fd.Store, []*fd.IntVar, error) {
	s := fd.NewStore(g.StoreOptions()...)
	vars := make([]*fd.IntVar, terms)
	for i := range vars {
		vars[i] = s.NewIntVar(fmt.Sprintf("x%d", i+1), lo, hi)
	}
	sum := s.NewIntVar("total", total, total)

	var c fd.Constraint
	var err error
	if len(weights) > 0 {
		c, err = fd.NewSumWeight(vars, weights, sum)
	} else {
		c, err = fd.NewSum(vars, sum)
	}
	if err != nil {
		return nil, nil, err
	}
	if err := s.Impose(c); err != nil {
		return nil, nil, err
	}
	if distinct {
		d, err := fd.NewAlldiff(vars)
		if err != nil {
			return nil, nil, err
		}
		if err := s.Impose(d); err != nil {
			return nil, nil, err
		}
	}
	return s, vars, nil
}
