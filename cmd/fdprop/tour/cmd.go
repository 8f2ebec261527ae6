package tour

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gitrdm/fdprop/cmd/fdprop/options"
	"github.com/gitrdm/fdprop/pkg/fd"
	"github.com/gitrdm/fdprop/pkg/models"
	"github.com/gitrdm/fdprop/pkg/search"
)

// NewTourCommand returns the command that solves a random travelling
// salesman instance.
func NewTourCommand(g *options.Global) *cobra.Command {
	var (
		cities  int
		maxLeg  int
		seed    int64
		maxCost int
	)
	cmd := &cobra.Command{
		Use:   "tour",
		Short: "Finds the shortest round trip through randomly placed cities",
		Long: `Builds a random symmetric cost matrix and enumerates the round trips
that visit every city once. Successors are kept on a single circuit and the
leg costs are looked up with element constraints. The shortest trip found
is printed; --max-cost discards longer trips during propagation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.SearchConfig()
			if err != nil {
				return err
			}
			costs := models.RandomCosts(cities, maxLeg, seed)
			m, err := models.Tour(costs, maxCost, g.StoreOptions()...)
			if err != nil {
				return err
			}
			// the cost is bound once every successor is, so it is labelled last
			vars := make([]*fd.IntVar, 0, cities+1)
			vars = append(append(vars, m.Next...), m.Cost)
			res, err := search.Solve(cmd.Context(), m.Store, vars, cfg)
			if res == nil {
				return err
			}

			out := cmd.OutOrStdout()
			var best []int
			for _, sol := range res.Solutions {
				if best == nil || sol[cities] < best[cities] {
					best = sol
				}
			}
			if best == nil {
				fmt.Fprintln(out, "no tour")
			} else {
				order := models.TourOrder(best[:cities])
				fmt.Fprintf(out, "tour %s cost %d\n", strings.Trim(fmt.Sprint(order), "[]"), best[cities])
			}
			fmt.Fprintf(out, "%d tour(s) examined; %s\n", len(res.Solutions), res.Stats)
			return err
		},
	}
	cmd.Flags().IntVar(&cities, "cities", 6, "number of cities")
	cmd.Flags().IntVar(&maxLeg, "max-leg", 20, "largest cost of a single leg")
	cmd.Flags().Int64Var(&seed, "seed", 1, "seed of the cost matrix")
	cmd.Flags().IntVar(&maxCost, "max-cost", 0, "reject trips longer than this (0 means no bound)")
	return cmd
}
