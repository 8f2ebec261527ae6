package bench

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/gitrdm/fdprop/cmd/fdprop/options"
	"github.com/gitrdm/fdprop/pkg/fd"
	"github.com/gitrdm/fdprop/pkg/models"
	"github.com/gitrdm/fdprop/pkg/search"
)

// NewBenchCommand returns the command that counts n-queens solutions
// for several board sizes on a worker pool.
func NewBenchCommand(g *options.Global) *cobra.Command {
	var (
		from, to int
		workers  int
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Counts n-queens solutions for a range of board sizes in parallel",
		Long: `Builds one independent store per board size and solves them on a pool
of workers. Each row reports the solution count and the search and store
counters of that size.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if from < 1 || to < from {
				return fmt.Errorf("invalid size range [%d, %d]", from, to)
			}
			cfg, err := g.SearchConfig()
			if err != nil {
				return err
			}
			problems := make([]search.Problem, 0, to-from+1)
			for n := from; n <= to; n++ {
				n := n
				problems = append(problems, func() (*fd.Store, []*fd.IntVar, error) {
					m, err := models.Queens(n, g.StoreOptions()...)
					if err != nil {
						return nil, nil, err
					}
					return m.Store, m.Decision, nil
				})
			}

			start := time.Now()
			results, err := search.SolveAll(cmd.Context(), problems, cfg, workers)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "size\tsolutions\tnodes\tfailures\tconsistency\telapsed")
			for i, res := range results {
				if res == nil {
					continue
				}
				fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\t%s\n", from+i, len(res.Solutions),
					res.Stats.Nodes, res.Stats.Failures, res.Store.ConsistencyCalls, res.Stats.Elapsed.Round(time.Microsecond))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "total %s\n", time.Since(start).Round(time.Millisecond))
			return err
		},
	}
	cmd.Flags().IntVar(&from, "from", 4, "smallest board")
	cmd.Flags().IntVar(&to, "to", 9, "largest board")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel solves (0 means one per CPU)")
	return cmd
}
