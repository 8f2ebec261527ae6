package queens

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gitrdm/fdprop/cmd/fdprop/options"
	"github.com/gitrdm/fdprop/pkg/models"
	"github.com/gitrdm/fdprop/pkg/search"
)

// NewQueensCommand returns the n-queens command.
func NewQueensCommand(g *options.Global) *cobra.Command {
	var (
		n     int
		board bool
	)
	cmd := &cobra.Command{
		Use:   "queens",
		Short: "Places n non-attacking queens on an n x n board",
		Long: `Places n queens so that no two share a row, a column or a diagonal.
Every solution is printed as the column of the queen in each row.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.SearchConfig()
			if err != nil {
				return err
			}
			m, err := models.Queens(n, g.StoreOptions()...)
			if err != nil {
				return err
			}
			res, err := search.Solve(cmd.Context(), m.Store, m.Decision, cfg)
			if res != nil {
				report(cmd.OutOrStdout(), n, res, board)
			}
			return err
		},
	}
	cmd.Flags().IntVarP(&n, "size", "n", 8, "board size")
	cmd.Flags().BoolVar(&board, "board", false, "draw each solution as a board")
	return cmd
}

func report(w io.Writer, n int, res *search.Result, board bool) {
	for _, sol := range res.Solutions {
		if !board {
			fmt.Fprintln(w, strings.Trim(fmt.Sprint(sol), "[]"))
			continue
		}
		for _, col := range sol {
			row := []byte(strings.Repeat(". ", n))
			row[2*col] = 'Q'
			fmt.Fprintln(w, strings.TrimRight(string(row), " "))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "%d solution(s); %s\n", len(res.Solutions), res.Stats)
}
