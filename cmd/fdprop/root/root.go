package root

import (
	"github.com/spf13/cobra"

	"github.com/gitrdm/fdprop/cmd/fdprop/bench"
	"github.com/gitrdm/fdprop/cmd/fdprop/options"
	"github.com/gitrdm/fdprop/cmd/fdprop/queens"
	"github.com/gitrdm/fdprop/cmd/fdprop/sum"
	"github.com/gitrdm/fdprop/cmd/fdprop/tour"
	"github.com/gitrdm/fdprop/cmd/fdprop/version"
)

// NewRootCmd builds the fdprop command with its global flags and every
// subcommand attached.
func NewRootCmd() *cobra.Command {
	g := &options.Global{}
	rootCmd := &cobra.Command{
		Use:   "fdprop",
		Short: "fdprop solves finite-domain constraint problems",
		Long: `A finite-domain constraint propagation engine with a depth-first
labeling driver. The subcommands build classic problems and print their
solutions together with search statistics.`,
		SilenceUsage: true,
	}
	g.AddFlags(rootCmd.PersistentFlags())

	// add sub-commands
	rootCmd.AddCommand(queens.NewQueensCommand(g))
	rootCmd.AddCommand(tour.NewTourCommand(g))
	rootCmd.AddCommand(sum.NewSumCommand(g))
	rootCmd.AddCommand(bench.NewBenchCommand(g))
	rootCmd.AddCommand(version.NewVersionCommand())

	return rootCmd
}
