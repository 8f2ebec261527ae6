package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitrdm/fdprop/pkg/fd"
)

// Set with -ldflags "-X github.com/gitrdm/fdprop/cmd/fdprop/version.gitCommit=..."
var (
	gitCommit string
	buildDate string
)

// NewVersionCommand returns the command that prints the build version.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Prints the version of the propagation core",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := fd.GetVersionInfo()
			info.GitCommit = gitCommit
			info.BuildDate = buildDate

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "fdprop %s (%s)\n", info.Version, info.GoVersion)
			if info.GitCommit != "" {
				fmt.Fprintf(out, "commit %s built %s\n", info.GitCommit, info.BuildDate)
			}
			return nil
		},
	}
}
