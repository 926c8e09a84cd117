package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the layoutcore inspection CLI's command tree.
func NewRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:     "layoutcore",
		Short:   "Inspect the tiling layout engine against a synthetic container tree",
		Version: version,
	}

	root.AddCommand(newArrangeCmd())
	root.AddCommand(newWatchCmd())
	return root
}

// Execute runs the CLI with the given version string, returning the first
// error a subcommand reports.
func Execute(version string) error {
	return NewRootCmd(version).Execute()
}
