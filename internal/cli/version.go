package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of invapp",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			if rootOpts.Format == "json" {
				return formatter.Success(map[string]string{"version": Version})
			}
			return formatter.Success(fmt.Sprintf("invapp v%s", Version))
		},
	}
}
