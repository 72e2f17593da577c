package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewInfoCommand creates the info command.
func NewInfoCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "info",
		Short:         "Show database path, schema version and row count",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(rootOpts, cmd)
		},
	}

	return cmd
}

func runInfo(opts *RootOptions, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := newFormatter(opts, cmd)

	st, err := openStore(opts)
	if err != nil {
		return formatter.Fail("failed to open database", err)
	}
	defer st.Close()

	version, err := st.Version(ctx)
	if err != nil {
		return formatter.Fail("failed to read schema version", err)
	}
	count, err := st.Count(ctx)
	if err != nil {
		return formatter.Fail("failed to count books", err)
	}

	result := InfoResult{Path: st.Path(), Version: version, Count: count}
	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return formatter.Success(fmt.Sprintf("Database: %s\nSchema version: %d\nBooks: %d",
		result.Path, result.Version, result.Count))
}
