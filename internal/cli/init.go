package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// InfoResult describes an opened store.
type InfoResult struct {
	Path    string `json:"path"`
	Version int    `json:"version"`
	Count   int64  `json:"count"`
}

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the books database if it does not exist",
		Long: `Create the books database if it does not exist.

Opening an existing database is harmless: the table is created once, on the
first open of a fresh file, and existing rows are kept.

Example:
  invapp init --db ./products.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(rootOpts, cmd)
		},
	}

	return cmd
}

func runInit(opts *RootOptions, cmd *cobra.Command) error {
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

	if opts.Format == "json" {
		return formatter.Success(InfoResult{Path: st.Path(), Version: version})
	}
	return formatter.Success(fmt.Sprintf("Books database ready at %s (schema version %d)", st.Path(), version))
}
