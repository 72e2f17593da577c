package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show every book in the database",
		Long: `Show every book in the database.

Text output starts with the number of books, then one line per book:
  _id - productName - price - quantity - supplierName - supplierPhone
A book without a supplier phone shows "null" in the last column.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, cmd)
		},
	}

	return cmd
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := newFormatter(opts, cmd)

	st, err := openStore(opts)
	if err != nil {
		return formatter.Fail("failed to open database", err)
	}
	defer st.Close()

	books, err := st.QueryAll(ctx)
	if err != nil {
		return formatter.Fail("failed to query books", err)
	}

	return outputBooks(formatter, books)
}
