package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/roach88/invapp/internal/seed"
)

// NewDemoCommand creates the demo command.
func NewDemoCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Insert the sample book, then list the table",
		Long: `Insert the sample book ("Mon livre", 10, 1, "Mr X", "00 56 00 56"),
then list the table.

Every run inserts another copy, so repeated runs accumulate duplicate rows.
Use add or import for real data.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(rootOpts, cmd)
		},
	}

	return cmd
}

func runDemo(opts *RootOptions, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := newFormatter(opts, cmd)

	st, err := openStore(opts)
	if err != nil {
		return formatter.Fail("failed to open database", err)
	}
	defer st.Close()

	id, err := st.Insert(ctx, seed.Demo())
	if err != nil {
		return formatter.Fail("failed to insert demo book", err)
	}
	formatter.VerboseLog("Inserted demo book %d", id)

	books, err := st.QueryAll(ctx)
	if err != nil {
		return formatter.Fail("failed to query books", err)
	}

	return outputBooks(formatter, books)
}
