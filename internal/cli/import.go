package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/invapp/internal/seed"
)

// ImportResult is the JSON payload of import.
type ImportResult struct {
	File     string  `json:"file"`
	Inserted int     `json:"inserted"`
	IDs      []int64 `json:"ids"`
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <seed.yaml>",
		Short: "Insert every book listed in a YAML seed file",
		Long: `Insert every book listed in a YAML seed file.

The file is checked against the seed schema before anything is written.
Books are then inserted in file order; the first rejected book stops the
import, and books inserted before it are kept.

Example seed file:
  books:
    - productName: Mon livre
      price: 10
      quantity: 1
      supplierName: Mr X
      supplierPhone: 00 56 00 56`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runImport(opts *RootOptions, path string, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := newFormatter(opts, cmd)

	drafts, err := seed.LoadFile(path)
	if err != nil {
		return formatter.Fail("failed to load seed file", err)
	}
	formatter.VerboseLog("Loaded %d book(s) from %s", len(drafts), path)

	st, err := openStore(opts)
	if err != nil {
		return formatter.Fail("failed to open database", err)
	}
	defer st.Close()

	ids := make([]int64, 0, len(drafts))
	for i, d := range drafts {
		id, err := st.Insert(ctx, d)
		if err != nil {
			return formatter.Fail(fmt.Sprintf("book #%d rejected after %d inserted", i+1, len(ids)), err)
		}
		ids = append(ids, id)
	}

	if opts.Format == "json" {
		return formatter.Success(ImportResult{File: path, Inserted: len(ids), IDs: ids})
	}
	return formatter.Success(fmt.Sprintf("Imported %d book(s) from %s", len(ids), path))
}
