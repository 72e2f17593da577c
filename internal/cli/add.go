package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/invapp/internal/book"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Name     string
	Price    int64
	Quantity int64
	Supplier string
	Phone    string
}

// AddResult is the JSON payload of add.
type AddResult struct {
	ID int64 `json:"id"`
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Insert one book",
		Long: `Insert one book into the database and print its id.

--name, --price, --quantity and --supplier are required; --phone is optional.
A flag that is not given is a missing field, so an empty --name "" is
accepted while leaving --name out is rejected.

Example:
  invapp add --name "Mon livre" --price 10 --quantity 1 --supplier "Mr X" --phone "00 56 00 56"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(opts, cmd)
		},
	}

	bindAddFlags(cmd, opts)

	return cmd
}

func bindAddFlags(cmd *cobra.Command, opts *AddOptions) {
	cmd.Flags().StringVar(&opts.Name, "name", "", "product name")
	cmd.Flags().Int64Var(&opts.Price, "price", 0, "price")
	cmd.Flags().Int64Var(&opts.Quantity, "quantity", 0, "quantity in stock")
	cmd.Flags().StringVar(&opts.Supplier, "supplier", "", "supplier name")
	cmd.Flags().StringVar(&opts.Phone, "phone", "", "supplier phone (optional)")
}

// draftFromFlags builds a Draft holding only the flags that were set.
func draftFromFlags(opts *AddOptions, cmd *cobra.Command) book.Draft {
	var d book.Draft
	flags := cmd.Flags()
	if flags.Changed("name") {
		d.ProductName = &opts.Name
	}
	if flags.Changed("price") {
		d.Price = &opts.Price
	}
	if flags.Changed("quantity") {
		d.Quantity = &opts.Quantity
	}
	if flags.Changed("supplier") {
		d.SupplierName = &opts.Supplier
	}
	if flags.Changed("phone") {
		d.SupplierPhone = &opts.Phone
	}
	return d
}

func runAdd(opts *AddOptions, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return formatter.Fail("failed to open database", err)
	}
	defer st.Close()

	id, err := st.Insert(ctx, draftFromFlags(opts, cmd))
	if err != nil {
		return formatter.Fail("failed to add book", err)
	}

	if opts.Format == "json" {
		return formatter.Success(AddResult{ID: id})
	}
	return formatter.Success(fmt.Sprintf("Inserted book %d", id))
}
