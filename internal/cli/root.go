package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/invapp/internal/store"
	"github.com/roach88/invapp/internal/telemetry"
)

// Version is the invapp release.
const Version = "0.3.0"

// DefaultDatabase is the store file used when neither --db nor INVAPP_DB is set.
const DefaultDatabase = "products.db"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	Database string
	Metrics  bool

	logger    *slog.Logger
	collector *telemetry.Collector
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the invapp CLI.
// The --metrics dump is written by Execute, not by the command itself.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

// Execute runs the CLI with args. When --metrics is set the collected series
// are written to stderr once the command returns, whether it failed or not.
func Execute(args []string, stdout, stderr io.Writer) error {
	opts := &RootOptions{}
	cmd := newRootCommand(opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if opts.Metrics && opts.collector != nil {
		opts.collector.WritePrometheus(stderr)
	}
	return err
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invapp",
		Short: "invapp - book inventory",
		Long: fmt.Sprintf(`invapp (v%s)

Keeps a single-table inventory of books (name, price, quantity, supplier)
in a local SQLite file. Every flag can also be set through the environment
as INVAPP_<FLAG>, e.g. INVAPP_DB=./shop.db.`, Version),
		SilenceErrors: true, // main reports errors that commands did not
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd, opts); err != nil {
				return err
			}
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			opts.logger = telemetry.NewLogger(cmd.ErrOrStderr(), opts.Verbose)
			opts.collector = telemetry.NewCollector()
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", DefaultDatabase, "path to SQLite database")
	cmd.PersistentFlags().BoolVar(&opts.Metrics, "metrics", false, "write Prometheus metrics to stderr on exit")

	// Add subcommands
	cmd.AddCommand(NewInitCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewDemoCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewInfoCommand(opts))
	cmd.AddCommand(NewVersionCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// openStore opens the configured database at the current schema version.
// The caller owns the returned store and must Close it.
func openStore(opts *RootOptions) (*store.Store, error) {
	path := opts.Database
	if path == "" {
		path = DefaultDatabase
	}

	var storeOpts []store.Option
	if opts.logger != nil {
		storeOpts = append(storeOpts, store.WithLogger(opts.logger))
	}
	if opts.collector != nil {
		storeOpts = append(storeOpts, store.WithMetrics(opts.collector))
	}
	return store.Open(path, store.CurrentSchemaVersion, storeOpts...)
}

// newFormatter builds the formatter for one command run.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}
