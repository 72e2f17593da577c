package telemetry

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// NewLogger builds a text logger on w. Verbose enables debug output;
// otherwise only warnings and errors are written.
//
// Every record carries a run_id (UUIDv7) so lines from one invocation can
// be grouped when several runs share a log file.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("run_id", NewRunID())
}

// NewRunID returns a time-sortable identifier for one process run.
func NewRunID() string {
	return uuid.Must(uuid.NewV7()).String()
}
