package cli

import (
	"bytes"
	"path/filepath"
	"testing"
)

// runCLI executes the root command with args and returns stdout and stderr.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := Execute(args, stdout, stderr)
	return stdout.String(), stderr.String(), err
}

// tempDB returns a database path inside a fresh temp dir.
func tempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "products.db")
}
