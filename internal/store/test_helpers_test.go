package store

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/roach88/invapp/internal/book"
)

// createTestStore creates a new store in a temp dir for testing.
func createTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, CurrentSchemaVersion, opts...)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// demoDraft returns the record the demo command inserts.
func demoDraft() book.Draft {
	return book.NewDraft("Mon livre", 10, 1, "Mr X", "00 56 00 56")
}

// verifyPragma checks that a pragma is set to the expected value.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}

// getTableColumns returns the column names of table in declaration order.
func getTableColumns(t *testing.T, s *Store, table string) []string {
	t.Helper()
	rows, err := s.db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		t.Fatalf("table_info(%s) failed: %v", table, err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var (
			cid       int
			name      string
			typ       string
			notNull   int
			dfltValue any
			pk        int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dfltValue, &pk); err != nil {
			t.Fatalf("scan table_info failed: %v", err)
		}
		columns = append(columns, name)
	}
	return columns
}

func countRows(t *testing.T, s *Store) int {
	t.Helper()
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM books").Scan(&n); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	return n
}
