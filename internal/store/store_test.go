package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/invapp/internal/book"
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path, CurrentSchemaVersion)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	// Verify file was created
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
	if s.Path() != path {
		t.Errorf("Path() = %q, want %q", s.Path(), path)
	}
}

func TestOpen_OpensExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s1, err := Open(path, CurrentSchemaVersion)
	if err != nil {
		t.Fatalf("first Open() failed: %v", err)
	}
	if _, err := s1.Insert(context.Background(), demoDraft()); err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}
	s1.Close()

	s2, err := Open(path, CurrentSchemaVersion)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer s2.Close()

	if n := countRows(t, s2); n != 1 {
		t.Errorf("row count after reopen = %d, want 1", n)
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	// Open multiple times, inserting once each
	for i := 0; i < 3; i++ {
		s, err := Open(path, CurrentSchemaVersion)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		if _, err := s.Insert(context.Background(), demoDraft()); err != nil {
			t.Fatalf("Insert() iteration %d failed: %v", i, err)
		}
		s.Close()
	}

	s, err := Open(path, CurrentSchemaVersion)
	if err != nil {
		t.Fatalf("final Open() failed: %v", err)
	}
	defer s.Close()

	var tables int
	err = s.db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='books'").Scan(&tables)
	if err != nil {
		t.Fatalf("sqlite_master query failed: %v", err)
	}
	if tables != 1 {
		t.Errorf("books tables = %d, want 1", tables)
	}
	if n := countRows(t, s); n != 3 {
		t.Errorf("row count = %d, want 3", n)
	}
}

func TestOpen_ConcurrentHandles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s1, err := Open(path, CurrentSchemaVersion)
	require.NoError(t, err)
	defer s1.Close()

	s2, err := Open(path, CurrentSchemaVersion)
	require.NoError(t, err)
	defer s2.Close()

	id, err := s1.Insert(context.Background(), demoDraft())
	require.NoError(t, err)

	books, err := s2.QueryAll(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, id, books[0].ID)
}

func TestOpen_InvalidPath(t *testing.T) {
	// Try to open in non-existent directory
	path := "/nonexistent/dir/test.db"

	_, err := Open(path, CurrentSchemaVersion)
	if err == nil {
		t.Fatal("expected error for invalid path, got nil")
	}
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("expected ErrStorageUnavailable, got %v", err)
	}
}

func TestOpen_PathWithURICharacters(t *testing.T) {
	names := []string{"inv?entory.db", "inv#entory.db", "my books.db", "100%.db"}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, name)

			s, err := Open(path, CurrentSchemaVersion)
			require.NoError(t, err)
			_, err = s.Insert(context.Background(), demoDraft())
			require.NoError(t, err)
			require.NoError(t, s.Close())

			_, err = os.Stat(path)
			require.NoError(t, err, "database must be created at the exact path")

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			for _, e := range entries {
				assert.True(t, strings.HasPrefix(e.Name(), name), "unexpected file %q", e.Name())
			}

			s, err = Open(path, CurrentSchemaVersion)
			require.NoError(t, err)
			defer s.Close()
			n, err := s.Count(context.Background())
			require.NoError(t, err)
			assert.Equal(t, int64(1), n)
		})
	}
}

func TestDataSourceName(t *testing.T) {
	assert.Equal(t, "file:products.db?_txlock=immediate", dataSourceName("products.db"))
	assert.Equal(t, "file:/tmp/inv%3Fentory.db?_txlock=immediate", dataSourceName("/tmp/inv?entory.db"))
}

func TestOpen_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.db")
	junk := make([]byte, 4096)
	for i := range junk {
		junk[i] = byte(i % 251)
	}
	require.NoError(t, os.WriteFile(path, junk, 0o600))

	_, err := Open(path, CurrentSchemaVersion)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestOpen_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	s, err := Open(path, CurrentSchemaVersion)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, 0, countRows(t, s))
}

func TestOpen_InvalidVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	_, err := Open(path, 0)
	assert.ErrorIs(t, err, ErrInvalidVersion)

	// nothing created
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestOpen_NilOption(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	_, err := Open(path, CurrentSchemaVersion, WithLogger(nil))
	assert.Error(t, err)

	_, err = Open(path, CurrentSchemaVersion, WithMetrics(nil))
	assert.Error(t, err)
}

func TestClose_NilDB(t *testing.T) {
	s := &Store{db: nil}
	err := s.Close()
	if err != nil {
		t.Errorf("Close() on nil db should not error: %v", err)
	}
}

func TestClose_MultipleCalls(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path, CurrentSchemaVersion)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	if err := s.Close(); err != nil {
		t.Errorf("first Close() failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() failed: %v", err)
	}
}

func TestNotOpen(t *testing.T) {
	ctx := context.Background()

	closed := createTestStore(t)
	require.NoError(t, closed.Close())

	stores := map[string]*Store{
		"zero value": {},
		"closed":     closed,
		"nil":        nil,
	}

	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			_, err := s.Insert(ctx, demoDraft())
			assert.ErrorIs(t, err, ErrNotOpen)

			_, err = s.QueryAll(ctx)
			assert.ErrorIs(t, err, ErrNotOpen)

			err = s.ForEach(ctx, func(b book.Book) error { return nil })
			assert.ErrorIs(t, err, ErrNotOpen)

			_, err = s.Count(ctx)
			assert.ErrorIs(t, err, ErrNotOpen)

			_, err = s.Version(ctx)
			assert.ErrorIs(t, err, ErrNotOpen)
		})
	}
}

// Pragma tests

func TestPragma_JournalMode(t *testing.T) {
	s := createTestStore(t)

	if err := s.verifyPragma("journal_mode", "wal"); err != nil {
		t.Error(err)
	}
}

func TestPragma_Synchronous(t *testing.T) {
	s := createTestStore(t)

	// NORMAL = 1
	if err := s.verifyPragma("synchronous", "1"); err != nil {
		t.Error(err)
	}
}

func TestPragma_BusyTimeout(t *testing.T) {
	s := createTestStore(t)

	if err := s.verifyPragma("busy_timeout", "5000"); err != nil {
		t.Error(err)
	}
}

// Schema tests

func TestSchema_BooksTable(t *testing.T) {
	s := createTestStore(t)

	columns := getTableColumns(t, s, "books")
	assert.Equal(t, book.Columns, columns)
}

func TestSchema_Version(t *testing.T) {
	s := createTestStore(t)

	v, err := s.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion, v)
}

func TestSchema_NotNullConstraints(t *testing.T) {
	s := createTestStore(t)

	// Bypass validation to prove the table enforces the same contract.
	_, err := s.db.Exec(`INSERT INTO books (productName, price, quantity) VALUES ('x', 1, 1)`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOT NULL")
	assert.Equal(t, 0, countRows(t, s))
}

// Migration tests

func TestMigrations_BuiltinTableEmpty(t *testing.T) {
	assert.Empty(t, builtinMigrations())
}

func TestMigrations_UpgradeRunsRegisteredStep(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s1, err := Open(path, 1)
	require.NoError(t, err)
	_, err = s1.Insert(context.Background(), demoDraft())
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	calls := 0
	steps := map[MigrationKey]MigrationFunc{
		{From: 1, To: 2}: func(ctx context.Context, tx *sqlx.Tx) error {
			calls++
			_, err := tx.ExecContext(ctx, "CREATE INDEX idx_books_supplier ON books(supplierName)")
			return err
		},
	}

	s2, err := Open(path, 3, WithMigrations(steps))
	require.NoError(t, err)
	defer s2.Close()

	assert.Equal(t, 1, calls)
	v, err := s2.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, v)
	assert.Equal(t, 1, countRows(t, s2))

	var idx int
	require.NoError(t, s2.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name='idx_books_supplier'",
	).Scan(&idx))
	assert.Equal(t, 1, idx)

	// Reopening at the same version does not rerun the step.
	require.NoError(t, s2.Close())
	s3, err := Open(path, 3, WithMigrations(steps))
	require.NoError(t, err)
	defer s3.Close()
	assert.Equal(t, 1, calls)
}

func TestMigrations_FailedStepRollsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s1, err := Open(path, 1)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	boom := errors.New("boom")
	_, err = Open(path, 2, WithMigrations(map[MigrationKey]MigrationFunc{
		{From: 1, To: 2}: func(ctx context.Context, tx *sqlx.Tx) error { return boom },
	}))
	require.ErrorIs(t, err, boom)

	s2, err := Open(path, 1)
	require.NoError(t, err)
	defer s2.Close()
	v, err := s2.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestMigrations_RejectsMultiVersionStep(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	_, err := Open(path, 3, WithMigrations(map[MigrationKey]MigrationFunc{
		{From: 1, To: 3}: func(ctx context.Context, tx *sqlx.Tx) error { return nil },
	}))
	assert.Error(t, err)
}

func TestMigrations_Downgrade(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path, 2)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = Open(path, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrVersionDowngrade)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestMigrations_AdoptsUnversionedTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.db")

	raw, err := sqlx.Open(driverName, path)
	require.NoError(t, err)
	_, err = raw.Exec(schemaSQL)
	require.NoError(t, err)
	_, err = raw.Exec(`INSERT INTO books (productName, price, quantity, supplierName) VALUES ('Old', 1, 1, 'Y')`)
	require.NoError(t, err)
	require.NoError(t, raw.Close())

	s, err := Open(path, CurrentSchemaVersion)
	require.NoError(t, err)
	defer s.Close()

	v, err := s.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion, v)
	assert.Equal(t, 1, countRows(t, s))
}
