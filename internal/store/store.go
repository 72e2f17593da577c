package store

import (
	"context"
	_ "embed"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/invapp/internal/book"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 1 - Initial books table
const CurrentSchemaVersion = 1

const (
	driverName     = "sqlite3"
	dialectSQLite3 = "sqlite3"
)

// Store provides durable storage for book records.
// Uses SQLite with WAL mode for concurrent read access.
type Store struct {
	mu      sync.RWMutex // guards db against Close
	writeMu sync.Mutex   // one insert in flight at a time
	db      *sqlx.DB
	path    string
	dialect goqu.DialectWrapper

	logger     Logger
	metrics    MetricsCollector
	migrations map[MigrationKey]MigrationFunc
}

// Open creates or opens a SQLite database at the given path and brings its
// schema to the given version.
//
// A fresh or empty file gets the books table and user_version = version.
// A file already at version is opened as-is. See the package documentation
// for upgrades and downgrades.
//
// Every failure to reach or read the file is returned wrapped in
// ErrStorageUnavailable. This function is idempotent - safe to call multiple
// times against the same path.
func Open(path string, version int, opts ...Option) (*Store, error) {
	if version < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVersion, version)
	}

	s := &Store{
		path:       path,
		dialect:    goqu.Dialect(dialectSQLite3),
		logger:     nopLogger{},
		metrics:    nopMetrics{},
		migrations: builtinMigrations(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}

	start := time.Now()
	db, err := openDB(path)
	if err == nil {
		err = s.applySchema(context.Background(), db, version)
		if err != nil {
			db.Close()
		}
	}
	s.observe("open", start, err)
	if err != nil {
		s.logger.Error("open store failed", "path", path, "error", err)
		return nil, err
	}

	s.db = db
	s.logger.Debug("store opened", "path", path, "version", version)
	return s, nil
}

// openDB opens the file, verifies it is a database and applies pragmas.
func openDB(path string) (*sqlx.DB, error) {
	// Open database (creates file if doesn't exist)
	db, err := sqlx.Open(driverName, dataSourceName(path))
	if err != nil {
		return nil, unavailable("open database", err)
	}

	// Verify connection works
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, unavailable("connect to database", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, unavailable("apply pragmas", err)
	}

	return db, nil
}

// dataSourceName renders path as a file: URI so that '?' and '#' in the
// name are escaped instead of being read as the start of driver parameters.
func dataSourceName(path string) string {
	return "file:" + (&url.URL{Path: path}).EscapedPath() + "?_txlock=immediate"
}

// applyPragmas sets required SQLite configuration.
// A corrupt file fails here with "file is not a database".
func applyPragmas(db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// Close releases the database handle. The store is unopened afterwards.
// Closing an unopened store is a no-op.
func (s *Store) Close() error {
	s.mu.Lock()
	db := s.db
	s.db = nil
	s.mu.Unlock()

	if db == nil {
		return nil
	}
	if err := db.Close(); err != nil {
		return unavailable("close database", err)
	}
	s.logger.Debug("store closed", "path", s.path)
	return nil
}

// Path returns the file the store was opened on.
func (s *Store) Path() string {
	return s.path
}

// Version returns the schema version recorded in the file.
func (s *Store) Version(ctx context.Context) (int, error) {
	db, release, err := s.acquire()
	if err != nil {
		return 0, err
	}
	defer release()

	var version int
	if err := db.GetContext(ctx, &version, "PRAGMA user_version"); err != nil {
		return 0, unavailable("get user_version", err)
	}
	return version, nil
}

// acquire returns the open handle and a release func that must be called
// once the caller is done with it. Close waits for outstanding handles.
func (s *Store) acquire() (*sqlx.DB, func(), error) {
	if s == nil {
		return nil, nil, ErrNotOpen
	}
	s.mu.RLock()
	if s.db == nil {
		s.mu.RUnlock()
		return nil, nil, ErrNotOpen
	}
	return s.db, s.mu.RUnlock, nil
}

// tableExists reports whether the books table is present.
func tableExists(ctx context.Context, q sqlx.QueryerContext) (bool, error) {
	var n int
	err := sqlx.GetContext(ctx, q, &n,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?",
		book.TableName,
	)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
