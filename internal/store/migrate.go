package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// MigrationKey identifies one upgrade step, From -> To = From+1.
type MigrationKey struct {
	From int
	To   int
}

// MigrationFunc upgrades the schema by one step inside the open transaction.
type MigrationFunc func(ctx context.Context, tx *sqlx.Tx) error

// builtinMigrations returns the dispatch table for released schema versions.
// The books table has not changed since version 1, so it is empty.
func builtinMigrations() map[MigrationKey]MigrationFunc {
	return map[MigrationKey]MigrationFunc{}
}

// applySchema creates the books table on a fresh file, or walks the
// migration table up to target. Runs in a single immediate transaction so
// concurrent openers of the same fresh file create the table exactly once.
func (s *Store) applySchema(ctx context.Context, db *sqlx.DB, target int) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return unavailable("begin schema transaction", err)
	}
	defer tx.Rollback()

	var current int
	if err := tx.GetContext(ctx, &current, "PRAGMA user_version"); err != nil {
		return unavailable("get user_version", err)
	}

	exists, err := tableExists(ctx, tx)
	if err != nil {
		return unavailable("inspect schema", err)
	}

	switch {
	case current > target:
		return fmt.Errorf("%w: %w: file is at version %d, requested %d",
			ErrStorageUnavailable, ErrVersionDowngrade, current, target)

	case current == target && exists:
		s.logger.Debug("schema up to date", "version", current)
		return nil

	case !exists:
		// Fresh or empty file. A file with a version but no table was
		// emptied by hand; recreate rather than migrate nothing.
		if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
			return unavailable("create books table", err)
		}
		s.logger.Info("books table created", "path", s.path, "version", target)

	case current == 0:
		// Table predates version tracking; adopt it at the target version.
		s.logger.Warn("books table has no schema version, adopting", "version", target)

	default:
		if err := s.runMigrations(ctx, tx, current, target); err != nil {
			return err
		}
	}

	// PRAGMA does not accept bound parameters; target is an int.
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", target)); err != nil {
		return unavailable("set user_version", err)
	}

	if err := tx.Commit(); err != nil {
		return unavailable("commit schema", err)
	}
	return nil
}

// runMigrations applies each step from current to target in order.
// A step with no registered migration only bumps the version.
func (s *Store) runMigrations(ctx context.Context, tx *sqlx.Tx, current, target int) error {
	for v := current; v < target; v++ {
		key := MigrationKey{From: v, To: v + 1}
		fn, ok := s.migrations[key]
		if !ok {
			s.logger.Debug("no migration registered, bumping version", "from", key.From, "to", key.To)
			continue
		}
		if err := fn(ctx, tx); err != nil {
			return fmt.Errorf("migrate %d -> %d: %w", key.From, key.To, err)
		}
		s.logger.Info("migration applied", "from", key.From, "to", key.To)
	}
	return nil
}
