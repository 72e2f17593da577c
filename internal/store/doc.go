// Package store provides SQLite-backed durable storage for book records.
//
// The store owns a single table, books, and exposes three operations on it:
//   - Insert: validate a book.Draft and append it, returning the new _id
//   - QueryAll: return every stored book as a fully materialized slice
//   - ForEach: stream rows to a callback; rows are released on every exit path
//
// # Lifecycle
//
// A Store is either unopened (the zero value, or after Close) or opened.
// Open is the only way in. Every operation on an unopened store returns
// ErrNotOpen. Opening the same file repeatedly is safe: the table is created
// exactly once, the first time a fresh file is opened.
//
// # Schema Versions
//
// The schema version lives in PRAGMA user_version. Opening with the stored
// version is a no-op. Opening with a higher version walks the migration
// table one step at a time; steps with no registered migration only bump the
// version. Opening with a lower version fails with ErrVersionDowngrade.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - _txlock=immediate: Schema setup takes the write lock up front
//
// Inserts are serialized inside the process; SQLite serializes writers
// across processes.
package store
