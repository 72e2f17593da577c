package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/roach88/invapp/internal/book"
)

// execer is the write side of *sqlx.DB and *sqlx.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// bookRow is the scan target for one row of the books table.
type bookRow struct {
	ID            int64          `db:"_id"`
	ProductName   string         `db:"productName"`
	Price         int64          `db:"price"`
	Quantity      int64          `db:"quantity"`
	SupplierName  string         `db:"supplierName"`
	SupplierPhone sql.NullString `db:"supplierPhone"`
}

func (r bookRow) toBook() book.Book {
	b := book.Book{
		ID:           r.ID,
		ProductName:  r.ProductName,
		Price:        r.Price,
		Quantity:     r.Quantity,
		SupplierName: r.SupplierName,
	}
	if r.SupplierPhone.Valid {
		phone := r.SupplierPhone.String
		b.SupplierPhone = &phone
	}
	return b
}

// QueryAll returns every stored book, ordered by _id ascending.
// The ordering is an implementation detail; callers should not rely on it.
//
// The result is fully materialized: no database resources are held once
// QueryAll returns. Returns an empty slice (not nil) for an empty table.
func (s *Store) QueryAll(ctx context.Context) ([]book.Book, error) {
	db, release, err := s.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	start := time.Now()
	books, err := s.queryAll(ctx, db)
	s.observe("query_all", start, err)
	if err != nil {
		return nil, err
	}
	return books, nil
}

func (s *Store) queryAll(ctx context.Context, db *sqlx.DB) ([]book.Book, error) {
	query, args, err := s.selectQuery()
	if err != nil {
		return nil, err
	}

	var rows []bookRow
	if err := db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, unavailable("query books", err)
	}

	books := make([]book.Book, 0, len(rows))
	for _, r := range rows {
		books = append(books, r.toBook())
	}
	return books, nil
}

// ForEach streams every stored book to fn in the same order as QueryAll.
// Iteration stops at the first error from fn, which is returned unchanged.
//
// The underlying rows are closed before ForEach returns on every path,
// including a panic in fn. fn must not call back into the store: the rows
// hold the only connection until ForEach returns.
func (s *Store) ForEach(ctx context.Context, fn func(book.Book) error) (err error) {
	db, release, err := s.acquire()
	if err != nil {
		return err
	}
	defer release()

	start := time.Now()
	defer func() { s.observe("for_each", start, err) }()

	query, args, err := s.selectQuery()
	if err != nil {
		return err
	}

	rows, err := db.QueryxContext(ctx, query, args...)
	if err != nil {
		return unavailable("query books", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r bookRow
		if err := rows.StructScan(&r); err != nil {
			return unavailable("scan book", err)
		}
		if err := fn(r.toBook()); err != nil {
			return err
		}
	}

	if err := rows.Err(); err != nil {
		return unavailable("iterate books", err)
	}
	return nil
}

// Count returns the number of stored books.
func (s *Store) Count(ctx context.Context) (int64, error) {
	db, release, err := s.acquire()
	if err != nil {
		return 0, err
	}
	defer release()

	query, args, err := s.dialect.
		From(book.TableName).
		Prepared(true).
		Select(goqu.COUNT(goqu.Star())).
		ToSQL()
	if err != nil {
		return 0, err
	}

	var n int64
	if err := db.GetContext(ctx, &n, query, args...); err != nil {
		return 0, unavailable("count books", err)
	}
	return n, nil
}

// selectQuery builds the SELECT over all columns in table order.
func (s *Store) selectQuery() (string, []any, error) {
	cols := make([]any, len(book.Columns))
	for i, c := range book.Columns {
		cols[i] = c
	}

	return s.dialect.
		From(book.TableName).
		Prepared(true).
		Select(cols...).
		Order(goqu.I(book.ColumnID).Asc()).
		ToSQL()
}
