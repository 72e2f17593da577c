package store

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/roach88/invapp/internal/book"
)

// Insert validates the draft and appends it to the books table.
// Returns the new _id, which is strictly greater than every id issued before.
//
// A draft missing a required field fails with a *book.ValidationError
// (errors.Is(err, ErrValidation)) and nothing is written. Text fields are
// NFC-normalized before the write.
func (s *Store) Insert(ctx context.Context, d book.Draft) (int64, error) {
	db, release, err := s.acquire()
	if err != nil {
		return 0, err
	}
	defer release()

	start := time.Now()
	id, err := s.insert(ctx, db, d)
	s.observe("insert", start, err)
	if err != nil {
		s.logger.Warn("insert book failed", "error", err)
		return 0, err
	}

	s.logger.Debug("book inserted", "id", id)
	return id, nil
}

func (s *Store) insert(ctx context.Context, db execer, d book.Draft) (int64, error) {
	if err := d.Validate(); err != nil {
		return 0, fmt.Errorf("insert book: %w", err)
	}
	d = d.Normalized()

	query, args, err := s.insertQuery(d)
	if err != nil {
		return 0, fmt.Errorf("insert book: build query: %w", err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, unavailable("insert book", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, unavailable("insert book: last insert id", err)
	}
	return id, nil
}

// insertQuery builds the prepared INSERT for a validated draft.
func (s *Store) insertQuery(d book.Draft) (string, []any, error) {
	var phone any // NULL unless present
	if d.SupplierPhone != nil {
		phone = *d.SupplierPhone
	}

	return s.dialect.
		Insert(book.TableName).
		Prepared(true).
		Rows(goqu.Record{
			book.ColumnProductName:   *d.ProductName,
			book.ColumnPrice:         *d.Price,
			book.ColumnQuantity:      *d.Quantity,
			book.ColumnSupplierName:  *d.SupplierName,
			book.ColumnSupplierPhone: phone,
		}).
		ToSQL()
}
