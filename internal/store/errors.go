package store

import (
	"errors"
	"fmt"

	"github.com/roach88/invapp/internal/book"
)

var (
	// ErrStorageUnavailable wraps every failure to create, open, read or write
	// the backing file. The driver error stays reachable through errors.As.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrNotOpen is returned by operations on a store that was never opened
	// or has been closed.
	ErrNotOpen = errors.New("store not open")

	// ErrVersionDowngrade is returned by Open when the file carries a newer
	// schema version than requested.
	ErrVersionDowngrade = errors.New("cannot downgrade schema version")

	// ErrInvalidVersion is returned by Open for schema versions below 1.
	ErrInvalidVersion = errors.New("invalid schema version")

	// ErrValidation is book.ErrValidation, re-exported for callers that only
	// import store.
	ErrValidation = book.ErrValidation
)

// unavailable tags err as a storage failure for operation op.
func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorageUnavailable, op, err)
}
