package book

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation matches every *ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError reports which required fields were missing from a Draft.
type ValidationError struct {
	Fields []string // column names, in table order
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: missing required field(s): %s", ErrValidation, strings.Join(e.Fields, ", "))
}

// Unwrap lets errors.Is(err, ErrValidation) succeed.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Validate checks that every required field is present.
// Returns nil or a *ValidationError naming all missing fields.
func (d Draft) Validate() error {
	var missing []string
	if d.ProductName == nil {
		missing = append(missing, ColumnProductName)
	}
	if d.Price == nil {
		missing = append(missing, ColumnPrice)
	}
	if d.Quantity == nil {
		missing = append(missing, ColumnQuantity)
	}
	if d.SupplierName == nil {
		missing = append(missing, ColumnSupplierName)
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}
