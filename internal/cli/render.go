package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/roach88/invapp/internal/book"
)

// fieldSeparator joins the fields of one rendered row.
const fieldSeparator = " - "

// ListResult is the JSON payload of list and demo.
type ListResult struct {
	Count int         `json:"count"`
	Books []book.Book `json:"books"`
}

// RenderBooks writes the text view of the books table: a count line, a blank
// line, the column header and one delimited line per record.
func RenderBooks(w io.Writer, books []book.Book) error {
	if _, err := fmt.Fprintf(w, "The books table contains %d books.\n\n", len(books)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Join(book.Columns, fieldSeparator)); err != nil {
		return err
	}
	for _, b := range books {
		if _, err := fmt.Fprintln(w, renderRow(b)); err != nil {
			return err
		}
	}
	return nil
}

func renderRow(b book.Book) string {
	return strings.Join([]string{
		fmt.Sprint(b.ID),
		b.ProductName,
		fmt.Sprint(b.Price),
		fmt.Sprint(b.Quantity),
		b.SupplierName,
		b.PhoneOrNull(),
	}, fieldSeparator)
}

// outputBooks writes books in the configured format.
func outputBooks(f *OutputFormatter, books []book.Book) error {
	if f.Format == "json" {
		return f.Success(ListResult{Count: len(books), Books: books})
	}
	return RenderBooks(f.Writer, books)
}
