package book

import "golang.org/x/text/unicode/norm"

// Book is a stored inventory record.
type Book struct {
	ID            int64   `json:"id"`
	ProductName   string  `json:"product_name"`
	Price         int64   `json:"price"`
	Quantity      int64   `json:"quantity"`
	SupplierName  string  `json:"supplier_name"`
	SupplierPhone *string `json:"supplier_phone,omitempty"` // NULL when absent
}

// Draft is the input to an insert. A nil field is a missing value.
type Draft struct {
	ProductName   *string `yaml:"productName"`
	Price         *int64  `yaml:"price"`
	Quantity      *int64  `yaml:"quantity"`
	SupplierName  *string `yaml:"supplierName"`
	SupplierPhone *string `yaml:"supplierPhone,omitempty"`
}

// NewDraft builds a Draft with every field present.
// Pass an empty phone to leave supplierPhone NULL.
func NewDraft(productName string, price, quantity int64, supplierName, supplierPhone string) Draft {
	d := Draft{
		ProductName:  &productName,
		Price:        &price,
		Quantity:     &quantity,
		SupplierName: &supplierName,
	}
	if supplierPhone != "" {
		d.SupplierPhone = &supplierPhone
	}
	return d
}

// Normalized returns a copy of d with text fields NFC-normalized.
// Missing fields stay missing.
func (d Draft) Normalized() Draft {
	out := d
	out.ProductName = normalizePtr(d.ProductName)
	out.SupplierName = normalizePtr(d.SupplierName)
	out.SupplierPhone = normalizePtr(d.SupplierPhone)
	return out
}

// PhoneOrNull renders the supplier phone the way the list view shows it.
func (b Book) PhoneOrNull() string {
	if b.SupplierPhone == nil {
		return "null"
	}
	return *b.SupplierPhone
}

func normalizePtr(s *string) *string {
	if s == nil {
		return nil
	}
	n := norm.NFC.String(*s)
	return &n
}
