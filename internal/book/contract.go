package book

// Table and column names of the books table.
// These are the names persisted on disk and shown in the list header.
const (
	TableName = "books"

	ColumnID            = "_id"
	ColumnProductName   = "productName"
	ColumnPrice         = "price"
	ColumnQuantity      = "quantity"
	ColumnSupplierName  = "supplierName"
	ColumnSupplierPhone = "supplierPhone"
)

// Columns lists every column in table order.
var Columns = []string{
	ColumnID,
	ColumnProductName,
	ColumnPrice,
	ColumnQuantity,
	ColumnSupplierName,
	ColumnSupplierPhone,
}

// RequiredColumns lists the NOT NULL columns a Draft must provide.
var RequiredColumns = []string{
	ColumnProductName,
	ColumnPrice,
	ColumnQuantity,
	ColumnSupplierName,
}
