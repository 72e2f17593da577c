// Package book provides the book record types for the inventory store.
//
// This package contains type definitions, the column contract of the books
// table and required-field validation. It imports nothing internal; store,
// seed and cli all build on it.
//
// Key design constraints:
//   - Prices and quantities are int64 (no float types)
//   - Draft fields are pointers; nil means "missing", "" is a present value
//   - Names are NFC-normalized before they reach the store
package book
