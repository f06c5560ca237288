// Package queryir provides the filter representation used to read products.
//
// Screens and API handlers describe what they want (all rows, one id, rows
// whose name contains a substring) as a Select with an optional Predicate.
// Backends compile it; the SQLite backend lives in internal/querysql.
//
// Predicate is a sealed interface using the marker method pattern, so
// backends can switch exhaustively over:
//
//   - Equals: field = value
//   - Contains: field contains a substring (LIKE-style partial match)
//   - And: every predicate must hold
//
// Field names are checked against the product columns by Validate before a
// query reaches a backend. Values are never part of the query text.
package queryir
