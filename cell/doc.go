// Package cell provides the typed value model used to move data in and out
// of SQLite: a tagged Value for a single column, a named Field, and Row/Rows
// for query results.
//
//   - https://www.sqlite.org/datatype3.html
package cell
