// Package sqlitec provides a lightweight wrapper for the SQLite C library
// installed on the system. It implements the sqliteh interfaces by mapping
// each method onto the matching sqlite3_* call and passing result codes
// through unchanged.
//
//   - https://www.sqlite.org/cintro.html
//   - https://www.sqlite.org/c3ref/intro.html
package sqlitec
