// Package sqliteh describes the SQLite capability the connection facade
// consumes: opening a handle, preparing statements, binding parameters,
// stepping and reading columns.
//
// The interfaces are deliberately close to the C API so an implementation
// is a direct mapping of sqlite3_* calls. Result codes are passed through
// unchanged.
//
//   - https://www.sqlite.org/c3ref/intro.html
package sqliteh

// Driver opens native database handles.
type Driver interface {
	// Open opens the database at path.
	//
	// When the returned code is not SQLITE_OK the native handle has already
	// been released. The returned Handle may be non-nil only to report the
	// error text through ErrMsg; every other method must not be called on it.
	//
	// https://www.sqlite.org/c3ref/open.html
	Open(path string) (Handle, ResultCode)
}

// Handle is an open sqlite3* connection.
type Handle interface {
	// https://www.sqlite.org/c3ref/close.html
	Close() ResultCode
	// Prepare compiles the first statement in query.
	// https://www.sqlite.org/c3ref/prepare.html
	Prepare(query string) (Statement, ResultCode)
	// https://www.sqlite.org/c3ref/last_insert_rowid.html
	LastInsertRowID() int64
	// https://www.sqlite.org/c3ref/changes.html
	Changes() int64
	// https://www.sqlite.org/c3ref/errcode.html
	ErrMsg() string
}

// Statement is a prepared sqlite3_stmt*.
//
// Parameter positions start at 1, column indexes start at 0.
type Statement interface {
	// BindParameterIndex returns the position of the named parameter,
	// including its prefix (":name"), or 0 when there is no such parameter.
	// https://www.sqlite.org/c3ref/bind_parameter_index.html
	BindParameterIndex(name string) int

	// https://www.sqlite.org/c3ref/bind_blob.html
	BindInt64(pos int, value int64) ResultCode
	BindDouble(pos int, value float64) ResultCode
	BindText(pos int, value string) ResultCode
	BindBlob(pos int, value []byte) ResultCode
	BindNull(pos int) ResultCode

	// Step returns SQLITE_ROW when a row is available, SQLITE_DONE when the
	// statement has finished, or an error code.
	// https://www.sqlite.org/c3ref/step.html
	Step() ResultCode

	// https://www.sqlite.org/c3ref/column_count.html
	ColumnCount() int
	// https://www.sqlite.org/c3ref/column_name.html
	ColumnName(col int) string
	// ColumnType returns the runtime type of the column in the current row.
	// https://www.sqlite.org/c3ref/column_blob.html
	ColumnType(col int) ColumnType

	// ColumnText and ColumnBlob return copies owned by the caller; the
	// engine buffers are invalidated by the next Step or by Finalize.
	// https://www.sqlite.org/c3ref/column_blob.html
	ColumnInt64(col int) int64
	ColumnDouble(col int) float64
	ColumnText(col int) string
	ColumnBlob(col int) []byte

	// Finalize releases the statement. It must be called exactly once.
	// https://www.sqlite.org/c3ref/finalize.html
	Finalize() ResultCode
}
