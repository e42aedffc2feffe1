package sqlitec

/*
#cgo LDFLAGS: -lsqlite3
#include <sqlite3.h>
#include <stdlib.h>

// SQLITE_TRANSIENT is a function pointer cast that cgo cannot express, so the
// copying bind variants are wrapped here. C must not keep Go memory after a
// call returns, which rules out SQLITE_STATIC for Go strings and slices.
static int cust_sqlite3_bind_text(sqlite3_stmt *stmt, int pos, const char *value, int n) {
	return sqlite3_bind_text(stmt, pos, value, n, SQLITE_TRANSIENT);
}

static int cust_sqlite3_bind_blob(sqlite3_stmt *stmt, int pos, const void *value, int n) {
	return sqlite3_bind_blob(stmt, pos, value, n, SQLITE_TRANSIENT);
}
*/
import "C"
import (
	"math"
	"runtime"
	"unsafe"

	"github.com/nsqlite/tsqlite/sqliteh"
)

var (
	_ sqliteh.Driver    = Driver{}
	_ sqliteh.Handle    = (*Conn)(nil)
	_ sqliteh.Statement = (*Stmt)(nil)
)

// Driver opens connections through the system SQLite library.
type Driver struct{}

// Conn represents a connection to a SQLite database.
//
// https://www.sqlite.org/c3ref/sqlite3.html
type Conn struct {
	cDB *C.sqlite3
	// openErrMsg keeps the error text of a failed open, after the native
	// handle has been released.
	openErrMsg string
}

// Stmt represents a prepared statement in SQLite.
//
// https://www.sqlite.org/c3ref/stmt.html
type Stmt struct {
	conn  *Conn
	cStmt *C.sqlite3_stmt
}

// Version returns the version of the linked SQLite library.
//
// https://www.sqlite.org/c3ref/libversion.html
func Version() string {
	return C.GoString(C.sqlite3_libversion())
}

// Open implements sqliteh.Driver.
func (Driver) Open(path string) (sqliteh.Handle, sqliteh.ResultCode) {
	conn, resCode := Open(path)
	return conn, resCode
}

// Open opens a new SQLite database connection using the given path.
//
// On failure the native handle is closed and the returned Conn only reports
// the error text through ErrMsg.
//
// https://www.sqlite.org/c3ref/open.html
func Open(filePath string) (*Conn, sqliteh.ResultCode) {
	cFilePath := C.CString(filePath)
	defer C.free(unsafe.Pointer(cFilePath))

	var db *C.sqlite3
	resCode := sqliteh.ResultCode(C.sqlite3_open(cFilePath, &db))
	if resCode != sqliteh.SQLITE_OK {
		errMsg := C.GoString(C.sqlite3_errmsg(db))
		_ = C.sqlite3_close(db)
		return &Conn{openErrMsg: errMsg}, resCode
	}

	conn := &Conn{cDB: db}
	runtime.SetFinalizer(conn, closeUnreachable)
	return conn, sqliteh.SQLITE_OK
}

// closeUnreachable closes a connection that was garbage collected while
// still open.
func closeUnreachable(conn *Conn) {
	_ = conn.Close()
}

// Close closes the connection to the SQLite database.
//
// https://www.sqlite.org/c3ref/close.html
func (conn *Conn) Close() sqliteh.ResultCode {
	if conn.cDB == nil {
		return sqliteh.SQLITE_OK
	}

	resCode := sqliteh.ResultCode(C.sqlite3_close(conn.cDB))
	if resCode != sqliteh.SQLITE_OK {
		return resCode
	}
	conn.cDB = nil
	runtime.SetFinalizer(conn, nil)

	return sqliteh.SQLITE_OK
}

// ErrMsg returns the last error message from the SQLite database.
//
// https://www.sqlite.org/c3ref/errcode.html
func (conn *Conn) ErrMsg() string {
	if conn.cDB == nil {
		return conn.openErrMsg
	}
	return C.GoString(C.sqlite3_errmsg(conn.cDB))
}

// LastInsertRowID returns the row ID of the most recent successful INSERT
// into the database from the current connection.
//
// https://www.sqlite.org/c3ref/last_insert_rowid.html
func (conn *Conn) LastInsertRowID() int64 {
	if conn.cDB == nil {
		return 0
	}
	return int64(C.sqlite3_last_insert_rowid(conn.cDB))
}

// Changes returns the number of rows modified, inserted, or deleted by
// the most recent successful INSERT, UPDATE, or DELETE statement from the
// current connection.
//
// https://www.sqlite.org/c3ref/changes.html
func (conn *Conn) Changes() int64 {
	if conn.cDB == nil {
		return 0
	}
	return int64(C.sqlite3_changes(conn.cDB))
}

// Exec runs every statement of the given SQL script, without returning any
// data.
//
// https://www.sqlite.org/c3ref/exec.html
func (conn *Conn) Exec(script string) sqliteh.ResultCode {
	if conn.cDB == nil {
		return sqliteh.SQLITE_MISUSE
	}

	cScript := C.CString(script)
	defer C.free(unsafe.Pointer(cScript))

	return sqliteh.ResultCode(C.sqlite3_exec(conn.cDB, cScript, nil, nil, nil))
}

// Prepare compiles the given SQL query into a prepared statement.
//
// https://www.sqlite.org/c3ref/prepare.html
func (conn *Conn) Prepare(query string) (sqliteh.Statement, sqliteh.ResultCode) {
	stmt, resCode := conn.PrepareStmt(query)
	if resCode != sqliteh.SQLITE_OK {
		return nil, resCode
	}
	return stmt, resCode
}

// PrepareStmt is Prepare returning the concrete statement type.
func (conn *Conn) PrepareStmt(query string) (*Stmt, sqliteh.ResultCode) {
	if conn.cDB == nil {
		return nil, sqliteh.SQLITE_MISUSE
	}

	cQuery := C.CString(query)
	defer C.free(unsafe.Pointer(cQuery))

	var cStmt *C.sqlite3_stmt
	resCode := sqliteh.ResultCode(C.sqlite3_prepare_v2(conn.cDB, cQuery, C.int(-1), &cStmt, nil))
	if resCode != sqliteh.SQLITE_OK {
		return nil, resCode
	}
	if cStmt == nil {
		// Empty input or only a comment: nothing to run.
		return nil, sqliteh.SQLITE_MISUSE
	}
	return &Stmt{conn: conn, cStmt: cStmt}, sqliteh.SQLITE_OK
}

// BindParameterIndex returns the index of the named parameter, or 0 if
// there is no parameter with that name.
//
// https://www.sqlite.org/c3ref/bind_parameter_index.html
func (stmt *Stmt) BindParameterIndex(name string) int {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	return int(C.sqlite3_bind_parameter_index(stmt.cStmt, cName))
}

// BindInt64 binds an int64 parameter at the given index.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindInt64(index int, value int64) sqliteh.ResultCode {
	return sqliteh.ResultCode(C.sqlite3_bind_int64(stmt.cStmt, C.int(index), C.sqlite3_int64(value)))
}

// BindDouble binds a float64 parameter at the given index.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindDouble(index int, value float64) sqliteh.ResultCode {
	return sqliteh.ResultCode(C.sqlite3_bind_double(stmt.cStmt, C.int(index), C.double(value)))
}

// BindText binds a string parameter at the given index. The length is passed
// explicitly so embedded NUL bytes are preserved. Values longer than a C int
// can describe return SQLITE_TOOBIG.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindText(index int, value string) sqliteh.ResultCode {
	if !fitsCInt(int64(len(value))) {
		return sqliteh.SQLITE_TOOBIG
	}
	cStr := C.CString(value)
	defer C.free(unsafe.Pointer(cStr))

	return sqliteh.ResultCode(C.cust_sqlite3_bind_text(stmt.cStmt, C.int(index), cStr, C.int(len(value))))
}

// BindBlob binds a byte slice parameter at the given index. An empty slice
// binds a zero-length blob, not NULL.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindBlob(index int, data []byte) sqliteh.ResultCode {
	if len(data) == 0 {
		return sqliteh.ResultCode(C.sqlite3_bind_zeroblob(stmt.cStmt, C.int(index), 0))
	}
	if !fitsCInt(int64(len(data))) {
		return sqliteh.SQLITE_TOOBIG
	}

	return sqliteh.ResultCode(C.cust_sqlite3_bind_blob(stmt.cStmt, C.int(index), unsafe.Pointer(&data[0]), C.int(len(data))))
}

// BindNull binds a NULL value at the given index.
//
// https://www.sqlite.org/c3ref/bind_blob.html
func (stmt *Stmt) BindNull(index int) sqliteh.ResultCode {
	return sqliteh.ResultCode(C.sqlite3_bind_null(stmt.cStmt, C.int(index)))
}

// Step advances the statement, returning SQLITE_ROW when a new row is
// available, SQLITE_DONE when there are no more rows, or an error code.
//
// https://www.sqlite.org/c3ref/step.html
func (stmt *Stmt) Step() sqliteh.ResultCode {
	return sqliteh.ResultCode(C.sqlite3_step(stmt.cStmt))
}

// ColumnCount returns the number of columns in the result set.
//
// https://www.sqlite.org/c3ref/column_count.html
func (stmt *Stmt) ColumnCount() int {
	return int(C.sqlite3_column_count(stmt.cStmt))
}

// ColumnName returns the name of the column at the given index.
//
// https://www.sqlite.org/c3ref/column_name.html
func (stmt *Stmt) ColumnName(colIndex int) string {
	return C.GoString(C.sqlite3_column_name(stmt.cStmt, C.int(colIndex)))
}

// ColumnType returns the runtime type of the value at the given index in
// the current row.
//
// https://www.sqlite.org/c3ref/column_blob.html
func (stmt *Stmt) ColumnType(colIndex int) sqliteh.ColumnType {
	return sqliteh.ColumnType(C.sqlite3_column_type(stmt.cStmt, C.int(colIndex)))
}

// ColumnInt64 returns the column value at the given index as int64.
//
// https://www.sqlite.org/c3ref/column_blob.html
func (stmt *Stmt) ColumnInt64(colIndex int) int64 {
	return int64(C.sqlite3_column_int64(stmt.cStmt, C.int(colIndex)))
}

// ColumnDouble returns the column value at the given index as float64.
//
// https://www.sqlite.org/c3ref/column_blob.html
func (stmt *Stmt) ColumnDouble(colIndex int) float64 {
	return float64(C.sqlite3_column_double(stmt.cStmt, C.int(colIndex)))
}

// ColumnText returns a copy of the column value at the given index as a
// string.
//
// https://www.sqlite.org/c3ref/column_blob.html
func (stmt *Stmt) ColumnText(colIndex int) string {
	text := (*C.char)(unsafe.Pointer(C.sqlite3_column_text(stmt.cStmt, C.int(colIndex))))
	if text == nil {
		return ""
	}
	length := C.sqlite3_column_bytes(stmt.cStmt, C.int(colIndex))
	return C.GoStringN(text, length)
}

// ColumnBlob returns a copy of the column value at the given index as a
// byte slice.
//
// https://www.sqlite.org/c3ref/column_blob.html
func (stmt *Stmt) ColumnBlob(colIndex int) []byte {
	dataPtr := C.sqlite3_column_blob(stmt.cStmt, C.int(colIndex))
	size := C.sqlite3_column_bytes(stmt.cStmt, C.int(colIndex))
	if dataPtr == nil || size <= 0 {
		return []byte{}
	}
	return C.GoBytes(dataPtr, size)
}

// Finalize frees the resources associated with this statement. Calling it
// again is a no-op.
//
// https://www.sqlite.org/c3ref/finalize.html
func (stmt *Stmt) Finalize() sqliteh.ResultCode {
	if stmt.cStmt == nil {
		return sqliteh.SQLITE_OK
	}

	resCode := sqliteh.ResultCode(C.sqlite3_finalize(stmt.cStmt))
	stmt.cStmt = nil

	return resCode
}

// fitsCInt reports whether a byte length can be passed to SQLite as an int.
func fitsCInt(n int64) bool {
	return n <= math.MaxInt32
}
