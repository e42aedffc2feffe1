package sqlite

import (
	"errors"
	"strings"

	"github.com/nsqlite/tsqlite/sqliteh"
)

// Error is a failed stage of an operation. Code is the engine's result code,
// passed through unchanged.
type Error struct {
	Code  sqliteh.ResultCode
	Op    string // open, close, prepare, bind, step or finalize
	Param string // placeholder that failed to bind, if any
	Query string // SQL text, if any
	Msg   string // engine error text at the time of the failure
}

func (err *Error) Error() string {
	b := new(strings.Builder)
	b.WriteString("sqlite")
	if err.Op != "" {
		b.WriteByte('.')
		b.WriteString(err.Op)
	}
	if err.Param != "" {
		b.WriteByte('(')
		b.WriteString(err.Param)
		b.WriteByte(')')
	}
	b.WriteString(": ")
	b.WriteString(err.Code.String())
	if err.Msg != "" {
		b.WriteString(": ")
		b.WriteString(err.Msg)
	}
	if err.Query != "" {
		b.WriteString(" (")
		b.WriteString(err.Query)
		b.WriteByte(')')
	}
	return b.String()
}

var (
	// ErrNotOpen is returned by every operation other than Open while the
	// connection is unopened or closed.
	ErrNotOpen = &Error{Code: sqliteh.SQLITE_MISUSE, Msg: "connection is not open"}

	// ErrAlreadyOpen is returned by Open on a live connection.
	ErrAlreadyOpen = &Error{Code: sqliteh.SQLITE_MISUSE, Op: "open", Msg: "connection is already open"}
)

// Code returns the engine result code carried by err: SQLITE_OK for nil,
// the Code of an *Error, and SQLITE_ERROR for anything else.
func Code(err error) sqliteh.ResultCode {
	if err == nil {
		return sqliteh.SQLITE_OK
	}

	var sqliteErr *Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code
	}
	return sqliteh.SQLITE_ERROR
}
