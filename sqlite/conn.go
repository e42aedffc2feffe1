// Package sqlite issues parameterized INSERT, UPDATE, DELETE and SELECT
// statements against named tables, binding cell values to named
// placeholders and decoding result rows back into cell values.
//
// Every operation runs prepare, bind, step and finalize in sequence. The
// first failing stage ends the operation and its result code is returned
// unchanged inside an *Error; the statement is finalized on every path.
// Use Code to compare a returned error with the SQLITE_* constants and
// LastErrorDescription for the engine's message.
//
// A Conn is not safe for concurrent use.
//
// Example:
//
//	conn := sqlite.New()
//	if err := conn.Open("contacts.db"); err != nil {
//		return err
//	}
//	defer conn.Close()
//
//	err := conn.Insert("contacts", []cell.Field{
//		cell.F("name", cell.Text("Mickey Mouse")),
//		cell.F("age", cell.Int(12)),
//	})
package sqlite

import (
	"log/slog"

	"github.com/nsqlite/tsqlite/cell"
	"github.com/nsqlite/tsqlite/internal/sqlitec"
	"github.com/nsqlite/tsqlite/sqlbuild"
	"github.com/nsqlite/tsqlite/sqliteh"
)

// Conn owns at most one native database handle. It starts unopened, is
// live between a successful Open and Close, and can be opened again after
// Close.
type Conn struct {
	driver sqliteh.Driver
	logger *slog.Logger
	handle sqliteh.Handle
}

// New returns an unopened connection.
func New(options ...Option) *Conn {
	conn := &Conn{
		driver: sqlitec.Driver{},
	}

	for _, option := range options {
		option(conn)
	}

	return conn
}

// Open opens the database file at path, creating it if needed.
func (c *Conn) Open(path string) error {
	if c.handle != nil {
		return ErrAlreadyOpen
	}

	handle, resCode := c.driver.Open(path)
	c.trace("open", path, resCode)
	if resCode != sqliteh.SQLITE_OK {
		var msg string
		if handle != nil {
			msg = handle.ErrMsg()
		}
		return &Error{Code: resCode, Op: "open", Msg: msg}
	}

	c.handle = handle
	return nil
}

// Close releases the native handle. Closing an unopened or already closed
// connection does nothing and returns nil.
func (c *Conn) Close() error {
	if c.handle == nil {
		return nil
	}

	resCode := c.handle.Close()
	c.trace("close", "", resCode)
	if resCode != sqliteh.SQLITE_OK {
		return &Error{Code: resCode, Op: "close", Msg: c.handle.ErrMsg()}
	}

	c.handle = nil
	return nil
}

// IsOpen reports whether the connection holds a live handle.
func (c *Conn) IsOpen() bool {
	return c.handle != nil
}

// LastInsertRowID returns the rowid of the most recent successful INSERT on
// this connection, or 0 when there was none or the connection is not open.
func (c *Conn) LastInsertRowID() int64 {
	if c.handle == nil {
		return 0
	}
	return c.handle.LastInsertRowID()
}

// RowsAffected returns the number of rows changed by the most recent
// INSERT, UPDATE or DELETE on this connection.
func (c *Conn) RowsAffected() int64 {
	if c.handle == nil {
		return 0
	}
	return c.handle.Changes()
}

// LastErrorDescription returns the engine's most recent error text for this
// connection, or "" when the connection is not open.
func (c *Conn) LastErrorDescription() string {
	if c.handle == nil {
		return ""
	}
	return c.handle.ErrMsg()
}

// Insert inserts one row built from fields into table.
func (c *Conn) Insert(table string, fields []cell.Field) error {
	return c.exec(sqlbuild.Insert(table, fields), fields)
}

// Update sets fields on the rows of table matched by where, a raw clause
// such as "WHERE rowid=:rowid" whose placeholders are filled from bindings.
//
// An empty where updates every row of the table.
func (c *Conn) Update(table string, fields []cell.Field, where string, bindings []cell.Field) error {
	return c.exec(sqlbuild.Update(table, fields, where), fields, bindings)
}

// UpdateAll sets fields on every row of table.
func (c *Conn) UpdateAll(table string, fields []cell.Field) error {
	return c.Update(table, fields, "", nil)
}

// Delete deletes the rows of table matched by where, with placeholders filled
// from bindings.
//
// An empty where deletes every row of the table.
func (c *Conn) Delete(table string, where string, bindings []cell.Field) error {
	return c.exec(sqlbuild.Delete(table, where), bindings)
}

// DeleteAll deletes every row of table.
func (c *Conn) DeleteAll(table string) error {
	return c.Delete(table, "", nil)
}

// SelectColumns returns the given columns of the rows of table matched by
// where. No columns selects *. The where clause may be any trailing SQL,
// including joins.
func (c *Conn) SelectColumns(
	table string, columns []string, where string, bindings []cell.Field,
) (cell.Rows, error) {
	return c.query(sqlbuild.Select(table, columns, where), bindings)
}

// SelectStar returns every column of the rows of table matched by where. An
// empty where with no bindings returns the whole table.
func (c *Conn) SelectStar(table string, where string, bindings []cell.Field) (cell.Rows, error) {
	return c.SelectColumns(table, nil, where, bindings)
}

// exec runs a statement that returns no rows. The field lists are bound in
// order.
func (c *Conn) exec(query string, fieldLists ...[]cell.Field) (err error) {
	stmt, err := c.prepare(query)
	if err != nil {
		return err
	}
	defer func() {
		err = c.finalize(stmt, query, err)
	}()

	for _, fields := range fieldLists {
		if err := c.bind(stmt, query, fields); err != nil {
			return err
		}
	}

	for {
		resCode := stmt.Step()
		c.trace("step", query, resCode)
		switch resCode {
		case sqliteh.SQLITE_DONE:
			return nil
		case sqliteh.SQLITE_ROW:
			continue
		default:
			return c.newError("step", query, resCode)
		}
	}
}

// query runs a statement and materializes its rows.
func (c *Conn) query(query string, bindings []cell.Field) (rows cell.Rows, err error) {
	stmt, err := c.prepare(query)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = c.finalize(stmt, query, err)
		if err != nil {
			rows = nil
		}
	}()

	if err := c.bind(stmt, query, bindings); err != nil {
		return nil, err
	}

	rows, resCode := materialize(stmt)
	c.trace("step", query, resCode)
	if resCode != sqliteh.SQLITE_OK {
		return nil, c.newError("step", query, resCode)
	}
	return rows, nil
}

func (c *Conn) prepare(query string) (sqliteh.Statement, error) {
	if c.handle == nil {
		return nil, ErrNotOpen
	}

	stmt, resCode := c.handle.Prepare(query)
	c.trace("prepare", query, resCode)
	if resCode != sqliteh.SQLITE_OK {
		return nil, c.newError("prepare", query, resCode)
	}
	if stmt == nil {
		return nil, &Error{Code: sqliteh.SQLITE_MISUSE, Op: "prepare", Query: query, Msg: "no statement to prepare"}
	}
	return stmt, nil
}

func (c *Conn) bind(stmt sqliteh.Statement, query string, fields []cell.Field) error {
	placeholder, resCode := bindFields(stmt, fields)
	if resCode != sqliteh.SQLITE_OK {
		c.trace("bind", query, resCode)
		err := c.newError("bind", query, resCode)
		err.Param = placeholder
		return err
	}
	return nil
}

// finalize releases stmt. An earlier error takes precedence over a finalize
// failure.
func (c *Conn) finalize(stmt sqliteh.Statement, query string, err error) error {
	resCode := stmt.Finalize()
	if err != nil {
		return err
	}
	if resCode != sqliteh.SQLITE_OK {
		c.trace("finalize", query, resCode)
		return c.newError("finalize", query, resCode)
	}
	return nil
}

func (c *Conn) newError(op string, query string, resCode sqliteh.ResultCode) *Error {
	return &Error{
		Code:  resCode,
		Op:    op,
		Query: query,
		Msg:   c.handle.ErrMsg(),
	}
}

func (c *Conn) trace(op string, query string, resCode sqliteh.ResultCode) {
	if c.logger == nil {
		return
	}
	c.logger.Debug(op, "ns", "sqlite", "sql", query, "code", resCode.String())
}
