package sqlite

import (
	"github.com/nsqlite/tsqlite/sqliteh"
)

// fakeDriver is a scripted engine used to check the pipeline without SQLite.
type fakeDriver struct {
	openCode sqliteh.ResultCode
	handle   *fakeHandle
}

func (d *fakeDriver) Open(string) (sqliteh.Handle, sqliteh.ResultCode) {
	if d.openCode != sqliteh.SQLITE_OK {
		return &fakeHandle{errMsg: "unable to open database file"}, d.openCode
	}
	return d.handle, sqliteh.SQLITE_OK
}

type fakeHandle struct {
	prepareCode sqliteh.ResultCode
	closeCode   sqliteh.ResultCode
	stmt        *fakeStmt
	errMsg      string
	prepared    []string
	closed      int
}

func (h *fakeHandle) Close() sqliteh.ResultCode {
	h.closed++
	return h.closeCode
}

func (h *fakeHandle) Prepare(query string) (sqliteh.Statement, sqliteh.ResultCode) {
	h.prepared = append(h.prepared, query)
	if h.prepareCode != sqliteh.SQLITE_OK {
		h.errMsg = "near \"x\": syntax error"
		return nil, h.prepareCode
	}
	return h.stmt, sqliteh.SQLITE_OK
}

func (h *fakeHandle) LastInsertRowID() int64 { return 7 }
func (h *fakeHandle) Changes() int64         { return 1 }
func (h *fakeHandle) ErrMsg() string         { return h.errMsg }

type fakeBind struct {
	pos   int
	kind  string
	value any
}

type fakeColumn struct {
	name string
	// one entry per row
	types  []sqliteh.ColumnType
	values []any
}

type fakeStmt struct {
	params    map[string]int
	bindCodes map[int]sqliteh.ResultCode
	binds     []fakeBind

	columns   []fakeColumn
	steps     []sqliteh.ResultCode
	stepCalls int
	row       int

	finalizeCode  sqliteh.ResultCode
	finalizeCalls int
	nameCalls     int
}

func (s *fakeStmt) BindParameterIndex(name string) int {
	return s.params[name]
}

func (s *fakeStmt) bind(pos int, kind string, value any) sqliteh.ResultCode {
	s.binds = append(s.binds, fakeBind{pos: pos, kind: kind, value: value})
	if pos == 0 {
		return sqliteh.SQLITE_RANGE
	}
	if code, ok := s.bindCodes[pos]; ok {
		return code
	}
	return sqliteh.SQLITE_OK
}

func (s *fakeStmt) BindInt64(pos int, v int64) sqliteh.ResultCode    { return s.bind(pos, "int64", v) }
func (s *fakeStmt) BindDouble(pos int, v float64) sqliteh.ResultCode { return s.bind(pos, "double", v) }
func (s *fakeStmt) BindText(pos int, v string) sqliteh.ResultCode    { return s.bind(pos, "text", v) }
func (s *fakeStmt) BindBlob(pos int, v []byte) sqliteh.ResultCode    { return s.bind(pos, "blob", v) }
func (s *fakeStmt) BindNull(pos int) sqliteh.ResultCode              { return s.bind(pos, "null", nil) }

func (s *fakeStmt) Step() sqliteh.ResultCode {
	s.stepCalls++
	if len(s.steps) == 0 {
		return sqliteh.SQLITE_DONE
	}
	code := s.steps[0]
	s.steps = s.steps[1:]
	if code == sqliteh.SQLITE_ROW && s.stepCalls > 1 {
		s.row++
	}
	return code
}

func (s *fakeStmt) ColumnCount() int { return len(s.columns) }

func (s *fakeStmt) ColumnName(col int) string {
	s.nameCalls++
	return s.columns[col].name
}

func (s *fakeStmt) ColumnType(col int) sqliteh.ColumnType { return s.columns[col].types[s.row] }
func (s *fakeStmt) ColumnInt64(col int) int64            { return s.columns[col].values[s.row].(int64) }
func (s *fakeStmt) ColumnDouble(col int) float64         { return s.columns[col].values[s.row].(float64) }
func (s *fakeStmt) ColumnText(col int) string            { return s.columns[col].values[s.row].(string) }
func (s *fakeStmt) ColumnBlob(col int) []byte            { return s.columns[col].values[s.row].([]byte) }

func (s *fakeStmt) Finalize() sqliteh.ResultCode {
	s.finalizeCalls++
	return s.finalizeCode
}

func newFakeConn(stmt *fakeStmt) (*Conn, *fakeHandle) {
	handle := &fakeHandle{stmt: stmt}
	conn := New(WithDriver(&fakeDriver{handle: handle}))
	if err := conn.Open("fake.db"); err != nil {
		panic(err)
	}
	return conn, handle
}
