package sqlite

import (
	"github.com/nsqlite/tsqlite/cell"
	"github.com/nsqlite/tsqlite/sqlbuild"
	"github.com/nsqlite/tsqlite/sqliteh"
)

// bindFields binds every field to the placeholder named after it, in list
// order. It stops at the first failure and returns the placeholder and the
// engine code.
//
// A name with no matching placeholder resolves to position 0, for which the
// engine itself reports SQLITE_RANGE.
func bindFields(stmt sqliteh.Statement, fields []cell.Field) (string, sqliteh.ResultCode) {
	for _, f := range fields {
		placeholder := sqlbuild.Placeholder(f.Name)
		pos := stmt.BindParameterIndex(placeholder)
		if resCode := bindValue(stmt, pos, f.Value); resCode != sqliteh.SQLITE_OK {
			return placeholder, resCode
		}
	}
	return "", sqliteh.SQLITE_OK
}

// bindValue dispatches to the bind primitive matching the value's kind.
// Text and blob payloads are copied by the engine.
func bindValue(stmt sqliteh.Statement, pos int, v cell.Value) sqliteh.ResultCode {
	switch v.Kind() {
	case cell.KindInteger:
		return stmt.BindInt64(pos, v.AsInt64())
	case cell.KindReal:
		return stmt.BindDouble(pos, v.AsFloat64())
	case cell.KindText:
		return stmt.BindText(pos, v.AsText())
	case cell.KindBlob:
		return stmt.BindBlob(pos, v.AsBytes())
	case cell.KindNull:
		return stmt.BindNull(pos)
	}
	return sqliteh.SQLITE_MISMATCH
}
