package sqlite

import (
	"github.com/nsqlite/tsqlite/cell"
	"github.com/nsqlite/tsqlite/sqliteh"
)

// materialize steps stmt until SQLITE_DONE and converts every row into owned
// cell values. Column names are read once, before the first step.
//
// Any code other than SQLITE_ROW or SQLITE_DONE aborts the loop and is
// returned with no rows.
func materialize(stmt sqliteh.Statement) (cell.Rows, sqliteh.ResultCode) {
	columns := columnNames(stmt)
	rows := cell.Rows{}

	for {
		switch resCode := stmt.Step(); resCode {
		case sqliteh.SQLITE_ROW:
			rows = append(rows, readRow(stmt, columns))
		case sqliteh.SQLITE_DONE:
			return rows, sqliteh.SQLITE_OK
		default:
			return nil, resCode
		}
	}
}

func columnNames(stmt sqliteh.Statement) []string {
	columns := make([]string, stmt.ColumnCount())
	for i := range columns {
		columns[i] = stmt.ColumnName(i)
	}
	return columns
}

func readRow(stmt sqliteh.Statement, columns []string) cell.Row {
	row := make(cell.Row, len(columns))
	for i, name := range columns {
		row[i] = cell.Field{Name: name, Value: columnValue(stmt, i)}
	}
	return row
}

// columnValue builds a value from the runtime type of the column in the
// current row.
func columnValue(stmt sqliteh.Statement, col int) cell.Value {
	switch stmt.ColumnType(col) {
	case sqliteh.SQLITE_INTEGER:
		return cell.Int(stmt.ColumnInt64(col))
	case sqliteh.SQLITE_FLOAT:
		return cell.Real(stmt.ColumnDouble(col))
	case sqliteh.SQLITE_TEXT:
		return cell.Text(stmt.ColumnText(col))
	case sqliteh.SQLITE_BLOB:
		return cell.Blob(stmt.ColumnBlob(col))
	case sqliteh.SQLITE_NULL:
		return cell.Null()
	}
	return cell.Null()
}
