// Package sqlbuild synthesizes the parameterized SQL text used by the
// connection facade. The builders never touch the engine, every value is
// referenced by a named placeholder (:name) and bound separately.
//
// The where argument is raw SQL supplied by the caller, for example
// "WHERE rowid=:rowid", "WHERE callerid LIKE :callerid" or a JOIN clause.
// Only values are parameterized, the clause structure is not.
package sqlbuild

import (
	"strings"

	"github.com/nsqlite/tsqlite/cell"
)

// PlaceholderPrefix is prepended to a column name to form its placeholder.
const PlaceholderPrefix = ":"

// Placeholder returns the named parameter marker for a column.
func Placeholder(name string) string {
	return PlaceholderPrefix + name
}

// Insert returns
//
//	INSERT INTO table (f1,f2) VALUES (:f1,:f2);
//
// With no fields the lists are empty and the engine rejects the statement.
func Insert(table string, fields []cell.Field) string {
	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(table)
	sb.WriteString(" (")
	for i, f := range fields {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(f.Name)
	}
	sb.WriteString(") VALUES (")
	for i, f := range fields {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(Placeholder(f.Name))
	}
	sb.WriteString(");")
	return sb.String()
}

// Update returns
//
//	UPDATE table SET f1=:f1,f2=:f2 where;
//
// An empty where updates every row of the table.
func Update(table string, fields []cell.Field, where string) string {
	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(table)
	sb.WriteString(" SET ")
	for i, f := range fields {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(f.Name)
		sb.WriteByte('=')
		sb.WriteString(Placeholder(f.Name))
	}
	writeWhere(&sb, where)
	sb.WriteByte(';')
	return sb.String()
}

// Delete returns
//
//	DELETE FROM table where;
//
// An empty where deletes every row of the table.
func Delete(table string, where string) string {
	var sb strings.Builder
	sb.WriteString("DELETE FROM ")
	sb.WriteString(table)
	writeWhere(&sb, where)
	sb.WriteByte(';')
	return sb.String()
}

// Select returns
//
//	SELECT c1,c2 FROM table where;
//
// No columns selects *.
func Select(table string, columns []string, where string) string {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	if len(columns) == 0 {
		sb.WriteByte('*')
	} else {
		sb.WriteString(strings.Join(columns, ","))
	}
	sb.WriteString(" FROM ")
	sb.WriteString(table)
	writeWhere(&sb, where)
	sb.WriteByte(';')
	return sb.String()
}

// writeWhere appends the clause, separated by exactly one space unless it
// already starts with one. An empty clause appends nothing.
func writeWhere(sb *strings.Builder, where string) {
	if where == "" {
		return
	}
	if where[0] != ' ' {
		sb.WriteByte(' ')
	}
	sb.WriteString(where)
}
