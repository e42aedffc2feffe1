package sqlite

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/nsqlite/tsqlite/cell"
	"github.com/nsqlite/tsqlite/sqliteh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureSchema = `
CREATE TABLE contacts (
	name TEXT, company TEXT, mobile TEXT, ddi TEXT, switchboard TEXT,
	address1 TEXT, address2 TEXT, address3 TEXT, address4 TEXT,
	postcode TEXT, email TEXT, url TEXT, category TEXT, notes TEXT
);
CREATE TABLE calls (
	timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
	callerid TEXT,
	contactid INTEGER
);
CREATE TABLE tags (name TEXT UNIQUE);
CREATE TABLE samples (label TEXT, data BLOB, ratio REAL, extra TEXT);
INSERT INTO contacts (name, url) VALUES ('Test Person', 'http://example.com');
INSERT INTO calls (callerid, contactid) VALUES ('07788111222', 1);
`

// setupFixture creates a database through an independent driver so the
// facade is never used to build its own test data.
func setupFixture(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(fixtureSchema)
	require.NoError(t, err)
	return path
}

func openFixture(t *testing.T) (*Conn, string) {
	t.Helper()

	path := setupFixture(t)
	conn := New()
	require.NoError(t, conn.Open(path))
	t.Cleanup(func() { conn.Close() })
	return conn, path
}

func TestIntegration(t *testing.T) {
	t.Run("InsertRoundTrip", func(t *testing.T) {
		conn, _ := openFixture(t)

		fields := []cell.Field{
			cell.F("name", cell.Text("Mickey Mouse")),
			cell.F("company", cell.Text("Disney")),
			cell.F("mobile", cell.Text("07755123456")),
			cell.F("url", cell.Text("http://disney.com")),
		}
		require.NoError(t, conn.Insert("contacts", fields))
		assert.Equal(t, int64(1), conn.RowsAffected())

		rowid := conn.LastInsertRowID()
		assert.Equal(t, int64(2), rowid)

		rows, err := conn.SelectColumns(
			"contacts",
			[]string{"rowid", "*"},
			"WHERE rowid=:rowid",
			[]cell.Field{cell.F("rowid", cell.Int(rowid))},
		)
		require.NoError(t, err)
		require.Len(t, rows, 1)

		row := rows[0]
		require.Len(t, row, 15)
		assert.Equal(t, "rowid", row[0].Name)
		assert.True(t, cell.Int(rowid).Equal(row[0].Value))

		for _, want := range fields {
			got, ok := row.Get(want.Name)
			require.True(t, ok, want.Name)
			assert.True(t, want.Value.Equal(got), "%s: %s", want.Name, got)
		}

		notes, ok := row.Get("notes")
		require.True(t, ok)
		assert.True(t, notes.IsNull())
	})

	t.Run("SelectStar", func(t *testing.T) {
		conn, _ := openFixture(t)

		rows, err := conn.SelectStar("calls", "", nil)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, []string{"timestamp", "callerid", "contactid"}, rows[0].Columns())

		ts, _ := rows[0].Get("timestamp")
		assert.Equal(t, cell.KindText, ts.Kind())
		assert.NotEmpty(t, ts.AsText())

		contactID, _ := rows[0].Get("contactid")
		assert.Equal(t, int64(1), contactID.AsInt64())
	})

	t.Run("EmptyResult", func(t *testing.T) {
		conn, _ := openFixture(t)

		rows, err := conn.SelectStar("tags", "", nil)
		require.NoError(t, err)
		assert.NotNil(t, rows)
		assert.Empty(t, rows)
	})

	t.Run("Update", func(t *testing.T) {
		conn, _ := openFixture(t)

		err := conn.Update(
			"contacts",
			[]cell.Field{cell.F("company", cell.Text("Acme")), cell.F("notes", cell.Text("updated"))},
			"WHERE rowid=:rowid",
			[]cell.Field{cell.F("rowid", cell.Int(1))},
		)
		require.NoError(t, err)
		assert.Equal(t, int64(1), conn.RowsAffected())

		rows, err := conn.SelectColumns("contacts", []string{"name", "company", "notes"}, "WHERE rowid=1", nil)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Test Person", rows[0][0].Value.AsText())
		assert.Equal(t, "Acme", rows[0][1].Value.AsText())
		assert.Equal(t, "updated", rows[0][2].Value.AsText())
	})

	t.Run("UpdateAll", func(t *testing.T) {
		conn, _ := openFixture(t)
		require.NoError(t, conn.Insert("calls", []cell.Field{cell.F("callerid", cell.Text("0111"))}))

		require.NoError(t, conn.UpdateAll("calls", []cell.Field{cell.F("contactid", cell.Int(9))}))
		assert.Equal(t, int64(2), conn.RowsAffected())

		rows, err := conn.SelectColumns("calls", []string{"contactid"}, "", nil)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		for _, row := range rows {
			assert.Equal(t, int64(9), row[0].Value.AsInt64())
		}
	})

	t.Run("SpecialCharacters", func(t *testing.T) {
		conn, _ := openFixture(t)

		values := []string{
			`O'Brien "quoted"`,
			"line one\nline two",
			"café ñandú 東京 🚀",
			"semi; colon -- comment /* not */",
			"",
		}
		for _, v := range values {
			require.NoError(t, conn.Insert("contacts", []cell.Field{cell.F("notes", cell.Text(v))}))
			rowid := conn.LastInsertRowID()

			rows, err := conn.SelectColumns("contacts", []string{"notes"}, "WHERE rowid=:rowid",
				[]cell.Field{cell.F("rowid", cell.Int(rowid))})
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, cell.KindText, rows[0][0].Value.Kind())
			assert.Equal(t, v, rows[0][0].Value.AsText())
		}
	})

	t.Run("Integer", func(t *testing.T) {
		conn, _ := openFixture(t)

		for _, v := range []int64{0, -1, 1 << 40, -9223372036854775808, 9223372036854775807} {
			require.NoError(t, conn.Insert("calls", []cell.Field{
				cell.F("callerid", cell.Text("int")),
				cell.F("contactid", cell.Int(v)),
			}))
			rows, err := conn.SelectColumns("calls", []string{"contactid"}, "WHERE rowid=:rowid",
				[]cell.Field{cell.F("rowid", cell.Int(conn.LastInsertRowID()))})
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, cell.KindInteger, rows[0][0].Value.Kind())
			assert.Equal(t, v, rows[0][0].Value.AsInt64())
		}
	})

	t.Run("LikeKeepsOrder", func(t *testing.T) {
		conn, _ := openFixture(t)
		require.NoError(t, conn.Insert("calls", []cell.Field{
			cell.F("callerid", cell.Text("07788999000")),
			cell.F("contactid", cell.Int(1)),
		}))
		require.NoError(t, conn.Insert("calls", []cell.Field{
			cell.F("callerid", cell.Text("01234567890")),
			cell.F("contactid", cell.Int(1)),
		}))

		rows, err := conn.SelectColumns("calls", []string{"callerid"}, "WHERE callerid LIKE :callerid",
			[]cell.Field{cell.F("callerid", cell.Text("077%"))})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "07788111222", rows[0][0].Value.AsText())
		assert.Equal(t, "07788999000", rows[1][0].Value.AsText())
	})

	t.Run("JoinClause", func(t *testing.T) {
		conn, _ := openFixture(t)

		rows, err := conn.SelectColumns(
			"calls",
			[]string{"calls.timestamp", "contacts.name", "calls.callerid", "contacts.url"},
			"LEFT JOIN contacts ON calls.contactid = contacts.rowid WHERE calls.callerid=:callerid",
			[]cell.Field{cell.F("callerid", cell.Text("07788111222"))},
		)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, []string{"timestamp", "name", "callerid", "url"}, rows[0].Columns())
		assert.Equal(t, "Test Person", rows[0][1].Value.AsText())
		assert.Equal(t, "07788111222", rows[0][2].Value.AsText())
		assert.Equal(t, "http://example.com", rows[0][3].Value.AsText())
	})

	t.Run("InvalidTable", func(t *testing.T) {
		conn, _ := openFixture(t)

		err := conn.Insert("nosuchtable", []cell.Field{cell.F("a", cell.Int(1))})
		assert.Equal(t, sqliteh.SQLITE_ERROR, Code(err))
		assert.Contains(t, conn.LastErrorDescription(), "no such table")

		rows, err := conn.SelectStar("nosuchtable", "", nil)
		assert.Equal(t, sqliteh.SQLITE_ERROR, Code(err))
		assert.Nil(t, rows)
	})

	t.Run("InvalidColumn", func(t *testing.T) {
		conn, _ := openFixture(t)

		err := conn.Insert("contacts", []cell.Field{cell.F("nosuchcolumn", cell.Int(1))})
		assert.Equal(t, sqliteh.SQLITE_ERROR, Code(err))
		assert.NotEmpty(t, conn.LastErrorDescription())

		var sqliteErr *Error
		require.ErrorAs(t, err, &sqliteErr)
		assert.Equal(t, "prepare", sqliteErr.Op)
	})

	t.Run("UnknownBinding", func(t *testing.T) {
		conn, _ := openFixture(t)

		rows, err := conn.SelectStar("contacts", "WHERE rowid=:rowid",
			[]cell.Field{cell.F("other", cell.Int(1))})
		assert.Equal(t, sqliteh.SQLITE_RANGE, Code(err))
		assert.Nil(t, rows)
	})

	t.Run("Blob", func(t *testing.T) {
		conn, _ := openFixture(t)

		payloads := map[string][]byte{
			"binary": {0x00, 0xff, 0x10, 0x00, 0x7f},
			"empty":  {},
			"large":  make([]byte, 1<<20),
		}
		for i := range payloads["large"] {
			payloads["large"][i] = byte(i % 251)
		}

		for label, data := range payloads {
			require.NoError(t, conn.Insert("samples", []cell.Field{
				cell.F("label", cell.Text(label)),
				cell.F("data", cell.Blob(data)),
			}))

			rows, err := conn.SelectColumns("samples", []string{"data"}, "WHERE label=:label",
				[]cell.Field{cell.F("label", cell.Text(label))})
			require.NoError(t, err)
			require.Len(t, rows, 1)

			got := rows[0][0].Value
			assert.Equal(t, cell.KindBlob, got.Kind(), label)
			assert.Equal(t, data, got.AsBytes(), label)
		}
	})

	t.Run("NullAndReal", func(t *testing.T) {
		conn, _ := openFixture(t)

		require.NoError(t, conn.Insert("samples", []cell.Field{
			cell.F("label", cell.Text("mixed")),
			cell.F("ratio", cell.Real(0.125)),
			cell.F("extra", cell.Null()),
		}))

		rows, err := conn.SelectColumns("samples", []string{"ratio", "extra", "data"}, "WHERE label='mixed'", nil)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, cell.KindReal, rows[0][0].Value.Kind())
		assert.Equal(t, 0.125, rows[0][0].Value.AsFloat64())
		assert.True(t, rows[0][1].Value.IsNull())
		assert.True(t, rows[0][2].Value.IsNull())
	})

	t.Run("Delete", func(t *testing.T) {
		conn, _ := openFixture(t)
		require.NoError(t, conn.Insert("tags", []cell.Field{cell.F("name", cell.Text("a"))}))
		require.NoError(t, conn.Insert("tags", []cell.Field{cell.F("name", cell.Text("b"))}))

		require.NoError(t, conn.Delete("tags", "WHERE name=:name", []cell.Field{cell.F("name", cell.Text("a"))}))
		assert.Equal(t, int64(1), conn.RowsAffected())

		rows, err := conn.SelectStar("tags", "", nil)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "b", rows[0][0].Value.AsText())

		require.NoError(t, conn.Delete("tags", "WHERE name=:name", []cell.Field{cell.F("name", cell.Text("zzz"))}))
		assert.Equal(t, int64(0), conn.RowsAffected())

		require.NoError(t, conn.DeleteAll("tags"))
		rows, err = conn.SelectStar("tags", "", nil)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("ConstraintViolation", func(t *testing.T) {
		conn, _ := openFixture(t)
		require.NoError(t, conn.Insert("tags", []cell.Field{cell.F("name", cell.Text("dup"))}))

		err := conn.Insert("tags", []cell.Field{cell.F("name", cell.Text("dup"))})
		assert.Equal(t, sqliteh.SQLITE_CONSTRAINT, Code(err))

		var sqliteErr *Error
		require.ErrorAs(t, err, &sqliteErr)
		assert.Equal(t, "step", sqliteErr.Op)
		assert.Contains(t, sqliteErr.Msg, "UNIQUE")
	})

	t.Run("VisibleToOtherDriver", func(t *testing.T) {
		conn, path := openFixture(t)
		require.NoError(t, conn.Insert("tags", []cell.Field{cell.F("name", cell.Text("shared"))}))
		require.NoError(t, conn.Close())

		db, err := sql.Open("sqlite3", path)
		require.NoError(t, err)
		defer db.Close()

		var name string
		require.NoError(t, db.QueryRow("SELECT name FROM tags").Scan(&name))
		assert.Equal(t, "shared", name)
	})

	t.Run("OpenFailure", func(t *testing.T) {
		conn := New()
		err := conn.Open(filepath.Join(t.TempDir(), "missing", "dir", "db.sqlite"))
		assert.Equal(t, sqliteh.SQLITE_CANTOPEN, Code(err))
		assert.False(t, conn.IsOpen())
	})

	t.Run("NotADatabase", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "garbage.db")
		garbage := make([]byte, 4096)
		for i := range garbage {
			garbage[i] = byte(i*7 + 3)
		}
		require.NoError(t, os.WriteFile(path, garbage, 0o600))

		conn := New()
		require.NoError(t, conn.Open(path))
		defer conn.Close()

		_, err := conn.SelectStar("contacts", "", nil)
		assert.Equal(t, sqliteh.SQLITE_NOTADB, Code(err))
	})

	t.Run("AlreadyOpen", func(t *testing.T) {
		conn, path := openFixture(t)
		assert.ErrorIs(t, conn.Open(path), ErrAlreadyOpen)
	})
}
