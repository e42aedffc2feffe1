// Package command runs the tsqlite subcommands against a database
// connection. The command line and the shell share one Executor.
package command

import (
	"errors"
	"fmt"
	"io"

	"github.com/nsqlite/tsqlite/cell"
	"github.com/nsqlite/tsqlite/internal/log"
	"github.com/nsqlite/tsqlite/internal/tsqlite/config"
	"github.com/nsqlite/tsqlite/internal/tsqlite/fieldarg"
	"github.com/nsqlite/tsqlite/internal/tsqlite/fixture"
	"github.com/nsqlite/tsqlite/internal/tsqlite/output"
	"github.com/nsqlite/tsqlite/internal/tsqlite/styled"
	"github.com/nsqlite/tsqlite/internal/util/numutil"
	"github.com/nsqlite/tsqlite/sqlite"
)

// ErrNoDatabase is returned for a command that needs a connection when the
// Executor has none.
var ErrNoDatabase = errors.New("no database open, use --db")

// ErrNestedRepl is returned for the repl command inside the shell.
var ErrNestedRepl = errors.New("already in the interactive shell")

// Executor runs parsed commands and writes their results.
type Executor struct {
	Conn     *sqlite.Conn
	Out      io.Writer
	Progress io.Writer
	Format   output.Format
	Blob     cell.BlobFormat
	Logger   log.Logger
}

// Execute runs the selected command. The repl command is not handled here.
func (e *Executor) Execute(cmds config.Commands) error {
	switch {
	case cmds.Insert != nil:
		return e.Insert(cmds.Insert)
	case cmds.Update != nil:
		return e.Update(cmds.Update)
	case cmds.Delete != nil:
		return e.Delete(cmds.Delete)
	case cmds.Select != nil:
		return e.Select(cmds.Select)
	case cmds.Load != nil:
		return e.Load(cmds.Load)
	case cmds.Fields != nil:
		return e.Fields(cmds.Fields)
	case cmds.Repl != nil:
		return ErrNestedRepl
	}
	return config.ErrNoCommand
}

// Insert inserts one row and prints its rowid.
func (e *Executor) Insert(cmd *config.InsertCmd) error {
	conn, err := e.conn()
	if err != nil {
		return err
	}

	fields, err := fieldarg.ParseAll(cmd.Fields)
	if err != nil {
		return err
	}

	if err := conn.Insert(cmd.Table, fields); err != nil {
		return fmt.Errorf("insert into %s: %w", cmd.Table, err)
	}

	rowid := conn.LastInsertRowID()
	e.Logger.DebugNs("command", "inserted", log.KV{"table": cmd.Table, "rowid": rowid})
	_, err = fmt.Fprintf(e.Out, "inserted rowid %d\n", rowid)
	return err
}

// Update updates the matched rows and prints how many changed.
func (e *Executor) Update(cmd *config.UpdateCmd) error {
	conn, err := e.conn()
	if err != nil {
		return err
	}

	fields, err := fieldarg.ParseAll(cmd.Fields)
	if err != nil {
		return err
	}
	bindings, err := fieldarg.ParseAll(cmd.Bind)
	if err != nil {
		return err
	}

	if err := conn.Update(cmd.Table, fields, cmd.Where, bindings); err != nil {
		return fmt.Errorf("update %s: %w", cmd.Table, err)
	}
	return e.printChanges("updated", conn.RowsAffected())
}

// Delete deletes the matched rows and prints how many were removed.
func (e *Executor) Delete(cmd *config.DeleteCmd) error {
	conn, err := e.conn()
	if err != nil {
		return err
	}

	bindings, err := fieldarg.ParseAll(cmd.Bind)
	if err != nil {
		return err
	}

	if err := conn.Delete(cmd.Table, cmd.Where, bindings); err != nil {
		return fmt.Errorf("delete from %s: %w", cmd.Table, err)
	}
	return e.printChanges("deleted", conn.RowsAffected())
}

// Select writes the matched rows in the configured format.
func (e *Executor) Select(cmd *config.SelectCmd) error {
	conn, err := e.conn()
	if err != nil {
		return err
	}

	bindings, err := fieldarg.ParseAll(cmd.Bind)
	if err != nil {
		return err
	}

	rows, err := conn.SelectColumns(cmd.Table, cmd.Columns, cmd.Where, bindings)
	if err != nil {
		return fmt.Errorf("select from %s: %w", cmd.Table, err)
	}
	return output.Write(e.Out, e.Format, cmd.Table, rows, e.Blob)
}

// Load inserts every row of a fixture file.
func (e *Executor) Load(cmd *config.LoadCmd) error {
	conn, err := e.conn()
	if err != nil {
		return err
	}

	fixtures, err := fixture.ReadFile(cmd.File)
	if err != nil {
		return err
	}

	progress := e.Progress
	if progress == nil {
		progress = io.Discard
	}

	n, err := fixture.Load(conn, fixtures, progress)
	e.Logger.InfoNs("command", "fixture loaded", log.KV{"file": cmd.File, "rows": n})
	if err != nil {
		return err
	}

	_, err = styled.DimmedColor().Fprintf(
		e.Out, "loaded %s row(s) from %s\n", numutil.IntWithCommas(n), cmd.File,
	)
	return err
}

// Fields prints the diagnostic form of each field argument.
func (e *Executor) Fields(cmd *config.FieldsCmd) error {
	fields, err := fieldarg.ParseAll(cmd.Fields)
	if err != nil {
		return err
	}

	for _, f := range fields {
		if _, err := fmt.Fprintln(e.Out, f.Render(e.Blob)); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) conn() (*sqlite.Conn, error) {
	if e.Conn == nil || !e.Conn.IsOpen() {
		return nil, ErrNoDatabase
	}
	return e.Conn, nil
}

func (e *Executor) printChanges(verb string, n int64) error {
	_, err := fmt.Fprintf(e.Out, "%s %s row(s)\n", verb, numutil.IntWithCommas(n))
	return err
}
