package config

import (
	"errors"
	"io"

	"github.com/alexflint/go-arg"
)

// InsertCmd inserts one row.
type InsertCmd struct {
	Table  string   `arg:"positional,required" help:"Table to insert into"`
	Fields []string `arg:"positional,required" help:"Fields as name=kind:value, kind is int, real, text, hex, file or null"`
}

// UpdateCmd sets fields on the matched rows.
type UpdateCmd struct {
	Table  string   `arg:"positional,required" help:"Table to update"`
	Fields []string `arg:"positional,required" help:"Fields to set as name=kind:value"`
	Where  string   `arg:"--where" help:"Clause after SET, for example \"WHERE rowid=:rowid\"; empty updates every row"`
	Bind   []string `arg:"--bind,separate" help:"Value for a placeholder of the where clause as name=kind:value, repeatable"`
}

// DeleteCmd deletes the matched rows.
type DeleteCmd struct {
	Table string   `arg:"positional,required" help:"Table to delete from"`
	Where string   `arg:"--where" help:"Clause after the table name; empty deletes every row"`
	Bind  []string `arg:"--bind,separate" help:"Value for a placeholder of the where clause, repeatable"`
}

// SelectCmd prints the matched rows.
type SelectCmd struct {
	Table   string   `arg:"positional,required" help:"Table to select from"`
	Columns []string `arg:"positional" help:"Columns to select; none selects *"`
	Where   string   `arg:"--where" help:"Clause after the table name, including joins"`
	Bind    []string `arg:"--bind,separate" help:"Value for a placeholder of the where clause, repeatable"`
}

// LoadCmd inserts the rows of a YAML fixture file.
type LoadCmd struct {
	File string `arg:"positional,required" help:"YAML file of {table, rows} documents"`
}

// FieldsCmd prints how field arguments are parsed, without a database.
type FieldsCmd struct {
	Fields []string `arg:"positional,required" help:"Fields as name=kind:value"`
}

// ReplCmd starts the interactive shell.
type ReplCmd struct{}

// Commands holds the subcommands shared by the command line and the shell.
// At most one is set after parsing.
type Commands struct {
	Insert *InsertCmd `arg:"subcommand:insert" help:"Insert one row and print its rowid"`
	Update *UpdateCmd `arg:"subcommand:update" help:"Update rows and print how many changed"`
	Delete *DeleteCmd `arg:"subcommand:delete" help:"Delete rows and print how many were removed"`
	Select *SelectCmd `arg:"subcommand:select" help:"Select rows"`
	Load   *LoadCmd   `arg:"subcommand:load" help:"Insert the rows of a YAML fixture file"`
	Fields *FieldsCmd `arg:"subcommand:fields" help:"Print the parsed form of field arguments"`
	Repl   *ReplCmd   `arg:"subcommand:repl" help:"Start the interactive shell (default)"`
}

// IsEmpty reports whether no subcommand was given.
func (c Commands) IsEmpty() bool {
	return c == (Commands{})
}

// ErrNoCommand is returned by ParseLine for a line without a subcommand.
var ErrNoCommand = errors.New("missing command, type .help for usage hints")

// ParseLine parses one shell line, already split into words, into a
// subcommand. Environment variables are ignored. When the words ask for
// help, the help is written to help and arg.ErrHelp is returned.
func ParseLine(words []string, help io.Writer) (Commands, error) {
	var cmds Commands

	parser, err := arg.NewParser(
		arg.Config{Program: "tsqlite", IgnoreEnv: true},
		&cmds,
	)
	if err != nil {
		return Commands{}, err
	}

	if err := parser.Parse(words); err != nil {
		if errors.Is(err, arg.ErrHelp) {
			_ = parser.WriteHelpForSubcommand(help, parser.SubcommandNames()...)
		}
		return Commands{}, err
	}

	if cmds.IsEmpty() {
		return Commands{}, ErrNoCommand
	}
	return cmds, nil
}
