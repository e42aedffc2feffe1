package repl

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nsqlite/tsqlite/internal/tsqlite/styled"
)

type shellCmd struct {
	name         string
	autocomplete string
	help         string
	args         string
}

func cmdHelpCommands() []shellCmd {
	cmds := []shellCmd{
		{name: "insert TABLE FIELD...", autocomplete: "insert ", help: "Insert one row and print its rowid", args: "FIELD as name=kind:value"},
		{name: "update TABLE FIELD...", autocomplete: "update ", help: "Update rows and print how many changed", args: "--where CLAUSE, --bind FIELD"},
		{name: "delete TABLE", autocomplete: "delete ", help: "Delete rows and print how many were removed", args: "--where CLAUSE, --bind FIELD"},
		{name: "select TABLE [COLUMN...]", autocomplete: "select ", help: "Select rows", args: "--where CLAUSE, --bind FIELD"},
		{name: "load FILE", autocomplete: "load ", help: "Insert the rows of a YAML fixture file"},
		{name: "fields FIELD...", autocomplete: "fields ", help: "Print the parsed form of field arguments"},

		{name: ".tables", autocomplete: ".tables", help: "List all tables in the database"},
		{name: ".clear", autocomplete: ".clear", help: "Clear the terminal screen"},
		{name: ".help", autocomplete: ".help", help: "Show the help message"},
		{name: ".quit", autocomplete: ".quit", help: "Exit the shell"},
		{name: ".exit", autocomplete: ".exit", help: "Exit the shell"},
		{name: "CTRL+c", help: "Exit the shell"},
	}

	sort.Slice(cmds, func(i, j int) bool {
		return cmds[i].name < cmds[j].name
	})

	return cmds
}

func cmdHelp(out io.Writer) {
	fmt.Fprintln(out, "Available commands:")

	tw := styled.NewTableWriter(out)
	tw.AppendHeader(table.Row{"Command", "Description", "Arguments"})
	for _, cmd := range cmdHelpCommands() {
		tw.AppendRow(table.Row{cmd.name, cmd.help, cmd.args})
	}
	tw.Render()

	styled.DimmedColor().Fprintln(out, `Field kinds: int, real, text, hex, file, null. Add --help to a command for details.`)
}

func cmdHelpCompleter(line string) []string {
	results := []string{}
	for _, cmd := range cmdHelpCommands() {
		if cmd.autocomplete == "" {
			continue
		}
		if strings.HasPrefix(strings.ToLower(cmd.autocomplete), strings.ToLower(line)) {
			results = append(results, cmd.autocomplete)
		}
	}

	return results
}
