package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/mattn/go-shellwords"
	"github.com/nsqlite/tsqlite/cell"
	"github.com/nsqlite/tsqlite/internal/log"
	"github.com/nsqlite/tsqlite/internal/tsqlite/command"
	"github.com/nsqlite/tsqlite/internal/tsqlite/config"
	"github.com/nsqlite/tsqlite/internal/tsqlite/output"
	"github.com/nsqlite/tsqlite/internal/tsqlite/styled"
	"github.com/nsqlite/tsqlite/internal/util/sysutil"
	"github.com/nsqlite/tsqlite/internal/version"
	"github.com/peterh/liner"
)

type Repl struct {
	exec        *command.Executor
	dbPath      string
	ctx         context.Context
	stop        context.CancelFunc
	out         io.Writer
	logger      log.Logger
	line        *liner.State
	historyPath string
}

func NewRepl(
	ctx context.Context,
	stop context.CancelFunc,
	exec *command.Executor,
	dbPath string,
	logger log.Logger,
) *Repl {
	return &Repl{
		exec:        exec,
		dbPath:      dbPath,
		ctx:         ctx,
		stop:        stop,
		out:         exec.Out,
		logger:      logger,
		historyPath: filepath.Join(os.TempDir(), ".tsqlite_history"),
	}
}

func (r *Repl) Start() error {
	fmt.Fprintln(r.out, version.Banner())
	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "Connected to %s\n", r.dbPath)
	fmt.Fprintln(r.out, `Enter ".help" for usage hints and ".quit" or "CTRL+C" to quit`)
	fmt.Fprintln(r.out)

	r.line = liner.NewLiner()
	r.line.SetCtrlCAborts(true)
	r.line.SetCompleter(cmdHelpCompleter)
	r.readHistory()

	for {
		select {
		case <-r.ctx.Done():
			return nil
		default:
			input, ok := r.prompt()
			if !ok {
				r.Shutdown()
				return nil
			}
			if quit := r.handleLine(input); quit {
				r.Shutdown()
				return nil
			}
		}
	}
}

// Shutdown stops the REPL and restores the terminal.
func (r *Repl) Shutdown() {
	if r.line != nil {
		r.writeHistory()
		_ = r.line.Close()
		r.line = nil
	}
	r.stop()
}

// handleLine runs one line of input and reports whether the shell should
// exit. Errors are printed, never returned, so the shell keeps going.
func (r *Repl) handleLine(input string) bool {
	input = strings.TrimSpace(input)
	if input == "" {
		return false
	}
	r.logger.DebugNs("repl", "line", log.KV{"input": input})

	switch input {
	case "exit", ".exit", ".quit":
		return true
	case "clear", ".clear":
		sysutil.ClearTerminal(r.out)
		return false
	case "help", ".help":
		cmdHelp(r.out)
		return false
	case ".tables":
		r.printError(r.listTables())
		return false
	}

	if strings.HasPrefix(input, ".") {
		fmt.Fprintln(r.out, "Unknown command, type .help for usage hints")
		return false
	}

	words, err := shellwords.Parse(input)
	if err != nil {
		r.printError(fmt.Errorf("invalid input: %w", err))
		return false
	}

	cmds, err := config.ParseLine(words, r.out)
	if errors.Is(err, arg.ErrHelp) {
		return false
	}
	if err != nil {
		r.printError(err)
		return false
	}

	r.printError(r.exec.Execute(cmds))
	return false
}

func (r *Repl) listTables() error {
	if r.exec.Conn == nil {
		return command.ErrNoDatabase
	}

	rows, err := r.exec.Conn.SelectColumns(
		"sqlite_master",
		[]string{"name"},
		"WHERE type=:type AND name NOT LIKE 'sqlite_%' ORDER BY name",
		[]cell.Field{cell.F("type", cell.Text("table"))},
	)
	if err != nil {
		return err
	}
	return output.Write(r.out, output.FormatTable, "sqlite_master", rows, r.exec.Blob)
}

func (r *Repl) printError(err error) {
	if err == nil {
		return
	}
	styled.ErrorColor().Fprintf(r.out, "Error: %s\n", err)
}

// prompt shows the prompt and reads the input from the user. It returns
// false when the user aborted with CTRL+C, closed the input or reading failed.
func (r *Repl) prompt() (string, bool) {
	input, err := r.line.Prompt("tsqlite> ")
	if !r.promptOK(err) {
		return "", false
	}

	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, true
}

// promptOK reports whether the shell can keep reading after a prompt
// returned err. Any error ends the session.
func (r *Repl) promptOK(err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, liner.ErrPromptAborted):
		fmt.Fprintln(r.out, "CTRL+C pressed, exiting...")
	case errors.Is(err, io.EOF):
	default:
		r.printError(fmt.Errorf("reading input: %w", err))
	}
	return false
}

func (r *Repl) readHistory() {
	file, err := os.Open(r.historyPath)
	if err != nil {
		return
	}
	defer file.Close()
	_, _ = r.line.ReadHistory(file)
}

func (r *Repl) writeHistory() {
	file, err := os.Create(r.historyPath)
	if err != nil {
		r.logger.WarnNs("repl", "history not saved", log.KV{"error": err.Error()})
		return
	}
	defer file.Close()
	_, _ = r.line.WriteHistory(file)
}
