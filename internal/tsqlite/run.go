package tsqlite

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/nsqlite/tsqlite/internal/log"
	"github.com/nsqlite/tsqlite/internal/tsqlite/command"
	"github.com/nsqlite/tsqlite/internal/tsqlite/config"
	"github.com/nsqlite/tsqlite/internal/tsqlite/repl"
	"github.com/nsqlite/tsqlite/sqlite"
)

// Run runs the tsqlite CLI.
func Run(ctx context.Context) error {
	conf := config.MustParse(os.Args)
	return Execute(ctx, conf, os.Stdout, os.Stderr)
}

// Execute runs the command selected in conf, writing results to stdout and
// logs and progress to stderr.
func Execute(ctx context.Context, conf config.Config, stdout io.Writer, stderr io.Writer) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.NewLogger(stderr)
	options := []sqlite.Option{}
	if conf.Verbose {
		logger = log.NewDebugLogger(stderr)
		options = append(options, sqlite.WithLogger(logger.Slog()))
	}

	exec := &command.Executor{
		Out:      stdout,
		Progress: stderr,
		Format:   conf.OutputFormat,
		Blob:     conf.BlobFormat,
		Logger:   logger,
	}

	if conf.NeedsDatabase() {
		conn := sqlite.New(options...)
		if err := conn.Open(conf.DatabasePath); err != nil {
			return fmt.Errorf("opening %s: %w", conf.DatabasePath, err)
		}
		defer func() {
			if err := conn.Close(); err != nil {
				logger.ErrorNs("tsqlite", "closing database", log.KV{"error": err.Error()})
			}
		}()
		exec.Conn = conn
	}

	if conf.Commands.IsEmpty() || conf.Repl != nil {
		rp := repl.NewRepl(ctx, stop, exec, conf.DatabasePath, logger)
		defer rp.Shutdown()
		if err := rp.Start(); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "\nGoodbye!\n\n")
		return nil
	}

	return exec.Execute(conf.Commands)
}
