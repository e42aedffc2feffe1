package main

import (
	"context"
	"os"

	"github.com/nsqlite/tsqlite/internal/tsqlite"
	"github.com/nsqlite/tsqlite/internal/tsqlite/styled"
	"github.com/nsqlite/tsqlite/sqlite"
)

func main() {
	if err := tsqlite.Run(context.Background()); err != nil {
		styled.ErrorColor().Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode returns the primary engine result code for engine failures so
// scripts can tell them apart, and 1 for anything else.
func exitCode(err error) int {
	code := int(sqlite.Code(err).Primary())
	if code == 0 || code > 125 {
		return 1
	}
	return code
}
