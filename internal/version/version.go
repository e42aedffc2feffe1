package version

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/nsqlite/tsqlite/internal/sqlitec"
)

// Version is the tsqlite release.
const Version = "v0.1.0"

const banner = `
  __                   ___ __     
 / /________ ____ _   / (_) /____ 
/ __/ ___/ __ ` + "`" + `/ __ ` + "`" + `/  / / / __/ _ \
/ /_(__  ) /_/ / /_/ /  / / / /_/  __/
\__/____/\__, /\__, /  /_/_/\__/\___/
           /_/   /_/`

// String returns the one-line version: tsqlite and the linked engine.
func String() string {
	return fmt.Sprintf("tsqlite %s (sqlite %s)", Version, sqlitec.Version())
}

// Banner returns the ASCII art shown when the REPL starts.
func Banner() string {
	art := color.New(color.FgCyan, color.Bold).Sprint(banner[1:])
	return art + "\n" + String()
}
