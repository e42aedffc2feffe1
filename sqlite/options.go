package sqlite

import (
	"log/slog"

	"github.com/nsqlite/tsqlite/sqliteh"
)

// Option configures a Conn.
type Option func(*Conn)

// WithDriver sets the engine used to open the connection. The default links
// against the system SQLite library.
func WithDriver(driver sqliteh.Driver) Option {
	return func(conn *Conn) {
		conn.driver = driver
	}
}

// WithLogger enables debug records for every engine call the connection
// makes: the SQL text and the result code. Failures are still only reported
// through return values.
func WithLogger(logger *slog.Logger) Option {
	return func(conn *Conn) {
		conn.logger = logger
	}
}
