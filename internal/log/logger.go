package log

import (
	"io"
	"log/slog"
)

// Logger is a structured JSON logger on top of slog.Logger.
//
// The zero Logger is not initialized and discards everything, so commands
// can hold one unconditionally.
type Logger struct {
	slogger *slog.Logger
}

// NewLogger creates a Logger that writes info and above to writer.
func NewLogger(writer io.Writer) Logger {
	return newLogger(writer, slog.LevelInfo)
}

// NewDebugLogger creates a Logger that also writes debug records, including
// the statement traces of the sqlite package.
func NewDebugLogger(writer io.Writer) Logger {
	return newLogger(writer, slog.LevelDebug)
}

func newLogger(writer io.Writer, level slog.Level) Logger {
	return Logger{
		slogger: slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: level})),
	}
}

// IsInitialized reports whether the logger was created with a constructor.
func (l *Logger) IsInitialized() bool {
	return l.slogger != nil
}

// Slog returns the underlying slog.Logger, for packages that accept one.
// It returns nil when the logger is not initialized.
func (l *Logger) Slog() *slog.Logger {
	return l.slogger
}

// Info logs structured info message.
func (l *Logger) Info(msg string, keyVals ...KV) {
	if l.slogger == nil {
		return
	}
	l.slogger.Info(msg, kvToArgs(keyVals...)...)
}

// InfoNs logs structured info message with a namespace.
//
// The namespace differentiates logs from different parts of the CLI and is
// written as the first key-value pair.
func (l *Logger) InfoNs(namespace string, msg string, keyVals ...KV) {
	if l.slogger == nil {
		return
	}
	l.slogger.Info(msg, kvToArgsNs(namespace, keyVals...)...)
}

// Debug logs structured debug message.
func (l *Logger) Debug(msg string, keyVals ...KV) {
	if l.slogger == nil {
		return
	}
	l.slogger.Debug(msg, kvToArgs(keyVals...)...)
}

// DebugNs logs structured debug message with a namespace.
func (l *Logger) DebugNs(namespace string, msg string, keyVals ...KV) {
	if l.slogger == nil {
		return
	}
	l.slogger.Debug(msg, kvToArgsNs(namespace, keyVals...)...)
}

// Warn logs structured warning message.
func (l *Logger) Warn(msg string, keyVals ...KV) {
	if l.slogger == nil {
		return
	}
	l.slogger.Warn(msg, kvToArgs(keyVals...)...)
}

// WarnNs logs structured warning message with a namespace.
func (l *Logger) WarnNs(namespace string, msg string, keyVals ...KV) {
	if l.slogger == nil {
		return
	}
	l.slogger.Warn(msg, kvToArgsNs(namespace, keyVals...)...)
}

// Error logs structured error message.
func (l *Logger) Error(msg string, keyVals ...KV) {
	if l.slogger == nil {
		return
	}
	l.slogger.Error(msg, kvToArgs(keyVals...)...)
}

// ErrorNs logs structured error message with a namespace.
func (l *Logger) ErrorNs(namespace string, msg string, keyVals ...KV) {
	if l.slogger == nil {
		return
	}
	l.slogger.Error(msg, kvToArgsNs(namespace, keyVals...)...)
}
