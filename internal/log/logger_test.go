package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	record := map[string]any{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	return record
}

func TestLogger(t *testing.T) {
	t.Run("InfoNs", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewLogger(buf)
		logger.InfoNs("load", "inserted", KV{"rows": 3})

		record := decodeRecord(t, buf)
		assert.Equal(t, "INFO", record["level"])
		assert.Equal(t, "inserted", record["msg"])
		assert.Equal(t, "load", record["ns"])
		assert.Equal(t, float64(3), record["rows"])
	})

	t.Run("DebugHiddenByDefault", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewLogger(buf)
		logger.Debug("hidden")
		assert.Empty(t, buf.String())
	})

	t.Run("DebugLogger", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewDebugLogger(buf)
		logger.DebugNs("repl", "line", KV{"text": "select t"})

		record := decodeRecord(t, buf)
		assert.Equal(t, "DEBUG", record["level"])
		assert.Equal(t, "repl", record["ns"])
		assert.Equal(t, "select t", record["text"])
		assert.NotNil(t, logger.Slog())
	})

	t.Run("ZeroValueDiscards", func(t *testing.T) {
		var logger Logger
		assert.False(t, logger.IsInitialized())
		assert.Nil(t, logger.Slog())
		assert.NotPanics(t, func() {
			logger.Error("nothing")
			logger.WarnNs("ns", "nothing", KV{"a": 1})
		})
	})
}
