package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTextLogger(buf *bytes.Buffer, level LogLevel) *StoreLogger {
	return NewLogger(&LoggerConfig{Level: level, Format: "text", Output: buf})
}

func TestStoreLoggerKeyValueArgs(t *testing.T) {
	var buf bytes.Buffer
	logger := newTextLogger(&buf, LogLevelDebug)

	logger.Debug("store write completed", "store", "validations_store", "path", "a/b.json", "bytes", 42)

	out := buf.String()
	assert.Contains(t, out, `msg="store write completed"`)
	assert.Contains(t, out, "store=validations_store")
	assert.Contains(t, out, "path=a/b.json")
	assert.Contains(t, out, "bytes=42")
	assert.NotContains(t, out, "EXTRA")
}

func TestStoreLoggerContextualAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := newTextLogger(&buf, LogLevelDebug).
		WithComponent("store").
		WithStore("expectations_store").
		WithRun("run7")

	logger.Info("loaded", "path", "suite1.json")

	out := buf.String()
	assert.Contains(t, out, "component=store")
	assert.Contains(t, out, "store=expectations_store")
	assert.Contains(t, out, "run_id=run7")
	assert.Contains(t, out, "path=suite1.json")
}

func TestStoreLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := newTextLogger(&buf, LogLevelWarn)

	logger.Debug("hidden", "k", "v")
	logger.Info("hidden too")
	assert.Empty(t, buf.String())

	logger.Warn("visible", "k", "v")
	assert.Contains(t, buf.String(), "msg=visible")
}

func TestStoreLoggerJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LogLevelInfo, Format: "json", Output: &buf})

	logger.Error("operator run failed", "operator", "action_list_operator", "error", "boom")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "operator run failed", entry["msg"])
	assert.Equal(t, "action_list_operator", entry["operator"])
	assert.Equal(t, "boom", entry["error"])
}

func TestSlogAdapterImplementsLogger(t *testing.T) {
	var _ Logger = (*SlogAdapter)(nil)
	var _ Logger = (*StoreLogger)(nil)
	var _ Logger = NoOpLogger{}
}

func TestLogLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LogLevelDebug.String())
	assert.Equal(t, "INFO", LogLevelInfo.String())
	assert.Equal(t, "WARN", LogLevelWarn.String())
	assert.Equal(t, "ERROR", LogLevelError.String())
	assert.Equal(t, "UNKNOWN", LogLevel(99).String())
}

func TestNoOpLoggerDiscards(t *testing.T) {
	logger := NoOpLogger{}
	logger.Debug("a", "k", "v")
	logger.Info("b")
	logger.Warn("c")
	logger.Error("d")
}

func TestLoggerOutputIsParseable(t *testing.T) {
	var buf bytes.Buffer
	logger := newTextLogger(&buf, LogLevelInfo).WithComponent("registry")

	logger.Info("store registered", "store", "expectations_store")
	logger.Info("store registered", "store", "validations_store")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Contains(t, line, "component=registry")
	}
}
