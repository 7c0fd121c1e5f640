package slogobs

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(format Format, level slog.Level) (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	handler := NewHandler(&HandlerOptions{Format: format, Level: level, Output: &buf})
	return slog.New(handler), &buf
}

func TestHandler_Compact(t *testing.T) {
	logger, buf := newTestLogger(FormatCompact, slog.LevelDebug)
	logger.Info("Test message", "key1", "value1", "key2", 42)

	output := buf.String()
	assert.Contains(t, output, " INFO Test message → ")
	assert.Contains(t, output, `{"key1":"value1","key2":42}`)
	assert.True(t, strings.HasSuffix(output, "\n"))
}

func TestHandler_Pretty(t *testing.T) {
	logger, buf := newTestLogger(FormatPretty, slog.LevelDebug)
	logger.Warn("Test message", "b", 2, "a", 1)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "WARN   Test message")
	assert.Equal(t, "    ├─ a: 1", lines[1])
	assert.Equal(t, "    └─ b: 2", lines[2])
}

func TestHandler_JSON(t *testing.T) {
	logger, buf := newTestLogger(FormatJSON, slog.LevelDebug)
	logger.Error("Test message", "calc.op", "divide")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "Test message", record["msg"])
	assert.Equal(t, "divide", record["calc.op"])
	assert.NotEmpty(t, record["time"])
}

func TestHandler_NonFiniteFloatsEncode(t *testing.T) {
	for _, format := range []Format{FormatCompact, FormatJSON} {
		t.Run(format.String(), func(t *testing.T) {
			logger, buf := newTestLogger(format, slog.LevelDebug)
			logger.Info("result", "pos", math.Inf(1), "neg", math.Inf(-1), "nan", math.NaN())

			output := buf.String()
			assert.NotContains(t, output, "json-error")
			assert.Contains(t, output, `"pos":"+Inf"`)
			assert.Contains(t, output, `"neg":"-Inf"`)
			assert.Contains(t, output, `"nan":"NaN"`)
		})
	}
}

func TestHandler_ErrorAndDurationValues(t *testing.T) {
	logger, buf := newTestLogger(FormatJSON, slog.LevelDebug)
	logger.Info("done", "err", errors.New("boom"), "took", 1500*time.Millisecond)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "boom", record["err"])
	assert.Equal(t, "1.5s", record["took"])
}

func TestHandler_LevelFiltering(t *testing.T) {
	logger, buf := newTestLogger(FormatCompact, slog.LevelWarn)
	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestHandler_WithAttrsAndGroup(t *testing.T) {
	logger, buf := newTestLogger(FormatJSON, slog.LevelDebug)
	logger.With("tool", "calculator").WithGroup("calc").Info("evaluated", "op", "add")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "calculator", record["tool"])
	assert.Equal(t, "add", record["calc.op"])
}

func TestHandler_Colors(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&HandlerOptions{Format: FormatCompact, Output: &buf, Colors: true}))
	logger.Error("boom")

	assert.Contains(t, buf.String(), colorRed)
	assert.Contains(t, buf.String(), colorReset)
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "TRACE", levelString(LevelTrace))
	assert.Equal(t, "DEBUG", levelString(slog.LevelDebug))
	assert.Equal(t, "INFO", levelString(slog.LevelInfo))
	assert.Equal(t, "WARN", levelString(slog.LevelWarn))
	assert.Equal(t, "ERROR", levelString(slog.LevelError))
}
