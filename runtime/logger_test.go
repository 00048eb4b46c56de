package runtime

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	// Test that logs are quiet by default in tests
	buffer, cleanup := CaptureLog(t, LogLevelInfo)
	defer cleanup()

	Debug("This should not appear")
	Info("This should appear")
	Warn("This warning should appear")
	Error("This error should appear")

	logs := buffer.String()
	assert.NotContains(t, logs, "This should not appear")
	AssertLogContains(t, logs, "This should appear")
	AssertLogContains(t, logs, "This warning should appear")
	AssertLogContains(t, logs, "This error should appear")
	AssertLogContains(t, logs, "level=WARN")
}

func TestQuietTest(t *testing.T) {
	buffer, cleanup := CaptureLog(t, LogLevelDebug)
	defer cleanup()
	restore := QuietTest(t)

	Debug("Debug message")
	Error("Error message")
	restore()

	assert.Empty(t, buffer.String())
	assert.Equal(t, LogLevelDebug, GetLogLevel())
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
		hasError bool
	}{
		{"DEBUG", LogLevelDebug, false},
		{"debug", LogLevelDebug, false},
		{"INFO", LogLevelInfo, false},
		{"WARN", LogLevelWarn, false},
		{"WARNING", LogLevelWarn, false},
		{"ERROR", LogLevelError, false},
		{"OFF", LogLevelOff, false},
		{"NONE", LogLevelOff, false},
		{"INVALID", LogLevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLogLevel(tt.input)
			if tt.hasError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestSlogLoggerWrapsHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), LogLevelWarn)

	logger.Info("dropped %d", 1)
	logger.Warn("kept %d", 2)
	logger.SetLevel(LogLevelDebug)
	logger.Debug("now kept %s", "too")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if assert.Len(t, lines, 2) {
		assert.Contains(t, lines[0], `"msg":"kept 2"`)
		assert.Contains(t, lines[1], `"msg":"now kept too"`)
	}
}

func TestNopLogger(t *testing.T) {
	logger := NopLogger()
	logger.Error("nothing")
	assert.Equal(t, LogLevelOff, logger.GetLevel())
}
