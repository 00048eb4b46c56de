package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelOff
)

// String returns the string representation of a log level
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	case LogLevelOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel parses a string into a LogLevel
func ParseLogLevel(s string) (LogLevel, error) {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return LogLevelDebug, nil
	case "INFO":
		return LogLevelInfo, nil
	case "WARN", "WARNING":
		return LogLevelWarn, nil
	case "ERROR":
		return LogLevelError, nil
	case "OFF", "NONE":
		return LogLevelOff, nil
	default:
		return LogLevelInfo, fmt.Errorf("unknown log level: %s", s)
	}
}

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Logger interface for structured logging
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
	SetLevel(level LogLevel)
	GetLevel() LogLevel
}

// DefaultLogger implements the Logger interface on top of a slog.Logger.
// Level filtering happens here so the handler can be left wide open.
type DefaultLogger struct {
	level  LogLevel
	logger *slog.Logger
	mu     sync.RWMutex
}

// NewLogger creates a logger writing slog text records to output.
func NewLogger(output io.Writer, level LogLevel) *DefaultLogger {
	handler := slog.NewTextHandler(output, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogLogger(slog.New(handler), level)
}

// NewSlogLogger wraps an existing slog.Logger (eg one with a pretty handler).
func NewSlogLogger(logger *slog.Logger, level LogLevel) *DefaultLogger {
	return &DefaultLogger{level: level, logger: logger}
}

// NopLogger discards everything.
func NopLogger() *DefaultLogger {
	return NewLogger(io.Discard, LogLevelOff)
}

// SetLevel sets the minimum log level
func (l *DefaultLogger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// GetLevel returns the current log level
func (l *DefaultLogger) GetLevel() LogLevel {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

// log writes a log message if the level is enabled
func (l *DefaultLogger) log(level LogLevel, format string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if level < l.level || l.level == LogLevelOff {
		return
	}
	l.logger.Log(context.Background(), level.slogLevel(), fmt.Sprintf(format, args...))
}

// Debug logs a debug message
func (l *DefaultLogger) Debug(format string, args ...any) {
	l.log(LogLevelDebug, format, args...)
}

// Info logs an info message
func (l *DefaultLogger) Info(format string, args ...any) {
	l.log(LogLevelInfo, format, args...)
}

// Warn logs a warning message
func (l *DefaultLogger) Warn(format string, args ...any) {
	l.log(LogLevelWarn, format, args...)
}

// Error logs an error message
func (l *DefaultLogger) Error(format string, args ...any) {
	l.log(LogLevelError, format, args...)
}

// Global logger instance.  Evaluators created without WithLogger use it.
var globalLogger = NewLogger(os.Stderr, LogLevelInfo)

// Package-level convenience functions

// SetLogger replaces the global logger.
func SetLogger(l *DefaultLogger) {
	globalLogger = l
}

// GetLogger returns the global logger.
func GetLogger() *DefaultLogger {
	return globalLogger
}

// SetLogLevel sets the global log level
func SetLogLevel(level LogLevel) {
	globalLogger.SetLevel(level)
}

// GetLogLevel returns the current global log level
func GetLogLevel() LogLevel {
	return globalLogger.GetLevel()
}

// Debug logs a debug message using the global logger
func Debug(format string, args ...any) {
	globalLogger.Debug(format, args...)
}

// Info logs an info message using the global logger
func Info(format string, args ...any) {
	globalLogger.Info(format, args...)
}

// Warn logs a warning message using the global logger
func Warn(format string, args ...any) {
	globalLogger.Warn(format, args...)
}

// Error logs an error message using the global logger
func Error(format string, args ...any) {
	globalLogger.Error(format, args...)
}

// Initialize logger from environment
func init() {
	if levelStr := os.Getenv("OWL_LOG_LEVEL"); levelStr != "" {
		if level, err := ParseLogLevel(levelStr); err == nil {
			SetLogLevel(level)
		}
	}

	// In test mode, default to ERROR level only
	if strings.HasSuffix(os.Args[0], ".test") {
		SetLogLevel(LogLevelError)
	}
}
