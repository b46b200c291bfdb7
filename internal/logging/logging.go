// Package logging provides the structured logger used by fsentity.
//
// Logger wraps log/slog with a fixed field set and a no-op variant so that
// library code can log unconditionally without checking for nil.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jmgilman/go/fsentity/errors"
)

// LogLevel represents different logging levels
type LogLevel int

// Supported levels, lowest first.
const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

// String returns the lower-case name of the level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "debug"
	case LogLevelInfo:
		return "info"
	case LogLevelWarn:
		return "warn"
	case LogLevelError:
		return "error"
	default:
		return "info"
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
	default:
		return slog.LevelInfo
	}
}

// LogFormat selects the slog handler.
type LogFormat string

// Supported formats.
const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// LogConfig holds configuration for the logger.
type LogConfig struct {
	// Level sets the minimum log level (debug, info, warn, error)
	Level LogLevel
	// Format selects text or JSON output
	Format LogFormat
	// EnableCallerInfo includes file and line number in logs
	EnableCallerInfo bool
	// Output receives log records. Defaults to os.Stderr.
	Output io.Writer
}

// DefaultLogConfig returns a default logging configuration.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:  LogLevelInfo,
		Format: LogFormatText,
		Output: os.Stderr,
	}
}

// Logger provides structured logging. The zero value and a nil *Logger
// discard everything.
type Logger struct {
	logger *slog.Logger
}

// NewLogger creates a new structured logger with the given configuration.
func NewLogger(config LogConfig) *Logger {
	out := config.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{
		Level:     config.Level.slogLevel(),
		AddSource: config.EnableCallerInfo,
	}

	var handler slog.Handler
	if config.Format == LogFormatJSON {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	return &Logger{logger: slog.New(handler)}
}

// NewNopLogger creates a no-op logger that discards all log messages.
func NewNopLogger() *Logger {
	return &Logger{}
}

// Enabled reports whether records at level would be emitted.
func (l *Logger) Enabled(level LogLevel) bool {
	if l == nil || l.logger == nil {
		return false
	}
	return l.logger.Handler().Enabled(context.Background(), level.slogLevel())
}

// Debug logs debug-level messages
func (l *Logger) Debug(msg string, args ...any) {
	if l != nil && l.logger != nil {
		l.logger.Debug(msg, args...)
	}
}

// Info logs info-level messages
func (l *Logger) Info(msg string, args ...any) {
	if l != nil && l.logger != nil {
		l.logger.Info(msg, args...)
	}
}

// Warn logs warning-level messages
func (l *Logger) Warn(msg string, args ...any) {
	if l != nil && l.logger != nil {
		l.logger.Warn(msg, args...)
	}
}

// Error logs error-level messages
func (l *Logger) Error(msg string, args ...any) {
	if l != nil && l.logger != nil {
		l.logger.Error(msg, args...)
	}
}

// With returns a logger with additional context fields. A no-op logger
// returns itself.
func (l *Logger) With(args ...any) *Logger {
	if l == nil || l.logger == nil {
		return l
	}
	return &Logger{logger: l.logger.With(args...)}
}

// WithOperation returns a logger with operation context
func (l *Logger) WithOperation(operation Operation) *Logger {
	return l.With("operation", string(operation))
}

// WithPath returns a logger with root-relative path context
func (l *Logger) WithPath(path string) *Logger {
	return l.With("path", path)
}

// Operation names an entity operation for logging.
type Operation string

// Operation constants for entity operations
const (
	OpCreateFile      Operation = "create_file"
	OpWriteFile       Operation = "write_file"
	OpRemoveFile      Operation = "remove_file"
	OpMoveFile        Operation = "move_file"
	OpCopyFile        Operation = "copy_file"
	OpRenameFile      Operation = "rename_file"
	OpCreateDirectory Operation = "create_directory"
	OpRemoveDirectory Operation = "remove_directory"
	OpImport          Operation = "import"
)

// LogOperation logs the outcome of a mutating operation. Successes are
// logged at debug, failures at warn.
func LogOperation(logger *Logger, operation Operation, path string, duration time.Duration, err error) {
	if logger == nil {
		return
	}

	fields := []any{
		"operation", string(operation),
		"path", path,
		"duration_ms", duration.Milliseconds(),
		"success", err == nil,
	}

	if err != nil {
		fields = append(fields, "error", err.Error())
		logger.Warn("filesystem operation failed", fields...)
		return
	}
	logger.Debug("filesystem operation completed", fields...)
}

// ParseLogLevel parses a string log level into a LogLevel.
func ParseLogLevel(level string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return LogLevelDebug, nil
	case "info", "":
		return LogLevelInfo, nil
	case "warn", "warning":
		return LogLevelWarn, nil
	case "error":
		return LogLevelError, nil
	default:
		return LogLevelInfo, errors.Newf(errors.CodeInvalidConfig, "invalid log level: %s", level)
	}
}

// ParseLogFormat parses "text" or "json".
func ParseLogFormat(format string) (LogFormat, error) {
	switch LogFormat(strings.ToLower(strings.TrimSpace(format))) {
	case LogFormatText, "":
		return LogFormatText, nil
	case LogFormatJSON:
		return LogFormatJSON, nil
	default:
		return LogFormatText, errors.Newf(errors.CodeInvalidConfig, "invalid log format: %s", format)
	}
}
