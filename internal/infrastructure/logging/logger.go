package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

func init() {
	zerolog.TimestampFieldName = "timestamp"
	zerolog.TimeFieldFormat = time.RFC3339
}

// Logger is the structured logger used across the shell.
// Fields are alternating key/value pairs.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
}

// DefaultLogger writes JSON lines through zerolog
type DefaultLogger struct {
	zl zerolog.Logger
}

// NewDefaultLogger creates a debug-level logger writing to stderr
func NewDefaultLogger() Logger {
	return NewLogger(os.Stderr, "debug")
}

// NewLogger creates a logger writing JSON to w at the given level.
// Unknown levels fall back to info.
func NewLogger(w io.Writer, level string) Logger {
	return &DefaultLogger{
		zl: zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger(),
	}
}

// NewConsoleLogger creates a human-readable logger for development runs
func NewConsoleLogger(w io.Writer, level string) Logger {
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	return &DefaultLogger{
		zl: zerolog.New(console).Level(ParseLevel(level)).With().Timestamp().Logger(),
	}
}

// ParseLevel maps a level name onto a zerolog level
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "warning":
		return zerolog.WarnLevel
	case "":
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// fieldsToMap converts the variadic fields slice to a map
// Expected format: key1, value1, key2, value2, ...
func fieldsToMap(fields []interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(fields)/2)

	for i := 0; i < len(fields); i += 2 {
		if i+1 >= len(fields) {
			result[fmt.Sprintf("field_%d", i/2)] = fields[i]
			break
		}
		if key, ok := fields[i].(string); ok {
			result[key] = fields[i+1]
			continue
		}
		result[fmt.Sprintf("field_%d", i/2)] = fields[i]
		result[fmt.Sprintf("field_%d_value", i/2)] = fields[i+1]
	}

	return result
}

func (l *DefaultLogger) write(event *zerolog.Event, msg string, fields []interface{}) {
	if event == nil {
		return
	}
	m := fieldsToMap(fields)
	for k, v := range m {
		if err, ok := v.(error); ok {
			m[k] = err.Error()
		}
	}
	event.Fields(map[string]interface{}{"fields": m}).Msg(msg)
}

func (l *DefaultLogger) Debug(msg string, fields ...interface{}) {
	l.write(l.zl.Debug(), msg, fields)
}

func (l *DefaultLogger) Info(msg string, fields ...interface{}) {
	l.write(l.zl.Info(), msg, fields)
}

func (l *DefaultLogger) Warn(msg string, fields ...interface{}) {
	l.write(l.zl.Warn(), msg, fields)
}

func (l *DefaultLogger) Error(msg string, fields ...interface{}) {
	l.write(l.zl.Error(), msg, fields)
}

// With returns a logger that adds fields to every entry
func With(logger Logger, fields ...interface{}) Logger {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &boundLogger{parent: logger, fields: fields}
}

type boundLogger struct {
	parent Logger
	fields []interface{}
}

func (b *boundLogger) merge(fields []interface{}) []interface{} {
	out := make([]interface{}, 0, len(b.fields)+len(fields))
	out = append(out, b.fields...)
	return append(out, fields...)
}

func (b *boundLogger) Debug(msg string, fields ...interface{}) { b.parent.Debug(msg, b.merge(fields)...) }
func (b *boundLogger) Info(msg string, fields ...interface{})  { b.parent.Info(msg, b.merge(fields)...) }
func (b *boundLogger) Warn(msg string, fields ...interface{})  { b.parent.Warn(msg, b.merge(fields)...) }
func (b *boundLogger) Error(msg string, fields ...interface{}) { b.parent.Error(msg, b.merge(fields)...) }

// ShellError is the subset of the errors package type the logger needs.
// Declared here to avoid an import cycle.
type ShellError interface {
	Error() string
	GetCode() string
	IsRetryable() bool
	GetContext() map[string]string
	GetTimestamp() time.Time
}

// LogShellError logs an absorbed failure with its classification
func LogShellError(logger Logger, err error, operation string, context map[string]interface{}) {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	if err == nil {
		return
	}

	var fields []interface{}
	msg := fmt.Sprintf("Unexpected error: %s", err.Error())

	var shellErr ShellError
	if errors.As(err, &shellErr) {
		msg = fmt.Sprintf("Shell error: %s", err.Error())
		fields = append(fields,
			"operation", operation,
			"error_code", shellErr.GetCode(),
			"retryable", shellErr.IsRetryable(),
			"timestamp", shellErr.GetTimestamp(),
		)
		for k, v := range shellErr.GetContext() {
			fields = append(fields, k, v)
		}
	} else {
		fields = append(fields,
			"operation", operation,
			"error_type", fmt.Sprintf("%T", err),
		)
	}

	for k, v := range context {
		fields = append(fields, k, v)
	}

	logger.Error(msg, fields...)
}

// LogShellOperation logs a completed lifecycle step with its duration
func LogShellOperation(logger Logger, operation string, duration time.Duration, context map[string]interface{}) {
	if logger == nil {
		logger = NewDefaultLogger()
	}

	fields := []interface{}{
		"operation", operation,
		"duration_ms", duration.Milliseconds(),
	}
	for k, v := range context {
		fields = append(fields, k, v)
	}

	logger.Info(fmt.Sprintf("Shell operation completed: %s", operation), fields...)
}
