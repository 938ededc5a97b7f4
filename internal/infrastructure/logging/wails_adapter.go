package logging

import (
	"strings"

	wailslogger "github.com/wailsapp/wails/v2/pkg/logger"
)

var _ wailslogger.Logger = (*WailsLoggerAdapter)(nil)

// WailsLoggerAdapter routes the framework's own log output into the shell logger
type WailsLoggerAdapter struct {
	logger Logger
}

// NewWailsLoggerAdapter wraps logger for options.App.Logger
func NewWailsLoggerAdapter(logger Logger) *WailsLoggerAdapter {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &WailsLoggerAdapter{logger: With(logger, "source", "wails")}
}

// WailsLogLevel maps a shell level name onto the framework's level
func WailsLogLevel(level string) wailslogger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return wailslogger.TRACE
	case "debug":
		return wailslogger.DEBUG
	case "warn", "warning":
		return wailslogger.WARNING
	case "error":
		return wailslogger.ERROR
	default:
		return wailslogger.INFO
	}
}

func (w *WailsLoggerAdapter) Print(message string) {
	w.logger.Info(message)
}

func (w *WailsLoggerAdapter) Trace(message string) {
	w.logger.Debug(message, "level", "trace")
}

func (w *WailsLoggerAdapter) Debug(message string) {
	w.logger.Debug(message)
}

func (w *WailsLoggerAdapter) Info(message string) {
	w.logger.Info(message)
}

func (w *WailsLoggerAdapter) Warning(message string) {
	w.logger.Warn(message)
}

func (w *WailsLoggerAdapter) Error(message string) {
	w.logger.Error(message)
}

// Fatal is logged at ERROR; the shell must not exit on framework complaints.
func (w *WailsLoggerAdapter) Fatal(message string) {
	w.logger.Error(message, "level", "fatal")
}
