package errors

import (
	"sync/atomic"

	"tiktok-desktop/internal/infrastructure/logging"
)

// Reporter receives failures the shell absorbs. Reporting never aborts the
// caller: the shell keeps running whatever the reporter does.
type Reporter interface {
	Report(op string, err error)
}

// ReporterFunc adapts a function to Reporter
type ReporterFunc func(op string, err error)

// Report calls f(op, err)
func (f ReporterFunc) Report(op string, err error) {
	f(op, err)
}

// LogReporter reports failures to the structured logger
type LogReporter struct {
	logger   logging.Logger
	reported atomic.Int64
}

// NewLogReporter creates a reporter writing to logger
func NewLogReporter(logger logging.Logger) *LogReporter {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &LogReporter{logger: logger}
}

// Report logs err with its classification. Nil errors are ignored.
func (r *LogReporter) Report(op string, err error) {
	if err == nil {
		return
	}
	r.reported.Add(1)
	logging.LogShellError(r.logger, err, op, map[string]interface{}{
		"classified_as": ClassifyError(err).String(),
	})
}

// Reported returns how many failures went through this reporter
func (r *LogReporter) Reported() int64 {
	return r.reported.Load()
}

// Discard is a Reporter that drops everything
var Discard Reporter = ReporterFunc(func(string, error) {})
