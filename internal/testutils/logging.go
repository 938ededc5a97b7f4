package testutils

import (
	"strings"
	"sync"
)

// TestingT is the part of testing.T the helpers need
type TestingT interface {
	Errorf(format string, args ...any)
}

// FieldsToMap converts alternating key/value log fields to a map, reporting
// malformed entries through t instead of panicking.
func FieldsToMap(t TestingT, fields []any) map[string]any {
	fieldsMap := make(map[string]any)

	for i := 0; i < len(fields); i += 2 {
		if i+1 >= len(fields) {
			t.Errorf("Malformed fields slice: missing value for key at index %d", i)
			continue
		}

		key, ok := fields[i].(string)
		if !ok {
			t.Errorf("Malformed fields slice: key at index %d is not a string, got %T", i, fields[i])
			continue
		}

		fieldsMap[key] = fields[i+1]
	}

	return fieldsMap
}

// LogCall is one recorded log entry
type LogCall struct {
	Level  string
	Msg    string
	Fields []any
}

// RecordingLogger records every entry; safe for concurrent use.
// It satisfies logging.Logger.
type RecordingLogger struct {
	mu    sync.Mutex
	calls []LogCall
}

// NewRecordingLogger creates an empty recorder
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{}
}

func (r *RecordingLogger) record(level, msg string, fields []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, LogCall{Level: level, Msg: msg, Fields: fields})
}

func (r *RecordingLogger) Debug(msg string, fields ...any) { r.record("DEBUG", msg, fields) }
func (r *RecordingLogger) Info(msg string, fields ...any)  { r.record("INFO", msg, fields) }
func (r *RecordingLogger) Warn(msg string, fields ...any)  { r.record("WARN", msg, fields) }
func (r *RecordingLogger) Error(msg string, fields ...any) { r.record("ERROR", msg, fields) }

// Calls returns a copy of the entries recorded at level, or all entries
// when level is empty.
func (r *RecordingLogger) Calls(level string) []LogCall {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]LogCall, 0, len(r.calls))
	for _, c := range r.calls {
		if level == "" || c.Level == level {
			out = append(out, c)
		}
	}
	return out
}

// Contains reports whether any entry at level has a message containing substr
func (r *RecordingLogger) Contains(level, substr string) bool {
	for _, c := range r.Calls(level) {
		if strings.Contains(c.Msg, substr) {
			return true
		}
	}
	return false
}
