package logging

import (
	"testing"

	"tiktok-desktop/internal/testutils"

	wailslogger "github.com/wailsapp/wails/v2/pkg/logger"
)

func TestWailsLoggerAdapter_Levels(t *testing.T) {
	rec := testutils.NewRecordingLogger()
	adapter := NewWailsLoggerAdapter(rec)

	adapter.Print("print")
	adapter.Trace("trace")
	adapter.Debug("debug")
	adapter.Info("info")
	adapter.Warning("warning")
	adapter.Error("error")
	adapter.Fatal("fatal")

	if got := len(rec.Calls("INFO")); got != 2 {
		t.Errorf("Expected 2 info calls, got %d", got)
	}
	if got := len(rec.Calls("DEBUG")); got != 2 {
		t.Errorf("Expected 2 debug calls, got %d", got)
	}
	if got := len(rec.Calls("WARN")); got != 1 {
		t.Errorf("Expected 1 warn call, got %d", got)
	}
	if got := len(rec.Calls("ERROR")); got != 2 {
		t.Errorf("Expected fatal to be logged as error, got %d error calls", got)
	}

	for _, call := range rec.Calls("") {
		fields := testutils.FieldsToMap(t, call.Fields)
		if fields["source"] != "wails" {
			t.Errorf("Expected source=wails on %q, got %v", call.Msg, fields["source"])
		}
	}
}

func TestWailsLogLevel(t *testing.T) {
	tests := map[string]wailslogger.LogLevel{
		"trace":   wailslogger.TRACE,
		"debug":   wailslogger.DEBUG,
		"info":    wailslogger.INFO,
		"warning": wailslogger.WARNING,
		"error":   wailslogger.ERROR,
		"":        wailslogger.INFO,
	}
	for in, want := range tests {
		if got := WailsLogLevel(in); got != want {
			t.Errorf("WailsLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
