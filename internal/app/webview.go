package app

import (
	"os"
	"strings"
)

// WebviewArgumentsEnv holds extra browser arguments WebView2 reads when the
// webview starts
const WebviewArgumentsEnv = "WEBVIEW2_ADDITIONAL_BROWSER_ARGUMENTS"

// WebviewArguments appends the user agent switch to existing. Only WebView2
// takes browser arguments, so ok is false on other platforms.
func WebviewArguments(goos, userAgent, existing string) (args string, ok bool) {
	if goos != "windows" {
		return existing, false
	}
	arg := `--user-agent="` + userAgent + `"`
	return strings.TrimSpace(existing + " " + arg), true
}

// ConfigureWebview makes the webview send userAgent on every request where
// the platform allows it. It must run before wails.Run.
func ConfigureWebview(goos, userAgent string) error {
	args, ok := WebviewArguments(goos, userAgent, os.Getenv(WebviewArgumentsEnv))
	if !ok {
		return nil
	}
	return os.Setenv(WebviewArgumentsEnv, args)
}
