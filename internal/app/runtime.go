package app

import (
	"context"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// Runtime is the part of the Wails runtime the host drives
type Runtime interface {
	WindowExecJS(ctx context.Context, js string)
	WindowShow(ctx context.Context)
	WindowMaximise(ctx context.Context)
	WindowUnminimise(ctx context.Context)
	WindowSetTitle(ctx context.Context, title string)
	WindowSetSize(ctx context.Context, width, height int)
	WindowSetBackgroundColour(ctx context.Context, r, g, b, a uint8)
	// Hide and Show act on the application. On macOS a hidden application
	// is shown again when it is activated from the dock.
	Hide(ctx context.Context)
	Show(ctx context.Context)
	BrowserOpenURL(ctx context.Context, url string)
	EventsOn(ctx context.Context, name string, callback func(data ...interface{})) func()
	Quit(ctx context.Context)
}

type wailsRuntime struct{}

// WailsRuntime forwards to github.com/wailsapp/wails/v2/pkg/runtime
var WailsRuntime Runtime = wailsRuntime{}

func (wailsRuntime) WindowExecJS(ctx context.Context, js string) { runtime.WindowExecJS(ctx, js) }
func (wailsRuntime) WindowShow(ctx context.Context)              { runtime.WindowShow(ctx) }
func (wailsRuntime) WindowMaximise(ctx context.Context)          { runtime.WindowMaximise(ctx) }
func (wailsRuntime) WindowUnminimise(ctx context.Context)        { runtime.WindowUnminimise(ctx) }
func (wailsRuntime) Hide(ctx context.Context)                    { runtime.Hide(ctx) }
func (wailsRuntime) Show(ctx context.Context)                    { runtime.Show(ctx) }
func (wailsRuntime) WindowSetTitle(ctx context.Context, title string) {
	runtime.WindowSetTitle(ctx, title)
}
func (wailsRuntime) WindowSetSize(ctx context.Context, width, height int) {
	runtime.WindowSetSize(ctx, width, height)
}
func (wailsRuntime) WindowSetBackgroundColour(ctx context.Context, r, g, b, a uint8) {
	runtime.WindowSetBackgroundColour(ctx, r, g, b, a)
}
func (wailsRuntime) BrowserOpenURL(ctx context.Context, url string) { runtime.BrowserOpenURL(ctx, url) }
func (wailsRuntime) EventsOn(ctx context.Context, name string, callback func(data ...interface{})) func() {
	return runtime.EventsOn(ctx, name, callback)
}
func (wailsRuntime) Quit(ctx context.Context) { runtime.Quit(ctx) }
