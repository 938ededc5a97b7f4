package app

import (
	"sync"

	"tiktok-desktop/internal/infrastructure/errors"
	"tiktok-desktop/internal/shell"
)

// window is one lifetime of the native window, from CreateWindow until the
// user closes it
type window struct {
	app *App
	id  string

	mu      sync.Mutex
	handler shell.WindowOpenHandler
	menuBar bool
}

func (w *window) ID() string { return w.id }

func (w *window) live() bool {
	return w.app.currentWindow() == w
}

// LoadFile shows an embedded asset. The native window starts on the splash,
// so the first load is already in place.
func (w *window) LoadFile(path string) error {
	if !w.live() {
		return errors.HandleInvalidState("load_file", "closed", "window "+w.id+" is closed")
	}

	a := w.app
	a.mu.Lock()
	already := a.location == path
	a.location = path
	a.mu.Unlock()

	if already {
		return nil
	}
	a.runtime.WindowExecJS(a.ctx, "window.location.replace("+jsString(SplashURL(a.goos, path))+")")
	return nil
}

// LoadURL navigates to url. The webview's request identity cannot be set
// per navigation: WebView2 gets it at start-up from ConfigureWebview and
// elsewhere only the bridge presents userAgent to page scripts.
func (w *window) LoadURL(url, userAgent string) error {
	if !w.live() {
		return errors.HandleInvalidState("load_url", "closed", "window "+w.id+" is closed")
	}
	a := w.app
	a.logger.Debug("Loading remote URL", "window_id", w.id, "url", url, "user_agent", userAgent)
	a.mu.Lock()
	a.location = url
	a.mu.Unlock()

	a.runtime.WindowExecJS(a.ctx, "window.location.assign("+jsString(url)+")")
	return nil
}

func (w *window) Maximise() {
	w.app.runtime.WindowMaximise(w.app.ctx)
}

// SetMenuBarVisible records the menu bar state. Windows and Linux builds
// have no menu bar to toggle; the macOS application menu is not a window
// menu and stays.
func (w *window) SetMenuBarVisible(visible bool) {
	w.mu.Lock()
	w.menuBar = visible
	w.mu.Unlock()
}

// MenuBarVisible reports the recorded menu bar state
func (w *window) MenuBarVisible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.menuBar
}

func (w *window) RemoveMenu() {
	w.SetMenuBarVisible(false)
}

func (w *window) Show() {
	w.app.runtime.Show(w.app.ctx)
	w.app.runtime.WindowShow(w.app.ctx)
}

func (w *window) Focus() {
	w.app.runtime.WindowUnminimise(w.app.ctx)
	w.app.runtime.WindowShow(w.app.ctx)
}

func (w *window) SetWindowOpenHandler(handler shell.WindowOpenHandler) {
	w.mu.Lock()
	w.handler = handler
	w.mu.Unlock()
}

// requestWindow applies the handler; without one the request is denied
func (w *window) requestWindow(url string) shell.WindowOpenAction {
	w.mu.Lock()
	h := w.handler
	w.mu.Unlock()
	if h == nil {
		return shell.Deny
	}
	return h(url)
}
