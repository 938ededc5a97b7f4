package app

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	goruntime "runtime"
	"strings"
	"sync"
	"text/template"

	"github.com/bytedance/sonic"
	"github.com/go-viper/mapstructure/v2"
	"github.com/google/uuid"
	"github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/menu/keys"
	"github.com/wailsapp/wails/v2/pkg/options"

	"tiktok-desktop/internal/config"
	"tiktok-desktop/internal/contextmenu"
	"tiktok-desktop/internal/infrastructure/errors"
	"tiktok-desktop/internal/infrastructure/logging"
	"tiktok-desktop/internal/probe"
	"tiktok-desktop/internal/shell"
)

// Bridge events sent by the page
const (
	EventWindowOpen = "shell:window-open"
	EventActivate   = "shell:activate"
)

//go:embed assets/bridge.js.tmpl
var assets embed.FS

// App is the Wails host of the shell. Wails owns a single native window;
// App presents it to the shell controller as a window that can be closed
// (hidden) and created again.
type App struct {
	ctx        context.Context
	cfg        *config.Config
	goos       string
	logger     logging.Logger
	runtime    Runtime
	controller *shell.Controller
	bridge     string

	mu            sync.Mutex
	window        *window
	location      string
	menuScript    string
	quitting      bool
	inBeforeClose bool
	unsubscribe   []func()
}

// Option configures an App
type Option func(*appOptions)

type appOptions struct {
	runtime Runtime
	goos    string
	shell   []shell.Option
}

// WithRuntime overrides the Wails runtime
func WithRuntime(rt Runtime) Option {
	return func(o *appOptions) { o.runtime = rt }
}

// WithGOOS overrides the operating system the host behaves as
func WithGOOS(goos string) Option {
	return func(o *appOptions) { o.goos = goos }
}

// WithShellOptions passes options through to the shell controller
func WithShellOptions(opts ...shell.Option) Option {
	return func(o *appOptions) { o.shell = append(o.shell, opts...) }
}

// NewApp creates the host and its shell controller
func NewApp(cfg *config.Config, logger logging.Logger, opts ...Option) (*App, error) {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.HandleValidationError("new_app", "config", cfg.Environment, err.Error())
	}

	o := &appOptions{runtime: WailsRuntime, goos: currentGOOS()}
	for _, opt := range opts {
		opt(o)
	}

	bridge, err := renderBridge(cfg.UserAgent)
	if err != nil {
		return nil, errors.HandleModuleLoadError("new_app", "bridge", err)
	}

	a := &App{
		cfg:      cfg,
		goos:     o.goos,
		logger:   logging.With(logger, "component", "host"),
		runtime:  o.runtime,
		bridge:   bridge,
		location: cfg.SplashPath,
	}

	shellOpts := []shell.Option{
		shell.WithLogger(logger),
		shell.WithReporter(errors.NewLogReporter(logger)),
	}
	if cfg.ProbeEnabled {
		shellOpts = append(shellOpts, shell.WithProber(probe.New(cfg.ProbeTimeout, logger)))
	}
	a.controller = shell.New(cfg, a, append(shellOpts, o.shell...)...)

	return a, nil
}

// Controller returns the shell controller driven by this host
func (a *App) Controller() *shell.Controller {
	return a.controller
}

// Startup is the platform readiness signal
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx

	a.mu.Lock()
	a.unsubscribe = append(a.unsubscribe,
		a.runtime.EventsOn(ctx, EventWindowOpen, a.onWindowOpen),
		a.runtime.EventsOn(ctx, contextmenu.EventRequest, a.onContextMenu),
		a.runtime.EventsOn(ctx, contextmenu.EventAction, a.onMenuAction),
		a.runtime.EventsOn(ctx, EventActivate, a.onActivate),
	)
	a.mu.Unlock()

	a.controller.Ready()
	a.logger.Info("Application started", "environment", a.cfg.Environment)
}

// DomReady injects the page bridge, and the context menu once it is loaded,
// into every document the window shows
func (a *App) DomReady(ctx context.Context) {
	a.mu.Lock()
	menuScript := a.menuScript
	a.mu.Unlock()

	a.runtime.WindowExecJS(ctx, a.bridge)
	if menuScript != "" {
		a.runtime.WindowExecJS(ctx, menuScript)
	}
}

// BeforeClose receives both the close button and quit requests. With the
// window open it is the shell's window-closed signal and returns true to keep
// the process alive with the application hidden. With the window already
// closed, or after Quit, it lets the process end.
func (a *App) BeforeClose(ctx context.Context) (prevent bool) {
	a.mu.Lock()
	if a.quitting {
		a.mu.Unlock()
		return false
	}
	w := a.window
	if w == nil {
		a.quitting = true
		a.mu.Unlock()
		a.logger.Info("Quit requested with no window open")
		return false
	}
	a.window = nil
	a.inBeforeClose = true
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.inBeforeClose = false
		a.mu.Unlock()
	}()

	a.controller.WindowClosed(w.id)
	if a.controller.AllWindowsClosed() {
		return false
	}

	// Hiding the application, not the window, lets a dock click unhide it.
	a.runtime.Hide(ctx)
	return true
}

// Shutdown stops the shell's background work
func (a *App) Shutdown(ctx context.Context) {
	a.mu.Lock()
	for _, off := range a.unsubscribe {
		if off != nil {
			off()
		}
	}
	a.unsubscribe = nil
	a.mu.Unlock()

	a.controller.Shutdown()
	a.logger.Info("Application shutdown completed")
}

// SecondInstance treats another launch of the shell as an activation
func (a *App) SecondInstance(data options.SecondInstanceData) {
	a.logger.Info("Second instance launched", "args", strings.Join(data.Args, " "))
	a.controller.Activate()
}

// CreateWindow resets the native window to spec and hands it out
// under a new id
func (a *App) CreateWindow(spec shell.WindowSpec) (shell.Window, error) {
	if a.ctx == nil {
		return nil, errors.HandleInvalidState("create_window", "not_started", "host runtime is not available yet")
	}

	r, g, b, err := config.ParseHexColour(spec.BackgroundColour)
	if err != nil {
		return nil, errors.HandleValidationError("create_window", "backgroundColour", spec.BackgroundColour, err.Error())
	}

	w := &window{app: a, id: uuid.NewString()}

	a.mu.Lock()
	if a.window != nil {
		a.mu.Unlock()
		return nil, errors.HandleInvalidState("create_window", "window_open", "the host has a single native window")
	}
	a.window = w
	a.mu.Unlock()

	a.runtime.WindowSetTitle(a.ctx, spec.Title)
	a.runtime.WindowSetSize(a.ctx, spec.Width, spec.Height)
	a.runtime.WindowSetBackgroundColour(a.ctx, r, g, b, 255)

	a.logger.Debug("Native window acquired", "window_id", w.id)
	return w, nil
}

// WindowCount is 1 while the native window is visible to the user
func (a *App) WindowCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.window == nil {
		return 0
	}
	return 1
}

// OpenExternal hands url to the system browser unchanged
func (a *App) OpenExternal(url string) error {
	if a.ctx == nil {
		return errors.HandleInvalidState("open_external", "not_started", "host runtime is not available yet")
	}
	a.runtime.BrowserOpenURL(a.ctx, url)
	return nil
}

// InstallContextMenu remembers the renderer for future documents and
// injects it into the current one
func (a *App) InstallContextMenu(script string) error {
	a.mu.Lock()
	a.menuScript = script
	open := a.window != nil
	a.mu.Unlock()

	if a.ctx == nil {
		return errors.HandleInvalidState("install_context_menu", "not_started", "host runtime is not available yet")
	}
	if open {
		a.runtime.WindowExecJS(a.ctx, script)
	}
	return nil
}

// Quit ends the process. Inside BeforeClose the close itself ends it.
func (a *App) Quit() {
	a.mu.Lock()
	a.quitting = true
	inClose := a.inBeforeClose
	a.mu.Unlock()

	if !inClose && a.ctx != nil {
		a.runtime.Quit(a.ctx)
	}
}

// ApplicationMenu is the macOS application menu: Hide, Quit and the
// standard Edit menu that gives the webview its clipboard shortcuts. Other
// platforms get no menu bar.
func (a *App) ApplicationMenu() *menu.Menu {
	if a.goos != "darwin" {
		return nil
	}

	m := menu.NewMenu()
	appMenu := m.AddSubmenu(a.cfg.Title)
	appMenu.AddText("Hide "+a.cfg.Title, keys.CmdOrCtrl("h"), func(*menu.CallbackData) {
		if a.ctx != nil {
			a.runtime.Hide(a.ctx)
		}
	})
	appMenu.AddSeparator()
	appMenu.AddText("Quit "+a.cfg.Title, keys.CmdOrCtrl("q"), func(*menu.CallbackData) {
		a.Quit()
	})
	m.Append(menu.EditMenu())
	return m
}

func (a *App) currentWindow() *window {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.window
}

func (a *App) onWindowOpen(data ...interface{}) {
	url, ok := firstString(data)
	if !ok {
		a.logger.Warn("Malformed window-open event", "data", fmt.Sprint(data...))
		return
	}
	w := a.currentWindow()
	if w == nil {
		return
	}
	if w.requestWindow(url) == shell.Allow {
		a.runtime.WindowExecJS(a.ctx, "window.location.assign("+jsString(url)+")")
	}
}

func (a *App) onContextMenu(data ...interface{}) {
	params, err := DecodeParams(data)
	if err != nil {
		a.logger.Warn("Malformed context-menu event", "error", err)
		return
	}
	payload, ok := a.controller.ContextMenu(params)
	if !ok {
		return
	}
	js, err := ShowScript(payload)
	if err != nil {
		a.logger.Warn("Failed to encode context menu", "error", err)
		return
	}
	a.runtime.WindowExecJS(a.ctx, js)
}

func (a *App) onMenuAction(data ...interface{}) {
	id, ok := firstString(data)
	if !ok {
		a.logger.Warn("Malformed menu-action event", "data", fmt.Sprint(data...))
		return
	}
	a.controller.TriggerMenuItem(id)
}

// onActivate fires when a hidden window becomes visible again, e.g. from
// the dock
func (a *App) onActivate(...interface{}) {
	if a.WindowCount() == 0 {
		a.controller.Activate()
	}
}

// DecodeParams reads the context-menu event payload
func DecodeParams(data []interface{}) (contextmenu.Params, error) {
	var params contextmenu.Params
	if len(data) == 0 {
		return params, fmt.Errorf("missing payload")
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &params,
	})
	if err != nil {
		return params, err
	}
	if err := decoder.Decode(data[0]); err != nil {
		return params, fmt.Errorf("decode context menu params: %w", err)
	}
	return params, nil
}

// ShowScript is the JS that hands payload to the page-side renderer
func ShowScript(payload contextmenu.ShowPayload) (string, error) {
	encoded, err := sonic.Marshal(payload)
	if err != nil {
		return "", err
	}
	hook := "window." + contextmenu.ShowHook
	return hook + " && " + hook + "(" + string(encoded) + ")", nil
}

// assetOrigin is where Wails serves the embedded frontend
func assetOrigin(goos string) string {
	if goos == "windows" {
		return "http://wails.localhost"
	}
	return "wails://wails"
}

// SplashURL is the address of an embedded asset
func SplashURL(goos, path string) string {
	return assetOrigin(goos) + "/" + strings.TrimPrefix(path, "/")
}

func renderBridge(userAgent string) (string, error) {
	tmpl, err := template.ParseFS(assets, "assets/bridge.js.tmpl")
	if err != nil {
		return "", fmt.Errorf("parse bridge: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, map[string]string{
		"UserAgent":        userAgent,
		"EmitHook":         contextmenu.EmitHook,
		"WindowOpenEvent":  EventWindowOpen,
		"ContextMenuEvent": contextmenu.EventRequest,
		"ActivateEvent":    EventActivate,
	})
	if err != nil {
		return "", fmt.Errorf("render bridge: %w", err)
	}
	return buf.String(), nil
}

func firstString(data []interface{}) (string, bool) {
	if len(data) == 0 {
		return "", false
	}
	s, ok := data[0].(string)
	return s, ok
}

func jsString(s string) string {
	encoded, err := sonic.MarshalString(s)
	if err != nil {
		return `""`
	}
	return encoded
}

func currentGOOS() string {
	return goruntime.GOOS
}
