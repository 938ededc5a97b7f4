// Package shell drives the desktop shell's lifecycle: it creates the main
// window on readiness, shows the splash, navigates to the remote site after
// a delay, routes new-window requests to the system browser and applies the
// platform's quit policy.
package shell

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"tiktok-desktop/internal/config"
	"tiktok-desktop/internal/contextmenu"
	"tiktok-desktop/internal/infrastructure/errors"
	"tiktok-desktop/internal/infrastructure/logging"
	"tiktok-desktop/internal/platform"
)

// MenuLoader loads the context-menu module
type MenuLoader func(ctx context.Context, opts contextmenu.Options, theme contextmenu.Theme) (*contextmenu.Module, error)

// Controller is the shell's lifecycle owner
type Controller struct {
	cfg      *config.Config
	host     Host
	platform platform.Platform
	clock    Clock
	logger   logging.Logger
	reporter errors.Reporter
	prober   Prober
	loadMenu MenuLoader

	session *Session
	menu    atomic.Pointer[contextmenu.Module]

	mu         sync.Mutex
	ready      bool
	lastParams contextmenu.Params

	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group
}

// Option configures a Controller
type Option func(*Controller)

// WithPlatform overrides the detected platform
func WithPlatform(p platform.Platform) Option {
	return func(c *Controller) { c.platform = p }
}

// WithClock overrides the wall clock
func WithClock(clock Clock) Option {
	return func(c *Controller) { c.clock = clock }
}

// WithLogger sets the logger
func WithLogger(logger logging.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithReporter sets where absorbed failures go
func WithReporter(r errors.Reporter) Option {
	return func(c *Controller) { c.reporter = r }
}

// WithProber enables the reachability probe
func WithProber(p Prober) Option {
	return func(c *Controller) { c.prober = p }
}

// WithMenuLoader overrides how the context-menu module is loaded
func WithMenuLoader(l MenuLoader) Option {
	return func(c *Controller) { c.loadMenu = l }
}

// New creates a controller for host
func New(cfg *config.Config, host Host, opts ...Option) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	group, gctx := errgroup.WithContext(ctx)

	c := &Controller{
		cfg:      cfg,
		host:     host,
		platform: platform.Current(),
		clock:    SystemClock,
		loadMenu: contextmenu.Load,
		session:  NewSession(),
		ctx:      gctx,
		cancel:   cancel,
		group:    group,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = logging.NewDefaultLogger()
	}
	c.logger = logging.With(c.logger, "component", "shell")
	if c.reporter == nil {
		c.reporter = errors.NewLogReporter(c.logger)
	}
	return c
}

// Session returns the controller's window session
func (c *Controller) Session() *Session {
	return c.session
}

// Ready handles the platform readiness signal. Only the first call has an
// effect.
func (c *Controller) Ready() {
	c.mu.Lock()
	if c.ready {
		c.mu.Unlock()
		c.logger.Debug("Ignoring repeated readiness signal")
		return
	}
	c.ready = true
	c.mu.Unlock()

	start := time.Now()

	if err := c.platform.SetAppUserModelID(c.cfg.AppID); err != nil {
		c.reporter.Report("set_app_id", errors.WrapWithContext("set_app_id", err, map[string]string{
			"app_id": c.cfg.AppID,
		}))
	}

	c.createWindow()

	c.group.Go(func() error {
		c.LoadContextMenu(c.ctx)
		return nil
	})
	if c.prober != nil && c.cfg.ProbeEnabled {
		c.group.Go(func() error {
			c.probe(c.ctx)
			return nil
		})
	}

	logging.LogShellOperation(c.logger, "startup", time.Since(start), map[string]interface{}{
		"platform": c.platform.Name(),
	})
}

// Activate handles the platform activate signal: with zero windows the
// main window is created again, otherwise the existing one is focused.
func (c *Controller) Activate() {
	c.mu.Lock()
	ready := c.ready
	c.mu.Unlock()
	if !ready {
		c.logger.Debug("Ignoring activate before readiness")
		return
	}

	if c.host.WindowCount() == 0 {
		c.logger.Info("Activated with no windows, recreating main window")
		c.createWindow()
		return
	}
	if w := c.session.Window(); w != nil {
		w.Focus()
	}
}

// WindowClosed releases the window with id. Deferred navigation for that
// window will not run.
func (c *Controller) WindowClosed(id string) {
	if c.session.Close(id) {
		c.logger.Info("Main window closed", "window_id", id)
	}
}

// AllWindowsClosed applies the quit policy. It returns true when the shell
// is quitting.
func (c *Controller) AllWindowsClosed() bool {
	if c.platform.PersistsWithoutWindows() {
		c.logger.Info("All windows closed, staying resident", "platform", c.platform.Name())
		return false
	}
	c.logger.Info("All windows closed, quitting", "platform", c.platform.Name())
	c.host.Quit()
	return true
}

// HandleWindowOpen routes a new-window request to the system browser. The
// request is always denied in-app.
func (c *Controller) HandleWindowOpen(url string) WindowOpenAction {
	c.openExternal(url)
	return Deny
}

func (c *Controller) openExternal(url string) {
	c.logger.Debug("Opening externally", "url", url)
	if err := c.host.OpenExternal(url); err != nil {
		c.reporter.Report("open_external", errors.HandleExternalOpenError("open_external", url, err))
	}
}

func (c *Controller) spec() WindowSpec {
	return WindowSpec{
		Width:            c.cfg.Width,
		Height:           c.cfg.Height,
		Title:            c.cfg.Title,
		BackgroundColour: c.cfg.BackgroundColour,
	}
}

func (c *Controller) createWindow() {
	w, err := c.host.CreateWindow(c.spec())
	if err != nil {
		c.reporter.Report("create_window", errors.Wrap("create_window", err))
		return
	}

	id := w.ID()
	ctx, cancel := context.WithCancel(c.ctx)
	if !c.session.Open(w, cancel) {
		c.logger.Warn("Replaced an existing main window", "window_id", id)
	}
	log := logging.With(c.logger, "window_id", id)

	w.SetWindowOpenHandler(c.HandleWindowOpen)

	if err := w.LoadFile(c.cfg.SplashPath); err != nil {
		c.reporter.Report("load_splash", errors.NewShellErrorWithContext("load_splash", err, errors.ErrCodeResourceLoad, map[string]string{
			"path":      c.cfg.SplashPath,
			"window_id": id,
		}))
	}

	timer := c.clock.AfterFunc(c.cfg.NavigationDelay, func() {
		if ctx.Err() != nil || !c.session.IsCurrent(id) {
			return
		}
		log.Info("Navigating to remote site", "url", c.cfg.RemoteURL)
		if err := w.LoadURL(c.cfg.RemoteURL, c.cfg.UserAgent); err != nil {
			c.reporter.Report("navigate", errors.HandleNavigationError("navigate", c.cfg.RemoteURL, err))
		}
	})
	context.AfterFunc(ctx, func() {
		if timer.Stop() {
			log.Debug("Cancelled pending navigation")
		}
	})

	if c.cfg.StartMaximised {
		w.Maximise()
	}
	if c.cfg.HideMenu {
		w.SetMenuBarVisible(false)
		w.RemoveMenu()
	}
	w.Show()

	log.Info("Main window created", "width", c.cfg.Width, "height", c.cfg.Height)
}

// LoadContextMenu loads the context-menu module and installs it. Failures
// are reported and leave the page without a context menu.
func (c *Controller) LoadContextMenu(ctx context.Context) {
	mod, err := c.loadMenu(ctx, contextmenu.Options{
		Prepend:      contextmenu.SearchEntry(c.cfg.SearchURL, c.openExternal),
		ShowDefaults: true,
	}, contextmenu.DefaultTheme())
	if err != nil {
		c.reporter.Report("load_context_menu", errors.HandleModuleLoadError("load_context_menu", "contextmenu", err))
		return
	}

	c.menu.Store(mod)
	if err := c.host.InstallContextMenu(mod.Script); err != nil {
		c.reporter.Report("install_context_menu", errors.HandleModuleLoadError("install_context_menu", "contextmenu", err))
		return
	}
	c.logger.Debug("Context menu installed")
}

// ContextMenu builds the menu for a right-click. ok is false when the
// module is not loaded yet or nothing is visible.
func (c *Controller) ContextMenu(params contextmenu.Params) (payload contextmenu.ShowPayload, ok bool) {
	mod := c.menu.Load()
	if mod == nil {
		return contextmenu.ShowPayload{}, false
	}

	c.mu.Lock()
	c.lastParams = params
	c.mu.Unlock()

	payload = mod.Payload(params)
	return payload, len(payload.Items) > 0
}

// TriggerMenuItem runs the Go-side action of the item with id from the
// most recent menu
func (c *Controller) TriggerMenuItem(id string) {
	mod := c.menu.Load()
	if mod == nil {
		return
	}

	c.mu.Lock()
	params := c.lastParams
	c.mu.Unlock()

	item, ok := mod.Find(params, id)
	if !ok || item.Click == nil {
		c.logger.Debug("Ignoring menu action", "item_id", id)
		return
	}
	item.Click()
}

func (c *Controller) probe(ctx context.Context) {
	start := time.Now()
	if err := c.prober.Probe(ctx, c.cfg.RemoteURL, c.cfg.UserAgent); err != nil {
		c.reporter.Report("probe", err)
		return
	}
	logging.LogShellOperation(c.logger, "probe", time.Since(start), map[string]interface{}{
		"url": c.cfg.RemoteURL,
	})
}

// Shutdown cancels background work and pending navigation, then waits for
// background tasks to return
func (c *Controller) Shutdown() {
	c.cancel()
	c.session.Reset()
	if err := c.group.Wait(); err != nil {
		c.logger.Warn("Background task ended with error", "error", err)
	}
	c.logger.Info("Shell stopped")
}
