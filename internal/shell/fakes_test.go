package shell

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

type fakeTimer struct {
	clock   *fakeClock
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// fakeClock fires timers synchronously from Advance
type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.at <= c.now {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	sort.Slice(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.f()
	}
}

type fakeWindow struct {
	mu          sync.Mutex
	id          string
	spec        WindowSpec
	content     string
	userAgent   string
	loads       []string
	maximised   bool
	menuBar     bool
	menuRemoved bool
	shown       bool
	focused     int
	openHandler WindowOpenHandler
	loadURLErr  error
	loadFileErr error
}

func (w *fakeWindow) ID() string { return w.id }

func (w *fakeWindow) LoadFile(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.loads = append(w.loads, "file:"+path)
	if w.loadFileErr != nil {
		return w.loadFileErr
	}
	w.content = "file:" + path
	return nil
}

func (w *fakeWindow) LoadURL(url, userAgent string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.loads = append(w.loads, url)
	if w.loadURLErr != nil {
		return w.loadURLErr
	}
	w.content = url
	w.userAgent = userAgent
	return nil
}

func (w *fakeWindow) Maximise()                { w.mu.Lock(); w.maximised = true; w.mu.Unlock() }
func (w *fakeWindow) SetMenuBarVisible(v bool) { w.mu.Lock(); w.menuBar = v; w.mu.Unlock() }
func (w *fakeWindow) RemoveMenu()              { w.mu.Lock(); w.menuRemoved = true; w.mu.Unlock() }
func (w *fakeWindow) Show()                    { w.mu.Lock(); w.shown = true; w.mu.Unlock() }
func (w *fakeWindow) Focus()                   { w.mu.Lock(); w.focused++; w.mu.Unlock() }
func (w *fakeWindow) SetWindowOpenHandler(h WindowOpenHandler) {
	w.mu.Lock()
	w.openHandler = h
	w.mu.Unlock()
}

func (w *fakeWindow) Content() (string, string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.content, w.userAgent
}

// requestWindow simulates the page asking for a new window
func (w *fakeWindow) requestWindow(url string) WindowOpenAction {
	w.mu.Lock()
	h := w.openHandler
	w.mu.Unlock()
	if h == nil {
		return Allow
	}
	return h(url)
}

type fakeHost struct {
	mu         sync.Mutex
	windows    []*fakeWindow
	open       map[string]bool
	opened     []string
	scripts    []string
	quits      int
	createErr  error
	openErr    error
	installErr error
	newWindow  func(w *fakeWindow)
}

func newFakeHost() *fakeHost {
	return &fakeHost{open: map[string]bool{}}
}

func (h *fakeHost) CreateWindow(spec WindowSpec) (Window, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.createErr != nil {
		return nil, h.createErr
	}
	w := &fakeWindow{id: fmt.Sprintf("w%d", len(h.windows)+1), spec: spec, menuBar: true}
	if h.newWindow != nil {
		h.newWindow(w)
	}
	h.windows = append(h.windows, w)
	h.open[w.id] = true
	return w, nil
}

func (h *fakeHost) WindowCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.open)
}

func (h *fakeHost) OpenExternal(url string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.opened = append(h.opened, url)
	return h.openErr
}

func (h *fakeHost) InstallContextMenu(script string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.scripts = append(h.scripts, script)
	return h.installErr
}

func (h *fakeHost) Quit() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.quits++
}

// closeWindow simulates the user closing w
func (h *fakeHost) closeWindow(w *fakeWindow) {
	h.mu.Lock()
	delete(h.open, w.id)
	h.mu.Unlock()
}

func (h *fakeHost) Windows() []*fakeWindow {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*fakeWindow(nil), h.windows...)
}

func (h *fakeHost) Opened() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.opened...)
}

type fakeProber struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (p *fakeProber) Probe(ctx context.Context, url, userAgent string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, url+"|"+userAgent)
	return p.err
}
