package shell

import (
	"context"
	"time"
)

// WindowSpec is the creation surface of the main window
type WindowSpec struct {
	Width            int
	Height           int
	Title            string
	BackgroundColour string
}

// WindowOpenAction tells the window what to do with a new-window request
type WindowOpenAction int

const (
	// Deny keeps the request out of the app
	Deny WindowOpenAction = iota
	// Allow lets the host open an in-app window
	Allow
)

func (a WindowOpenAction) String() string {
	if a == Allow {
		return "allow"
	}
	return "deny"
}

// WindowOpenHandler decides the fate of a new-window request for url
type WindowOpenHandler func(url string) WindowOpenAction

// Window is one top-level host window
type Window interface {
	ID() string
	LoadFile(path string) error
	LoadURL(url, userAgent string) error
	Maximise()
	SetMenuBarVisible(visible bool)
	RemoveMenu()
	Show()
	Focus()
	SetWindowOpenHandler(handler WindowOpenHandler)
}

// Host is the desktop framework the shell runs in
type Host interface {
	CreateWindow(spec WindowSpec) (Window, error)
	WindowCount() int
	OpenExternal(url string) error
	// InstallContextMenu injects the page-side menu renderer into current
	// and future documents
	InstallContextMenu(script string) error
	Quit()
}

// Prober checks the remote site is reachable as the shell's user agent
type Prober interface {
	Probe(ctx context.Context, url, userAgent string) error
}

// Clock schedules deferred work
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending AfterFunc call
type Timer interface {
	Stop() bool
}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemClock is the wall clock
var SystemClock Clock = systemClock{}
