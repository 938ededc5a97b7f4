package shell

import (
	"context"
	"sync"
)

// State of the main window handle
type State int

const (
	NoWindow State = iota
	WindowOpen
)

func (s State) String() string {
	switch s {
	case WindowOpen:
		return "window_open"
	default:
		return "no_window"
	}
}

// Session owns the main window handle. At most one window is held; work
// scheduled for a window is cancelled when that window closes.
type Session struct {
	mu     sync.Mutex
	window Window
	cancel context.CancelFunc
}

// NewSession returns a session with no window
func NewSession() *Session {
	return &Session{}
}

// State reports whether a window is held
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.window == nil {
		return NoWindow
	}
	return WindowOpen
}

// Window returns the held window or nil
func (s *Session) Window() Window {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.window
}

// Open stores w as the main window. cancel is called when the window
// closes or is replaced. Returns false if a window was already held; the
// previous window's work is cancelled in that case too.
func (s *Session) Open(w Window, cancel context.CancelFunc) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := s.window != nil
	if s.cancel != nil {
		s.cancel()
	}
	s.window = w
	s.cancel = cancel
	return !replaced
}

// Close releases the window with id. Closing an unknown id is a no-op.
func (s *Session) Close(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.window == nil || s.window.ID() != id {
		return false
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.window = nil
	s.cancel = nil
	return true
}

// IsCurrent reports whether id is the held window
func (s *Session) IsCurrent(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.window != nil && s.window.ID() == id
}

// Reset releases whatever window is held
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	s.window = nil
	s.cancel = nil
}
