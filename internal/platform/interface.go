package platform

import "runtime"

// Platform exposes the OS conventions the shell's lifecycle depends on
type Platform interface {
	// Name is the GOOS value the implementation was built for
	Name() string
	// PersistsWithoutWindows reports whether applications conventionally keep
	// running after their last window closes (the macOS dock convention)
	PersistsWithoutWindows() bool
	// SetAppUserModelID sets the identity the OS shell uses to group
	// windows and notifications. A no-op where the OS has no such concept.
	SetAppUserModelID(id string) error
}

// PersistsWithoutWindows reports the persistence convention for goos
func PersistsWithoutWindows(goos string) bool {
	return goos == "darwin"
}

// Static is a Platform with fixed answers, for tests and headless runs
type Static struct {
	OS      string
	Persist bool
	AppID   string
	SetErr  error
}

// NewStatic creates a Static platform following goos's conventions
func NewStatic(goos string) *Static {
	return &Static{OS: goos, Persist: PersistsWithoutWindows(goos)}
}

func (s *Static) Name() string                 { return s.OS }
func (s *Static) PersistsWithoutWindows() bool { return s.Persist }

func (s *Static) SetAppUserModelID(id string) error {
	if s.SetErr != nil {
		return s.SetErr
	}
	s.AppID = id
	return nil
}

var _ Platform = (*Static)(nil)

func currentGOOS() string {
	return runtime.GOOS
}
