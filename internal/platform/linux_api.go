//go:build linux

package platform

// LinuxPlatform implements Platform for Linux desktops
type LinuxPlatform struct{}

// Current returns the Platform for the running OS
func Current() Platform {
	return &LinuxPlatform{}
}

func (l *LinuxPlatform) Name() string { return currentGOOS() }

func (l *LinuxPlatform) PersistsWithoutWindows() bool { return false }

// SetAppUserModelID is a no-op; desktop files carry the grouping identity
func (l *LinuxPlatform) SetAppUserModelID(id string) error { return nil }
