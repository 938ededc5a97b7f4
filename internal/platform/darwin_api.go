//go:build darwin

package platform

// DarwinPlatform implements Platform for macOS, where applications stay
// alive in the dock with no windows open.
type DarwinPlatform struct{}

// Current returns the Platform for the running OS
func Current() Platform {
	return &DarwinPlatform{}
}

func (d *DarwinPlatform) Name() string { return currentGOOS() }

func (d *DarwinPlatform) PersistsWithoutWindows() bool { return true }

// SetAppUserModelID is a no-op; macOS derives identity from the bundle id
func (d *DarwinPlatform) SetAppUserModelID(id string) error { return nil }
