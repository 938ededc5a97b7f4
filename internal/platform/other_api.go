//go:build !darwin && !linux && !windows

package platform

// GenericPlatform covers the remaining Unix-likes with Linux conventions
type GenericPlatform struct{}

// Current returns the Platform for the running OS
func Current() Platform {
	return &GenericPlatform{}
}

func (g *GenericPlatform) Name() string { return currentGOOS() }

func (g *GenericPlatform) PersistsWithoutWindows() bool { return false }

func (g *GenericPlatform) SetAppUserModelID(id string) error { return nil }
