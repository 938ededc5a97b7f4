//go:build windows

package platform

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	shell32                                     = windows.NewLazySystemDLL("shell32.dll")
	procSetCurrentProcessExplicitAppUserModelID = shell32.NewProc("SetCurrentProcessExplicitAppUserModelID")
)

// WindowsPlatform implements Platform for Windows
type WindowsPlatform struct{}

// Current returns the Platform for the running OS
func Current() Platform {
	return &WindowsPlatform{}
}

func (w *WindowsPlatform) Name() string { return currentGOOS() }

func (w *WindowsPlatform) PersistsWithoutWindows() bool { return false }

// SetAppUserModelID groups the shell's taskbar button and toasts under id
func (w *WindowsPlatform) SetAppUserModelID(id string) error {
	if err := procSetCurrentProcessExplicitAppUserModelID.Find(); err != nil {
		return fmt.Errorf("SetCurrentProcessExplicitAppUserModelID unavailable: %w", err)
	}

	ptr, err := windows.UTF16PtrFromString(id)
	if err != nil {
		return fmt.Errorf("invalid app user model id %q: %w", id, err)
	}

	hr, _, _ := procSetCurrentProcessExplicitAppUserModelID.Call(uintptr(unsafe.Pointer(ptr)))
	if hr != 0 {
		return fmt.Errorf("SetCurrentProcessExplicitAppUserModelID failed: HRESULT 0x%08x", uint32(hr))
	}
	return nil
}
