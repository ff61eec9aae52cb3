package sdlx

import (
	"fmt"
	"sync"

	"github.com/veandco/go-sdl2/sdl"
)

// Default dimensions for a windowed desktop window.
const (
	defaultWindowWidth  = 640
	defaultWindowHeight = 480
)

// Window owns an SDL window handle.
type Window struct {
	win  *sdl.Window
	fini sync.Once
}

// NewWindow creates a window with explicit geometry and flags.
func NewWindow(title string, x, y, w, h int32, flags uint32) (*Window, error) {
	win, err := sdl.CreateWindow(title, x, y, w, h, flags)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	return &Window{win: win}, nil
}

// NewDesktopWindow creates a window with standard parameters: 640x480
// resizable, or borderless fullscreen at the desktop resolution.
func NewDesktopWindow(title string, fullScreen bool) (*Window, error) {
	flags := uint32(sdl.WINDOW_SHOWN)
	if fullScreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	} else {
		flags |= sdl.WINDOW_RESIZABLE
	}
	return NewWindow(title,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		defaultWindowWidth, defaultWindowHeight, flags)
}

// Close destroys the window. Idempotent.
func (w *Window) Close() {
	w.fini.Do(func() { _ = w.win.Destroy() })
}

// SDL exposes the underlying window handle.
func (w *Window) SDL() *sdl.Window {
	return w.win
}

// Size returns the window dimensions in pixels.
func (w *Window) Size() (int32, int32) {
	return w.win.GetSize()
}
