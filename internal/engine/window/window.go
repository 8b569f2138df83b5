// Package window creates the OS window and GL context and drives the frame
// boundary. Two backends are available: SDL2 (default) and GLFW.
package window

import (
	"fmt"
	"runtime"

	"github.com/Faultbox/facet/internal/config"
	"github.com/Faultbox/facet/internal/engine/input"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	// CaptureMouse hides the cursor and reports unbounded relative motion.
	CaptureMouse bool
}

// FromConfig converts the window section of the app config.
func FromConfig(cfg config.WindowConfig) Config {
	return Config{
		Title:        cfg.Title,
		Width:        cfg.Width,
		Height:       cfg.Height,
		Fullscreen:   cfg.Fullscreen,
		VSync:        cfg.VSync,
		CaptureMouse: true,
	}
}

// Surface is a drawable window with a frame boundary.
type Surface interface {
	// ShouldClose reports whether the user asked to close the window.
	ShouldClose() bool
	// SwapBuffers presents the frame.
	SwapBuffers()
	// PollEvents starts a new input frame and drains pending OS events.
	PollEvents()
	// Size returns the drawable size in pixels.
	Size() (width, height int)
	// SetTitle sets the window title.
	SetTitle(title string)
	// Input returns the input state fed by PollEvents.
	Input() *input.State
	// Close destroys the window.
	Close()
}

// Open creates a window with the named backend.
func Open(backend string, cfg Config) (Surface, error) {
	switch backend {
	case config.BackendSDL, "":
		return NewSDL(cfg)
	case config.BackendGLFW:
		return NewGLFW(cfg)
	default:
		return nil, fmt.Errorf("unknown window backend %q", backend)
	}
}
