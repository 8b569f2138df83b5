package window

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"github.com/Faultbox/facet/internal/engine/input"
	"github.com/Faultbox/facet/internal/logger"
)

// GLFWWindow wraps a GLFW window and its OpenGL context.
type GLFWWindow struct {
	config Config
	window *glfw.Window
	input  *input.State
}

// NewGLFW creates a GLFW window with an OpenGL 4.1 core context.
func NewGLFW(cfg Config) (*GLFWWindow, error) {
	logger.Info("initializing GLFW")
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	var monitor *glfw.Monitor
	if cfg.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}
	win.MakeContextCurrent()

	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	if cfg.CaptureMouse {
		win.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	}

	w := &GLFWWindow{
		config: cfg,
		window: win,
		input:  input.NewState(),
	}

	// Callbacks fire inside glfw.PollEvents, after BeginFrame.
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		k := glfwKey(key)
		switch action {
		case glfw.Press, glfw.Repeat:
			if k == input.KeyEscape && action == glfw.Press {
				win.SetShouldClose(true)
			}
			w.input.Dispatch(input.Event{Type: input.EventKeyDown, Key: k})
		case glfw.Release:
			w.input.Dispatch(input.Event{Type: input.EventKeyUp, Key: k})
		}
	})

	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		w.input.Dispatch(input.Event{Type: input.EventMouseMove, MouseX: xpos, MouseY: ypos})
	})

	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		x, y := win.GetCursorPos()
		typ := input.EventMouseUp
		if action == glfw.Press {
			typ = input.EventMouseDown
		}
		w.input.Dispatch(input.Event{Type: typ, MouseX: x, MouseY: y, Button: uint8(button) + 1})
	})

	// Framebuffer size is in pixels; it differs from the window size on
	// high-DPI displays.
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.input.Dispatch(input.Event{Type: input.EventWindowResize, Width: width, Height: height})
	})

	win.SetCloseCallback(func(_ *glfw.Window) {
		w.input.Dispatch(input.Event{Type: input.EventQuit})
	})

	width, height := w.Size()
	logger.Info("window created",
		zap.String("backend", "glfw"),
		zap.String("title", cfg.Title),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)

	return w, nil
}

// ShouldClose reports whether GLFW flagged the window for closing.
func (w *GLFWWindow) ShouldClose() bool {
	return w.window.ShouldClose() || w.input.QuitRequested()
}

// SwapBuffers presents the back buffer.
func (w *GLFWWindow) SwapBuffers() {
	w.window.SwapBuffers()
}

// PollEvents processes pending events without blocking.
func (w *GLFWWindow) PollEvents() {
	w.input.BeginFrame()
	glfw.PollEvents()
}

// Size returns the framebuffer size in pixels.
func (w *GLFWWindow) Size() (int, int) {
	return w.window.GetFramebufferSize()
}

// SetTitle sets the window title.
func (w *GLFWWindow) SetTitle(title string) {
	w.window.SetTitle(title)
}

// Input returns the input state.
func (w *GLFWWindow) Input() *input.State {
	return w.input
}

// Close destroys the window and terminates GLFW.
func (w *GLFWWindow) Close() {
	logger.Info("closing window", zap.String("backend", "glfw"))
	w.window.Destroy()
	glfw.Terminate()
}

func glfwKey(k glfw.Key) input.Key {
	switch k {
	case glfw.KeyW:
		return input.KeyW
	case glfw.KeyA:
		return input.KeyA
	case glfw.KeyS:
		return input.KeyS
	case glfw.KeyD:
		return input.KeyD
	case glfw.KeyQ:
		return input.KeyQ
	case glfw.KeyE:
		return input.KeyE
	case glfw.KeyR:
		return input.KeyR
	case glfw.KeySpace:
		return input.KeySpace
	case glfw.KeyLeftShift:
		return input.KeyLeftShift
	case glfw.KeyLeftControl:
		return input.KeyLeftCtrl
	case glfw.KeyEscape:
		return input.KeyEscape
	case glfw.KeyF12:
		return input.KeyF12
	case glfw.KeyTab:
		return input.KeyTab
	default:
		return input.KeyUnknown
	}
}
