package window

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/facet/internal/engine/input"
	"github.com/Faultbox/facet/internal/logger"
)

// SDLWindow wraps an SDL2 window and OpenGL context.
type SDLWindow struct {
	config    Config
	sdlWindow *sdl.Window
	glContext sdl.GLContext
	input     *input.State
	closing   bool

	// Virtual cursor, integrated from relative motion.
	mouseX, mouseY float64
}

// NewSDL creates a new SDL2 window with an OpenGL 4.1 core context.
func NewSDL(cfg Config) (*SDLWindow, error) {
	w := &SDLWindow{
		config: cfg,
		input:  input.NewState(),
	}

	logger.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// OpenGL 4.1 Core Profile is the newest macOS supports.
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	w.glContext, err = w.sdlWindow.GLCreateContext()
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	if cfg.VSync {
		if err := sdl.GLSetSwapInterval(1); err != nil {
			logger.Warn("failed to enable VSync", zap.Error(err))
		}
	} else {
		sdl.GLSetSwapInterval(0)
	}

	if cfg.CaptureMouse {
		sdl.SetRelativeMouseMode(true)
	}

	logger.Info("window created",
		zap.String("backend", "sdl"),
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)

	return w, nil
}

// ShouldClose reports whether a quit event or Escape was seen.
func (w *SDLWindow) ShouldClose() bool {
	return w.closing || w.input.QuitRequested()
}

// SwapBuffers swaps the OpenGL buffers.
func (w *SDLWindow) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// PollEvents drains SDL events into the input state.
func (w *SDLWindow) PollEvents() {
	w.input.BeginFrame()

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			w.input.Dispatch(input.Event{Type: input.EventQuit})

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				width, height := w.Size()
				w.input.Dispatch(input.Event{
					Type:   input.EventWindowResize,
					Width:  width,
					Height: height,
				})
			}

		case *sdl.KeyboardEvent:
			key := sdlKey(e.Keysym.Scancode)
			switch e.Type {
			case sdl.KEYDOWN:
				if key == input.KeyEscape {
					w.closing = true
				}
				w.input.Dispatch(input.Event{Type: input.EventKeyDown, Key: key})
			case sdl.KEYUP:
				w.input.Dispatch(input.Event{Type: input.EventKeyUp, Key: key})
			}

		case *sdl.MouseMotionEvent:
			w.mouseX += float64(e.XRel)
			w.mouseY += float64(e.YRel)
			w.input.Dispatch(input.Event{
				Type:   input.EventMouseMove,
				MouseX: w.mouseX,
				MouseY: w.mouseY,
			})

		case *sdl.MouseButtonEvent:
			typ := input.EventMouseUp
			if e.Type == sdl.MOUSEBUTTONDOWN {
				typ = input.EventMouseDown
			}
			w.input.Dispatch(input.Event{
				Type:   typ,
				MouseX: float64(e.X),
				MouseY: float64(e.Y),
				Button: e.Button,
			})
		}
	}
}

// Size returns the drawable size in pixels.
func (w *SDLWindow) Size() (int, int) {
	width, height := w.sdlWindow.GLGetDrawableSize()
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *SDLWindow) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}

// Input returns the input state.
func (w *SDLWindow) Input() *input.State {
	return w.input
}

// Close destroys the window and cleans up SDL2.
func (w *SDLWindow) Close() {
	logger.Info("closing window", zap.String("backend", "sdl"))

	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}

	sdl.Quit()
}

func sdlKey(sc sdl.Scancode) input.Key {
	switch sc {
	case sdl.SCANCODE_W:
		return input.KeyW
	case sdl.SCANCODE_A:
		return input.KeyA
	case sdl.SCANCODE_S:
		return input.KeyS
	case sdl.SCANCODE_D:
		return input.KeyD
	case sdl.SCANCODE_Q:
		return input.KeyQ
	case sdl.SCANCODE_E:
		return input.KeyE
	case sdl.SCANCODE_R:
		return input.KeyR
	case sdl.SCANCODE_SPACE:
		return input.KeySpace
	case sdl.SCANCODE_LSHIFT:
		return input.KeyLeftShift
	case sdl.SCANCODE_LCTRL:
		return input.KeyLeftCtrl
	case sdl.SCANCODE_ESCAPE:
		return input.KeyEscape
	case sdl.SCANCODE_F12:
		return input.KeyF12
	case sdl.SCANCODE_TAB:
		return input.KeyTab
	default:
		return input.KeyUnknown
	}
}
