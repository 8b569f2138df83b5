// Package engine runs the frame loop: it owns the model registry, updates
// models, renders the queue and presents the surface.
package engine

import (
	"context"
	"errors"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/facet/internal/engine/renderer"
	"github.com/Faultbox/facet/internal/engine/window"
	"github.com/Faultbox/facet/internal/logger"
)

// Usage errors.
var (
	ErrNotInitialized     = errors.New("engine is not initialized")
	ErrAlreadyInitialized = errors.New("engine is already initialized")
	ErrDuplicateModel     = errors.New("model is already instanced")
	ErrClosed             = errors.New("engine is closed")
)

// State is the engine lifecycle state.
type State int

const (
	StateUninitialized State = iota
	StateRunning
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRunning:
		return "running"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// FrameHook runs once per frame with the frame time in seconds.
type FrameHook func(delta float64)

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces time.Now as the frame time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithFrameHook adds a hook that runs after model updates, before render.
func WithFrameHook(h FrameHook) Option {
	return func(e *Engine) { e.beforeRender = append(e.beforeRender, h) }
}

// WithPostRenderHook adds a hook that runs after render, before the frame
// is presented.
func WithPostRenderHook(h FrameHook) Option {
	return func(e *Engine) { e.afterRender = append(e.afterRender, h) }
}

// Engine is the frame loop context.
type Engine struct {
	renderer *renderer.Renderer
	surface  window.Surface

	models []Model
	state  State

	now          func() time.Time
	last         time.Time
	frames       uint64
	beforeRender []FrameHook
	afterRender  []FrameHook
}

// New creates an uninitialized engine.
func New(r *renderer.Renderer, surface window.Surface, opts ...Option) *Engine {
	e := &Engine{
		renderer: r,
		surface:  surface,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Init moves the engine to running and sizes the viewport to the surface.
func (e *Engine) Init() error {
	switch e.state {
	case StateRunning:
		return ErrAlreadyInitialized
	case StateClosed:
		return ErrClosed
	}

	w, h := e.surface.Size()
	e.renderer.Resize(w, h)
	e.last = e.now()
	e.state = StateRunning
	logger.Info("engine initialized", zap.Int("width", w), zap.Int("height", h))
	return nil
}

// State returns the lifecycle state.
func (e *Engine) State() State {
	return e.state
}

// Renderer returns the renderer.
func (e *Engine) Renderer() *renderer.Renderer {
	return e.renderer
}

// Surface returns the surface.
func (e *Engine) Surface() window.Surface {
	return e.surface
}

// Frames returns the number of completed ticks.
func (e *Engine) Frames() uint64 {
	return e.frames
}

// Models returns the registered models in update order.
func (e *Engine) Models() []Model {
	return slices.Clone(e.models)
}

// Instance registers m, queues its mesh and calls m.Init.
func (e *Engine) Instance(m Model) error {
	if err := e.checkRunning(); err != nil {
		return err
	}
	if slices.Contains(e.models, m) {
		return ErrDuplicateModel
	}

	e.models = append(e.models, m)
	if msh := m.Mesh(); msh != nil {
		msh.Transform = *m.Transform()
		e.renderer.Add(msh)
	}
	m.Init()
	return nil
}

// Free unregisters m, dequeues its mesh and releases the mesh buffer.
// Unknown models are ignored.
func (e *Engine) Free(m Model) error {
	if err := e.checkRunning(); err != nil {
		return err
	}
	i := slices.Index(e.models, m)
	if i < 0 {
		return nil
	}
	e.models = slices.Delete(e.models, i, i+1)
	if msh := m.Mesh(); msh != nil {
		e.renderer.Remove(msh)
		msh.Release()
	}
	return nil
}

// checkRunning returns the usage error for the current state, if any.
func (e *Engine) checkRunning() error {
	switch e.state {
	case StateUninitialized:
		return ErrNotInitialized
	case StateClosed:
		return ErrClosed
	}
	return nil
}

// Tick runs one frame: update, hooks, render, present, poll.
func (e *Engine) Tick() error {
	if err := e.checkRunning(); err != nil {
		return err
	}

	now := e.now()
	delta := now.Sub(e.last).Seconds()
	e.last = now

	if w, h, ok := e.surface.Input().Resized(); ok {
		e.renderer.Resize(w, h)
	}

	// Models may instance or free others from Update. A model freed
	// earlier in the pass is not updated.
	for _, m := range slices.Clone(e.models) {
		if m.Disabled() || !slices.Contains(e.models, m) {
			continue
		}
		e.update(m, delta)
	}
	for _, m := range e.models {
		if msh := m.Mesh(); msh != nil {
			msh.Transform = *m.Transform()
		}
	}

	for _, h := range e.beforeRender {
		h(delta)
	}
	e.renderer.Render()
	for _, h := range e.afterRender {
		h(delta)
	}

	e.surface.SwapBuffers()
	e.surface.PollEvents()
	e.frames++
	return nil
}

func (e *Engine) update(m Model, delta float64) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("model update panicked",
				zap.Any("panic", r),
				zap.Uint64("frame", e.frames),
				zap.Stack("stack"))
		}
	}()
	m.Update(delta)
}

// Run ticks until the surface asks to close or ctx is done, then shuts
// down. Returns nil on a normal exit.
func (e *Engine) Run(ctx context.Context) error {
	if err := e.checkRunning(); err != nil {
		return err
	}
	defer e.Shutdown()

	for !e.surface.ShouldClose() {
		if err := ctx.Err(); err != nil {
			logger.Info("engine stopping", zap.Error(err))
			return nil
		}
		if err := e.Tick(); err != nil {
			return err
		}
	}
	logger.Info("engine stopped", zap.Uint64("frames", e.frames))
	return nil
}

// Shutdown releases every model mesh and closes the engine. Safe to call
// more than once.
func (e *Engine) Shutdown() {
	if e.state == StateClosed {
		return
	}
	for _, m := range e.models {
		if msh := m.Mesh(); msh != nil {
			e.renderer.Remove(msh)
			msh.Release()
		}
	}
	e.models = nil
	e.state = StateClosed
}
