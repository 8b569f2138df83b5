// Package app wires configuration, window, device and scene into a running
// viewer.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/facet/internal/assets"
	"github.com/Faultbox/facet/internal/config"
	"github.com/Faultbox/facet/internal/engine"
	"github.com/Faultbox/facet/internal/engine/camera"
	"github.com/Faultbox/facet/internal/engine/debug"
	"github.com/Faultbox/facet/internal/engine/gpu"
	"github.com/Faultbox/facet/internal/engine/gpu/glgpu"
	"github.com/Faultbox/facet/internal/engine/input"
	"github.com/Faultbox/facet/internal/engine/material"
	"github.com/Faultbox/facet/internal/engine/mesh"
	"github.com/Faultbox/facet/internal/engine/renderer"
	"github.com/Faultbox/facet/internal/engine/window"
	"github.com/Faultbox/facet/internal/logger"
)

// App is the viewer instance.
type App struct {
	cfg     *config.Config
	surface window.Surface
	device  gpu.Device
	closer  func()

	assets  *assets.Manager
	shaders *material.Library
	engine  *engine.Engine
	fly     *camera.Fly
	shots   *debug.ScreenshotCapture
	models  []*Spinner

	fps        fpsCounter
	frameStart time.Time
}

// New opens the configured window with an OpenGL device.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.String("backend", cfg.Window.Backend),
	)

	// Create window (this also creates OpenGL context)
	surface, err := window.Open(cfg.Window.Backend, window.FromConfig(cfg.Window))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create device (AFTER window, since OpenGL context must exist)
	w, h := surface.Size()
	dev, err := glgpu.New(w, h)
	if err != nil {
		surface.Close()
		return nil, fmt.Errorf("failed to create device: %w", err)
	}

	a, err := NewWith(cfg, surface, dev)
	if err != nil {
		dev.Close()
		surface.Close()
		return nil, err
	}
	a.closer = func() {
		dev.Close()
		surface.Close()
	}
	return a, nil
}

// NewWith builds the viewer on an existing surface and device. The caller
// keeps ownership of both.
func NewWith(cfg *config.Config, surface window.Surface, dev gpu.Device) (*App, error) {
	a := &App{
		cfg:     cfg,
		surface: surface,
		device:  dev,
		assets:  assets.NewManager(),
		shots:   debug.NewScreenshotCapture(cfg.Assets.ScreenshotDir, "facet"),
	}

	for _, dir := range cfg.Assets.Paths {
		if err := a.assets.AddDir(dir); err != nil {
			logger.Warn("asset path unavailable", zap.String("path", dir), zap.Error(err))
		}
	}

	a.shaders = material.NewLibrary(dev, a.assets)
	shader, err := a.shaders.Load(cfg.Render.Shader)
	if err != nil {
		return nil, fmt.Errorf("failed to load shader: %w", err)
	}

	w, h := surface.Size()
	cam := camera.FromConfig(cfg.Camera, float64(w)/float64(max(h, 1)))
	a.fly = camera.NewFly(cam, cfg.Camera)
	r := renderer.New(dev, cam, material.EnvironmentFromConfig(cfg.Render))

	a.engine = engine.New(r, surface,
		engine.WithFrameHook(a.beforeRender),
		engine.WithPostRenderHook(a.afterRender),
	)
	if err := a.engine.Init(); err != nil {
		return nil, err
	}

	builder := mesh.NewBuilder(dev, material.New(shader))
	sb := &SceneBuilder{
		Meshes: builder,
		Loader: mesh.NewLoader(builder, a.assets),
		Shader: shader,
	}
	models, err := sb.Build(cfg.Scene)
	if err != nil && len(models) == 0 && len(cfg.Scene.Models) > 0 {
		return nil, fmt.Errorf("failed to build scene: %w", err)
	}
	for _, m := range models {
		if err := a.engine.Instance(m); err != nil {
			return nil, err
		}
	}
	a.models = models

	logger.Info("viewer initialized", zap.Int("models", len(models)))
	return a, nil
}

// Engine returns the frame loop.
func (a *App) Engine() *engine.Engine {
	return a.engine
}

// Models returns the scene models.
func (a *App) Models() []*Spinner {
	return a.models
}

// Run starts the main loop and blocks until the window closes or ctx ends.
func (a *App) Run(ctx context.Context) error {
	logger.Info("starting main loop")
	a.frameStart = time.Now()
	return a.engine.Run(ctx)
}

// Close releases resources. Safe to call after Run.
func (a *App) Close() {
	logger.Info("closing viewer")
	a.engine.Shutdown()
	if a.shaders != nil {
		a.shaders.Release()
	}
	a.assets.Close()
	if a.closer != nil {
		a.closer()
	}
}

func (a *App) beforeRender(delta float64) {
	in := a.surface.Input()
	a.fly.Update(in, delta)

	if in.IsKeyPressed(input.KeyTab) {
		for _, m := range a.models {
			m.SetDisabled(!m.Disabled())
		}
		logger.Debug("spin toggled")
	}
}

func (a *App) afterRender(delta float64) {
	if a.surface.Input().IsKeyPressed(input.KeyF12) {
		a.screenshot()
	}

	if fps, ok := a.fps.tick(delta); ok {
		a.surface.SetTitle(fmt.Sprintf("%s - %d fps", a.cfg.Window.Title, fps))
		logger.Debug("fps", zap.Int("count", fps), zap.String("dt", fmt.Sprintf("%.2fms", delta*1000)))
	}

	a.limit()
}

func (a *App) screenshot() {
	name, err := a.shots.Capture(a.device)
	if err != nil {
		if errors.Is(err, debug.ErrNoSnapshot) {
			logger.Warn("screenshots not supported by this device")
			return
		}
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("file", name))
}

// limit sleeps out the rest of the frame when an FPS cap is set.
func (a *App) limit() {
	if a.cfg.Render.FPSLimit <= 0 {
		return
	}
	budget := time.Second / time.Duration(a.cfg.Render.FPSLimit)
	if d := budget - time.Since(a.frameStart); d > 0 {
		time.Sleep(d)
	}
	a.frameStart = time.Now()
}

// fpsCounter reports the frame count once per accumulated second.
type fpsCounter struct {
	frames  int
	elapsed float64
}

func (c *fpsCounter) tick(delta float64) (int, bool) {
	c.frames++
	c.elapsed += delta
	if c.elapsed < 1 {
		return 0, false
	}
	fps := c.frames
	c.frames, c.elapsed = 0, 0
	return fps, true
}
