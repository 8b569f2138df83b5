// Package renderer draws the render queue through a gpu.Device.
package renderer

import (
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/facet/internal/engine/camera"
	"github.com/Faultbox/facet/internal/engine/gpu"
	"github.com/Faultbox/facet/internal/engine/material"
	"github.com/Faultbox/facet/internal/engine/mesh"
	"github.com/Faultbox/facet/internal/logger"
)

// Stats describes the last rendered frame.
type Stats struct {
	Drawn   int
	Hidden  int
	Skipped int
}

// Renderer owns the render queue and issues one draw per visible mesh.
type Renderer struct {
	device gpu.Device
	camera *camera.Camera
	env    *material.Environment

	queue []*mesh.Mesh
	// Meshes already reported as unrenderable; the warning is logged once.
	warned map[*mesh.Mesh]bool

	width, height int
	frames        uint64
	stats         Stats
}

// New creates a renderer.
func New(dev gpu.Device, cam *camera.Camera, env *material.Environment) *Renderer {
	return &Renderer{
		device: dev,
		camera: cam,
		env:    env,
		warned: make(map[*mesh.Mesh]bool),
	}
}

// Device returns the device the renderer draws through.
func (r *Renderer) Device() gpu.Device {
	return r.device
}

// Camera returns the active camera.
func (r *Renderer) Camera() *camera.Camera {
	return r.camera
}

// SetCamera replaces the active camera.
func (r *Renderer) SetCamera(cam *camera.Camera) {
	r.camera = cam
	if r.width > 0 && r.height > 0 {
		cam.SetAspect(float64(r.width) / float64(r.height))
	}
}

// Environment returns the scene environment.
func (r *Renderer) Environment() *material.Environment {
	return r.env
}

// Add appends m to the queue. Nil and queued meshes are ignored.
func (r *Renderer) Add(m *mesh.Mesh) {
	if m == nil || r.Contains(m) {
		return
	}
	r.queue = append(r.queue, m)
}

// Remove drops m from the queue. No-op if absent.
func (r *Renderer) Remove(m *mesh.Mesh) {
	i := slices.Index(r.queue, m)
	if i < 0 {
		return
	}
	r.queue = slices.Delete(r.queue, i, i+1)
	delete(r.warned, m)
}

// Contains reports whether m is queued.
func (r *Renderer) Contains(m *mesh.Mesh) bool {
	return slices.Contains(r.queue, m)
}

// Len returns the queue length.
func (r *Renderer) Len() int {
	return len(r.queue)
}

// Queue returns a copy of the queue in draw order.
func (r *Renderer) Queue() []*mesh.Mesh {
	return slices.Clone(r.queue)
}

// Render clears to the environment background and draws every visible
// mesh in queue order. Meshes that cannot be drawn are skipped.
func (r *Renderer) Render() Stats {
	r.frames++
	r.stats = Stats{}
	r.device.Clear(r.env.BackgroundColor())

	view := r.camera.View()
	projection := r.camera.Projection()
	eye := r.camera.Origin()

	for _, m := range r.queue {
		if !m.Visible {
			r.stats.Hidden++
			continue
		}

		mat := m.Material
		if !mat.Bind() {
			r.skip(m, "mesh has no material or shader")
			continue
		}

		mat.Shader.SetDefaultMatrixUniforms(m.Transform, view, projection)
		mat.Shader.SetLightingUniforms(r.env, mat, eye)

		if err := r.device.Draw(m.Buffer(), m.Count()); err != nil {
			r.skip(m, "draw failed", zap.Error(err))
			continue
		}
		r.stats.Drawn++
	}
	return r.stats
}

func (r *Renderer) skip(m *mesh.Mesh, msg string, fields ...zap.Field) {
	r.stats.Skipped++
	if r.warned[m] {
		return
	}
	r.warned[m] = true
	fields = append(fields, zap.String("mesh", m.Name), zap.Uint64("frame", r.frames))
	logger.Warn(msg, fields...)
}

// Stats returns the statistics of the last frame.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// Frames returns the number of rendered frames.
func (r *Renderer) Frames() uint64 {
	return r.frames
}

// Resize updates the viewport and the camera aspect ratio.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.width, r.height = width, height
	r.device.Viewport(width, height)
	r.camera.SetAspect(float64(width) / float64(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the last viewport size.
func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}
