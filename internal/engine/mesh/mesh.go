// Package mesh provides GPU-resident meshes and the builders that create them.
package mesh

import (
	"github.com/Faultbox/facet/internal/engine/gpu"
	"github.com/Faultbox/facet/internal/engine/material"
	"github.com/Faultbox/facet/pkg/math"
)

// Bounds holds the local-space axis-aligned bounding box of a mesh.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extent per axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Geometry is device-independent vertex and index data.
type Geometry struct {
	Layout   gpu.VertexLayout
	Vertices []float32
	Indices  []uint32
}

// VertexCount returns the number of vertices.
func (g Geometry) VertexCount() int {
	return len(g.Vertices) / g.Layout.Stride()
}

// Bounds computes the bounding box of the positions.
func (g Geometry) Bounds() Bounds {
	return computeBounds(g.Layout, g.Vertices)
}

// Position returns vertex i's position.
func (g Geometry) Position(i int) math.Vec3 {
	o := i * g.Layout.Stride()
	return math.Vec3{X: float64(g.Vertices[o]), Y: float64(g.Vertices[o+1]), Z: float64(g.Vertices[o+2])}
}

// Mesh is uploaded geometry with a transform and a shared material.
type Mesh struct {
	Name      string
	Transform math.Mat4
	Material  *material.Material
	Visible   bool

	device   gpu.Device
	buffer   gpu.Buffer
	count    int
	layout   gpu.VertexLayout
	bounds   Bounds
	released bool
}

// Buffer returns the device handle.
func (m *Mesh) Buffer() gpu.Buffer {
	return m.buffer
}

// Count returns the element (index) count.
func (m *Mesh) Count() int {
	return m.count
}

// Layout returns the vertex layout.
func (m *Mesh) Layout() gpu.VertexLayout {
	return m.layout
}

// Bounds returns the local-space bounds.
func (m *Mesh) Bounds() Bounds {
	return m.bounds
}

// Released reports whether Release has been called.
func (m *Mesh) Released() bool {
	return m.released
}

// Release frees the device buffer. Safe to call more than once.
func (m *Mesh) Release() {
	if m.released {
		return
	}
	m.released = true
	if m.device != nil {
		m.device.Release(m.buffer)
	}
}

func computeBounds(layout gpu.VertexLayout, vertices []float32) Bounds {
	stride := layout.Stride()
	if len(vertices) < 3 {
		return Bounds{}
	}
	b := Bounds{
		Min: math.Splat(1e30),
		Max: math.Splat(-1e30),
	}
	for i := 0; i+2 < len(vertices); i += stride {
		x, y, z := float64(vertices[i]), float64(vertices[i+1]), float64(vertices[i+2])
		b.Min = math.Vec3{X: min(b.Min.X, x), Y: min(b.Min.Y, y), Z: min(b.Min.Z, z)}
		b.Max = math.Vec3{X: max(b.Max.X, x), Y: max(b.Max.Y, y), Z: max(b.Max.Z, z)}
	}
	return b
}
