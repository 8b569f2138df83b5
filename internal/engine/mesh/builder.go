package mesh

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/facet/internal/engine/gpu"
	"github.com/Faultbox/facet/internal/engine/material"
	"github.com/Faultbox/facet/internal/logger"
	"github.com/Faultbox/facet/pkg/math"
)

// Builder uploads geometry and hands out meshes with a default material.
type Builder struct {
	device   gpu.Device
	material *material.Material
}

// NewBuilder creates a builder for dev. New meshes share mat.
func NewBuilder(dev gpu.Device, mat *material.Material) *Builder {
	return &Builder{device: dev, material: mat}
}

// Device returns the device meshes are uploaded to.
func (b *Builder) Device() gpu.Device {
	return b.device
}

// Material returns the default material.
func (b *Builder) Material() *material.Material {
	return b.material
}

// SetMaterial replaces the default material for meshes created afterwards.
func (b *Builder) SetMaterial(mat *material.Material) {
	b.material = mat
}

// CreateMesh uploads vertex and index data. The mesh starts visible with an
// identity transform and the default material.
func (b *Builder) CreateMesh(layout gpu.VertexLayout, vertices []float32, indices []uint32) (*Mesh, error) {
	if err := layout.Validate(vertices, indices); err != nil {
		return nil, err
	}
	assertIndices(layout, vertices, indices)

	buf, err := b.device.Upload(layout, vertices, indices)
	if err != nil {
		return nil, fmt.Errorf("upload mesh: %w", err)
	}

	return &Mesh{
		Transform: math.Identity(),
		Material:  b.material,
		Visible:   true,
		device:    b.device,
		buffer:    buf,
		count:     len(indices),
		layout:    layout,
		bounds:    computeBounds(layout, vertices),
	}, nil
}

// FromGeometry uploads g.
func (b *Builder) FromGeometry(g Geometry) (*Mesh, error) {
	return b.CreateMesh(g.Layout, g.Vertices, g.Indices)
}

// Rect creates a quad facing +Z with half-extents width and height.
func (b *Builder) Rect(width, height float64) (*Mesh, error) {
	m, err := b.FromGeometry(RectGeometry(width, height))
	if err != nil {
		return nil, err
	}
	m.Name = "rect"
	return m, nil
}

// Cuboid creates a cube with half-extent 1. The dimensions are not applied;
// scale the transform instead.
func (b *Builder) Cuboid(width, height, depth float64) (*Mesh, error) {
	if width != 1 || height != 1 || depth != 1 {
		logger.Warn("cuboid dimensions are ignored, use the transform scale",
			zap.Float64("width", width),
			zap.Float64("height", height),
			zap.Float64("depth", depth))
	}
	m, err := b.FromGeometry(CuboidGeometry())
	if err != nil {
		return nil, err
	}
	m.Name = "cuboid"
	return m, nil
}

// Sphere creates a UV sphere.
func (b *Builder) Sphere(lon, lat int, radius float64) (*Mesh, error) {
	g, err := SphereGeometry(lon, lat, radius)
	if err != nil {
		return nil, err
	}
	m, err := b.FromGeometry(g)
	if err != nil {
		return nil, err
	}
	m.Name = "sphere"
	return m, nil
}
