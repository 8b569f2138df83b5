// Package gpu defines the device contract the engine draws through.
//
// A Device owns vertex/index buffers and shader programs. Implementations
// live in subpackages: glgpu (OpenGL 4.1 core), softgpu (software
// rasterizer, headless) and gputest (call recorder for tests).
package gpu

import (
	"errors"
	"fmt"
	"image"

	"github.com/Faultbox/facet/pkg/math"
)

// Device errors.
var (
	ErrInvalidBuffer = errors.New("invalid buffer handle")
	ErrEmptyUpload   = errors.New("upload has no vertices or no indices")
	ErrStride        = errors.New("vertex data length is not a multiple of the layout stride")
	ErrNoProgram     = errors.New("no program bound")
)

// VertexLayout describes how interleaved float32 vertex data is laid out.
type VertexLayout int

const (
	// LayoutPosition is xyz per vertex.
	LayoutPosition VertexLayout = iota
	// LayoutPositionNormal is xyz followed by normal xyz.
	LayoutPositionNormal
)

// Stride returns the number of floats per vertex.
func (l VertexLayout) Stride() int {
	switch l {
	case LayoutPositionNormal:
		return 6
	default:
		return 3
	}
}

// HasNormals reports whether the layout carries a normal attribute.
func (l VertexLayout) HasNormals() bool {
	return l == LayoutPositionNormal
}

func (l VertexLayout) String() string {
	switch l {
	case LayoutPosition:
		return "position"
	case LayoutPositionNormal:
		return "position+normal"
	default:
		return fmt.Sprintf("VertexLayout(%d)", int(l))
	}
}

// Validate checks vertex and index slices against the layout.
func (l VertexLayout) Validate(vertices []float32, indices []uint32) error {
	if len(vertices) == 0 || len(indices) == 0 {
		return ErrEmptyUpload
	}
	if len(vertices)%l.Stride() != 0 {
		return fmt.Errorf("%w: %d floats, %s stride %d", ErrStride, len(vertices), l, l.Stride())
	}
	return nil
}

// Buffer is an opaque handle to uploaded geometry. Zero is never valid.
type Buffer uint32

// Uniform names pushed by the renderer every draw.
const (
	UniformModel              = "model"
	UniformView               = "view"
	UniformProjection         = "projection"
	UniformEnvironmentAmbient = "environment.ambient"
	UniformMaterialAmbient    = "material.ambient"
	UniformMaterialDiffuse    = "material.diffuse"
	UniformMaterialSpecular   = "material.specular"
	UniformMaterialShininess  = "material.shininess"
	UniformViewPosition       = "viewPosition"
)

// Program is a linked shader program. Setting a uniform the program does
// not declare is a silent no-op.
type Program interface {
	Bind()
	SetMat4(name string, m [16]float32)
	SetVec3(name string, v [3]float32)
	SetFloat(name string, f float32)
	Release()
}

// Device uploads geometry, compiles programs and issues draws.
type Device interface {
	// Upload copies interleaved vertices and triangle indices to the device.
	Upload(layout VertexLayout, vertices []float32, indices []uint32) (Buffer, error)
	// CompileProgram builds a program from vertex and fragment sources.
	CompileProgram(vertexSrc, fragmentSrc string) (Program, error)
	// Clear fills the color target and resets depth.
	Clear(c math.Color)
	// Draw renders count indices of buf with the bound program.
	Draw(buf Buffer, count int) error
	// Viewport sets the drawable size in pixels.
	Viewport(width, height int)
	// Release frees buf. Releasing an unknown handle is a no-op.
	Release(buf Buffer)
}

// Snapshotter is implemented by devices that can read back the last frame.
type Snapshotter interface {
	Snapshot() (*image.RGBA, error)
}
