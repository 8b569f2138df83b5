// Package softgpu implements gpu.Device with the fauxgl software
// rasterizer. It needs no window or GL context, so it backs headless
// rendering (meshtool render) and pixel-level tests.
//
// GLSL sources passed to CompileProgram are not executed: every program
// shades with the default flat ambient model, driven by the same named
// uniforms the renderer pushes to a GL program.
package softgpu

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"go.uber.org/zap"

	"github.com/Faultbox/facet/internal/engine/gpu"
	"github.com/Faultbox/facet/internal/logger"
	"github.com/Faultbox/facet/pkg/math"
)

// geometry is the device-side copy of one upload.
type geometry struct {
	positions []fauxgl.Vector
	indices   []uint32
}

// Device is a software gpu.Device.
type Device struct {
	width, height int
	supersample   int

	ctx    *fauxgl.Context
	meshes map[gpu.Buffer]*geometry
	next   gpu.Buffer
	bound  *Program

	draws int
}

// New creates a device rendering at width x height. The internal target is
// supersample times larger and is filtered down by Snapshot.
func New(width, height, supersample int) *Device {
	if supersample < 1 {
		supersample = 1
	}
	d := &Device{
		supersample: supersample,
		meshes:      make(map[gpu.Buffer]*geometry),
	}
	d.Viewport(width, height)
	return d
}

// Upload stores a copy of the positions and indices. Index range is
// checked here since there is no driver to catch it.
func (d *Device) Upload(layout gpu.VertexLayout, vertices []float32, indices []uint32) (gpu.Buffer, error) {
	if err := layout.Validate(vertices, indices); err != nil {
		return 0, err
	}

	stride := layout.Stride()
	g := &geometry{
		positions: make([]fauxgl.Vector, 0, len(vertices)/stride),
		indices:   append([]uint32(nil), indices...),
	}
	for i := 0; i < len(vertices); i += stride {
		g.positions = append(g.positions, fauxgl.V(
			float64(vertices[i]), float64(vertices[i+1]), float64(vertices[i+2]),
		))
	}
	for _, idx := range indices {
		if int(idx) >= len(g.positions) {
			return 0, fmt.Errorf("index %d out of range for %d vertices", idx, len(g.positions))
		}
	}

	d.next++
	d.meshes[d.next] = g
	return d.next, nil
}

// CompileProgram returns a uniform store; the sources are only checked for
// presence.
func (d *Device) CompileProgram(vertexSrc, fragmentSrc string) (gpu.Program, error) {
	if vertexSrc == "" || fragmentSrc == "" {
		return nil, errors.New("softgpu: empty shader source")
	}
	return newProgram(d), nil
}

// Clear fills the color buffer and resets depth.
func (d *Device) Clear(c math.Color) {
	d.ctx.ClearColorBufferWith(fauxgl.Color{R: c.R, G: c.G, B: c.B, A: 1})
	d.ctx.ClearDepthBuffer()
}

// Draw rasterizes count indices of buf using the bound program's uniforms.
func (d *Device) Draw(buf gpu.Buffer, count int) error {
	g, ok := d.meshes[buf]
	if !ok {
		return fmt.Errorf("draw %d: %w", buf, gpu.ErrInvalidBuffer)
	}
	if d.bound == nil {
		return gpu.ErrNoProgram
	}
	if count < 0 || count > len(g.indices) {
		count = len(g.indices)
	}

	d.ctx.Shader = d.bound.shader()

	triangles := make([]*fauxgl.Triangle, 0, count/3)
	for i := 0; i+2 < count; i += 3 {
		triangles = append(triangles, &fauxgl.Triangle{
			V1: fauxgl.Vertex{Position: g.positions[g.indices[i]]},
			V2: fauxgl.Vertex{Position: g.positions[g.indices[i+1]]},
			V3: fauxgl.Vertex{Position: g.positions[g.indices[i+2]]},
		})
	}
	d.ctx.DrawTriangles(triangles)
	d.draws++
	return nil
}

// Viewport resizes the render target. The previous contents are dropped.
func (d *Device) Viewport(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	d.width, d.height = width, height
	d.ctx = fauxgl.NewContext(width*d.supersample, height*d.supersample)
	// Winding is not normalized across mesh sources.
	d.ctx.Cull = fauxgl.CullNone

	logger.Debug("soft viewport resized",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("supersample", d.supersample),
	)
}

// Release drops the stored geometry.
func (d *Device) Release(buf gpu.Buffer) {
	delete(d.meshes, buf)
}

// Buffers returns the number of live uploads.
func (d *Device) Buffers() int {
	return len(d.meshes)
}

// Draws returns the number of successful draws since creation.
func (d *Device) Draws() int {
	return d.draws
}

// Snapshot returns the color buffer filtered to the viewport size.
func (d *Device) Snapshot() (*image.RGBA, error) {
	var img image.Image = d.ctx.Image()
	if d.supersample > 1 {
		img = resize.Resize(uint(d.width), uint(d.height), img, resize.Bilinear)
	}

	out := image.NewRGBA(image.Rect(0, 0, d.width, d.height))
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out, nil
}

// SavePNG writes the current frame to path.
func (d *Device) SavePNG(path string) error {
	img, err := d.Snapshot()
	if err != nil {
		return err
	}
	return fauxgl.SavePNG(path, img)
}
