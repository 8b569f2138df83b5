// Package glgpu implements gpu.Device on OpenGL 4.1 core.
//
// Every method must run on the thread that owns the GL context.
package glgpu

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/facet/internal/engine/gpu"
	"github.com/Faultbox/facet/internal/logger"
	"github.com/Faultbox/facet/pkg/math"
)

// mesh holds the GL objects behind one gpu.Buffer.
type mesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

// Device is an OpenGL gpu.Device.
type Device struct {
	meshes map[gpu.Buffer]*mesh
	bound  *Program

	width, height int32
}

// New initializes the GL function pointers and default state.
// IMPORTANT: Must be called AFTER the OpenGL context is current!
func New(width, height int) (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	d := &Device{meshes: make(map[gpu.Buffer]*mesh)}
	d.Viewport(width, height)
	return d, nil
}

// Upload creates a VAO with VBO and EBO for the interleaved data.
func (d *Device) Upload(layout gpu.VertexLayout, vertices []float32, indices []uint32) (gpu.Buffer, error) {
	if err := layout.Validate(vertices, indices); err != nil {
		return 0, err
	}

	m := &mesh{indexCount: int32(len(indices))}
	stride := int32(layout.Stride() * 4)

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	if layout.HasNormals() {
		gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
		gl.EnableVertexAttribArray(1)
	}

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	buf := gpu.Buffer(m.vao)
	d.meshes[buf] = m

	logger.Debug("mesh uploaded",
		zap.Uint32("vao", m.vao),
		zap.Int("vertices", len(vertices)/layout.Stride()),
		zap.Int("indices", len(indices)),
		zap.Stringer("layout", layout),
	)
	return buf, nil
}

// CompileProgram compiles and links a GLSL program.
func (d *Device) CompileProgram(vertexSrc, fragmentSrc string) (gpu.Program, error) {
	id, err := compileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}
	logger.Debug("shader program created", zap.Uint32("program", id))
	return &Program{device: d, id: id, locations: make(map[string]int32)}, nil
}

// Clear clears color and depth.
func (d *Device) Clear(c math.Color) {
	gl.ClearColor(float32(c.R), float32(c.G), float32(c.B), 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw issues an indexed triangle draw.
func (d *Device) Draw(buf gpu.Buffer, count int) error {
	m, ok := d.meshes[buf]
	if !ok {
		return fmt.Errorf("draw %d: %w", buf, gpu.ErrInvalidBuffer)
	}
	if d.bound == nil {
		return gpu.ErrNoProgram
	}
	n := m.indexCount
	if c := int32(count); c >= 0 && c < n {
		n = c
	}

	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, n, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
	return nil
}

// Viewport sets the GL viewport.
func (d *Device) Viewport(width, height int) {
	d.width, d.height = int32(width), int32(height)
	gl.Viewport(0, 0, d.width, d.height)
	logger.Debug("viewport resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Release deletes the GL objects behind buf.
func (d *Device) Release(buf gpu.Buffer) {
	m, ok := d.meshes[buf]
	if !ok {
		return
	}
	gl.DeleteBuffers(1, &m.ebo)
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteVertexArrays(1, &m.vao)
	delete(d.meshes, buf)
}

// Snapshot reads the back buffer. The result has its origin at the top left.
func (d *Device) Snapshot() (*image.RGBA, error) {
	w, h := int(d.width), int(d.height)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("snapshot: empty viewport %dx%d", w, h)
	}

	pixels := make([]byte, w*h*4)
	gl.ReadBuffer(gl.BACK)
	gl.ReadPixels(0, 0, d.width, d.height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	// OpenGL has its origin at the bottom left.
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	rowSize := w * 4
	for y := 0; y < h; y++ {
		src := (h - 1 - y) * rowSize
		copy(img.Pix[y*img.Stride:y*img.Stride+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}

// Close releases every remaining buffer.
func (d *Device) Close() {
	logger.Info("closing GL device", zap.Int("buffers", len(d.meshes)))
	for buf := range d.meshes {
		d.Release(buf)
	}
}
