package softgpu

import (
	"github.com/fogleman/fauxgl"

	"github.com/Faultbox/facet/internal/engine/gpu"
	"github.com/Faultbox/facet/pkg/math"
)

// Program stores uniforms for the built-in flat shader.
type Program struct {
	device *Device
	mat4s  map[string][16]float32
	vec3s  map[string][3]float32
	floats map[string]float32
}

func newProgram(d *Device) *Program {
	return &Program{
		device: d,
		mat4s:  make(map[string][16]float32),
		vec3s:  make(map[string][3]float32),
		floats: make(map[string]float32),
	}
}

// Bind makes the program current on its device.
func (p *Program) Bind() {
	p.device.bound = p
}

// SetMat4 stores a column-major matrix uniform.
func (p *Program) SetMat4(name string, m [16]float32) {
	p.mat4s[name] = m
}

// SetVec3 stores a vec3 uniform.
func (p *Program) SetVec3(name string, v [3]float32) {
	p.vec3s[name] = v
}

// SetFloat stores a float uniform.
func (p *Program) SetFloat(name string, f float32) {
	p.floats[name] = f
}

// Release unbinds the program.
func (p *Program) Release() {
	if p.device.bound == p {
		p.device.bound = nil
	}
}

// Mat4 returns a stored matrix, identity when unset.
func (p *Program) Mat4(name string) math.Mat4 {
	m, ok := p.mat4s[name]
	if !ok {
		return math.Identity()
	}
	var out math.Mat4
	for i, v := range m {
		out[i] = float64(v)
	}
	return out
}

// Vec3 returns a stored vec3, zero when unset.
func (p *Program) Vec3(name string) math.Vec3 {
	v := p.vec3s[name]
	return math.Vec3{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
}

// shader snapshots the current uniforms into a fauxgl shader.
func (p *Program) shader() *flatShader {
	mvp := p.Mat4(gpu.UniformProjection).
		Mul(p.Mat4(gpu.UniformView)).
		Mul(p.Mat4(gpu.UniformModel))

	ambient := p.Vec3(gpu.UniformMaterialAmbient).Mul(p.Vec3(gpu.UniformEnvironmentAmbient))
	c := p.Vec3(gpu.UniformMaterialDiffuse).Add(ambient)

	return &flatShader{
		matrix: toMatrix(mvp),
		color: fauxgl.Color{
			R: math.Clamp(c.X, 0, 1),
			G: math.Clamp(c.Y, 0, 1),
			B: math.Clamp(c.Z, 0, 1),
			A: 1,
		},
	}
}

// flatShader is the software twin of shaders/default.glsl.
type flatShader struct {
	matrix fauxgl.Matrix
	color  fauxgl.Color
}

func (s *flatShader) Vertex(v fauxgl.Vertex) fauxgl.Vertex {
	v.Output = s.matrix.MulPositionW(v.Position)
	return v
}

func (s *flatShader) Fragment(v fauxgl.Vertex) fauxgl.Color {
	return s.color
}

// toMatrix converts column-major storage to fauxgl's row-major fields.
func toMatrix(m math.Mat4) fauxgl.Matrix {
	return fauxgl.Matrix{
		X00: m.At(0, 0), X01: m.At(1, 0), X02: m.At(2, 0), X03: m.At(3, 0),
		X10: m.At(0, 1), X11: m.At(1, 1), X12: m.At(2, 1), X13: m.At(3, 1),
		X20: m.At(0, 2), X21: m.At(1, 2), X22: m.At(2, 2), X23: m.At(3, 2),
		X30: m.At(0, 3), X31: m.At(1, 3), X32: m.At(2, 3), X33: m.At(3, 3),
	}
}
