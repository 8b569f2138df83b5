// Package material holds surface descriptions, the scene environment and
// the shader programs that consume them.
package material

import (
	"github.com/Faultbox/facet/internal/config"
	"github.com/Faultbox/facet/pkg/math"
)

// Material describes how a mesh surface is shaded. Materials are shared by
// pointer between meshes.
type Material struct {
	Ambient   math.Color
	Diffuse   math.Color
	Specular  math.Color
	Shininess float64

	Shader *Shader
}

// New creates a material with neutral gray colors.
func New(shader *Shader) *Material {
	return &Material{
		Ambient:   math.Gray(0.2),
		Diffuse:   math.Gray(0.8),
		Specular:  math.Gray(0.5),
		Shininess: 32,
		Shader:    shader,
	}
}

// FromConfig creates a material from a scene entry. Unset colors keep the
// defaults of New.
func FromConfig(cfg config.MaterialConfig, shader *Shader) *Material {
	return New(shader).WithConfig(cfg)
}

// WithConfig returns a copy of m with the non-zero values of cfg applied.
// m itself is not modified.
func (m *Material) WithConfig(cfg config.MaterialConfig) *Material {
	c := m.Clone()
	if cfg.Ambient != (math.Color{}) {
		c.Ambient = cfg.Ambient
	}
	if cfg.Diffuse != (math.Color{}) {
		c.Diffuse = cfg.Diffuse
	}
	if cfg.Specular != (math.Color{}) {
		c.Specular = cfg.Specular
	}
	if cfg.Shininess > 0 {
		c.Shininess = cfg.Shininess
	}
	return c
}

// Clone returns a copy sharing the shader.
func (m *Material) Clone() *Material {
	c := *m
	return &c
}

// Bind binds the material's shader. Returns false without a shader.
func (m *Material) Bind() bool {
	if m == nil || m.Shader == nil {
		return false
	}
	m.Shader.Bind()
	return true
}

// Environment is the scene-wide ambient light.
type Environment struct {
	AmbientColor     math.Color
	AmbientIntensity float64
}

// NewEnvironment returns a black environment at full intensity.
func NewEnvironment() *Environment {
	return &Environment{
		AmbientColor:     math.Black,
		AmbientIntensity: 1,
	}
}

// EnvironmentFromConfig builds the environment from the render section.
func EnvironmentFromConfig(cfg config.RenderConfig) *Environment {
	return &Environment{
		AmbientColor:     cfg.Ambient,
		AmbientIntensity: cfg.AmbientIntensity,
	}
}

// BackgroundColor is the ambient color scaled by its intensity. It is both
// the clear color and the ambient term. Alpha is not scaled.
func (e *Environment) BackgroundColor() math.Color {
	c := e.AmbientColor.Scaled(e.AmbientIntensity)
	c.A = e.AmbientColor.A
	return c
}
