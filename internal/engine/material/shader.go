package material

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/facet/internal/assets"
	"github.com/Faultbox/facet/internal/engine/gpu"
	"github.com/Faultbox/facet/internal/logger"
	"github.com/Faultbox/facet/pkg/formats"
	"github.com/Faultbox/facet/pkg/math"
)

// DefaultShaderName names the embedded shader.
const DefaultShaderName = "default"

//go:embed shaders/default.glsl
var defaultShaderSource []byte

// ErrShaderNotFound is returned when a named shader cannot be located.
var ErrShaderNotFound = errors.New("shader not found")

// Shader is a compiled program with the engine's uniform conventions.
type Shader struct {
	name    string
	program gpu.Program
}

// Compile splits a combined shader file and compiles it on dev.
func Compile(dev gpu.Device, name string, src []byte) (*Shader, error) {
	stages, err := formats.SplitShader(src)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", name, err)
	}
	program, err := dev.CompileProgram(stages.Vertex, stages.Fragment)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", name, err)
	}
	return &Shader{name: name, program: program}, nil
}

// Name returns the shader name.
func (s *Shader) Name() string {
	return s.name
}

// Program returns the underlying program.
func (s *Shader) Program() gpu.Program {
	return s.program
}

// Bind makes the shader current.
func (s *Shader) Bind() {
	s.program.Bind()
}

// SetDefaultMatrixUniforms pushes the model, view and projection matrices.
func (s *Shader) SetDefaultMatrixUniforms(model, view, projection math.Mat4) {
	s.program.SetMat4(gpu.UniformModel, model.Float32s())
	s.program.SetMat4(gpu.UniformView, view.Float32s())
	s.program.SetMat4(gpu.UniformProjection, projection.Float32s())
}

// SetLightingUniforms pushes the environment, material and eye position.
func (s *Shader) SetLightingUniforms(env *Environment, m *Material, viewPosition math.Vec3) {
	s.program.SetVec3(gpu.UniformEnvironmentAmbient, env.BackgroundColor().RGB32())
	s.program.SetVec3(gpu.UniformMaterialAmbient, m.Ambient.RGB32())
	s.program.SetVec3(gpu.UniformMaterialDiffuse, m.Diffuse.RGB32())
	s.program.SetVec3(gpu.UniformMaterialSpecular, m.Specular.RGB32())
	s.program.SetFloat(gpu.UniformMaterialShininess, float32(m.Shininess))
	s.program.SetVec3(gpu.UniformViewPosition, viewPosition.Float32s())
}

// Release frees the program.
func (s *Shader) Release() {
	s.program.Release()
}

// Library compiles shaders once and hands out shared instances.
type Library struct {
	device  gpu.Device
	assets  *assets.Manager
	shaders map[string]*Shader
}

// NewLibrary creates a library. assets may be nil when only the embedded
// default shader is used.
func NewLibrary(dev gpu.Device, am *assets.Manager) *Library {
	return &Library{
		device:  dev,
		assets:  am,
		shaders: make(map[string]*Shader),
	}
}

// Default returns the embedded default shader.
func (l *Library) Default() (*Shader, error) {
	return l.Load(DefaultShaderName)
}

// Load returns the named shader, compiling it on first use. Names resolve
// through the asset manager with a ".glsl" suffix; "" and "default" select
// the embedded shader unless an asset overrides it.
func (l *Library) Load(name string) (*Shader, error) {
	if name == "" {
		name = DefaultShaderName
	}
	name = strings.TrimSuffix(name, ".glsl")
	if s, ok := l.shaders[name]; ok {
		return s, nil
	}

	src, err := l.source(name)
	if err != nil {
		return nil, err
	}

	s, err := Compile(l.device, name, src)
	if err != nil {
		return nil, err
	}
	l.shaders[name] = s
	logger.Debug("shader compiled", zap.String("shader", name))
	return s, nil
}

func (l *Library) source(name string) ([]byte, error) {
	if l.assets != nil {
		data, err := l.assets.Load("shaders/" + name + ".glsl")
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, assets.ErrNotFound) {
			return nil, err
		}
	}
	if name == DefaultShaderName {
		return defaultShaderSource, nil
	}
	return nil, fmt.Errorf("%s: %w", name, ErrShaderNotFound)
}

// Release frees every compiled shader.
func (l *Library) Release() {
	for name, s := range l.shaders {
		s.Release()
		delete(l.shaders, name)
	}
}
