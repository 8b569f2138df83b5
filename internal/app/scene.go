package app

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/facet/internal/config"
	"github.com/Faultbox/facet/internal/engine"
	"github.com/Faultbox/facet/internal/engine/material"
	"github.com/Faultbox/facet/internal/engine/mesh"
	"github.com/Faultbox/facet/internal/logger"
	"github.com/Faultbox/facet/pkg/math"
)

// ErrUnknownKind is returned for scene entries with an unsupported kind.
var ErrUnknownKind = errors.New("unknown model kind")

// Spinner is a scene model with a fixed pose and a constant angular
// velocity applied in its local frame.
type Spinner struct {
	engine.BaseModel
	Name string

	Position math.Vec3
	Rotation math.Vec3 // Radians
	Scale    math.Vec3
	Spin     math.Vec3 // Radians per second

	angle math.Vec3
}

// Init composes the starting transform.
func (s *Spinner) Init() {
	s.compose()
}

// Update advances the spin.
func (s *Spinner) Update(delta float64) {
	if s.Spin == math.Zero {
		return
	}
	s.angle.Translate(s.Spin.Scale(delta))
	s.compose()
}

// Angle returns the accumulated spin in radians.
func (s *Spinner) Angle() math.Vec3 {
	return s.angle
}

func (s *Spinner) compose() {
	m := math.Translation(s.Position.X, s.Position.Y, s.Position.Z)
	m.RotateY(s.Rotation.Y + s.angle.Y)
	m.RotateX(s.Rotation.X + s.angle.X)
	m.RotateZ(s.Rotation.Z + s.angle.Z)
	m.Scale(s.Scale)
	*s.Transform() = m
}

// SceneBuilder creates models from scene entries.
type SceneBuilder struct {
	Meshes *mesh.Builder
	Loader *mesh.Loader
	Shader *material.Shader
}

// Build creates every entry. A failing entry is logged and skipped so one
// broken asset does not empty the scene; the joined errors are returned
// alongside the models that were built.
func (sb *SceneBuilder) Build(cfg config.SceneConfig) ([]*Spinner, error) {
	var (
		models []*Spinner
		errs   []error
	)
	for i, mc := range cfg.Models {
		s, err := sb.Model(mc)
		if err != nil {
			logger.Error("scene model skipped",
				zap.Int("index", i),
				zap.String("name", mc.Name),
				zap.Error(err))
			errs = append(errs, fmt.Errorf("model %d (%s): %w", i, mc.Name, err))
			continue
		}
		models = append(models, s)
	}
	return models, errors.Join(errs...)
}

// Model creates one scene entry.
func (sb *SceneBuilder) Model(mc config.ModelConfig) (*Spinner, error) {
	m, err := sb.mesh(mc)
	if err != nil {
		return nil, err
	}

	if !mc.Material.IsZero() {
		m.Material = material.FromConfig(mc.Material, sb.Shader)
	}
	m.Visible = mc.IsVisible()
	if mc.Name != "" {
		m.Name = mc.Name
	}

	return &Spinner{
		BaseModel: engine.NewBaseModel(m),
		Name:      m.Name,
		Position:  vec(mc.Position),
		Rotation:  degVec(mc.Rotation),
		Scale:     mc.ScaleVec(),
		Spin:      degVec(mc.Spin),
	}, nil
}

func (sb *SceneBuilder) mesh(mc config.ModelConfig) (*mesh.Mesh, error) {
	p := func(i int, def float64) float64 {
		if i < len(mc.Params) {
			return mc.Params[i]
		}
		return def
	}

	switch mc.Kind {
	case config.KindRect:
		return sb.Meshes.Rect(p(0, 1), p(1, 1))
	case config.KindCuboid:
		return sb.Meshes.Cuboid(p(0, 1), p(1, 1), p(2, 1))
	case config.KindSphere:
		return sb.Meshes.Sphere(int(p(0, 16)), int(p(1, 8)), p(2, 1))
	case config.KindOBJ:
		if sb.Loader == nil {
			return nil, errors.New("no mesh loader configured")
		}
		return sb.Loader.Load(mc.Mesh)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, mc.Kind)
	}
}

func vec(a [3]float64) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}

func degVec(a [3]float64) math.Vec3 {
	return math.Vec3{X: math.DegToRad(a[0]), Y: math.DegToRad(a[1]), Z: math.DegToRad(a[2])}
}
