package mesh

import (
	"errors"
	"fmt"
	"path"

	"go.uber.org/zap"

	"github.com/Faultbox/facet/internal/assets"
	"github.com/Faultbox/facet/internal/engine/gpu"
	"github.com/Faultbox/facet/internal/logger"
	"github.com/Faultbox/facet/pkg/formats"
)

// Loader errors.
var (
	ErrMeshNotFound = errors.New("mesh not found")
	ErrEmptyMesh    = errors.New("mesh has no triangles")
)

// Loader reads OBJ meshes through the asset manager.
type Loader struct {
	builder *Builder
	assets  *assets.Manager
}

// NewLoader creates a loader.
func NewLoader(b *Builder, am *assets.Manager) *Loader {
	return &Loader{builder: b, assets: am}
}

// Load resolves name (".obj" is appended when missing), parses it and
// uploads the result. Parse warnings are logged, not returned.
func (l *Loader) Load(name string) (*Mesh, error) {
	if path.Ext(name) == "" {
		name += ".obj"
	}

	data, err := l.assets.Load(name)
	if err != nil {
		if errors.Is(err, assets.ErrNotFound) {
			logger.Error("mesh not found", zap.String("mesh", name))
			return nil, fmt.Errorf("%s: %w", name, ErrMeshNotFound)
		}
		return nil, err
	}

	obj, err := formats.ParseOBJ(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	for _, w := range obj.Warnings {
		logger.Warn("obj: "+w.Msg,
			zap.String("mesh", name),
			zap.Int("line", w.Line),
			zap.Stringer("kind", w.Kind))
	}
	if obj.TriangleCount() == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyMesh)
	}

	m, err := l.builder.CreateMesh(gpu.LayoutPositionNormal, obj.Interleaved(), obj.Indices)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	m.Name = obj.Name
	if m.Name == "" {
		m.Name = name
	}

	logger.Debug("mesh loaded",
		zap.String("mesh", name),
		zap.Int("vertices", len(obj.Vertices)),
		zap.Int("triangles", obj.TriangleCount()),
		zap.Int("warnings", len(obj.Warnings)))
	return m, nil
}
