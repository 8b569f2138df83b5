package engine

import (
	"github.com/Faultbox/facet/internal/engine/mesh"
	"github.com/Faultbox/facet/pkg/math"
)

// Model is an updatable scene object wrapping at most one mesh.
//
// Models are registered by identity, so implementations should be pointer
// types.
type Model interface {
	// Mesh returns the drawn mesh, or nil.
	Mesh() *mesh.Mesh
	// Transform returns the model transform. The engine copies it onto the
	// mesh after every update pass.
	Transform() *math.Mat4
	// Disabled models receive no Update calls.
	Disabled() bool
	// Init is called once when the model is instanced.
	Init()
	// Update is called once per frame with the frame time in seconds.
	Update(delta float64)
}

// BaseModel implements Model with no-op hooks. Embed it and override Init or
// Update.
type BaseModel struct {
	mesh      *mesh.Mesh
	transform math.Mat4
	hasXform  bool
	disabled  bool
}

// NewBaseModel wraps m. The model transform starts as the mesh transform.
func NewBaseModel(m *mesh.Mesh) BaseModel {
	b := BaseModel{mesh: m, transform: math.Identity(), hasXform: true}
	if m != nil {
		b.transform = m.Transform
	}
	return b
}

func (b *BaseModel) Mesh() *mesh.Mesh {
	return b.mesh
}

// SetMesh replaces the wrapped mesh. Only takes effect on the render queue
// when set before the model is instanced.
func (b *BaseModel) SetMesh(m *mesh.Mesh) {
	b.mesh = m
}

// Transform returns the model transform. A zero BaseModel starts at identity.
func (b *BaseModel) Transform() *math.Mat4 {
	if !b.hasXform {
		b.transform = math.Identity()
		b.hasXform = true
	}
	return &b.transform
}

func (b *BaseModel) Disabled() bool {
	return b.disabled
}

// SetDisabled toggles update calls.
func (b *BaseModel) SetDisabled(disabled bool) {
	b.disabled = disabled
}

func (b *BaseModel) Init() {}

func (b *BaseModel) Update(float64) {}

var _ Model = (*BaseModel)(nil)
