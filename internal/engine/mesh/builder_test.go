package mesh

import (
	"errors"
	"testing"
	"testing/fstest"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/facet/internal/assets"
	"github.com/Faultbox/facet/internal/engine/gpu"
	"github.com/Faultbox/facet/internal/engine/gpu/gputest"
	"github.com/Faultbox/facet/internal/engine/material"
	"github.com/Faultbox/facet/internal/logger"
	"github.com/Faultbox/facet/pkg/math"
)

func newBuilder() (*Builder, *gputest.Recorder) {
	rec := gputest.NewRecorder()
	return NewBuilder(rec, material.New(nil)), rec
}

func TestCreateMesh(t *testing.T) {
	b, rec := newBuilder()

	m, err := b.CreateMesh(gpu.LayoutPosition, []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, []uint32{0, 1, 2})
	if err != nil {
		t.Fatalf("CreateMesh failed: %v", err)
	}
	if m.Count() != 3 {
		t.Errorf("Count = %d, want 3", m.Count())
	}
	if !m.Visible || m.Transform != math.Identity() || m.Material != b.Material() {
		t.Error("new mesh should be visible with identity transform and default material")
	}
	if rec.Live() != 1 {
		t.Errorf("expected 1 live buffer, got %d", rec.Live())
	}
	if m.Bounds().Max != (math.Vec3{X: 1, Y: 1}) {
		t.Errorf("bounds = %+v", m.Bounds())
	}

	m.Release()
	m.Release()
	if rec.Live() != 0 || len(rec.Find("Release")) != 1 {
		t.Error("Release should free the buffer exactly once")
	}
	if !m.Released() {
		t.Error("Released should report true")
	}
}

func TestCreateMeshErrors(t *testing.T) {
	b, rec := newBuilder()

	if _, err := b.CreateMesh(gpu.LayoutPositionNormal, make([]float32, 9), []uint32{0, 1, 2}); !errors.Is(err, gpu.ErrStride) {
		t.Errorf("expected ErrStride, got %v", err)
	}
	if _, err := b.CreateMesh(gpu.LayoutPosition, nil, nil); !errors.Is(err, gpu.ErrEmptyUpload) {
		t.Errorf("expected ErrEmptyUpload, got %v", err)
	}

	rec.FailUpload = true
	if _, err := b.Rect(1, 1); err == nil {
		t.Error("expected upload error")
	}
	if rec.Live() != 0 {
		t.Error("failed uploads should not leave buffers")
	}
}

func TestBuilderShapes(t *testing.T) {
	b, rec := newBuilder()

	rect, err := b.Rect(1, 1)
	if err != nil || rect.Count() != 6 {
		t.Fatalf("Rect: %v, count %d", err, rect.Count())
	}
	sphere, err := b.Sphere(8, 8, 1)
	if err != nil || sphere.Count() != 336 {
		t.Fatalf("Sphere: %v", err)
	}
	if up := rec.Uploads[sphere.Buffer()]; len(up.Vertices) != 58*6 {
		t.Errorf("sphere uploaded %d floats, want %d", len(up.Vertices), 58*6)
	}
	if _, err := b.Sphere(2, 2, 1); !errors.Is(err, ErrSphereRings) {
		t.Errorf("expected ErrSphereRings, got %v", err)
	}

	other := material.New(nil)
	b.SetMaterial(other)
	cube, err := b.Cuboid(1, 1, 1)
	if err != nil || cube.Count() != 36 {
		t.Fatalf("Cuboid: %v", err)
	}
	if cube.Material != other || rect.Material == other {
		t.Error("SetMaterial should only affect meshes created afterwards")
	}
}

func TestCuboidWarnsOnIgnoredDimensions(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	logger.Use(zap.New(core))
	defer logger.InitNop()

	b, _ := newBuilder()
	m, err := b.Cuboid(2, 3, 4)
	if err != nil {
		t.Fatal(err)
	}
	if m.Bounds().Max != math.Splat(1) {
		t.Errorf("cuboid should stay unit sized, bounds %+v", m.Bounds())
	}
	if logs.FilterMessageSnippet("ignored").Len() != 1 {
		t.Error("expected a warning about ignored dimensions")
	}
}

const triangleOBJ = `o tri
v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
f 1//1 2//1 3//1
vp 1 2
`

func TestLoader(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	logger.Use(zap.New(core))
	defer logger.InitNop()

	am := assets.NewManager()
	am.AddFS("mem", fstest.MapFS{
		"models/tri.obj":   {Data: []byte(triangleOBJ)},
		"models/empty.obj": {Data: []byte("v 0 0 0\nf 1 2 3 4\n")},
	})
	b, rec := newBuilder()
	l := NewLoader(b, am)

	m, err := l.Load("models/tri")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.Count() != 3 || m.Name != "tri" || m.Layout() != gpu.LayoutPositionNormal {
		t.Errorf("loaded mesh: count %d name %q layout %s", m.Count(), m.Name, m.Layout())
	}
	up := rec.Uploads[m.Buffer()]
	if up.Vertices[5] != 1 {
		t.Errorf("normal not interleaved: %v", up.Vertices[:6])
	}
	if logs.Len() == 0 {
		t.Error("parse warnings should be logged")
	}

	if _, err := l.Load("models/missing.obj"); !errors.Is(err, ErrMeshNotFound) {
		t.Errorf("expected ErrMeshNotFound, got %v", err)
	}
	if _, err := l.Load("models/empty.obj"); !errors.Is(err, ErrEmptyMesh) {
		t.Errorf("expected ErrEmptyMesh, got %v", err)
	}
}
