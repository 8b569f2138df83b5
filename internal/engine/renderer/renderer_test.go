package renderer

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/facet/internal/engine/camera"
	"github.com/Faultbox/facet/internal/engine/gpu"
	"github.com/Faultbox/facet/internal/engine/gpu/gputest"
	"github.com/Faultbox/facet/internal/engine/material"
	"github.com/Faultbox/facet/internal/engine/mesh"
	"github.com/Faultbox/facet/internal/logger"
	"github.com/Faultbox/facet/pkg/math"
)

type fixture struct {
	rec     *gputest.Recorder
	r       *Renderer
	builder *mesh.Builder
	shader  *material.Shader
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	rec := gputest.NewRecorder()
	shader, err := material.NewLibrary(rec, nil).Default()
	if err != nil {
		t.Fatal(err)
	}
	env := &material.Environment{AmbientColor: math.Color{R: 0.2, G: 0.4, B: 0.6, A: 1}, AmbientIntensity: 1}
	return &fixture{
		rec:     rec,
		r:       New(rec, camera.New(), env),
		builder: mesh.NewBuilder(rec, material.New(shader)),
		shader:  shader,
	}
}

func (f *fixture) rect(t *testing.T) *mesh.Mesh {
	t.Helper()
	m, err := f.builder.Rect(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestQueueSetSemantics(t *testing.T) {
	f := newFixture(t)
	a, b := f.rect(t), f.rect(t)

	f.r.Add(a)
	f.r.Add(b)
	f.r.Add(a)
	f.r.Add(nil)
	if f.r.Len() != 2 {
		t.Fatalf("Len = %d, want 2", f.r.Len())
	}
	if q := f.r.Queue(); q[0] != a || q[1] != b {
		t.Error("queue should keep insertion order")
	}

	f.r.Remove(a)
	f.r.Remove(a)
	if f.r.Contains(a) || !f.r.Contains(b) || f.r.Len() != 1 {
		t.Error("Remove should drop only the given mesh")
	}

	q := f.r.Queue()
	q[0] = nil
	if f.r.Queue()[0] != b {
		t.Error("Queue should return a copy")
	}
}

func TestRenderOrder(t *testing.T) {
	f := newFixture(t)
	a, b := f.rect(t), f.rect(t)
	a.Transform = math.Translation(1, 0, 0)
	f.r.Add(a)
	f.r.Add(b)
	f.rec.Reset()

	stats := f.r.Render()
	if stats.Drawn != 2 {
		t.Fatalf("Drawn = %d, want 2", stats.Drawn)
	}

	want := "Clear Bind(1) SetMat4(model) SetMat4(view) SetMat4(projection) " +
		"SetVec3(environment.ambient) SetVec3(material.ambient) SetVec3(material.diffuse) " +
		"SetVec3(material.specular) SetFloat(material.shininess) SetVec3(viewPosition) Draw(1,6)"
	if got := f.rec.Trace(); !strings.HasPrefix(got, want) {
		t.Errorf("trace =\n%s\nwant prefix\n%s", got, want)
	}

	draws := f.rec.Find("Draw")
	if len(draws) != 2 || draws[0].Buffer != a.Buffer() || draws[1].Buffer != b.Buffer() {
		t.Errorf("draws = %v", draws)
	}

	cl := f.rec.Find("Clear")[0]
	if cl.Color != f.r.Environment().BackgroundColor() {
		t.Errorf("clear color = %v", cl.Color)
	}
	if amb, _ := f.rec.Uniform(gpu.UniformEnvironmentAmbient); amb.Vec3 != f.r.Environment().BackgroundColor().RGB32() {
		t.Errorf("environment.ambient = %v", amb.Vec3)
	}
}

func TestRenderSkipsHiddenAndBroken(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	logger.Use(zap.New(core))
	defer logger.InitNop()

	f := newFixture(t)
	hidden, bare, failing, ok := f.rect(t), f.rect(t), f.rect(t), f.rect(t)
	hidden.Visible = false
	bare.Material = nil
	f.rec.FailDraw[failing.Buffer()] = true
	for _, m := range []*mesh.Mesh{hidden, bare, failing, ok} {
		f.r.Add(m)
	}

	for i := 0; i < 3; i++ {
		stats := f.r.Render()
		if stats != (Stats{Drawn: 1, Hidden: 1, Skipped: 2}) {
			t.Fatalf("frame %d stats = %+v", i, stats)
		}
	}
	if draws := f.rec.Find("Draw"); len(draws) != 3 || draws[0].Buffer != ok.Buffer() {
		t.Errorf("only the healthy mesh should draw, got %v", draws)
	}
	if logs.Len() != 2 {
		t.Errorf("expected one warning per broken mesh, got %d", logs.Len())
	}
	if f.r.Frames() != 3 {
		t.Errorf("Frames = %d", f.r.Frames())
	}
}

func TestRenderReleasedMesh(t *testing.T) {
	f := newFixture(t)
	m := f.rect(t)
	f.r.Add(m)
	m.Release()
	if stats := f.r.Render(); stats.Skipped != 1 || stats.Drawn != 0 {
		t.Errorf("released mesh should be skipped, stats %+v", stats)
	}
}

func TestMaterialSwapDoesNotMutate(t *testing.T) {
	f := newFixture(t)
	m := f.rect(t)
	old := m.Material
	oldDiffuse := old.Diffuse

	red := material.New(f.shader)
	red.Diffuse = math.Red
	m.Material = red
	f.r.Add(m)
	f.r.Render()

	if old.Diffuse != oldDiffuse {
		t.Error("previous material was mutated")
	}
	if d, _ := f.rec.Uniform(gpu.UniformMaterialDiffuse); d.Vec3 != [3]float32{1, 0, 0} {
		t.Errorf("material.diffuse = %v, want red", d.Vec3)
	}
}

func TestResize(t *testing.T) {
	f := newFixture(t)
	f.r.Resize(1000, 500)
	if f.r.Camera().Aspect() != 2 {
		t.Errorf("aspect = %v, want 2", f.r.Camera().Aspect())
	}
	if f.rec.Width != 1000 || f.rec.Height != 500 {
		t.Errorf("viewport = %dx%d", f.rec.Width, f.rec.Height)
	}
	f.r.Resize(0, 10)
	if w, h := f.r.Size(); w != 1000 || h != 500 {
		t.Error("zero sizes should be ignored")
	}

	cam := camera.New()
	f.r.SetCamera(cam)
	if cam.Aspect() != 2 {
		t.Error("SetCamera should apply the current aspect")
	}
}
