package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/facet/internal/engine/camera"
	"github.com/Faultbox/facet/internal/engine/gpu/gputest"
	"github.com/Faultbox/facet/internal/engine/input"
	"github.com/Faultbox/facet/internal/engine/material"
	"github.com/Faultbox/facet/internal/engine/mesh"
	"github.com/Faultbox/facet/internal/engine/renderer"
	"github.com/Faultbox/facet/internal/engine/window"
	"github.com/Faultbox/facet/internal/logger"
	"github.com/Faultbox/facet/pkg/math"
)

// fakeClock advances by step on every read.
type fakeClock struct {
	t    time.Time
	step time.Duration
}

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

type harness struct {
	rec     *gputest.Recorder
	surface *window.Headless
	builder *mesh.Builder
	eng     *Engine
}

func newHarness(t *testing.T, frames int, opts ...Option) *harness {
	t.Helper()
	rec := gputest.NewRecorder()
	shader, err := material.NewLibrary(rec, nil).Default()
	if err != nil {
		t.Fatal(err)
	}
	surface := window.NewHeadless(320, 240, frames)
	r := renderer.New(rec, camera.New(), material.NewEnvironment())
	clock := &fakeClock{t: time.Unix(0, 0), step: 16 * time.Millisecond}
	opts = append([]Option{WithClock(clock.Now)}, opts...)
	return &harness{
		rec:     rec,
		surface: surface,
		builder: mesh.NewBuilder(rec, material.New(shader)),
		eng:     New(r, surface, opts...),
	}
}

func (h *harness) mesh(t *testing.T) *mesh.Mesh {
	t.Helper()
	m, err := h.builder.Cuboid(1, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

// recorder is a model that logs lifecycle calls into a shared slice.
type recorder struct {
	BaseModel
	name    string
	log     *[]string
	inits   int
	deltas  []float64
	onFrame func()
}

func (r *recorder) Init() {
	r.inits++
	*r.log = append(*r.log, "init:"+r.name)
}

func (r *recorder) Update(delta float64) {
	r.deltas = append(r.deltas, delta)
	*r.log = append(*r.log, "update:"+r.name)
	if r.onFrame != nil {
		r.onFrame()
	}
}

type panicker struct {
	BaseModel
}

func (p *panicker) Update(float64) {
	panic("boom")
}

func TestStateMachine(t *testing.T) {
	h := newHarness(t, 0)
	var log []string
	m := &recorder{name: "a", log: &log}

	if err := h.eng.Instance(m); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Instance before Init: %v", err)
	}
	if err := h.eng.Tick(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Tick before Init: %v", err)
	}
	if err := h.eng.Run(context.Background()); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Run before Init: %v", err)
	}
	if err := h.eng.Free(m); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Free before Init: %v", err)
	}

	if err := h.eng.Init(); err != nil {
		t.Fatal(err)
	}
	if err := h.eng.Init(); !errors.Is(err, ErrAlreadyInitialized) {
		t.Errorf("second Init: %v", err)
	}
	if h.eng.State() != StateRunning {
		t.Errorf("state = %s", h.eng.State())
	}
	if h.rec.Width != 320 || h.rec.Height != 240 {
		t.Error("Init should size the viewport to the surface")
	}

	h.eng.Shutdown()
	if h.eng.State() != StateClosed || !errors.Is(h.eng.Tick(), ErrClosed) {
		t.Error("Tick after Shutdown should fail")
	}
	if err := h.eng.Init(); !errors.Is(err, ErrClosed) {
		t.Errorf("Init after Shutdown: %v", err)
	}
	if err := h.eng.Run(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("Run after Shutdown: %v", err)
	}
	if err := h.eng.Instance(m); !errors.Is(err, ErrClosed) {
		t.Errorf("Instance after Shutdown: %v", err)
	}
	if err := h.eng.Free(m); !errors.Is(err, ErrClosed) {
		t.Errorf("Free after Shutdown: %v", err)
	}
}

func TestInstanceAndFree(t *testing.T) {
	h := newHarness(t, 0)
	if err := h.eng.Init(); err != nil {
		t.Fatal(err)
	}
	var log []string
	msh := h.mesh(t)
	m := &recorder{BaseModel: NewBaseModel(msh), name: "a", log: &log}

	if err := h.eng.Instance(m); err != nil {
		t.Fatal(err)
	}
	if err := h.eng.Instance(m); !errors.Is(err, ErrDuplicateModel) {
		t.Errorf("duplicate Instance: %v", err)
	}
	if m.inits != 1 {
		t.Errorf("Init called %d times, want 1", m.inits)
	}
	if !h.eng.Renderer().Contains(msh) {
		t.Error("mesh should be queued")
	}

	empty := &recorder{name: "empty", log: &log}
	if err := h.eng.Instance(empty); err != nil {
		t.Fatal(err)
	}
	if h.eng.Renderer().Len() != 1 {
		t.Error("a model without mesh should not queue anything")
	}

	if err := h.eng.Free(m); err != nil {
		t.Fatal(err)
	}
	if err := h.eng.Free(m); err != nil {
		t.Errorf("second Free should be a no-op, got %v", err)
	}
	if h.eng.Renderer().Contains(msh) || len(h.eng.Models()) != 1 {
		t.Error("Free should drop the model and its mesh")
	}
	if !msh.Released() || h.rec.Live() != 0 {
		t.Error("Free should release the mesh buffer")
	}
}

func TestTickOrder(t *testing.T) {
	var log []string
	h := newHarness(t, 0, WithFrameHook(func(float64) { log = append(log, "hook") }))
	if err := h.eng.Init(); err != nil {
		t.Fatal(err)
	}

	a := &recorder{BaseModel: NewBaseModel(h.mesh(t)), name: "a", log: &log}
	b := &recorder{name: "b", log: &log}
	c := &recorder{name: "c", log: &log}
	c.SetDisabled(true)
	for _, m := range []Model{a, b, c} {
		if err := h.eng.Instance(m); err != nil {
			t.Fatal(err)
		}
	}
	log = nil
	h.rec.Reset()

	if err := h.eng.Tick(); err != nil {
		t.Fatal(err)
	}

	want := []string{"update:a", "update:b", "hook"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("log[%d] = %q, want %q", i, log[i], want[i])
		}
	}
	if len(a.deltas) != 1 || a.deltas[0] != 0.016 {
		t.Errorf("delta = %v, want 0.016", a.deltas)
	}
	if ops := h.rec.Ops(); ops[0] != "Clear" || len(h.rec.Find("Draw")) != 1 {
		t.Errorf("render ops = %v", ops)
	}
	if h.surface.Swaps() != 1 || h.eng.Frames() != 1 {
		t.Error("Tick should present exactly one frame")
	}
}

func TestTransformSync(t *testing.T) {
	h := newHarness(t, 0)
	if err := h.eng.Init(); err != nil {
		t.Fatal(err)
	}
	msh := h.mesh(t)
	var log []string
	m := &recorder{BaseModel: NewBaseModel(msh), name: "a", log: &log}
	m.onFrame = func() { m.Transform().Translate(math.V3(1, 0, 0)) }
	if err := h.eng.Instance(m); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if err := h.eng.Tick(); err != nil {
			t.Fatal(err)
		}
	}
	if got := msh.Transform.Origin(); got != math.V3(3, 0, 0) {
		t.Errorf("mesh origin = %v, want (3,0,0)", got)
	}
}

func TestPanickingModelIsSkipped(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	logger.Use(zap.New(core))
	defer logger.InitNop()

	h := newHarness(t, 0)
	if err := h.eng.Init(); err != nil {
		t.Fatal(err)
	}
	var log []string
	bad := &panicker{}
	good := &recorder{name: "good", log: &log}
	if err := h.eng.Instance(bad); err != nil {
		t.Fatal(err)
	}
	if err := h.eng.Instance(good); err != nil {
		t.Fatal(err)
	}

	if err := h.eng.Tick(); err != nil {
		t.Fatal(err)
	}
	if len(good.deltas) != 1 {
		t.Error("models after a panicking one should still update")
	}
	if logs.FilterMessage("model update panicked").Len() != 1 {
		t.Error("panic should be logged")
	}
}

func TestUpdateMayFreeModels(t *testing.T) {
	h := newHarness(t, 0)
	if err := h.eng.Init(); err != nil {
		t.Fatal(err)
	}
	var log []string
	victim := &recorder{BaseModel: NewBaseModel(h.mesh(t)), name: "victim", log: &log}
	killer := &recorder{name: "killer", log: &log}
	killer.onFrame = func() {
		if err := h.eng.Free(victim); err != nil {
			t.Errorf("Free from Update: %v", err)
		}
	}

	_ = h.eng.Instance(killer)
	_ = h.eng.Instance(victim)
	if err := h.eng.Tick(); err != nil {
		t.Fatal(err)
	}
	if len(h.eng.Models()) != 1 || h.eng.Renderer().Len() != 0 {
		t.Error("victim should be gone after the frame")
	}
	if len(victim.deltas) != 0 {
		t.Errorf("victim updated %d times after being freed", len(victim.deltas))
	}
}

func TestRunUntilSurfaceCloses(t *testing.T) {
	var post int
	h := newHarness(t, 5, WithPostRenderHook(func(float64) { post++ }))
	if err := h.eng.Init(); err != nil {
		t.Fatal(err)
	}
	msh := h.mesh(t)
	m := &recorder{BaseModel: NewBaseModel(msh), name: "a", log: new([]string)}
	_ = h.eng.Instance(m)

	if err := h.eng.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if h.eng.Frames() != 5 || post != 5 {
		t.Errorf("frames = %d, post hooks = %d, want 5", h.eng.Frames(), post)
	}
	if h.eng.State() != StateClosed || !msh.Released() {
		t.Error("Run should shut down and release meshes")
	}
}

func TestRunStopsOnContext(t *testing.T) {
	h := newHarness(t, 0)
	if err := h.eng.Init(); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	var log []string
	m := &recorder{name: "a", log: &log}
	m.onFrame = func() {
		if len(m.deltas) == 3 {
			cancel()
		}
	}
	_ = h.eng.Instance(m)

	if err := h.eng.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if h.eng.Frames() != 3 {
		t.Errorf("frames = %d, want 3", h.eng.Frames())
	}
}

func TestResizeFromInput(t *testing.T) {
	h := newHarness(t, 0)
	if err := h.eng.Init(); err != nil {
		t.Fatal(err)
	}
	h.surface.Input().Dispatch(input.Event{Type: input.EventWindowResize, Width: 800, Height: 400})
	if err := h.eng.Tick(); err != nil {
		t.Fatal(err)
	}
	if h.eng.Renderer().Camera().Aspect() != 2 {
		t.Errorf("aspect = %v, want 2", h.eng.Renderer().Camera().Aspect())
	}
}

func TestBaseModelZeroValue(t *testing.T) {
	var b BaseModel
	if *b.Transform() != math.Identity() {
		t.Error("zero BaseModel should start at identity")
	}
	if b.Mesh() != nil || b.Disabled() {
		t.Error("zero BaseModel should be enabled without mesh")
	}
}
