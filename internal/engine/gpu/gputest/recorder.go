// Package gputest provides a gpu.Device that records calls for tests.
package gputest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Faultbox/facet/internal/engine/gpu"
	"github.com/Faultbox/facet/pkg/math"
)

// Call is one recorded device or program call.
type Call struct {
	Op      string // Upload, Compile, Clear, Draw, Viewport, Release, Bind, SetMat4, SetVec3, SetFloat
	Buffer  gpu.Buffer
	Program int
	Name    string
	Count   int
	Mat4    [16]float32
	Vec3    [3]float32
	Float   float32
	Color   math.Color
}

func (c Call) String() string {
	switch c.Op {
	case "Draw", "Release":
		return fmt.Sprintf("%s(%d,%d)", c.Op, c.Buffer, c.Count)
	case "SetMat4", "SetVec3", "SetFloat":
		return fmt.Sprintf("%s(%s)", c.Op, c.Name)
	case "Bind":
		return fmt.Sprintf("Bind(%d)", c.Program)
	default:
		return c.Op
	}
}

// Upload is the recorded payload of an Upload call.
type Upload struct {
	Layout   gpu.VertexLayout
	Vertices []float32
	Indices  []uint32
}

// Recorder is a gpu.Device that keeps every call in order.
type Recorder struct {
	Calls   []Call
	Uploads map[gpu.Buffer]Upload

	// FailDraw makes Draw return an error for these buffers.
	FailDraw map[gpu.Buffer]bool
	// FailUpload makes every Upload fail.
	FailUpload bool
	// FailCompile makes every CompileProgram fail.
	FailCompile bool

	next     gpu.Buffer
	programs int
	bound    *Program
	Width    int
	Height   int
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		Uploads:  make(map[gpu.Buffer]Upload),
		FailDraw: make(map[gpu.Buffer]bool),
	}
}

// Upload records the data and returns a fresh handle.
func (r *Recorder) Upload(layout gpu.VertexLayout, vertices []float32, indices []uint32) (gpu.Buffer, error) {
	if r.FailUpload {
		return 0, errors.New("gputest: upload failed")
	}
	if err := layout.Validate(vertices, indices); err != nil {
		return 0, err
	}
	r.next++
	r.Uploads[r.next] = Upload{
		Layout:   layout,
		Vertices: append([]float32(nil), vertices...),
		Indices:  append([]uint32(nil), indices...),
	}
	r.Calls = append(r.Calls, Call{Op: "Upload", Buffer: r.next, Count: len(indices)})
	return r.next, nil
}

// CompileProgram returns a recording program.
func (r *Recorder) CompileProgram(vertexSrc, fragmentSrc string) (gpu.Program, error) {
	if r.FailCompile {
		return nil, errors.New("gputest: compile failed")
	}
	r.programs++
	r.Calls = append(r.Calls, Call{Op: "Compile", Program: r.programs})
	return &Program{rec: r, ID: r.programs}, nil
}

// Clear records the clear color.
func (r *Recorder) Clear(c math.Color) {
	r.Calls = append(r.Calls, Call{Op: "Clear", Color: c})
}

// Draw records a draw of a live buffer.
func (r *Recorder) Draw(buf gpu.Buffer, count int) error {
	if _, ok := r.Uploads[buf]; !ok {
		return gpu.ErrInvalidBuffer
	}
	if r.FailDraw[buf] {
		return fmt.Errorf("gputest: draw %d failed", buf)
	}
	if r.bound == nil {
		return gpu.ErrNoProgram
	}
	r.Calls = append(r.Calls, Call{Op: "Draw", Buffer: buf, Count: count, Program: r.bound.ID})
	return nil
}

// Viewport records the size.
func (r *Recorder) Viewport(width, height int) {
	r.Width, r.Height = width, height
	r.Calls = append(r.Calls, Call{Op: "Viewport", Count: width * height})
}

// Release forgets the buffer.
func (r *Recorder) Release(buf gpu.Buffer) {
	if _, ok := r.Uploads[buf]; !ok {
		return
	}
	delete(r.Uploads, buf)
	r.Calls = append(r.Calls, Call{Op: "Release", Buffer: buf})
}

// Live returns the number of unreleased buffers.
func (r *Recorder) Live() int {
	return len(r.Uploads)
}

// Ops returns the op names of all calls, in order.
func (r *Recorder) Ops() []string {
	ops := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		ops[i] = c.Op
	}
	return ops
}

// Find returns the calls with the given op.
func (r *Recorder) Find(op string) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Uniform returns the last value recorded for a uniform name.
func (r *Recorder) Uniform(name string) (Call, bool) {
	for i := len(r.Calls) - 1; i >= 0; i-- {
		if r.Calls[i].Name == name {
			return r.Calls[i], true
		}
	}
	return Call{}, false
}

// Reset drops the recorded calls but keeps uploads.
func (r *Recorder) Reset() {
	r.Calls = nil
}

// Trace returns the calls as a single readable line.
func (r *Recorder) Trace() string {
	parts := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// Program records uniform writes on its recorder.
type Program struct {
	rec      *Recorder
	ID       int
	Released bool
}

func (p *Program) Bind() {
	p.rec.bound = p
	p.rec.Calls = append(p.rec.Calls, Call{Op: "Bind", Program: p.ID})
}

func (p *Program) SetMat4(name string, m [16]float32) {
	p.rec.Calls = append(p.rec.Calls, Call{Op: "SetMat4", Program: p.ID, Name: name, Mat4: m})
}

func (p *Program) SetVec3(name string, v [3]float32) {
	p.rec.Calls = append(p.rec.Calls, Call{Op: "SetVec3", Program: p.ID, Name: name, Vec3: v})
}

func (p *Program) SetFloat(name string, f float32) {
	p.rec.Calls = append(p.rec.Calls, Call{Op: "SetFloat", Program: p.ID, Name: name, Float: f})
}

func (p *Program) Release() {
	p.Released = true
	if p.rec.bound == p {
		p.rec.bound = nil
	}
}

var _ gpu.Device = (*Recorder)(nil)
