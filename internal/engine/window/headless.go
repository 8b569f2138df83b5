package window

import "github.com/Faultbox/facet/internal/engine/input"

// Headless is a Surface without an OS window. It closes itself after a
// fixed number of frames; zero frames means it stays open until Close.
type Headless struct {
	Width, Height int
	Frames        int

	title  string
	swaps  int
	closed bool
	input  *input.State
}

// NewHeadless creates a headless surface.
func NewHeadless(width, height, frames int) *Headless {
	return &Headless{Width: width, Height: height, Frames: frames, input: input.NewState()}
}

func (h *Headless) ShouldClose() bool {
	return h.closed || (h.Frames > 0 && h.swaps >= h.Frames)
}

func (h *Headless) SwapBuffers() { h.swaps++ }

func (h *Headless) PollEvents() { h.input.BeginFrame() }

func (h *Headless) Size() (int, int) { return h.Width, h.Height }

func (h *Headless) SetTitle(title string) { h.title = title }

// Title returns the last title set.
func (h *Headless) Title() string { return h.title }

// Swaps returns the number of presented frames.
func (h *Headless) Swaps() int { return h.swaps }

func (h *Headless) Input() *input.State { return h.input }

func (h *Headless) Close() { h.closed = true }
