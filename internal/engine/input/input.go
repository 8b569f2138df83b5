// Package input tracks keyboard and mouse state independent of the window
// backend. Backends translate their native events to Event values and feed
// them to a State through Dispatch.
package input

// Key identifies a keyboard key.
type Key int

// Keys the viewer binds.
const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyE
	KeyR
	KeySpace
	KeyLeftShift
	KeyLeftCtrl
	KeyEscape
	KeyF12
	KeyTab
)

var keyNames = map[Key]string{
	KeyW:         "W",
	KeyA:         "A",
	KeyS:         "S",
	KeyD:         "D",
	KeyQ:         "Q",
	KeyE:         "E",
	KeyR:         "R",
	KeySpace:     "Space",
	KeyLeftShift: "LeftShift",
	KeyLeftCtrl:  "LeftCtrl",
	KeyEscape:    "Escape",
	KeyF12:       "F12",
	KeyTab:       "Tab",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "Unknown"
}

// EventType classifies an input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    Key
	Width  int
	Height int
	MouseX float64
	MouseY float64
	Button uint8
}

// State accumulates events between two BeginFrame calls.
//
// A key is "pressed" on the frame it goes down, "down" while held and
// "released" on the frame it comes up.
type State struct {
	down     map[Key]bool
	pressed  map[Key]bool
	released map[Key]bool
	events   []Event

	mouseX, mouseY float64
	deltaX, deltaY float64
	haveMouse      bool

	quit          bool
	resized       bool
	width, height int
}

// NewState creates an empty input state.
func NewState() *State {
	return &State{
		down:     make(map[Key]bool),
		pressed:  make(map[Key]bool),
		released: make(map[Key]bool),
		events:   make([]Event, 0, 16),
	}
}

// BeginFrame clears the per-frame edges, events and mouse delta. Held keys
// stay down.
func (s *State) BeginFrame() {
	clear(s.pressed)
	clear(s.released)
	s.events = s.events[:0]
	s.deltaX, s.deltaY = 0, 0
	s.resized = false
}

// Dispatch applies one event.
func (s *State) Dispatch(e Event) {
	s.events = append(s.events, e)

	switch e.Type {
	case EventQuit:
		s.quit = true

	case EventWindowResize:
		s.resized = true
		s.width, s.height = e.Width, e.Height

	case EventKeyDown:
		if e.Key == KeyUnknown {
			return
		}
		if !s.down[e.Key] {
			s.pressed[e.Key] = true
		}
		s.down[e.Key] = true
		delete(s.released, e.Key)

	case EventKeyUp:
		if e.Key == KeyUnknown {
			return
		}
		delete(s.down, e.Key)
		delete(s.pressed, e.Key)
		s.released[e.Key] = true

	case EventMouseMove:
		// The first sample only establishes the reference position.
		if s.haveMouse {
			s.deltaX += e.MouseX - s.mouseX
			s.deltaY += e.MouseY - s.mouseY
		}
		s.mouseX, s.mouseY = e.MouseX, e.MouseY
		s.haveMouse = true
	}
}

// IsKeyDown reports whether k is held.
func (s *State) IsKeyDown(k Key) bool {
	return s.down[k]
}

// IsKeyPressed reports whether k went down this frame.
func (s *State) IsKeyPressed(k Key) bool {
	return s.pressed[k]
}

// IsKeyReleased reports whether k came up this frame.
func (s *State) IsKeyReleased(k Key) bool {
	return s.released[k]
}

// MouseDelta returns the cursor movement accumulated this frame.
func (s *State) MouseDelta() (dx, dy float64) {
	return s.deltaX, s.deltaY
}

// MousePosition returns the last cursor position.
func (s *State) MousePosition() (x, y float64) {
	return s.mouseX, s.mouseY
}

// Events returns the events since the last BeginFrame.
func (s *State) Events() []Event {
	return s.events
}

// QuitRequested reports whether a quit event was seen. It is sticky.
func (s *State) QuitRequested() bool {
	return s.quit
}

// Resized returns the new size when the window was resized this frame.
func (s *State) Resized() (width, height int, ok bool) {
	return s.width, s.height, s.resized
}
