// Package input turns SDL2 events into per-frame input state.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Event types delivered to the application.
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
	EventMouseWheel
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Repeat bool
	Width  int
	Height int
	MouseX int
	MouseY int
	DeltaX int
	DeltaY int
	Wheel  float32
	Button uint8
}

// State is the input seen during one frame plus everything still held.
// It holds no SDL handles and is filled by Input.Update or by tests via Apply.
type State struct {
	held    map[sdl.Scancode]bool
	pressed map[sdl.Scancode]bool
	buttons map[uint8]bool

	MouseX, MouseY int
	DeltaX, DeltaY float32 // Mouse motion this frame, pixels
	Wheel          float32 // Scroll this frame, positive away from the user

	Quit          bool
	Resized       bool
	Width, Height int
}

// NewState returns an empty state.
func NewState() *State {
	return &State{
		held:    make(map[sdl.Scancode]bool),
		pressed: make(map[sdl.Scancode]bool),
		buttons: make(map[uint8]bool),
	}
}

// BeginFrame clears per-frame values and keeps held keys and buttons.
func (s *State) BeginFrame() {
	clear(s.pressed)
	s.DeltaX, s.DeltaY = 0, 0
	s.Wheel = 0
	s.Resized = false
}

// Apply folds one event into the state.
func (s *State) Apply(e Event) {
	switch e.Type {
	case EventQuit:
		s.Quit = true
	case EventWindowResize:
		s.Resized = true
		s.Width, s.Height = e.Width, e.Height
	case EventKeyDown:
		if !e.Repeat {
			s.pressed[e.Key] = true
		}
		s.held[e.Key] = true
	case EventKeyUp:
		delete(s.held, e.Key)
	case EventMouseMove:
		s.MouseX, s.MouseY = e.MouseX, e.MouseY
		s.DeltaX += float32(e.DeltaX)
		s.DeltaY += float32(e.DeltaY)
	case EventMouseDown:
		s.buttons[e.Button] = true
	case EventMouseUp:
		delete(s.buttons, e.Button)
	case EventMouseWheel:
		s.Wheel += e.Wheel
	}
}

// Held reports whether key is down.
func (s *State) Held(key sdl.Scancode) bool {
	return s.held[key]
}

// Pressed reports whether key went down this frame. Auto-repeat is ignored.
func (s *State) Pressed(key sdl.Scancode) bool {
	return s.pressed[key]
}

// Button reports whether a mouse button is down.
func (s *State) Button(button uint8) bool {
	return s.buttons[button]
}

// Axis returns +1, -1 or 0 from a pair of held keys.
func (s *State) Axis(positive, negative sdl.Scancode) float32 {
	var v float32
	if s.held[positive] {
		v++
	}
	if s.held[negative] {
		v--
	}
	return v
}

// Input polls SDL and maintains a State.
type Input struct {
	state *State
}

// New creates a new input handler.
func New() *Input {
	return &Input{state: NewState()}
}

// Update polls SDL events into the state. Returns true if the app should quit.
func (i *Input) Update() bool {
	i.state.BeginFrame()

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if e, ok := convert(event); ok {
			i.state.Apply(e)
		}
	}
	return i.state.Quit
}

func convert(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return Event{Type: EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		}

	case *sdl.KeyboardEvent:
		t := EventKeyDown
		if e.Type == sdl.KEYUP {
			t = EventKeyUp
		}
		return Event{Type: t, Key: e.Keysym.Scancode, Repeat: e.Repeat != 0}, true

	case *sdl.MouseMotionEvent:
		return Event{
			Type:   EventMouseMove,
			MouseX: int(e.X),
			MouseY: int(e.Y),
			DeltaX: int(e.XRel),
			DeltaY: int(e.YRel),
		}, true

	case *sdl.MouseButtonEvent:
		t := EventMouseDown
		if e.Type == sdl.MOUSEBUTTONUP {
			t = EventMouseUp
		}
		return Event{Type: t, MouseX: int(e.X), MouseY: int(e.Y), Button: e.Button}, true

	case *sdl.MouseWheelEvent:
		wheel := float32(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			wheel = -wheel
		}
		return Event{Type: EventMouseWheel, Wheel: wheel}, true
	}
	return Event{}, false
}

// State returns the state built by the last Update.
func (i *Input) State() *State {
	return i.state
}
