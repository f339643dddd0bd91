package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestStateKeys(t *testing.T) {
	s := NewState()

	s.BeginFrame()
	s.Apply(Event{Type: EventKeyDown, Key: sdl.SCANCODE_W})
	if !s.Pressed(sdl.SCANCODE_W) || !s.Held(sdl.SCANCODE_W) {
		t.Fatal("expected W pressed and held")
	}

	// Next frame: still held, no longer freshly pressed.
	s.BeginFrame()
	s.Apply(Event{Type: EventKeyDown, Key: sdl.SCANCODE_W, Repeat: true})
	if s.Pressed(sdl.SCANCODE_W) {
		t.Error("auto-repeat should not count as a press")
	}
	if !s.Held(sdl.SCANCODE_W) {
		t.Error("expected W still held")
	}

	s.Apply(Event{Type: EventKeyUp, Key: sdl.SCANCODE_W})
	if s.Held(sdl.SCANCODE_W) {
		t.Error("expected W released")
	}
}

func TestStateAxis(t *testing.T) {
	s := NewState()
	s.Apply(Event{Type: EventKeyDown, Key: sdl.SCANCODE_D})

	if got := s.Axis(sdl.SCANCODE_D, sdl.SCANCODE_A); got != 1 {
		t.Errorf("expected 1, got %v", got)
	}

	s.Apply(Event{Type: EventKeyDown, Key: sdl.SCANCODE_A})
	if got := s.Axis(sdl.SCANCODE_D, sdl.SCANCODE_A); got != 0 {
		t.Errorf("expected 0 with both held, got %v", got)
	}
}

func TestStateMouseAccumulates(t *testing.T) {
	s := NewState()
	s.BeginFrame()
	s.Apply(Event{Type: EventMouseMove, MouseX: 10, MouseY: 10, DeltaX: 3, DeltaY: -1})
	s.Apply(Event{Type: EventMouseMove, MouseX: 12, MouseY: 9, DeltaX: 2, DeltaY: -1})
	s.Apply(Event{Type: EventMouseWheel, Wheel: 1})
	s.Apply(Event{Type: EventMouseDown, Button: sdl.BUTTON_LEFT})

	if s.DeltaX != 5 || s.DeltaY != -2 {
		t.Errorf("expected delta (5,-2), got (%v,%v)", s.DeltaX, s.DeltaY)
	}
	if s.MouseX != 12 || s.MouseY != 9 {
		t.Errorf("expected position (12,9), got (%d,%d)", s.MouseX, s.MouseY)
	}
	if s.Wheel != 1 {
		t.Errorf("expected wheel 1, got %v", s.Wheel)
	}

	s.BeginFrame()
	if s.DeltaX != 0 || s.Wheel != 0 {
		t.Error("expected per-frame values to reset")
	}
	if !s.Button(sdl.BUTTON_LEFT) {
		t.Error("expected left button still held")
	}
}

func TestStateWindowEvents(t *testing.T) {
	s := NewState()
	s.Apply(Event{Type: EventWindowResize, Width: 800, Height: 600})
	if !s.Resized || s.Width != 800 || s.Height != 600 {
		t.Errorf("expected resize to 800x600, got %v %dx%d", s.Resized, s.Width, s.Height)
	}

	s.Apply(Event{Type: EventQuit})
	if !s.Quit {
		t.Error("expected quit")
	}
}
