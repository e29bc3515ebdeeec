// Package input handles SDL2 input events and keyboard/mouse state.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a processed input event.
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
	Key    sdl.Scancode
	Width  int
	Height int
	MouseX int
	MouseY int
	Button uint8
}

// Input handles all input processing.
type Input struct {
	events []Event
	held   map[sdl.Scancode]bool

	// Relative mouse motion accumulated during the last Update.
	mouseDX, mouseDY int32
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
		held:   make(map[sdl.Scancode]bool),
	}
}

// Update polls SDL events and converts them to game events.
// Returns true if the game should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0] // Clear previous events
	i.mouseDX, i.mouseDY = 0, 0

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if i.handle(event) {
			return true
		}
	}
	return false
}

func (i *Input) handle(event sdl.Event) bool {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		i.events = append(i.events, Event{Type: EventQuit})
		return true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			i.events = append(i.events, Event{
				Type:   EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			})
		}

	case *sdl.KeyboardEvent:
		key := e.Keysym.Scancode
		switch e.Type {
		case sdl.KEYDOWN:
			i.held[key] = true
			if e.Repeat == 0 {
				i.events = append(i.events, Event{Type: EventKeyDown, Key: key})
			}
		case sdl.KEYUP:
			delete(i.held, key)
			i.events = append(i.events, Event{Type: EventKeyUp, Key: key})
		}

	case *sdl.MouseMotionEvent:
		i.mouseDX += e.XRel
		i.mouseDY += e.YRel
		i.events = append(i.events, Event{
			Type:   EventMouseMove,
			MouseX: int(e.X),
			MouseY: int(e.Y),
		})

	case *sdl.MouseButtonEvent:
		t := EventMouseUp
		if e.Type == sdl.MOUSEBUTTONDOWN {
			t = EventMouseDown
		}
		i.events = append(i.events, Event{
			Type:   t,
			MouseX: int(e.X),
			MouseY: int(e.Y),
			Button: e.Button,
		})
	}
	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

// IsKeyDown reports whether a key is currently held.
func (i *Input) IsKeyDown(scancode sdl.Scancode) bool {
	return i.held[scancode]
}

// Axis returns 1 if positive is held, -1 if negative is held, 0 for both or neither.
func (i *Input) Axis(negative, positive sdl.Scancode) float32 {
	var v float32
	if i.held[positive] {
		v++
	}
	if i.held[negative] {
		v--
	}
	return v
}

// MouseDelta returns the relative mouse motion from the last Update.
func (i *Input) MouseDelta() (dx, dy float32) {
	return float32(i.mouseDX), float32(i.mouseDY)
}
