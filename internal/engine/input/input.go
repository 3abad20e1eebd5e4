// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies a processed input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
}

// Input collects one frame of events plus the held-key and drag state.
type Input struct {
	events []Event
	keys   []uint8

	dragging     bool
	dragX, dragY float32
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events for this frame.
// Returns true if the window should close.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	i.dragX, i.dragY = 0, 0
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				continue
			}
			if e.Type == sdl.KEYDOWN {
				i.events = append(i.events, Event{Type: EventKeyDown, Key: e.Keysym.Scancode})
			} else if e.Type == sdl.KEYUP {
				i.events = append(i.events, Event{Type: EventKeyUp, Key: e.Keysym.Scancode})
			}

		case *sdl.MouseMotionEvent:
			if i.dragging {
				i.dragX += float32(e.XRel)
				i.dragY += float32(e.YRel)
			}

		case *sdl.MouseButtonEvent:
			if e.Button == sdl.BUTTON_LEFT {
				i.dragging = e.Type == sdl.MOUSEBUTTONDOWN
			}
		}
	}

	// Backed by SDL's internal array, refreshed by PollEvent.
	i.keys = sdl.GetKeyboardState()

	return quit
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed reports whether a key went down this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

// IsKeyHeld reports whether a key is currently down.
func (i *Input) IsKeyHeld(scancode sdl.Scancode) bool {
	return int(scancode) < len(i.keys) && i.keys[scancode] != 0
}

// Axis returns +1 while pos is held, -1 while neg is held, 0 for both or neither.
func (i *Input) Axis(pos, neg sdl.Scancode) float32 {
	var v float32
	if i.IsKeyHeld(pos) {
		v++
	}
	if i.IsKeyHeld(neg) {
		v--
	}
	return v
}

// Drag returns the accumulated mouse motion this frame while the left
// button was held.
func (i *Input) Drag() (dx, dy float32) {
	return i.dragX, i.dragY
}
