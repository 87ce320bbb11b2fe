// Package sdlinput polls SDL2 and translates its events into input.Event.
package sdlinput

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/spaces/internal/engine/input"
)

// touchMouseID is the mouse ID SDL uses for mouse events it synthesizes
// from touches. Those are dropped so touch is not handled twice.
const touchMouseID = ^uint32(0)

var scancodes = map[sdl.Scancode]input.Key{
	sdl.SCANCODE_W:      input.KeyW,
	sdl.SCANCODE_A:      input.KeyA,
	sdl.SCANCODE_S:      input.KeyS,
	sdl.SCANCODE_D:      input.KeyD,
	sdl.SCANCODE_UP:     input.KeyUp,
	sdl.SCANCODE_DOWN:   input.KeyDown,
	sdl.SCANCODE_LEFT:   input.KeyLeft,
	sdl.SCANCODE_RIGHT:  input.KeyRight,
	sdl.SCANCODE_ESCAPE: input.KeyEscape,
	sdl.SCANCODE_SPACE:  input.KeySpace,
	sdl.SCANCODE_TAB:    input.KeyTab,
	sdl.SCANCODE_P:      input.KeyP,
	sdl.SCANCODE_F3:     input.KeyF3,
}

// Poller handles SDL event polling.
type Poller struct {
	events []input.Event
}

// New creates a new poller.
func New() *Poller {
	return &Poller{
		events: make([]input.Event, 0, 16),
	}
}

// Update polls SDL events and converts them to input events.
// Returns true if the host should quit.
func (p *Poller) Update() bool {
	p.events = p.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			p.events = append(p.events, input.Event{Type: input.EventQuit})
			return true

		case *sdl.WindowEvent:
			switch e.Event {
			case sdl.WINDOWEVENT_RESIZED:
				p.events = append(p.events, input.Event{
					Type:   input.EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			case sdl.WINDOWEVENT_FOCUS_LOST:
				// Key-up events for keys held at this point go to another window.
				p.events = append(p.events, input.Event{Type: input.EventFocusLost})
			}

		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				continue
			}
			key, ok := scancodes[e.Keysym.Scancode]
			if !ok {
				continue
			}
			if e.Type == sdl.KEYDOWN {
				p.events = append(p.events, input.Event{Type: input.EventKeyDown, Key: key})
			} else if e.Type == sdl.KEYUP {
				p.events = append(p.events, input.Event{Type: input.EventKeyUp, Key: key})
			}

		case *sdl.MouseMotionEvent:
			if e.Which == touchMouseID {
				continue
			}
			p.events = append(p.events, input.Event{
				Type:   input.EventMouseMove,
				MouseX: int(e.X),
				MouseY: int(e.Y),
				RelX:   int(e.XRel),
				RelY:   int(e.YRel),
			})

		case *sdl.MouseButtonEvent:
			if e.Which == touchMouseID {
				continue
			}
			ev := input.Event{
				MouseX: int(e.X),
				MouseY: int(e.Y),
				Button: e.Button,
			}
			if e.Type == sdl.MOUSEBUTTONDOWN {
				ev.Type = input.EventMouseDown
			} else {
				ev.Type = input.EventMouseUp
			}
			p.events = append(p.events, ev)

		case *sdl.TouchFingerEvent:
			ev := input.Event{
				FingerID: int64(e.FingerID),
				X:        e.X,
				Y:        e.Y,
				DX:       e.DX,
				DY:       e.DY,
			}
			switch e.Type {
			case sdl.FINGERDOWN:
				ev.Type = input.EventFingerDown
			case sdl.FINGERMOTION:
				ev.Type = input.EventFingerMotion
			case sdl.FINGERUP:
				ev.Type = input.EventFingerUp
			default:
				continue
			}
			p.events = append(p.events, ev)
		}
	}

	return false
}

// Events returns the events from the last Update.
func (p *Poller) Events() []input.Event {
	return p.events
}

// TouchDeviceCount returns the number of touch devices SDL knows about.
func TouchDeviceCount() int {
	return sdl.GetNumTouchDevices()
}

// SetPointerLock captures or releases the mouse pointer.
func SetPointerLock(locked bool) {
	sdl.SetRelativeMouseMode(locked)
}
