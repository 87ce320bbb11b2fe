// Package input defines device-neutral input events and the dispatcher
// that fans them out to listeners.
package input

// EventType identifies an input event.
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
	EventFingerDown
	EventFingerMotion
	EventFingerUp
	EventFocusLost
)

func (t EventType) String() string {
	switch t {
	case EventQuit:
		return "quit"
	case EventWindowResize:
		return "window-resize"
	case EventKeyDown:
		return "key-down"
	case EventKeyUp:
		return "key-up"
	case EventMouseMove:
		return "mouse-move"
	case EventMouseDown:
		return "mouse-down"
	case EventMouseUp:
		return "mouse-up"
	case EventFingerDown:
		return "finger-down"
	case EventFingerMotion:
		return "finger-motion"
	case EventFingerUp:
		return "finger-up"
	case EventFocusLost:
		return "focus-lost"
	default:
		return "none"
	}
}

// Key is a physical key, independent of the windowing layer.
type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEscape
	KeySpace
	KeyTab
	KeyP
	KeyF3
)

// Mouse buttons.
const (
	ButtonLeft   uint8 = 1
	ButtonMiddle uint8 = 2
	ButtonRight  uint8 = 3
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    Key
	Width  int
	Height int

	// Mouse position in window pixels and relative motion since the last event.
	MouseX, MouseY int
	RelX, RelY     int
	Button         uint8

	// Finger position normalized to [0,1] and motion in the same units.
	FingerID int64
	X, Y     float32
	DX, DY   float32
}

// IsKeyPressed reports whether events contain a key-down for key.
func IsKeyPressed(events []Event, key Key) bool {
	for _, e := range events {
		if e.Type == EventKeyDown && e.Key == key {
			return true
		}
	}
	return false
}
