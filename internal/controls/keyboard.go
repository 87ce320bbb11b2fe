package controls

import (
	"github.com/Faultbox/spaces/internal/cell"
	"github.com/Faultbox/spaces/internal/engine/input"
	"github.com/Faultbox/spaces/pkg/math"
)

// Keyboard derives movement intent from WASD and the arrow keys.
type Keyboard struct {
	pressed map[input.Key]bool
	intent  *cell.Cell[math.Vec2]
}

// NewKeyboard creates a keyboard provider with zero intent.
func NewKeyboard() *Keyboard {
	return &Keyboard{
		pressed: make(map[input.Key]bool),
		intent:  cell.New(math.Vec2{}),
	}
}

// HandleEvent updates the held-key state. Call from the dispatch goroutine.
func (k *Keyboard) HandleEvent(e input.Event) {
	switch e.Type {
	case input.EventKeyDown:
		k.pressed[e.Key] = true
	case input.EventKeyUp:
		delete(k.pressed, e.Key)
	case input.EventFocusLost:
		clear(k.pressed)
	default:
		return
	}
	k.intent.Store(k.compute())
}

func (k *Keyboard) compute() math.Vec2 {
	var v math.Vec2
	if k.pressed[input.KeyW] || k.pressed[input.KeyUp] {
		v.Y++
	}
	if k.pressed[input.KeyS] || k.pressed[input.KeyDown] {
		v.Y--
	}
	if k.pressed[input.KeyD] || k.pressed[input.KeyRight] {
		v.X++
	}
	if k.pressed[input.KeyA] || k.pressed[input.KeyLeft] {
		v.X--
	}
	return v.ClampLength(1)
}

// Intent returns the latest movement intent.
func (k *Keyboard) Intent() math.Vec2 {
	return k.intent.Load()
}
