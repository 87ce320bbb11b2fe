package controls

import (
	"github.com/Faultbox/spaces/internal/cell"
	"github.com/Faultbox/spaces/internal/engine/input"
	"github.com/Faultbox/spaces/pkg/math"
)

// Joystick is a virtual on-screen stick. Its origin is wherever the finger
// first lands on the left half of the screen; the offset from the origin,
// divided by the radius and clamped to the unit disc, is the intent.
type Joystick struct {
	radius float32
	yScale float32
	finger int64
	active bool
	origin math.Vec2
	intent *cell.Cell[math.Vec2]
}

// NewJoystick creates a joystick with the given radius in normalized
// screen units.
func NewJoystick(radius float32) *Joystick {
	if radius <= 0 {
		radius = 0.08
	}
	return &Joystick{
		radius: radius,
		yScale: 1,
		intent: cell.New(math.Vec2{}),
	}
}

// SetAspect sets the viewport width over height. The radius is measured in
// screen widths on both axes.
func (j *Joystick) SetAspect(aspect float32) {
	j.yScale = heightScale(aspect)
}

// HandleEvent processes finger events. Call from the dispatch goroutine.
func (j *Joystick) HandleEvent(e input.Event) {
	switch e.Type {
	case input.EventWindowResize:
		j.yScale = resizeScale(e, j.yScale)
	case input.EventFingerDown:
		if !j.active && e.X < touchSplit {
			j.active = true
			j.finger = e.FingerID
			j.origin = math.Vec2{X: e.X, Y: e.Y}
			j.intent.Store(math.Vec2{})
		}
	case input.EventFingerMotion:
		if !j.active || e.FingerID != j.finger {
			return
		}
		off := math.Vec2{X: e.X, Y: e.Y}.Sub(j.origin)
		off.Y *= j.yScale
		off = off.Scale(1 / j.radius).ClampLength(1)
		// Screen Y grows downward; pushing up means forward.
		j.intent.Store(math.Vec2{X: off.X, Y: -off.Y})
	case input.EventFingerUp:
		if j.active && e.FingerID == j.finger {
			j.active = false
			j.intent.Store(math.Vec2{})
		}
	}
}

// Intent returns the latest movement intent.
func (j *Joystick) Intent() math.Vec2 {
	return j.intent.Load()
}
