package controls

import (
	"github.com/Faultbox/spaces/internal/cell"
	"github.com/Faultbox/spaces/internal/engine/input"
	"github.com/Faultbox/spaces/pkg/math"
)

// touchSplit divides the screen: fingers landing left of it drive the
// joystick, fingers landing right of it drive the look.
const touchSplit = 0.5

// Touch is a look provider driven by one finger dragging on the right
// half of the screen.
type Touch struct {
	sensitivity float32
	yScale      float32
	yaw, pitch  float32
	finger      int64
	active      bool
	look        *cell.Cell[math.Quat]
}

// NewTouch creates a touch look provider starting at yaw and pitch.
// sensitivity is in radians per full screen width of drag.
func NewTouch(yaw, pitch, sensitivity float32) *Touch {
	pitch = clampPitch(pitch)
	return &Touch{
		sensitivity: sensitivity,
		yScale:      1,
		yaw:         yaw,
		pitch:       pitch,
		look:        cell.New(math.QuatFromYawPitch(yaw, pitch)),
	}
}

// SetAspect sets the viewport width over height so vertical drags turn at
// the same rate per unit of finger travel as horizontal ones.
func (t *Touch) SetAspect(aspect float32) {
	t.yScale = heightScale(aspect)
}

// HandleEvent processes finger events. Call from the dispatch goroutine.
func (t *Touch) HandleEvent(e input.Event) {
	switch e.Type {
	case input.EventWindowResize:
		t.yScale = resizeScale(e, t.yScale)
	case input.EventFingerDown:
		if !t.active && e.X >= touchSplit {
			t.active = true
			t.finger = e.FingerID
		}
	case input.EventFingerMotion:
		if !t.active || e.FingerID != t.finger {
			return
		}
		t.yaw -= e.DX * t.sensitivity
		t.pitch = clampPitch(t.pitch - e.DY*t.yScale*t.sensitivity)
		t.look.Store(math.QuatFromYawPitch(t.yaw, t.pitch))
	case input.EventFingerUp:
		if t.active && e.FingerID == t.finger {
			t.active = false
		}
	}
}

// Orientation returns the latest look orientation.
func (t *Touch) Orientation() math.Quat {
	return t.look.Load()
}
