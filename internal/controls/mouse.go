package controls

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Faultbox/spaces/internal/cell"
	"github.com/Faultbox/spaces/internal/engine/input"
	"github.com/Faultbox/spaces/internal/logger"
	"github.com/Faultbox/spaces/pkg/math"
)

// Mouse is a pointer-lock look provider. A left click captures the pointer,
// Escape releases it, and relative motion turns the view while captured.
type Mouse struct {
	sensitivity float32
	yaw, pitch  float32
	lock        func(bool)
	captured    atomic.Bool
	look        *cell.Cell[math.Quat]
}

// NewMouse creates a mouse look provider starting at yaw and pitch.
// sensitivity is in radians per pixel.
func NewMouse(yaw, pitch, sensitivity float32, lock func(bool)) *Mouse {
	pitch = clampPitch(pitch)
	return &Mouse{
		sensitivity: sensitivity,
		yaw:         yaw,
		pitch:       pitch,
		lock:        lock,
		look:        cell.New(math.QuatFromYawPitch(yaw, pitch)),
	}
}

// HandleEvent processes pointer events. Call from the dispatch goroutine.
func (m *Mouse) HandleEvent(e input.Event) {
	switch e.Type {
	case input.EventMouseDown:
		if e.Button == input.ButtonLeft && !m.captured.Load() {
			m.setCaptured(true)
		}
	case input.EventKeyDown:
		if e.Key == input.KeyEscape && m.captured.Load() {
			m.setCaptured(false)
		}
	case input.EventMouseMove:
		if !m.captured.Load() {
			return
		}
		m.yaw -= float32(e.RelX) * m.sensitivity
		m.pitch = clampPitch(m.pitch - float32(e.RelY)*m.sensitivity)
		m.look.Store(math.QuatFromYawPitch(m.yaw, m.pitch))
	}
}

func (m *Mouse) setCaptured(v bool) {
	m.captured.Store(v)
	if m.lock != nil {
		m.lock(v)
	}
	logger.Named("controls").Debug("pointer lock changed", zap.Bool("captured", v))
}

// Captured reports whether the pointer is locked to the view.
func (m *Mouse) Captured() bool {
	return m.captured.Load()
}

// Release frees the pointer if it is captured.
func (m *Mouse) Release() {
	if m.captured.Load() {
		m.setCaptured(false)
	}
}

// Orientation returns the latest look orientation.
func (m *Mouse) Orientation() math.Quat {
	return m.look.Load()
}
