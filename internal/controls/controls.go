// Package controls turns input events into movement intent and look
// orientation for the player controller.
package controls

import (
	"errors"
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/spaces/internal/engine/input"
	"github.com/Faultbox/spaces/internal/logger"
	"github.com/Faultbox/spaces/pkg/math"
)

// MovementProvider reports the desired planar movement.
// X is strafe right, Y is forward; both in [-1,1].
type MovementProvider interface {
	Intent() math.Vec2
}

// LookProvider reports the desired view orientation (yaw and pitch, no roll).
type LookProvider interface {
	Orientation() math.Quat
}

// maxPitch keeps the view just short of straight up or down.
const maxPitch = gomath.Pi/2 - 0.01

func clampPitch(p float32) float32 {
	if p > maxPitch {
		return maxPitch
	}
	if p < -maxPitch {
		return -maxPitch
	}
	return p
}

// heightScale converts normalized finger Y, which SDL measures in screen
// heights, to screen widths.
func heightScale(aspect float32) float32 {
	if aspect <= 0 {
		return 1
	}
	return 1 / aspect
}

// resizeScale returns the height scale for a resize event, or current
// when the event carries no usable size.
func resizeScale(e input.Event, current float32) float32 {
	if e.Width <= 0 || e.Height <= 0 {
		return current
	}
	return float32(e.Height) / float32(e.Width)
}

// Scheme is the active input scheme, chosen once per mount.
type Scheme int

const (
	KeyboardMouse Scheme = iota
	TouchJoystick
)

func (s Scheme) String() string {
	switch s {
	case KeyboardMouse:
		return "keyboard-mouse"
	case TouchJoystick:
		return "touch-joystick"
	default:
		return fmt.Sprintf("scheme(%d)", int(s))
	}
}

var (
	// ErrSchemeUnsupported is returned when the configured scheme needs
	// hardware the device does not have.
	ErrSchemeUnsupported = errors.New("input scheme not supported by device")
	// ErrUnknownScheme is returned for an unrecognized scheme preference.
	ErrUnknownScheme = errors.New("unknown input scheme")
)

// SelectScheme picks the input scheme from the configured preference
// ("auto", "desktop" or "mobile") and the number of touch devices.
func SelectScheme(preference string, touchDevices int) (Scheme, error) {
	switch preference {
	case "", "auto":
		if touchDevices > 0 {
			return TouchJoystick, nil
		}
		return KeyboardMouse, nil
	case "desktop":
		return KeyboardMouse, nil
	case "mobile":
		if touchDevices <= 0 {
			return 0, fmt.Errorf("%w: mobile scheme without a touch device", ErrSchemeUnsupported)
		}
		return TouchJoystick, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownScheme, preference)
	}
}

// Options configures the providers of a Set.
type Options struct {
	// Initial look, usually taken from the camera after it faces the spawn.
	Yaw, Pitch float32

	MouseSensitivity float32
	TouchSensitivity float32
	JoystickRadius   float32

	// Aspect is the viewport width over height. Touch providers use it to
	// measure vertical finger travel in screen widths. Zero means square.
	Aspect float32

	// PointerLock captures (true) or releases (false) the OS pointer.
	// May be nil.
	PointerLock func(bool)
}

// Set is the movement and look provider pair for one scheme.
type Set struct {
	Scheme   Scheme
	Movement MovementProvider
	Look     LookProvider

	listeners []input.Listener
}

// NewSet builds the providers for scheme.
func NewSet(scheme Scheme, opts Options) *Set {
	s := &Set{Scheme: scheme}
	switch scheme {
	case TouchJoystick:
		js := NewJoystick(opts.JoystickRadius)
		touch := NewTouch(opts.Yaw, opts.Pitch, opts.TouchSensitivity)
		js.SetAspect(opts.Aspect)
		touch.SetAspect(opts.Aspect)
		s.Movement, s.Look = js, touch
		s.listeners = []input.Listener{js.HandleEvent, touch.HandleEvent}
	default:
		kb := NewKeyboard()
		mouse := NewMouse(opts.Yaw, opts.Pitch, opts.MouseSensitivity, opts.PointerLock)
		s.Movement, s.Look = kb, mouse
		s.listeners = []input.Listener{kb.HandleEvent, mouse.HandleEvent}
	}
	logger.Named("controls").Info("input scheme selected",
		zap.Stringer("scheme", scheme),
		zap.Float32("yaw", opts.Yaw),
		zap.Float32("pitch", opts.Pitch))
	return s
}

// Attach subscribes every provider to d and returns a function that
// detaches them all.
func (s *Set) Attach(d *input.Dispatcher) (detach func()) {
	detaches := make([]func(), 0, len(s.listeners))
	for _, l := range s.listeners {
		detaches = append(detaches, d.Subscribe(l))
	}
	return func() {
		for _, fn := range detaches {
			fn()
		}
	}
}
