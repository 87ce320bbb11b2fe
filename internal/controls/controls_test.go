package controls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/spaces/internal/engine/input"
	"github.com/Faultbox/spaces/pkg/math"
)

func TestSelectScheme(t *testing.T) {
	tests := []struct {
		pref    string
		touch   int
		want    Scheme
		wantErr error
	}{
		{"auto", 0, KeyboardMouse, nil},
		{"auto", 1, TouchJoystick, nil},
		{"", 2, TouchJoystick, nil},
		{"desktop", 3, KeyboardMouse, nil},
		{"mobile", 1, TouchJoystick, nil},
		{"mobile", 0, 0, ErrSchemeUnsupported},
		{"console", 0, 0, ErrUnknownScheme},
	}

	for _, tt := range tests {
		t.Run(tt.pref, func(t *testing.T) {
			got, err := SelectScheme(tt.pref, tt.touch)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewSetProviders(t *testing.T) {
	desktop := NewSet(KeyboardMouse, Options{MouseSensitivity: 0.002})
	assert.IsType(t, &Keyboard{}, desktop.Movement)
	assert.IsType(t, &Mouse{}, desktop.Look)

	mobile := NewSet(TouchJoystick, Options{TouchSensitivity: 3, JoystickRadius: 0.1})
	assert.IsType(t, &Joystick{}, mobile.Movement)
	assert.IsType(t, &Touch{}, mobile.Look)
}

func TestSetDefaults(t *testing.T) {
	s := NewSet(KeyboardMouse, Options{Yaw: 0.5})

	assert.Equal(t, math.Vec2{}, s.Movement.Intent(), "intent is zero before any event")
	want := math.QuatFromYawPitch(0.5, 0)
	assert.Equal(t, want, s.Look.Orientation(), "look starts at the configured yaw")
}

func TestSetAttachDetach(t *testing.T) {
	d := input.NewDispatcher()
	s := NewSet(KeyboardMouse, Options{})

	detach := s.Attach(d)
	assert.Equal(t, 2, d.Len())

	d.Dispatch(input.Event{Type: input.EventKeyDown, Key: input.KeyW})
	assert.Equal(t, math.Vec2{Y: 1}, s.Movement.Intent())

	detach()
	assert.Equal(t, 0, d.Len())

	d.Dispatch(input.Event{Type: input.EventKeyUp, Key: input.KeyW})
	assert.Equal(t, math.Vec2{Y: 1}, s.Movement.Intent(), "detached provider ignores events")
}

func TestSchemeString(t *testing.T) {
	assert.Equal(t, "keyboard-mouse", KeyboardMouse.String())
	assert.Equal(t, "touch-joystick", TouchJoystick.String())
	assert.Equal(t, "scheme(7)", Scheme(7).String())
}
