// Package game mounts the first-person player into an environment.
package game

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/spaces/internal/config"
	"github.com/Faultbox/spaces/internal/controls"
	"github.com/Faultbox/spaces/internal/engine/camera"
	"github.com/Faultbox/spaces/internal/engine/input"
	"github.com/Faultbox/spaces/internal/environment"
	"github.com/Faultbox/spaces/internal/logger"
	"github.com/Faultbox/spaces/internal/physics"
	"github.com/Faultbox/spaces/internal/player"
	"github.com/Faultbox/spaces/pkg/math"
)

// Settings are the player options Mount needs.
type Settings struct {
	Spawn          math.Vec3
	SpawnYaw       float32
	Shape          physics.Capsule
	Mass           float32
	VelocityFactor float32
	EyeHeight      float32

	Scheme           string
	MouseSensitivity float32
	TouchSensitivity float32
	JoystickRadius   float32
}

// SettingsFromConfig extracts Settings from the loaded config.
func SettingsFromConfig(cfg *config.Config) Settings {
	p, in := cfg.Player, cfg.Input
	return Settings{
		Spawn:            math.Vec3{X: p.SpawnPosition.X, Y: p.SpawnPosition.Y, Z: p.SpawnPosition.Z},
		SpawnYaw:         p.SpawnYaw,
		Shape:            physics.Capsule{Radius: p.CapsuleRadius, Height: p.CapsuleHeight},
		Mass:             p.Mass,
		VelocityFactor:   p.VelocityFactor,
		EyeHeight:        p.EyeHeight,
		Scheme:           in.Scheme,
		MouseSensitivity: in.MouseSensitivity,
		TouchSensitivity: in.TouchSensitivity,
		JoystickRadius:   in.JoystickRadius,
	}
}

// Deps are the host services the player is wired to.
type Deps struct {
	Engine       physics.Engine
	Dispatcher   *input.Dispatcher
	Camera       *camera.FirstPerson
	TouchDevices int
	PointerLock  func(bool)
	Observer     player.FrameObserver
	Now          func() time.Time
}

// Session is a mounted player.
type Session struct {
	Controller *player.Controller
	Controls   *controls.Set
	Snapshot   *player.Snapshot

	binding   *player.Binding
	camera    *camera.FirstPerson
	eyeHeight float32
}

// Mount creates the player body, faces the camera along the spawn yaw,
// attaches the input providers and publishes the player snapshot to env.
// On error nothing is published and everything acquired is released.
// Teardown happens through env.Close: listeners detach, then the body is
// removed.
func Mount(env *environment.Environment, deps Deps, s Settings) (*Session, error) {
	log := logger.Named("game")

	scheme, err := controls.SelectScheme(s.Scheme, deps.TouchDevices)
	if err != nil {
		return nil, fmt.Errorf("select input scheme: %w", err)
	}

	binding, err := player.Bind(deps.Engine, player.BodyConfig{
		Spawn:    s.Spawn,
		SpawnYaw: s.SpawnYaw,
		Shape:    s.Shape,
		Mass:     s.Mass,
	})
	if err != nil {
		return nil, err
	}

	cam := deps.Camera
	if cam == nil {
		cam = camera.NewFirstPerson(75, 16.0/9.0)
	}
	cam.FaceSpawn(binding.Position(), s.SpawnYaw)
	yaw, pitch := cam.YawPitch()

	set := controls.NewSet(scheme, controls.Options{
		Yaw:              yaw,
		Pitch:            pitch,
		MouseSensitivity: s.MouseSensitivity,
		TouchSensitivity: s.TouchSensitivity,
		JoystickRadius:   s.JoystickRadius,
		Aspect:           cam.Aspect,
		PointerLock:      deps.PointerLock,
	})
	detach := func() {}
	if deps.Dispatcher != nil {
		detach = set.Attach(deps.Dispatcher)
	}

	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}
	ctrl := player.NewController(binding, set.Movement, set.Look, env, player.Options{
		VelocityFactor: s.VelocityFactor,
		Start:          now(),
		Observer:       deps.Observer,
	})

	snap := ctrl.Snapshot()
	if err := env.Publish(snap); err != nil {
		detach()
		_ = binding.Close()
		return nil, fmt.Errorf("publish player: %w", err)
	}

	// Released in reverse: listeners first, then the body.
	if err := env.Defer("player body", binding.Close); err != nil {
		detach()
		return nil, fmt.Errorf("register player body: %w", err)
	}
	if err := env.Defer("input listeners", func() error { detach(); return nil }); err != nil {
		return nil, fmt.Errorf("register input listeners: %w", err)
	}

	log.Info("player mounted",
		zap.Stringer("scheme", scheme),
		zap.Float32("yaw", yaw),
		zap.Float32("velocity_factor", s.VelocityFactor))

	return &Session{
		Controller: ctrl,
		Controls:   set,
		Snapshot:   snap,
		binding:    binding,
		camera:     cam,
		eyeHeight:  s.EyeHeight,
	}, nil
}

// Update integrates one frame and moves the camera to the player's eye.
func (s *Session) Update(now time.Time) {
	s.Controller.Update(now)
	s.SyncCamera()
}

// SyncCamera places the camera at the body position raised by the eye
// height, looking along the current look orientation.
func (s *Session) SyncCamera() {
	eye := s.binding.Position().Add(math.Vec3{Y: s.eyeHeight})
	s.camera.Follow(eye, s.Controls.Look.Orientation())
}

// Camera returns the camera the session drives.
func (s *Session) Camera() *camera.FirstPerson {
	return s.camera
}
