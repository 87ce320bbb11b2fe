// Package player binds the player's capsule body to the physics engine and
// integrates input into its velocity each frame.
package player

import (
	"fmt"
	gomath "math"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/spaces/internal/cell"
	"github.com/Faultbox/spaces/internal/logger"
	"github.com/Faultbox/spaces/internal/physics"
	"github.com/Faultbox/spaces/pkg/math"
)

// BodyConfig describes the player's body at spawn.
type BodyConfig struct {
	Spawn    math.Vec3
	SpawnYaw float32 // radians; the player initially faces (cos, 0, sin) of it
	Shape    physics.Capsule
	Mass     float32
}

// SpawnLook returns the yaw and pitch that face horizontally along
// (cos spawnYaw, 0, sin spawnYaw).
func SpawnLook(spawnYaw float32) (yaw, pitch float32) {
	return math.YawPitchFromDirection(math.Vec3{
		X: float32(gomath.Cos(float64(spawnYaw))),
		Z: float32(gomath.Sin(float64(spawnYaw))),
	})
}

// Binding owns the player's one physics body and caches the latest
// position and velocity the engine reported.
type Binding struct {
	body      physics.Body
	position  *cell.Cell[math.Vec3]
	velocity  *cell.Cell[math.Vec3]
	unsubs    []func()
	closeOnce sync.Once
}

// Bind creates the player body in engine. Failure is fatal to the
// environment and is not retried.
func Bind(engine physics.Engine, cfg BodyConfig) (*Binding, error) {
	if engine == nil {
		return nil, fmt.Errorf("bind player body: %w", physics.ErrEngineUnavailable)
	}

	yaw, _ := SpawnLook(cfg.SpawnYaw)
	body, err := engine.CreateBody(physics.BodyDesc{
		Shape:    cfg.Shape,
		Position: cfg.Spawn,
		Rotation: math.QuatFromAxisAngle(math.UpAxis, yaw),
		Mass:     cfg.Mass,
	})
	if err != nil {
		return nil, fmt.Errorf("create player body: %w", err)
	}

	b := &Binding{
		body:     body,
		position: cell.New(cfg.Spawn),
		velocity: cell.New(math.Vec3{}),
	}
	b.unsubs = append(b.unsubs,
		body.SubscribePosition(b.position.Store),
		body.SubscribeVelocity(b.velocity.Store),
	)

	logger.Named("player").Info("player body bound",
		zap.Float32("x", cfg.Spawn.X),
		zap.Float32("y", cfg.Spawn.Y),
		zap.Float32("z", cfg.Spawn.Z),
		zap.Float32("spawn_yaw", cfg.SpawnYaw))
	return b, nil
}

// Position returns the latest body position, or the spawn position before
// the engine first reports one.
func (b *Binding) Position() math.Vec3 {
	return b.position.Load()
}

// Velocity returns the latest body velocity, or zero before the engine
// first reports one.
func (b *Binding) Velocity() math.Vec3 {
	return b.velocity.Load()
}

// SetVelocity replaces the body's velocity for the next engine step.
func (b *Binding) SetVelocity(v math.Vec3) {
	b.body.SetVelocity(v)
}

// Close unsubscribes from the engine and removes the body.
func (b *Binding) Close() error {
	b.closeOnce.Do(func() {
		for _, unsub := range b.unsubs {
			unsub()
		}
		b.body.Remove()
	})
	return nil
}
