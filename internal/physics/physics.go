// Package physics defines the rigid-body engine contract the player
// binding is written against.
package physics

import (
	"errors"
	"fmt"

	"github.com/Faultbox/spaces/pkg/math"
)

var (
	// ErrEngineUnavailable is returned when the engine is closed or was
	// never started.
	ErrEngineUnavailable = errors.New("physics engine unavailable")
	// ErrInvalidShape is returned for a collider the engine cannot build.
	ErrInvalidShape = errors.New("invalid collider shape")
	// ErrInvalidBody is returned for a body description with bad mass.
	ErrInvalidBody = errors.New("invalid body description")
)

// Capsule is a vertical capsule collider. Height is the length of the
// cylindrical section between the two hemisphere centers.
type Capsule struct {
	Radius float32
	Height float32
}

// HalfHeight returns half the total height including both caps.
func (c Capsule) HalfHeight() float32 {
	return c.Height/2 + c.Radius
}

// Validate reports whether the capsule has usable dimensions.
func (c Capsule) Validate() error {
	if c.Radius <= 0 || c.Height < 0 {
		return fmt.Errorf("%w: capsule radius %v height %v", ErrInvalidShape, c.Radius, c.Height)
	}
	return nil
}

// BodyDesc describes a dynamic body to create.
type BodyDesc struct {
	Shape    Capsule
	Position math.Vec3 // center of the capsule
	Rotation math.Quat
	Mass     float32
}

// Validate checks the shape and mass.
func (d BodyDesc) Validate() error {
	if err := d.Shape.Validate(); err != nil {
		return err
	}
	if d.Mass <= 0 {
		return fmt.Errorf("%w: mass %v", ErrInvalidBody, d.Mass)
	}
	return nil
}

// Engine creates bodies.
type Engine interface {
	CreateBody(desc BodyDesc) (Body, error)
}

// Body is a handle to one simulated rigid body.
//
// Subscribers are called after each engine step with the body's new state,
// possibly from the engine's goroutine. They must not block.
type Body interface {
	// SubscribePosition registers fn for position updates and returns a
	// function that unregisters it.
	SubscribePosition(fn func(math.Vec3)) (unsubscribe func())
	// SubscribeVelocity registers fn for velocity updates and returns a
	// function that unregisters it.
	SubscribeVelocity(fn func(math.Vec3)) (unsubscribe func())
	// SetVelocity replaces the body's velocity at the start of the next step.
	SetVelocity(v math.Vec3)
	// Remove detaches the body from the engine. Safe to call more than once.
	Remove()
}
