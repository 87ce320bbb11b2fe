// Package local is an in-process physics engine for capsule bodies: gravity,
// a ground plane and static box colliders, stepped at a fixed rate.
package local

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/spaces/internal/engine/picking"
	"github.com/Faultbox/spaces/internal/logger"
	"github.com/Faultbox/spaces/internal/physics"
	"github.com/Faultbox/spaces/pkg/math"
)

// collisionTolerance treats surfaces closer than this as touching.
const collisionTolerance = 1e-5

// Options configures the world.
type Options struct {
	Gravity      float32 // vertical acceleration, negative pulls down
	GroundHeight float32
	Boxes        []picking.AABB
}

// Engine simulates capsule bodies. All methods are safe for concurrent use.
type Engine struct {
	mu     sync.Mutex
	opts   Options
	bodies []*body
	nextID int
	closed bool
	steps  uint64
	log    *zap.Logger
}

var _ physics.Engine = (*Engine)(nil)

// New creates an engine.
func New(opts Options) *Engine {
	return &Engine{
		opts: opts,
		log:  logger.Named("physics"),
	}
}

// CreateBody adds a dynamic capsule body to the world.
func (e *Engine) CreateBody(desc physics.BodyDesc) (physics.Body, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil, physics.ErrEngineUnavailable
	}

	b := &body{
		engine: e,
		id:     e.nextID,
		shape:  desc.Shape,
		mass:   desc.Mass,
		pos:    desc.Position,
		rot:    desc.Rotation.Normalize(),
	}
	e.nextID++
	e.bodies = append(e.bodies, b)

	e.log.Debug("body created",
		zap.Int("id", b.id),
		zap.Float32("radius", desc.Shape.Radius),
		zap.Float32("height", desc.Shape.Height),
		zap.Float32("mass", desc.Mass))
	return b, nil
}

// Step advances the world by dt seconds and notifies subscribers.
func (e *Engine) Step(dt float32) error {
	if dt < 0 {
		dt = 0
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return physics.ErrEngineUnavailable
	}
	notes := make([]notification, 0, len(e.bodies))
	for _, b := range e.bodies {
		e.integrate(b, dt)
		notes = append(notes, b.notification())
	}
	e.steps++
	e.mu.Unlock()

	for _, n := range notes {
		n.deliver()
	}
	return nil
}

func (e *Engine) integrate(b *body, dt float32) {
	if b.pending != nil {
		b.vel = *b.pending
		b.pending = nil
	}
	b.vel.Y += e.opts.Gravity * dt

	half := b.extents()
	b.pos = e.depenetrate(b.pos, half)

	var blocked bool
	b.pos.Y, blocked = e.sweepY(b.pos, half, b.vel.Y*dt)
	if blocked {
		b.vel.Y = 0
	}
	b.pos.X, blocked = e.sweepAxis(b.pos, half, b.vel.X*dt, 0)
	if blocked {
		b.vel.X = 0
	}
	b.pos.Z, blocked = e.sweepAxis(b.pos, half, b.vel.Z*dt, 2)
	if blocked {
		b.vel.Z = 0
	}
}

// sweepY moves pos vertically by delta, stopping at the ground plane and
// box tops or bottoms.
func (e *Engine) sweepY(pos, half math.Vec3, delta float32) (float32, bool) {
	allowed := delta
	bottom := pos.Y - half.Y
	if floor := e.opts.GroundHeight - bottom; delta < floor {
		allowed = floor
	}
	allowed = e.limitByBoxes(pos, half, allowed, 1)
	return pos.Y + allowed, !nearlyEqual(allowed, delta)
}

// sweepAxis moves pos along axis 0 (X) or 2 (Z) by delta, stopping at boxes.
func (e *Engine) sweepAxis(pos, half math.Vec3, delta float32, axis int) (float32, bool) {
	allowed := e.limitByBoxes(pos, half, delta, axis)
	p := pos.Array()
	return p[axis] + allowed, !nearlyEqual(allowed, delta)
}

func (e *Engine) limitByBoxes(pos, half math.Vec3, delta float32, axis int) float32 {
	if delta == 0 {
		return 0
	}
	p, h := pos.Array(), half.Array()
	allowed := delta
	for _, box := range e.opts.Boxes {
		bmin, bmax := box.Min.Array(), box.Max.Array()
		if !overlapsOthers(p, h, bmin, bmax, axis) {
			continue
		}
		if delta > 0 {
			gap := bmin[axis] - (p[axis] + h[axis])
			if gap >= -collisionTolerance && gap < allowed {
				allowed = maxf(gap, 0)
			}
		} else {
			gap := bmax[axis] - (p[axis] - h[axis])
			if gap <= collisionTolerance && gap > allowed {
				allowed = minf(gap, 0)
			}
		}
	}
	return allowed
}

// depenetrate pushes a body that starts inside the ground or a box out
// along the axis of least penetration.
func (e *Engine) depenetrate(pos, half math.Vec3) math.Vec3 {
	if bottom := pos.Y - half.Y; bottom < e.opts.GroundHeight {
		pos.Y = e.opts.GroundHeight + half.Y
	}
	for _, box := range e.opts.Boxes {
		p, h := pos.Array(), half.Array()
		bmin, bmax := box.Min.Array(), box.Max.Array()

		best, bestAxis := float32(0), -1
		for axis := 0; axis < 3; axis++ {
			below := (p[axis] + h[axis]) - bmin[axis]
			above := bmax[axis] - (p[axis] - h[axis])
			if below <= collisionTolerance || above <= collisionTolerance {
				bestAxis = -1
				break
			}
			push := -below
			if above < below {
				push = above
			}
			if bestAxis < 0 || absf(push) < absf(best) {
				best, bestAxis = push, axis
			}
		}
		if bestAxis < 0 {
			continue
		}
		p[bestAxis] += best
		pos = math.Vec3{X: p[0], Y: p[1], Z: p[2]}
	}
	return pos
}

func overlapsOthers(p, h, bmin, bmax [3]float32, axis int) bool {
	for other := 0; other < 3; other++ {
		if other == axis {
			continue
		}
		if p[other]+h[other] <= bmin[other]+collisionTolerance ||
			p[other]-h[other] >= bmax[other]-collisionTolerance {
			return false
		}
	}
	return true
}

// Run steps the engine at rate steps per second until ctx is cancelled or
// the engine is closed.
func (e *Engine) Run(ctx context.Context, rate int) error {
	if rate <= 0 {
		return fmt.Errorf("step rate %d: must be positive", rate)
	}
	dt := float32(1) / float32(rate)
	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	e.log.Info("physics loop started", zap.Int("rate", rate))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := e.Step(dt); err != nil {
				e.log.Info("physics loop stopped", zap.Uint64("steps", e.Steps()))
				return nil
			}
		}
	}
}

// Steps returns the number of completed steps.
func (e *Engine) Steps() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.steps
}

// BodyCount returns the number of live bodies.
func (e *Engine) BodyCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.bodies)
}

// Close makes the engine unavailable. Existing bodies stop receiving updates.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	e.bodies = nil
	return nil
}

func (e *Engine) remove(b *body) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, other := range e.bodies {
		if other == b {
			e.bodies = append(e.bodies[:i:i], e.bodies[i+1:]...)
			break
		}
	}
	b.removed = true
	b.posSubs = nil
	b.velSubs = nil
}

func nearlyEqual(a, b float32) bool {
	return absf(a-b) <= collisionTolerance
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
