package player

import (
	"sync/atomic"
	"time"

	"github.com/Faultbox/spaces/internal/cell"
	"github.com/Faultbox/spaces/internal/controls"
	"github.com/Faultbox/spaces/internal/engine/picking"
	"github.com/Faultbox/spaces/pkg/math"
)

// DefaultVelocityFactor scales unit intent to body velocity.
const DefaultVelocityFactor = 250

// strafeFactor slows sideways movement relative to forward movement.
const strafeFactor = 0.75

// State is the controller's mode as of the last Update.
type State int32

const (
	Active State = iota
	Paused
)

func (s State) String() string {
	if s == Paused {
		return "paused"
	}
	return "active"
}

// PauseSource reports whether the environment is paused.
type PauseSource interface {
	Paused() bool
}

// FrameObserver is notified once per Update.
type FrameObserver interface {
	ObserveFrame(delta time.Duration, paused bool)
}

// Options configures a Controller.
type Options struct {
	VelocityFactor float32
	// Start is the time the first frame's delta is measured from. When
	// zero, the first Update has a delta of zero.
	Start    time.Time
	Observer FrameObserver
}

// Controller is the per-frame integrator turning intent and look into the
// body's velocity.
type Controller struct {
	binding  *Binding
	movement controls.MovementProvider
	look     controls.LookProvider
	pause    PauseSource
	observer FrameObserver
	factor   float32

	locked atomic.Bool
	state  atomic.Int32
	ray    *cell.Cell[picking.Ray]
	prev   time.Time
}

// NewController creates the integrator. The ray starts at the body's
// current position looking along the provider's initial orientation.
func NewController(b *Binding, movement controls.MovementProvider, look controls.LookProvider, pause PauseSource, opts Options) *Controller {
	if opts.VelocityFactor == 0 {
		opts.VelocityFactor = DefaultVelocityFactor
	}
	return &Controller{
		binding:  b,
		movement: movement,
		look:     look,
		pause:    pause,
		observer: opts.Observer,
		factor:   opts.VelocityFactor,
		ray:      cell.New(picking.NewInteractionRay(b.Position(), look.Orientation())),
		prev:     opts.Start,
	}
}

// Update runs one frame. It never fails and always sets the body velocity.
// Call from the frame loop only.
func (c *Controller) Update(now time.Time) {
	var elapsed time.Duration
	if !c.prev.IsZero() {
		elapsed = now.Sub(c.prev)
	}
	if elapsed < 0 {
		elapsed = 0
	}
	delta := float32(elapsed.Seconds())

	look := c.look.Orientation()
	c.ray.Store(picking.NewInteractionRay(c.binding.Position(), look))

	paused := c.pause != nil && c.pause.Paused()
	if paused {
		c.binding.SetVelocity(math.Vec3{})
		c.state.Store(int32(Paused))
	} else {
		var in math.Vec3
		if !c.locked.Load() {
			intent := c.movement.Intent()
			in = math.Vec3{
				X: intent.X * delta * strafeFactor * c.factor,
				Z: -intent.Y * delta * c.factor,
			}
		}
		in = look.YawOnly().RotateVec3(in)
		in.Y = c.binding.Velocity().Y
		c.binding.SetVelocity(in)
		c.state.Store(int32(Active))
	}

	if c.observer != nil {
		c.observer.ObserveFrame(elapsed, paused)
	}
	c.prev = now
}

// State returns the mode of the last Update.
func (c *Controller) State() State {
	return State(c.state.Load())
}

// Ray returns the interaction ray computed by the last Update.
func (c *Controller) Ray() picking.Ray {
	return c.ray.Load()
}

// SetLocked freezes (true) or releases (false) movement. Look is unaffected.
func (c *Controller) SetLocked(locked bool) {
	c.locked.Store(locked)
}

// Locked reports whether movement is frozen.
func (c *Controller) Locked() bool {
	return c.locked.Load()
}

// Snapshot returns the read-only view of the player's live state.
func (c *Controller) Snapshot() *Snapshot {
	return &Snapshot{binding: c.binding, controller: c}
}
