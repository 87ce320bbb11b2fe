package player

import (
	"github.com/Faultbox/spaces/internal/engine/picking"
	"github.com/Faultbox/spaces/pkg/math"
)

// Snapshot gives other systems live read access to the player. Every
// accessor returns the current value, not one captured at publish time.
type Snapshot struct {
	binding    *Binding
	controller *Controller
}

// Position returns the body position.
func (s *Snapshot) Position() math.Vec3 { return s.binding.Position() }

// Velocity returns the body velocity.
func (s *Snapshot) Velocity() math.Vec3 { return s.binding.Velocity() }

// Locked reports whether movement input is suppressed.
func (s *Snapshot) Locked() bool { return s.controller.Locked() }

// Ray returns the interaction ray.
func (s *Snapshot) Ray() picking.Ray { return s.controller.Ray() }
