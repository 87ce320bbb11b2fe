package local

import (
	"github.com/Faultbox/spaces/internal/physics"
	"github.com/Faultbox/spaces/pkg/math"
)

type subscriber struct {
	id int
	fn func(math.Vec3)
}

type body struct {
	engine *Engine
	id     int
	shape  physics.Capsule
	mass   float32

	// Guarded by engine.mu.
	pos     math.Vec3
	vel     math.Vec3
	rot     math.Quat
	pending *math.Vec3
	posSubs []subscriber
	velSubs []subscriber
	nextSub int
	removed bool
}

var _ physics.Body = (*body)(nil)

// extents returns the half sizes of the capsule's bounding box.
func (b *body) extents() math.Vec3 {
	return math.Vec3{X: b.shape.Radius, Y: b.shape.HalfHeight(), Z: b.shape.Radius}
}

func (b *body) SubscribePosition(fn func(math.Vec3)) func() {
	return b.subscribe(&b.posSubs, fn)
}

func (b *body) SubscribeVelocity(fn func(math.Vec3)) func() {
	return b.subscribe(&b.velSubs, fn)
}

func (b *body) subscribe(list *[]subscriber, fn func(math.Vec3)) func() {
	b.engine.mu.Lock()
	defer b.engine.mu.Unlock()

	if b.removed {
		return func() {}
	}
	id := b.nextSub
	b.nextSub++
	*list = append(*list, subscriber{id: id, fn: fn})

	return func() {
		b.engine.mu.Lock()
		defer b.engine.mu.Unlock()
		for i, s := range *list {
			if s.id == id {
				*list = append((*list)[:i:i], (*list)[i+1:]...)
				return
			}
		}
	}
}

func (b *body) SetVelocity(v math.Vec3) {
	b.engine.mu.Lock()
	defer b.engine.mu.Unlock()
	if b.removed {
		return
	}
	b.pending = &v
}

func (b *body) Remove() {
	b.engine.remove(b)
}

// notification captures the post-step state for delivery outside the lock.
type notification struct {
	pos, vel         math.Vec3
	posSubs, velSubs []subscriber
}

func (b *body) notification() notification {
	return notification{
		pos:     b.pos,
		vel:     b.vel,
		posSubs: b.posSubs,
		velSubs: b.velSubs,
	}
}

func (n notification) deliver() {
	for _, s := range n.posSubs {
		s.fn(n.pos)
	}
	for _, s := range n.velSubs {
		s.fn(n.vel)
	}
}
