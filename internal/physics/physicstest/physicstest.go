// Package physicstest provides a scripted physics engine for tests.
package physicstest

import (
	"sync"

	"github.com/Faultbox/spaces/internal/physics"
	"github.com/Faultbox/spaces/pkg/math"
)

// Engine records created bodies. Set Err to make CreateBody fail.
type Engine struct {
	mu     sync.Mutex
	Err    error
	bodies []*Body
}

var _ physics.Engine = (*Engine)(nil)

// CreateBody returns a new Body, or Err if set.
func (e *Engine) CreateBody(desc physics.BodyDesc) (physics.Body, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.Err != nil {
		return nil, e.Err
	}
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	b := &Body{Desc: desc}
	e.bodies = append(e.bodies, b)
	return b, nil
}

// Bodies returns every body created so far.
func (e *Engine) Bodies() []*Body {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*Body(nil), e.bodies...)
}

// Last returns the most recently created body, or nil.
func (e *Engine) Last() *Body {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.bodies) == 0 {
		return nil
	}
	return e.bodies[len(e.bodies)-1]
}

// Body is a body whose state is pushed by the test.
type Body struct {
	Desc physics.BodyDesc

	mu         sync.Mutex
	posSubs    map[int]func(math.Vec3)
	velSubs    map[int]func(math.Vec3)
	nextSub    int
	velocities []math.Vec3
	removed    bool
}

var _ physics.Body = (*Body)(nil)

func (b *Body) SubscribePosition(fn func(math.Vec3)) func() {
	return b.subscribe(&b.posSubs, fn)
}

func (b *Body) SubscribeVelocity(fn func(math.Vec3)) func() {
	return b.subscribe(&b.velSubs, fn)
}

func (b *Body) subscribe(subs *map[int]func(math.Vec3), fn func(math.Vec3)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if *subs == nil {
		*subs = make(map[int]func(math.Vec3))
	}
	id := b.nextSub
	b.nextSub++
	(*subs)[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(*subs, id)
	}
}

// SetVelocity records v.
func (b *Body) SetVelocity(v math.Vec3) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.velocities = append(b.velocities, v)
}

// Remove marks the body removed.
func (b *Body) Remove() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.removed = true
}

// PushPosition delivers p to position subscribers as an engine step would.
func (b *Body) PushPosition(p math.Vec3) {
	for _, fn := range b.snapshot(&b.posSubs) {
		fn(p)
	}
}

// PushVelocity delivers v to velocity subscribers.
func (b *Body) PushVelocity(v math.Vec3) {
	for _, fn := range b.snapshot(&b.velSubs) {
		fn(v)
	}
}

func (b *Body) snapshot(subs *map[int]func(math.Vec3)) []func(math.Vec3) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fns := make([]func(math.Vec3), 0, len(*subs))
	for _, fn := range *subs {
		fns = append(fns, fn)
	}
	return fns
}

// Velocities returns every velocity passed to SetVelocity, oldest first.
func (b *Body) Velocities() []math.Vec3 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]math.Vec3(nil), b.velocities...)
}

// LastVelocity returns the most recent SetVelocity argument.
func (b *Body) LastVelocity() (math.Vec3, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.velocities) == 0 {
		return math.Vec3{}, false
	}
	return b.velocities[len(b.velocities)-1], true
}

// Subscribers returns the number of live position and velocity subscriptions.
func (b *Body) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.posSubs) + len(b.velSubs)
}

// Removed reports whether Remove was called.
func (b *Body) Removed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.removed
}
