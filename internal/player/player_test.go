package player

import (
	gomath "math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/spaces/internal/physics"
	"github.com/Faultbox/spaces/internal/physics/physicstest"
	"github.com/Faultbox/spaces/pkg/math"
)

type fixedIntent struct{ v math.Vec2 }

func (f *fixedIntent) Intent() math.Vec2 { return f.v }

type fixedLook struct{ q math.Quat }

func (f *fixedLook) Orientation() math.Quat { return f.q }

type pauseFlag struct{ atomic.Bool }

func (p *pauseFlag) Paused() bool { return p.Load() }

type frames struct {
	deltas []time.Duration
	paused []bool
}

func (f *frames) ObserveFrame(delta time.Duration, paused bool) {
	f.deltas = append(f.deltas, delta)
	f.paused = append(f.paused, paused)
}

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func defaultBody() BodyConfig {
	return BodyConfig{
		Spawn: math.Vec3{Y: 1},
		Shape: physics.Capsule{Radius: 0.5, Height: 1},
		Mass:  1,
	}
}

type rig struct {
	engine  *physicstest.Engine
	body    *physicstest.Body
	binding *Binding
	intent  *fixedIntent
	look    *fixedLook
	pause   *pauseFlag
	frames  *frames
	ctrl    *Controller
}

func newRig(t *testing.T) *rig {
	t.Helper()
	r := &rig{
		engine: &physicstest.Engine{},
		intent: &fixedIntent{},
		look:   &fixedLook{q: math.QuatIdentity()},
		pause:  &pauseFlag{},
		frames: &frames{},
	}
	b, err := Bind(r.engine, defaultBody())
	require.NoError(t, err)
	r.binding = b
	r.body = r.engine.Last()
	r.ctrl = NewController(b, r.intent, r.look, r.pause, Options{
		VelocityFactor: DefaultVelocityFactor,
		Start:          t0,
		Observer:       r.frames,
	})
	return r
}

func (r *rig) written(t *testing.T) math.Vec3 {
	t.Helper()
	v, ok := r.body.LastVelocity()
	require.True(t, ok, "no velocity written")
	return v
}

func assertVec(t *testing.T, want, got math.Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-3, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-3, "y")
	assert.InDelta(t, want.Z, got.Z, 1e-3, "z")
}

func TestScenarioAForward(t *testing.T) {
	r := newRig(t)
	r.intent.v = math.Vec2{Y: 1}
	r.body.PushVelocity(math.Vec3{Y: -2})

	r.ctrl.Update(t0.Add(100 * time.Millisecond))

	assertVec(t, math.Vec3{X: 0, Y: -2, Z: -0.1 * DefaultVelocityFactor}, r.written(t))
	assert.Equal(t, Active, r.ctrl.State())
}

func TestScenarioBLocked(t *testing.T) {
	r := newRig(t)
	r.intent.v = math.Vec2{Y: 1}
	r.body.PushVelocity(math.Vec3{Y: -2})
	r.ctrl.SetLocked(true)

	r.ctrl.Update(t0.Add(100 * time.Millisecond))

	assert.Equal(t, math.Vec3{Y: -2}, r.written(t))
	assert.True(t, r.ctrl.Locked())
}

func TestScenarioCPaused(t *testing.T) {
	intents := []math.Vec2{{}, {Y: 1}, {X: -1}, {X: 0.6, Y: -0.8}}
	for _, in := range intents {
		r := newRig(t)
		r.intent.v = in
		r.body.PushVelocity(math.Vec3{X: 3, Y: -2, Z: 1})
		r.pause.Store(true)

		r.ctrl.Update(t0.Add(100 * time.Millisecond))

		assert.Equal(t, math.Vec3{}, r.written(t), "intent %v", in)
		assert.Equal(t, Paused, r.ctrl.State())
	}
}

func TestPauseThenResume(t *testing.T) {
	r := newRig(t)
	r.intent.v = math.Vec2{Y: 1}
	r.pause.Store(true)
	r.ctrl.Update(t0.Add(50 * time.Millisecond))
	r.ctrl.Update(t0.Add(100 * time.Millisecond))

	r.pause.Store(false)
	r.ctrl.Update(t0.Add(120 * time.Millisecond))

	// Delta counts from the last paused frame, not from the last active one.
	assertVec(t, math.Vec3{Z: -0.02 * DefaultVelocityFactor}, r.written(t))
	assert.Equal(t, Active, r.ctrl.State())
	assert.Equal(t, []bool{true, true, false}, r.frames.paused)
}

func TestVerticalPreservation(t *testing.T) {
	r := newRig(t)
	look := math.QuatFromYawPitch(1.1, -0.6)
	r.look.q = look
	r.intent.v = math.Vec2{X: 0.3, Y: 0.9}

	now := t0
	for i, vy := range []float32{-2, 0, 4.5, -9.8} {
		r.body.PushVelocity(math.Vec3{X: 7, Y: vy, Z: -7})
		now = now.Add(time.Duration(i+1) * 10 * time.Millisecond)
		r.ctrl.Update(now)
		assert.Equal(t, vy, r.written(t).Y)
	}
}

func TestStrafeForwardAsymmetry(t *testing.T) {
	strafe := newRig(t)
	strafe.intent.v = math.Vec2{X: 1}
	strafe.ctrl.Update(t0.Add(40 * time.Millisecond))

	forward := newRig(t)
	forward.intent.v = math.Vec2{Y: 1}
	forward.ctrl.Update(t0.Add(40 * time.Millisecond))

	x := strafe.written(t).X
	z := forward.written(t).Z
	assert.Greater(t, x, float32(0), "positive X intent strafes right")
	assert.InDelta(t, 0.75, gomath.Abs(float64(x))/gomath.Abs(float64(z)), 1e-6)
}

func TestMovementFollowsYawOnly(t *testing.T) {
	r := newRig(t)
	r.intent.v = math.Vec2{Y: 1}
	// Looking steeply down must not slow horizontal motion or add vertical motion.
	r.look.q = math.QuatFromYawPitch(gomath.Pi/2, -1.2)

	r.ctrl.Update(t0.Add(100 * time.Millisecond))

	// Yaw pi/2 turns forward from -Z to -X.
	assertVec(t, math.Vec3{X: -0.1 * DefaultVelocityFactor}, r.written(t))
}

func TestLockStillUpdatesRay(t *testing.T) {
	r := newRig(t)
	r.ctrl.SetLocked(true)
	r.intent.v = math.Vec2{X: 1, Y: 1}

	r.ctrl.Update(t0.Add(16 * time.Millisecond))
	before := r.ctrl.Ray().Direction

	r.look.q = math.QuatFromYawPitch(0.8, 0.2)
	r.ctrl.Update(t0.Add(32 * time.Millisecond))
	after := r.ctrl.Ray().Direction

	assert.False(t, before.ApproxEqual(after, 1e-3), "ray follows look while locked")
	v := r.written(t)
	assert.Equal(t, float32(0), v.X)
	assert.Equal(t, float32(0), v.Z)

	r.ctrl.SetLocked(false)
	r.ctrl.Update(t0.Add(48 * time.Millisecond))
	v = r.written(t)
	assert.NotEqual(t, float32(0), v.X)
}

func TestRayDerivation(t *testing.T) {
	r := newRig(t)
	pos := math.Vec3{X: 4, Y: 1.2, Z: -3}
	r.body.PushPosition(pos)
	r.look.q = math.QuatFromYawPitch(-0.4, 0.3)

	r.ctrl.Update(t0.Add(16 * time.Millisecond))

	ray := r.ctrl.Ray()
	assert.Equal(t, pos, ray.Origin)
	assert.InDelta(t, 1, ray.Direction.Length(), 1e-5)
	assert.Equal(t, float32(0), ray.Near)
	assert.Equal(t, float32(3), ray.Far)

	r.pause.Store(true)
	moved := math.Vec3{X: 5}
	r.body.PushPosition(moved)
	r.ctrl.Update(t0.Add(32 * time.Millisecond))
	assert.Equal(t, moved, r.ctrl.Ray().Origin, "ray updates while paused")
}

func TestNegativeDeltaClamped(t *testing.T) {
	r := newRig(t)
	r.intent.v = math.Vec2{Y: 1}
	r.body.PushVelocity(math.Vec3{Y: -1})

	r.ctrl.Update(t0.Add(-time.Second))

	assert.Equal(t, math.Vec3{Y: -1}, r.written(t))
	assert.Equal(t, []time.Duration{0}, r.frames.deltas)
}

func TestZeroStartGivesZeroFirstDelta(t *testing.T) {
	r := newRig(t)
	r.ctrl = NewController(r.binding, r.intent, r.look, nil, Options{Observer: r.frames})
	r.intent.v = math.Vec2{Y: 1}

	r.ctrl.Update(t0)
	r.ctrl.Update(t0.Add(20 * time.Millisecond))

	assert.Equal(t, []time.Duration{0, 20 * time.Millisecond}, r.frames.deltas)
	assertVec(t, math.Vec3{Z: -0.02 * DefaultVelocityFactor}, r.written(t))
}

func TestEveryFrameWritesVelocity(t *testing.T) {
	r := newRig(t)
	for i := 1; i <= 5; i++ {
		r.pause.Store(i%2 == 0)
		r.ctrl.Update(t0.Add(time.Duration(i) * 16 * time.Millisecond))
	}
	assert.Len(t, r.body.Velocities(), 5)
}

func TestSpawnLook(t *testing.T) {
	yaw, pitch := SpawnLook(0)
	assert.InDelta(t, -gomath.Pi/2, yaw, 1e-5)
	assert.Equal(t, float32(0), pitch)

	dir := math.QuatFromYawPitch(SpawnLook(0.9)).RotateVec3(math.ForwardAxis)
	assert.InDelta(t, gomath.Cos(0.9), dir.X, 1e-5)
	assert.InDelta(t, gomath.Sin(0.9), dir.Z, 1e-5)
}
