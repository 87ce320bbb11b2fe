package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/spaces/pkg/math"
)

func near(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-4
}

func TestNewFirstPersonLooksDownNegativeZ(t *testing.T) {
	c := NewFirstPerson(75, 16.0/9.0)
	if f := c.Forward(); !f.ApproxEqual(math.ForwardAxis, 1e-6) {
		t.Errorf("Forward() = %v, want %v", f, math.ForwardAxis)
	}
}

func TestFaceSpawn(t *testing.T) {
	tests := []struct {
		name string
		yaw  float32
		want math.Vec3
	}{
		{"yaw 0 faces +X", 0, math.Vec3{X: 1}},
		{"yaw pi/2 faces +Z", gomath.Pi / 2, math.Vec3{Z: 1}},
		{"yaw pi faces -X", gomath.Pi, math.Vec3{X: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewFirstPerson(75, 1)
			spawn := math.Vec3{X: 0, Y: 1, Z: 0}
			c.FaceSpawn(spawn, tt.yaw)

			if c.Position != spawn {
				t.Errorf("Position = %v, want %v", c.Position, spawn)
			}
			if f := c.Forward(); !f.ApproxEqual(tt.want, 1e-4) {
				t.Errorf("Forward() = %v, want %v", f, tt.want)
			}
			if !near(c.Pitch, 0) {
				t.Errorf("Pitch = %v, want 0", c.Pitch)
			}
		})
	}
}

func TestLookAtSamePointKeepsOrientation(t *testing.T) {
	c := NewFirstPerson(75, 1)
	c.Yaw, c.Pitch = 0.3, 0.2
	c.LookAt(c.Position)

	if c.Yaw != 0.3 || c.Pitch != 0.2 {
		t.Errorf("orientation changed to (%v, %v)", c.Yaw, c.Pitch)
	}
}

func TestFollow(t *testing.T) {
	c := NewFirstPerson(75, 1)
	pos := math.Vec3{X: 2, Y: 1.5, Z: -3}
	look := math.QuatFromYawPitch(0.7, -0.4)

	c.Follow(pos, look)

	if c.Position != pos {
		t.Errorf("Position = %v, want %v", c.Position, pos)
	}
	if !near(c.Yaw, 0.7) || !near(c.Pitch, -0.4) {
		t.Errorf("YawPitch = (%v, %v), want (0.7, -0.4)", c.Yaw, c.Pitch)
	}
}

func TestViewMatrixMatchesLookAt(t *testing.T) {
	c := NewFirstPerson(75, 1)
	c.Position = math.Vec3{X: 1, Y: 2, Z: 3}
	target := math.Vec3{X: 4, Y: 2, Z: -1}
	c.LookAt(target)

	got := c.ViewMatrix()
	want := math.LookAt(c.Position, target, math.UpAxis)
	for i := range got {
		if !near(got[i], want[i]) {
			t.Fatalf("ViewMatrix()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestViewMatrixMovesEyeToOrigin(t *testing.T) {
	c := NewFirstPerson(75, 1)
	c.Follow(math.Vec3{X: 5, Y: 1, Z: 5}, math.QuatFromYawPitch(1, 0.3))

	p := c.ViewMatrix().TransformVec3(c.Position)
	if !p.ApproxEqual(math.Vec3{}, 1e-4) {
		t.Errorf("eye in view space = %v, want origin", p)
	}
}

func TestSetViewport(t *testing.T) {
	c := NewFirstPerson(75, 1)
	c.SetViewport(1280, 720)
	if !near(c.Aspect, 1280.0/720.0) {
		t.Errorf("Aspect = %v", c.Aspect)
	}

	c.SetViewport(100, 0)
	if !near(c.Aspect, 1280.0/720.0) {
		t.Errorf("zero height changed aspect to %v", c.Aspect)
	}
}
