package math

import (
	"math"
	"testing"
)

const eps = 1e-5

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n := q.Normalize()

	length := float32(math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)))
	if math.Abs(float64(length-1.0)) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}

	if got := (Quat{}).Normalize(); got != QuatIdentity() {
		t.Errorf("zero quaternion should normalize to identity, got %v", got)
	}
}

func TestQuatRotateVec3(t *testing.T) {
	tests := []struct {
		name string
		q    Quat
		v    Vec3
		want Vec3
	}{
		{"identity", QuatIdentity(), ForwardAxis, ForwardAxis},
		{"yaw 90 turns forward to -X", QuatFromAxisAngle(UpAxis, math.Pi/2), ForwardAxis, Vec3{-1, 0, 0}},
		{"yaw 180 turns forward to +Z", QuatFromAxisAngle(UpAxis, math.Pi), ForwardAxis, Vec3{0, 0, 1}},
		{"pitch 90 turns forward up", QuatFromAxisAngle(RightAxis, math.Pi/2), ForwardAxis, Vec3{0, 1, 0}},
		{"yaw leaves up alone", QuatFromAxisAngle(UpAxis, 1.2), UpAxis, UpAxis},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.q.RotateVec3(tt.v)
			if !got.ApproxEqual(tt.want, eps) {
				t.Errorf("RotateVec3(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestQuatRotateMatchesMatrix(t *testing.T) {
	q := QuatFromYawPitch(0.7, -0.3)
	v := Vec3{0.2, -1.5, 3}

	got := q.RotateVec3(v)
	want := q.ToMat4().TransformVec3(v)
	if !got.ApproxEqual(want, 1e-4) {
		t.Errorf("RotateVec3 = %v, matrix gives %v", got, want)
	}
}

func TestYawPitchRoundTrip(t *testing.T) {
	for _, tc := range []struct{ yaw, pitch float32 }{
		{0, 0}, {1, 0.3}, {-2.5, -0.8}, {3, 1.2},
	} {
		dir := QuatFromYawPitch(tc.yaw, tc.pitch).RotateVec3(ForwardAxis)
		yaw, pitch := YawPitchFromDirection(dir)
		if math.Abs(float64(yaw-tc.yaw)) > 1e-4 || math.Abs(float64(pitch-tc.pitch)) > 1e-4 {
			t.Errorf("round trip (%v,%v) gave (%v,%v)", tc.yaw, tc.pitch, yaw, pitch)
		}
	}
}

func TestQuatYawOnly(t *testing.T) {
	q := QuatFromYawPitch(0.9, 0.6)
	y := q.YawOnly()

	if y.X != 0 || y.Z != 0 {
		t.Fatalf("YawOnly kept tilt components: %v", y)
	}

	// A pure yaw keeps horizontal vectors horizontal.
	got := y.RotateVec3(ForwardAxis)
	if math.Abs(float64(got.Y)) > eps {
		t.Errorf("yaw-only rotation tilted forward vector: %v", got)
	}
	want := QuatFromYawPitch(0.9, 0).RotateVec3(ForwardAxis)
	if !got.ApproxEqual(want, 1e-4) {
		t.Errorf("YawOnly forward = %v, want %v", got, want)
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	// 90 degrees around Y axis
	q := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	expectedW := float32(math.Cos(math.Pi / 4))
	expectedY := float32(math.Sin(math.Pi / 4))

	if math.Abs(float64(q.W-expectedW)) > 0.001 {
		t.Errorf("QuatFromAxisAngle W: expected %v, got %v", expectedW, q.W)
	}
	if math.Abs(float64(q.Y-expectedY)) > 0.001 {
		t.Errorf("QuatFromAxisAngle Y: expected %v, got %v", expectedY, q.Y)
	}
}
