package math

import (
	"math"
	"testing"
)

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslateTransform(t *testing.T) {
	got := Translate(10, 20, 30).TransformVec3(Vec3{1, 2, 3})
	if got != (Vec3{11, 22, 33}) {
		t.Errorf("TransformVec3: got %v, want (11, 22, 33)", got)
	}
}

func TestLookAtForward(t *testing.T) {
	// Eye at origin looking down -Z should be identity rotation.
	view := LookAt(Vec3{}, Vec3{0, 0, -1}, UpAxis)
	id := Identity()
	for i := 0; i < 16; i++ {
		if math.Abs(float64(view[i]-id[i])) > 1e-5 {
			t.Errorf("LookAt down -Z element %d: got %v, want %v", i, view[i], id[i])
		}
	}
}

func TestLookAtMatchesQuatView(t *testing.T) {
	// The view matrix of a yaw/pitch camera is the transposed rotation.
	yaw, pitch := float32(0.8), float32(-0.25)
	q := QuatFromYawPitch(yaw, pitch)
	eye := Vec3{3, 1, -2}

	fromLookAt := LookAt(eye, eye.Add(q.RotateVec3(ForwardAxis)), UpAxis)
	fromQuat := q.ToMat4().Transpose().Mul(Translate(-eye.X, -eye.Y, -eye.Z))

	for i := 0; i < 16; i++ {
		if math.Abs(float64(fromLookAt[i]-fromQuat[i])) > 1e-4 {
			t.Errorf("element %d: LookAt %v, quaternion view %v", i, fromLookAt[i], fromQuat[i])
		}
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(float32(math.Pi/2), 1, 0.1, 100)
	if math.Abs(float64(m[0]-1)) > 1e-5 || math.Abs(float64(m[5]-1)) > 1e-5 {
		t.Errorf("90 degree fov should give unit focal length, got %v %v", m[0], m[5])
	}
	if m[11] != -1 {
		t.Errorf("perspective w row: got %v, want -1", m[11])
	}
}
