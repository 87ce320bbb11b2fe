// Package camera provides the first-person render camera.
package camera

import (
	gomath "math"

	"github.com/Faultbox/spaces/pkg/math"
)

// spawnLookDistance is how far ahead of the spawn point the initial
// look target is placed.
const spawnLookDistance = 100

// FirstPerson is a camera locked to an eye position with yaw/pitch
// orientation and no roll.
type FirstPerson struct {
	Position math.Vec3

	// Orientation
	Yaw   float32 // Rotation about +Y (radians), 0 looks down -Z
	Pitch float32 // Rotation about the camera's X axis (radians)

	// Projection
	FOV    float32 // Vertical field of view (degrees)
	Aspect float32
	Near   float32
	Far    float32
}

// NewFirstPerson creates a camera at the origin looking down -Z.
func NewFirstPerson(fov, aspect float32) *FirstPerson {
	return &FirstPerson{
		FOV:    fov,
		Aspect: aspect,
		Near:   0.1,
		Far:    1000.0,
	}
}

// Orientation returns the camera rotation as a quaternion.
func (c *FirstPerson) Orientation() math.Quat {
	return math.QuatFromYawPitch(c.Yaw, c.Pitch)
}

// YawPitch returns the current yaw and pitch.
func (c *FirstPerson) YawPitch() (yaw, pitch float32) {
	return c.Yaw, c.Pitch
}

// Forward returns the unit view direction.
func (c *FirstPerson) Forward() math.Vec3 {
	return c.Orientation().RotateVec3(math.ForwardAxis).Normalize()
}

// LookAt turns the camera toward target. A target at the camera position
// leaves the orientation unchanged.
func (c *FirstPerson) LookAt(target math.Vec3) {
	dir := target.Sub(c.Position)
	if dir.Length() < 1e-6 {
		return
	}
	c.Yaw, c.Pitch = math.YawPitchFromDirection(dir)
}

// FaceSpawn places the camera at pos and aims it horizontally along
// (cos yaw, 0, sin yaw).
func (c *FirstPerson) FaceSpawn(pos math.Vec3, yaw float32) {
	c.Position = pos
	c.LookAt(pos.Add(math.Vec3{
		X: spawnLookDistance * float32(gomath.Cos(float64(yaw))),
		Z: spawnLookDistance * float32(gomath.Sin(float64(yaw))),
	}))
}

// Follow moves the camera to pos and adopts the look orientation.
func (c *FirstPerson) Follow(pos math.Vec3, orientation math.Quat) {
	c.Position = pos
	c.Yaw, c.Pitch = math.YawPitchFromDirection(orientation.RotateVec3(math.ForwardAxis))
}

// SetViewport updates the aspect ratio from window dimensions.
func (c *FirstPerson) SetViewport(width, height int) {
	if height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// ViewMatrix returns the world-to-camera matrix.
func (c *FirstPerson) ViewMatrix() math.Mat4 {
	rot := c.Orientation().ToMat4().Transpose()
	return rot.Mul(math.Translate(-c.Position.X, -c.Position.Y, -c.Position.Z))
}

// ProjectionMatrix returns the perspective projection.
func (c *FirstPerson) ProjectionMatrix() math.Mat4 {
	return math.Perspective(c.FOV*gomath.Pi/180, c.Aspect, c.Near, c.Far)
}
