// Package picking provides the interaction ray and the hit tests consumers
// run against it.
package picking

import (
	gomath "math"

	"github.com/Faultbox/spaces/pkg/math"
)

// Interaction range of the player's ray, in world units.
const (
	InteractNear float32 = 0
	InteractFar  float32 = 3
)

// Ray represents a bounded ray in 3D space.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
	Near, Far float32
}

// NewInteractionRay returns the player's look ray: it starts at origin,
// points along ForwardAxis rotated by look, and spans [0,3].
func NewInteractionRay(origin math.Vec3, look math.Quat) Ray {
	return Ray{
		Origin:    origin,
		Direction: look.RotateVec3(math.ForwardAxis).Normalize(),
		Near:      InteractNear,
		Far:       InteractFar,
	}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// NewAABB creates an AABB from two corners in any order.
func NewAABB(a, b math.Vec3) AABB {
	return AABB{
		Min: math.Vec3{X: minf(a.X, b.X), Y: minf(a.Y, b.Y), Z: minf(a.Z, b.Z)},
		Max: math.Vec3{X: maxf(a.X, b.X), Y: maxf(a.Y, b.Y), Z: maxf(a.Z, b.Z)},
	}
}

// Contains reports whether p lies inside the box.
func (b AABB) Contains(p math.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box,
// ignoring the ray's range. Returns the distance to intersection (t) and
// whether intersection occurred. If the ray starts inside the box, returns
// the exit distance.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	origin := r.Origin.Array()
	dir := r.Direction.Array()
	bmin := box.Min.Array()
	bmax := box.Max.Array()

	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < bmin[axis] || origin[axis] > bmax[axis] {
				return 0, false
			}
			continue
		}
		t1 := (bmin[axis] - origin[axis]) / dir[axis]
		t2 := (bmax[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// Hit is IntersectAABB limited to the ray's [Near, Far] range.
func (r Ray) Hit(box AABB) (t float32, hit bool) {
	t, hit = r.IntersectAABB(box)
	if !hit || t < r.Near || t > r.Far {
		return 0, false
	}
	return t, true
}

// Closest returns the index of the nearest box the ray hits within range,
// or -1 when nothing is in reach.
func (r Ray) Closest(boxes []AABB) (index int, t float32) {
	index = -1
	for i, b := range boxes {
		if d, ok := r.Hit(b); ok && (index < 0 || d < t) {
			index, t = i, d
		}
	}
	return index, t
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
