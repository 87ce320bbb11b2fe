// Package debug generates line geometry for debug visualization.
// All generators return [x, y, z] per vertex, two vertices per line.
package debug

import (
	gomath "math"

	"github.com/Faultbox/spaces/internal/engine/picking"
	"github.com/Faultbox/spaces/internal/physics"
	"github.com/Faultbox/spaces/pkg/math"
)

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// DefaultCapsuleSegments is the ring resolution used for the player hitbox.
const DefaultCapsuleSegments = 16

// BoxLines creates line vertices for a wireframe bounding box.
func BoxLines(box picking.AABB) []float32 {
	minX, minY, minZ := box.Min.X, box.Min.Y, box.Min.Z
	maxX, maxY, maxZ := box.Max.X, box.Max.Y, box.Max.Z
	return []float32{
		// Bottom face (4 edges)
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face (4 edges)
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges (4 edges)
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}

// CapsuleLines creates a wireframe for a vertical capsule centered at
// center: a ring at each end of the cylinder, four side lines and two
// half-circle arcs over each cap.
func CapsuleLines(center math.Vec3, shape physics.Capsule, segments int) []float32 {
	if segments < 4 {
		segments = 4
	}
	r := shape.Radius
	top := center.Y + shape.Height/2
	bottom := center.Y - shape.Height/2

	verts := make([]float32, 0, (2*segments+4+2*segments)*6)
	line := func(a, b math.Vec3) {
		verts = append(verts, a.X, a.Y, a.Z, b.X, b.Y, b.Z)
	}

	// Rings
	for i := 0; i < segments; i++ {
		a0 := 2 * gomath.Pi * float64(i) / float64(segments)
		a1 := 2 * gomath.Pi * float64(i+1) / float64(segments)
		p0 := math.Vec3{X: r * float32(gomath.Cos(a0)), Z: r * float32(gomath.Sin(a0))}
		p1 := math.Vec3{X: r * float32(gomath.Cos(a1)), Z: r * float32(gomath.Sin(a1))}
		for _, y := range []float32{bottom, top} {
			line(center.Add(p0).WithY(y), center.Add(p1).WithY(y))
		}
	}

	// Sides
	for _, off := range []math.Vec3{{X: r}, {X: -r}, {Z: r}, {Z: -r}} {
		p := center.Add(off)
		line(p.WithY(bottom), p.WithY(top))
	}

	// Cap arcs in the XY and ZY planes
	half := segments / 2
	for _, axis := range []math.Vec3{{X: 1}, {Z: 1}} {
		for i := 0; i < half; i++ {
			a0 := gomath.Pi * float64(i) / float64(half)
			a1 := gomath.Pi * float64(i+1) / float64(half)
			for _, end := range []struct {
				y    float32
				sign float32
			}{{top, 1}, {bottom, -1}} {
				p0 := axis.Scale(r * float32(gomath.Cos(a0))).Add(math.Vec3{Y: end.sign * r * float32(gomath.Sin(a0))})
				p1 := axis.Scale(r * float32(gomath.Cos(a1))).Add(math.Vec3{Y: end.sign * r * float32(gomath.Sin(a1))})
				base := center.WithY(end.y)
				line(base.Add(p0), base.Add(p1))
			}
		}
	}

	return verts
}

// GridLines creates a square grid on the plane y, extending halfSize in
// each direction from the origin with lines every step units.
func GridLines(halfSize, step, y float32) []float32 {
	if step <= 0 || halfSize <= 0 {
		return nil
	}
	n := int(halfSize / step)
	verts := make([]float32, 0, (2*n+1)*12)
	for i := -n; i <= n; i++ {
		c := float32(i) * step
		verts = append(verts,
			c, y, -halfSize, c, y, halfSize,
			-halfSize, y, c, halfSize, y, c,
		)
	}
	return verts
}

// RayLines creates a single line from the ray's near to far point.
func RayLines(r picking.Ray) []float32 {
	a, b := r.At(r.Near), r.At(r.Far)
	return []float32{a.X, a.Y, a.Z, b.X, b.Y, b.Z}
}

// VertexCount returns the number of [x, y, z] vertices in verts.
func VertexCount(verts []float32) int32 {
	return int32(len(verts) / 3)
}
