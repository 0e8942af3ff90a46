// Package geometry provides value-type 3D shapes and the ray intersection
// tests used for picking.
//
// Every function here is pure and synchronous. Degenerate inputs (zero
// volume boxes, rays parallel to a plane) are handled by reporting a miss or
// by a documented fallback, never by returning an error.
package geometry

import "github.com/Faultbox/raypick/pkg/math"

// Epsilon is the float32 machine epsilon (2^-23).
const Epsilon float32 = 1.1920929e-07

// Sphere is a sphere with a center and a radius.
type Sphere struct {
	Origin math.Vec3
	Radius float32
}

// Plane is an infinite plane through Origin, facing Normal.
type Plane struct {
	Origin math.Vec3
	Normal math.Vec3
}

// Disc is a flat circle lying in the plane through Origin with Normal.
type Disc struct {
	Origin math.Vec3
	Normal math.Vec3
	Radius float32
}

// Triangle is three points. Winding is counter-clockwise about Normal.
type Triangle [3]math.Vec3

// Normal returns the unit normal of the triangle.
func (t Triangle) Normal() math.Vec3 {
	return t[1].Sub(t[0]).Cross(t[2].Sub(t[0])).Normalize()
}

// Centroid returns the average of the three points.
func (t Triangle) Centroid() math.Vec3 {
	return t[0].Add(t[1]).Add(t[2]).Scale(1.0 / 3.0)
}

// Bounds returns the tightest AABB around the triangle.
func (t Triangle) Bounds() AABB {
	return AABBFromPoints(t[:])
}

// Transform is a decomposed scale, then rotate, then translate transform.
type Transform struct {
	Position math.Vec3
	Rotation math.Quat
	Scale    math.Vec3
}

// IdentityTransform returns a transform that leaves points unchanged.
func IdentityTransform() Transform {
	return Transform{Rotation: math.QuatIdentity(), Scale: math.Splat(1)}
}

// Mat4 returns the transform as a matrix.
func (t Transform) Mat4() math.Mat4 {
	return math.TRS(t.Position, t.Rotation, t.Scale)
}
