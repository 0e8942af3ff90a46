package geometry

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/raypick/pkg/math"
)

// BoundingSphereOf returns a sphere centered on the bounding box of points
// whose radius reaches the furthest point.
//
// This is not the minimal bounding sphere; it is only meant for coarse
// culling. No points yields the zero sphere.
func BoundingSphereOf(points []math.Vec3) Sphere {
	rv := Sphere{Origin: AABBFromPoints(points).Midpoint()}
	if len(points) == 0 {
		return rv
	}

	var biggestR2 float32
	for _, p := range points {
		biggestR2 = math32.Max(biggestR2, p.Sub(rv.Origin).LengthSquared())
	}
	rv.Radius = math32.Sqrt(biggestR2)
	return rv
}
