package geometry

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/raypick/pkg/math"
)

// parallelEpsilon is the smallest |dot(direction, normal)| at which a ray is
// still considered to cross a plane.
const parallelEpsilon = 1e-6

// Ray is a half-line: every point is Origin + t*Direction for t >= 0.
//
// Direction is usually normalized by callers, but only IntersectSphere's
// internal coefficients depend on that, and its roots are still correct
// without it.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Transform returns the ray moved by m. The direction is not renormalized,
// so a t found against the transformed ray is the same t on the original.
func (r Ray) Transform(m math.Mat4) Ray {
	return Ray{
		Origin:    m.TransformPoint(r.Origin),
		Direction: m.TransformDirection(r.Direction),
	}
}

// IntersectSphere returns the entry and exit parameters of the ray through
// s, with t0 <= t1. When the origin is inside the sphere t0 is replaced by
// the exit parameter. A sphere entirely behind the origin is a miss.
func (r Ray) IntersectSphere(s Sphere) (t0, t1 float32, ok bool) {
	l := r.Origin.Sub(s.Origin)

	a := r.Direction.Dot(r.Direction) // 1 when Direction is normalized
	b := 2 * r.Direction.Dot(l)
	c := l.Dot(l) - s.Radius*s.Radius

	t0, t1, ok = SolveQuadratic(a, b, c)
	if !ok {
		return 0, 0, false
	}

	if t0 > t1 {
		t0, t1 = t1, t0
	}
	if t0 < 0 {
		t0 = t1
		if t0 < 0 {
			return 0, 0, false
		}
	}
	return t0, t1, true
}

// IntersectAABB returns the parameter interval [t0, t1] over which the
// ray's line lies inside b, using the slab method.
//
// A zero direction component divides to +-Inf, which correctly resolves rays
// parallel to a slab. t0 may be negative when the origin is inside the box or
// the box is behind the ray; callers decide whether to accept that.
func (r Ray) IntersectAABB(b AABB) (t0, t1 float32, ok bool) {
	t0 = -math32.MaxFloat32
	t1 = math32.MaxFloat32

	for i := 0; i < 3; i++ {
		invDir := 1 / r.Direction.Get(i)
		origin := r.Origin.Get(i)
		tNear := (b.Min.Get(i) - origin) * invDir
		tFar := (b.Max.Get(i) - origin) * invDir
		if tNear > tFar {
			tNear, tFar = tFar, tNear
		}
		// NaN (origin on a slab face of a parallel ray) leaves the
		// interval unchanged
		if tNear > t0 {
			t0 = tNear
		}
		if tFar < t1 {
			t1 = tFar
		}

		if t0 > t1 {
			return 0, 0, false
		}
	}
	return t0, t1, true
}

// IntersectPlane returns the parameter where the ray's line crosses p.
// Nearly parallel rays report a miss. t may be negative.
func (r Ray) IntersectPlane(p Plane) (t float32, ok bool) {
	denom := p.Normal.Dot(r.Direction)
	if math32.Abs(denom) <= parallelEpsilon {
		return 0, false
	}
	return p.Origin.Sub(r.Origin).Dot(p.Normal) / denom, true
}

// IntersectDisc returns the parameter where the ray's line crosses d, if the
// crossing lies within the disc's radius. t may be negative.
func (r Ray) IntersectDisc(d Disc) (t float32, ok bool) {
	t, ok = r.IntersectPlane(Plane{Origin: d.Origin, Normal: d.Normal})
	if !ok {
		return 0, false
	}
	if r.At(t).Sub(d.Origin).LengthSquared() > d.Radius*d.Radius {
		return 0, false
	}
	return t, true
}

// IntersectTriangle returns the parameter where the ray hits tri, using the
// geometric inside-outside test. Hits behind the origin are misses, so
// t >= 0 whenever ok is true. Both faces are hit.
func (r Ray) IntersectTriangle(tri Triangle) (t float32, ok bool) {
	n := tri.Normal()

	nDotDir := n.Dot(r.Direction)
	if math32.Abs(nDotDir) < Epsilon {
		return 0, false
	}

	d := n.Dot(tri[0])
	t = -(n.Dot(r.Origin) - d) / nDotDir
	if t < 0 {
		return 0, false
	}

	p := r.At(t)
	for i := 0; i < 3; i++ {
		start := tri[i]
		end := tri[(i+1)%3]
		if end.Sub(start).Cross(p.Sub(start)).Dot(n) < 0 {
			return 0, false
		}
	}
	return t, true
}
