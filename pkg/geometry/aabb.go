package geometry

import (
	"github.com/Faultbox/raypick/pkg/math"
)

// AABB is an axis-aligned bounding box. Min is component-wise <= Max for a
// valid box; any axis may have zero extent.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// AABBFromPoints returns the bounds of points. No points yields the zero box.
func AABBFromPoints(points []math.Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	rv := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		rv.Min = rv.Min.Min(p)
		rv.Max = rv.Max.Max(p)
	}
	return rv
}

// AABBFromIndexedPoints returns the bounds of the points referenced by
// indices. No indices yields the zero box.
func AABBFromIndexedPoints(points []math.Vec3, indices []uint32) AABB {
	if len(indices) == 0 {
		return AABB{}
	}
	first := points[indices[0]]
	rv := AABB{Min: first, Max: first}
	for _, idx := range indices[1:] {
		rv.Min = rv.Min.Min(points[idx])
		rv.Max = rv.Max.Max(points[idx])
	}
	return rv
}

// UnionAll returns the union of boxes. No boxes yields the zero box.
func UnionAll(boxes []AABB) AABB {
	if len(boxes) == 0 {
		return AABB{}
	}
	rv := boxes[0]
	for _, b := range boxes[1:] {
		rv = rv.Union(b)
	}
	return rv
}

// Union returns the smallest box containing both a and b.
func (a AABB) Union(b AABB) AABB {
	return AABB{Min: a.Min.Min(b.Min), Max: a.Max.Max(b.Max)}
}

// Dimensions returns the extent along each axis.
func (a AABB) Dimensions() math.Vec3 {
	return a.Max.Sub(a.Min)
}

// Midpoint returns the center of the box.
func (a AABB) Midpoint() math.Vec3 {
	return a.Min.Add(a.Max).Scale(0.5)
}

// Volume returns the product of the dimensions.
func (a AABB) Volume() float32 {
	d := a.Dimensions()
	return d.X * d.Y * d.Z
}

// IsEmpty reports whether the box's volume is at most Epsilon.
//
// A thin sliver (one zero-extent axis) counts as empty, so this is not an
// "uninitialized" check.
func (a AABB) IsEmpty() bool {
	return a.Volume() <= Epsilon
}

// LongestDimIndex returns the axis (0=X, 1=Y, 2=Z) with the greatest
// extent. X wins ties with Y and Z, Y wins ties with Z.
func (a AABB) LongestDimIndex() int {
	d := a.Dimensions()
	switch {
	case d.X >= d.Y && d.X >= d.Z:
		return 0
	case d.Y >= d.Z:
		return 1
	default:
		return 2
	}
}

// LongestDim returns the greatest extent of the box.
func (a AABB) LongestDim() float32 {
	return a.Dimensions().Get(a.LongestDimIndex())
}

// Contains reports whether p lies inside or on the box.
func (a AABB) Contains(p math.Vec3) bool {
	return a.Min.X <= p.X && p.X <= a.Max.X &&
		a.Min.Y <= p.Y && p.Y <= a.Max.Y &&
		a.Min.Z <= p.Z && p.Z <= a.Max.Z
}

// ContainsAABB reports whether o lies entirely inside a.
func (a AABB) ContainsAABB(o AABB) bool {
	return a.Contains(o.Min) && a.Contains(o.Max)
}

// Corners returns the 8 corners of the box.
func (a AABB) Corners() [8]math.Vec3 {
	lo, hi := a.Min, a.Max
	return [8]math.Vec3{
		{X: lo.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: lo.Y, Z: lo.Z},
		{X: lo.X, Y: hi.Y, Z: lo.Z},
		{X: hi.X, Y: hi.Y, Z: lo.Z},
		{X: lo.X, Y: lo.Y, Z: hi.Z},
		{X: hi.X, Y: lo.Y, Z: hi.Z},
		{X: lo.X, Y: hi.Y, Z: hi.Z},
		{X: hi.X, Y: hi.Y, Z: hi.Z},
	}
}

// Transform returns the bounds of the box's 8 corners after transforming
// them by m (with perspective divide).
//
// The result is generally larger than the transformed shape. Repeatedly
// transforming a box therefore grows it; always start from the original.
func (a AABB) Transform(m math.Mat4) AABB {
	corners := a.Corners()
	for i, c := range corners {
		corners[i] = m.TransformPoint(c)
	}
	return AABBFromPoints(corners[:])
}

// TransformBy returns the bounds of the box after applying t.
//
// Each output axis is formed by summing the smaller and larger products of
// the rotation-scale matrix with the input extents (Arvo's method), which is
// exact for affine transforms and cheaper than transforming 8 corners.
func (a AABB) TransformBy(t Transform) AABB {
	m := t.Rotation.ToMat4().Mul(math.Scale(t.Scale))

	rv := AABB{Min: t.Position, Max: t.Position}
	for i := 0; i < 3; i++ {
		lo, hi := rv.Min.Get(i), rv.Max.Get(i)
		for j := 0; j < 3; j++ {
			e := m.At(i, j) * a.Min.Get(j)
			f := m.At(i, j) * a.Max.Get(j)
			if e < f {
				lo += e
				hi += f
			} else {
				lo += f
				hi += e
			}
		}
		rv.Min = rv.Min.With(i, lo)
		rv.Max = rv.Max.With(i, hi)
	}
	return rv
}
