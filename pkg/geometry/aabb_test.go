package geometry

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/raypick/pkg/math"
)

func box(minX, minY, minZ, maxX, maxY, maxZ float32) AABB {
	return AABB{Min: math.Vec3{X: minX, Y: minY, Z: minZ}, Max: math.Vec3{X: maxX, Y: maxY, Z: maxZ}}
}

func assertVecInDelta(t *testing.T, want, got math.Vec3, delta float64, msgAndArgs ...interface{}) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, delta, msgAndArgs...)
	assert.InDelta(t, want.Z, got.Z, delta, msgAndArgs...)
}

func TestAABBFromPoints(t *testing.T) {
	assert.Equal(t, AABB{}, AABBFromPoints(nil))

	got := AABBFromPoints([]math.Vec3{{X: 1, Y: -2, Z: 3}, {X: -1, Y: 4, Z: 0}, {X: 0, Y: 0, Z: 5}})
	assert.Equal(t, box(-1, -2, 0, 1, 4, 5), got)
}

func TestAABBFromIndexedPoints(t *testing.T) {
	points := []math.Vec3{{X: 100}, {X: 1, Y: 1, Z: 1}, {X: -1, Y: 2, Z: 0}}
	assert.Equal(t, AABB{}, AABBFromIndexedPoints(points, nil))
	assert.Equal(t, box(-1, 1, 0, 1, 2, 1), AABBFromIndexedPoints(points, []uint32{1, 2, 1}))
}

func TestAABBUnion(t *testing.T) {
	a := box(0, 0, 0, 1, 2, 3)
	b := box(-1, 1, 2, 2, 1.5, 3.5)

	assert.Equal(t, a, a.Union(a), "union is idempotent")
	assert.Equal(t, a.Union(b), b.Union(a), "union is commutative")

	u := a.Union(b)
	assert.Equal(t, box(-1, 0, 0, 2, 2, 3.5), u)
	assert.True(t, u.ContainsAABB(a))
	assert.True(t, u.ContainsAABB(b))
}

func TestUnionAll(t *testing.T) {
	assert.Equal(t, AABB{}, UnionAll(nil))
	boxes := []AABB{box(0, 0, 0, 1, 1, 1), box(5, 5, 5, 6, 6, 6), box(-2, 0, 0, -1, 1, 1)}
	assert.Equal(t, box(-2, 0, 0, 6, 6, 6), UnionAll(boxes))
}

func TestAABBIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		box  AABB
		want bool
	}{
		{"zero", AABB{}, true},
		{"point", box(1, 1, 1, 1, 1, 1), true},
		{"flat sliver", box(0, 0, 0, 10, 10, 0), true},
		{"tiny volume", box(0, 0, 0, 1e-3, 1e-3, 1e-3), true},
		{"unit", box(0, 0, 0, 1, 1, 1), false},
		{"thin but solid", box(0, 0, 0, 1, 1, 1e-3), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.box.IsEmpty())
		})
	}
}

func TestAABBLongestDimIndex(t *testing.T) {
	tests := []struct {
		name string
		box  AABB
		want int
	}{
		{"x", box(0, 0, 0, 3, 1, 1), 0},
		{"y", box(0, 0, 0, 1, 3, 1), 1},
		{"z", box(0, 0, 0, 1, 1, 3), 2},
		{"x ties y", box(0, 0, 0, 2, 2, 1), 0},
		{"x ties z", box(0, 0, 0, 2, 1, 2), 0},
		{"y ties z", box(0, 0, 0, 1, 2, 2), 1},
		{"cube", box(0, 0, 0, 1, 1, 1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.box.LongestDimIndex())
		})
	}
	assert.Equal(t, float32(3), box(0, 0, 0, 1, 1, 3).LongestDim())
}

func TestAABBMidpointVolume(t *testing.T) {
	b := box(-1, 0, 2, 3, 2, 4)
	assert.Equal(t, math.Vec3{X: 1, Y: 1, Z: 3}, b.Midpoint())
	assert.Equal(t, math.Vec3{X: 4, Y: 2, Z: 2}, b.Dimensions())
	assert.Equal(t, float32(16), b.Volume())
}

func TestAABBCorners(t *testing.T) {
	b := box(0, 0, 0, 1, 2, 3)
	corners := b.Corners()
	assert.Equal(t, b, AABBFromPoints(corners[:]))
	seen := map[math.Vec3]bool{}
	for _, c := range corners {
		seen[c] = true
	}
	assert.Len(t, seen, 8)
}

func TestAABBTransform(t *testing.T) {
	b := box(-1, -1, -1, 1, 1, 1)

	moved := b.Transform(math.Translate(math.Vec3{X: 10}))
	assert.Equal(t, box(9, -1, -1, 11, 1, 1), moved)

	// a 45 degree turn about Y widens X and Z to sqrt(2)
	turned := b.Transform(math.RotateY(gomath.Pi / 4))
	s := float32(gomath.Sqrt2)
	assertVecInDelta(t, math.Vec3{X: -s, Y: -1, Z: -s}, turned.Min, 1e-5)
	assertVecInDelta(t, math.Vec3{X: s, Y: 1, Z: s}, turned.Max, 1e-5)

	// transforming the result again keeps growing it
	twice := turned.Transform(math.RotateY(-gomath.Pi / 4))
	assert.Greater(t, twice.Max.X, b.Max.X+0.5)
}

func TestAABBTransformByMatchesCorners(t *testing.T) {
	b := box(-1, 0, 2, 3, 1, 5)
	tr := Transform{
		Position: math.Vec3{X: 4, Y: -2, Z: 1},
		Rotation: math.QuatFromAxisAngle(math.Vec3{X: 1, Y: 1, Z: 0}.Normalize(), 0.7),
		Scale:    math.Vec3{X: 2, Y: 0.5, Z: -1},
	}

	want := b.Transform(tr.Mat4())
	got := b.TransformBy(tr)
	assertVecInDelta(t, want.Min, got.Min, 1e-4)
	assertVecInDelta(t, want.Max, got.Max, 1e-4)

	assert.Equal(t, b, b.TransformBy(IdentityTransform()))
}

func TestBoundingSphereOf(t *testing.T) {
	assert.Equal(t, Sphere{}, BoundingSphereOf(nil))

	points := []math.Vec3{{X: -1}, {X: 1}, {Y: 0.5}}
	s := BoundingSphereOf(points)
	assert.Equal(t, math.Vec3{X: 0, Y: 0.25, Z: 0}, s.Origin)
	assert.InDelta(t, gomath.Sqrt(1+0.25*0.25), s.Radius, 1e-6)
	for _, p := range points {
		assert.LessOrEqual(t, p.Distance(s.Origin), s.Radius+1e-6)
	}
}

func TestTriangleHelpers(t *testing.T) {
	tri := Triangle{{}, {X: 1}, {Y: 1}}
	assert.Equal(t, math.Vec3{Z: 1}, tri.Normal())
	assertVecInDelta(t, math.Vec3{X: 1.0 / 3, Y: 1.0 / 3}, tri.Centroid(), 1e-6)
	assert.Equal(t, box(0, 0, 0, 1, 1, 0), tri.Bounds())
}
