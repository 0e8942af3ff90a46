package bvh

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Faultbox/raypick/pkg/geometry"
	"github.com/Faultbox/raypick/pkg/math"
)

func vec(x, y, z float32) math.Vec3 {
	return math.Vec3{X: x, Y: y, Z: z}
}

func box(minX, minY, minZ, maxX, maxY, maxZ float32) geometry.AABB {
	return geometry.AABB{Min: vec(minX, minY, minZ), Max: vec(maxX, maxY, maxZ)}
}

func randIn(rng *rand.Rand, lo, hi float32) float32 {
	return lo + rng.Float32()*(hi-lo)
}

func randPoint(rng *rand.Rand, lo, hi float32) math.Vec3 {
	return vec(randIn(rng, lo, hi), randIn(rng, lo, hi), randIn(rng, lo, hi))
}

// randomSoup returns n small triangles scattered through [-10, 10]^3.
func randomSoup(rng *rand.Rand, n int) []math.Vec3 {
	verts := make([]math.Vec3, 0, 3*n)
	for i := 0; i < n; i++ {
		c := randPoint(rng, -10, 10)
		for k := 0; k < 3; k++ {
			verts = append(verts, c.Add(randPoint(rng, -1.5, 1.5)))
		}
	}
	return verts
}

// randomRays returns rays starting outside [-10, 10]^3 aimed at random
// points inside it.
func randomRays(rng *rand.Rand, n int) []geometry.Ray {
	rays := make([]geometry.Ray, 0, n)
	for i := 0; i < n; i++ {
		origin := randPoint(rng, -1, 1).Normalize().Scale(30)
		target := randPoint(rng, -8, 8)
		rays = append(rays, geometry.Ray{Origin: origin, Direction: target.Sub(origin).Normalize()})
	}
	return rays
}

func bruteForceTriangles(verts []math.Vec3, r geometry.Ray) []Collision {
	var out []Collision
	for i := 0; i < len(verts); i += 3 {
		if d, ok := r.IntersectTriangle(geometry.Triangle{verts[i], verts[i+1], verts[i+2]}); ok {
			out = append(out, Collision{PrimID: int32(i), Distance: d})
		}
	}
	return out
}

func bruteForceAABBs(boxes []geometry.AABB, r geometry.Ray) []Collision {
	var out []Collision
	for i, b := range boxes {
		if t0, _, ok := r.IntersectAABB(b); ok {
			out = append(out, Collision{PrimID: int32(i), Distance: t0})
		}
	}
	return out
}

// requireWellFormed checks the structural invariants of a built tree.
func requireWellFormed(t *testing.T, b *BVH) {
	t.Helper()

	if len(b.Prims) == 0 {
		require.Empty(t, b.Nodes)
		return
	}

	covered := make([]int, len(b.Prims))
	var visit func(idx int32)
	visit = func(idx int32) {
		require.GreaterOrEqual(t, idx, int32(0))
		require.Less(t, int(idx), len(b.Nodes))
		n := b.Nodes[idx]

		if n.IsLeaf() {
			require.Equal(t, NoIndex, n.LHS)
			require.Equal(t, NoIndex, n.RHS)
			require.GreaterOrEqual(t, n.FirstPrimOffset, int32(0))
			require.Greater(t, n.NumPrims, int32(0))
			for i := n.FirstPrimOffset; i < n.FirstPrimOffset+n.NumPrims; i++ {
				covered[i]++
				require.True(t, n.Bounds.ContainsAABB(b.Prims[i].Bounds), "leaf %d does not contain prim %d", idx, i)
			}
			return
		}

		require.Equal(t, NoIndex, n.FirstPrimOffset, "internal node %d", idx)
		require.Equal(t, int32(0), n.NumPrims, "internal node %d", idx)
		require.Equal(t, idx+1, n.LHS, "left child must directly follow its parent")
		require.Greater(t, n.RHS, n.LHS)
		require.Equal(t, b.Nodes[n.LHS].Bounds.Union(b.Nodes[n.RHS].Bounds), n.Bounds)

		visit(n.LHS)
		visit(n.RHS)
	}
	visit(0)

	for i, c := range covered {
		require.Equal(t, 1, c, "prim %d referenced by %d leaves", i, c)
	}
}
