package bvh

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/raypick/pkg/geometry"
	"github.com/Faultbox/raypick/pkg/math"
)

// primTest intersects the query ray with one primitive.
type primTest func(p Prim) (distance float32, ok bool)

// walker carries the per-query state of a traversal. In collect mode every
// primitive hit is appended to out. In closest mode only hits nearer than
// best are kept, and subtrees whose box starts beyond best are skipped.
type walker struct {
	nodes []Node
	prims []Prim
	ray   geometry.Ray
	test  primTest

	closestOnly bool
	best        float32
	closest     Collision

	out []Collision
}

func (w *walker) walk(idx int32) bool {
	node := &w.nodes[idx]

	t0, _, ok := w.ray.IntersectAABB(node.Bounds)
	if !ok {
		return false
	}
	if w.closestOnly && t0 > w.best {
		return false
	}

	if node.IsLeaf() {
		hit := false
		first := node.FirstPrimOffset
		for _, p := range w.prims[first : first+node.NumPrims] {
			d, ok := w.test(p)
			if !ok {
				continue
			}
			if w.closestOnly {
				if d >= w.best {
					continue
				}
				w.best = d
				w.closest = Collision{PrimID: p.ID, Distance: d}
			} else {
				w.out = append(w.out, Collision{PrimID: p.ID, Distance: d})
			}
			hit = true
		}
		return hit
	}

	lhs := w.walk(node.LHS)
	rhs := w.walk(node.RHS)
	return lhs || rhs
}

func (b *BVH) collect(r geometry.Ray, test primTest, dst []Collision) ([]Collision, bool) {
	if b.Empty() {
		return dst, false
	}
	w := walker{nodes: b.Nodes, prims: b.Prims, ray: r, test: test, out: dst}
	hit := w.walk(0)
	return w.out, hit
}

func (b *BVH) closest(r geometry.Ray, test primTest) (Collision, bool) {
	if b.Empty() {
		return Collision{}, false
	}
	w := walker{
		nodes:       b.Nodes,
		prims:       b.Prims,
		ray:         r,
		test:        test,
		closestOnly: true,
		best:        math32.Inf(1),
	}
	if !w.walk(0) {
		return Collision{}, false
	}
	return w.closest, true
}

func (b *BVH) mustMatch(n int, what string) {
	if n != 3*len(b.Prims) {
		panic(fmt.Sprintf("bvh: %d %s do not match %d triangle primitives; was the BVH built from this buffer?",
			n, what, len(b.Prims)))
	}
}

func triangleTest(r geometry.Ray, verts []math.Vec3) primTest {
	return func(p Prim) (float32, bool) {
		return r.IntersectTriangle(geometry.Triangle{verts[p.ID], verts[p.ID+1], verts[p.ID+2]})
	}
}

func indexedTriangleTest[I Index](r geometry.Ray, verts []math.Vec3, indices []I) primTest {
	return func(p Prim) (float32, bool) {
		return r.IntersectTriangle(indexedTriangle(verts, indices, int(p.ID)))
	}
}

// RayTriangleCollisions appends every triangle hit by r to dst in
// depth-first, left-then-right tree order (not sorted by distance) and
// reports whether anything was hit.
//
// verts must be the buffer passed to BuildFromTriangles; it panics if
// len(verts) != 3*len(b.Prims).
func (b *BVH) RayTriangleCollisions(verts []math.Vec3, r geometry.Ray, dst []Collision) ([]Collision, bool) {
	b.mustMatch(len(verts), "vertices")
	return b.collect(r, triangleTest(r, verts), dst)
}

// ClosestRayTriangleCollision returns the triangle hit nearest to the ray
// origin.
//
// verts must be the buffer passed to BuildFromTriangles; it panics if
// len(verts) != 3*len(b.Prims).
func (b *BVH) ClosestRayTriangleCollision(verts []math.Vec3, r geometry.Ray) (Collision, bool) {
	b.mustMatch(len(verts), "vertices")
	return b.closest(r, triangleTest(r, verts))
}

// RayIndexedTriangleCollisions is RayTriangleCollisions for a tree built by
// BuildFromIndexedTriangles. It panics if len(indices) != 3*len(b.Prims).
func RayIndexedTriangleCollisions[I Index](b *BVH, verts []math.Vec3, indices []I, r geometry.Ray, dst []Collision) ([]Collision, bool) {
	b.mustMatch(len(indices), "indices")
	return b.collect(r, indexedTriangleTest(r, verts, indices), dst)
}

// ClosestRayIndexedTriangleCollision is ClosestRayTriangleCollision for a
// tree built by BuildFromIndexedTriangles. It panics if
// len(indices) != 3*len(b.Prims).
func ClosestRayIndexedTriangleCollision[I Index](b *BVH, verts []math.Vec3, indices []I, r geometry.Ray) (Collision, bool) {
	b.mustMatch(len(indices), "indices")
	return b.closest(r, indexedTriangleTest(r, verts, indices))
}

// RayAABBCollisions appends every box hit by r to dst in depth-first,
// left-then-right tree order and reports whether anything was hit.
// Distance is the entry parameter t0 of the box, which is negative when the
// ray starts inside it or the box lies behind the origin.
func (b *BVH) RayAABBCollisions(r geometry.Ray, dst []Collision) ([]Collision, bool) {
	return b.collect(r, func(p Prim) (float32, bool) {
		t0, _, ok := r.IntersectAABB(p.Bounds)
		return t0, ok
	}, dst)
}
