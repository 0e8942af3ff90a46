package bvh

import (
	"fmt"

	"github.com/Faultbox/raypick/pkg/geometry"
	"github.com/Faultbox/raypick/pkg/math"
)

// Index is the element type of a triangle index buffer.
type Index interface {
	~uint16 | ~uint32
}

// BuildFromTriangles builds a tree over triangle soup: every 3 consecutive
// vertices form one triangle whose Prim.ID is the index of its first vertex.
//
// It panics if len(verts) is not a multiple of 3.
func BuildFromTriangles(verts []math.Vec3) *BVH {
	if len(verts)%3 != 0 {
		panic(fmt.Sprintf("bvh: vertex count %d is not a multiple of 3", len(verts)))
	}

	b := &BVH{Prims: make([]Prim, 0, len(verts)/3)}
	for i := 0; i < len(verts); i += 3 {
		b.Prims = append(b.Prims, Prim{
			ID:     int32(i),
			Bounds: geometry.AABBFromPoints(verts[i : i+3]),
		})
	}
	b.build()
	return b
}

// BuildFromIndexedTriangles builds a tree over an indexed mesh: every 3
// consecutive indices form one triangle whose Prim.ID is the offset of its
// first index.
//
// It panics if len(indices) is not a multiple of 3.
func BuildFromIndexedTriangles[I Index](verts []math.Vec3, indices []I) *BVH {
	if len(indices)%3 != 0 {
		panic(fmt.Sprintf("bvh: index count %d is not a multiple of 3", len(indices)))
	}

	b := &BVH{Prims: make([]Prim, 0, len(indices)/3)}
	for i := 0; i < len(indices); i += 3 {
		tri := indexedTriangle(verts, indices, i)
		b.Prims = append(b.Prims, Prim{
			ID:     int32(i),
			Bounds: tri.Bounds(),
		})
	}
	b.build()
	return b
}

// BuildFromAABBs builds a tree over boxes. Prim.ID is the box's position in
// boxes.
func BuildFromAABBs(boxes []geometry.AABB) *BVH {
	b := &BVH{Prims: make([]Prim, 0, len(boxes))}
	for i, box := range boxes {
		b.Prims = append(b.Prims, Prim{ID: int32(i), Bounds: box})
	}
	b.build()
	return b
}

func indexedTriangle[I Index](verts []math.Vec3, indices []I, first int) geometry.Triangle {
	return geometry.Triangle{
		verts[indices[first]],
		verts[indices[first+1]],
		verts[indices[first+2]],
	}
}

func (b *BVH) build() {
	if len(b.Prims) == 0 {
		return
	}
	// a binary tree with n leaves has 2n-1 nodes; degenerate leaves only
	// make it smaller
	b.Nodes = make([]Node, 0, 2*len(b.Prims)-1)
	b.buildRecursive(0, len(b.Prims))
}

// buildRecursive appends the subtree over Prims[begin:begin+n] to Nodes.
//
// Nodes are appended parent first, then the whole left subtree, then the
// whole right subtree, so a parent's index is fixed before its children are
// known and is patched afterwards.
func (b *BVH) buildRecursive(begin, n int) {
	if n == 0 {
		return
	}
	end := begin + n

	if n == 1 {
		b.Nodes = append(b.Nodes, newLeaf(b.Prims[begin].Bounds, begin, 1))
		return
	}

	prims := b.Prims[begin:end]
	bounds := unionOf(prims)

	// nothing to split spatially: one leaf holds every remaining prim
	if bounds.IsEmpty() {
		b.Nodes = append(b.Nodes, newLeaf(bounds, begin, n))
		return
	}

	mid := begin + splitIndex(prims, bounds)

	loc := len(b.Nodes)
	b.Nodes = append(b.Nodes, newInternal())

	b.buildRecursive(begin, mid-begin)
	rhs := len(b.Nodes)
	b.buildRecursive(mid, end-mid)

	// b.Nodes may have been reallocated by the recursive appends
	lhs := loc + 1
	node := &b.Nodes[loc]
	node.LHS = int32(lhs)
	node.RHS = int32(rhs)
	node.Bounds = b.Nodes[lhs].Bounds.Union(b.Nodes[rhs].Bounds)
}

func unionOf(prims []Prim) geometry.AABB {
	rv := prims[0].Bounds
	for _, p := range prims[1:] {
		rv = rv.Union(p.Bounds)
	}
	return rv
}

// splitIndex partitions prims in place about the midpoint of bounds' longest
// axis and returns the split position. The result is always in
// [1, len(prims)-1]: when every prim lands on one side it falls back to
// splitting the slice in half.
//
// len(prims) must be at least 2.
func splitIndex(prims []Prim, bounds geometry.AABB) int {
	axis := bounds.LongestDimIndex()
	// twice the midpoint; prim centers are doubled the same way below
	midX2 := bounds.Min.Get(axis) + bounds.Max.Get(axis)

	mid := partition(prims, axis, midX2)
	if mid == 0 || mid == len(prims) {
		mid = len(prims) / 2
	}
	return mid
}

// partition moves every prim whose doubled center along axis is <= midX2 to
// the front of prims and returns how many there are. Relative order is not
// preserved.
func partition(prims []Prim, axis int, midX2 float32) int {
	i := 0
	for j := range prims {
		centerX2 := prims[j].Bounds.Min.Get(axis) + prims[j].Bounds.Max.Get(axis)
		if centerX2 <= midX2 {
			prims[i], prims[j] = prims[j], prims[i]
			i++
		}
	}
	return i
}
