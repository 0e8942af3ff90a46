// Package bvh builds a bounding volume hierarchy over triangle soup or a
// flat array of boxes and answers ray queries against it.
//
// A BVH never copies vertex data: each primitive only stores an ID that
// indexes back into the caller's vertices, indices or boxes. Triangle queries
// therefore take the same buffer the tree was built from.
//
// A built BVH is an immutable snapshot. It may be queried from many
// goroutines at once, but must not be cleared while a query is running.
// Rebuilding returns a new BVH rather than mutating an existing one.
package bvh

import (
	"github.com/Faultbox/raypick/pkg/geometry"
)

// NoIndex marks an unused node or primitive index.
const NoIndex int32 = -1

// Prim is one primitive in the tree.
//
// ID is the first vertex (or index) offset of a triangle, or the position of
// a box in the array the tree was built from.
type Prim struct {
	ID     int32
	Bounds geometry.AABB
}

// Node is a tree node. A leaf has LHS == RHS == NoIndex and references
// Prims[FirstPrimOffset : FirstPrimOffset+NumPrims]. An internal node has
// FirstPrimOffset == NoIndex and NumPrims == 0.
type Node struct {
	Bounds          geometry.AABB
	LHS             int32
	RHS             int32
	FirstPrimOffset int32
	NumPrims        int32
}

func newLeaf(bounds geometry.AABB, firstPrimOffset, numPrims int) Node {
	return Node{
		Bounds:          bounds,
		LHS:             NoIndex,
		RHS:             NoIndex,
		FirstPrimOffset: int32(firstPrimOffset),
		NumPrims:        int32(numPrims),
	}
}

// newInternal returns an internal node whose children are not yet known.
func newInternal() Node {
	return Node{
		LHS:             NoIndex,
		RHS:             NoIndex,
		FirstPrimOffset: NoIndex,
		NumPrims:        0,
	}
}

// IsLeaf reports whether n references primitives directly.
func (n Node) IsLeaf() bool {
	return n.LHS == NoIndex && n.RHS == NoIndex
}

// BVH is a flat, index-linked bounding volume hierarchy. Nodes[0] is the
// root of a non-empty tree.
//
// Building reorders Prims; do not rely on them matching input order.
type BVH struct {
	Nodes []Node
	Prims []Prim
}

// Collision is a primitive hit by a ray.
type Collision struct {
	// PrimID is the hit primitive's Prim.ID.
	PrimID int32
	// Distance is the ray parameter t of the hit.
	Distance float32
}

// Clear empties the tree, keeping allocated capacity.
func (b *BVH) Clear() {
	b.Nodes = b.Nodes[:0]
	b.Prims = b.Prims[:0]
}

// Empty reports whether the tree has no nodes.
func (b *BVH) Empty() bool {
	return len(b.Nodes) == 0 || len(b.Prims) == 0
}

// Root returns the root node. It panics on an empty tree.
func (b *BVH) Root() Node {
	return b.Nodes[0]
}
