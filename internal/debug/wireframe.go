// Package debug provides debug visualization utilities.
package debug

import (
	"github.com/Faultbox/raypick/pkg/bvh"
	"github.com/Faultbox/raypick/pkg/geometry"
	"github.com/Faultbox/raypick/pkg/math"
)

// AABBWireframeVertexCount is the number of vertices for a box wireframe (12 edges × 2).
const AABBWireframeVertexCount = 24

// DefaultSelectionPadding is the default padding for selection boxes.
const DefaultSelectionPadding = 0.05

// AABBWireframe creates line vertices for a wireframe box.
// Returns 24 vertices (12 edges × 2 endpoints), format: [x, y, z] per vertex.
func AABBWireframe(box geometry.AABB) []float32 {
	return appendAABBWireframe(make([]float32, 0, 3*AABBWireframeVertexCount), box)
}

// SelectionWireframe creates wireframe vertices for a box grown by padding
// on all sides.
func SelectionWireframe(box geometry.AABB, padding float32) []float32 {
	box.Min = box.Min.Sub(math.Splat(padding))
	box.Max = box.Max.Add(math.Splat(padding))
	return AABBWireframe(box)
}

func appendAABBWireframe(dst []float32, box geometry.AABB) []float32 {
	minX, minY, minZ := box.Min.X, box.Min.Y, box.Min.Z
	maxX, maxY, maxZ := box.Max.X, box.Max.Y, box.Max.Z

	return append(dst,
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
	)
}

// BVHWireframe creates line vertices for the bounds of every node down to
// maxDepth (the root is depth 0). A negative maxDepth draws the whole tree.
func BVHWireframe(b *bvh.BVH, maxDepth int) []float32 {
	if b.Empty() {
		return nil
	}
	var out []float32
	var visit func(idx int32, depth int)
	visit = func(idx int32, depth int) {
		if maxDepth >= 0 && depth > maxDepth {
			return
		}
		node := b.Nodes[idx]
		out = appendAABBWireframe(out, node.Bounds)
		if !node.IsLeaf() {
			visit(node.LHS, depth+1)
			visit(node.RHS, depth+1)
		}
	}
	visit(0, 0)
	return out
}
