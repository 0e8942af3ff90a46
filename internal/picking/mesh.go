package picking

import (
	"fmt"

	"github.com/Faultbox/raypick/pkg/bvh"
	"github.com/Faultbox/raypick/pkg/geometry"
	"github.com/Faultbox/raypick/pkg/math"
)

// Mesh is pickable triangle geometry in its own local space, with a BVH
// built once at construction. Meshes are shared between instances and must
// not be modified after NewMesh.
type Mesh struct {
	Vertices []math.Vec3
	Indices  []uint32 // Nil for triangle soup
	Bounds   geometry.AABB

	tree *bvh.BVH
}

// NewMesh validates the buffers and builds the mesh BVH. With nil indices
// every 3 consecutive vertices form a triangle.
func NewMesh(verts []math.Vec3, indices []uint32) (*Mesh, error) {
	m := &Mesh{Vertices: verts, Indices: indices}

	if indices == nil {
		if len(verts)%3 != 0 {
			return nil, fmt.Errorf("triangle soup has %d vertices, not a multiple of 3", len(verts))
		}
		m.Bounds = geometry.AABBFromPoints(verts)
		m.tree = bvh.BuildFromTriangles(verts)
		return m, nil
	}

	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("index buffer has %d indices, not a multiple of 3", len(indices))
	}
	for i, idx := range indices {
		if int(idx) >= len(verts) {
			return nil, fmt.Errorf("index %d at offset %d is out of range for %d vertices", idx, i, len(verts))
		}
	}
	m.Bounds = geometry.AABBFromIndexedPoints(verts, indices)
	m.tree = bvh.BuildFromIndexedTriangles(verts, indices)
	return m, nil
}

// Indexed reports whether the mesh uses an index buffer.
func (m *Mesh) Indexed() bool { return m.Indices != nil }

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int { return len(m.tree.Prims) }

// Stats returns the shape of the mesh BVH.
func (m *Mesh) Stats() bvh.Stats { return m.tree.Stats() }

// Tree returns the mesh BVH.
func (m *Mesh) Tree() *bvh.BVH { return m.tree }

// Triangle returns the local-space triangle for a prim ID reported by a
// collision.
func (m *Mesh) Triangle(primID int32) geometry.Triangle {
	if m.Indexed() {
		return geometry.Triangle{
			m.Vertices[m.Indices[primID]],
			m.Vertices[m.Indices[primID+1]],
			m.Vertices[m.Indices[primID+2]],
		}
	}
	return geometry.Triangle{m.Vertices[primID], m.Vertices[primID+1], m.Vertices[primID+2]}
}

func (m *Mesh) closest(r geometry.Ray) (bvh.Collision, bool) {
	if m.Indexed() {
		return bvh.ClosestRayIndexedTriangleCollision(m.tree, m.Vertices, m.Indices, r)
	}
	return m.tree.ClosestRayTriangleCollision(m.Vertices, r)
}

func (m *Mesh) collisions(r geometry.Ray, dst []bvh.Collision) []bvh.Collision {
	if m.Indexed() {
		dst, _ = bvh.RayIndexedTriangleCollisions(m.tree, m.Vertices, m.Indices, r, dst)
		return dst
	}
	dst, _ = m.tree.RayTriangleCollisions(m.Vertices, r, dst)
	return dst
}
