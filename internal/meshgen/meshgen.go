// Package meshgen builds simple procedural meshes used as pickable scene
// content.
//
// Every generator returns a shared vertex buffer and a triangle list of
// uint32 indices. Triangles wind counter-clockwise when seen from outside.
package meshgen

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/raypick/pkg/math"
)

// Box returns an axis-aligned box of the given size centered on the origin:
// 8 corners and 12 triangles.
func Box(size math.Vec3) ([]math.Vec3, []uint32) {
	h := size.Scale(0.5)

	// corner i has bit 0 set for +X, bit 1 for +Y, bit 2 for +Z
	verts := make([]math.Vec3, 8)
	for i := range verts {
		c := h.Neg()
		if i&1 != 0 {
			c.X = h.X
		}
		if i&2 != 0 {
			c.Y = h.Y
		}
		if i&4 != 0 {
			c.Z = h.Z
		}
		verts[i] = c
	}

	indices := []uint32{
		0, 4, 6, 0, 6, 2, // -X
		1, 3, 7, 1, 7, 5, // +X
		0, 1, 5, 0, 5, 4, // -Y
		2, 6, 7, 2, 7, 3, // +Y
		0, 2, 3, 0, 3, 1, // -Z
		4, 5, 7, 4, 7, 6, // +Z
	}
	return verts, indices
}

// UVSphere returns a latitude/longitude sphere centered on the origin.
// rings counts the latitude bands from pole to pole and segments the
// longitude slices. The poles are fans, so no zero-area triangles are
// emitted.
//
// It panics if rings < 2 or segments < 3.
func UVSphere(radius float32, rings, segments int) ([]math.Vec3, []uint32) {
	if rings < 2 || segments < 3 {
		panic(fmt.Sprintf("meshgen: sphere needs at least 2 rings and 3 segments, got %d and %d", rings, segments))
	}

	verts := make([]math.Vec3, 0, (rings+1)*(segments+1))
	for r := 0; r <= rings; r++ {
		phi := math32.Pi * float32(r) / float32(rings)
		sinPhi, cosPhi := math32.Sin(phi), math32.Cos(phi)
		for s := 0; s <= segments; s++ {
			theta := 2 * math32.Pi * float32(s) / float32(segments)
			verts = append(verts, math.Vec3{
				X: radius * sinPhi * math32.Cos(theta),
				Y: radius * cosPhi,
				Z: radius * sinPhi * math32.Sin(theta),
			})
		}
	}

	stride := uint32(segments + 1)
	indices := make([]uint32, 0, 6*segments*(rings-1))
	for r := 0; r < rings; r++ {
		for s := 0; s < segments; s++ {
			a := uint32(r)*stride + uint32(s)
			b := a + stride
			if r != 0 {
				indices = append(indices, a, a+1, b)
			}
			if r != rings-1 {
				indices = append(indices, a+1, b+1, b)
			}
		}
	}
	return verts, indices
}

// HeightFunc returns the surface height at a point on the XZ plane.
type HeightFunc func(x, z float32) float32

// Flat is a HeightFunc for a plane at Y = 0.
func Flat(x, z float32) float32 { return 0 }

// Heightfield returns a width x depth grid of cells on the XZ plane,
// starting at the origin, with each vertex lifted by height. Every cell is
// split into two triangles facing +Y.
//
// It panics if width or depth is not positive.
func Heightfield(width, depth int, cell float32, height HeightFunc) ([]math.Vec3, []uint32) {
	if width <= 0 || depth <= 0 {
		panic(fmt.Sprintf("meshgen: heightfield needs a positive size, got %dx%d", width, depth))
	}
	if height == nil {
		height = Flat
	}

	verts := make([]math.Vec3, 0, (width+1)*(depth+1))
	for z := 0; z <= depth; z++ {
		for x := 0; x <= width; x++ {
			px, pz := float32(x)*cell, float32(z)*cell
			verts = append(verts, math.Vec3{X: px, Y: height(px, pz), Z: pz})
		}
	}

	stride := uint32(width + 1)
	indices := make([]uint32, 0, 6*width*depth)
	for z := 0; z < depth; z++ {
		for x := 0; x < width; x++ {
			a := uint32(z)*stride + uint32(x)
			b := a + stride
			indices = append(indices, a, b, a+1, a+1, b, b+1)
		}
	}
	return verts, indices
}

// Soup expands an indexed mesh into one vertex triple per triangle.
func Soup(verts []math.Vec3, indices []uint32) []math.Vec3 {
	out := make([]math.Vec3, len(indices))
	for i, idx := range indices {
		out[i] = verts[idx]
	}
	return out
}
