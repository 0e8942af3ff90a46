// Package picking answers "what is under the cursor" for a scene of
// transformed mesh instances.
//
// A Scene is an immutable snapshot: a top-level BVH over instance world
// bounds and one triangle BVH per mesh. Rays are moved into each candidate
// instance's local space, so meshes are never re-transformed. A Picker
// publishes new snapshots to concurrent readers.
package picking

import (
	"github.com/Faultbox/raypick/pkg/geometry"
	"github.com/Faultbox/raypick/pkg/math"
)

// ScreenToRay converts screen coordinates to a world-space ray.
// screen is in pixels from the top-left corner of a viewport of the given
// size. invViewProj is the inverse of the view-projection matrix.
// The ray starts on the near plane and its direction is normalized.
func ScreenToRay(screen, viewport math.Vec2, invViewProj math.Mat4) geometry.Ray {
	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := 2*screen.X/viewport.X - 1
	ndcY := 1 - 2*screen.Y/viewport.Y // Flip Y

	// Unproject near and far points
	near := unproject(invViewProj, math.Vec4{ndcX, ndcY, -1, 1})
	far := unproject(invViewProj, math.Vec4{ndcX, ndcY, 1, 1})

	return geometry.Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

func unproject(invViewProj math.Mat4, ndc math.Vec4) math.Vec3 {
	v := invViewProj.MulVec4(ndc)

	// Perspective divide
	if v[3] != 0 {
		v[0] /= v[3]
		v[1] /= v[3]
		v[2] /= v[3]
	}
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}
