package picking

import (
	"errors"

	"github.com/chewxy/math32"

	"github.com/Faultbox/raypick/pkg/geometry"
	"github.com/Faultbox/raypick/pkg/math"
)

// ErrSingularCamera is returned when a camera's view-projection cannot be
// inverted, e.g. because the eye sits on the target.
var ErrSingularCamera = errors.New("picking: camera view-projection is singular")

// Camera is a perspective camera looking from Eye at Target.
type Camera struct {
	Eye    math.Vec3
	Target math.Vec3
	Up     math.Vec3

	FovY float32 // Vertical field of view (radians)
	Near float32
	Far  float32
}

// NewCamera creates a Y-up camera. fovDeg is the vertical field of view in
// degrees.
func NewCamera(eye, target math.Vec3, fovDeg, near, far float32) Camera {
	return Camera{
		Eye:    eye,
		Target: target,
		Up:     math.Vec3{Y: 1},
		FovY:   fovDeg * math32.Pi / 180,
		Near:   near,
		Far:    far,
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c Camera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Eye, c.Target, c.Up)
}

// ProjectionMatrix returns the projection for a viewport of the given
// width/height ratio.
func (c Camera) ProjectionMatrix(aspect float32) math.Mat4 {
	return math.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// InverseViewProjection returns the matrix that maps normalized device
// coordinates of a viewport back to world space.
func (c Camera) InverseViewProjection(viewport math.Vec2) (math.Mat4, error) {
	vp := c.ProjectionMatrix(viewport.AspectRatio()).Mul(c.ViewMatrix())
	inv, ok := vp.TryInverse()
	if !ok {
		return math.Mat4{}, ErrSingularCamera
	}
	return inv, nil
}

// Ray returns the world-space ray through a screen position.
func (c Camera) Ray(screen, viewport math.Vec2) (geometry.Ray, error) {
	inv, err := c.InverseViewProjection(viewport)
	if err != nil {
		return geometry.Ray{}, err
	}
	return ScreenToRay(screen, viewport, inv), nil
}

// FitToBounds moves the camera along its current view direction so that the
// bounding sphere of box fills the vertical field of view.
func (c *Camera) FitToBounds(box geometry.AABB) {
	center := box.Midpoint()
	radius := box.Dimensions().Length() / 2

	dir := c.Eye.Sub(c.Target).Normalize()
	if dir.LengthSquared() == 0 {
		// Look down at ~35 degrees
		dir = math.Vec3{Y: 0.57, Z: 0.82}.Normalize()
	}

	distance := radius / math32.Sin(c.FovY/2)
	if distance < c.Near*2 {
		distance = c.Near * 2
	}

	c.Target = center
	c.Eye = center.Add(dir.Scale(distance))
	if far := distance + radius; far > c.Far {
		c.Far = far
	}
}
