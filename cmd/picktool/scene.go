package main

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/raypick/internal/config"
	"github.com/Faultbox/raypick/internal/meshgen"
	"github.com/Faultbox/raypick/internal/picking"
	"github.com/Faultbox/raypick/pkg/math"
)

// groundID names the heightfield instance.
const groundID = "ground"

func vec3(v [3]float32) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

func newMesh(verts []math.Vec3, indices []uint32, indexed bool) (*picking.Mesh, error) {
	if !indexed {
		verts, indices = meshgen.Soup(verts, indices), nil
	}
	return picking.NewMesh(verts, indices)
}

// buildScene lays out a square grid of alternating spheres and boxes, each
// turned a little further than the last, above an optional rolling ground.
func buildScene(cfg *config.Config) (*picking.Scene, error) {
	sc := cfg.Scene
	indexed := cfg.Picking.Indexed

	sv, si := meshgen.UVSphere(1, sc.SphereRings, sc.SphereSegments)
	sphere, err := newMesh(sv, si, indexed)
	if err != nil {
		return nil, fmt.Errorf("sphere mesh: %w", err)
	}
	bv, bi := meshgen.Box(math.Vec3{X: 1.5, Y: 1.5, Z: 1.5})
	box, err := newMesh(bv, bi, indexed)
	if err != nil {
		return nil, fmt.Errorf("box mesh: %w", err)
	}

	var instances []picking.Instance
	half := float32(sc.Grid-1) * sc.Spacing / 2
	for row := 0; row < sc.Grid; row++ {
		for col := 0; col < sc.Grid; col++ {
			i := row*sc.Grid + col
			pos := math.Vec3{
				X: float32(col)*sc.Spacing - half,
				Y: 1.5,
				Z: float32(row)*sc.Spacing - half,
			}
			inst := picking.Instance{Mesh: sphere, ID: fmt.Sprintf("sphere-%d-%d", row, col)}
			if i%2 == 1 {
				inst = picking.Instance{Mesh: box, ID: fmt.Sprintf("box-%d-%d", row, col)}
			}
			turn := math.QuatFromAxisAngle(math.Vec3{Y: 1}, float32(i)*0.3)
			inst.Model = math.TRS(pos, turn, math.Splat(1))
			instances = append(instances, inst)
		}
	}

	if sc.Heightfield > 0 {
		size := float32(sc.Heightfield) * sc.CellSize
		gv, gi := meshgen.Heightfield(sc.Heightfield, sc.Heightfield, sc.CellSize, rolling(size))
		ground, err := newMesh(gv, gi, indexed)
		if err != nil {
			return nil, fmt.Errorf("ground mesh: %w", err)
		}
		instances = append(instances, picking.Instance{
			ID:    groundID,
			Mesh:  ground,
			Model: math.Translate(math.Vec3{X: -size / 2, Y: -0.5, Z: -size / 2}),
		})
	}

	return picking.NewScene(instances, picking.Options{MaxLeafPrims: cfg.Picking.MaxLeafPrims})
}

// rolling returns gentle hills with one full period across size.
func rolling(size float32) meshgen.HeightFunc {
	k := 2 * math32.Pi / size
	return func(x, z float32) float32 {
		return 0.4 * math32.Sin(x*k) * math32.Cos(z*k)
	}
}

func newCamera(cfg *config.Config) picking.Camera {
	cc := cfg.Camera
	return picking.NewCamera(vec3(cc.Eye), vec3(cc.Target), cc.FovDeg, cc.Near, cc.Far)
}

func viewport(cfg *config.Config) math.Vec2 {
	return math.Vec2{X: float32(cfg.Viewport.Width), Y: float32(cfg.Viewport.Height)}
}
