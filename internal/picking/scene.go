package picking

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/chewxy/math32"
	"github.com/samber/lo"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/raypick/internal/logger"
	"github.com/Faultbox/raypick/pkg/bvh"
	"github.com/Faultbox/raypick/pkg/geometry"
	"github.com/Faultbox/raypick/pkg/math"
)

// Instance places a mesh in the world.
type Instance struct {
	ID    string
	Mesh  *Mesh
	Model math.Mat4 // Local to world
}

// Hit is one ray/triangle intersection.
type Hit struct {
	InstanceID string
	Instance   int   // Position in the scene's instance list
	PrimID     int32 // Triangle in the instance's mesh
	Distance   float32
	Point      math.Vec3         // World space
	Triangle   geometry.Triangle // World space
}

// Options configures scene construction.
type Options struct {
	// MaxLeafPrims logs a warning for any mesh whose BVH has a leaf with
	// more triangles. Zero disables the check.
	MaxLeafPrims int
}

// Scene is an immutable snapshot of instances ready for picking. It is safe
// for concurrent use.
type Scene struct {
	instances []Instance
	inverse   []math.Mat4
	bounds    []geometry.AABB
	tree      *bvh.BVH
}

// NewScene validates instances and builds the top-level BVH over their world
// bounds. Every problem found is reported in the returned error.
func NewScene(instances []Instance, opts Options) (*Scene, error) {
	start := time.Now()

	s := &Scene{
		instances: slices.Clone(instances),
		inverse:   make([]math.Mat4, len(instances)),
	}

	var err error
	for _, id := range lo.FindDuplicates(lo.Map(instances, func(inst Instance, _ int) string { return inst.ID })) {
		err = multierr.Append(err, fmt.Errorf("duplicate instance id %q", id))
	}
	for i, inst := range instances {
		if inst.Mesh == nil {
			err = multierr.Append(err, fmt.Errorf("instance %q has no mesh", inst.ID))
			continue
		}
		inv, ok := inst.Model.TryInverse()
		if !ok {
			err = multierr.Append(err, fmt.Errorf("instance %q has a singular model matrix", inst.ID))
			continue
		}
		s.inverse[i] = inv
	}
	if err != nil {
		return nil, fmt.Errorf("building scene: %w", err)
	}

	s.bounds = lo.Map(instances, func(inst Instance, _ int) geometry.AABB {
		return inst.Mesh.Bounds.Transform(inst.Model)
	})
	s.tree = bvh.BuildFromAABBs(s.bounds)

	meshes := lo.Uniq(lo.Map(instances, func(inst Instance, _ int) *Mesh { return inst.Mesh }))
	triangles := 0
	for _, m := range meshes {
		stats := m.Stats()
		triangles += stats.Prims
		if opts.MaxLeafPrims > 0 && stats.MaxLeafPrims > opts.MaxLeafPrims {
			logger.Warn("mesh BVH has an oversized leaf; the mesh likely contains many coincident triangles",
				zap.Int("leafPrims", stats.MaxLeafPrims),
				zap.Int("limit", opts.MaxLeafPrims),
				zap.Int("triangles", stats.Prims))
		}
	}

	top := s.tree.Stats()
	logger.Debug("scene built",
		zap.Int("instances", len(instances)),
		zap.Int("meshes", len(meshes)),
		zap.Int("triangles", triangles),
		zap.Int("topNodes", top.Nodes),
		zap.Int("topDepth", top.MaxDepth),
		zap.Duration("took", time.Since(start)))

	return s, nil
}

// Len returns the number of instances.
func (s *Scene) Len() int { return len(s.instances) }

// Instance returns the i-th instance.
func (s *Scene) Instance(i int) Instance { return s.instances[i] }

// InstanceBounds returns the world bounds of the i-th instance.
func (s *Scene) InstanceBounds(i int) geometry.AABB { return s.bounds[i] }

// Bounds returns the world bounds of the whole scene.
func (s *Scene) Bounds() geometry.AABB { return geometry.UnionAll(s.bounds) }

// Tree returns the top-level BVH over instance bounds.
func (s *Scene) Tree() *bvh.BVH { return s.tree }

// Pick returns the nearest triangle hit by r in front of its origin.
func (s *Scene) Pick(r geometry.Ray) (Hit, bool) {
	candidates, ok := s.tree.RayAABBCollisions(r, nil)
	if !ok {
		return Hit{}, false
	}
	// nearest boxes first; a hit is never closer than its box's entry
	slices.SortFunc(candidates, byDistance)

	var (
		best  bvh.Collision
		owner = -1
	)
	best.Distance = math32.Inf(1)
	for _, c := range candidates {
		if c.Distance > best.Distance {
			break
		}
		i := int(c.PrimID)
		col, ok := s.instances[i].Mesh.closest(r.Transform(s.inverse[i]))
		if ok && col.Distance < best.Distance {
			best, owner = col, i
		}
	}
	if owner < 0 {
		return Hit{}, false
	}
	return s.hit(owner, best, r), true
}

// PickAll returns every triangle hit by r in front of its origin, nearest
// first.
func (s *Scene) PickAll(r geometry.Ray) []Hit {
	candidates, _ := s.tree.RayAABBCollisions(r, nil)

	var hits []Hit
	var cols []bvh.Collision
	for _, c := range candidates {
		i := int(c.PrimID)
		cols = s.instances[i].Mesh.collisions(r.Transform(s.inverse[i]), cols[:0])
		hits = append(hits, lo.Map(cols, func(col bvh.Collision, _ int) Hit {
			return s.hit(i, col, r)
		})...)
	}
	slices.SortStableFunc(hits, func(a, b Hit) int { return cmp.Compare(a.Distance, b.Distance) })
	return hits
}

func (s *Scene) hit(i int, col bvh.Collision, r geometry.Ray) Hit {
	inst := s.instances[i]
	local := inst.Mesh.Triangle(col.PrimID)
	return Hit{
		InstanceID: inst.ID,
		Instance:   i,
		PrimID:     col.PrimID,
		Distance:   col.Distance,
		Point:      r.At(col.Distance),
		Triangle: geometry.Triangle{
			inst.Model.TransformPoint(local[0]),
			inst.Model.TransformPoint(local[1]),
			inst.Model.TransformPoint(local[2]),
		},
	}
}

func byDistance(a, b bvh.Collision) int {
	return cmp.Compare(a.Distance, b.Distance)
}
