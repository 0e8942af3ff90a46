package config

import (
	"fmt"

	"go.uber.org/multierr"
)

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			err = multierr.Append(err, fmt.Errorf(format, args...))
		}
	}

	check(c.Viewport.Width > 0, "viewport.width must be positive, got %d", c.Viewport.Width)
	check(c.Viewport.Height > 0, "viewport.height must be positive, got %d", c.Viewport.Height)

	check(c.Camera.FovDeg > 0 && c.Camera.FovDeg < 180, "camera.fov_deg must be in (0, 180), got %g", c.Camera.FovDeg)
	check(c.Camera.Near > 0, "camera.near must be positive, got %g", c.Camera.Near)
	check(c.Camera.Far > c.Camera.Near, "camera.far (%g) must be greater than camera.near (%g)", c.Camera.Far, c.Camera.Near)
	check(c.Camera.Eye != c.Camera.Target, "camera.eye and camera.target must differ")

	check(c.Scene.Grid >= 0, "scene.grid must not be negative, got %d", c.Scene.Grid)
	check(c.Scene.Spacing > 0, "scene.spacing must be positive, got %g", c.Scene.Spacing)
	check(c.Scene.SphereRings >= 2, "scene.sphere_rings must be at least 2, got %d", c.Scene.SphereRings)
	check(c.Scene.SphereSegments >= 3, "scene.sphere_segments must be at least 3, got %d", c.Scene.SphereSegments)
	check(c.Scene.Heightfield >= 0, "scene.heightfield must not be negative, got %d", c.Scene.Heightfield)
	check(c.Scene.CellSize > 0, "scene.cell_size must be positive, got %g", c.Scene.CellSize)

	check(c.Picking.MaxLeafPrims > 0, "picking.max_leaf_prims must be positive, got %d", c.Picking.MaxLeafPrims)
	check(c.Bench.Rays > 0, "bench.rays must be positive, got %d", c.Bench.Rays)
	check(validLevels[c.Logging.Level], "logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)

	return err
}
