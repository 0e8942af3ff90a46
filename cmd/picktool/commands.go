package main

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/raypick/internal/config"
	"github.com/Faultbox/raypick/internal/debug"
	"github.com/Faultbox/raypick/internal/logger"
	"github.com/Faultbox/raypick/internal/picking"
	"github.com/Faultbox/raypick/pkg/bvh"
	"github.com/Faultbox/raypick/pkg/math"
)

func pickCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:      "pick",
		Usage:     "cast one ray through a screen position and report what it hits",
		ArgsUsage: " ",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "x", Usage: "screen x in pixels (default: viewport center)"},
			&cli.Float64Flag{Name: "y", Usage: "screen y in pixels (default: viewport center)"},
			&cli.BoolFlag{Name: "all", Usage: "list every hit, nearest first"},
			&cli.BoolFlag{Name: "fit", Usage: "move the camera to frame the whole scene first"},
		},
		Action: func(c *cli.Context) error {
			scene, err := buildScene(a.cfg)
			if err != nil {
				return err
			}
			cam := newCamera(a.cfg)
			if c.Bool("fit") {
				cam.FitToBounds(scene.Bounds())
			}

			vp := viewport(a.cfg)
			screen := vp.Scale(0.5)
			if c.IsSet("x") {
				screen.X = float32(c.Float64("x"))
			}
			if c.IsSet("y") {
				screen.Y = float32(c.Float64("y"))
			}

			r, err := cam.Ray(screen, vp)
			if err != nil {
				return err
			}
			logger.Debug("picking",
				zap.Float32("screenX", screen.X),
				zap.Float32("screenY", screen.Y),
				zap.Any("origin", r.Origin),
				zap.Any("direction", r.Direction))

			var hits []picking.Hit
			if c.Bool("all") {
				hits = scene.PickAll(r)
			} else if hit, ok := scene.Pick(r); ok {
				hits = []picking.Hit{hit}
			}

			out := c.App.Writer
			if len(hits) == 0 {
				color.New(color.FgYellow).Fprintf(out, "no hit at (%g, %g)\n", screen.X, screen.Y)
				return nil
			}
			color.New(color.FgGreen, color.Bold).Fprintf(out, "%s at distance %.4f\n", hits[0].InstanceID, hits[0].Distance)
			writeHits(out, hits)
			return nil
		},
	}
}

func writeHits(w io.Writer, hits []picking.Hit) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Instance", "Triangle", "Distance", "Point"})
	for _, h := range hits {
		table.Append([]string{
			h.InstanceID,
			strconv.Itoa(int(h.PrimID / 3)),
			fmt.Sprintf("%.4f", h.Distance),
			fmt.Sprintf("(%.3f, %.3f, %.3f)", h.Point.X, h.Point.Y, h.Point.Z),
		})
	}
	table.Render()
}

func benchCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:  "bench",
		Usage: "time closest-hit picks for random screen positions",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "rays", Usage: "number of rays (default from config)"},
			&cli.Int64Flag{Name: "seed", Usage: "random seed (default from config)"},
		},
		Action: func(c *cli.Context) error {
			config.Overrides{Rays: c.Int("rays"), Seed: c.Int64("seed")}.Apply(a.cfg)
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			start := time.Now()
			scene, err := buildScene(a.cfg)
			if err != nil {
				return err
			}
			buildTime := time.Since(start)

			vp := viewport(a.cfg)
			inv, err := newCamera(a.cfg).InverseViewProjection(vp)
			if err != nil {
				return err
			}

			res := runBench(scene, vp, inv, a.cfg.Bench)
			logger.Info("bench finished",
				zap.Int("rays", res.rays),
				zap.Int("hits", res.hits),
				zap.Duration("build", buildTime),
				zap.Duration("pick", res.elapsed))

			table := tablewriter.NewWriter(c.App.Writer)
			table.SetHeader([]string{"Rays", "Hits", "Build", "Pick", "Rays/s"})
			table.Append([]string{
				strconv.Itoa(res.rays),
				strconv.Itoa(res.hits),
				buildTime.Round(time.Microsecond).String(),
				res.elapsed.Round(time.Microsecond).String(),
				fmt.Sprintf("%.0f", res.raysPerSecond()),
			})
			table.Render()
			return nil
		},
	}
}

type benchResult struct {
	rays    int
	hits    int
	elapsed time.Duration
}

func (r benchResult) raysPerSecond() float64 {
	if r.elapsed <= 0 {
		return 0
	}
	return float64(r.rays) / r.elapsed.Seconds()
}

func runBench(scene *picking.Scene, vp math.Vec2, invViewProj math.Mat4, cfg config.BenchConfig) benchResult {
	rng := rand.New(rand.NewSource(cfg.Seed))
	screens := make([]math.Vec2, cfg.Rays)
	for i := range screens {
		screens[i] = math.Vec2{X: rng.Float32() * vp.X, Y: rng.Float32() * vp.Y}
	}

	res := benchResult{rays: cfg.Rays}
	start := time.Now()
	for _, s := range screens {
		if _, ok := scene.Pick(picking.ScreenToRay(s, vp, invViewProj)); ok {
			res.hits++
		}
	}
	res.elapsed = time.Since(start)
	return res
}

func statsCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "print BVH statistics for the scene and its meshes",
		Action: func(c *cli.Context) error {
			scene, err := buildScene(a.cfg)
			if err != nil {
				return err
			}
			writeStats(c.App.Writer, scene)
			return nil
		},
	}
}

func writeStats(w io.Writer, scene *picking.Scene) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Tree", "Instances", "Prims", "Nodes", "Leaves", "Depth", "Max leaf"})

	row := func(name string, instances int, s bvh.Stats) []string {
		return []string{
			name,
			strconv.Itoa(instances),
			strconv.Itoa(s.Prims),
			strconv.Itoa(s.Nodes),
			strconv.Itoa(s.Leaves),
			strconv.Itoa(s.MaxDepth),
			strconv.Itoa(s.MaxLeafPrims),
		}
	}

	table.Append(row("scene", scene.Len(), scene.Tree().Stats()))

	instances := lo.Times(scene.Len(), scene.Instance)
	byMesh := lo.GroupBy(instances, func(inst picking.Instance) *picking.Mesh { return inst.Mesh })
	for _, m := range lo.Uniq(lo.Map(instances, func(inst picking.Instance, _ int) *picking.Mesh { return inst.Mesh })) {
		users := byMesh[m]
		table.Append(row("mesh of "+users[0].ID, len(users), m.Stats()))
	}
	table.Render()
}

func wireframeCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:  "wireframe",
		Usage: "export BVH node boxes, or one instance's selection box, as OBJ lines",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "depth", Value: -1, Usage: "deepest BVH level to draw, -1 for all"},
			&cli.StringFlag{Name: "instance", Usage: "draw this instance's mesh BVH in world space instead of the scene tree"},
			&cli.BoolFlag{Name: "selection", Usage: "with --instance, draw only its padded world box"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file (default: stdout)"},
		},
		Action: func(c *cli.Context) error {
			scene, err := buildScene(a.cfg)
			if err != nil {
				return err
			}

			verts, err := wireframe(scene, c.String("instance"), c.Bool("selection"), c.Int("depth"))
			if err != nil {
				return err
			}

			w := c.App.Writer
			if path := c.String("out"); path != "" {
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("creating %s: %w", path, err)
				}
				defer f.Close()
				w = f
			}
			if err := writeOBJLines(w, verts); err != nil {
				return fmt.Errorf("writing wireframe: %w", err)
			}
			logger.Debug("wireframe written", zap.Int("segments", len(verts)/6))
			return nil
		},
	}
}

func wireframe(scene *picking.Scene, instanceID string, selection bool, depth int) ([]float32, error) {
	if instanceID == "" {
		return debug.BVHWireframe(scene.Tree(), depth), nil
	}

	_, i, ok := lo.FindIndexOf(lo.Times(scene.Len(), scene.Instance), func(inst picking.Instance) bool {
		return inst.ID == instanceID
	})
	if !ok {
		return nil, fmt.Errorf("no instance %q", instanceID)
	}
	if selection {
		return debug.SelectionWireframe(scene.InstanceBounds(i), debug.DefaultSelectionPadding), nil
	}

	// mesh boxes live in local space
	inst := scene.Instance(i)
	local := debug.BVHWireframe(inst.Mesh.Tree(), depth)
	world := make([]float32, 0, len(local))
	for j := 0; j < len(local); j += 3 {
		p := inst.Model.TransformPoint(math.Vec3{X: local[j], Y: local[j+1], Z: local[j+2]})
		world = append(world, p.X, p.Y, p.Z)
	}
	return world, nil
}

// writeOBJLines writes line-list vertices as OBJ "v" and "l" records.
func writeOBJLines(w io.Writer, verts []float32) error {
	bw := bufio.NewWriter(w)
	for i := 0; i+2 < len(verts); i += 3 {
		fmt.Fprintf(bw, "v %g %g %g\n", verts[i], verts[i+1], verts[i+2])
	}
	// OBJ indices are 1-based
	for i := 1; i+1 <= len(verts)/3; i += 2 {
		fmt.Fprintf(bw, "l %d %d\n", i, i+1)
	}
	return bw.Flush()
}

func configCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "print the effective configuration as YAML",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "save", Usage: "also write it to the user config dir"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write it to this file instead of printing"},
		},
		Action: func(c *cli.Context) error {
			if path := c.String("out"); path != "" {
				if err := a.cfg.SaveTo(path); err != nil {
					return err
				}
				logger.Info("config written", zap.String("path", path))
				return nil
			}

			data, err := a.cfg.Marshal()
			if err != nil {
				return err
			}
			if _, err := c.App.Writer.Write(data); err != nil {
				return err
			}

			if c.Bool("save") {
				path, err := a.cfg.Save()
				if err != nil {
					return err
				}
				logger.Info("config saved", zap.String("path", path))
			}
			return nil
		},
	}
}
