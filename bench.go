package main

import (
	"bytes"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/df07/go-raykernel/pkg/core"
	"github.com/df07/go-raykernel/pkg/geometry"
	"github.com/df07/go-raykernel/pkg/material"
	"github.com/df07/go-raykernel/pkg/scene"
)

// pathResult is what one primary ray produced
type pathResult struct {
	dist      float64 // Primary hit distance, NaN on a miss
	lightHits int     // Emissive surfaces met along the mirror path
}

// traceStats summarizes one structure's pass over all rays
type traceStats struct {
	name      string
	hits      int
	lightHits int
	elapsed   time.Duration
}

// benchReport is the outcome of a full run
type benchReport struct {
	rays       int
	workers    int
	buildTime  time.Duration
	bvhStats   geometry.BVHStats
	passes     []traceStats
	mismatches int
}

// runBench assembles the scene, builds the BVH and traces the same rays
// through the BVH and a linear scan, checking that both agree
func runBench(cfg benchConfig) (*benchReport, error) {
	sceneRand := rand.New(rand.NewPCG(cfg.Seed, 0))
	objects, err := scene.RandomSpheres(cfg.Scene, sceneRand)
	if err != nil {
		return nil, errors.Wrap(err, "assembling scene")
	}

	start := time.Now()
	bvh, err := geometry.NewBVH(objects)
	if err != nil {
		return nil, errors.Wrap(err, "building bvh")
	}
	buildTime := time.Since(start)
	logger.Infof("built BVH over %d spheres in %s", len(objects), buildTime)

	list, err := geometry.NewHittableList(objects...)
	if err != nil {
		return nil, errors.Wrap(err, "building list")
	}

	rays := primaryRays(cfg, sceneRand)
	report := &benchReport{
		rays:      len(rays),
		workers:   cfg.Workers,
		buildTime: buildTime,
		bvhStats:  bvh.Stats(),
	}

	structures := []struct {
		name string
		h    core.Hittable
	}{
		{"bvh", bvh},
		{"linear", list},
	}

	var results [][]pathResult
	for _, s := range structures {
		logger.Infof("tracing %d rays through %s with %d workers", len(rays), s.name, cfg.Workers)
		res, stats, err := tracePass(s.h, rays, cfg)
		if err != nil {
			return nil, errors.Wrapf(err, "tracing %s", s.name)
		}
		stats.name = s.name
		report.passes = append(report.passes, stats)
		results = append(results, res)
	}

	for i := range rays {
		if !sameResult(results[0][i], results[1][i]) {
			report.mismatches++
			logger.Debugf("ray %d: bvh %+v, linear %+v", i, results[0][i], results[1][i])
		}
	}
	return report, nil
}

// primaryRays generates rays starting around the sphere field and pointing in
// uniformly random directions
func primaryRays(cfg benchConfig, g core.Generator) []core.Ray {
	span := cfg.Scene.Extent * 1.5
	rays := make([]core.Ray, cfg.Rays)
	for i := range rays {
		origin := core.NewVec3(
			span*(2*g.Float64()-1),
			span*(2*g.Float64()-1),
			span*(2*g.Float64()-1),
		)
		rays[i] = core.NewRay(origin, core.RandUnitVec3(g))
	}
	return rays
}

// tracePass splits rays into contiguous chunks, one per worker. Workers share
// h read-only and each owns its generator, seeded by worker index so passes
// over different structures sample identically.
func tracePass(h core.Hittable, rays []core.Ray, cfg benchConfig) ([]pathResult, traceStats, error) {
	results := make([]pathResult, len(rays))
	chunk := (len(rays) + cfg.Workers - 1) / cfg.Workers

	var g errgroup.Group
	start := time.Now()
	for w := 0; w < cfg.Workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, len(rays))
		if lo >= hi {
			break
		}

		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = errors.Errorf("worker %d: %v", w, r)
				}
			}()

			gen := rand.New(rand.NewPCG(cfg.Seed, uint64(w)+1))
			for i := lo; i < hi; i++ {
				results[i] = tracePath(h, rays[i], cfg.Bounces, gen)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, traceStats{}, err
	}

	stats := traceStats{elapsed: time.Since(start)}
	for _, r := range results {
		if !math.IsNaN(r.dist) {
			stats.hits++
		}
		stats.lightHits += r.lightHits
	}
	return results, stats, nil
}

// tracePath follows a ray and its mirror reflections for up to bounces extra
// segments, counting the emissive surfaces it meets
func tracePath(h core.Hittable, ray core.Ray, bounces int, g core.Generator) pathResult {
	result := pathResult{dist: math.NaN()}
	searchRange := core.NewInterval(core.Epsilon, math.Inf(1))

	for depth := 0; depth <= bounces; depth++ {
		hit, isHit := h.Hit(ray, searchRange)
		if !isHit {
			break
		}
		if depth == 0 {
			result.dist = hit.Dist
		}
		if hit.Light != nil {
			result.lightHits++
		}

		theoretic := material.Reflect(ray.Direction, hit.Normal)
		next := hit.Material.Generate(hit.Normal, theoretic, g)
		if hit.Material.Possibility(theoretic, next) == 0 {
			break
		}
		ray = core.NewRay(hit.Point, next)
	}
	return result
}

// err reports a disagreement between the traced structures
func (r *benchReport) err() error {
	if r.mismatches > 0 {
		return errors.Errorf("bvh and linear scan disagree on %d of %d rays", r.mismatches, r.rays)
	}
	return nil
}

func sameResult(a, b pathResult) bool {
	if math.IsNaN(a.dist) || math.IsNaN(b.dist) {
		return math.IsNaN(a.dist) == math.IsNaN(b.dist) && a.lightHits == b.lightHits
	}
	return math.Abs(a.dist-b.dist) <= 1e-9*math.Max(1, math.Abs(a.dist)) && a.lightHits == b.lightHits
}

// String renders the report as tables
func (r *benchReport) String() string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Nodes", "Primitives", "Max depth", "Avg depth", "Build time"})
	table.Append([]string{
		fmt.Sprintf("%d", r.bvhStats.Nodes),
		fmt.Sprintf("%d", r.bvhStats.Primitives),
		fmt.Sprintf("%d", r.bvhStats.MaxDepth),
		fmt.Sprintf("%.2f", r.bvhStats.AvgDepth),
		r.buildTime.String(),
	})
	table.Render()

	table = tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Structure", "Rays", "Hits", "Light hits", "Time", "Rays/s"})
	for _, pass := range r.passes {
		table.Append([]string{
			pass.name,
			fmt.Sprintf("%d", r.rays),
			fmt.Sprintf("%d", pass.hits),
			fmt.Sprintf("%d", pass.lightHits),
			pass.elapsed.String(),
			fmt.Sprintf("%.0f", float64(r.rays)/pass.elapsed.Seconds()),
		})
	}
	table.SetFooter([]string{"", "", "", "", "Mismatches", fmt.Sprintf("%d", r.mismatches)})
	table.Render()

	return buf.String()
}
