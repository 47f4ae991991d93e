package scene

import (
	"math"

	"github.com/pkg/errors"

	"github.com/df07/go-raykernel/pkg/core"
	"github.com/df07/go-raykernel/pkg/geometry"
	"github.com/df07/go-raykernel/pkg/material"
)

// SphereFieldConfig describes a cube of randomly placed mirror spheres
type SphereFieldConfig struct {
	Count            int     `toml:"count"`             // Number of spheres
	Extent           float64 `toml:"extent"`            // Centers lie in [-Extent, Extent] on every axis
	MinRadius        float64 `toml:"min_radius"`        // Smallest radius
	MaxRadius        float64 `toml:"max_radius"`        // Largest radius
	EmissiveFraction float64 `toml:"emissive_fraction"` // Share of spheres carrying the shared light
}

// DefaultSphereFieldConfig returns a moderately dense field of 1000 spheres
func DefaultSphereFieldConfig() SphereFieldConfig {
	return SphereFieldConfig{
		Count:            1000,
		Extent:           50,
		MinRadius:        0.2,
		MaxRadius:        2,
		EmissiveFraction: 0.1,
	}
}

// Validate checks that the configuration describes a buildable scene
func (c SphereFieldConfig) Validate() error {
	switch {
	case c.Count <= 0:
		return errors.Wrapf(core.ErrInvalidArgument, "sphere count %d", c.Count)
	case !(c.Extent >= 0) || math.IsInf(c.Extent, 0):
		return errors.Wrapf(core.ErrInvalidArgument, "extent %v", c.Extent)
	case !(c.MinRadius >= 0) || !(c.MaxRadius >= c.MinRadius) || math.IsInf(c.MaxRadius, 0):
		return errors.Wrapf(core.ErrInvalidArgument, "radius range [%v, %v]", c.MinRadius, c.MaxRadius)
	case !(c.EmissiveFraction >= 0 && c.EmissiveFraction <= 1):
		return errors.Wrapf(core.ErrInvalidArgument, "emissive fraction %v", c.EmissiveFraction)
	}
	return nil
}

// RandomSpheres assembles the sphere field described by cfg. Every sphere
// shares one mirror material, and the emissive ones share one light. The
// result only depends on cfg and the sequence produced by g.
func RandomSpheres(cfg SphereFieldConfig, g core.Generator) ([]core.Hittable, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mirror := material.NewMirror()
	light := &core.Light{Color: core.NewVec3(1, 0.9, 0.8), Brightness: 4}

	uniform := func(lo, hi float64) float64 {
		return lo + (hi-lo)*g.Float64()
	}

	objects := make([]core.Hittable, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		center := core.NewVec3(
			uniform(-cfg.Extent, cfg.Extent),
			uniform(-cfg.Extent, cfg.Extent),
			uniform(-cfg.Extent, cfg.Extent),
		)
		radius := uniform(cfg.MinRadius, cfg.MaxRadius)

		var emission *core.Light
		if g.Float64() < cfg.EmissiveFraction {
			emission = light
		}

		sphere, err := geometry.NewSphere(center, radius, emission, mirror)
		if err != nil {
			return nil, errors.Wrapf(err, "sphere %d", i)
		}
		objects = append(objects, sphere)
	}

	return objects, nil
}
